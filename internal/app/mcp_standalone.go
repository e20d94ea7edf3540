package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pagebuilder/internal/config"
)

// ServeMCP runs the page builder as an MCP server on stdin/stdout. It opens
// storage, loads slug/lang and serves until stdin closes or the process is
// interrupted.
func ServeMCP(cfg *config.Config, slug, lang string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := New(cfg)
	if err := a.Startup(ctx, slug, lang); err != nil {
		return err
	}
	defer a.Shutdown(context.Background())

	log.Println("[MCP] Starting standalone stdio server...")
	errCh := make(chan error, 1)
	go func() { errCh <- a.server.ServeStdio() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Println("[MCP] interrupted, shutting down")
		return nil
	}
}
