package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"pagebuilder/internal/app"
	"pagebuilder/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		slug        string
		lang        string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", config.DefaultPath(), "Path to configuration file")
	flag.StringVar(&slug, "slug", "", "Page to open (default from config)")
	flag.StringVar(&lang, "lang", "", "Language of the page to open (default from config)")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("pagebuilder", app.Version)
		return 0
	}

	// stdout carries the MCP protocol.
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := app.ServeMCP(cfg, slug, lang); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
