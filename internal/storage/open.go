package storage

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"pagebuilder/internal/domain"
)

// Storage drivers accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMongoDB  = "mongodb"
	DriverJSON     = "json"
)

// Options selects and configures a storage backend.
type Options struct {
	Driver     string
	Path       string // sqlite database file or JSON store file
	Host       string
	Port       int
	Database   string
	Username   string
	Password   string
	SSLMode    string
	URI        string // mongodb connection string; overrides Host and Port
	Collection string

	RevisionsKept int
}

// Store is a PageStore that owns a connection.
type Store interface {
	domain.PageStore
	Close() error
}

// Open returns the store selected by o.Driver. dataDir anchors relative
// paths and the default file names.
func Open(ctx context.Context, o Options, dataDir string) (Store, error) {
	switch o.Driver {
	case "", DriverSQLite:
		path := resolvePath(o.Path, dataDir, "pagebuilder.db")
		db, err := NewSQLite(path)
		if err != nil {
			return nil, err
		}
		log.Printf("[STORE] sqlite %s", path)
		return NewPageStore(db, o.RevisionsKept), nil

	case DriverPostgres:
		db, err := NewSQL(ctx, DialectPostgres, buildPostgresDSN(o))
		if err != nil {
			return nil, err
		}
		log.Printf("[STORE] postgres %s:%d/%s", o.Host, o.Port, o.Database)
		return NewPageStore(db, o.RevisionsKept), nil

	case DriverMySQL:
		db, err := NewSQL(ctx, DialectMySQL, buildMySQLDSN(o))
		if err != nil {
			return nil, err
		}
		log.Printf("[STORE] mysql %s:%d/%s", o.Host, o.Port, o.Database)
		return NewPageStore(db, o.RevisionsKept), nil

	case DriverMongoDB:
		database := o.Database
		if database == "" {
			database = "pagebuilder"
		}
		return NewMongoPageStore(ctx, buildMongoURI(o), database, o.Collection)

	case DriverJSON:
		path := resolvePath(o.Path, dataDir, "pages.json")
		log.Printf("[STORE] json %s", path)
		return NewJSONFileStore(path), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, o.Driver)
}

func resolvePath(path, dataDir, fallback string) string {
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) || dataDir == "" {
		return path
	}
	return filepath.Join(dataDir, path)
}
