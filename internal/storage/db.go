package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported SQL dialects. The value doubles as the database/sql driver name.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
)

// DB wraps a SQL connection together with its dialect.
type DB struct {
	conn    *sql.DB
	dialect string
}

// NewSQLite opens (or creates) the SQLite file at dbPath and migrates it.
func NewSQLite(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	conn, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite only supports one writer; a single connection avoids SQLITE_BUSY.
	conn.SetMaxOpenConns(1)
	return finishOpen(conn, DialectSQLite)
}

// NewSQL opens a Postgres or MySQL database from a DSN and migrates it.
func NewSQL(ctx context.Context, dialect, dsn string) (*DB, error) {
	if dialect != DialectPostgres && dialect != DialectMySQL {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, dialect)
	}
	conn, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	conn.SetMaxOpenConns(5)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}
	return finishOpen(conn, dialect)
}

func finishOpen(conn *sql.DB, dialect string) (*DB, error) {
	db := &DB{conn: conn, dialect: dialect}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Dialect returns the SQL dialect in use.
func (db *DB) Dialect() string {
	return db.dialect
}

// rebind rewrites ? placeholders for the dialect. Queries in this package
// never contain a literal question mark.
func (db *DB) rebind(query string) string {
	return rebind(db.dialect, query)
}

func rebind(dialect, query string) string {
	if dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (db *DB) migrate() error {
	for _, m := range migrations(db.dialect) {
		if _, err := db.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %s: %w", firstLine(m), err)
		}
	}
	return nil
}

func migrations(dialect string) []string {
	switch dialect {
	case DialectPostgres:
		return []string{
			`CREATE TABLE IF NOT EXISTS pages (
				slug TEXT NOT NULL,
				lang TEXT NOT NULL,
				title TEXT NOT NULL DEFAULT '',
				schema_json TEXT NOT NULL,
				version INTEGER NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				PRIMARY KEY (slug, lang)
			)`,
			`CREATE TABLE IF NOT EXISTS page_revisions (
				slug TEXT NOT NULL,
				lang TEXT NOT NULL,
				version INTEGER NOT NULL,
				title TEXT NOT NULL DEFAULT '',
				schema_json TEXT NOT NULL,
				saved_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				PRIMARY KEY (slug, lang, version)
			)`,
		}
	case DialectMySQL:
		return []string{
			`CREATE TABLE IF NOT EXISTS pages (
				slug VARCHAR(191) NOT NULL,
				lang VARCHAR(35) NOT NULL,
				title VARCHAR(512) NOT NULL DEFAULT '',
				schema_json LONGTEXT NOT NULL,
				version INT NOT NULL,
				created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
				updated_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
				PRIMARY KEY (slug, lang)
			) CHARACTER SET utf8mb4`,
			`CREATE TABLE IF NOT EXISTS page_revisions (
				slug VARCHAR(191) NOT NULL,
				lang VARCHAR(35) NOT NULL,
				version INT NOT NULL,
				title VARCHAR(512) NOT NULL DEFAULT '',
				schema_json LONGTEXT NOT NULL,
				saved_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
				PRIMARY KEY (slug, lang, version)
			) CHARACTER SET utf8mb4`,
		}
	default:
		return []string{
			`CREATE TABLE IF NOT EXISTS pages (
				slug TEXT NOT NULL,
				lang TEXT NOT NULL,
				title TEXT NOT NULL DEFAULT '',
				schema_json TEXT NOT NULL,
				version INTEGER NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (slug, lang)
			)`,
			`CREATE TABLE IF NOT EXISTS page_revisions (
				slug TEXT NOT NULL,
				lang TEXT NOT NULL,
				version INTEGER NOT NULL,
				title TEXT NOT NULL DEFAULT '',
				schema_json TEXT NOT NULL,
				saved_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (slug, lang, version)
			)`,
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
