package storage

import (
	"fmt"
	"net/url"
	"strings"
)

// buildPostgresDSN constructs a Postgres connection string.
func buildPostgresDSN(o Options) string {
	port := o.Port
	if port == 0 {
		port = 5432
	}
	sslMode := o.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		o.Host, port, o.Username, o.Password, o.Database, sslMode,
	)
}

// buildMySQLDSN constructs a MySQL DSN.
func buildMySQLDSN(o Options) string {
	port := o.Port
	if port == 0 {
		port = 3306
	}
	// Format: user:password@tcp(host:port)/dbname?parseTime=true
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		o.Username, o.Password, o.Host, port, o.Database,
	)
	if o.SSLMode == "require" {
		dsn += "&tls=true"
	}
	return dsn
}

// buildMongoURI returns o.URI with <password> placeholders filled in, or a
// mongodb:// URI built from host and port.
func buildMongoURI(o Options) string {
	if strings.HasPrefix(o.URI, "mongodb+srv://") || strings.HasPrefix(o.URI, "mongodb://") {
		uri := o.URI
		if o.Password != "" {
			uri = strings.ReplaceAll(uri, "<password>", url.QueryEscape(o.Password))
			uri = strings.ReplaceAll(uri, "<db_password>", url.QueryEscape(o.Password))
		}
		return uri
	}
	host := o.Host
	if host == "" {
		host = "localhost"
	}
	port := o.Port
	if port == 0 {
		port = 27017
	}
	if o.Username != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%d",
			url.QueryEscape(o.Username), url.QueryEscape(o.Password), host, port)
	}
	return fmt.Sprintf("mongodb://%s:%d", host, port)
}

// maskURI hides the password component of a connection URI for logging.
func maskURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.User == nil {
		return uri
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
