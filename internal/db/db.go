package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v4/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL backend a database handle talks to.
type Dialect string

// Supported dialects.
const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect validates a dialect name from configuration.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(s)); d {
	case DialectSQLite, DialectPostgres:
		return d, nil
	case "postgresql", "pgx":
		return DialectPostgres, nil
	}
	return "", fmt.Errorf("unknown database driver %q", s)
}

func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

// Rebind rewrites ? placeholders into the dialect's native form.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// sqlitePragmas are applied by the driver to every pooled connection.
// _txlock=immediate makes write transactions take the lock at BEGIN, so
// concurrent writers wait on busy_timeout instead of failing on upgrade.
var sqlitePragmas = []string{
	"_pragma=busy_timeout(5000)",
	"_pragma=journal_mode(WAL)",
	"_pragma=synchronous(NORMAL)",
	"_pragma=foreign_keys(1)",
	"_txlock=immediate",
}

// Open opens a connection pool for the given dialect. For SQLite the dsn is a
// file path (or ":memory:"); for Postgres it is a connection URI.
func Open(d Dialect, dsn string) (*sql.DB, error) {
	source := dsn
	if d == DialectSQLite {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		source = dsn + sep + strings.Join(sqlitePragmas, "&")
	}

	db, err := sql.Open(d.driverName(), source)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	switch {
	case d == DialectSQLite && strings.HasPrefix(dsn, ":memory:"):
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	case d == DialectPostgres:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return db, nil
}
