// Package db opens the relational store. Two backends are supported:
// sqlite (the default, file- or memory-backed) and postgres. Queries
// throughout the codebase are written with "?" placeholders; Rebind
// translates them for postgres.
package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"oraex/internal/config"
)

// Database bundles the sql handle with its dialect.
type Database struct {
	SQL    *sql.DB
	Driver string
}

// Open connects to the configured backend and ensures the schema exists.
func Open(cfg config.Config) (*Database, error) {
	var (
		handle *sql.DB
		err    error
	)
	switch cfg.DBDriver {
	case "", "sqlite":
		dsn := cfg.DBPath + "?_journal_mode=WAL&_foreign_keys=on"
		if cfg.DBPath == ":memory:" {
			dsn = ":memory:?_foreign_keys=on"
		}
		handle, err = sql.Open("sqlite3", dsn)
		if err == nil && cfg.DBPath == ":memory:" {
			// Every pooled connection to :memory: would get its own
			// database; pin the pool to a single connection.
			handle.SetMaxOpenConns(1)
		}
	case "postgres":
		handle, err = sql.Open("pgx", cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := handle.Ping(); err != nil {
		handle.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	database := &Database{SQL: handle, Driver: driverName(cfg.DBDriver)}
	if err := database.initSchema(); err != nil {
		handle.Close()
		return nil, err
	}
	return database, nil
}

func driverName(configured string) string {
	if configured == "postgres" {
		return "postgres"
	}
	return "sqlite"
}

func (d *Database) Close() error {
	return d.SQL.Close()
}

func (d *Database) initSchema() error {
	schema := schemaSqlite
	if d.Driver == "postgres" {
		schema = schemaPostgres
	}
	for _, stmt := range strings.Split(schema, ";\n") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := d.SQL.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Rebind rewrites "?" placeholders to "$N" for postgres. The sqlite driver
// takes "?" natively, so the query passes through unchanged.
func (d *Database) Rebind(query string) string {
	if d.Driver != "postgres" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
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
