// Package store holds every query the application runs. Loaders replace
// whole tables inside a transaction; readers build filtered, paginated
// queries on top of the same handle.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"oraex/internal/db"
)

// Store wraps the database handle. All methods take a context and return
// explicit errors; none of them retry.
type Store struct {
	DB *db.Database
}

func New(database *db.Database) *Store {
	return &Store{DB: database}
}

// ListOptions carries the common pagination and search parameters.
type ListOptions struct {
	Search   string
	Page     int
	PageSize int
}

func (o ListOptions) limitOffset() (int, int) {
	size := o.PageSize
	if size <= 0 {
		size = 50
	}
	if size > 500 {
		size = 500
	}
	page := o.Page
	if page <= 0 {
		page = 1
	}
	return size, (page - 1) * size
}

// filterBuilder accumulates WHERE clauses with "?" placeholders. Rebind
// handles the postgres translation at query time.
type filterBuilder struct {
	clauses []string
	args    []any
}

func (f *filterBuilder) add(clause string, args ...any) {
	f.clauses = append(f.clauses, clause)
	f.args = append(f.args, args...)
}

func (f *filterBuilder) where() string {
	if len(f.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.clauses, " AND ")
}

func (s *Store) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	err := s.DB.SQL.QueryRowContext(ctx, s.DB.Rebind(query), args...).Scan(&n)
	return n, err
}

// replaceAll deletes every row of table and re-inserts rows through insert,
// all inside one transaction. On any error the table keeps its previous
// contents.
func (s *Store) replaceAll(ctx context.Context, table string, insert func(*sql.Tx) error) error {
	tx, err := s.DB.SQL.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s refresh: %w", table, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		return fmt.Errorf("reload %s: %w", table, err)
	}
	return tx.Commit()
}

func distinctValues(ctx context.Context, s *Store, query string) ([]string, error) {
	rows, err := s.DB.SQL.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if v != "" {
			out = append(out, v)
		}
	}
	return out, rows.Err()
}
