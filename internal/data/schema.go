package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type Column struct {
	Name string
	Type string
}

// Table declares a table as the list of columns added after the id.
type Table struct {
	Name    string
	Columns []Column
}

var (
	MoviesTable = Table{
		Name: "movies",
		Columns: []Column{
			{"title", "text"},
			{"overview", "text"},
			{"release_date", "text"},
			{"inventory", "integer"},
		},
	}

	CustomersTable = Table{
		Name: "customers",
		Columns: []Column{
			{"name", "text"},
			{"registered_at", "text"},
			{"address", "text"},
			{"city", "text"},
			{"state", "text"},
			{"postal_code", "text"},
			{"phone", "text"},
			{"account_credit", "real"},
		},
	}

	RentalsTable = Table{
		Name: "rentals",
		Columns: []Column{
			{"movie_title", "text"},
			{"customer_id", "integer"},
			{"checkout_date", "text"},
			{"due_date", "text"},
			{"return_date", "text"},
		},
	}

	Tables = []Table{MoviesTable, CustomersTable, RentalsTable}
)

// LookupTable returns the declared table called name.
func LookupTable(name string) (Table, error) {
	for _, t := range Tables {
		if t.Name == name {
			return t, nil
		}
	}
	return Table{}, fmt.Errorf("%w: %s", ErrUnknownTable, name)
}

// Provision drops and recreates each table, then adds its columns one at
// a time. Existing rows are lost. Only ctx bounds the run.
func (s *Store) Provision(ctx context.Context, tables ...Table) error {
	return s.withConnTimeout(ctx, 0, func(ctx context.Context, conn *sql.Conn) error {
		for _, t := range tables {
			name := pq.QuoteIdentifier(t.Name)

			stmts := []string{
				`DROP TABLE IF EXISTS ` + name,
				`CREATE TABLE ` + name + ` (` + s.Dialect.AutoID + `)`,
			}
			for _, c := range t.Columns {
				stmts = append(stmts, `ALTER TABLE `+name+` ADD COLUMN `+pq.QuoteIdentifier(c.Name)+` `+c.Type)
			}

			for _, stmt := range stmts {
				if _, err := conn.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("provision %s: %w", t.Name, err)
				}
			}
		}
		return nil
	})
}

// Columns reports the columns of table as the database sees them, in
// declaration order. Types are lower-cased.
func (s *Store) Columns(ctx context.Context, table string) ([]Column, error) {
	query := `SELECT name, type FROM pragma_table_info($1) ORDER BY cid`
	if s.Dialect == Postgres {
		query = `
			SELECT column_name, data_type
			FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1
			ORDER BY ordinal_position`
	}

	var columns []Column

	err := s.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		columns, err = queryRows(ctx, conn, func(row scanner) (Column, error) {
			var c Column
			err := row.Scan(&c.Name, &c.Type)
			c.Type = strings.ToLower(c.Type)
			return c, err
		}, query, table)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", table, err)
	}

	return columns, nil
}

// Count returns the number of rows in table.
func (s *Store) Count(ctx context.Context, table Table) (int, error) {
	var n int

	err := s.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+pq.QuoteIdentifier(table.Name)).Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table.Name, err)
	}

	return n, nil
}
