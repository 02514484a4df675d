package data

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed seeds/*.json
var seedsFS embed.FS

// SeedData is a set of rows to load into freshly provisioned tables.
// Customers are inserted in order, so the n-th customer gets id n on an
// empty table and rentals can refer to it by position.
type SeedData struct {
	Movies    []Movie
	Customers []Customer
	Rentals   []Rental
}

// LoadSeeds reads the bundled sample data.
func LoadSeeds() (SeedData, error) {
	var seeds SeedData

	files := []struct {
		name string
		dst  any
	}{
		{"seeds/movies.json", &seeds.Movies},
		{"seeds/customers.json", &seeds.Customers},
		{"seeds/rentals.json", &seeds.Rentals},
	}

	for _, f := range files {
		b, err := seedsFS.ReadFile(f.name)
		if err != nil {
			return SeedData{}, err
		}
		if err := json.Unmarshal(b, f.dst); err != nil {
			return SeedData{}, fmt.Errorf("decode %s: %w", f.name, err)
		}
	}

	return seeds, nil
}

// Seed inserts data in a single transaction. Only ctx bounds the run.
func (s *Store) Seed(ctx context.Context, data SeedData) error {
	return s.withConnTimeout(ctx, 0, func(ctx context.Context, conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		for _, m := range data.Movies {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO movies (title, overview, release_date, inventory)
				VALUES ($1, $2, $3, $4)`,
				m.Title, m.Overview, m.ReleaseDate, m.Inventory)
			if err != nil {
				return fmt.Errorf("seed movie %q: %w", m.Title, err)
			}
		}

		for _, c := range data.Customers {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO customers (name, registered_at, address, city, state, postal_code, phone, account_credit)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				c.Name, c.RegisteredAt, c.Address, c.City, c.State, c.PostalCode, c.Phone, c.AccountCredit)
			if err != nil {
				return fmt.Errorf("seed customer %q: %w", c.Name, err)
			}
		}

		for _, r := range data.Rentals {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO rentals (movie_title, customer_id, checkout_date, due_date, return_date)
				VALUES ($1, $2, $3, $4, $5)`,
				r.MovieTitle, r.CustomerID, r.CheckoutDate, r.DueDate, r.ReturnDate)
			if err != nil {
				return fmt.Errorf("seed rental of %q: %w", r.MovieTitle, err)
			}
		}

		return tx.Commit()
	})
}
