package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type Customer struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	RegisteredAt  string  `json:"registered_at"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	PostalCode    string  `json:"postal_code"`
	Phone         string  `json:"phone"`
	AccountCredit float64 `json:"account_credit"`
}

// Rental links a movie, by title, to a customer. ReturnDate is nil while
// the copy is checked out.
type Rental struct {
	ID           int64   `json:"id"`
	MovieTitle   string  `json:"movie_title"`
	CustomerID   int64   `json:"customer_id"`
	CheckoutDate string  `json:"checkout_date"`
	DueDate      string  `json:"due_date"`
	ReturnDate   *string `json:"return_date"`
}

type CustomerModel struct {
	Store *Store
}

const customerColumns = `customers.id, customers.name, customers.registered_at, customers.address,
	customers.city, customers.state, customers.postal_code, customers.phone, customers.account_credit`

const rentalColumns = `rentals.id, rentals.movie_title, rentals.customer_id,
	rentals.checkout_date, rentals.due_date, rentals.return_date`

func scanCustomer(row scanner) (Customer, error) {
	var c Customer
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.RegisteredAt,
		&c.Address,
		&c.City,
		&c.State,
		&c.PostalCode,
		&c.Phone,
		&c.AccountCredit,
	)
	return c, err
}

func scanRental(row scanner) (Rental, error) {
	var r Rental
	var returned sql.NullString
	err := row.Scan(
		&r.ID,
		&r.MovieTitle,
		&r.CustomerID,
		&r.CheckoutDate,
		&r.DueDate,
		&returned,
	)
	if returned.Valid {
		r.ReturnDate = &returned.String
	}
	return r, err
}

func (m CustomerModel) GetAll(ctx context.Context) ([]Customer, error) {
	return m.find(ctx, "all", `TRUE`)
}

// GetByName matches a case-insensitive substring of the customer name.
func (m CustomerModel) GetByName(ctx context.Context, q string) ([]Customer, error) {
	return m.find(ctx, "name", `lower(customers.name) LIKE lower($1) ESCAPE '\'`, likePattern(strings.ToLower(q)))
}

// GetByRegistered matches a case-insensitive substring of the registration
// date text, so a year or a month and year selects everyone registered in it.
func (m CustomerModel) GetByRegistered(ctx context.Context, q string) ([]Customer, error) {
	return m.find(ctx, "registered_at", `lower(customers.registered_at) LIKE lower($1) ESCAPE '\'`, likePattern(strings.ToLower(q)))
}

func (m CustomerModel) GetByPostal(ctx context.Context, postal string) ([]Customer, error) {
	return m.find(ctx, "postal_code", `customers.postal_code = $1`, postal)
}

func (m CustomerModel) find(ctx context.Context, key, where string, args ...any) ([]Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE ` + where + `
		ORDER BY customers.id`

	var customers []Customer

	err := m.Store.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		customers, err = queryRows(ctx, conn, scanCustomer, query, args...)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find customers by %s: %w", key, err)
	}

	return customers, nil
}

// CurrentRentals returns the customer's rentals that have not been returned.
func (m CustomerModel) CurrentRentals(ctx context.Context, customerID int64) ([]Rental, error) {
	return m.rentals(ctx, customerID, `rentals.return_date IS NULL`)
}

// RentalHistory returns the customer's returned rentals.
func (m CustomerModel) RentalHistory(ctx context.Context, customerID int64) ([]Rental, error) {
	return m.rentals(ctx, customerID, `rentals.return_date IS NOT NULL`)
}

func (m CustomerModel) rentals(ctx context.Context, customerID int64, status string) ([]Rental, error) {
	// Ids start at 1, so anything lower cannot name a customer.
	if customerID < 1 {
		return nil, ErrRecordNotFound
	}

	exists := `SELECT customers.id FROM customers WHERE customers.id = $1`

	query := `
		SELECT ` + rentalColumns + `
		FROM rentals
		INNER JOIN customers ON customers.id = rentals.customer_id
		WHERE customers.id = $1 AND ` + status + `
		ORDER BY rentals.checkout_date, rentals.id`

	var rentals []Rental

	err := m.Store.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		var id int64
		err := conn.QueryRowContext(ctx, exists, customerID).Scan(&id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrRecordNotFound
			}
			return err
		}

		rentals, err = queryRows(ctx, conn, scanRental, query, customerID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("rentals for customer %d: %w", customerID, err)
	}

	return rentals, nil
}
