package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/markponce/videostore/internal/data"
	"github.com/markponce/videostore/internal/validator"
)

func (app *application) listCustomersHandler(w http.ResponseWriter, r *http.Request) {
	customers, err := app.models.Customers.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, customers, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listCustomersByNameHandler(w http.ResponseWriter, r *http.Request) {
	app.listCustomersBy(w, r, app.models.Customers.GetByName, nil)
}

func (app *application) listCustomersByRegisteredHandler(w http.ResponseWriter, r *http.Request) {
	app.listCustomersBy(w, r, app.models.Customers.GetByRegistered, nil)
}

func (app *application) listCustomersByPostalHandler(w http.ResponseWriter, r *http.Request) {
	app.listCustomersBy(w, r, app.models.Customers.GetByPostal, func(v *validator.Validator, q string) {
		v.Check(validator.Matches(q, validator.PostalRX), "query", "must be a valid postal code")
	})
}

// listCustomersBy validates the :query parameter and responds with the
// customers lookup finds for it.
func (app *application) listCustomersBy(
	w http.ResponseWriter,
	r *http.Request,
	lookup func(context.Context, string) ([]data.Customer, error),
	validate func(*validator.Validator, string),
) {
	query := app.readStringParam(r, "query")

	v := validator.New()
	v.Check(query != "", "query", "must be provided")
	v.Check(len(query) <= 200, "query", "must not be more than 200 bytes long")
	if validate != nil {
		validate(v, query)
	}
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	customers, err := lookup(r.Context(), query)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, customers, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listCurrentRentalsHandler(w http.ResponseWriter, r *http.Request) {
	app.listRentals(w, r, app.models.Customers.CurrentRentals)
}

func (app *application) listRentalHistoryHandler(w http.ResponseWriter, r *http.Request) {
	app.listRentals(w, r, app.models.Customers.RentalHistory)
}

func (app *application) listRentals(w http.ResponseWriter, r *http.Request, lookup func(context.Context, int64) ([]data.Rental, error)) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rentals, err := lookup(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, rentals, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
