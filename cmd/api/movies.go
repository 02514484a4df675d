package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/markponce/videostore/internal/data"
	"github.com/markponce/videostore/internal/validator"
)

func (app *application) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := app.models.Movies.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, movies, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listMoviesByTitleHandler(w http.ResponseWriter, r *http.Request) {
	app.listMoviesWindow(w, r, "title", data.TitleWindow)
}

func (app *application) listMoviesByReleaseHandler(w http.ResponseWriter, r *http.Request) {
	app.listMoviesWindow(w, r, "-release_date", data.ReleaseWindow)
}

func (app *application) listMoviesWindow(w http.ResponseWriter, r *http.Request, sort string, safelist []string) {
	records, err := app.readIntParam(r, "records")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	offset, err := app.readIntParam(r, "offset")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	window := data.Window{
		Limit:        records,
		Offset:       offset,
		Sort:         sort,
		SortSafelist: safelist,
	}

	v := validator.New()
	if data.ValidateWindow(v, window); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	movies, err := app.models.Movies.GetWindow(r.Context(), window)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, movies, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) showMovieAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	// title is a catch-all so that titles containing "/" reach the model.
	title := strings.TrimSpace(strings.TrimPrefix(app.readStringParam(r, "title"), "/"))

	v := validator.New()
	v.Check(title != "", "title", "must be provided")
	v.Check(len(title) <= 500, "title", "must not be more than 500 bytes long")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	availability, err := app.models.Movies.Availability(r.Context(), title)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, availability, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
