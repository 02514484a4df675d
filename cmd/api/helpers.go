package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
)

type envelop map[string]any

var errMissingParam = errors.New("missing parameter")

// readIntParam reads the named path parameter as an integer. Range checks
// are left to the caller's validator.
func (app *application) readIntParam(r *http.Request, name string) (int, error) {
	params := httprouter.ParamsFromContext(r.Context())

	value := params.ByName(name)
	if value == "" {
		return 0, fmt.Errorf("%w: %s", errMissingParam, name)
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}

	return n, nil
}

// readIDParam reads the "id" path parameter, which must be a positive integer.
func (app *application) readIDParam(r *http.Request) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())

	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}

	return id, nil
}

// readStringParam returns the named path parameter with surrounding
// whitespace removed.
func (app *application) readStringParam(r *http.Request, name string) string {
	params := httprouter.ParamsFromContext(r.Context())
	return strings.TrimSpace(params.ByName(name))
}

func (app *application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}

	// Append a newline to make it easier to view in terminal applications.
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}
