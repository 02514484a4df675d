package main

import (
	"net/http"
)

func (app *application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	store := app.models.Movies.Store

	database := "available"
	if err := store.DB.PingContext(r.Context()); err != nil {
		app.logError(r, err)
		database = "unavailable"
	}

	data := envelop{
		"status": "available",
		"system_info": map[string]string{
			"environment": app.config.env,
			"version":     version,
			"database":    database,
			"dialect":     store.Dialect.Name,
		},
	}

	err := app.writeJSON(w, http.StatusOK, data, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
