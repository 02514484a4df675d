package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)

	router.HandlerFunc(http.MethodGet, "/movies", app.listMoviesHandler)
	router.HandlerFunc(http.MethodGet, "/movies/title/:records/:offset", app.listMoviesByTitleHandler)
	router.HandlerFunc(http.MethodGet, "/movies/released/:records/:offset", app.listMoviesByReleaseHandler)
	router.HandlerFunc(http.MethodGet, "/movies/available/*title", app.showMovieAvailabilityHandler)

	router.HandlerFunc(http.MethodGet, "/customers", app.listCustomersHandler)
	router.HandlerFunc(http.MethodGet, "/customers/name/:query", app.listCustomersByNameHandler)
	router.HandlerFunc(http.MethodGet, "/customers/registered/:query", app.listCustomersByRegisteredHandler)
	router.HandlerFunc(http.MethodGet, "/customers/postal/:query", app.listCustomersByPostalHandler)
	router.HandlerFunc(http.MethodGet, "/customers/current/:id", app.listCurrentRentalsHandler)
	router.HandlerFunc(http.MethodGet, "/customers/history/:id", app.listRentalHistoryHandler)

	return app.recoverPanic(app.requestID(app.logRequest(app.rateLimit(router))))
}
