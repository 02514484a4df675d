package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/markponce/videostore/internal/data"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()

	cfg := config{
		port: 4000,
		env:  "test",
		db:   db{name: "test", dir: t.TempDir()},
	}

	store, err := openDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Provision(ctx, data.Tables...))

	seeds, err := data.LoadSeeds()
	require.NoError(t, err)
	require.NoError(t, store.Seed(ctx, seeds))

	return &application{
		config: cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		models: data.NewModels(store),
	}
}

func (app *application) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	return app.request(t, http.MethodGet, path)
}

func (app *application) request(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	rr := httptest.NewRecorder()
	app.routes().ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}
