package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markponce/videostore/internal/data"
)

func TestMigrateThenSeed(t *testing.T) {
	cfg := config{
		env:      "test",
		logLevel: slog.LevelError,
		db:       db{name: "test", dir: t.TempDir()},
	}
	ctx := context.Background()

	require.NoError(t, runMigrate(ctx, cfg, data.Tables))
	require.NoError(t, runSeed(ctx, cfg))

	store, err := openDB(cfg)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Count(ctx, data.MoviesTable)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	// Recreating only movies leaves the other tables alone.
	require.NoError(t, runMigrate(ctx, cfg, []data.Table{data.MoviesTable}))

	n, err = store.Count(ctx, data.MoviesTable)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = store.Count(ctx, data.CustomersTable)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestSelectTables(t *testing.T) {
	tables, err := selectTables([]string{"rentals", "movies"})
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "rentals", tables[0].Name)
	assert.Equal(t, "movies", tables[1].Name)

	_, err = selectTables([]string{"movies", "users"})
	assert.ErrorIs(t, err, data.ErrUnknownTable)
}
