package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvisionIsRepeatable(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := []Column{
		{"id", "integer"},
		{"title", "text"},
		{"overview", "text"},
		{"release_date", "text"},
		{"inventory", "integer"},
	}

	first, err := store.Columns(ctx, "movies")
	require.NoError(t, err)
	assert.Equal(t, want, first)

	seedStore(t, store, SeedData{Movies: []Movie{{Title: "Jaws", Inventory: 10}}})
	n, err := store.Count(ctx, MoviesTable)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.Provision(ctx, MoviesTable))

	second, err := store.Columns(ctx, "movies")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	n, err = store.Count(ctx, MoviesTable)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestProvisionAssignsIDs(t *testing.T) {
	store := newTestStore(t)
	seedStore(t, store, SeedData{Movies: []Movie{{Title: "Jaws"}, {Title: "Maws"}}})

	require.NoError(t, store.Provision(context.Background(), MoviesTable))
	seedStore(t, store, SeedData{Movies: []Movie{{Title: "Rope"}}})

	movies, err := NewModels(store).Movies.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, int64(1), movies[0].ID)
}

func TestLookupTable(t *testing.T) {
	table, err := LookupTable("rentals")
	require.NoError(t, err)
	assert.Equal(t, RentalsTable.Name, table.Name)

	_, err = LookupTable("users")
	assert.ErrorIs(t, err, ErrUnknownTable)
}
