package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(Config{Name: "test", Dir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Provision(context.Background(), Tables...))
	return store
}

func seedStore(t *testing.T, store *Store, data SeedData) {
	t.Helper()
	require.NoError(t, store.Seed(context.Background(), data))
}

func openRental(title string, customerID int64) Rental {
	return Rental{MovieTitle: title, CustomerID: customerID, CheckoutDate: "2015-09-01", DueDate: "2015-09-08"}
}

func returnedRental(title string, customerID int64) Rental {
	returned := "2015-09-05"
	r := openRental(title, customerID)
	r.ReturnDate = &returned
	return r
}

func titles(movies []Movie) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Title)
	}
	return out
}
