package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Movie struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	ReleaseDate string `json:"release_date"`
	Inventory   int    `json:"inventory"`
}

// Availability is a movie together with the number of copies on the shelf.
type Availability struct {
	Movie     Movie
	Available int
}

// MarshalJSON renders the pair as [movie, {"Available": n}].
func (a Availability) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{
		a.Movie,
		map[string]int{"Available": a.Available},
	})
}

type MovieModel struct {
	Store *Store
}

const movieColumns = `movies.id, movies.title, movies.overview, movies.release_date, movies.inventory`

func scanMovie(row scanner) (Movie, error) {
	var movie Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Overview,
		&movie.ReleaseDate,
		&movie.Inventory,
	)
	return movie, err
}

func (m MovieModel) GetAll(ctx context.Context) ([]Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		ORDER BY movies.id`

	var movies []Movie

	err := m.Store.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		movies, err = queryRows(ctx, conn, scanMovie, query)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	return movies, nil
}

// GetByTitle returns a window of movies ordered by title.
func (m MovieModel) GetByTitle(ctx context.Context, limit, offset int) ([]Movie, error) {
	return m.GetWindow(ctx, Window{Limit: limit, Offset: offset, Sort: "title", SortSafelist: TitleWindow})
}

// GetByRelease returns a window of movies, newest release_date first. The
// column is free-form text so the order is lexical.
func (m MovieModel) GetByRelease(ctx context.Context, limit, offset int) ([]Movie, error) {
	return m.GetWindow(ctx, Window{Limit: limit, Offset: offset, Sort: "-release_date", SortSafelist: ReleaseWindow})
}

func (m MovieModel) GetWindow(ctx context.Context, w Window) ([]Movie, error) {
	// id is a secondary sort so that equal keys page deterministically.
	query := fmt.Sprintf(`
		SELECT `+movieColumns+`
		FROM movies
		ORDER BY movies.%s %s, movies.id ASC
		LIMIT $1 OFFSET $2`, w.sortColumn(), w.sortDirection())

	var movies []Movie

	err := m.Store.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		movies, err = queryRows(ctx, conn, scanMovie, query, w.limit(), w.offset())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list movies by %s: %w", w.sortColumn(), err)
	}

	return movies, nil
}

// Availability resolves the movie whose title contains q and counts its
// open rentals. When several titles match, an exact (case-insensitive)
// match wins, then the lexically first title.
func (m MovieModel) Availability(ctx context.Context, q string) (*Availability, error) {
	// candidate picks the single movie q resolves to, so both queries below
	// agree on which title they are looking at.
	candidate := `
		SELECT movies.id
		FROM movies
		WHERE lower(movies.title) LIKE lower($1) ESCAPE '\'
		ORDER BY lower(movies.title) = lower($2) DESC, movies.title ASC, movies.id ASC
		LIMIT 1`

	rentedQuery := `
		SELECT ` + movieColumns + `, COUNT(rentals.id)
		FROM movies
		INNER JOIN rentals ON rentals.movie_title = movies.title
		WHERE movies.id = (` + candidate + `)
		AND rentals.return_date IS NULL
		GROUP BY ` + movieColumns

	moviesQuery := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE movies.id = (` + candidate + `)`

	// SQLite's lower() folds ASCII only, so the input is folded here.
	q = strings.ToLower(q)
	pattern := likePattern(q)

	var result Availability

	err := m.Store.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		var rented int
		err := conn.QueryRowContext(ctx, rentedQuery, pattern, q).Scan(
			&result.Movie.ID,
			&result.Movie.Title,
			&result.Movie.Overview,
			&result.Movie.ReleaseDate,
			&result.Movie.Inventory,
			&rented,
		)
		switch {
		case err == nil:
			result.Available = result.Movie.Inventory - rented
			return nil
		case !errors.Is(err, sql.ErrNoRows):
			return err
		}

		// No open rentals for the movie: fall back to the movies table
		// alone, nothing is checked out.
		result.Movie, err = scanMovie(conn.QueryRowContext(ctx, moviesQuery, pattern, q))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrRecordNotFound
			}
			return err
		}
		result.Available = result.Movie.Inventory
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("movie availability %q: %w", q, err)
	}

	return &result, nil
}
