package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// queryTimeout bounds every model call, on top of the request context.
const queryTimeout = 3 * time.Second

// Dialect captures the few places where SQLite and PostgreSQL disagree.
// Queries are written with $N placeholders, which both drivers accept.
type Dialect struct {
	Name   string
	Driver string
	// AutoID is the column definition for an auto-assigned integer primary key.
	AutoID string
}

var (
	SQLite = Dialect{
		Name:   "sqlite",
		Driver: "sqlite",
		AutoID: "id INTEGER PRIMARY KEY",
	}
	Postgres = Dialect{
		Name:   "postgres",
		Driver: "postgres",
		AutoID: "id BIGSERIAL PRIMARY KEY",
	}
)

// Config selects the database the store talks to. When DSN is empty the
// store opens the SQLite file <Dir>/<Name>.db.
type Config struct {
	Name         string
	Dir          string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

// Target resolves the dialect and driver source name for the config.
func (c Config) Target() (Dialect, string) {
	if strings.HasPrefix(c.DSN, "postgres://") || strings.HasPrefix(c.DSN, "postgresql://") {
		return Postgres, c.DSN
	}
	if c.DSN != "" {
		return SQLite, c.DSN
	}

	name := c.Name
	if name == "" {
		name = "development"
	}
	dir := c.Dir
	if dir == "" {
		dir = "db"
	}

	path := filepath.Join(dir, name+".db")
	return SQLite, "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// Store is the datastore accessor. It owns the connection pool; callers
// never see a connection outside of withConn.
type Store struct {
	DB      *sql.DB
	Dialect Dialect
}

// Open creates the pool for cfg and verifies it with a ping.
func Open(cfg Config) (*Store, error) {
	dialect, dsn := cfg.Target()

	if dialect == SQLite && cfg.DSN == "" {
		dir := cfg.Dir
		if dir == "" {
			dir = "db"
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.MaxIdleTime)
	}

	// Create a context with a 5-second timeout deadline for the initial ping.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{DB: db, Dialect: dialect}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// withConn checks a dedicated connection out of the pool for the duration
// of fn and always returns it, whatever fn does. fn runs under queryTimeout.
func (s *Store) withConn(ctx context.Context, fn func(ctx context.Context, conn *sql.Conn) error) error {
	return s.withConnTimeout(ctx, queryTimeout, fn)
}

// withConnTimeout is withConn with an explicit deadline. A zero timeout
// leaves the caller's context as the only bound, for bulk work such as
// provisioning and seeding.
func (s *Store) withConnTimeout(ctx context.Context, timeout time.Duration, fn func(ctx context.Context, conn *sql.Conn) error) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn, err := s.DB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(ctx, conn)
}

// scanner is satisfied by *sql.Rows and *sql.Row.
type scanner interface {
	Scan(dest ...any) error
}

// queryRows runs query on conn and maps every row with scan. The result is
// never nil so empty listings encode as [].
func queryRows[T any](ctx context.Context, conn *sql.Conn, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []T{}

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// likePattern turns a user supplied fragment into a LIKE pattern matching
// it as a literal substring. Use with ESCAPE '\'.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
