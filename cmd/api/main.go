package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/markponce/videostore/internal/data"
)

// Declare a string containing the application version number.
const version = "1.0.0"

type db struct {
	name         string
	dir          string
	dsn          string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  time.Duration
}

type limiter struct {
	rps     float64
	burst   int
	enabled bool
}

// Define a config struct to hold all the configuration settings for our application.
type config struct {
	port     int
	env      string
	logLevel slog.Level
	db       db
	limiter  limiter
}

// Define an application struct to hold the dependencies for our HTTP handlers, helpers,
// and middleware.
type application struct {
	config config
	logger *slog.Logger
	models data.Models
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string
	var cfg config

	rootCmd := &cobra.Command{
		Use:           "videostore",
		Short:         "Read-only JSON API over the video store database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(v, cfgFile)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	registerFlags(flags)
	bindFlags(v, flags)

	rootCmd.AddCommand(newServeCmd(&cfg))
	rootCmd.AddCommand(newMigrateCmd(&cfg))
	rootCmd.AddCommand(newSeedCmd(&cfg))

	return rootCmd
}

func newServeCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*cfg)
		},
	}
}

func newLogger(cfg config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.logLevel,
	}))
}

func runServer(cfg config) error {
	logger := newLogger(cfg)

	// Call the openDB() helper function (see below) to create the connection pool,
	// passing in the config struct.
	store, err := openDB(cfg)
	if err != nil {
		return err
	}

	// Defer a call to store.Close() so that the connection pool is closed before
	// the server returns.
	defer store.Close()

	logger.Info("database connection pool established", "dialect", store.Dialect.Name)

	app := &application{
		config: cfg,
		logger: logger,
		models: data.NewModels(store),
	}

	return app.serve()
}

// The openDB() function returns the datastore accessor for the configured database.
func openDB(cfg config) (*data.Store, error) {
	return data.Open(cfg.db.storeConfig())
}

func (d db) storeConfig() data.Config {
	return data.Config{
		Name:         d.name,
		Dir:          d.dir,
		DSN:          d.dsn,
		MaxOpenConns: d.maxOpenConns,
		MaxIdleConns: d.maxIdleConns,
		MaxIdleTime:  d.maxIdleTime,
	}
}
