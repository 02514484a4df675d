package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/markponce/videostore/internal/validator"
)

// envBindings maps config keys to the environment variables that may set
// them, besides the VIDEOSTORE_ prefixed form.
var envBindings = map[string]string{
	"db.name": "DB",
	"port":    "PORT",
}

func registerFlags(flags *pflag.FlagSet) {
	flags.Int("port", 4000, "API server port")
	flags.String("env", "development", "Environment (development|test|staging|production)")
	flags.String("log-level", "info", "Log level (debug|info|warn|error)")
	flags.String("db-name", "", "Named database file, defaults to the environment")
	flags.String("db-dir", "db", "Directory holding the named database files")
	flags.String("db-dsn", "", "Database DSN, overrides the named file (postgres:// selects PostgreSQL)")
	flags.Int("db-max-open-conns", 25, "Database max open connections")
	flags.Int("db-max-idle-conns", 25, "Database max idle connections")
	flags.Duration("db-max-idle-time", 15*time.Minute, "Database max connection idle time")
	flags.Float64("limiter-rps", 2, "Rate limiter maximum requests per second")
	flags.Int("limiter-burst", 4, "Rate limiter maximum burst")
	flags.Bool("limiter-enabled", true, "Enable rate limiter")
}

// bindFlags registers every flag with viper under its dotted key, so that
// --db-max-open-conns and VIDEOSTORE_DB_MAX_OPEN_CONNS both set db.max_open_conns.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		key := flagKey(f.Name)
		_ = v.BindPFlag(key, f)

		envs := []string{key, "VIDEOSTORE_" + strings.ToUpper(strings.NewReplacer(".", "_").Replace(key))}
		if extra, ok := envBindings[key]; ok {
			envs = append(envs, extra)
		}
		_ = v.BindEnv(envs...)
	})
}

// flagKey turns "db-max-open-conns" into "db.max_open_conns".
func flagKey(name string) string {
	for _, prefix := range []string{"db", "limiter", "log"} {
		if rest, ok := strings.CutPrefix(name, prefix+"-"); ok {
			return prefix + "." + strings.ReplaceAll(rest, "-", "_")
		}
	}
	return strings.ReplaceAll(name, "-", "_")
}

func loadConfig(v *viper.Viper, cfgFile string) (config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("error reading config: %w", err)
		}
	}

	cfg := config{
		port: v.GetInt("port"),
		env:  v.GetString("env"),
		db: db{
			name:         v.GetString("db.name"),
			dir:          v.GetString("db.dir"),
			dsn:          v.GetString("db.dsn"),
			maxOpenConns: v.GetInt("db.max_open_conns"),
			maxIdleConns: v.GetInt("db.max_idle_conns"),
			maxIdleTime:  v.GetDuration("db.max_idle_time"),
		},
		limiter: limiter{
			rps:     v.GetFloat64("limiter.rps"),
			burst:   v.GetInt("limiter.burst"),
			enabled: v.GetBool("limiter.enabled"),
		},
	}

	// The database name follows the environment unless DB says otherwise.
	if cfg.db.name == "" {
		cfg.db.name = cfg.env
	}

	if err := cfg.logLevel.UnmarshalText([]byte(v.GetString("log.level"))); err != nil {
		return config{}, fmt.Errorf("invalid configuration: log.level: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg config) error {
	v := validator.New()

	v.Check(cfg.port > 0 && cfg.port <= 65535, "port", "must be between 1 and 65535")
	v.Check(validator.PermittedValue(cfg.env, "development", "test", "staging", "production"), "env", "must be development, test, staging or production")
	v.Check(cfg.db.name != "" || cfg.db.dsn != "", "db.name", "must be provided")
	v.Check(!strings.ContainsAny(cfg.db.name, `/\`), "db.name", "must not contain path separators")
	v.Check(cfg.db.maxOpenConns >= 0, "db.max_open_conns", "must not be negative")
	v.Check(cfg.limiter.rps > 0 || !cfg.limiter.enabled, "limiter.rps", "must be greater than zero")
	v.Check(cfg.limiter.burst > 0 || !cfg.limiter.enabled, "limiter.burst", "must be greater than zero")

	if v.Valid() {
		return nil
	}

	var errs []error
	for key, msg := range v.Errors {
		errs = append(errs, fmt.Errorf("%s %s", key, msg))
	}
	return errors.Join(errs...)
}

// LogValue keeps the DSN, which may carry credentials, out of the logs.
func (cfg config) LogValue() slog.Value {
	dsn := ""
	if cfg.db.dsn != "" {
		dsn = "set"
	}
	return slog.GroupValue(
		slog.Int("port", cfg.port),
		slog.String("env", cfg.env),
		slog.String("db", cfg.db.name),
		slog.String("dsn", dsn),
		slog.Bool("limiter", cfg.limiter.enabled),
	)
}
