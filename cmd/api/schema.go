package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/markponce/videostore/internal/data"
)

func newMigrateCmd(cfg *config) *cobra.Command {
	var tables []string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Drop and recreate the database tables (destroys existing rows)",
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := selectTables(tables)
			if err != nil {
				return err
			}
			return runMigrate(cmd.Context(), *cfg, selected)
		},
	}

	cmd.Flags().StringSliceVar(&tables, "tables", []string{"movies", "customers", "rentals"}, "Tables to recreate")

	return cmd
}

func newSeedCmd(cfg *config) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the bundled sample movies, customers and rentals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if migrate {
				if err := runMigrate(cmd.Context(), *cfg, data.Tables); err != nil {
					return err
				}
			}
			return runSeed(cmd.Context(), *cfg)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "Recreate all tables before seeding")

	return cmd
}

func selectTables(names []string) ([]data.Table, error) {
	var tables []data.Table
	for _, name := range names {
		t, err := data.LookupTable(name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func runMigrate(ctx context.Context, cfg config, tables []data.Table) error {
	logger := newLogger(cfg)

	store, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := store.Provision(ctx, tables...); err != nil {
		return err
	}

	for _, t := range tables {
		columns, err := store.Columns(ctx, t.Name)
		if err != nil {
			return err
		}
		logger.Info("table provisioned", "db", cfg.db.name, "table", t.Name, "columns", len(columns))
	}

	return nil
}

func runSeed(ctx context.Context, cfg config) error {
	logger := newLogger(cfg)

	seeds, err := data.LoadSeeds()
	if err != nil {
		return err
	}

	store, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Seed(ctx, seeds); err != nil {
		return fmt.Errorf("seed %s: %w", cfg.db.name, err)
	}

	logger.Info("database seeded",
		"db", cfg.db.name,
		"movies", len(seeds.Movies),
		"customers", len(seeds.Customers),
		"rentals", len(seeds.Rentals),
	)

	return nil
}
