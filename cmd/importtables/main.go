// Command importtables loads weight and substitution tables from files into the database.
// Existing table content is replaced in one transaction.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/nkiryanov/modcheck/internal/db"
	"github.com/nkiryanov/modcheck/internal/logger"
	"github.com/nkiryanov/modcheck/internal/repository"
	"github.com/nkiryanov/modcheck/internal/repository/postgres"
	"github.com/nkiryanov/modcheck/internal/substitution"
	"github.com/nkiryanov/modcheck/internal/weighttable"
)

type options struct {
	DatabaseDSN       string
	WeightsFile       string
	SubstitutionsFile string
	LogLevel          string
}

func parseOptions(getenv func(string) string, args []string) (options, error) {
	o := options{
		DatabaseDSN:       getenv("DATABASE_URI"),
		WeightsFile:       getenv("WEIGHTS_FILE"),
		SubstitutionsFile: getenv("SUBSTITUTIONS_FILE"),
		LogLevel:          logger.LevelInfo,
	}

	fs := pflag.NewFlagSet("importtables", pflag.ContinueOnError)
	fs.StringVarP(&o.DatabaseDSN, "database", "d", o.DatabaseDSN, "Database connection string")
	fs.StringVarP(&o.WeightsFile, "weights", "w", o.WeightsFile, "Weight table file")
	fs.StringVarP(&o.SubstitutionsFile, "substitutions", "s", o.SubstitutionsFile, "Sort code substitution file")
	fs.StringVarP(&o.LogLevel, "log-level", "l", o.LogLevel, "Logging level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	switch {
	case o.DatabaseDSN == "":
		return o, errors.New("database connection string is required")
	case o.WeightsFile == "":
		return o, errors.New("weights file is required")
	}

	return o, nil
}

// Both files are parsed before the database is touched
func importTables(ctx context.Context, storage repository.Storage, o options, l logger.Logger) error {
	weights, err := weighttable.Load(o.WeightsFile)
	if err != nil {
		return fmt.Errorf("error while loading weights: %w", err)
	}

	var subs *substitution.Table
	if o.SubstitutionsFile != "" {
		subs, err = substitution.Load(o.SubstitutionsFile)
		if err != nil {
			return fmt.Errorf("error while loading substitutions: %w", err)
		}
	}

	err = storage.InTx(ctx, func(s repository.Storage) error {
		if err := s.ReplaceWeights(ctx, weights.Entries()); err != nil {
			return err
		}
		return s.ReplaceSubstitutions(ctx, subs.Pairs())
	})
	if err != nil {
		return fmt.Errorf("error while importing tables: %w", err)
	}

	l.Info("Tables imported", "weights", weights.Len(), "substitutions", subs.Len())
	return nil
}

func run(ctx context.Context, getenv func(string) string, args []string) error {
	o, err := parseOptions(getenv, args)
	if err != nil {
		return err
	}

	l, err := logger.NewTextLogger(o.LogLevel)
	if err != nil {
		return err
	}

	pool, err := db.ConnectAndMigrate(ctx, o.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("error while connecting to db. Err: %w", err)
	}
	defer pool.Close()

	return importTables(ctx, postgres.NewStorage(pool), o, l)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Getenv, os.Args[1:]); err != nil {
		slog.Error("import failed", "error", err.Error())
		cancel()
		os.Exit(1) //nolint:gocritic
	}
}
