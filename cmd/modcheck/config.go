package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/nkiryanov/modcheck/internal/logger"
	"github.com/nkiryanov/modcheck/internal/repository/cached"
)

const (
	defaultListenAddr   = "localhost:8000"
	defaultLoggingLevel = logger.LevelInfo
	defaultEnvironment  = logger.EnvProduction
	defaultCacheTTL     = cached.DefaultTTL
	defaultBatchWorkers = 8
)

type Config struct {
	// Default logging level
	LogLevel string

	// Address on which the modcheck service will be run
	ListenAddr string

	// Database to read weight and substitution tables from
	// Tables are read from files if empty
	DatabaseDSN string

	// Weight table file (valacdos layout)
	WeightsFile string

	// Sort code substitution file (scsubtab layout)
	SubstitutionsFile string

	// Address of the prometheus metrics server. Disabled if empty
	MetricsAddr string

	// How long weight lookups from database are cached
	CacheTTL time.Duration

	// Number of workers validating one batch request
	BatchWorkers int

	// Environment
	Environment string
}

func NewConfig() *Config {
	return &Config{
		LogLevel:     defaultLoggingLevel,
		ListenAddr:   defaultListenAddr,
		Environment:  defaultEnvironment,
		CacheTTL:     defaultCacheTTL,
		BatchWorkers: defaultBatchWorkers,
	}
}

// Load variable from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		return c.LoadEnv(func(key string) string {
			return envMap[key]
		})
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) error {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) error {
		return func(value string) error {
			if value != "" {
				*o = value
			}
			return nil
		}
	}

	setDuration := func(o *time.Duration) func(value string) error {
		return func(value string) error {
			if value == "" {
				return nil
			}
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			*o = d
			return nil
		}
	}

	setInt := func(o *int) func(value string) error {
		return func(value string) error {
			if value == "" {
				return nil
			}
			n, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			*o = n
			return nil
		}
	}

	envMap := map[string]func(string) error{
		"RUN_ADDRESS":        setString(&c.ListenAddr),
		"DATABASE_URI":       setString(&c.DatabaseDSN),
		"LOG_LEVEL":          setString(&c.LogLevel),
		"ENVIRONMENT":        setString(&c.Environment),
		"WEIGHTS_FILE":       setString(&c.WeightsFile),
		"SUBSTITUTIONS_FILE": setString(&c.SubstitutionsFile),
		"METRICS_ADDRESS":    setString(&c.MetricsAddr),
		"CACHE_TTL":          setDuration(&c.CacheTTL),
		"BATCH_WORKERS":      setInt(&c.BatchWorkers),
	}

	for key, parseFn := range envMap {
		if err := parseFn(getenv(key)); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}

	return nil
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("modcheck", pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.StringVarP(&c.DatabaseDSN, "database", "d", c.DatabaseDSN, "Database connection string")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")
	fs.StringVarP(&c.WeightsFile, "weights", "w", c.WeightsFile, "Weight table file")
	fs.StringVarP(&c.SubstitutionsFile, "substitutions", "s", c.SubstitutionsFile, "Sort code substitution file")
	fs.StringVarP(&c.MetricsAddr, "metrics-address", "m", c.MetricsAddr, "Metrics server listen address")
	fs.DurationVarP(&c.CacheTTL, "cache-ttl", "c", c.CacheTTL, "Weight lookup cache TTL")
	fs.IntVarP(&c.BatchWorkers, "batch-workers", "b", c.BatchWorkers, "Workers per batch validation request")

	return fs.Parse(args)
}
