package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the configuration file.
const (
	EnvAddress     = "TAGPOKER_ADDRESS"
	EnvPort        = "TAGPOKER_PORT"
	EnvLogLevel    = "TAGPOKER_LOG_LEVEL"
	EnvIdleTimeout = "TAGPOKER_IDLE_TIMEOUT"

	EnvBoards   = "TAGPOKER_BOARDS"
	EnvStreet   = "TAGPOKER_STREET"
	EnvSeed     = "TAGPOKER_SEED"
	EnvWorkers  = "TAGPOKER_WORKERS"
	EnvStrategy = "TAGPOKER_STRATEGY"

	EnvDatabaseURL = "TAGPOKER_DATABASE_URL"
	EnvAutoMigrate = "TAGPOKER_AUTO_MIGRATE"
)

// LoadDotEnv loads variables from the given .env files (".env" when none
// are given) without overriding ones already set. Missing files are fine.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", name, err)
		}
	}
	return nil
}

// ApplyEnv overlays environment values using lookup, typically os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", key, err)
		}
		*dst = n
		return nil
	}

	str(EnvAddress, &c.Server.Address)
	str(EnvLogLevel, &c.Server.LogLevel)
	str(EnvIdleTimeout, &c.Server.IdleTimeout)
	str(EnvStreet, &c.Simulation.Street)
	str(EnvStrategy, &c.Simulation.Strategy)
	str(EnvDatabaseURL, &c.Store.DatabaseURL)

	if err := integer(EnvPort, &c.Server.Port); err != nil {
		return err
	}
	if err := integer(EnvBoards, &c.Simulation.Boards); err != nil {
		return err
	}
	if err := integer(EnvWorkers, &c.Simulation.Workers); err != nil {
		return err
	}

	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		c.Simulation.Seed = seed
	}
	if v, ok := lookup(EnvAutoMigrate); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvAutoMigrate, err)
		}
		c.Store.AutoMigrate = b
	}
	return nil
}
