// Package config loads tagpoker settings from an HCL file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/tagpoker/sdk/strategy"
)

// Config is the complete tagpoker configuration.
type Config struct {
	Server     ServerSettings
	Simulation SimulationSettings
	Store      StoreSettings
}

// ServerSettings configures the classification service.
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	LogLevel    string `hcl:"log_level,optional"`
	IdleTimeout string `hcl:"idle_timeout,optional"`
}

// SimulationSettings configures `tagpoker simulate`.
type SimulationSettings struct {
	Boards   int
	Street   string
	Seed     int64
	Workers  int
	Strategy string
	Showdown bool
	Timeout  string
}

// StoreSettings configures the optional Postgres result store.
type StoreSettings struct {
	DatabaseURL string `hcl:"database_url,optional"`
	AutoMigrate bool   `hcl:"auto_migrate,optional"`
}

// file mirrors Config with every block optional.
type file struct {
	Server     *ServerSettings  `hcl:"server,block"`
	Simulation *simulationBlock `hcl:"simulation,block"`
	Store      *StoreSettings   `hcl:"store,block"`
}

// simulationBlock tells an omitted showdown apart from showdown = false.
type simulationBlock struct {
	Boards   int    `hcl:"boards,optional"`
	Street   string `hcl:"street,optional"`
	Seed     int64  `hcl:"seed,optional"`
	Workers  int    `hcl:"workers,optional"`
	Strategy string `hcl:"strategy,optional"`
	Showdown *bool  `hcl:"showdown,optional"`
	Timeout  string `hcl:"timeout,optional"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Address:     "localhost",
			Port:        8080,
			LogLevel:    "info",
			IdleTimeout: "60s",
		},
		Simulation: SimulationSettings{
			Boards:   10000,
			Street:   "river",
			Strategy: "tight-aggressive",
			Showdown: true,
		},
	}
}

// Load reads filename, falling back to defaults when it does not exist,
// then overlays TAGPOKER_* environment variables.
func Load(filename string) (*Config, error) {
	cfg, err := LoadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LoadFile reads an HCL configuration file. A missing file yields the
// defaults.
func LoadFile(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var parsed file
	if diags := gohcl.DecodeBody(f.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if parsed.Server != nil {
		cfg.Server.merge(*parsed.Server)
	}
	if parsed.Simulation != nil {
		cfg.Simulation.merge(*parsed.Simulation)
	}
	if parsed.Store != nil {
		cfg.Store = *parsed.Store
	}
	return cfg, nil
}

// merge keeps defaults for fields the file left empty.
func (s *ServerSettings) merge(o ServerSettings) {
	if o.Address != "" {
		s.Address = o.Address
	}
	if o.Port != 0 {
		s.Port = o.Port
	}
	if o.LogLevel != "" {
		s.LogLevel = o.LogLevel
	}
	if o.IdleTimeout != "" {
		s.IdleTimeout = o.IdleTimeout
	}
}

func (s *SimulationSettings) merge(o simulationBlock) {
	if o.Boards != 0 {
		s.Boards = o.Boards
	}
	if o.Street != "" {
		s.Street = o.Street
	}
	if o.Seed != 0 {
		s.Seed = o.Seed
	}
	if o.Workers != 0 {
		s.Workers = o.Workers
	}
	if o.Strategy != "" {
		s.Strategy = o.Strategy
	}
	if o.Timeout != "" {
		s.Timeout = o.Timeout
	}
	if o.Showdown != nil {
		s.Showdown = *o.Showdown
	}
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Server.LogLevel, err)
	}
	if _, err := c.Server.IdleTimeoutDuration(); err != nil {
		return err
	}

	if c.Simulation.Boards <= 0 {
		return fmt.Errorf("simulation boards must be positive, got %d", c.Simulation.Boards)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation workers must not be negative, got %d", c.Simulation.Workers)
	}
	if _, err := strategy.ParseStreet(c.Simulation.Street); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	if _, err := strategy.New(c.Simulation.Strategy); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	if _, err := c.Simulation.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// ServerAddress returns host:port.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// IdleTimeoutDuration parses IdleTimeout. Empty means no timeout.
func (s ServerSettings) IdleTimeoutDuration() (time.Duration, error) {
	return parseDuration("idle_timeout", s.IdleTimeout)
}

// TimeoutDuration parses Timeout. Empty means no timeout.
func (s SimulationSettings) TimeoutDuration() (time.Duration, error) {
	return parseDuration("timeout", s.Timeout)
}

func parseDuration(name, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", name, s)
	}
	return d, nil
}
