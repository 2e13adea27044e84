package main

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/lox/tagpoker/internal/config"
	"github.com/lox/tagpoker/internal/simulator"
	"github.com/lox/tagpoker/internal/store"
	"github.com/lox/tagpoker/sdk/strategy"
)

// SimulateCmd deals random boards through a strategy and reports how often
// the gate passes and how gated hands fare at showdown.
type SimulateCmd struct {
	Boards     int           `short:"n" help:"Number of boards to deal (default from config)"`
	Street     string        `help:"Street to deal to: flop, turn or river"`
	Seed       *int64        `help:"RNG seed; defaults to the configured seed or the current time"`
	Workers    int           `short:"w" help:"Worker goroutines (0 = GOMAXPROCS)"`
	Strategy   string        `short:"s" help:"Strategy profile"`
	NoShowdown bool          `help:"Skip playing gated hands out against a random opponent"`
	Timeout    time.Duration `help:"Abort the run after this long"`
	Plain      bool          `help:"Print dots instead of a progress bar"`
	Save       bool          `negatable:"" default:"true" help:"Save the run when a database is configured"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	c.apply(&cfg.Simulation)
	if err := cfg.Validate(); err != nil {
		return err
	}

	sim := cfg.Simulation
	street, err := strategy.ParseStreet(sim.Street)
	if err != nil {
		return err
	}
	timeout, err := sim.TimeoutDuration()
	if err != nil {
		return err
	}
	seed := sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("Starting simulation", "boards", sim.Boards, "street", street, "seed", seed, "strategy", sim.Strategy)

	var reporter simulator.Reporter = simulator.NewDotReporter(os.Stdout)
	if !c.Plain && isatty.IsTerminal(os.Stdout.Fd()) {
		bar := newBarReporter(os.Stdout)
		defer bar.Close()
		reporter = bar
	}

	s, err := simulator.New(simulator.Config{
		Boards:   sim.Boards,
		Street:   street,
		Seed:     seed,
		Workers:  sim.Workers,
		Strategy: sim.Strategy,
		Showdown: sim.Showdown,
		Timeout:  timeout,
		Logger:   logger,
		Reporter: reporter,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	result, err := s.Run(ctx)
	if err != nil {
		return err
	}
	simulator.PrintSummary(os.Stdout, result)

	if !c.Save || cfg.Store.DatabaseURL == "" {
		return nil
	}
	return saveRun(ctx, cfg, logger, store.Run{
		Strategy: result.Strategy,
		Street:   street,
		Seed:     seed,
		Elapsed:  result.Elapsed,
		Stats:    result.Stats,
	})
}

// apply overrides configured simulation settings with flags that were set.
func (c *SimulateCmd) apply(sim *config.SimulationSettings) {
	if c.Boards != 0 {
		sim.Boards = c.Boards
	}
	if c.Street != "" {
		sim.Street = c.Street
	}
	if c.Seed != nil {
		sim.Seed = *c.Seed
	}
	if c.Workers != 0 {
		sim.Workers = c.Workers
	}
	if c.Strategy != "" {
		sim.Strategy = c.Strategy
	}
	if c.NoShowdown {
		sim.Showdown = false
	}
	if c.Timeout != 0 {
		sim.Timeout = c.Timeout.String()
	}
}

func saveRun(ctx context.Context, cfg *config.Config, logger *log.Logger, run store.Run) error {
	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, run)
	if err != nil {
		return err
	}
	logger.Info("Saved run", "id", id)
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (*store.DB, error) {
	db, err := store.Open(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.Store.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}
