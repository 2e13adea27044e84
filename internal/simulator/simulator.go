package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/tagpoker/internal/statistics"
	"github.com/lox/tagpoker/poker"
	"github.com/lox/tagpoker/sdk/strategy"
)

// ErrTimeout is returned when a run exceeds Config.Timeout.
var ErrTimeout = errors.New("simulation timed out")

// Config holds configuration for running simulations
type Config struct {
	Boards   int
	Street   strategy.Street
	Seed     int64
	Workers  int
	Strategy string
	Showdown bool // play gated hands out against one random opponent
	Timeout  time.Duration
	Logger   *log.Logger
	Clock    quartz.Clock
	Reporter Reporter
}

// Result is a finished run.
type Result struct {
	Stats    *statistics.Statistics
	Strategy string
	Elapsed  time.Duration
}

// Simulator deals random boards and gates hands through a strategy.
type Simulator struct {
	config   Config
	strategy strategy.Strategy
}

// New validates config and fills defaults.
func New(config Config) (*Simulator, error) {
	if config.Boards <= 0 {
		return nil, fmt.Errorf("boards must be positive, got %d", config.Boards)
	}
	if config.Street > strategy.River {
		return nil, fmt.Errorf("%w: %d", strategy.ErrInvalidStreet, config.Street)
	}
	if config.Strategy == "" {
		config.Strategy = "tight-aggressive"
	}
	s, err := strategy.New(config.Strategy)
	if err != nil {
		return nil, err
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Workers > config.Boards {
		config.Workers = config.Boards
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Reporter == nil {
		config.Reporter = nopReporter{}
	}
	return &Simulator{config: config, strategy: s}, nil
}

// Run deals Config.Boards hands split across workers. Board i always uses
// seed Seed+i, so results do not depend on the worker count.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := s.config
	logger := cfg.Logger.WithPrefix("simulator")
	start := cfg.Clock.Now()

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	if cfg.Timeout > 0 {
		timer := cfg.Clock.AfterFunc(cfg.Timeout, func() {
			cancel(fmt.Errorf("%w after %v", ErrTimeout, cfg.Timeout))
		})
		defer timer.Stop()
	}

	logger.Debug("Starting simulation", "boards", cfg.Boards, "street", cfg.Street,
		"workers", cfg.Workers, "strategy", s.strategy.Name(), "showdown", cfg.Showdown)
	cfg.Reporter.Start(cfg.Boards)

	var (
		mu    sync.Mutex
		total = statistics.New()
		done  atomic.Int64
	)

	g, gctx := errgroup.WithContext(ctx)
	for w := range cfg.Workers {
		g.Go(func() error {
			local := statistics.New()
			for i := w; i < cfg.Boards; i += cfg.Workers {
				if err := gctx.Err(); err != nil {
					return context.Cause(gctx)
				}
				result, err := s.playBoard(cfg.Seed + int64(i))
				if err != nil {
					return fmt.Errorf("board %d: %w", i, err)
				}
				local.Add(result)
				cfg.Reporter.Progress(int(done.Add(1)), cfg.Boards)
			}

			mu.Lock()
			total.Merge(local)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := cfg.Clock.Since(start)
	cfg.Reporter.Finish(elapsed)
	logger.Debug("Simulation complete", "boards", total.Boards, "passes", total.Passes, "elapsed", elapsed)

	return &Result{Stats: total, Strategy: s.strategy.Name(), Elapsed: elapsed}, nil
}

// playBoard deals one hand from its own seeded deck.
func (s *Simulator) playBoard(seed int64) (statistics.BoardResult, error) {
	deck := poker.NewDeck(rand.New(rand.NewSource(seed)))
	hole := deck.Deal(2)
	board := deck.Deal(s.config.Street.BoardCards())

	d, err := s.strategy.Evaluate(s.config.Street, hole, board)
	if err != nil {
		return statistics.BoardResult{}, err
	}

	result := statistics.BoardResult{
		Seed:     seed,
		Street:   d.Street,
		Texture:  d.Context.Texture,
		Tier:     d.Context.Tier,
		Required: d.Required,
		Score:    d.Score,
		Scored:   d.Scored,
		Passed:   d.GoodEnough,
	}
	if !s.config.Showdown || !d.GoodEnough {
		return result, nil
	}

	villain := deck.Deal(2)
	runout := append(board, deck.Deal(5-len(board))...)
	result.Outcome, err = Showdown(hole, villain, runout)
	if err != nil {
		return statistics.BoardResult{}, err
	}
	return result, nil
}
