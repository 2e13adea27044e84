package simulator

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/lox/tagpoker/sdk/strategy"
)

// Reporter receives progress from a running simulation. Progress is called
// from worker goroutines.
type Reporter interface {
	Start(total int)
	Progress(done, total int)
	Finish(elapsed time.Duration)
}

type nopReporter struct{}

func (nopReporter) Start(int)            {}
func (nopReporter) Progress(int, int)    {}
func (nopReporter) Finish(time.Duration) {}

// DotReporter prints a fixed-width row of dots, one per 2.5% of progress.
type DotReporter struct {
	mu      sync.Mutex
	w       io.Writer
	printed int
}

const dotsTotal = 40

func NewDotReporter(w io.Writer) *DotReporter {
	return &DotReporter{w: w}
}

func (r *DotReporter) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.printed = 0
	fmt.Fprintf(r.w, "Simulating %d boards: ", total)
}

func (r *DotReporter) Progress(done, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if total <= 0 {
		return
	}
	target := min(done*dotsTotal/total, dotsTotal)
	if target > r.printed {
		fmt.Fprint(r.w, strings.Repeat(".", target-r.printed))
		r.printed = target
	}
}

func (r *DotReporter) Finish(elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.printed < dotsTotal {
		fmt.Fprint(r.w, strings.Repeat(".", dotsTotal-r.printed))
		r.printed = dotsTotal
	}
	fmt.Fprintf(r.w, " done in %v\n", elapsed.Round(time.Millisecond))
}

// PrintSummary writes a plain-text report of a run.
func PrintSummary(w io.Writer, result *Result) {
	stats := result.Stats

	fmt.Fprintf(w, "\n=== RESULTS for %s ===\n", result.Strategy)
	fmt.Fprintf(w, "Boards dealt: %d\n", stats.Boards)
	fmt.Fprintf(w, "Passed gate: %d (%.1f%%)\n", stats.Passes, stats.PassRate()*100)
	fmt.Fprintf(w, "No grade at all: %d\n", stats.Unscored)
	fmt.Fprintf(w, "Elapsed: %v\n", result.Elapsed.Round(time.Millisecond))

	if stats.Showdowns > 0 {
		low, high := stats.ConfidenceInterval95()
		fmt.Fprintf(w, "\n=== SHOWDOWN ===\n")
		fmt.Fprintf(w, "Showdowns: %d (%d won, %d tied, %d lost)\n", stats.Showdowns, stats.Wins, stats.Ties, stats.Losses)
		fmt.Fprintf(w, "Equity: %.1f%%\n", stats.WinRate()*100)
		fmt.Fprintf(w, "Mean: %.4f pots/showdown, 95%% CI [%.4f, %.4f]\n", stats.Mean(), low, high)
	}

	fmt.Fprintf(w, "\n=== BY TEXTURE ===\n")
	for _, texture := range stats.Textures() {
		b := stats.ByTexture[texture]
		fmt.Fprintf(w, "%-36s %6d boards  %5.1f%% pass  %5.1f%% equity\n",
			texture, b.Boards, b.PassRate()*100, b.WinRate()*100)
	}

	fmt.Fprintf(w, "\n=== BY TIER ===\n")
	for tier := strategy.NonScary; tier <= strategy.VeryScary; tier++ {
		b := stats.ByTier[tier]
		if b.Boards == 0 {
			continue
		}
		fmt.Fprintf(w, "%-36s %6d boards  %5.1f%% pass  %5.1f%% equity\n",
			tier, b.Boards, b.PassRate()*100, b.WinRate()*100)
	}

	fmt.Fprintf(w, "\n=== BY REQUIRED HAND ===\n")
	for _, grade := range stats.Grades() {
		b := stats.ByRequired[grade]
		fmt.Fprintf(w, "%-36s %6d boards  %5.1f%% pass  %5.1f%% equity\n",
			grade, b.Boards, b.PassRate()*100, b.WinRate()*100)
	}
}
