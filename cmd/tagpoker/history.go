package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/tagpoker/internal/store"
)

// HistoryCmd lists saved simulation runs.
type HistoryCmd struct {
	Limit int `short:"n" default:"20" help:"Number of runs to show"`
}

func (c *HistoryCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	if cfg.Store.DatabaseURL == "" {
		return errors.New("no database configured; set store.database_url or TAGPOKER_DATABASE_URL")
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.RecentRuns(ctx, c.Limit)
	if err != nil {
		return err
	}
	printHistory(os.Stdout, runs)
	return nil
}

func printHistory(w io.Writer, runs []store.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs saved yet")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))).
		Headers("ID", "WHEN", "STRATEGY", "STREET", "BOARDS", "PASS", "WIN", "ELAPSED").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, r := range runs {
		win := "-"
		if r.Showdowns > 0 {
			win = fmt.Sprintf("%.1f%%", r.WinRate()*100)
		}
		t.Row(
			strconv.FormatInt(r.ID, 10),
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Strategy,
			r.Street,
			strconv.Itoa(r.Boards),
			fmt.Sprintf("%.1f%%", r.PassRate()*100),
			win,
			r.Elapsed.String(),
		)
	}
	fmt.Fprintln(w, t.Render())
}
