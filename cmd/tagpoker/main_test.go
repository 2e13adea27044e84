package main

import (
	"bytes"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tagpoker/internal/config"
	"github.com/lox/tagpoker/internal/protocol"
	"github.com/lox/tagpoker/internal/server"
	"github.com/lox/tagpoker/internal/store"
	"github.com/lox/tagpoker/poker"
)

func TestMain(m *testing.M) {
	configureColor(os.Stdout, true)
	os.Exit(m.Run())
}

func TestPrintClassify(t *testing.T) {
	t.Parallel()
	board := poker.MustParseCards("Kh 8d 3c 2s 9h")
	svc, err := server.NewService("")
	require.NoError(t, err)
	res, perr := svc.Classify(&protocol.Request{Board: cardStrings(board)})
	require.Nil(t, perr)

	var buf bytes.Buffer
	printClassify(&buf, board, res)
	out := buf.String()
	assert.Contains(t, out, "Board river")
	assert.Contains(t, out, "K♥ 8♦ 3♣ 2♠ 9♥")
	assert.Contains(t, out, "non-scary")
	assert.Contains(t, out, "overpair")
}

func TestPrintCheck(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hole    string
		verdict string
		holding string
	}{
		{"Ac Ad", "PLAY", "overpair"},
		{"7c 6d", "FOLD", "nothing"},
	}

	board := poker.MustParseCards("Kh 8d 3c 2s 9h")
	svc, err := server.NewService("")
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.hole, func(t *testing.T) {
			t.Parallel()
			hole := poker.MustParseCards(tt.hole)
			res, perr := svc.Check(&protocol.Request{Board: cardStrings(board), Hole: cardStrings(hole)})
			require.Nil(t, perr)

			var buf bytes.Buffer
			printCheck(&buf, hole, board, res)
			assert.Contains(t, buf.String(), tt.verdict)
			assert.Contains(t, buf.String(), tt.holding)
		})
	}
}

func TestPrintHistory(t *testing.T) {
	t.Parallel()

	var empty bytes.Buffer
	printHistory(&empty, nil)
	assert.Contains(t, empty.String(), "No runs saved yet")

	var buf bytes.Buffer
	printHistory(&buf, []store.RunSummary{{
		ID:        3,
		Strategy:  "tight-aggressive",
		Street:    "river",
		Boards:    200,
		Passes:    50,
		Showdowns: 50,
		Wins:      30,
		Ties:      10,
		Elapsed:   2 * time.Second,
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC),
	}})
	out := buf.String()
	assert.Contains(t, out, "tight-aggressive")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, "70.0%")
	assert.Contains(t, out, "2025-01-02 03:04")
}

func TestSimulateApply(t *testing.T) {
	t.Parallel()
	seed := int64(0)
	cmd := SimulateCmd{
		Boards:     500,
		Street:     "turn",
		Seed:       &seed,
		Strategy:   "tag",
		NoShowdown: true,
		Timeout:    90 * time.Second,
	}

	sim := config.Default().Simulation
	sim.Seed = 99
	cmd.apply(&sim)

	assert.Equal(t, 500, sim.Boards)
	assert.Equal(t, "turn", sim.Street)
	assert.Equal(t, int64(0), sim.Seed)
	assert.Equal(t, "tag", sim.Strategy)
	assert.False(t, sim.Showdown)
	assert.Equal(t, "1m30s", sim.Timeout)
	assert.Equal(t, 0, sim.Workers)
}

func TestSimulateApplyKeepsConfig(t *testing.T) {
	t.Parallel()
	sim := config.Default().Simulation
	want := sim
	(&SimulateCmd{}).apply(&sim)
	assert.Equal(t, want, sim)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "warn")
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = newLogger(&buf, "loud")
	assert.Error(t, err)
}

func TestProgressModel(t *testing.T) {
	t.Parallel()
	var m tea.Model = newProgressModel(100)

	m, cmd := m.Update(progressMsg(0.5))
	assert.Nil(t, cmd)
	assert.Equal(t, 0.5, m.(progressModel).percent)
	assert.Contains(t, m.View(), "Simulating 100 boards")

	m, cmd = m.Update(finishMsg(1500 * time.Millisecond))
	require.NotNil(t, cmd)
	assert.True(t, m.(progressModel).done)
	assert.Contains(t, m.View(), "done in 1.5s")
}
