package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/tagpoker/internal/protocol"
	"github.com/lox/tagpoker/internal/server"
	"github.com/lox/tagpoker/poker"
)

// CheckCmd gates hole cards on a board.
type CheckCmd struct {
	Hole     string `arg:"" help:"Two hole cards, e.g. 'AcAd'"`
	Board    string `arg:"" help:"Board cards, e.g. 'Kh 8d 3c 2s 9h'"`
	Street   string `help:"Street to assume (flop, turn, river); inferred from the board by default"`
	Strategy string `short:"s" default:"tight-aggressive" help:"Strategy profile"`
	JSON     bool   `help:"Print the result as JSON"`
}

func (c *CheckCmd) Run(g *Globals) error {
	hole, err := poker.ParseCards(c.Hole)
	if err != nil {
		return err
	}
	board, err := poker.ParseCards(c.Board)
	if err != nil {
		return err
	}
	svc, err := server.NewService(c.Strategy)
	if err != nil {
		return err
	}

	res, perr := svc.Check(&protocol.Request{
		Type:   protocol.TypeCheck,
		Board:  cardStrings(board),
		Hole:   cardStrings(hole),
		Street: c.Street,
	})
	if perr != nil {
		return perr
	}
	if c.JSON {
		return writeJSON(os.Stdout, res)
	}
	printCheck(os.Stdout, hole, board, res)
	return nil
}

func printCheck(w io.Writer, hole, board []poker.Card, res *protocol.CheckResult) {
	score := res.Score
	if score == "" {
		score = "nothing"
	}
	verdict := errorStyle.Render("FOLD")
	if res.GoodEnough {
		verdict = successStyle.Render("PLAY")
	}
	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(res.Strategy+" on the "+res.Street),
		row("Hole", renderCards(hole)),
		row("Board", renderCards(board)),
		row("Texture", res.Texture),
		row("Tier", renderTier(res.Tier)),
		row("Minimum", res.Required),
		row("Holding", score),
		row("Verdict", verdict),
	))
}
