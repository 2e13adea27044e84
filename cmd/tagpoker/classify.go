package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/tagpoker/internal/protocol"
	"github.com/lox/tagpoker/internal/server"
	"github.com/lox/tagpoker/poker"
)

// ClassifyCmd describes a board.
type ClassifyCmd struct {
	Board  string `arg:"" help:"Board cards, e.g. 'Ah Kd 7c' or 'AhKd7c'"`
	Street string `help:"Street to assume (flop, turn, river); inferred from the board by default"`
	JSON   bool   `help:"Print the result as JSON"`
}

func (c *ClassifyCmd) Run(g *Globals) error {
	board, err := poker.ParseCards(c.Board)
	if err != nil {
		return err
	}
	svc, err := server.NewService("")
	if err != nil {
		return err
	}

	res, perr := svc.Classify(&protocol.Request{
		Type:   protocol.TypeClassify,
		Board:  cardStrings(board),
		Street: c.Street,
	})
	if perr != nil {
		return perr
	}
	if c.JSON {
		return writeJSON(os.Stdout, res)
	}
	printClassify(os.Stdout, board, res)
	return nil
}

func printClassify(w io.Writer, board []poker.Card, res *protocol.ClassifyResult) {
	features := "none"
	if len(res.Features) > 0 {
		features = strings.Join(res.Features, ", ")
	}
	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Board "+res.Street),
		row("Cards", renderCards(board)),
		row("Features", features),
		row("Texture", res.Texture),
		row("Tier", renderTier(res.Tier)),
		row("Wetness", res.Wetness),
		row("Minimum", res.Required),
	))
}

func cardStrings(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
