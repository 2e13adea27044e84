// Package strategy decides whether a hole-card holding is strong enough to
// keep playing post-flop, given the texture of the board.
package strategy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lox/tagpoker/poker"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy gates post-flop continuation.
type Strategy interface {
	Name() string
	IsMinGoodHand(street Street, hole, board []poker.Card) bool
	Evaluate(street Street, hole, board []poker.Card) (Decision, error)
}

// TightAggressive continues only with hands at or above the board's minimum
// good hand.
type TightAggressive struct{}

func (TightAggressive) Name() string { return "tight-aggressive" }

func (TightAggressive) IsMinGoodHand(street Street, hole, board []poker.Card) bool {
	return IsGoodEnough(hole, board, street)
}

func (TightAggressive) Evaluate(street Street, hole, board []poker.Card) (Decision, error) {
	return Evaluate(hole, board, street)
}

var registry = map[string]func() Strategy{
	"tight-aggressive": func() Strategy { return TightAggressive{} },
	"tag":              func() Strategy { return TightAggressive{} },
}

// New returns the strategy registered under name.
func New(name string) (Strategy, error) {
	factory, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return factory(), nil
}

// Names lists registered strategy names, aliases included.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
