package simulator

import (
	"fmt"

	ph "github.com/paulhankin/poker"

	"github.com/lox/tagpoker/internal/statistics"
	"github.com/lox/tagpoker/poker"
)

var phSuits = [4]ph.Suit{
	poker.Clubs:    ph.Club,
	poker.Diamonds: ph.Diamond,
	poker.Hearts:   ph.Heart,
	poker.Spades:   ph.Spade,
}

// toPH converts to the evaluator's card type, where Ace is rank 1.
func toPH(c poker.Card) (ph.Card, error) {
	if !c.Valid() {
		return 0, fmt.Errorf("%w: %d", poker.ErrInvalidCard, uint64(c))
	}
	rank := ph.Rank(c.Rank() + 2)
	if c.Rank() == poker.Ace {
		rank = 1
	}
	return ph.MakeCard(phSuits[c.Suit()], rank)
}

func eval7(hole, board []poker.Card) (int16, error) {
	if len(hole)+len(board) != 7 {
		return 0, fmt.Errorf("showdown needs 7 cards, got %d", len(hole)+len(board))
	}
	var hand [7]ph.Card
	for i, c := range append(append([]poker.Card{}, hole...), board...) {
		pc, err := toPH(c)
		if err != nil {
			return 0, err
		}
		hand[i] = pc
	}
	return ph.Eval7(&hand), nil
}

// Showdown compares hero against villain on a complete five card board.
func Showdown(hero, villain, board []poker.Card) (statistics.Outcome, error) {
	a, err := eval7(hero, board)
	if err != nil {
		return statistics.NoShowdown, fmt.Errorf("hero: %w", err)
	}
	b, err := eval7(villain, board)
	if err != nil {
		return statistics.NoShowdown, fmt.Errorf("villain: %w", err)
	}
	switch {
	case a > b:
		return statistics.Win, nil
	case a < b:
		return statistics.Loss, nil
	default:
		return statistics.Tie, nil
	}
}
