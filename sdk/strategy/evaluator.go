package strategy

import (
	"errors"
	"fmt"

	"github.com/lox/tagpoker/poker"
	"github.com/lox/tagpoker/sdk/classification"
)

var (
	ErrInvalidBoard   = errors.New("invalid board")
	ErrInvalidHole    = errors.New("invalid hole cards")
	ErrInvalidStreet  = errors.New("invalid street")
	ErrStreetMismatch = errors.New("board size does not match street")
)

// Decision is the outcome of gating one hand.
type Decision struct {
	Street     Street
	Context    BoardContext
	Required   MinGoodHand
	Score      MinGoodHand
	Scored     bool
	GoodEnough bool
}

func checkBoard(board []poker.Card, street Street) error {
	if street > River {
		return fmt.Errorf("%w: %d", ErrInvalidStreet, street)
	}
	if !classification.ValidBoard(board) {
		return fmt.Errorf("%w: %s", ErrInvalidBoard, poker.FormatCards(board))
	}
	if len(board) != street.BoardCards() {
		return fmt.Errorf("%w: %d cards on the %s", ErrStreetMismatch, len(board), street)
	}
	return nil
}

// MinimumGoodHand is the weakest grade worth continuing with on board at
// street.
func MinimumGoodHand(board []poker.Card, street Street) (MinGoodHand, error) {
	if err := checkBoard(board, street); err != nil {
		return 0, err
	}
	return NewBoardContext(board).MinGoodHand(street), nil
}

// MustMinimumGoodHand is MinimumGoodHand for callers that already checked
// their input.
func MustMinimumGoodHand(board []poker.Card, street Street) MinGoodHand {
	g, err := MinimumGoodHand(board, street)
	if err != nil {
		panic(err)
	}
	return g
}

type gradeCheck struct {
	grade MinGoodHand
	has   func(hole, board []poker.Card) bool
}

// Strongest first. Quads and straight flushes beat every grade, so they
// score at the top.
var cascade = []gradeCheck{
	{BestFullHouseUsingOneHoleCard, classification.HasStraightFlush},
	{BestFullHouseUsingOneHoleCard, classification.HasFourOfAKind},
	{BestFullHouseUsingOneHoleCard, classification.HasBestFullHouseUsingOneHoleCard},
	{FullHouse, classification.HasFullHouse},
	{NutFlush, classification.HasNutFlush},
	{SecondNutFlush, classification.HasSecondNutFlush},
	{Flush, classification.HasFlush},
	{BestStraightUsingOneHoleCard, classification.HasBestStraightUsingOneHoleCard},
	{NutStraight, classification.HasNutStraight},
	{Straight, classification.HasStraight},
	{Trips, classification.HasSet},
	{Trips, classification.HasThreeOfAKind},
	{Overpair, classification.HasOverpair},
	{TopPairTopKicker, classification.HasTopPairTopKicker},
	{TopPair, classification.HasTopPair},
	{SecondPair, classification.HasSecondPair},
}

// Score grades hole on board. ok is false when the hand reaches no grade
// at all or the cards are malformed.
func Score(hole, board []poker.Card) (grade MinGoodHand, ok bool) {
	for _, c := range cascade {
		if c.has(hole, board) {
			return c.grade, true
		}
	}
	return 0, false
}

// Evaluate gates hole on board at street.
func Evaluate(hole, board []poker.Card, street Street) (Decision, error) {
	if err := checkBoard(board, street); err != nil {
		return Decision{}, err
	}
	if _, err := poker.HandOf(hole); err != nil || len(hole) != classification.HoleCards {
		return Decision{}, fmt.Errorf("%w: %s", ErrInvalidHole, poker.FormatCards(hole))
	}

	ctx := NewBoardContext(board)
	d := Decision{
		Street:   street,
		Context:  ctx,
		Required: ctx.MinGoodHand(street),
	}
	d.Score, d.Scored = Score(hole, board)
	d.GoodEnough = d.Scored && d.Score.AtLeast(d.Required)
	return d, nil
}

// IsGoodEnough reports whether hole meets the minimum hand for board at
// street. Malformed cards are never good enough. A board whose size does
// not match street is a programming error and panics.
func IsGoodEnough(hole, board []poker.Card, street Street) bool {
	d, err := Evaluate(hole, board, street)
	switch {
	case errors.Is(err, ErrStreetMismatch), errors.Is(err, ErrInvalidStreet):
		panic(err)
	case err != nil:
		return false
	}
	return d.GoodEnough
}
