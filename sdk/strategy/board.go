package strategy

import (
	"github.com/lox/tagpoker/poker"
	"github.com/lox/tagpoker/sdk/classification"
)

// BoardContext is everything the policy needs to know about a board.
type BoardContext struct {
	Board    []poker.Card
	Features classification.Features
	Texture  classification.Texture
	Tier     Tier
	AceHigh  bool
	TJQK     bool
}

// NewBoardContext classifies board. An invalid board yields a NonScary
// context with no features; callers that care check ValidBoard first.
func NewBoardContext(board []poker.Card) BoardContext {
	features := classification.BoardFeatures(board)
	texture := classification.Classify(features)
	return BoardContext{
		Board:    board,
		Features: features,
		Texture:  texture,
		Tier:     TierOf(texture),
		AceHigh:  classification.IsAceHigh(board),
		TJQK:     classification.HasTJQK(board),
	}
}

// Street is the street implied by the board size.
func (b BoardContext) Street() (Street, error) {
	return StreetForBoard(len(b.Board))
}
