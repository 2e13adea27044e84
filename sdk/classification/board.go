// Package classification detects structural features of hold'em boards and
// made hands, and reduces board features to a single texture label.
//
// Every predicate is pure and total: malformed input (wrong card count,
// repeated cards) yields false or an empty set instead of an error.
package classification

import (
	"math/bits"

	"github.com/lox/tagpoker/poker"
)

// Board sizes accepted by the evaluators: flop, turn and river.
const (
	MinBoardCards = 3
	MaxBoardCards = 5
)

const tjqkMask = 1<<poker.Ten | 1<<poker.Jack | 1<<poker.Queen | 1<<poker.King

// boardHand validates the board and packs it into a Hand.
func boardHand(board []poker.Card) (poker.Hand, bool) {
	if len(board) < MinBoardCards || len(board) > MaxBoardCards {
		return 0, false
	}
	h, err := poker.HandOf(board)
	if err != nil {
		return 0, false
	}
	return h, true
}

// ValidBoard reports whether the board has 3-5 distinct cards.
func ValidBoard(board []poker.Card) bool {
	_, ok := boardHand(board)
	return ok
}

// HasOnePair reports whether exactly one rank appears exactly twice.
func HasOnePair(board []poker.Card) bool {
	h, ok := boardHand(board)
	return ok && bits.OnesCount16(h.PairsMask()) == 1
}

// HasTwoPair reports whether exactly two ranks each appear exactly twice.
func HasTwoPair(board []poker.Card) bool {
	h, ok := boardHand(board)
	return ok && bits.OnesCount16(h.PairsMask()) == 2
}

// HasNToFlush reports whether some suit appears exactly n times.
func HasNToFlush(board []poker.Card, n int) bool {
	h, ok := boardHand(board)
	if !ok {
		return false
	}
	for _, count := range h.SuitCounts() {
		if count == n {
			return true
		}
	}
	return false
}

func HasThreeToFlush(board []poker.Card) bool { return HasNToFlush(board, 3) }
func HasFourToFlush(board []poker.Card) bool  { return HasNToFlush(board, 4) }

// HasNToStraight reports whether at least n board ranks fall inside one
// straight window while no window is already complete.
func HasNToStraight(board []poker.Card, n int) bool {
	h, ok := boardHand(board)
	return ok && nToStraight(h.RankMask(), n)
}

func nToStraight(ranks uint16, n int) bool {
	if poker.StraightHigh(ranks) >= 0 {
		return false
	}
	for _, w := range poker.StraightWindows() {
		if bits.OnesCount16(ranks&w) >= n {
			return true
		}
	}
	return false
}

func HasThreeToStraight(board []poker.Card) bool { return HasNToStraight(board, 3) }
func HasFourToStraight(board []poker.Card) bool  { return HasNToStraight(board, 4) }

// HasThreeToOpenEndedStraight reports whether the board holds three
// consecutive ranks that can still be extended at both ends. The Ace only
// counts high here, so A-2-3 and Q-K-A are excluded while 2-3-4 and J-Q-K
// qualify.
func HasThreeToOpenEndedStraight(board []poker.Card) bool {
	h, ok := boardHand(board)
	return ok && openEnded(h.RankMask())
}

func openEnded(ranks uint16) bool {
	if poker.StraightHigh(ranks) >= 0 {
		return false
	}
	// Bit i of runs marks ranks i, i+1 and i+2 all present.
	runs := ranks & (ranks >> 1) & (ranks >> 2)
	// A run starting at Queen would reach the Ace.
	runs &^= 1 << poker.Queen
	return runs != 0
}

// IsAceHigh reports whether the board contains an Ace.
func IsAceHigh(board []poker.Card) bool {
	h, ok := boardHand(board)
	return ok && h.RankMask()&(1<<poker.Ace) != 0
}

// HasTJQK reports whether the board holds a Ten, Jack, Queen and King.
func HasTJQK(board []poker.Card) bool {
	h, ok := boardHand(board)
	return ok && h.RankMask()&tjqkMask == tjqkMask
}

// BoardFeatures computes the board features that feed texture
// classification. ThreeToStraight is left out because the texture table keys
// on the open-ended variant, and AceHigh is contextual (see IsAceHigh).
func BoardFeatures(board []poker.Card) Features {
	h, ok := boardHand(board)
	if !ok {
		return 0
	}

	var fs Features
	switch bits.OnesCount16(h.PairsMask()) {
	case 1:
		fs = fs.With(OnePair)
	case 2:
		fs = fs.With(TwoPair)
	}

	for _, count := range h.SuitCounts() {
		switch count {
		case 3:
			fs = fs.With(ThreeToFlush)
		case 4:
			fs = fs.With(FourToFlush)
		}
	}

	ranks := h.RankMask()
	if openEnded(ranks) {
		fs = fs.With(ThreeToOpenEndedStraight)
	}
	if nToStraight(ranks, 4) {
		fs = fs.With(FourToStraight)
	}
	return fs
}

// BoardFlags is BoardFeatures plus the contextual flags: ThreeToStraight
// and AceHigh. Classify gives the same label for either set.
func BoardFlags(board []poker.Card) Features {
	h, ok := boardHand(board)
	if !ok {
		return 0
	}
	fs := BoardFeatures(board)
	ranks := h.RankMask()
	if nToStraight(ranks, 3) {
		fs = fs.With(ThreeToStraight)
	}
	if ranks&(1<<poker.Ace) != 0 {
		fs = fs.With(AceHigh)
	}
	return fs
}
