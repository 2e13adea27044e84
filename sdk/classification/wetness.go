package classification

import (
	"math/bits"

	"github.com/lox/tagpoker/poker"
)

// Wetness grades how coordinated a board is, from dry to very wet. It is a
// coarser, display-oriented companion to Texture.
type Wetness int

const (
	Dry Wetness = iota
	SemiWet
	Wet
	VeryWet
)

func (w Wetness) String() string {
	switch w {
	case Dry:
		return "dry"
	case SemiWet:
		return "semi-wet"
	case Wet:
		return "wet"
	case VeryWet:
		return "very wet"
	default:
		return "unknown"
	}
}

// broadwayMask covers T through A.
const broadwayMask = 0x1F00

// AnalyzeWetness scores flush, straight, pairing and high-card pressure on
// the board. Invalid boards are Dry.
func AnalyzeWetness(board []poker.Card) Wetness {
	h, ok := boardHand(board)
	if !ok {
		return Dry
	}

	var wetness int

	maxSuit := 0
	for _, count := range h.SuitCounts() {
		maxSuit = max(maxSuit, count)
	}
	switch {
	case maxSuit >= 3:
		wetness += maxSuit
	case maxSuit == 2:
		wetness++
	}

	switch connected := longestRun(h.RankMask()); {
	case connected >= 4:
		wetness += 4
	case connected == 3:
		wetness += 3
	case connected == 2:
		wetness++
	}

	if h.PairsMask()|h.TripsMask() != 0 {
		wetness++
	}
	if bits.OnesCount16(h.RankMask()&broadwayMask) >= 3 {
		wetness++
	}

	switch {
	case wetness <= 0:
		return Dry
	case wetness <= 3:
		return SemiWet
	case wetness <= 5:
		return Wet
	default:
		return VeryWet
	}
}

// longestRun counts the longest chain of consecutive ranks, letting the Ace
// also play low.
func longestRun(ranks uint16) int {
	// Shift up one and put the Ace in bit 0 so A-2 is adjacent.
	ext := uint32(ranks)<<1 | uint32(ranks>>poker.Ace)&1
	n := 0
	for ext != 0 {
		ext &= ext >> 1
		n++
	}
	return n
}
