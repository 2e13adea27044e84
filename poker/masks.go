package poker

import "math/bits"

// wheelMask is Ace + 2-3-4-5.
const wheelMask = 0x100F

// SuitMask returns the cards of a specific suit as a rank bitmask
func (h Hand) SuitMask(suit uint8) uint16 {
	return uint16((h >> (uint(suit) * 13)) & RankMask)
}

// SuitMasks returns the rank bitmask of every suit.
func (h Hand) SuitMasks() [4]uint16 {
	return [4]uint16{h.SuitMask(Clubs), h.SuitMask(Diamonds), h.SuitMask(Hearts), h.SuitMask(Spades)}
}

// RankMask returns a bitmask of which ranks are present, one bit per rank.
func (h Hand) RankMask() uint16 {
	s := h.SuitMasks()
	return s[0] | s[1] | s[2] | s[3]
}

// SuitCount returns how many cards of the suit the hand holds.
func (h Hand) SuitCount(suit uint8) int {
	return bits.OnesCount16(h.SuitMask(suit))
}

// RankCount returns how many cards of the rank the hand holds.
func (h Hand) RankCount(rank uint8) int {
	n := 0
	for suit := Clubs; suit <= Spades; suit++ {
		if h.HasCard(NewCard(rank, suit)) {
			n++
		}
	}
	return n
}

// RankCounts is a histogram of the hand by rank.
func (h Hand) RankCounts() [13]int {
	var counts [13]int
	for _, m := range h.SuitMasks() {
		for rem := m; rem != 0; rem &= rem - 1 {
			counts[bits.TrailingZeros16(rem)]++
		}
	}
	return counts
}

// SuitCounts is a histogram of the hand by suit.
func (h Hand) SuitCounts() [4]int {
	var counts [4]int
	for suit := Clubs; suit <= Spades; suit++ {
		counts[suit] = h.SuitCount(suit)
	}
	return counts
}

// QuadsMask returns the ranks held four times.
func (h Hand) QuadsMask() uint16 {
	s := h.SuitMasks()
	return s[0] & s[1] & s[2] & s[3]
}

// TripsMask returns the ranks held exactly three times.
func (h Hand) TripsMask() uint16 {
	return h.atLeastThree() &^ h.QuadsMask()
}

// PairsMask returns the ranks held exactly twice.
func (h Hand) PairsMask() uint16 {
	s := h.SuitMasks()
	s0, s1, s2, s3 := s[0], s[1], s[2], s[3]
	atLeastTwo := (s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)
	return atLeastTwo &^ h.atLeastThree()
}

func (h Hand) atLeastThree() uint16 {
	s := h.SuitMasks()
	s0, s1, s2, s3 := s[0], s[1], s[2], s[3]
	return (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
}

// HighestRank returns the highest rank set in the mask, or -1 if empty.
func HighestRank(mask uint16) int {
	mask &= RankMask
	if mask == 0 {
		return -1
	}
	return bits.Len16(mask) - 1
}

// RanksDescending lists the ranks set in the mask from high to low.
func RanksDescending(mask uint16) []uint8 {
	mask &= RankMask
	ranks := make([]uint8, 0, bits.OnesCount16(mask))
	for mask != 0 {
		r := uint8(bits.Len16(mask) - 1)
		ranks = append(ranks, r)
		mask &^= 1 << r
	}
	return ranks
}

// StraightHigh returns the high-card rank of the best straight present in
// the mask, or -1 if none. The wheel reports Five.
func StraightHigh(mask uint16) int {
	mask &= RankMask

	// Bitwise cascade identifies consecutive sequences in one pass.
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		return bits.Len16(seq) - 1 + 4
	}
	if mask&wheelMask == wheelMask {
		return int(Five)
	}
	return -1
}

// StraightWindows returns the ten five-rank straight windows from the wheel
// up to broadway, lowest first.
func StraightWindows() [10]uint16 {
	var windows [10]uint16
	windows[0] = wheelMask
	for low := 0; low < 9; low++ {
		windows[low+1] = 0x1F << low
	}
	return windows
}
