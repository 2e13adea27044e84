package classification

import (
	"math/bits"

	"github.com/lox/tagpoker/poker"
)

// HoleCards is the number of private cards a player holds.
const HoleCards = 2

const royalMask = tjqkMask | 1<<poker.Ace

// Made-hand predicates over two hole cards and a 3-5 card board. Hole and
// board are validated independently; overlap between them is the caller's
// concern.

type handView struct {
	hole  [2]poker.Card
	board poker.Hand
	all   poker.Hand
}

func viewOf(hole, board []poker.Card) (handView, bool) {
	if len(hole) != HoleCards {
		return handView{}, false
	}
	holeHand, err := poker.HandOf(hole)
	if err != nil {
		return handView{}, false
	}
	b, ok := boardHand(board)
	if !ok {
		return handView{}, false
	}
	return handView{
		hole:  [2]poker.Card{hole[0], hole[1]},
		board: b,
		all:   holeHand | b,
	}, true
}

func (v handView) holeRanks() (uint8, uint8) {
	return v.hole[0].Rank(), v.hole[1].Rank()
}

func (v handView) pocketPair() bool {
	a, b := v.holeRanks()
	return a == b
}

// flushSuit returns the suit with five or more cards, or -1.
func (v handView) flushSuit() int {
	for suit, count := range v.all.SuitCounts() {
		if count >= 5 {
			return suit
		}
	}
	return -1
}

func (v handView) holesSuit(suit uint8) []poker.Card {
	var out []poker.Card
	for _, c := range v.hole {
		if c.Suit() == suit {
			out = append(out, c)
		}
	}
	return out
}

// HasFlush reports five or more cards of one suit across hole and board.
func HasFlush(hole, board []poker.Card) bool {
	v, ok := viewOf(hole, board)
	return ok && v.flushSuit() >= 0
}

// HasNutFlush reports a flush where a hole card is the Ace of the flush suit.
func HasNutFlush(hole, board []poker.Card) bool {
	v, ok := viewOf(hole, board)
	if !ok {
		return false
	}
	suit := v.flushSuit()
	if suit < 0 {
		return false
	}
	ace := poker.NewCard(poker.Ace, uint8(suit))
	return v.hole[0] == ace || v.hole[1] == ace
}

// HasSecondNutFlush reports a flush where a hole card of the flush suit is
// one of the two highest ranks of that suit missing from the board. The nut
// flush satisfies it as well.
func HasSecondNutFlush(hole, board []poker.Card) bool {
	v, ok := viewOf(hole, board)
	if !ok {
		return false
	}
	suit := v.flushSuit()
	if suit < 0 {
		return false
	}
	open := RanksOutside(v.board.SuitMask(uint8(suit)))
	if len(open) > 2 {
		open = open[:2]
	}
	for _, c := range v.holesSuit(uint8(suit)) {
		for _, r := range open {
			if c.Rank() == r {
				return true
			}
		}
	}
	return false
}

// RanksOutside lists, high to low, the ranks not set in mask.
func RanksOutside(mask uint16) []uint8 {
	return poker.RanksDescending(^mask & poker.RankMask)
}

// HasRoyalFlush reports T-J-Q-K-A of the flush suit.
func HasRoyalFlush(hole, board []poker.Card) bool {
	v, ok := viewOf(hole, board)
	if !ok {
		return false
	}
	suit := v.flushSuit()
	return suit >= 0 && v.all.SuitMask(uint8(suit))&royalMask == royalMask
}

// HasStraight reports five consecutive ranks across hole and board.
func HasStraight(hole, board []poker.Card) bool {
	v, ok := viewOf(hole, board)
	return ok && poker.StraightHigh(v.all.RankMask()) >= 0
}

// HasStraightFlush reports five consecutive ranks within the flush suit.
func HasStraightFlush(hole, board []poker.Card) bool {
	v, ok := viewOf(hole, board)
	if !ok {
		return false
	}
	suit := v.flushSuit()
	return suit >= 0 && poker.StraightHigh(v.all.SuitMask(uint8(suit))) >= 0
}

// HasTopPair reports a hole card matching the highest board rank.
func HasTopPair(hole, board []poker.Card) bool {
	v, ok := viewOf(hole, board)
	if !ok {
		return false
	}
	top := uint8(poker.HighestRank(v.board.RankMask()))
	a, b := v.holeRanks()
	return a == top || b == top
}

// HasTopPairTopKicker reports top pair where the other hole card is the
// highest rank absent from the board.
func HasTopPairTopKicker(hole, board []poker.Card) bool {
	v, ok := viewOf(hole, board)
	if !ok {
		return false
	}
	boardRanks := v.board.RankMask()
	top := uint8(poker.HighestRank(boardRanks))
	best := RanksOutside(boardRanks)[0]

	a, b := v.holeRanks()
	return (a == top && b == best) || (b == top && a == best)
}

// HasSecondPair reports a hole card matching the second highest distinct
// board rank.
func HasSecondPair(hole, board []poker.Card) bool {
	v, ok := viewOf(hole, board)
	if !ok {
		return false
	}
	ranks := poker.RanksDescending(v.board.RankMask())
	if len(ranks) < 2 {
		return false
	}
	a, b := v.holeRanks()
	return a == ranks[1] || b == ranks[1]
}

// HasOverpair reports a pocket pair above every board rank.
func HasOverpair(hole, board []poker.Card) bool {
	v, ok := viewOf(hole, board)
	if !ok || !v.pocketPair() {
		return false
	}
	r, _ := v.holeRanks()
	return int(r) > poker.HighestRank(v.board.RankMask())
}

// HasSet reports a pocket pair matched by exactly one board card.
func HasSet(hole, board []poker.Card) bool {
	v, ok := viewOf(hole, board)
	if !ok || !v.pocketPair() {
		return false
	}
	r, _ := v.holeRanks()
	return v.board.RankCount(r) == 1
}

// HasThreeOfAKind reports a rank held exactly three times with at least one
// of them a hole card. A set also qualifies.
func HasThreeOfAKind(hole, board []poker.Card) bool {
	v, ok := viewOf(hole, board)
	if !ok {
		return false
	}
	trips := v.all.TripsMask()
	a, b := v.holeRanks()
	return trips&(1<<a) != 0 || trips&(1<<b) != 0
}

// HasFourOfAKind reports any rank held four times.
func HasFourOfAKind(hole, board []poker.Card) bool {
	v, ok := viewOf(hole, board)
	return ok && v.all.QuadsMask() != 0
}

// HasFullHouse reports a rank held exactly three times plus another rank
// held at least twice.
func HasFullHouse(hole, board []poker.Card) bool {
	v, ok := viewOf(hole, board)
	if !ok {
		return false
	}
	_, ok = FullHouseOf(v.all.RankCounts())
	return ok
}

// FullHouse identifies a full house by its trips and pair ranks.
type FullHouse struct {
	Trips uint8
	Pair  uint8
}

// Beats reports whether fh outranks other.
func (fh FullHouse) Beats(other FullHouse) bool {
	if fh.Trips != other.Trips {
		return fh.Trips > other.Trips
	}
	return fh.Pair > other.Pair
}

// FullHouseOf returns the best full house available in a rank histogram:
// the highest rank held three times, paired with the highest other rank
// held at least twice. Quads are not a full house.
func FullHouseOf(counts [13]int) (FullHouse, bool) {
	trips := -1
	for r := int(poker.Ace); r >= 0; r-- {
		if counts[r] == 3 {
			trips = r
			break
		}
	}
	if trips < 0 {
		return FullHouse{}, false
	}
	for r := int(poker.Ace); r >= 0; r-- {
		if r != trips && counts[r] >= 2 {
			return FullHouse{Trips: uint8(trips), Pair: uint8(r)}, true
		}
	}
	return FullHouse{}, false
}

// BestStraightHigh returns the highest straight a player could hold on
// this board with any two hole cards, or -1 if the board allows none.
func BestStraightHigh(board []poker.Card) int {
	h, ok := boardHand(board)
	if !ok {
		return -1
	}
	ranks := h.RankMask()
	best := -1
	windows := poker.StraightWindows()
	for _, w := range windows {
		if bits.OnesCount16(ranks&w) >= 3 {
			if high := poker.StraightHigh(w); high > best {
				best = high
			}
		}
	}
	return best
}

// HasNutStraight reports a straight as high as any two hole cards could
// make on this board.
func HasNutStraight(hole, board []poker.Card) bool {
	v, ok := viewOf(hole, board)
	if !ok {
		return false
	}
	high := poker.StraightHigh(v.all.RankMask())
	return high >= 0 && high == BestStraightHigh(board)
}

// bestOneCardStraight returns the highest straight that a single extra
// rank completes on top of the board ranks, counting only straights above
// whatever the board already shows. -1 when no single rank does.
func bestOneCardStraight(boardRanks uint16) int {
	floor := poker.StraightHigh(boardRanks)
	best := -1
	for r := range uint8(13) {
		if high := poker.StraightHigh(boardRanks | 1<<r); high > floor && high > best {
			best = high
		}
	}
	return best
}

// HasBestStraightUsingOneHoleCard reports that one hole card alone completes
// the highest straight any single card could complete on this board.
func HasBestStraightUsingOneHoleCard(hole, board []poker.Card) bool {
	v, ok := viewOf(hole, board)
	if !ok {
		return false
	}
	boardRanks := v.board.RankMask()
	best := bestOneCardStraight(boardRanks)
	if best < 0 {
		return false
	}
	for _, c := range v.hole {
		if poker.StraightHigh(boardRanks|1<<c.Rank()) == best {
			return true
		}
	}
	return false
}

// bestOneCardFullHouse returns the best full house a single extra card
// completes on the board, provided it improves on the board's own.
func bestOneCardFullHouse(counts [13]int) (FullHouse, bool) {
	floor, hasFloor := FullHouseOf(counts)
	var best FullHouse
	found := false
	for r := range 13 {
		if counts[r] >= 4 {
			continue
		}
		next := counts
		next[r]++
		fh, ok := FullHouseOf(next)
		if !ok || (hasFloor && !fh.Beats(floor)) {
			continue
		}
		if !found || fh.Beats(best) {
			best, found = fh, true
		}
	}
	return best, found
}

// HasBestFullHouseUsingOneHoleCard reports that one hole card alone
// completes the best full house any single card could complete on this
// board.
func HasBestFullHouseUsingOneHoleCard(hole, board []poker.Card) bool {
	v, ok := viewOf(hole, board)
	if !ok {
		return false
	}
	counts := v.board.RankCounts()
	best, ok := bestOneCardFullHouse(counts)
	if !ok {
		return false
	}
	for _, c := range v.hole {
		next := counts
		next[c.Rank()]++
		if fh, ok := FullHouseOf(next); ok && fh == best {
			return true
		}
	}
	return false
}
