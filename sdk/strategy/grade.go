package strategy

import "fmt"

// MinGoodHand grades hand strength for gating, from weakest to strongest.
// The order is the tight-aggressive profile's risk scale rather than poker
// hand rank: a flush sits above the nut straight, and the two "using one
// hole card" grades sit directly above the grade they refine.
type MinGoodHand uint8

const (
	SecondPair MinGoodHand = iota
	TopPair
	TopPairTopKicker
	Overpair
	Trips
	Straight
	NutStraight
	BestStraightUsingOneHoleCard
	Flush
	SecondNutFlush
	NutFlush
	FullHouse
	BestFullHouseUsingOneHoleCard
)

// Grades lists every grade from weakest to strongest.
var Grades = []MinGoodHand{
	SecondPair,
	TopPair,
	TopPairTopKicker,
	Overpair,
	Trips,
	Straight,
	NutStraight,
	BestStraightUsingOneHoleCard,
	Flush,
	SecondNutFlush,
	NutFlush,
	FullHouse,
	BestFullHouseUsingOneHoleCard,
}

func (g MinGoodHand) String() string {
	switch g {
	case SecondPair:
		return "second-pair"
	case TopPair:
		return "top-pair"
	case TopPairTopKicker:
		return "top-pair-top-kicker"
	case Overpair:
		return "overpair"
	case Trips:
		return "trips"
	case Straight:
		return "straight"
	case NutStraight:
		return "nut-straight"
	case BestStraightUsingOneHoleCard:
		return "best-straight-using-one-hole-card"
	case Flush:
		return "flush"
	case SecondNutFlush:
		return "second-nut-flush"
	case NutFlush:
		return "nut-flush"
	case FullHouse:
		return "full-house"
	case BestFullHouseUsingOneHoleCard:
		return "best-full-house-using-one-hole-card"
	default:
		return fmt.Sprintf("MinGoodHand(%d)", uint8(g))
	}
}

// AtLeast reports whether g meets the required grade.
func (g MinGoodHand) AtLeast(required MinGoodHand) bool {
	return g >= required
}

// ParseMinGoodHand is the inverse of MinGoodHand.String.
func ParseMinGoodHand(s string) (MinGoodHand, error) {
	for _, g := range Grades {
		if g.String() == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown hand grade %q", s)
}
