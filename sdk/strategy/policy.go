package strategy

import (
	"fmt"

	"github.com/lox/tagpoker/sdk/classification"
)

// PolicyError is the panic value for a texture and street the policy has
// no requirement for, such as a four-card texture on the flop.
type PolicyError struct {
	Texture classification.Texture
	Street  Street
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("no minimum hand for %s on the %s", e.Texture, e.Street)
}

// MinGoodHand returns the weakest hand the tight-aggressive profile keeps
// playing on this board at street. It panics with a *PolicyError when the
// combination cannot occur.
func (b BoardContext) MinGoodHand(street Street) MinGoodHand {
	switch b.Texture {
	case classification.NoTexture:
		switch street {
		case Flop:
			return SecondPair
		case Turn:
			return TopPair
		case River:
			return b.pairOrAceHigh()
		}

	case classification.TextureOnePair:
		switch street {
		case Flop:
			return TopPair
		case Turn:
			return b.pairOrAceHigh()
		case River:
			return Trips
		}

	case classification.TextureThreeToOpenEndedStraight:
		switch street {
		case Flop:
			return TopPair
		case Turn:
			return b.pairOrAceHigh()
		case River:
			return Straight
		}

	case classification.TextureThreeToFlush:
		switch street {
		case Flop:
			return TopPair
		case Turn:
			return b.pairOrAceHigh()
		case River:
			return Flush
		}

	case classification.TexturePossibleStraightPossibleFlush:
		switch street {
		case Flop:
			return Straight
		case Turn:
			return Flush
		case River:
			return SecondNutFlush
		}

	case classification.TextureFourToFlush:
		switch street {
		case Turn:
			return SecondNutFlush
		case River:
			return NutFlush
		}

	case classification.TextureFourToStraight:
		switch street {
		case Turn:
			if b.TJQK {
				return NutStraight
			}
			return Straight
		case River:
			return BestStraightUsingOneHoleCard
		}

	case classification.TextureFourToStraightOnePair:
		switch street {
		case Turn:
			return NutStraight
		case River:
			return FullHouse
		}

	case classification.TexturePossibleFlushOnePair:
		switch street {
		case Turn:
			return NutFlush
		case River:
			return FullHouse
		}

	case classification.TextureTwoPair:
		switch street {
		case Turn:
			return FullHouse
		case River:
			return BestFullHouseUsingOneHoleCard
		}
	}

	panic(&PolicyError{Texture: b.Texture, Street: street})
}

// pairOrAceHigh drops to top pair top kicker when an ace is on board.
func (b BoardContext) pairOrAceHigh() MinGoodHand {
	if b.AceHigh {
		return TopPairTopKicker
	}
	return Overpair
}
