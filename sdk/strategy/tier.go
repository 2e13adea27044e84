package strategy

import "github.com/lox/tagpoker/sdk/classification"

// Tier is how dangerous a board texture is.
type Tier uint8

const (
	NonScary Tier = iota
	Scary
	VeryScary
)

func (t Tier) String() string {
	switch t {
	case NonScary:
		return "non-scary"
	case Scary:
		return "scary"
	case VeryScary:
		return "very-scary"
	default:
		return "unknown"
	}
}

// TierOf maps a texture to its severity tier. Boards with no texture are
// NonScary.
func TierOf(t classification.Texture) Tier {
	switch t {
	case classification.TextureOnePair,
		classification.TextureThreeToOpenEndedStraight,
		classification.TextureThreeToFlush:
		return Scary
	case classification.TextureTwoPair,
		classification.TextureFourToStraight,
		classification.TextureFourToFlush,
		classification.TextureFourToStraightOnePair,
		classification.TexturePossibleFlushOnePair,
		classification.TexturePossibleStraightPossibleFlush:
		return VeryScary
	default:
		return NonScary
	}
}
