package classification

import (
	"fmt"

	"github.com/lox/tagpoker/poker"
)

// Texture is the single label a board's features reduce to. The zero value
// NoTexture means no label applies.
type Texture uint8

const (
	NoTexture Texture = iota
	TextureOnePair
	TextureTwoPair
	TextureThreeToFlush
	TextureThreeToOpenEndedStraight
	TextureFourToFlush
	TextureFourToStraight
	TextureFourToStraightOnePair
	TexturePossibleFlushOnePair
	TexturePossibleStraightPossibleFlush
)

// Textures lists every label, NoTexture excluded.
var Textures = []Texture{
	TextureOnePair,
	TextureTwoPair,
	TextureThreeToFlush,
	TextureThreeToOpenEndedStraight,
	TextureFourToFlush,
	TextureFourToStraight,
	TextureFourToStraightOnePair,
	TexturePossibleFlushOnePair,
	TexturePossibleStraightPossibleFlush,
}

func (t Texture) String() string {
	switch t {
	case NoTexture:
		return "none"
	case TextureOnePair:
		return "one-pair"
	case TextureTwoPair:
		return "two-pair"
	case TextureThreeToFlush:
		return "three-to-flush"
	case TextureThreeToOpenEndedStraight:
		return "three-to-open-ended-straight"
	case TextureFourToFlush:
		return "four-to-flush"
	case TextureFourToStraight:
		return "four-to-straight"
	case TextureFourToStraightOnePair:
		return "four-to-straight-one-pair"
	case TexturePossibleFlushOnePair:
		return "possible-flush-one-pair"
	case TexturePossibleStraightPossibleFlush:
		return "possible-straight-possible-flush"
	default:
		return "unknown"
	}
}

// ParseTexture is the inverse of Texture.String.
func ParseTexture(s string) (Texture, error) {
	if s == NoTexture.String() {
		return NoTexture, nil
	}
	for _, t := range Textures {
		if t.String() == s {
			return t, nil
		}
	}
	return NoTexture, fmt.Errorf("unknown texture %q", s)
}

// MinBoardCards is the fewest board cards on which the texture can occur.
func (t Texture) MinBoardCards() int {
	switch t {
	case TextureTwoPair, TextureFourToFlush, TextureFourToStraight,
		TexturePossibleFlushOnePair:
		return 4
	case TextureFourToStraightOnePair:
		return 5
	default:
		return MinBoardCards
	}
}

// Reduce strips contextual flags and applies subsumption: four to a flush
// hides three to a flush, four to a straight hides both three-card straight
// variants, and two pair hides one pair.
func Reduce(fs Features) Features {
	fs = fs.Without(AceHigh)
	if fs.Has(FourToFlush) {
		fs = fs.Without(ThreeToFlush)
	}
	if fs.Has(FourToStraight) {
		fs = fs.Without(ThreeToStraight, ThreeToOpenEndedStraight)
	}
	if fs.Has(TwoPair) {
		fs = fs.Without(OnePair)
	}
	// Only the open-ended variant is part of the label table.
	return fs.Without(ThreeToStraight)
}

var textureTable = map[Features]Texture{
	NewFeatures(OnePair):                                TextureOnePair,
	NewFeatures(TwoPair):                                TextureTwoPair,
	NewFeatures(ThreeToFlush):                           TextureThreeToFlush,
	NewFeatures(ThreeToOpenEndedStraight):               TextureThreeToOpenEndedStraight,
	NewFeatures(FourToFlush):                            TextureFourToFlush,
	NewFeatures(FourToStraight):                         TextureFourToStraight,
	NewFeatures(FourToStraight, OnePair):                TextureFourToStraightOnePair,
	NewFeatures(OnePair, ThreeToFlush):                  TexturePossibleFlushOnePair,
	NewFeatures(OnePair, FourToFlush):                   TexturePossibleFlushOnePair,
	NewFeatures(ThreeToOpenEndedStraight, ThreeToFlush): TexturePossibleStraightPossibleFlush,
	NewFeatures(ThreeToOpenEndedStraight, FourToFlush):  TexturePossibleStraightPossibleFlush,
	NewFeatures(FourToStraight, ThreeToFlush):           TexturePossibleStraightPossibleFlush,
	NewFeatures(FourToStraight, FourToFlush):            TexturePossibleStraightPossibleFlush,
}

// Classify reduces a feature set to its texture label.
func Classify(fs Features) Texture {
	return textureTable[Reduce(fs)]
}

// ClassifyBoard computes the board's features and classifies them.
func ClassifyBoard(board []poker.Card) Texture {
	return Classify(BoardFeatures(board))
}
