package classification

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tagpoker/poker"
)

func TestClassifyBoard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		board string
		want  Texture
	}{
		{"one pair", "Ah Ad Kh", TextureOnePair},
		{"two pair", "Ah Ad Kh Kd", TextureTwoPair},
		{"three to flush", "Kh 8h 2h", TextureThreeToFlush},
		{"three to open ended straight", "5h 6d 7c", TextureThreeToOpenEndedStraight},
		{"four to flush", "Kh 8h 2h 4h", TextureFourToFlush},
		{"four to straight", "5h 6d 7c 9s", TextureFourToStraight},
		{"four to straight one pair", "Ah Ad Kc Qs Jh", TextureFourToStraightOnePair},
		{"pair with three flush", "Ah Ad Th 5h", TexturePossibleFlushOnePair},
		{"pair with four flush", "Ah Ad Th 5h 2h", TexturePossibleFlushOnePair},
		{"monotone connected flop", "5h 6h 7h", TexturePossibleStraightPossibleFlush},
		{"four flush four straight", "Kh Qh Jh Th", TexturePossibleStraightPossibleFlush},
		{"dry", "Ah 8d 3c", NoTexture},
		{"pair flush and straight draw", "5h 6h 7h 7d", NoTexture},
		{"straight flush on board", "Kh Qh Jh Th 9h", NoTexture},
		{"invalid", "Ah Ad", NoTexture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			board := cards(tt.board)
			assert.Equal(t, tt.want, ClassifyBoard(board))
			assert.Equal(t, tt.want, Classify(BoardFlags(board)), "contextual flags must not change the label")
		})
	}
}

func TestReduce(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   Features
		want Features
	}{
		{
			name: "four flush drops three flush",
			in:   NewFeatures(ThreeToFlush, FourToFlush),
			want: NewFeatures(FourToFlush),
		},
		{
			name: "four straight drops three straight variants",
			in:   NewFeatures(ThreeToStraight, ThreeToOpenEndedStraight, FourToStraight),
			want: NewFeatures(FourToStraight),
		},
		{
			name: "two pair drops one pair",
			in:   NewFeatures(OnePair, TwoPair),
			want: NewFeatures(TwoPair),
		},
		{
			name: "ace high is contextual",
			in:   NewFeatures(AceHigh, OnePair),
			want: NewFeatures(OnePair),
		},
		{
			name: "plain three straight is not a label input",
			in:   NewFeatures(ThreeToStraight),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Reduce(tt.in))
		})
	}
}

func TestClassifyTable(t *testing.T) {
	t.Parallel()
	assert.Equal(t, TexturePossibleStraightPossibleFlush, Classify(NewFeatures(ThreeToOpenEndedStraight, FourToFlush)))
	assert.Equal(t, TexturePossibleStraightPossibleFlush, Classify(NewFeatures(FourToStraight, ThreeToFlush)))
	assert.Equal(t, TexturePossibleStraightPossibleFlush, Classify(NewFeatures(ThreeToFlush, FourToFlush, ThreeToOpenEndedStraight, FourToStraight)))
	assert.Equal(t, TextureFourToStraightOnePair, Classify(NewFeatures(OnePair, ThreeToOpenEndedStraight, FourToStraight)))
	assert.Equal(t, NoTexture, Classify(NewFeatures(TwoPair, ThreeToFlush)))
	assert.Equal(t, NoTexture, Classify(0))
}

func TestSubsumptionOnRandomBoards(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))
	for i := range 5000 {
		deck := poker.NewDeck(rng)
		board := deck.Deal(MinBoardCards + i%3)
		reduced := Reduce(BoardFeatures(board))

		if HasFourToFlush(board) {
			require.False(t, reduced.Has(ThreeToFlush), "board %s", poker.FormatCards(board))
		}
		if HasFourToStraight(board) {
			require.False(t, reduced.Has(ThreeToOpenEndedStraight), "board %s", poker.FormatCards(board))
		}
		if HasTwoPair(board) {
			require.False(t, reduced.Has(OnePair), "board %s", poker.FormatCards(board))
		}
	}
}

func TestFourCardTexturesNeverOnTheFlop(t *testing.T) {
	t.Parallel()
	seen := map[Texture]bool{}
	for a := range 52 {
		for b := a + 1; b < 52; b++ {
			for c := b + 1; c < 52; c++ {
				board := []poker.Card{poker.Card(1) << a, poker.Card(1) << b, poker.Card(1) << c}
				texture := ClassifyBoard(board)
				require.LessOrEqual(t, texture.MinBoardCards(), 3, "%s on %s", texture, poker.FormatCards(board))
				seen[texture] = true
			}
		}
	}

	for _, texture := range []Texture{
		NoTexture,
		TextureOnePair,
		TextureThreeToFlush,
		TextureThreeToOpenEndedStraight,
		TexturePossibleStraightPossibleFlush,
	} {
		assert.True(t, seen[texture], "flop texture %s never produced", texture)
	}
}

func TestTextureMinBoardCards(t *testing.T) {
	t.Parallel()
	want := map[Texture]int{
		NoTexture:                            3,
		TextureOnePair:                       3,
		TextureThreeToFlush:                  3,
		TextureThreeToOpenEndedStraight:      3,
		TexturePossibleStraightPossibleFlush: 3,
		TextureTwoPair:                       4,
		TextureFourToFlush:                   4,
		TextureFourToStraight:                4,
		TexturePossibleFlushOnePair:          4,
		TextureFourToStraightOnePair:         5,
	}
	for texture, n := range want {
		assert.Equal(t, n, texture.MinBoardCards(), "%s", texture)
	}

	// A pair uses two of four cards, leaving too few for a four-card straight.
	rng := rand.New(rand.NewSource(4))
	seen := map[Texture]bool{}
	for range 20000 {
		board := poker.NewDeck(rng).Deal(4)
		texture := ClassifyBoard(board)
		require.LessOrEqual(t, texture.MinBoardCards(), 4, "%s on %s", texture, poker.FormatCards(board))
		seen[texture] = true
	}
	assert.False(t, seen[TextureFourToStraightOnePair])
	assert.True(t, seen[TextureTwoPair])
	assert.True(t, seen[TexturePossibleFlushOnePair])
}

func TestParseTexture(t *testing.T) {
	t.Parallel()
	for _, texture := range append([]Texture{NoTexture}, Textures...) {
		got, err := ParseTexture(texture.String())
		require.NoError(t, err)
		assert.Equal(t, texture, got)
	}

	_, err := ParseTexture("soaking")
	assert.Error(t, err)
}

func TestFeaturesString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "{one-pair, four-to-flush}", NewFeatures(FourToFlush, OnePair).String())
	assert.Equal(t, "{}", Features(0).String())
	assert.Equal(t, 2, NewFeatures(FourToFlush, OnePair).Len())
	assert.Equal(t, []Feature{OnePair, FourToFlush}, NewFeatures(FourToFlush, OnePair).Slice())
}

func TestAnalyzeWetness(t *testing.T) {
	t.Parallel()
	tests := []struct {
		board string
		want  Wetness
	}{
		{"Ks 7h 2c", Dry},
		{"Kh Qh 7c", SemiWet},
		{"9h 8h 7s", Wet},
		{"Th 9h 8h", VeryWet},
		{"Ah Ad", Dry},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AnalyzeWetness(cards(tt.board)), tt.board)
	}
}
