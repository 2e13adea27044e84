package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/tagpoker/poker"
)

type handPredicate func(hole, board []poker.Card) bool

type handCase struct {
	hole  string
	board string
	want  bool
}

func runHandCases(t *testing.T, name string, predicate handPredicate, cases []handCase) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Parallel()
		for _, tc := range cases {
			got := predicate(cards(tc.hole), cards(tc.board))
			assert.Equal(t, tc.want, got, "%s on %s", tc.hole, tc.board)
		}
	})
}

func TestHandPredicates(t *testing.T) {
	t.Parallel()

	runHandCases(t, "flush", HasFlush, []handCase{
		{"Ah Kh", "Qh Jh 2c", false},
		{"2c 3c", "Kc 8c 4c", true},
		{"2d 3d", "Kc 8c 4c 9c Jc", true},
		{"Ah Kh", "Qh Jh Th", true},
	})

	runHandCases(t, "nut flush", HasNutFlush, []handCase{
		{"Ac 3d", "Kc 8c 4c 9c", true},
		{"Kc 3c", "Qc 8c 4c", false},
		{"Ad 3d", "Kc 8c 4c 9c 2c", false},
		{"Ah Kh", "Qh Jh Th", true},
		{"Ac Kd", "Qc 8c 4h", false},
	})

	runHandCases(t, "second nut flush", HasSecondNutFlush, []handCase{
		{"Kc 3c", "Qc 8c 4c", true},
		{"Qc 3c", "Kc 8c 4c", true},
		{"Jc 3c", "Kc 8c 4c", false},
		{"Ac 2d", "Kc 8c 4c 3c", true},
		{"Kc 3c", "Ac 8c 4c", true},
		{"Kd 3d", "Qc 8c 4c", false},
	})

	runHandCases(t, "royal flush", HasRoyalFlush, []handCase{
		{"Ah Kh", "Qh Jh Th", true},
		{"Ah Kh", "Qh Jh 9h", false},
		{"2c 3d", "Ts Js Qs Ks As", true},
	})

	runHandCases(t, "straight", HasStraight, []handCase{
		{"9h 8d", "7c 6s 5h", true},
		{"9h 8d", "7c 6s 2h", false},
		{"Ah 2d", "3c 4s 5h", true},
		{"2h 3h", "4h 5h 6h", true},
		{"Kh Qd", "Ac 2s 3h", false},
	})

	runHandCases(t, "straight flush", HasStraightFlush, []handCase{
		{"2h 3h", "4h 5h 6h", true},
		{"9h 8h", "7h 6h 5d", false},
		{"Ah Kh", "Qh Jh Th", true},
		{"Ah 2h", "3h 4h 5h", true},
	})

	runHandCases(t, "top pair", HasTopPair, []handCase{
		{"Kh 2d", "Kc 8s 4d", true},
		{"8h 2d", "Kc 8s 4d", false},
		{"Ac Kd", "Ah Qd 8c 6s 3h", true},
	})

	runHandCases(t, "top pair top kicker", HasTopPairTopKicker, []handCase{
		{"Ac Kd", "Ah Qd 8c 6s 3h", true},
		{"Ac Jd", "Ah Qd 8c 6s 3h", false},
		{"Kc Ad", "Kh 8s 4d", true},
		{"Kc Qd", "Kh 8s 4d", false},
		{"Ac Qs", "Ah Kd 4c", true},
		{"Ac As", "Ah Kd 4c", false},
	})

	runHandCases(t, "second pair", HasSecondPair, []handCase{
		{"8h 2d", "Kc 8s 4d", true},
		{"4h 2d", "Kc 8s 4d", false},
		{"8h 2d", "Kc Kd 8s", true},
		{"8h 2d", "Kc Kd Ks", false},
	})

	runHandCases(t, "overpair", HasOverpair, []handCase{
		{"Qh Qd", "Jc 8s 4d", true},
		{"Qh Qd", "Kc 8s 4d", false},
		{"Qh Jd", "9c 8s 4d", false},
		{"Jh Jd", "Jc 8s 4d", false},
	})

	runHandCases(t, "set", HasSet, []handCase{
		{"8h 8d", "Kc 8s 4d", true},
		{"8h 8d", "Kc 8s 8c", false},
		{"8h 9d", "Kc 8s 8c", false},
		{"8h 8d", "Kc 7s 4d", false},
	})

	runHandCases(t, "three of a kind", HasThreeOfAKind, []handCase{
		{"8h 9d", "Kc 8s 8c", true},
		{"8h 8d", "Kc 8s 4d", true},
		{"2h 3d", "Kc Ks Kd", false},
		{"Kh 3d", "Kc Ks Kd", false},
	})

	runHandCases(t, "four of a kind", HasFourOfAKind, []handCase{
		{"Kh 3d", "Kc Ks Kd", true},
		{"2h 3d", "Kc Ks Kd Kh", true},
		{"8h 8d", "Kc 8s 4d", false},
	})

	runHandCases(t, "full house", HasFullHouse, []handCase{
		{"8h 8d", "Kc 8s Kd", true},
		{"Kh 2d", "Kc Ks 2s", true},
		{"Kh 2d", "Kc 8s 4d", false},
		{"2h 3d", "Kc Ks Kd 4h 4d", true},
		{"Kh 3d", "Kc Ks Kd", false},
	})
}

func TestMadeHandRefinements(t *testing.T) {
	t.Parallel()

	runHandCases(t, "nut straight", HasNutStraight, []handCase{
		{"Th Jd", "9c 8d 7h", true},
		{"6h Td", "9c 8d 7h", false},
		{"5h 6d", "9c 8d 7h", false},
		{"Ad 2c", "Th Jd Qc Ks", true},
		{"9d 2c", "Th Jd Qc Ks", false},
		{"Ad Kc", "Qh Jd 2c", false},
	})

	runHandCases(t, "best straight using one hole card", HasBestStraightUsingOneHoleCard, []handCase{
		{"9h 2d", "5c 6d 7h 8s 2c", true},
		{"4h Kd", "5c 6d 7h 8s 2c", false},
		{"8h Kd", "5c 6d 7h 9s 2c", true},
		{"Ah 3d", "Kc 8d 4h 2s 2c", false},
		{"Th 2d", "5c 6d 7h 8s 9c", true},
		{"4h 2d", "5c 6d 7h 8s 9c", false},
	})

	runHandCases(t, "best full house using one hole card", HasBestFullHouseUsingOneHoleCard, []handCase{
		{"Ah 2d", "Ac Ad Kc Kd 5h", true},
		{"Kh 2d", "Ac Ad Kc Kd 5h", false},
		{"5c 5d", "Ac Ad Kc Kd 5h", false},
		{"4c 9d", "Kc Ks Kd 4h 2d", true},
		{"2c 9d", "Kc Ks Kd 4h 2d", false},
		{"4c 9d", "Kc Ks Kd 4h 4d", false},
	})
}

func TestHandPredicatesRejectInvalidInput(t *testing.T) {
	t.Parallel()
	predicates := map[string]handPredicate{
		"flush":                    HasFlush,
		"nut flush":                HasNutFlush,
		"second nut flush":         HasSecondNutFlush,
		"royal flush":              HasRoyalFlush,
		"straight":                 HasStraight,
		"straight flush":           HasStraightFlush,
		"top pair":                 HasTopPair,
		"top pair top kicker":      HasTopPairTopKicker,
		"second pair":              HasSecondPair,
		"overpair":                 HasOverpair,
		"set":                      HasSet,
		"three of a kind":          HasThreeOfAKind,
		"four of a kind":           HasFourOfAKind,
		"full house":               HasFullHouse,
		"nut straight":             HasNutStraight,
		"best straight one card":   HasBestStraightUsingOneHoleCard,
		"best full house one card": HasBestFullHouseUsingOneHoleCard,
	}

	// Each input would satisfy most predicates if it were well formed.
	invalid := []struct {
		hole  string
		board string
	}{
		{"Ah", "Kh Qh Jh Th"},
		{"Ah Kh As", "Qh Jh Th"},
		{"Ah Ah", "Kh Qh Jh"},
		{"Ah Kh", "Qh Jh"},
		{"Ah Kh", "Qh Jh Th 9h 8h 7h"},
		{"Ah Kh", "Qh Qh Jh Th"},
	}

	for name, predicate := range predicates {
		for _, in := range invalid {
			assert.False(t, predicate(cards(in.hole), cards(in.board)), "%s: %s on %s", name, in.hole, in.board)
		}
	}
}

func TestFullHouseOf(t *testing.T) {
	t.Parallel()
	counts := poker.NewHand(cards("Kc Ks Kd 4h 4d 4c")...).RankCounts()
	fh, ok := FullHouseOf(counts)
	assert.True(t, ok)
	assert.Equal(t, FullHouse{Trips: poker.King, Pair: poker.Four}, fh)

	_, ok = FullHouseOf(poker.NewHand(cards("Kc Ks Kd Kh 4d")...).RankCounts())
	assert.False(t, ok)

	assert.True(t, FullHouse{Trips: poker.Ace, Pair: poker.Two}.Beats(FullHouse{Trips: poker.King, Pair: poker.Ace}))
	assert.True(t, FullHouse{Trips: poker.King, Pair: poker.Queen}.Beats(FullHouse{Trips: poker.King, Pair: poker.Jack}))
}

func TestBestStraightHigh(t *testing.T) {
	t.Parallel()
	assert.Equal(t, int(poker.Jack), BestStraightHigh(cards("9c 8d 7h")))
	assert.Equal(t, int(poker.Ace), BestStraightHigh(cards("Th Jd Qc Ks")))
	assert.Equal(t, int(poker.Five), BestStraightHigh(cards("Ah 2d 3c")))
	assert.Equal(t, -1, BestStraightHigh(cards("Kh 7d 2c")))
	assert.Equal(t, -1, BestStraightHigh(cards("Ah")))
}
