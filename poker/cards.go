// Package poker provides the card model shared by the classifiers: single
// cards packed as one bit in a uint64, and card sets (Hand) as the union of
// those bits.
package poker

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Card represents a single card as a bit position in a uint64.
// Layout: [13 spades][13 hearts][13 diamonds][13 clubs]
type Card uint64

// Hand is a set of cards, one bit per card.
type Hand uint64

// Suit constants
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

// Rank constants (0-12 for 2-A)
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

// RankMask covers the 13 rank bits of a single suit.
const RankMask = 0x1FFF

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
	cardBits  = 1<<52 - 1
)

var (
	ErrInvalidCard   = errors.New("invalid card")
	ErrInvalidRank   = errors.New("invalid rank")
	ErrInvalidSuit   = errors.New("invalid suit")
	ErrDuplicateCard = errors.New("duplicate card")
)

// NewCard creates a card from rank and suit
func NewCard(rank, suit uint8) Card {
	return Card(1) << (uint(suit)*13 + uint(rank))
}

// Valid reports whether the card is exactly one of the 52 cards.
func (c Card) Valid() bool {
	return c != 0 && c&cardBits == c && bits.OnesCount64(uint64(c)) == 1
}

func (c Card) position() uint8 {
	return uint8(bits.TrailingZeros64(uint64(c)))
}

// Rank returns the rank of the card (0-12), or 255 for an invalid card.
func (c Card) Rank() uint8 {
	if !c.Valid() {
		return 255
	}
	return c.position() % 13
}

// Suit returns the suit of the card (0-3), or 255 for an invalid card.
func (c Card) Suit() uint8 {
	if !c.Valid() {
		return 255
	}
	return c.position() / 13
}

// String returns the string representation (e.g., "As", "Kh")
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return RankString(c.Rank()) + string(suitChars[c.Suit()])
}

// RankString returns the single character used for a rank.
func RankString(rank uint8) string {
	if rank > Ace {
		return "?"
	}
	return string(rankChars[rank])
}

// SuitSymbol returns the unicode symbol for a suit.
func SuitSymbol(suit uint8) string {
	switch suit {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// ParseRank parses a rank character such as 'T' or '9'.
func ParseRank(b byte) (uint8, error) {
	idx := strings.IndexByte(rankChars, upper(b))
	if idx < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRank, b)
	}
	return uint8(idx), nil
}

// ParseSuit parses a suit character (c, d, h, s).
func ParseSuit(b byte) (uint8, error) {
	idx := strings.IndexByte(suitChars, lower(b))
	if idx < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSuit, b)
	}
	return uint8(idx), nil
}

// ParseCard parses a string like "As" into a Card. "10h" is accepted as "Th".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	rank, err := ParseRank(s[0])
	if err != nil {
		return 0, fmt.Errorf("parse card %q: %w", s, err)
	}
	suit, err := ParseSuit(s[1])
	if err != nil {
		return 0, fmt.Errorf("parse card %q: %w", s, err)
	}
	return NewCard(rank, suit), nil
}

// ParseCards parses a list of cards. Cards may be concatenated ("AhKd") or
// separated by spaces or commas ("Ah Kd", "Ah,Kd").
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})

	var cards []Card
	for _, field := range fields {
		field = strings.ReplaceAll(field, "10", "T")
		if len(field)%2 != 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCard, field)
		}
		for i := 0; i < len(field); i += 2 {
			card, err := ParseCard(field[i : i+2])
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins the cards with single spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// NewHand creates a hand from multiple cards
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// HandOf builds a hand from cards, rejecting invalid and repeated cards.
func HandOf(cards []Card) (Hand, error) {
	var h Hand
	for _, c := range cards {
		if !c.Valid() {
			return 0, fmt.Errorf("%w: %#x", ErrInvalidCard, uint64(c))
		}
		if h.HasCard(c) {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		h |= Hand(c)
	}
	return h, nil
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard checks if the hand contains a specific card
func (h Hand) HasCard(c Card) bool {
	return (h & Hand(c)) != 0
}

// CountCards returns the number of cards in the hand
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// Cards returns the hand's cards ordered by suit then rank.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for rem := uint64(h); rem != 0; rem &= rem - 1 {
		cards = append(cards, Card(rem&-rem))
	}
	return cards
}

func (h Hand) String() string {
	return FormatCards(h.Cards())
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
