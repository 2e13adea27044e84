package strategy

import (
	"fmt"
	"strings"
)

// Street is a post-flop betting round. Streets only move forward.
type Street uint8

const (
	Flop Street = iota
	Turn
	River
)

// Streets lists the post-flop streets in order.
var Streets = []Street{Flop, Turn, River}

func (s Street) String() string {
	switch s {
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unknown"
	}
}

// BoardCards is the number of community cards showing on the street.
func (s Street) BoardCards() int {
	return int(s) + 3
}

// ParseStreet parses "flop", "turn" or "river", case-insensitively.
func ParseStreet(s string) (Street, error) {
	for _, street := range Streets {
		if strings.EqualFold(s, street.String()) {
			return street, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStreet, s)
}

// StreetForBoard infers the street from the board size.
func StreetForBoard(n int) (Street, error) {
	for _, street := range Streets {
		if street.BoardCards() == n {
			return street, nil
		}
	}
	return 0, fmt.Errorf("%w: %d board cards", ErrInvalidBoard, n)
}
