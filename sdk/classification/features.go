package classification

import "strings"

// Feature is an independent structural property of a board.
type Feature uint8

const (
	OnePair Feature = iota
	TwoPair
	ThreeToFlush
	FourToFlush
	ThreeToStraight
	ThreeToOpenEndedStraight
	FourToStraight
	AceHigh
	numFeatures
)

func (f Feature) String() string {
	switch f {
	case OnePair:
		return "one-pair"
	case TwoPair:
		return "two-pair"
	case ThreeToFlush:
		return "three-to-flush"
	case FourToFlush:
		return "four-to-flush"
	case ThreeToStraight:
		return "three-to-straight"
	case ThreeToOpenEndedStraight:
		return "three-to-open-ended-straight"
	case FourToStraight:
		return "four-to-straight"
	case AceHigh:
		return "ace-high"
	default:
		return "unknown"
	}
}

// Features is a set of board features.
type Features uint16

// NewFeatures builds a set from the given features.
func NewFeatures(fs ...Feature) Features {
	var set Features
	for _, f := range fs {
		set = set.With(f)
	}
	return set
}

// Has reports whether f is in the set.
func (s Features) Has(f Feature) bool {
	return s&(1<<f) != 0
}

// With returns the set with f added.
func (s Features) With(f Feature) Features {
	return s | 1<<f
}

// Without returns the set with the given features removed.
func (s Features) Without(fs ...Feature) Features {
	for _, f := range fs {
		s &^= 1 << f
	}
	return s
}

// Len returns the number of features in the set.
func (s Features) Len() int {
	n := 0
	for f := range numFeatures {
		if s.Has(f) {
			n++
		}
	}
	return n
}

// Slice lists the features in declaration order.
func (s Features) Slice() []Feature {
	out := make([]Feature, 0, s.Len())
	for f := range numFeatures {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s Features) String() string {
	names := make([]string, 0, s.Len())
	for _, f := range s.Slice() {
		names = append(names, f.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}
