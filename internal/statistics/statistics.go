package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/tagpoker/sdk/classification"
	"github.com/lox/tagpoker/sdk/strategy"
)

// Outcome is how a gated hand fared at showdown.
type Outcome uint8

const (
	NoShowdown Outcome = iota
	Win
	Tie
	Loss
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Tie:
		return "tie"
	case Loss:
		return "loss"
	default:
		return "none"
	}
}

// Net is the showdown result in pots: +1 win, 0 tie, -1 loss.
func (o Outcome) Net() float64 {
	switch o {
	case Win:
		return 1
	case Loss:
		return -1
	default:
		return 0
	}
}

// BoardResult is the outcome of gating one dealt hand.
type BoardResult struct {
	Seed     int64
	Street   strategy.Street
	Texture  classification.Texture
	Tier     strategy.Tier
	Required strategy.MinGoodHand
	Score    strategy.MinGoodHand
	Scored   bool
	Passed   bool
	Outcome  Outcome
}

// Bucket counts results for one slice of the data (a texture, tier or grade).
type Bucket struct {
	Boards    int
	Passes    int
	Showdowns int
	Wins      int
	Ties      int
	Losses    int
}

func (b *Bucket) add(r BoardResult) {
	b.Boards++
	if r.Passed {
		b.Passes++
	}
	switch r.Outcome {
	case Win:
		b.Showdowns++
		b.Wins++
	case Tie:
		b.Showdowns++
		b.Ties++
	case Loss:
		b.Showdowns++
		b.Losses++
	}
}

func (b *Bucket) merge(o Bucket) {
	b.Boards += o.Boards
	b.Passes += o.Passes
	b.Showdowns += o.Showdowns
	b.Wins += o.Wins
	b.Ties += o.Ties
	b.Losses += o.Losses
}

// PassRate is the fraction of boards where the hand met the minimum.
func (b Bucket) PassRate() float64 {
	if b.Boards == 0 {
		return 0
	}
	return float64(b.Passes) / float64(b.Boards)
}

// WinRate is the showdown equity of gated hands, counting ties as half.
func (b Bucket) WinRate() float64 {
	if b.Showdowns == 0 {
		return 0
	}
	return (float64(b.Wins) + float64(b.Ties)/2) / float64(b.Showdowns)
}

// Statistics aggregates gate results across a simulation run.
type Statistics struct {
	Bucket

	Unscored int // hands that reached no grade at all

	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Net result per showdown for median/percentile

	ByTexture  map[classification.Texture]Bucket
	ByTier     [3]Bucket
	ByRequired map[strategy.MinGoodHand]Bucket
	ByScore    map[strategy.MinGoodHand]Bucket
}

// New returns empty statistics ready for Add.
func New() *Statistics {
	return &Statistics{
		ByTexture:  map[classification.Texture]Bucket{},
		ByRequired: map[strategy.MinGoodHand]Bucket{},
		ByScore:    map[strategy.MinGoodHand]Bucket{},
	}
}

func (s *Statistics) init() {
	if s.ByTexture == nil {
		s.ByTexture = map[classification.Texture]Bucket{}
	}
	if s.ByRequired == nil {
		s.ByRequired = map[strategy.MinGoodHand]Bucket{}
	}
	if s.ByScore == nil {
		s.ByScore = map[strategy.MinGoodHand]Bucket{}
	}
}

// Add incorporates one board result.
func (s *Statistics) Add(r BoardResult) {
	s.init()
	s.Bucket.add(r)

	if r.Outcome != NoShowdown {
		net := r.Outcome.Net()
		s.SumNet += net
		s.SumNet2 += net * net
		s.Values = append(s.Values, net)
	}

	b := s.ByTexture[r.Texture]
	b.add(r)
	s.ByTexture[r.Texture] = b

	if int(r.Tier) < len(s.ByTier) {
		s.ByTier[r.Tier].add(r)
	}

	b = s.ByRequired[r.Required]
	b.add(r)
	s.ByRequired[r.Required] = b

	if !r.Scored {
		s.Unscored++
		return
	}
	b = s.ByScore[r.Score]
	b.add(r)
	s.ByScore[r.Score] = b
}

// Merge folds other into s. Workers aggregate locally and merge at the end.
func (s *Statistics) Merge(other *Statistics) {
	s.init()
	s.Bucket.merge(other.Bucket)
	s.Unscored += other.Unscored
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)

	for k, v := range other.ByTexture {
		b := s.ByTexture[k]
		b.merge(v)
		s.ByTexture[k] = b
	}
	for i := range s.ByTier {
		s.ByTier[i].merge(other.ByTier[i])
	}
	for k, v := range other.ByRequired {
		b := s.ByRequired[k]
		b.merge(v)
		s.ByRequired[k] = b
	}
	for k, v := range other.ByScore {
		b := s.ByScore[k]
		b.merge(v)
		s.ByScore[k] = b
	}
}

// Textures returns the observed textures in declaration order.
func (s *Statistics) Textures() []classification.Texture {
	out := make([]classification.Texture, 0, len(s.ByTexture))
	for t := range s.ByTexture {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Grades returns the required grades observed, weakest first.
func (s *Statistics) Grades() []strategy.MinGoodHand {
	out := make([]strategy.MinGoodHand, 0, len(s.ByRequired))
	for g := range s.ByRequired {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Mean returns the average net result per showdown
func (s *Statistics) Mean() float64 {
	if s.Showdowns == 0 {
		return 0
	}
	return s.SumNet / float64(s.Showdowns)
}

// Variance returns the sample variance of showdown results
func (s *Statistics) Variance() float64 {
	if s.Showdowns < 2 {
		return 0
	}
	n := float64(s.Showdowns)
	mean := s.Mean()
	return (s.SumNet2 - n*mean*mean) / (n - 1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Showdowns == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Showdowns))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median showdown result
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the showdown result at p (0.0 to 1.0), interpolating
// between neighbours.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks that the net total agrees with the win and loss
// counts.
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.SumNet-float64(s.Wins-s.Losses)) <= 1e-9
}

// Validate checks the counts are internally consistent.
func (s *Statistics) Validate() error {
	if s.Boards <= 0 {
		return fmt.Errorf("invalid board count: %d", s.Boards)
	}
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: net=%.3f wins=%d losses=%d", s.SumNet, s.Wins, s.Losses)
	}
	if s.Wins+s.Ties+s.Losses != s.Showdowns {
		return fmt.Errorf("showdown outcomes (%d) do not add up to showdowns (%d)",
			s.Wins+s.Ties+s.Losses, s.Showdowns)
	}
	if s.Showdowns > s.Passes || s.Passes > s.Boards {
		return fmt.Errorf("showdowns (%d) <= passes (%d) <= boards (%d) violated",
			s.Showdowns, s.Passes, s.Boards)
	}
	if len(s.Values) != s.Showdowns {
		return fmt.Errorf("values length (%d) does not match showdowns (%d)", len(s.Values), s.Showdowns)
	}

	checks := []struct {
		name  string
		total int
	}{
		{"texture", sumBoards(s.ByTexture)},
		{"tier", s.ByTier[0].Boards + s.ByTier[1].Boards + s.ByTier[2].Boards},
		{"required grade", sumBoards(s.ByRequired)},
		{"score", sumBoards(s.ByScore) + s.Unscored},
	}
	for _, c := range checks {
		if c.total != s.Boards {
			return fmt.Errorf("%s boards total (%d) does not match boards (%d)", c.name, c.total, s.Boards)
		}
	}
	return nil
}

func sumBoards[K comparable](m map[K]Bucket) int {
	n := 0
	for _, b := range m {
		n += b.Boards
	}
	return n
}
