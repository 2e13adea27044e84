package poker

import (
	"math/rand"
)

// Deck deals cards in a random order drawn lazily from rng. Each deal swaps
// a random undealt card into place; the same seed deals the same sequence.
type Deck struct {
	cards [52]Card
	dealt int
	rng   *rand.Rand
}

// NewDeck returns a full deck dealing from rng.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	d := &Deck{rng: rng}
	for i := range d.cards {
		d.cards[i] = Card(1) << uint(i)
	}
	return d
}

// Shuffle returns every dealt card to the deck.
func (d *Deck) Shuffle() {
	d.dealt = 0
}

// draw moves a random undealt card to the dealt prefix.
func (d *Deck) draw() Card {
	j := d.dealt + d.rng.Intn(len(d.cards)-d.dealt)
	d.cards[d.dealt], d.cards[j] = d.cards[j], d.cards[d.dealt]
	c := d.cards[d.dealt]
	d.dealt++
	return c
}

// Deal returns n cards, or nil if fewer than n remain.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || n > d.CardsRemaining() {
		return nil
	}
	out := make([]Card, n)
	for i := range out {
		out[i] = d.draw()
	}
	return out
}

// DealOne returns the next card, or 0 once the deck is empty.
func (d *Deck) DealOne() Card {
	if d.CardsRemaining() == 0 {
		return 0
	}
	return d.draw()
}

func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.dealt
}
