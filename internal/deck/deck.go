package deck

import (
	"errors"
	"iter"
	"math/rand/v2"

	"github.com/idsulik/go-collections/v3/queue"
)

// ErrExhausted is returned when more cards are dealt than the deck holds.
var ErrExhausted = errors.New("deck exhausted")

// Source deals cards without replacement.
type Source interface {
	Deal() (Card, error)
}

// Deck is a finite, non-restartable sequence of unique cards. A fresh Deck is
// built for every hand.
type Deck struct {
	cards     *queue.Queue[Card]
	remaining int
}

// New creates a deck for layout shuffled with rng.
func New(layout Layout, rng *rand.Rand) *Deck {
	size := layout.Size()
	d := &Deck{cards: queue.New[Card](size)}
	for _, v := range rng.Perm(size) {
		d.cards.Enqueue(Card(v))
	}
	d.remaining = size
	return d
}

// NewOrdered creates a deck that deals exactly cards, in order.
func NewOrdered(cards ...Card) *Deck {
	d := &Deck{cards: queue.New[Card](len(cards))}
	for _, c := range cards {
		d.cards.Enqueue(c)
	}
	d.remaining = len(cards)
	return d
}

// Deal removes and returns the top card.
func (d *Deck) Deal() (Card, error) {
	c, ok := d.cards.Dequeue()
	if !ok {
		return 0, ErrExhausted
	}
	d.remaining--
	return c, nil
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return d.remaining
}

// All returns an iterator that deals the rest of the deck. Cards yielded are
// consumed; iterating again yields nothing.
func (d *Deck) All() iter.Seq[Card] {
	return func(yield func(Card) bool) {
		for {
			c, err := d.Deal()
			if err != nil || !yield(c) {
				return
			}
		}
	}
}
