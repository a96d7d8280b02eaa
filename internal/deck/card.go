package deck

import (
	"errors"
	"fmt"
	"strings"
)

// Card identifies one physical card of a Layout. The id encodes suit*ranks + rank,
// so with a single suit the id is the rank index.
type Card uint8

// Rank returns the rank index of the card (0 is the lowest rank).
func (c Card) Rank(ranks int) int {
	return int(c) % ranks
}

// Suit returns the suit index of the card.
func (c Card) Suit(ranks int) int {
	return int(c) / ranks
}

// Layout describes the shape of a deck: rank labels from lowest to highest and
// suit labels.
type Layout struct {
	Ranks []string
	Suits []string
}

// Leduc returns the three-rank, single-suit deck of the simplified game.
func Leduc() Layout {
	return Layout{
		Ranks: []string{"Q", "K", "A"},
		Suits: []string{"♠"},
	}
}

// Standard returns a full 52-card deck.
func Standard() Layout {
	return Layout{
		Ranks: []string{"2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K", "A"},
		Suits: []string{"♠", "♥", "♦", "♣"},
	}
}

// RankCount returns the number of ranks.
func (l Layout) RankCount() int {
	return len(l.Ranks)
}

// Size returns the number of cards in a full deck.
func (l Layout) Size() int {
	return len(l.Ranks) * len(l.Suits)
}

// Validate checks the layout can be encoded as Card ids.
func (l Layout) Validate() error {
	if len(l.Ranks) == 0 {
		return errors.New("deck layout needs at least one rank")
	}
	if len(l.Suits) == 0 {
		return errors.New("deck layout needs at least one suit")
	}
	if l.Size() > 256 {
		return fmt.Errorf("deck layout has %d cards, at most 256 supported", l.Size())
	}
	return nil
}

// Card returns the card with the given rank and suit index.
func (l Layout) Card(rank, suit int) Card {
	return Card(suit*len(l.Ranks) + rank)
}

// Format renders a card as rank followed by suit, e.g. "A♠".
func (l Layout) Format(c Card) string {
	rank, suit := c.Rank(len(l.Ranks)), c.Suit(len(l.Ranks))
	if suit >= len(l.Suits) {
		return "?"
	}
	return l.Ranks[rank] + l.Suits[suit]
}

// FormatHand renders a two-card hand.
func (l Layout) FormatHand(h [2]Card) string {
	return l.Format(h[0]) + " " + l.Format(h[1])
}

// ParseCard parses a card rendered by Format.
func (l Layout) ParseCard(s string) (Card, error) {
	for r, rank := range l.Ranks {
		if !strings.HasPrefix(s, rank) {
			continue
		}
		for su, suit := range l.Suits {
			if s[len(rank):] == suit {
				return l.Card(r, su), nil
			}
		}
	}
	return 0, fmt.Errorf("unknown card %q", s)
}
