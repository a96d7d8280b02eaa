package game

import (
	"fmt"
	"slices"

	"github.com/lox/leducbots/internal/deck"
)

// RankKey scores a two-card hand from card ranks alone. Any pair beats any
// unpaired hand; unpaired hands compare high card, then low card. Unpaired keys
// stay below ranks*ranks+ranks, where pair keys start.
func RankKey(hand [2]deck.Card, ranks int) int {
	a := hand[0].Rank(ranks) + 1
	b := hand[1].Rank(ranks) + 1
	if a == b {
		return ranks*ranks + ranks + a
	}
	hi, lo := max(a, b), min(a, b)
	return hi*ranks + lo
}

// Winners returns the seats in hands holding the best rank key, sorted.
func Winners(hands map[int][2]deck.Card, ranks int) []int {
	best := -1
	var winners []int
	for seat, hand := range hands {
		key := RankKey(hand, ranks)
		switch {
		case key > best:
			best = key
			winners = append(winners[:0], seat)
		case key == best:
			winners = append(winners, seat)
		}
	}
	slices.Sort(winners)
	return winners
}

// SplitPolicy decides how a pot is divided between tied winners.
type SplitPolicy int

const (
	// SplitEven gives every winner pot/len(winners), fractional chips included.
	SplitEven SplitPolicy = iota
	// SplitInteger gives whole chips; the remainder goes one chip at a time to
	// winners in seat order starting left of the dealer.
	SplitInteger
)

func (p SplitPolicy) String() string {
	switch p {
	case SplitEven:
		return "even"
	case SplitInteger:
		return "integer"
	default:
		return "unknown"
	}
}

// ParseSplitPolicy parses the String form of a policy.
func ParseSplitPolicy(s string) (SplitPolicy, error) {
	switch s {
	case "even", "":
		return SplitEven, nil
	case "integer":
		return SplitInteger, nil
	default:
		return 0, fmt.Errorf("unknown split policy %q", s)
	}
}

// SplitPot divides pot between winners and returns each seat's share, indexed
// by seat.
func SplitPot(pot int, winners []int, policy SplitPolicy, dealer, players int) []float64 {
	shares := make([]float64, players)
	if len(winners) == 0 {
		return shares
	}

	if policy != SplitInteger {
		each := float64(pot) / float64(len(winners))
		for _, w := range winners {
			shares[w] = each
		}
		return shares
	}

	each := pot / len(winners)
	remainder := pot % len(winners)
	for _, w := range winners {
		shares[w] = float64(each)
	}
	for i := 1; i <= players && remainder > 0; i++ {
		seat := (dealer + i) % players
		if slices.Contains(winners, seat) {
			shares[seat]++
			remainder--
		}
	}
	return shares
}
