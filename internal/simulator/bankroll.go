package simulator

import "slices"

// Bankroll holds every seat's cumulative chips across hands. Seats start at
// zero and may go negative.
type Bankroll struct {
	chips []float64
}

func NewBankroll(players int) *Bankroll {
	return &Bankroll{chips: make([]float64, players)}
}

// Chips returns seat's running total.
func (b *Bankroll) Chips(seat int) float64 {
	return b.chips[seat]
}

// Settle adds a hand's net result per seat.
func (b *Bankroll) Settle(net []float64) {
	for seat, v := range net {
		b.chips[seat] += v
	}
}

// Snapshot returns a copy of every seat's total.
func (b *Bankroll) Snapshot() []float64 {
	return slices.Clone(b.chips)
}

// Total returns the sum over seats, zero up to rounding when no chips leak.
func (b *Bankroll) Total() float64 {
	var sum float64
	for _, v := range b.chips {
		sum += v
	}
	return sum
}
