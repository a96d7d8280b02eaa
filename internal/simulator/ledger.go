package simulator

import "github.com/lox/leducbots/internal/game"

// Transition is a decision whose outcome has not been reported to the agent.
type Transition struct {
	State  game.GameState
	Action game.Action
	Reward float64
}

// Ledger is the per-hand record of chips each seat committed and the last
// transition still owed to it.
type Ledger struct {
	committed []int
	decisions []int
	pending   []*Transition
}

// NewLedger returns an empty ledger for players seats.
func NewLedger(players int) *Ledger {
	return &Ledger{
		committed: make([]int, players),
		decisions: make([]int, players),
		pending:   make([]*Transition, players),
	}
}

// Commit adds chips moved into the pot by seat.
func (l *Ledger) Commit(seat, chips int) {
	l.committed[seat] += chips
}

// Committed returns the chips seat has put in the pot this hand.
func (l *Ledger) Committed(seat int) int {
	return l.committed[seat]
}

// Open replaces seat's pending transition. Forced posts pass decision=false so
// they do not count as the seat having acted.
func (l *Ledger) Open(seat int, t Transition, decision bool) {
	l.pending[seat] = &t
	if decision {
		l.decisions[seat]++
	}
}

// Pending returns the transition seat is still owed feedback for.
func (l *Ledger) Pending(seat int) (Transition, bool) {
	if l.pending[seat] == nil {
		return Transition{}, false
	}
	return *l.pending[seat], true
}

// Decisions returns how many voluntary actions seat took.
func (l *Ledger) Decisions(seat int) int {
	return l.decisions[seat]
}
