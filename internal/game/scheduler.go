package game

import (
	"github.com/idsulik/go-collections/v3/queue"
)

// RoundState is the state of a betting round.
type RoundState int

const (
	AwaitingAction RoundState = iota
	RoundClosed
)

func (s RoundState) String() string {
	switch s {
	case AwaitingAction:
		return "awaiting-action"
	case RoundClosed:
		return "round-closed"
	default:
		return "unknown"
	}
}

// BlindSeats returns the small and big blind seats for dealer.
func BlindSeats(players, dealer int) (small, big int) {
	return (dealer + 1) % players, (dealer + 2) % players
}

// FirstToAct returns the seat that opens a fresh round.
func FirstToAct(players, dealer int) int {
	return (dealer + 3) % players
}

// TurnScheduler hands out turns for one betting round. Seats still eligible to
// act wait in a rotation; the stop marker is the seat at which a lap with no
// raise ends the round.
type TurnScheduler struct {
	rotation  *queue.Queue[int]
	current   int
	eligible  int
	stop      int
	sinceStop int
	state     RoundState
}

// NewTurnScheduler starts a round for players seats with the button at dealer.
func NewTurnScheduler(players, dealer int) *TurnScheduler {
	first := FirstToAct(players, dealer)
	s := &TurnScheduler{
		rotation: queue.New[int](players),
		current:  first,
		eligible: players,
		stop:     first,
	}
	for i := 1; i < players; i++ {
		s.rotation.Enqueue((first + i) % players)
	}
	return s
}

// Current returns the seat whose turn it is. ok is false once the round has
// closed.
func (s *TurnScheduler) Current() (seat int, ok bool) {
	if s.state == RoundClosed {
		return -1, false
	}
	return s.current, true
}

// State returns the round state.
func (s *TurnScheduler) State() RoundState {
	return s.state
}

// Closed reports whether the round is over.
func (s *TurnScheduler) Closed() bool {
	return s.state == RoundClosed
}

// Uncontested reports whether every seat but one has folded.
func (s *TurnScheduler) Uncontested() bool {
	return s.eligible == 1
}

// Eligible returns the seats still in the hand in rotation order, starting with
// the seat whose turn it is.
func (s *TurnScheduler) Eligible() []int {
	seats := make([]int, 0, s.eligible)
	seats = append(seats, s.current)
	s.rotation.ForEach(func(seat int) {
		seats = append(seats, seat)
	})
	return seats
}

// Expect checks that seat may act now. Call it before applying the action so
// an out-of-turn seat never touches the pot.
func (s *TurnScheduler) Expect(seat int) error {
	if s.state == RoundClosed {
		return protocolError("schedule", seat, ErrRoundClosed)
	}
	if seat != s.current {
		return protocolError("schedule", seat, ErrOutOfTurn)
	}
	return nil
}

// Record advances the rotation after seat took action.
func (s *TurnScheduler) Record(seat int, action Action) error {
	if err := s.Expect(seat); err != nil {
		return err
	}

	switch action {
	case Fold:
		s.eligible--
		s.current = s.next()
		if s.eligible == 1 {
			s.state = RoundClosed
			return nil
		}
		if seat == s.stop {
			// The lap now ends where the folded seat would have acted.
			s.stop = s.current
			s.sinceStop = 0
			return nil
		}
		s.sinceStop++
	case Raise:
		s.rotation.Enqueue(seat)
		s.current = s.next()
		s.stop = seat
		s.sinceStop = 0
	case Call:
		s.rotation.Enqueue(seat)
		s.current = s.next()
		s.sinceStop++
	default:
		return protocolError("schedule", seat, ErrUnknownAction)
	}

	if s.current == s.stop && s.sinceStop > 0 {
		s.state = RoundClosed
	}
	return nil
}

func (s *TurnScheduler) next() int {
	seat, _ := s.rotation.Dequeue()
	return seat
}
