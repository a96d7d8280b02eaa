package game

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfTurn     = errors.New("acted out of turn")
	ErrRoundClosed   = errors.New("betting round is closed")
	ErrInvariant     = errors.New("pot invariant violated")
	ErrUnknownSeat   = errors.New("unknown seat")
	ErrUnknownAction = errors.New("unknown action")
	ErrIllegalAction = errors.New("illegal action")
	ErrInvalidBlind  = errors.New("invalid blind")
	ErrOverflow      = errors.New("chip count overflows")
)

// ProtocolError reports a scheduler or engine defect. A run that hits one must
// stop: the pot accounting can no longer be trusted.
type ProtocolError struct {
	Op     string
	Player int
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Player < 0 {
		return fmt.Sprintf("protocol violation in %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("protocol violation in %s by player %d: %v", e.Op, e.Player, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func protocolError(op string, player int, err error) error {
	return &ProtocolError{Op: op, Player: player, Err: err}
}
