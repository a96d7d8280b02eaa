package game

import "fmt"

// Action is a voluntary betting decision.
type Action int

const (
	Fold  Action = iota + 1
	Call         // also a check when nothing is owed
	Raise        // also a bet
)

// Actions lists every action in enumeration order. Ties between equally valued
// actions resolve to the earliest entry.
var Actions = []Action{Fold, Call, Raise}

func (a Action) String() string {
	switch a {
	case Fold:
		return "FOLD"
	case Call:
		return "CALL"
	case Raise:
		return "RAISE"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Valid reports whether a is one of Fold, Call or Raise.
func (a Action) Valid() bool {
	return a >= Fold && a <= Raise
}

// ParseAction parses the String form of an action.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}
