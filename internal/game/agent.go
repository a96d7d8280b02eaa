package game

// Agent is a betting policy. SelectAction is asked for a decision whenever the
// agent's seat is scheduled; IncorporateFeedback reports the outcome of an
// earlier decision. next is nil when the hand ended after that decision.
type Agent interface {
	SelectAction(state GameState) (Action, error)
	IncorporateFeedback(state GameState, action Action, reward float64, next *GameState)
}

// NoFeedback is embedded by agents that do not learn.
type NoFeedback struct{}

// IncorporateFeedback ignores the outcome.
func (NoFeedback) IncorporateFeedback(GameState, Action, float64, *GameState) {}

// IsLegal reports whether action may be taken in state.
func IsLegal(state GameState, action Action) bool {
	for _, a := range state.LegalActions() {
		if a == action {
			return true
		}
	}
	return false
}
