package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/leducbots/internal/game"
)

// RandomBot picks uniformly among the legal actions.
type RandomBot struct {
	game.NoFeedback
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandomBot creates a RandomBot drawing from rng.
func NewRandomBot(rng *rand.Rand, logger *log.Logger) *RandomBot {
	return &RandomBot{rng: rng, logger: orDiscard(logger)}
}

func (r *RandomBot) SelectAction(state game.GameState) (game.Action, error) {
	legal := state.LegalActions()
	action := legal[r.rng.IntN(len(legal))]
	r.logger.Debug("random action", "seat", state.Exclusive.PlayerID, "action", action)
	return action, nil
}
