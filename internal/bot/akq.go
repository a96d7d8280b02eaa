package bot

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/leducbots/internal/game"
)

// ErrUnsupportedHand is returned by policies that only know a fixed set of hands.
var ErrUnsupportedHand = errors.New("unsupported hand")

// AKQBot plays the three-rank paired game: raise with aces, mix with kings,
// fold queens. Any other hand or deck is an error.
type AKQBot struct {
	game.NoFeedback
	rng    *rand.Rand
	logger *log.Logger
}

// NewAKQBot creates an AKQBot; rng drives the kings' mixed strategy.
func NewAKQBot(rng *rand.Rand, logger *log.Logger) *AKQBot {
	return &AKQBot{rng: rng, logger: orDiscard(logger)}
}

func (b *AKQBot) SelectAction(state game.GameState) (game.Action, error) {
	ranks := state.Public.Ranks
	hand := state.Exclusive.Hand
	if ranks != 3 {
		return 0, fmt.Errorf("%w: AKQ play needs a 3-rank deck, got %d ranks", ErrUnsupportedHand, ranks)
	}
	if hand[0].Rank(ranks) != hand[1].Rank(ranks) {
		return 0, fmt.Errorf("%w: AKQ play needs a pocket pair, got cards %d,%d", ErrUnsupportedHand, hand[0], hand[1])
	}

	legal := state.LegalActions()
	switch hand[0].Rank(ranks) {
	case 2: // AA
		if game.IsLegal(state, game.Raise) {
			return game.Raise, nil
		}
		return game.Call, nil
	case 1: // KK
		action := legal[b.rng.IntN(len(legal))]
		b.logger.Debug("akq mixing with kings", "seat", state.Exclusive.PlayerID, "action", action)
		return action, nil
	default: // QQ
		return game.Fold, nil
	}
}
