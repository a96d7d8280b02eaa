package bot

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/leducbots/internal/game"
)

// FixedBot always plays the same action, calling instead when that action is
// not available.
type FixedBot struct {
	game.NoFeedback
	action game.Action
	logger *log.Logger
}

// NewFixedBot creates a bot that always plays action.
func NewFixedBot(action game.Action, logger *log.Logger) *FixedBot {
	return &FixedBot{action: action, logger: orDiscard(logger)}
}

// NewFoldBot creates a bot that always folds.
func NewFoldBot(logger *log.Logger) *FixedBot {
	return NewFixedBot(game.Fold, logger)
}

// NewCallBot creates a bot that always calls or checks.
func NewCallBot(logger *log.Logger) *FixedBot {
	return NewFixedBot(game.Call, logger)
}

// NewRaiseBot creates a bot that always bets or raises.
func NewRaiseBot(logger *log.Logger) *FixedBot {
	return NewFixedBot(game.Raise, logger)
}

func (f *FixedBot) SelectAction(state game.GameState) (game.Action, error) {
	if !game.IsLegal(state, f.action) {
		f.logger.Debug("fixed action unavailable, calling", "seat", state.Exclusive.PlayerID, "action", f.action)
		return game.Call, nil
	}
	return f.action, nil
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger != nil {
		return logger
	}
	return log.New(io.Discard)
}
