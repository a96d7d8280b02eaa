// Package bot holds the fixed-policy agents: constant actions, uniform random
// play, the AKQ reference strategy and a human at the keyboard.
package bot

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/leducbots/internal/deck"
	"github.com/lox/leducbots/internal/game"
)

// Strategies lists the names accepted by New.
var Strategies = []string{"fold", "call", "raise", "random", "akq", "human"}

// Options carries what the individual bots need. Unused fields are ignored.
type Options struct {
	Rng    *rand.Rand
	Logger *log.Logger
	In     io.Reader
	Out    io.Writer
	Layout deck.Layout
}

// New creates the fixed-policy agent named by strategy.
func New(strategy string, opts Options) (game.Agent, error) {
	switch strategy {
	case "fold":
		return NewFoldBot(opts.Logger), nil
	case "call":
		return NewCallBot(opts.Logger), nil
	case "raise":
		return NewRaiseBot(opts.Logger), nil
	case "random":
		if opts.Rng == nil {
			return nil, fmt.Errorf("strategy %s needs a random source", strategy)
		}
		return NewRandomBot(opts.Rng, opts.Logger), nil
	case "akq":
		if opts.Rng == nil {
			return nil, fmt.Errorf("strategy %s needs a random source", strategy)
		}
		return NewAKQBot(opts.Rng, opts.Logger), nil
	case "human":
		in, out := opts.In, opts.Out
		if in == nil {
			in = os.Stdin
		}
		if out == nil {
			out = os.Stdout
		}
		return NewHumanBot(in, out, opts.Layout), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (available: %v)", strategy, Strategies)
	}
}
