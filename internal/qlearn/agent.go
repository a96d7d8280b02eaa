// Package qlearn implements an online Q-learning agent with a linear value
// function over sparse features.
package qlearn

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/leducbots/internal/game"
)

// Config configures an Agent.
type Config struct {
	Discount    float64
	Exploration float64

	// Features names a registered extractor; Extractor, when set, takes
	// precedence and Features is only recorded in checkpoints.
	Features  string
	Extractor FeatureExtractor

	Rng    *rand.Rand
	Logger *log.Logger
}

// Validate checks the learning parameters.
func (c Config) Validate() error {
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("discount must be within [0, 1], got %v", c.Discount)
	}
	if c.Exploration < 0 || c.Exploration > 1 {
		return fmt.Errorf("exploration must be within [0, 1], got %v", c.Exploration)
	}
	if c.Rng == nil {
		return errors.New("qlearn agent needs a random source")
	}
	return nil
}

// Agent is an epsilon-greedy Q-learner. It is not safe for concurrent use.
type Agent struct {
	discount    float64
	exploration float64
	features    string
	extract     FeatureExtractor
	weights     map[string]float64
	iterations  int64
	rng         *rand.Rand
	logger      *log.Logger
}

// New creates an Agent with zero weights.
func New(cfg Config) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	name, extract := cfg.Features, cfg.Extractor
	if extract == nil {
		if name == "" {
			name = IdentityName
		}
		var err error
		if extract, err = Extractor(name); err != nil {
			return nil, err
		}
	} else if name == "" {
		name = "custom"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Agent{
		discount:    cfg.Discount,
		exploration: cfg.Exploration,
		features:    name,
		extract:     extract,
		weights:     make(map[string]float64),
		iterations:  1,
		rng:         cfg.Rng,
		logger:      logger,
	}, nil
}

// Q returns the current estimate for taking action in state.
func (a *Agent) Q(state game.GameState, action game.Action) float64 {
	var q float64
	for _, f := range a.extract(state, action) {
		q += a.weights[f.Key] * f.Value
	}
	return q
}

// StepSize returns 1/sqrt(t) for the current iteration count t.
func (a *Agent) StepSize() float64 {
	return 1 / math.Sqrt(float64(a.iterations))
}

// SelectAction advances the iteration count, then explores with probability
// Exploration and otherwise plays greedily.
func (a *Agent) SelectAction(state game.GameState) (game.Action, error) {
	a.iterations++
	legal := state.LegalActions()
	if a.rng.Float64() < a.exploration {
		return legal[a.rng.IntN(len(legal))], nil
	}
	return a.greedy(state, legal), nil
}

// Greedy returns the legal action with the highest Q value. Ties go to the
// earliest of Fold, Call, Raise.
func (a *Agent) Greedy(state game.GameState) game.Action {
	return a.greedy(state, state.LegalActions())
}

func (a *Agent) greedy(state game.GameState, legal []game.Action) game.Action {
	best, bestQ := legal[0], a.Q(state, legal[0])
	for _, action := range legal[1:] {
		if q := a.Q(state, action); q > bestQ {
			best, bestQ = action, q
		}
	}
	return best
}

// IncorporateFeedback applies one TD(0) update for the transition
// (state, action, reward, next). next is nil for terminal transitions.
func (a *Agent) IncorporateFeedback(state game.GameState, action game.Action, reward float64, next *game.GameState) {
	eta := a.StepSize()
	target := reward
	if next != nil {
		target += a.discount * a.value(*next)
	}
	delta := a.Q(state, action) - target
	for _, f := range a.extract(state, action) {
		a.weights[f.Key] -= eta * delta * f.Value
	}
	a.logger.Debug("q update", "seat", state.Exclusive.PlayerID, "action", action, "reward", reward, "terminal", next == nil, "delta", delta)
}

func (a *Agent) value(state game.GameState) float64 {
	best := math.Inf(-1)
	for _, action := range state.LegalActions() {
		best = max(best, a.Q(state, action))
	}
	return best
}

// Iterations returns the step-size counter t.
func (a *Agent) Iterations() int64 {
	return a.iterations
}

// Exploration returns the current exploration probability.
func (a *Agent) Exploration() float64 {
	return a.exploration
}

// SetExploration changes the exploration probability, e.g. to 0 when the
// trained policy is evaluated.
func (a *Agent) SetExploration(eps float64) {
	a.exploration = eps
}

// Features returns the extractor name.
func (a *Agent) Features() string {
	return a.features
}

// Weights returns a copy of the weight table.
func (a *Agent) Weights() map[string]float64 {
	return maps.Clone(a.weights)
}

// Weight is one entry of the weight table.
type Weight struct {
	Key   string
	Value float64
}

// TopWeights returns up to n weights with the largest magnitude. n <= 0 returns
// all of them.
func (a *Agent) TopWeights(n int) []Weight {
	out := make([]Weight, 0, len(a.weights))
	for k, v := range a.weights {
		out = append(out, Weight{Key: k, Value: v})
	}
	slices.SortFunc(out, func(x, y Weight) int {
		if c := cmp.Compare(math.Abs(y.Value), math.Abs(x.Value)); c != 0 {
			return c
		}
		return cmp.Compare(x.Key, y.Key)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
