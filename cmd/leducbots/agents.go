package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/leducbots/internal/bot"
	"github.com/lox/leducbots/internal/config"
	"github.com/lox/leducbots/internal/deck"
	"github.com/lox/leducbots/internal/game"
	"github.com/lox/leducbots/internal/qlearn"
	"github.com/lox/leducbots/internal/randutil"
)

// Seat random streams start above the ones the simulator derives.
const seatStreamBase = 100

type seating struct {
	agents   []game.Agent
	learners map[string]*qlearn.Agent
}

func buildAgents(cfg *config.Config, seed int64, logger *log.Logger, in io.Reader, out io.Writer) (*seating, error) {
	layout := deck.Layout{Ranks: cfg.Table.Ranks, Suits: cfg.Table.Suits}
	s := &seating{learners: make(map[string]*qlearn.Agent)}

	for i, seat := range cfg.Seats {
		rng := randutil.New(randutil.Derive(seed, seatStreamBase+uint64(i)))
		seatLogger := logger.WithPrefix(seat.Name)

		if seat.Strategy == config.QLearn {
			qc := seat.QLearn()
			qc.Rng = rng
			qc.Logger = seatLogger
			agent, err := qlearn.New(qc)
			if err != nil {
				return nil, fmt.Errorf("seat %s: %w", seat.Name, err)
			}
			s.agents = append(s.agents, agent)
			s.learners[seat.Name] = agent
			continue
		}

		agent, err := bot.New(seat.Strategy, bot.Options{Rng: rng, Logger: seatLogger, In: in, Out: out, Layout: layout})
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", seat.Name, err)
		}
		s.agents = append(s.agents, agent)
	}
	return s, nil
}

// learner returns the Q-learning seat called name, or the first one in seat
// order when name is empty.
func (s *seating) learner(cfg *config.Config, name string) (*qlearn.Agent, string, error) {
	if name != "" {
		agent, ok := s.learners[name]
		if !ok {
			return nil, "", fmt.Errorf("seat %q is not a %s seat", name, config.QLearn)
		}
		return agent, name, nil
	}
	if seats := cfg.Learners(); len(seats) > 0 {
		name := cfg.Seats[seats[0]].Name
		return s.learners[name], name, nil
	}
	return nil, "", fmt.Errorf("no %s seat configured", config.QLearn)
}
