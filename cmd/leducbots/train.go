package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/leducbots/internal/config"
	"github.com/lox/leducbots/internal/qlearn"
	"github.com/lox/leducbots/internal/randutil"
	"github.com/lox/leducbots/internal/simulator"
)

// TrainCmd plays the configured table and reports the tracked seat.
type TrainCmd struct {
	Hands         *int   `short:"n" help:"Hands to play (overrides config)"`
	Seed          *int64 `help:"RNG seed, 0 for a random seed (overrides config)"`
	Track         string `help:"Seat name whose results are reported (overrides config)"`
	ProgressEvery *int   `help:"Hands between progress logs, 0 to disable (overrides config)"`
	Learner       string `help:"Q-learning seat to load and save (default: the first one)"`
	Load          string `type:"existingfile" help:"Restore the learner from this checkpoint before training"`
	Save          string `type:"path" help:"Write the learner checkpoint here afterwards (overrides config checkpoint)"`
}

func (c *TrainCmd) Run(g *Globals) error {
	logger, err := g.setup()
	if err != nil {
		return err
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}
	if err := c.apply(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	seed := randutil.Seed(cfg.Training.Seed)
	seats, err := buildAgents(cfg, seed, logger, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	save := cfg.Training.Checkpoint
	if c.Save != "" {
		save = c.Save
	}
	var (
		learner     *qlearn.Agent
		learnerName string
	)
	if c.Load != "" || save != "" || c.Learner != "" {
		if learner, learnerName, err = seats.learner(cfg, c.Learner); err != nil {
			return err
		}
	}
	if c.Load != "" {
		if err := restore(learner, c.Load); err != nil {
			return err
		}
		logger.Info("restored checkpoint", "seat", learnerName, "path", c.Load, "iteration", learner.Iterations())
	}

	table, err := cfg.TableConfig()
	if err != nil {
		return err
	}
	sim, err := simulator.New(seats.agents, simulator.Config{
		Table:         table,
		Seed:          seed,
		TrackSeat:     cfg.Training.TrackSeat,
		ProgressEvery: cfg.Training.ProgressInterval(),
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("♠ leducbots: %d hands, %d seats ♠", cfg.Training.HandCount(), len(cfg.Seats))))
	fmt.Println(dimStyle.Render(fmt.Sprintf("seed %d", seed)))
	fmt.Println()

	ctx, cancel := signalContext(logger)
	defer cancel()
	if err := sim.Run(ctx, cfg.Training.HandCount()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Println()
	simulator.WriteSummary(os.Stdout, sim, cfg.SeatNames(), cfg.Training.Window)
	if learner != nil {
		logSize(logger, learnerName, learner)
	}

	if save != "" {
		if err := learner.SaveCheckpoint(save); err != nil {
			return err
		}
		logger.Info("saved checkpoint", "seat", learnerName, "path", save)
	}
	return nil
}

func (c *TrainCmd) apply(cfg *config.Config) error {
	if c.Hands != nil {
		cfg.Training.Hands = c.Hands
	}
	if c.Seed != nil {
		cfg.Training.Seed = *c.Seed
	}
	if c.ProgressEvery != nil {
		cfg.Training.ProgressEvery = c.ProgressEvery
	}
	if c.Track != "" {
		seat := seatIndex(cfg, c.Track)
		if seat < 0 {
			return fmt.Errorf("unknown seat %q", c.Track)
		}
		cfg.Training.TrackSeat = seat
	}
	return nil
}

func seatIndex(cfg *config.Config, name string) int {
	for i, s := range cfg.Seats {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func restore(learner *qlearn.Agent, path string) error {
	snap, err := qlearn.LoadCheckpoint(path)
	if err != nil {
		return err
	}
	return learner.Restore(snap)
}

func logSize(logger *log.Logger, name string, learner *qlearn.Agent) {
	logger.Info("learner", "seat", name, "weights", len(learner.Weights()), "iteration", learner.Iterations())
}
