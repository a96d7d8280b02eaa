package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/leducbots/internal/config"
	"github.com/lox/leducbots/internal/deck"
	"github.com/lox/leducbots/internal/game"
	"github.com/lox/leducbots/internal/randutil"
	"github.com/lox/leducbots/internal/simulator"
)

var (
	winStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	loseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
)

// PlayCmd seats a human in place of one configured seat.
type PlayCmd struct {
	Hands   int    `short:"n" default:"10" help:"Hands to play"`
	Seed    *int64 `help:"RNG seed, 0 for a random seed (overrides config)"`
	Seat    string `help:"Seat the human takes over (default: the tracked seat)"`
	Load    string `type:"existingfile" help:"Restore the first Q-learning opponent from this checkpoint"`
	Explore bool   `help:"Keep Q-learning opponents exploring instead of playing greedily"`
}

func (c *PlayCmd) Run(g *Globals) error {
	logger, err := g.setup()
	if err != nil {
		return err
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}
	if c.Seed != nil {
		cfg.Training.Seed = *c.Seed
	}
	seat := cfg.Training.TrackSeat
	if c.Seat != "" {
		if seat = seatIndex(cfg, c.Seat); seat < 0 {
			return fmt.Errorf("unknown seat %q", c.Seat)
		}
		cfg.Training.TrackSeat = seat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg.Seats[seat].Strategy = "human"

	seed := randutil.Seed(cfg.Training.Seed)
	seats, err := buildAgents(cfg, seed, logger, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	if c.Load != "" {
		learner, name, err := seats.learner(cfg, "")
		if err != nil {
			return err
		}
		if err := restore(learner, c.Load); err != nil {
			return err
		}
		logger.Info("restored checkpoint", "seat", name, "iteration", learner.Iterations())
	}
	if !c.Explore {
		for _, learner := range seats.learners {
			learner.SetExploration(0)
		}
	}

	table, err := cfg.TableConfig()
	if err != nil {
		return err
	}
	names := cfg.SeatNames()
	sim, err := simulator.New(seats.agents, simulator.Config{
		Table:     table,
		Seed:      seed,
		TrackSeat: seat,
		Logger:    logger,
		OnHand: func(r *simulator.HandResult) {
			printHand(os.Stdout, r, table.Layout, names, seat)
		},
	})
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("♠ You are %s, seat %d ♠", names[seat], seat)))
	fmt.Println()

	if err := playHands(os.Stdout, sim, c.Hands, names); err != nil {
		return err
	}

	fmt.Println()
	simulator.WriteSummary(os.Stdout, sim, names, max(1, c.Hands/2))
	return nil
}

// playHands plays up to hands hands. Closing the human's input ends play early
// without an error.
func playHands(w io.Writer, sim *simulator.Simulator, hands int, names []string) error {
	for i := range hands {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("Hand %d/%d, dealer %s", i+1, hands, names[sim.Dealer()])))
		if _, err := sim.PlayHand(); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return err
		}
	}
	return nil
}

func printHand(w io.Writer, r *simulator.HandResult, layout deck.Layout, names []string, seat int) {
	actions := make([]string, 0, len(r.Log))
	for _, e := range r.Log {
		if e.IsBlind() {
			actions = append(actions, fmt.Sprintf("%s posts %d", names[e.Player], e.Blind))
			continue
		}
		actions = append(actions, fmt.Sprintf("%s %s", names[e.Player], strings.ToLower(e.Action.String())))
	}
	fmt.Fprintln(w, strings.Join(actions, ", "))

	if r.Showdown {
		for p, hand := range r.Hands {
			if folded(r.Log, p) {
				continue
			}
			fmt.Fprintf(w, "  %-10s %s\n", names[p], layout.FormatHand(hand))
		}
	}

	winners := make([]string, len(r.Winners))
	for i, p := range r.Winners {
		winners[i] = names[p]
	}
	fmt.Fprintf(w, "Pot %d to %s\n", r.Pot, strings.Join(winners, ", "))

	net := fmt.Sprintf("%+.2f", r.Net[seat])
	switch {
	case r.Net[seat] > 0:
		net = winStyle.Render(net)
	case r.Net[seat] < 0:
		net = loseStyle.Render(net)
	}
	fmt.Fprintf(w, "You: %s\n\n", net)
}

func folded(log []game.Entry, player int) bool {
	for _, e := range log {
		if e.Player == player && !e.IsBlind() && e.Action == game.Fold {
			return true
		}
	}
	return false
}
