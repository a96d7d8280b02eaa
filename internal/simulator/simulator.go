// Package simulator plays hands of the game among a fixed table of agents and
// keeps the running chip totals that carry from one hand to the next.
package simulator

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/leducbots/internal/deck"
	"github.com/lox/leducbots/internal/game"
	"github.com/lox/leducbots/internal/handid"
	"github.com/lox/leducbots/internal/randutil"
	"github.com/lox/leducbots/internal/statistics"
)

// Random streams derived from the run seed.
const (
	deckStream = iota + 1
	idStream
)

// Config holds configuration for a run of hands.
type Config struct {
	Table         TableConfig
	Seed          int64
	TrackSeat     int // seat whose results feed the statistics and chip history
	ProgressEvery int // hands between progress reports, 0 disables them

	Clock  quartz.Clock
	Logger *log.Logger

	// NewDeck builds the card source for each hand. The default shuffles a
	// fresh deck of Table.Layout.
	NewDeck func(rng *rand.Rand) deck.Source

	OnHand     func(*HandResult)
	OnProgress func(Progress)
}

// Progress is reported every Config.ProgressEvery hands.
type Progress struct {
	Hands        int
	HandsPerSec  float64
	Chips        float64
	MeanPerHand  float64
	WindowPeriod time.Duration
}

// Simulator runs hands with a rotating dealer. It owns the Bankroll.
type Simulator struct {
	cfg      Config
	hand     *HandSimulator
	bankroll *Bankroll
	rng      *rand.Rand
	ids      *handid.Generator
	logger   *log.Logger

	dealer  int
	played  int
	elapsed time.Duration
	stats   statistics.Statistics
	history []float64
}

// New creates a Simulator for agents, seated in order.
func New(agents []game.Agent, cfg Config) (*Simulator, error) {
	if cfg.TrackSeat < 0 || cfg.TrackSeat >= len(agents) {
		return nil, fmt.Errorf("tracked seat %d out of range for %d players", cfg.TrackSeat, len(agents))
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	hand, err := NewHandSimulator(agents, cfg.Table, cfg.Logger)
	if err != nil {
		return nil, err
	}

	return &Simulator{
		cfg:      cfg,
		hand:     hand,
		bankroll: NewBankroll(len(agents)),
		rng:      randutil.New(randutil.Derive(cfg.Seed, deckStream)),
		ids:      handid.NewGenerator(randutil.Reader(randutil.Derive(cfg.Seed, idStream))),
		logger:   cfg.Logger,
	}, nil
}

// PlayHand plays the next hand and rotates the dealer.
func (s *Simulator) PlayHand() (*HandResult, error) {
	id, err := s.ids.Next()
	if err != nil {
		return nil, err
	}

	result, err := s.hand.Play(s.newDeck(), s.dealer, s.bankroll, id)
	if err != nil {
		return nil, fmt.Errorf("hand %d (%s): %w", s.played+1, id, err)
	}

	s.played++
	s.record(result)
	s.dealer = (s.dealer + 1) % s.hand.Players()
	if s.cfg.OnHand != nil {
		s.cfg.OnHand(result)
	}
	return result, nil
}

// Run plays hands hands, stopping early with ctx's error if it is cancelled
// between hands.
func (s *Simulator) Run(ctx context.Context, hands int) error {
	start := s.cfg.Clock.Now()
	last := start
	defer func() {
		s.elapsed += s.cfg.Clock.Now().Sub(start)
	}()

	s.logger.Info("starting run", "hands", hands, "players", s.hand.Players(), "seed", s.cfg.Seed)
	for range hands {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("run interrupted", "played", s.played)
			return err
		}
		if _, err := s.PlayHand(); err != nil {
			s.logger.Error("run aborted", "error", err)
			return err
		}

		if every := s.cfg.ProgressEvery; every > 0 && s.played%every == 0 {
			now := s.cfg.Clock.Now()
			s.progress(every, now.Sub(last))
			last = now
		}
	}
	return nil
}

func (s *Simulator) progress(hands int, period time.Duration) {
	p := Progress{
		Hands:        s.played,
		Chips:        s.bankroll.Chips(s.cfg.TrackSeat),
		MeanPerHand:  s.stats.Mean(),
		WindowPeriod: period,
	}
	if period > 0 {
		p.HandsPerSec = float64(hands) / period.Seconds()
	}
	s.logger.Info("progress",
		"hands", p.Hands,
		"hands_per_sec", fmt.Sprintf("%.0f", p.HandsPerSec),
		"chips", fmt.Sprintf("%.2f", p.Chips),
		"mean", fmt.Sprintf("%.4f", p.MeanPerHand))
	if s.cfg.OnProgress != nil {
		s.cfg.OnProgress(p)
	}
}

func (s *Simulator) record(r *HandResult) {
	seat, n := s.cfg.TrackSeat, s.hand.Players()
	s.history = append(s.history, s.bankroll.Chips(seat))
	s.stats.Add(statistics.HandResult{
		Net:            r.Net[seat],
		Position:       (seat - r.Dealer + n) % n,
		WentToShowdown: r.Showdown,
		Acted:          r.Decisions[seat] > 0,
		Pot:            r.Pot,
	})
}

func (s *Simulator) newDeck() deck.Source {
	if s.cfg.NewDeck != nil {
		return s.cfg.NewDeck(s.rng)
	}
	return deck.New(s.cfg.Table.Layout, s.rng)
}

// Bankroll returns the running chip totals.
func (s *Simulator) Bankroll() *Bankroll {
	return s.bankroll
}

// Stats returns the tracked seat's statistics.
func (s *Simulator) Stats() *statistics.Statistics {
	return &s.stats
}

// History returns the tracked seat's chip total after each hand.
func (s *Simulator) History() []float64 {
	return s.history
}

// Dealer returns the seat holding the button for the next hand.
func (s *Simulator) Dealer() int {
	return s.dealer
}

// Played returns the number of completed hands.
func (s *Simulator) Played() int {
	return s.played
}

// Elapsed returns the clock time spent inside Run.
func (s *Simulator) Elapsed() time.Duration {
	return s.elapsed
}

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() Config {
	return s.cfg
}
