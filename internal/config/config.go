// Package config loads run configuration from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/leducbots/internal/bot"
	"github.com/lox/leducbots/internal/deck"
	"github.com/lox/leducbots/internal/game"
	"github.com/lox/leducbots/internal/qlearn"
	"github.com/lox/leducbots/internal/simulator"
)

// QLearn is the strategy name of the learning agent.
const QLearn = "qlearn"

// Config is a complete run configuration.
type Config struct {
	Table    Table
	Training Training
	Seats    []Seat
}

// Table holds the rules of the game.
type Table struct {
	Ranks         []string `hcl:"ranks,optional"`
	Suits         []string `hcl:"suits,optional"`
	SmallBlind    int      `hcl:"small_blind,optional"`
	BigBlind      int      `hcl:"big_blind,optional"`
	PairedHands   *bool    `hcl:"paired_hands,optional"`
	Split         string   `hcl:"split,optional"`
	MaxRaises     *int     `hcl:"max_raises,optional"`
	BlindFeedback bool     `hcl:"blind_feedback,optional"`
}

// Training holds run length, seeding and reporting.
// Hands and ProgressEvery keep an explicit 0 from the file.
type Training struct {
	Hands         *int   `hcl:"hands,optional"`
	Seed          int64  `hcl:"seed,optional"`
	ProgressEvery *int   `hcl:"progress_every,optional"`
	TrackSeat     int    `hcl:"track_seat,optional"`
	Window        int    `hcl:"window,optional"`
	Checkpoint    string `hcl:"checkpoint,optional"`
}

// Seat is one player at the table, in seating order.
type Seat struct {
	Name        string   `hcl:"name,label"`
	Strategy    string   `hcl:"strategy"`
	Discount    *float64 `hcl:"discount,optional"`
	Exploration *float64 `hcl:"exploration,optional"`
	Features    string   `hcl:"features,optional"`
}

type file struct {
	Table    *Table    `hcl:"table,block"`
	Training *Training `hcl:"training,block"`
	Seats    []Seat    `hcl:"seat,block"`
}

// Default returns the paired three-rank game: a Q-learner against the AKQ
// reference strategy.
func Default() *Config {
	cfg := &Config{
		Seats: []Seat{
			{Name: "hero", Strategy: QLearn},
			{Name: "villain", Strategy: "akq"},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads path, returning Default when the file does not exist.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var decoded file
	if diags := gohcl.DecodeBody(f.Body, nil, &decoded); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := &Config{Seats: decoded.Seats}
	if decoded.Table != nil {
		cfg.Table = *decoded.Table
	}
	if decoded.Training != nil {
		cfg.Training = *decoded.Training
	}
	if len(cfg.Seats) == 0 {
		cfg.Seats = Default().Seats
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	leduc := deck.Leduc()
	t := &c.Table
	if len(t.Ranks) == 0 {
		t.Ranks = leduc.Ranks
	}
	if len(t.Suits) == 0 {
		t.Suits = leduc.Suits
	}
	if t.SmallBlind == 0 {
		t.SmallBlind = 1
	}
	if t.BigBlind == 0 {
		t.BigBlind = 2 * t.SmallBlind
	}
	if t.PairedHands == nil {
		t.PairedHands = ptr(true)
	}
	if t.Split == "" {
		t.Split = game.SplitEven.String()
	}
	if t.MaxRaises == nil {
		t.MaxRaises = ptr(4)
	}

	tr := &c.Training
	if tr.Hands == nil {
		tr.Hands = ptr(10000)
	}
	if tr.ProgressEvery == nil {
		tr.ProgressEvery = ptr(1000)
	}
	if tr.Window == 0 {
		tr.Window = 1000
	}

	for i := range c.Seats {
		s := &c.Seats[i]
		if s.Strategy != QLearn {
			continue
		}
		if s.Discount == nil {
			s.Discount = ptr(1.0)
		}
		if s.Exploration == nil {
			s.Exploration = ptr(0.2)
		}
		if s.Features == "" {
			s.Features = qlearn.IdentityName
		}
	}
}

// Validate checks the configuration is playable.
func (c *Config) Validate() error {
	if len(c.Seats) < 2 {
		return fmt.Errorf("at least two seats must be configured, got %d", len(c.Seats))
	}

	names := make(map[string]bool, len(c.Seats))
	for _, s := range c.Seats {
		if names[s.Name] {
			return fmt.Errorf("seat %s: duplicate name", s.Name)
		}
		names[s.Name] = true

		if s.Strategy != QLearn && !slices.Contains(bot.Strategies, s.Strategy) {
			return fmt.Errorf("seat %s: invalid strategy %s", s.Name, s.Strategy)
		}
		if s.Strategy == QLearn {
			if d := deref(s.Discount); d < 0 || d > 1 {
				return fmt.Errorf("seat %s: discount must be within [0, 1], got %v", s.Name, d)
			}
			if e := deref(s.Exploration); e < 0 || e > 1 {
				return fmt.Errorf("seat %s: exploration must be within [0, 1], got %v", s.Name, e)
			}
			if _, err := qlearn.Extractor(s.Features); err != nil {
				return fmt.Errorf("seat %s: %w", s.Name, err)
			}
		}
	}

	table, err := c.TableConfig()
	if err != nil {
		return err
	}
	if err := table.Validate(len(c.Seats)); err != nil {
		return fmt.Errorf("table: %w", err)
	}

	if hands := c.Training.HandCount(); hands < 0 {
		return fmt.Errorf("training: hands must not be negative, got %d", hands)
	}
	if every := c.Training.ProgressInterval(); every < 0 {
		return fmt.Errorf("training: progress_every must not be negative, got %d", every)
	}
	if c.Training.Window <= 0 {
		return fmt.Errorf("training: window must be positive, got %d", c.Training.Window)
	}
	if c.Training.TrackSeat < 0 || c.Training.TrackSeat >= len(c.Seats) {
		return fmt.Errorf("training: track_seat %d out of range for %d seats", c.Training.TrackSeat, len(c.Seats))
	}
	return nil
}

// TableConfig converts the table block into simulator rules.
func (c *Config) TableConfig() (simulator.TableConfig, error) {
	split, err := game.ParseSplitPolicy(c.Table.Split)
	if err != nil {
		return simulator.TableConfig{}, fmt.Errorf("table: %w", err)
	}
	return simulator.TableConfig{
		Layout:        deck.Layout{Ranks: c.Table.Ranks, Suits: c.Table.Suits},
		SmallBlind:    c.Table.SmallBlind,
		BigBlind:      c.Table.BigBlind,
		PairedHands:   c.Table.PairedHands != nil && *c.Table.PairedHands,
		Split:         split,
		MaxRaises:     deref(c.Table.MaxRaises),
		BlindFeedback: c.Table.BlindFeedback,
	}, nil
}

// HandCount returns the number of hands to play.
func (t Training) HandCount() int {
	return deref(t.Hands)
}

// ProgressInterval returns the hands between progress reports, 0 when
// disabled.
func (t Training) ProgressInterval() int {
	return deref(t.ProgressEvery)
}

// SeatNames returns the seat names in order.
func (c *Config) SeatNames() []string {
	names := make([]string, len(c.Seats))
	for i, s := range c.Seats {
		names[i] = s.Name
	}
	return names
}

// Learners returns the indexes of the Q-learning seats.
func (c *Config) Learners() []int {
	var seats []int
	for i, s := range c.Seats {
		if s.Strategy == QLearn {
			seats = append(seats, i)
		}
	}
	return seats
}

// QLearn returns the learning parameters of a qlearn seat. The random source
// and logger are left for the caller.
func (s Seat) QLearn() qlearn.Config {
	return qlearn.Config{
		Discount:    deref(s.Discount),
		Exploration: deref(s.Exploration),
		Features:    s.Features,
	}
}

func ptr[T any](v T) *T {
	return &v
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
