package simulator

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/leducbots/internal/deck"
	"github.com/lox/leducbots/internal/game"
)

// TableConfig holds the rules every hand is played under.
type TableConfig struct {
	Layout      deck.Layout
	SmallBlind  int
	BigBlind    int
	PairedHands bool // deal one card per seat and hold it twice
	Split       game.SplitPolicy
	MaxRaises   int // voluntary raises per round, 0 for no cap

	// BlindFeedback reports each forced post to the poster's agent as a Raise
	// costing the blind, so the agent's rewards sum to its net result.
	BlindFeedback bool
}

// DefaultTableConfig returns the paired three-rank game with 1/2 blinds.
func DefaultTableConfig() TableConfig {
	return TableConfig{
		Layout:      deck.Leduc(),
		SmallBlind:  1,
		BigBlind:    2,
		PairedHands: true,
		Split:       game.SplitEven,
		MaxRaises:   4,
	}
}

// CardsPerHand returns how many cards each hand consumes for players seats.
func (c TableConfig) CardsPerHand(players int) int {
	if c.PairedHands {
		return players
	}
	return 2 * players
}

// Validate checks the table can seat players.
func (c TableConfig) Validate(players int) error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if players < 2 {
		return fmt.Errorf("need at least 2 players, got %d", players)
	}
	if c.SmallBlind <= 0 || c.BigBlind <= c.SmallBlind {
		return fmt.Errorf("blinds must satisfy 0 < small (%d) < big (%d)", c.SmallBlind, c.BigBlind)
	}
	if c.MaxRaises < 0 {
		return fmt.Errorf("max raises must not be negative, got %d", c.MaxRaises)
	}
	if need := c.CardsPerHand(players); need > c.Layout.Size() {
		return fmt.Errorf("%d players need %d cards, deck has %d", players, need, c.Layout.Size())
	}
	return nil
}

// HandResult is the outcome of one hand. Slices are indexed by seat.
type HandResult struct {
	ID        string
	Dealer    int
	Hands     [][2]deck.Card
	Log       []game.Entry
	Pot       int
	Winners   []int
	Showdown  bool // false when everyone else folded
	Payouts   []float64
	Committed []int
	Net       []float64
	Decisions []int
}

// HandSimulator plays single hands among a fixed set of agents.
type HandSimulator struct {
	agents []game.Agent
	table  TableConfig
	logger *log.Logger
}

// NewHandSimulator seats agents in order.
func NewHandSimulator(agents []game.Agent, table TableConfig, logger *log.Logger) (*HandSimulator, error) {
	if err := table.Validate(len(agents)); err != nil {
		return nil, fmt.Errorf("invalid table: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &HandSimulator{agents: agents, table: table, logger: logger}, nil
}

// Players returns the number of seats.
func (h *HandSimulator) Players() int {
	return len(h.agents)
}

// Play deals one hand from src with the button at dealer and settles it into
// bankroll. Any agent or protocol error aborts the hand before settlement.
func (h *HandSimulator) Play(src deck.Source, dealer int, bankroll *Bankroll, id string) (*HandResult, error) {
	n := len(h.agents)
	ranks := h.table.Layout.RankCount()
	logger := h.logger.With("hand", id)

	hands, err := h.deal(src)
	if err != nil {
		return nil, err
	}

	exclusive := make([]game.ExclusiveState, n)
	for seat := range exclusive {
		exclusive[seat] = game.ExclusiveState{PlayerID: seat, Hand: hands[seat], Chips: bankroll.Chips(seat)}
		logger.Debug("dealt", "seat", seat, "cards", h.table.Layout.FormatHand(hands[seat]))
	}

	pub := game.NewPublicState(n, ranks)
	pub.MaxRaises = h.table.MaxRaises
	ledger := NewLedger(n)

	small, big := game.BlindSeats(n, dealer)
	for _, blind := range []struct{ seat, level int }{{small, h.table.SmallBlind}, {big, h.table.BigBlind}} {
		before := game.NewGameState(exclusive[blind.seat], pub)
		cost, err := pub.PostBlind(blind.seat, blind.level)
		if err != nil {
			return nil, err
		}
		ledger.Commit(blind.seat, cost)
		if h.table.BlindFeedback {
			ledger.Open(blind.seat, Transition{State: before, Action: game.Raise, Reward: -float64(cost)}, false)
		}
		logger.Debug("blind", "seat", blind.seat, "level", blind.level, "pot", pub.Pot)
	}

	sched := game.NewTurnScheduler(n, dealer)
	for {
		seat, ok := sched.Current()
		if !ok {
			break
		}
		agent := h.agents[seat]
		state := game.NewGameState(exclusive[seat], pub)

		if prev, ok := ledger.Pending(seat); ok {
			agent.IncorporateFeedback(prev.State, prev.Action, prev.Reward, &state)
		}

		action, err := agent.SelectAction(state)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", seat, err)
		}
		if !game.IsLegal(state, action) {
			return nil, &game.ProtocolError{Op: "act", Player: seat, Err: fmt.Errorf("%w: %s", game.ErrIllegalAction, action)}
		}

		if err := sched.Expect(seat); err != nil {
			return nil, err
		}
		committed, err := pub.Apply(seat, action)
		if err != nil {
			return nil, err
		}
		ledger.Commit(seat, committed)
		ledger.Open(seat, Transition{State: state, Action: action, Reward: -float64(committed)}, true)

		if err := sched.Record(seat, action); err != nil {
			return nil, err
		}
		logger.Debug("action", "seat", seat, "action", action, "committed", committed, "pot", pub.Pot)
	}

	eligible := sched.Eligible()
	slices.Sort(eligible)
	result := &HandResult{
		ID:        id,
		Dealer:    dealer,
		Hands:     hands,
		Log:       pub.Log,
		Pot:       pub.Pot,
		Showdown:  !sched.Uncontested(),
		Committed: make([]int, n),
		Net:       make([]float64, n),
		Decisions: make([]int, n),
	}
	if result.Showdown {
		contenders := make(map[int][2]deck.Card, len(eligible))
		for _, seat := range eligible {
			contenders[seat] = hands[seat]
		}
		result.Winners = game.Winners(contenders, ranks)
	} else {
		result.Winners = eligible
	}
	result.Payouts = game.SplitPot(pub.Pot, result.Winners, h.table.Split, dealer, n)

	for seat, agent := range h.agents {
		if last, ok := ledger.Pending(seat); ok {
			agent.IncorporateFeedback(last.State, last.Action, last.Reward+result.Payouts[seat], nil)
		}
		result.Committed[seat] = ledger.Committed(seat)
		result.Net[seat] = result.Payouts[seat] - float64(result.Committed[seat])
		result.Decisions[seat] = ledger.Decisions(seat)
	}
	bankroll.Settle(result.Net)

	logger.Debug("hand complete", "winners", result.Winners, "pot", result.Pot, "showdown", result.Showdown)
	return result, nil
}

func (h *HandSimulator) deal(src deck.Source) ([][2]deck.Card, error) {
	hands := make([][2]deck.Card, len(h.agents))
	for seat := range hands {
		for i := range 2 {
			if h.table.PairedHands && i == 1 {
				hands[seat][1] = hands[seat][0]
				continue
			}
			c, err := src.Deal()
			if err != nil {
				return nil, fmt.Errorf("deal seat %d: %w", seat, err)
			}
			hands[seat][i] = c
		}
	}
	return hands, nil
}
