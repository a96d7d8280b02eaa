package simulator

import (
	"context"
	"io"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/leducbots/internal/bot"
	"github.com/lox/leducbots/internal/deck"
	"github.com/lox/leducbots/internal/game"
	"github.com/lox/leducbots/internal/handid"
	"github.com/lox/leducbots/internal/qlearn"
	"github.com/lox/leducbots/internal/randutil"
)

type feedback struct {
	action   game.Action
	reward   float64
	terminal bool
}

// recorder wraps an agent and keeps every feedback call it receives.
type recorder struct {
	game.Agent
	calls []feedback
}

func (r *recorder) IncorporateFeedback(state game.GameState, action game.Action, reward float64, next *game.GameState) {
	r.calls = append(r.calls, feedback{action: action, reward: reward, terminal: next == nil})
	r.Agent.IncorporateFeedback(state, action, reward, next)
}

func (r *recorder) rewards() float64 {
	var sum float64
	for _, c := range r.calls {
		sum += c.reward
	}
	return sum
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func orderedDeck(cards ...deck.Card) func(*rand.Rand) deck.Source {
	return func(*rand.Rand) deck.Source {
		return deck.NewOrdered(cards...)
	}
}

func TestAcesVersusKingsSmallBlindFolds(t *testing.T) {
	layout := deck.Leduc()
	ace, king := layout.Card(2, 0), layout.Card(1, 0)

	for _, blindFeedback := range []bool{false, true} {
		name := "no blind feedback"
		if blindFeedback {
			name = "blind feedback"
		}
		t.Run(name, func(t *testing.T) {
			bigBlind := &recorder{Agent: bot.NewCallBot(nil)}
			smallBlind := &recorder{Agent: bot.NewFoldBot(nil)}

			table := DefaultTableConfig()
			table.BlindFeedback = blindFeedback
			sim, err := New([]game.Agent{bigBlind, smallBlind}, Config{
				Table:   table,
				Seed:    1,
				NewDeck: orderedDeck(ace, king),
				Logger:  testLogger(),
			})
			require.NoError(t, err)

			result, err := sim.PlayHand()
			require.NoError(t, err)
			require.NoError(t, handid.Validate(result.ID))

			assert.Equal(t, [][2]deck.Card{{ace, ace}, {king, king}}, result.Hands)
			assert.Equal(t, []game.Entry{
				{Player: 1, Action: game.Raise, Blind: 1},
				{Player: 0, Action: game.Raise, Blind: 2},
				{Player: 1, Action: game.Fold},
			}, result.Log)
			assert.Equal(t, 3, result.Pot)
			assert.False(t, result.Showdown)
			assert.Equal(t, []int{0}, result.Winners)
			assert.Equal(t, []float64{1, -1}, result.Net)
			assert.Equal(t, []float64{1, -1}, sim.Bankroll().Snapshot())
			assert.Equal(t, 1, sim.Dealer())

			if !blindFeedback {
				assert.Empty(t, bigBlind.calls, "a seat that never acted gets no feedback")
				assert.Equal(t, []feedback{{action: game.Fold, reward: 0, terminal: true}}, smallBlind.calls)
				return
			}

			assert.Equal(t, []feedback{{action: game.Raise, reward: 1, terminal: true}}, bigBlind.calls)
			assert.Equal(t, []feedback{
				{action: game.Raise, reward: -1},
				{action: game.Fold, reward: 0, terminal: true},
			}, smallBlind.calls)
			assert.InDelta(t, result.Net[0], bigBlind.rewards(), 1e-12)
			assert.InDelta(t, result.Net[1], smallBlind.rewards(), 1e-12)
		})
	}
}

func TestFoldToOneSkipsShowdown(t *testing.T) {
	layout := deck.Leduc()
	agents := []game.Agent{bot.NewFoldBot(nil), bot.NewFoldBot(nil), bot.NewCallBot(nil)}
	h, err := NewHandSimulator(agents, DefaultTableConfig(), testLogger())
	require.NoError(t, err)

	bank := NewBankroll(3)
	// Seat 2 holds the worst hand and still takes the pot.
	src := deck.NewOrdered(layout.Card(2, 0), layout.Card(1, 0), layout.Card(0, 0))
	result, err := h.Play(src, 0, bank, "hand")
	require.NoError(t, err)

	assert.False(t, result.Showdown)
	assert.Equal(t, []int{2}, result.Winners)
	assert.Equal(t, []float64{0, -1, 1}, result.Net)
	assert.Equal(t, []int{1, 1, 0}, result.Decisions)
	assert.Len(t, result.Log, 4)
}

func TestShowdownSplitPolicies(t *testing.T) {
	layout := deck.Layout{Ranks: []string{"J", "Q", "K", "A"}, Suits: []string{"♠", "♥"}}
	cards := []deck.Card{
		layout.Card(0, 0), layout.Card(1, 0), // seat 0: J Q
		layout.Card(3, 0), layout.Card(2, 0), // seat 1: A K
		layout.Card(3, 1), layout.Card(2, 1), // seat 2: A K
	}

	tests := []struct {
		policy game.SplitPolicy
		net    []float64
	}{
		{game.SplitEven, []float64{-5, 2.5, 2.5}},
		{game.SplitInteger, []float64{-5, 3, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			table := TableConfig{Layout: layout, SmallBlind: 1, BigBlind: 2, Split: tt.policy, MaxRaises: 4}
			agents := []game.Agent{bot.NewRaiseBot(nil), bot.NewCallBot(nil), bot.NewCallBot(nil)}
			h, err := NewHandSimulator(agents, table, testLogger())
			require.NoError(t, err)

			result, err := h.Play(deck.NewOrdered(cards...), 0, NewBankroll(3), "split")
			require.NoError(t, err)

			// 3 in blinds, seat 0 raises 2+3, the others call 4 and 3.
			assert.Equal(t, 15, result.Pot)
			assert.True(t, result.Showdown)
			assert.Equal(t, []int{1, 2}, result.Winners)
			assert.Equal(t, tt.net, result.Net)
		})
	}
}

func TestRaiseCapEndsRaiseWar(t *testing.T) {
	table := DefaultTableConfig()
	table.MaxRaises = 3
	agents := []game.Agent{bot.NewRaiseBot(nil), bot.NewRaiseBot(nil)}
	h, err := NewHandSimulator(agents, table, testLogger())
	require.NoError(t, err)

	layout := table.Layout
	result, err := h.Play(deck.NewOrdered(layout.Card(2, 0), layout.Card(1, 0)), 0, NewBankroll(2), "cap")
	require.NoError(t, err)

	raises := 0
	for _, e := range result.Log {
		if !e.IsBlind() && e.Action == game.Raise {
			raises++
		}
	}
	assert.Equal(t, 3, raises)
	assert.Equal(t, game.Call, result.Log[len(result.Log)-1].Action)
	assert.Equal(t, []int{0}, result.Winners)
	assert.InDelta(t, 0, result.Net[0]+result.Net[1], 1e-12)
}

func TestUncappedRaiseWarOverflows(t *testing.T) {
	table := DefaultTableConfig()
	table.MaxRaises = 0
	agents := []game.Agent{bot.NewRaiseBot(nil), bot.NewRaiseBot(nil)}
	h, err := NewHandSimulator(agents, table, testLogger())
	require.NoError(t, err)

	layout := table.Layout
	bank := NewBankroll(2)
	_, err = h.Play(deck.NewOrdered(layout.Card(2, 0), layout.Card(1, 0)), 0, bank, "uncapped")
	require.Error(t, err)
	assert.ErrorIs(t, err, game.ErrOverflow)
	assert.NotErrorIs(t, err, game.ErrInvariant)
	assert.Equal(t, []float64{0, 0}, bank.Snapshot())
}

func TestAgentErrorAbortsRun(t *testing.T) {
	table := DefaultTableConfig()
	table.Layout = deck.Standard()
	table.PairedHands = false

	agents := []game.Agent{bot.NewAKQBot(randutil.New(1), nil), bot.NewAKQBot(randutil.New(2), nil)}
	sim, err := New(agents, Config{Table: table, Seed: 3, Logger: testLogger()})
	require.NoError(t, err)

	err = sim.Run(context.Background(), 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, bot.ErrUnsupportedHand)
	assert.Zero(t, sim.Played())
	assert.Equal(t, []float64{0, 0}, sim.Bankroll().Snapshot())
}

// stubborn raises whatever the table allows.
type stubborn struct{ game.NoFeedback }

func (stubborn) SelectAction(game.GameState) (game.Action, error) {
	return game.Raise, nil
}

func TestIllegalActionIsProtocolError(t *testing.T) {
	table := DefaultTableConfig()
	table.MaxRaises = 1
	h, err := NewHandSimulator([]game.Agent{stubborn{}, stubborn{}}, table, testLogger())
	require.NoError(t, err)

	layout := table.Layout
	_, err = h.Play(deck.NewOrdered(layout.Card(0, 0), layout.Card(1, 0)), 0, NewBankroll(2), "bad")
	require.Error(t, err)

	var perr *game.ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 0, perr.Player)
	assert.ErrorIs(t, err, game.ErrIllegalAction)
}

func TestExhaustedDeck(t *testing.T) {
	layout := deck.Leduc()
	h, err := NewHandSimulator([]game.Agent{bot.NewCallBot(nil), bot.NewCallBot(nil)}, DefaultTableConfig(), testLogger())
	require.NoError(t, err)

	_, err = h.Play(deck.NewOrdered(layout.Card(0, 0)), 0, NewBankroll(2), "short")
	assert.ErrorIs(t, err, deck.ErrExhausted)
}

func TestTableValidate(t *testing.T) {
	table := DefaultTableConfig()
	require.NoError(t, table.Validate(3))
	assert.ErrorContains(t, table.Validate(4), "need 4 cards")
	assert.ErrorContains(t, table.Validate(1), "at least 2")

	table.SmallBlind = 2
	assert.ErrorContains(t, table.Validate(2), "blinds")

	_, err := New([]game.Agent{bot.NewCallBot(nil), bot.NewCallBot(nil)}, Config{Table: DefaultTableConfig(), TrackSeat: 2})
	assert.ErrorContains(t, err, "tracked seat")
}

func TestRunRotatesDealerAndConservesChips(t *testing.T) {
	agents := []game.Agent{
		bot.NewRandomBot(randutil.New(1), nil),
		bot.NewRandomBot(randutil.New(2), nil),
		bot.NewRandomBot(randutil.New(3), nil),
	}
	hands := 0
	sim, err := New(agents, Config{
		Table:  DefaultTableConfig(),
		Seed:   9,
		Logger: testLogger(),
		OnHand: func(r *HandResult) {
			assert.Equal(t, hands%3, r.Dealer)
			hands++
		},
	})
	require.NoError(t, err)

	require.NoError(t, sim.Run(context.Background(), 31))
	assert.Equal(t, 31, hands)
	assert.Equal(t, 31, sim.Played())
	assert.Equal(t, 1, sim.Dealer())
	assert.InDelta(t, 0, sim.Bankroll().Total(), 1e-9)
	assert.Len(t, sim.History(), 31)
	assert.Equal(t, sim.Bankroll().Chips(0), sim.History()[30])
	require.NoError(t, sim.Stats().Validate())
	assert.InDelta(t, sim.Bankroll().Chips(0), sim.Stats().Sum, 1e-9)
}

func TestRunIsReproducible(t *testing.T) {
	play := func() ([]float64, []string) {
		agents := []game.Agent{
			bot.NewRandomBot(randutil.New(1), nil),
			bot.NewRandomBot(randutil.New(2), nil),
		}
		var ids []string
		sim, err := New(agents, Config{
			Table:  DefaultTableConfig(),
			Seed:   77,
			OnHand: func(r *HandResult) { ids = append(ids, r.ID) },
		})
		require.NoError(t, err)
		require.NoError(t, sim.Run(context.Background(), 50))
		return sim.History(), ids
	}

	h1, ids1 := play()
	h2, ids2 := play()
	assert.Equal(t, h1, h2)
	assert.Equal(t, ids1, ids2)
}

func TestRunStopsWhenCancelled(t *testing.T) {
	sim, err := New([]game.Agent{bot.NewCallBot(nil), bot.NewCallBot(nil)}, Config{Table: DefaultTableConfig()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = sim.Run(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sim.Played())
}

func TestProgressReportsThroughput(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mClock := quartz.NewMock(t)
	var reports []Progress
	sim, err := New([]game.Agent{bot.NewCallBot(nil), bot.NewFoldBot(nil)}, Config{
		Table:         DefaultTableConfig(),
		ProgressEvery: 5,
		Clock:         mClock,
		Logger:        testLogger(),
		OnHand: func(*HandResult) {
			mClock.Advance(100 * time.Millisecond).MustWait(ctx)
		},
		OnProgress: func(p Progress) { reports = append(reports, p) },
	})
	require.NoError(t, err)

	require.NoError(t, sim.Run(ctx, 12))
	require.Len(t, reports, 2)
	assert.Equal(t, 5, reports[0].Hands)
	assert.Equal(t, 10, reports[1].Hands)
	assert.InDelta(t, 10.0, reports[0].HandsPerSec, 1e-9)
	assert.Equal(t, 500*time.Millisecond, reports[1].WindowPeriod)
	assert.Equal(t, 1200*time.Millisecond, sim.Elapsed())
}

func TestQLearnerPrefersPlayingAgainstFolder(t *testing.T) {
	learner, err := qlearn.New(qlearn.Config{Discount: 1, Exploration: 0.2, Rng: randutil.New(5)})
	require.NoError(t, err)

	sim, err := New([]game.Agent{learner, bot.NewFoldBot(nil)}, Config{
		Table:  DefaultTableConfig(),
		Seed:   21,
		Logger: testLogger(),
	})
	require.NoError(t, err)
	require.NoError(t, sim.Run(context.Background(), 3000))

	// Seat 0 in the small blind with aces, facing the big blind.
	layout := deck.Leduc()
	pub := game.NewPublicState(2, layout.RankCount())
	pub.MaxRaises = 4
	_, err = pub.PostBlind(0, 1)
	require.NoError(t, err)
	_, err = pub.PostBlind(1, 2)
	require.NoError(t, err)
	aces := layout.Card(2, 0)
	state := game.NewGameState(game.ExclusiveState{PlayerID: 0, Hand: [2]deck.Card{aces, aces}}, pub)

	assert.NotEqual(t, game.Fold, learner.Greedy(state))
	assert.Greater(t, max(learner.Q(state, game.Call), learner.Q(state, game.Raise)), learner.Q(state, game.Fold))
	assert.Greater(t, sim.Stats().Mean(), 0.5)
}
