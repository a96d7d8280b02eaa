package simulator

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/leducbots/internal/bot"
	"github.com/lox/leducbots/internal/game"
	"github.com/lox/leducbots/internal/randutil"
)

func TestWriteSummary(t *testing.T) {
	agents := []game.Agent{bot.NewRandomBot(randutil.New(4), nil), bot.NewCallBot(nil)}
	sim, err := New(agents, Config{Table: DefaultTableConfig(), Seed: 4, Logger: testLogger()})
	require.NoError(t, err)
	require.NoError(t, sim.Run(context.Background(), 40))

	var buf bytes.Buffer
	WriteSummary(&buf, sim, []string{"hero", "villain"}, 10)
	out := buf.String()

	assert.Contains(t, out, "Results for hero (seat 0)")
	assert.Contains(t, out, "Hands played: 40")
	assert.Contains(t, out, "95% CI")
	assert.Contains(t, out, "Trend (10-hand windows)")
	assert.Contains(t, out, "villain")
}

func TestWriteSummaryWithoutHands(t *testing.T) {
	sim, err := New([]game.Agent{bot.NewCallBot(nil), bot.NewCallBot(nil)}, Config{Table: DefaultTableConfig()})
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteSummary(&buf, sim, nil, 10)
	assert.Contains(t, buf.String(), "Results for seat0 (seat 0)")
	assert.NotContains(t, buf.String(), "Statistics")
}

func TestLedgerTracksPendingTransition(t *testing.T) {
	l := NewLedger(2)
	_, ok := l.Pending(0)
	assert.False(t, ok)

	l.Commit(0, 1)
	l.Open(0, Transition{Action: game.Raise, Reward: -1}, false)
	l.Commit(0, 3)
	l.Open(0, Transition{Action: game.Call, Reward: -3}, true)

	p, ok := l.Pending(0)
	require.True(t, ok)
	assert.Equal(t, game.Call, p.Action)
	assert.Equal(t, 4, l.Committed(0))
	assert.Equal(t, 1, l.Decisions(0))
	assert.Zero(t, l.Decisions(1))
}
