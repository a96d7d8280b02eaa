package game

import (
	"testing"

	"github.com/lox/leducbots/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameStateIsASnapshot(t *testing.T) {
	t.Parallel()

	pub := NewPublicState(2, 3)
	_, err := pub.PostBlind(1, 1)
	require.NoError(t, err)

	state := NewGameState(ExclusiveState{PlayerID: 0, Hand: [2]deck.Card{2, 2}}, pub)
	_, err = pub.PostBlind(0, 2)
	require.NoError(t, err)

	assert.Len(t, state.Public.Log, 1)
	assert.Equal(t, 1, state.Public.Pot)
	assert.Equal(t, []int{0, 1}, state.Public.PlayerBets)
}

func TestGameStateKeyIsValueBased(t *testing.T) {
	t.Parallel()

	build := func() GameState {
		pub := NewPublicState(2, 3)
		_, _ = pub.PostBlind(1, 1)
		_, _ = pub.PostBlind(0, 2)
		_, _ = pub.Apply(1, Call)
		return NewGameState(ExclusiveState{PlayerID: 0, Hand: [2]deck.Card{1, 1}}, pub)
	}

	a, b := build(), build()
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "2|0|1,1|1:BLIND(1) 0:BLIND(2) 1:CALL", a.Key())

	b.Exclusive.Hand = [2]deck.Card{2, 2}
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestParseAction(t *testing.T) {
	t.Parallel()

	for _, a := range Actions {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
		assert.True(t, a.Valid())
	}
	_, err := ParseAction("CHECK")
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.False(t, Action(0).Valid())
}
