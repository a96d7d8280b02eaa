package game

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/lox/leducbots/internal/deck"
)

// Entry is one record of the public action log. Blind is non-zero only for
// forced posts and holds the bet level the seat was brought up to.
type Entry struct {
	Player int
	Action Action
	Blind  int
}

// IsBlind reports whether the entry is a forced post rather than a decision.
func (e Entry) IsBlind() bool {
	return e.Blind > 0
}

func (e Entry) String() string {
	if e.IsBlind() {
		return fmt.Sprintf("%d:BLIND(%d)", e.Player, e.Blind)
	}
	return fmt.Sprintf("%d:%s", e.Player, e.Action)
}

// ExclusiveState is the private part of a seat: its id, hole cards and chips at
// the start of the hand.
type ExclusiveState struct {
	PlayerID int
	Hand     [2]deck.Card
	Chips    float64
}

// PublicState is the table everyone sees. Pot, CurrentBet and PlayerBets are
// derived from Log and are kept in step by PostBlind and Apply.
type PublicState struct {
	Players    int
	Ranks      int
	MaxRaises  int // voluntary raises allowed per round, 0 for no cap
	Log        []Entry
	Pot        int
	CurrentBet int
	PlayerBets []int
}

// NewPublicState returns an empty table for players seats dealt from a deck with
// ranks ranks.
func NewPublicState(players, ranks int) *PublicState {
	return &PublicState{
		Players:    players,
		Ranks:      ranks,
		PlayerBets: make([]int, players),
	}
}

// Clone returns a deep copy that shares nothing with p.
func (p *PublicState) Clone() PublicState {
	cp := *p
	cp.Log = slices.Clone(p.Log)
	cp.PlayerBets = slices.Clone(p.PlayerBets)
	return cp
}

// Validate checks pot == sum(PlayerBets) and CurrentBet == max(PlayerBets).
func (p *PublicState) Validate() error {
	sum, highest := 0, 0
	for _, b := range p.PlayerBets {
		sum += b
		highest = max(highest, b)
	}
	if sum != p.Pot {
		return protocolError("validate", -1, fmt.Errorf("%w: pot %d != contributions %d", ErrInvariant, p.Pot, sum))
	}
	if highest != p.CurrentBet {
		return protocolError("validate", -1, fmt.Errorf("%w: current bet %d != max contribution %d", ErrInvariant, p.CurrentBet, highest))
	}
	return nil
}

// Raises counts the voluntary raises in the log.
func (p *PublicState) Raises() int {
	n := 0
	for _, e := range p.Log {
		if !e.IsBlind() && e.Action == Raise {
			n++
		}
	}
	return n
}

// LegalActions returns the actions available to the next decision. Raise is
// dropped once the round has used up MaxRaises.
func (p *PublicState) LegalActions() []Action {
	if p.MaxRaises > 0 && p.Raises() >= p.MaxRaises {
		return []Action{Fold, Call}
	}
	return Actions
}

// GameState is what an agent sees when it is asked to act: its own private
// state and a snapshot of the public table.
type GameState struct {
	Exclusive ExclusiveState
	Public    PublicState
}

// NewGameState snapshots pub for the seat described by ex.
func NewGameState(ex ExclusiveState, pub *PublicState) GameState {
	return GameState{Exclusive: ex, Public: pub.Clone()}
}

// Costs returns what the acting seat must pay to call and the raise increment
// on top of it.
func (s GameState) Costs() (call, raise int) {
	return s.Public.Costs(s.Exclusive.PlayerID)
}

// LegalActions returns the actions the seat may choose.
func (s GameState) LegalActions() []Action {
	return s.Public.LegalActions()
}

// Key renders the seat's information state: table size, seat, hole cards and
// the full public log. Structurally identical states produce identical keys.
func (s GameState) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(s.Public.Players))
	b.WriteString("|")
	b.WriteString(strconv.Itoa(s.Exclusive.PlayerID))
	b.WriteString("|")
	b.WriteString(strconv.Itoa(int(s.Exclusive.Hand[0])))
	b.WriteString(",")
	b.WriteString(strconv.Itoa(int(s.Exclusive.Hand[1])))
	b.WriteString("|")
	for i, e := range s.Public.Log {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(e.String())
	}
	return b.String()
}
