package game

import (
	"fmt"
	"math"
)

// RaiseFraction sizes raises as a fraction of the pot after calling.
const RaiseFraction = 0.5

// RaiseCost returns the raise increment for a pot of pot chips when the raiser
// owes call chips: round((pot+call)*RaiseFraction), halves rounded up. Results
// beyond math.MaxInt saturate.
func RaiseCost(pot, call int) int {
	v := math.Round((float64(pot) + float64(call)) * RaiseFraction)
	if v >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(v)
}

// Costs returns the chips player needs to match the table and the raise
// increment on top of that.
func (p *PublicState) Costs(player int) (call, raise int) {
	call = p.CurrentBet - p.PlayerBets[player]
	return call, RaiseCost(p.Pot, call)
}

// PostBlind records a forced post bringing player's contribution up to level.
// It returns the chips the post cost.
func (p *PublicState) PostBlind(player, level int) (int, error) {
	if player < 0 || player >= p.Players {
		return 0, protocolError("blind", player, ErrUnknownSeat)
	}
	cost := level - p.PlayerBets[player]
	if cost <= 0 {
		return 0, protocolError("blind", player, fmt.Errorf("%w: level %d already covered", ErrInvalidBlind, level))
	}
	p.Pot += cost
	p.PlayerBets[player] = level
	p.CurrentBet = max(p.CurrentBet, level)
	p.Log = append(p.Log, Entry{Player: player, Action: Raise, Blind: level})
	return cost, p.Validate()
}

// Apply records a voluntary action and moves the chips it costs into the pot.
// It returns the chips committed (zero for a fold).
func (p *PublicState) Apply(player int, action Action) (int, error) {
	if player < 0 || player >= p.Players {
		return 0, protocolError("apply", player, ErrUnknownSeat)
	}

	call, raise := p.Costs(player)
	committed := 0
	switch action {
	case Fold:
	case Call:
		if p.Pot > math.MaxInt-call {
			return 0, protocolError("apply", player, fmt.Errorf("%w: pot %d + call %d", ErrOverflow, p.Pot, call))
		}
		committed = call
		p.PlayerBets[player] = p.CurrentBet
	case Raise:
		if raise > math.MaxInt-p.CurrentBet || call > math.MaxInt-raise || p.Pot > math.MaxInt-(call+raise) {
			return 0, protocolError("apply", player, fmt.Errorf("%w: pot %d, call %d, raise %d", ErrOverflow, p.Pot, call, raise))
		}
		committed = call + raise
		p.CurrentBet += raise
		p.PlayerBets[player] = p.CurrentBet
	default:
		return 0, protocolError("apply", player, fmt.Errorf("%w: %d", ErrUnknownAction, int(action)))
	}

	p.Pot += committed
	p.Log = append(p.Log, Entry{Player: player, Action: action})
	return committed, p.Validate()
}

// ReplayOptions controls how Replay reads a log.
type ReplayOptions struct {
	Ranks     int
	MaxRaises int

	// LegacyBlinds reads the first two RAISE entries of a log that carries no
	// explicit blind entries as the small and big blind.
	LegacyBlinds bool
	SmallBlind   int // defaults to 1
	BigBlind     int // defaults to 2
}

// Replay rebuilds a PublicState for players seats from log. Legacy blind
// entries come back as explicit blind entries in the rebuilt log.
func Replay(players int, log []Entry, opts ReplayOptions) (*PublicState, error) {
	small, big := opts.SmallBlind, opts.BigBlind
	if small == 0 {
		small = 1
	}
	if big == 0 {
		big = 2
	}

	pub := NewPublicState(players, opts.Ranks)
	pub.MaxRaises = opts.MaxRaises
	blinds := 0
	for i, e := range log {
		var err error
		switch {
		case e.IsBlind():
			_, err = pub.PostBlind(e.Player, e.Blind)
			blinds++
		case opts.LegacyBlinds && i == blinds && blinds < 2 && e.Action == Raise:
			level := small
			if blinds == 1 {
				level = big
			}
			_, err = pub.PostBlind(e.Player, level)
			blinds++
		default:
			_, err = pub.Apply(e.Player, e.Action)
		}
		if err != nil {
			return nil, fmt.Errorf("replay entry %d (%s): %w", i, e, err)
		}
	}
	return pub, nil
}
