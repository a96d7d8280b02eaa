// Package game implements the betting core of the simplified Leduc-style game.
//
// A hand's public history is an append-only log of Entry values held by
// PublicState. Everything else about the betting round (pot, bet level, each
// seat's contribution, what a call or raise costs) is derived from that log:
//
//	pub := game.NewPublicState(2, 3)
//	pub.PostBlind(1, 1) // small blind
//	pub.PostBlind(0, 2) // big blind
//	call, raise := pub.Costs(1)
//	committed, err := pub.Apply(1, game.Call)
//
// Raises are pot-fraction sized: the raise increment is round((pot+call)*0.5).
//
// # Turn order
//
// TurnScheduler tracks the seats still eligible to act and closes the round
// after a full lap with no raise, or as soon as a single seat remains:
//
//	sched := game.NewTurnScheduler(players, dealer)
//	for !sched.Closed() {
//	    seat, _ := sched.Current()
//	    // ask the agent in seat for an action, apply it, then:
//	    sched.Record(seat, action)
//	}
//
// # Agents
//
// Agent is the two-method capability every policy implements. Agents receive a
// GameState snapshot; they can keep it for deferred learning but never touch
// the live PublicState.
package game
