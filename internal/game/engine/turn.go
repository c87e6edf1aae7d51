package engine

import "github.com/ndquang/thirteen/internal/game/card"

// InvariantHook, when set, receives a message whenever the engine hits
// a state that should be unreachable (the defensive break in the turn
// search). It is a correctness signal, not a recoverable error.
var InvariantHook func(msg string)

func reportInvariant(msg string) {
	if InvariantHook != nil {
		InvariantHook(msg)
	}
}

// nextSeat walks the seat ring clockwise from the current player and
// returns the first seat that is neither eliminated nor passed. If the
// walk comes all the way around, the trick should already have reset;
// the search breaks rather than spinning and reports the violation.
func (s *GameState) nextSeat() int {
	next := (s.CurrentPlayer + 1) % card.NumPlayers
	for s.Players[next].Eliminated || s.Players[next].HasPassed {
		next = (next + 1) % card.NumPlayers
		if next == s.CurrentPlayer {
			reportInvariant("turn search wrapped without an eligible seat; trick reset is overdue")
			break
		}
	}
	return next
}

// shouldResetTrick reports whether at most one live player is still in
// the trick, meaning the table must clear and the trick winner lead.
func (s *GameState) shouldResetTrick() bool {
	inTrick := 0
	for i := range s.Players {
		if !s.Players[i].Eliminated && !s.Players[i].HasPassed {
			inTrick++
		}
	}
	return inTrick <= 1
}

// resetTrick clears the table and every pass flag, hands the lead to
// the last player who played (or the current player when nobody has),
// and records the reset. This fires within a round; it is distinct from
// the round-end scoring that follows an emptied hand.
func (s *GameState) resetTrick() *GameState {
	leader := s.LastPlayedBy
	if leader == NoSeat {
		leader = s.CurrentPlayer
	}

	next := s.clone()
	for i := range next.Players {
		next.Players[i].HasPassed = false
		next.Players[i].LastPlay = nil
	}
	next.CurrentPlay = nil
	next.LastPlayedBy = NoSeat
	next.CurrentPlayer = leader
	next.PassCount = 0
	next.appendMove(Move{Kind: MoveTrickReset, Leader: leader})
	return next
}
