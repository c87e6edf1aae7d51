package engine

import "github.com/ndquang/thirteen/internal/game/card"

// endRound converts remaining hand sizes into penalty points, applies
// eliminations, and clears all hands. The winner's score is untouched.
// Fires whenever a player empties their hand.
func endRound(s *GameState, winnerSeat int) *GameState {
	next := s.clone()

	for i := range next.Players {
		p := &next.Players[i]
		if i == winnerSeat {
			p.Hand = nil
			continue
		}
		penalty := len(p.Hand)
		if penalty >= PenaltyThreshold {
			penalty *= 2
		}
		p.Score += penalty
		if p.Score >= EliminationScore {
			p.Eliminated = true
		}
		p.Hand = nil
	}

	scores := make([]SeatScore, len(next.Players))
	for i, p := range next.Players {
		scores[i] = SeatScore{Seat: i, Score: p.Score, Eliminated: p.Eliminated}
	}

	next.Phase = RoundEnd
	if len(next.ActiveSeats()) == 1 {
		next.Phase = GameOver
	}
	next.appendMove(Move{Kind: MoveRoundEnd, Winner: winnerSeat, Scores: scores})
	return next
}

// StartNextRound deals the next round: the dealer button rotates one
// seat, the seat to the new dealer's left leads, pass flags clear, and
// only surviving players receive hands.
func StartNextRound(s *GameState, newHands [][]card.Card) *GameState {
	next := s.clone()
	next.DealerSeat = (next.DealerSeat + 1) % card.NumPlayers
	next.CurrentPlayer = (next.DealerSeat + 1) % card.NumPlayers
	// The natural leader may have been eliminated last round.
	for next.Players[next.CurrentPlayer].Eliminated {
		next.CurrentPlayer = (next.CurrentPlayer + 1) % card.NumPlayers
	}

	for i := range next.Players {
		p := &next.Players[i]
		if p.Eliminated {
			p.Hand = nil
		} else {
			p.Hand = card.Sorted(newHands[i])
		}
		p.HasPassed = false
		p.LastPlay = nil
	}

	next.CurrentPlay = nil
	next.LastPlayedBy = NoSeat
	next.RoundNumber++
	next.Phase = Playing
	next.PassCount = 0
	next.appendMove(Move{Kind: MoveNewRound, Round: next.RoundNumber, Dealer: next.DealerSeat})
	return next
}
