package engine

import (
	"github.com/ndquang/thirteen/internal/game/card"
	"github.com/ndquang/thirteen/internal/game/combo"
)

// PlayResult reports the outcome of a play attempt. On rejection State
// is the unchanged input state and Reason carries the validator's text.
type PlayResult struct {
	Success   bool
	State     *GameState
	PlayerWon bool
	Reason    string
}

// PlayCards attempts to play the selected cards for the seat to act.
// The selection is validated against the table combination; on success
// the cards leave the hand, the table updates, and either the turn
// advances or, if the hand emptied, the round scores immediately.
func PlayCards(s *GameState, selected []card.Card) PlayResult {
	acting := &s.Players[s.CurrentPlayer]

	if !card.ContainsAll(acting.Hand, selected) {
		return PlayResult{State: s, Reason: combo.ReasonInvalidCombo}
	}

	validation := combo.ValidatePlay(selected, s.CurrentPlay)
	if !validation.Valid {
		return PlayResult{State: s, Reason: validation.Reason}
	}

	next := s.clone()
	player := &next.Players[next.CurrentPlayer]
	player.Hand = card.Remove(player.Hand, selected)
	player.LastPlay = validation.Combination

	next.CurrentPlay = validation.Combination
	next.LastPlayedBy = next.CurrentPlayer
	next.PassCount = 0
	next.appendMove(Move{
		Kind:        MovePlay,
		Seat:        next.CurrentPlayer,
		Cards:       card.Sorted(selected),
		Combination: validation.Combination,
	})

	// An emptied hand ends the round at once, pre-empting normal turn
	// advancement.
	if len(player.Hand) == 0 {
		return PlayResult{
			Success:   true,
			State:     endRound(next, next.CurrentPlayer),
			PlayerWon: true,
		}
	}

	next.CurrentPlayer = next.nextSeat()
	if next.shouldResetTrick() {
		next = next.resetTrick()
	}
	return PlayResult{Success: true, State: next}
}

// Pass marks the seat to act as out of the current trick and advances
// the turn. Passing on an empty table is structurally allowed; it
// merely cedes the lead.
func Pass(s *GameState) *GameState {
	next := s.clone()
	next.Players[next.CurrentPlayer].HasPassed = true
	next.PassCount++
	next.appendMove(Move{Kind: MovePass, Seat: next.CurrentPlayer})

	next.CurrentPlayer = next.nextSeat()
	if next.shouldResetTrick() {
		next = next.resetTrick()
	}
	return next
}
