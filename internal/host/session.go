// Package host runs the authoritative game session. Exactly one
// process per game is the host: it holds the real GameState, applies
// every action through the engine (its own, the AIs', and remote
// seats' forwarded intents), and replaces every replica wholesale
// after each transition. In solo play the same session runs without a
// relay attached.
package host

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ndquang/thirteen/internal/game/ai"
	"github.com/ndquang/thirteen/internal/game/card"
	"github.com/ndquang/thirteen/internal/game/engine"
	"github.com/ndquang/thirteen/internal/network/client"
	"github.com/ndquang/thirteen/internal/protocol"
	"github.com/ndquang/thirteen/internal/protocol/convert"
)

const (
	defaultAIDelay    = 900 * time.Millisecond
	defaultRoundDelay = 4 * time.Second
)

var (
	ErrNotStarted  = errors.New("game not started")
	ErrNotPlaying  = errors.New("round is not in progress")
	ErrNotYourTurn = errors.New("not your turn")
)

// Session is the authoritative game loop.
type Session struct {
	// OnState fires after every committed transition, including the
	// initial deal. It must not call back into the session.
	OnState func(*engine.GameState)

	relay *client.Client // nil in solo play
	seats []engine.Seat

	aiDelay    time.Duration
	roundDelay time.Duration

	mu          sync.Mutex
	state       *engine.GameState
	gen         int // bumped on every commit; stale timers check it
	initialSent bool
	reported    bool
	closed      bool
}

// NewSession builds a session for the given roster. relay may be nil
// for solo play.
func NewSession(relay *client.Client, seats []engine.Seat) *Session {
	return &Session{
		relay:      relay,
		seats:      seats,
		aiDelay:    defaultAIDelay,
		roundDelay: defaultRoundDelay,
	}
}

// SetDelays overrides the AI think time and the pause between rounds.
// Tests set both to zero.
func (h *Session) SetDelays(aiDelay, roundDelay time.Duration) {
	h.aiDelay = aiDelay
	h.roundDelay = roundDelay
}

// Start deals the first round and publishes the opening state. The
// leading seat is drawn at random; the dealer sits to its right.
func (h *Session) Start() {
	h.mu.Lock()
	state := engine.NewGameState(card.DealHands(), rand.IntN(card.NumPlayers), h.seats)
	h.commitLocked(state)
	gen := h.gen
	h.mu.Unlock()

	h.publish(state)
	h.scheduleFollowUp(state, gen)
}

// Stop invalidates all pending timers.
func (h *Session) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.gen++
}

// State returns the current authoritative state.
func (h *Session) State() *engine.GameState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Play applies a play for the given seat. The seat must hold the turn;
// the selection goes through the same validator as every other play.
func (h *Session) Play(seat int, cards []card.Card) error {
	h.mu.Lock()
	if err := h.checkTurnLocked(seat); err != nil {
		h.mu.Unlock()
		return err
	}

	result := engine.PlayCards(h.state, cards)
	if !result.Success {
		h.mu.Unlock()
		return errors.New(result.Reason)
	}
	h.commitLocked(result.State)
	state, gen := h.state, h.gen
	h.mu.Unlock()

	h.publish(state)
	h.scheduleFollowUp(state, gen)
	return nil
}

// Pass cedes the given seat's turn.
func (h *Session) Pass(seat int) error {
	h.mu.Lock()
	if err := h.checkTurnLocked(seat); err != nil {
		h.mu.Unlock()
		return err
	}

	h.commitLocked(engine.Pass(h.state))
	state, gen := h.state, h.gen
	h.mu.Unlock()

	h.publish(state)
	h.scheduleFollowUp(state, gen)
	return nil
}

// HandleMoveRequest applies a remote seat's forwarded intent. Requests
// that lost the race (stale state, out of turn) are dropped silently:
// the next broadcast corrects the sender's replica anyway.
func (h *Session) HandleMoveRequest(req *protocol.MoveRequestPayload) {
	switch req.Action {
	case protocol.ActionPlay:
		_ = h.Play(req.Seat, convert.InfosToCards(req.Cards))
	case protocol.ActionPass:
		_ = h.Pass(req.Seat)
	}
}

// Reconcile aligns seat occupants with the lobby roster: a human
// claiming an AI seat takes it over mid-game, a leaver's seat reverts
// to the computer. The seat's hand and score are unaffected.
func (h *Session) Reconcile(roster []protocol.SeatInfo) {
	h.mu.Lock()
	if h.state == nil {
		h.mu.Unlock()
		return
	}

	state := h.state
	changed := false
	for _, info := range roster {
		if info.Seat < 0 || info.Seat >= card.NumPlayers {
			continue
		}
		want := engine.Human
		if info.IsAI {
			want = engine.AI
		}
		p := state.Players[info.Seat]
		if p.Name != info.Name || p.Type != want {
			state = engine.SetSeatOccupant(state, info.Seat, info.Name, want)
			changed = true
		}
	}
	if !changed {
		h.mu.Unlock()
		return
	}

	h.commitLocked(state)
	gen := h.gen
	h.mu.Unlock()

	h.publish(state)
	// A seat that just reverted to AI may already hold the turn.
	h.scheduleFollowUp(state, gen)
}

func (h *Session) checkTurnLocked(seat int) error {
	if h.state == nil {
		return ErrNotStarted
	}
	if h.state.Phase != engine.Playing {
		return ErrNotPlaying
	}
	if h.state.CurrentPlayer != seat {
		return ErrNotYourTurn
	}
	return nil
}

func (h *Session) commitLocked(next *engine.GameState) {
	h.state = next
	h.gen++
}

// publish hands the committed state to the local UI and, when hosting
// online, to the relay for fan-out.
func (h *Session) publish(state *engine.GameState) {
	if h.OnState != nil {
		h.OnState(state)
	}
	if h.relay == nil {
		return
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return
	}
	h.mu.Lock()
	first := !h.initialSent
	h.initialSent = true
	h.mu.Unlock()

	if first {
		_ = h.relay.SendInitialState(raw)
	} else {
		_ = h.relay.SyncState(raw)
	}
}

// scheduleFollowUp arms whatever the committed state implies next: an
// AI turn, the inter-round pause, or the end-of-game report. The
// generation check voids the timer if anything else commits first.
func (h *Session) scheduleFollowUp(state *engine.GameState, gen int) {
	switch state.Phase {
	case engine.Playing:
		acting := &state.Players[state.CurrentPlayer]
		if acting.Type == engine.AI && !acting.Eliminated {
			time.AfterFunc(h.aiDelay, func() { h.aiStep(gen) })
		}

	case engine.RoundEnd:
		time.AfterFunc(h.roundDelay, func() { h.nextRound(gen) })

	case engine.GameOver:
		h.reportResult(state)
	}
}

// aiStep runs one computer turn. The decision is advisory: it goes
// through the engine like any play, and a rejected selection falls
// back to a pass so the game can never stall.
func (h *Session) aiStep(gen int) {
	h.mu.Lock()
	if h.closed || gen != h.gen || h.state.Phase != engine.Playing {
		h.mu.Unlock()
		return
	}

	state := h.state
	acting := &state.Players[state.CurrentPlayer]
	if acting.Type != engine.AI || acting.Eliminated {
		h.mu.Unlock()
		return
	}

	decision := ai.Decide(acting, state.CurrentPlay, state)
	var next *engine.GameState
	if decision.Action == ai.Play {
		result := engine.PlayCards(state, decision.Cards)
		if result.Success {
			next = result.State
		}
	}
	if next == nil {
		next = engine.Pass(state)
	}

	h.commitLocked(next)
	nextGen := h.gen
	h.mu.Unlock()

	h.publish(next)
	h.scheduleFollowUp(next, nextGen)
}

// nextRound deals the following round after the score pause.
func (h *Session) nextRound(gen int) {
	h.mu.Lock()
	if h.closed || gen != h.gen || h.state.Phase != engine.RoundEnd {
		h.mu.Unlock()
		return
	}

	next := engine.StartNextRound(h.state, card.DealHands())
	h.commitLocked(next)
	nextGen := h.gen
	h.mu.Unlock()

	h.publish(next)
	h.scheduleFollowUp(next, nextGen)
}

// reportResult records the champion in the relay's win tally, once.
func (h *Session) reportResult(state *engine.GameState) {
	winner := state.Winner()
	if winner == nil || h.relay == nil {
		return
	}

	h.mu.Lock()
	done := h.reported
	h.reported = true
	h.mu.Unlock()
	if !done {
		_ = h.relay.ReportResult(winner.Name)
	}
}
