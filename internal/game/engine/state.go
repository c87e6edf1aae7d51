// Package engine owns the Thirteen round/turn state machine, scoring,
// and elimination. GameState is an immutable value: every transition
// returns a fresh state and never mutates its receiver, which is what
// makes the host's broadcast-the-whole-state replication correct
// without any diff or merge step.
package engine

import (
	"github.com/ndquang/thirteen/internal/game/card"
	"github.com/ndquang/thirteen/internal/game/combo"
)

// Tournament scoring thresholds.
const (
	// EliminationScore knocks a player out of the tournament.
	EliminationScore = 25
	// PenaltyThreshold doubles the end-of-round penalty when a loser
	// still holds this many cards or more.
	PenaltyThreshold = 10
)

// NoSeat marks "no player" in seat-index fields.
const NoSeat = -1

// PlayerType distinguishes humans from computer seats.
type PlayerType int

const (
	Human PlayerType = iota
	AI
)

func (t PlayerType) String() string {
	if t == Human {
		return "HUMAN"
	}
	return "AI"
}

// Phase is the coarse state of the game.
type Phase int

const (
	Playing Phase = iota
	RoundEnd
	GameOver
)

var phaseNames = map[Phase]string{
	Playing:  "PLAYING",
	RoundEnd: "ROUND_END",
	GameOver: "GAME_OVER",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// Player is one of the four fixed seats. Eliminated is monotonic: once
// set it is never cleared. HasPassed resets whenever the trick clears
// or a new round deals.
type Player struct {
	Seat       int                `json:"seat"`
	Name       string             `json:"name"`
	Type       PlayerType         `json:"type"`
	Hand       []card.Card        `json:"hand"`
	Score      int                `json:"score"`
	Eliminated bool               `json:"eliminated"`
	HasPassed  bool               `json:"hasPassed"`
	LastPlay   *combo.Combination `json:"lastPlay,omitempty"`
}

// GameState is the aggregate root. Exactly one instance is
// authoritative at a time; networked replicas are replaced wholesale on
// every broadcast.
type GameState struct {
	Players       []Player           `json:"players"` // always card.NumPlayers entries
	CurrentPlayer int                `json:"currentPlayer"`
	DealerSeat    int                `json:"dealerSeat"`
	CurrentPlay   *combo.Combination `json:"currentPlay,omitempty"`
	LastPlayedBy  int                `json:"lastPlayedBy"` // NoSeat when the table is clear
	RoundNumber   int                `json:"roundNumber"`
	Phase         Phase              `json:"phase"`
	PassCount     int                `json:"passCount"`
	History       []Move             `json:"history"` // append-only; never read back by the engine
}

// Seat describes one seat's occupant at game creation.
type Seat struct {
	Name string
	Type PlayerType
}

// DefaultSeats is the solo configuration: the human at seat 0 against
// three computer opponents.
func DefaultSeats() []Seat {
	return []Seat{
		{Name: "You", Type: Human},
		{Name: "CPU 1", Type: AI},
		{Name: "CPU 2", Type: AI},
		{Name: "CPU 3", Type: AI},
	}
}

// NewGameState creates the state for a fresh game from dealt hands.
// startingSeat leads the first trick; the dealer sits to its right.
func NewGameState(hands [][]card.Card, startingSeat int, seats []Seat) *GameState {
	players := make([]Player, card.NumPlayers)
	for i := range players {
		players[i] = Player{
			Seat: i,
			Name: seats[i].Name,
			Type: seats[i].Type,
			Hand: card.Sorted(hands[i]),
		}
	}
	return &GameState{
		Players:       players,
		CurrentPlayer: startingSeat,
		DealerSeat:    (startingSeat - 1 + card.NumPlayers) % card.NumPlayers,
		LastPlayedBy:  NoSeat,
		RoundNumber:   1,
		Phase:         Playing,
	}
}

// clone makes the copy every transition starts from. Hands are copied;
// combination values are immutable once built and may be shared.
func (s *GameState) clone() *GameState {
	next := *s
	next.Players = make([]Player, len(s.Players))
	copy(next.Players, s.Players)
	for i := range next.Players {
		next.Players[i].Hand = append([]card.Card(nil), s.Players[i].Hand...)
	}
	next.History = s.History[:len(s.History):len(s.History)]
	return &next
}

// IsHumanTurn reports whether the seat to act is a live human.
func (s *GameState) IsHumanTurn() bool {
	p := &s.Players[s.CurrentPlayer]
	return p.Type == Human && !p.Eliminated
}

// ActiveSeats returns the seats still in the tournament.
func (s *GameState) ActiveSeats() []int {
	var seats []int
	for i := range s.Players {
		if !s.Players[i].Eliminated {
			seats = append(seats, i)
		}
	}
	return seats
}

// Winner returns the sole surviving player once the game is over, nil
// otherwise.
func (s *GameState) Winner() *Player {
	if s.Phase != GameOver {
		return nil
	}
	active := s.ActiveSeats()
	if len(active) != 1 {
		return nil
	}
	return &s.Players[active[0]]
}
