package engine

import (
	"github.com/ndquang/thirteen/internal/game/card"
	"github.com/ndquang/thirteen/internal/game/combo"
)

// MoveKind is the closed set of audit-log event kinds. The engine only
// appends these; presentation layers match on them exhaustively for log
// lines and sound triggers.
type MoveKind int

const (
	MovePlay MoveKind = iota
	MovePass
	MoveTrickReset
	MoveRoundEnd
	MoveNewRound
)

var moveKindNames = map[MoveKind]string{
	MovePlay:       "PLAY",
	MovePass:       "PASS",
	MoveTrickReset: "ROUND_RESET",
	MoveRoundEnd:   "ROUND_END",
	MoveNewRound:   "NEW_ROUND",
}

func (k MoveKind) String() string {
	if name, ok := moveKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// SeatScore is a scoring snapshot attached to round-end records.
type SeatScore struct {
	Seat       int  `json:"seat"`
	Score      int  `json:"score"`
	Eliminated bool `json:"eliminated"`
}

// Move is one history record. Which fields are meaningful depends on
// Kind: Seat and Cards/Combination for plays, Seat for passes, Leader
// for trick resets, Winner and Scores for round ends, Round and Dealer
// for new rounds.
type Move struct {
	Kind        MoveKind           `json:"kind"`
	Seat        int                `json:"seat,omitempty"`
	Cards       []card.Card        `json:"cards,omitempty"`
	Combination *combo.Combination `json:"combination,omitempty"`
	Leader      int                `json:"leader,omitempty"`
	Winner      int                `json:"winner,omitempty"`
	Scores      []SeatScore        `json:"scores,omitempty"`
	Round       int                `json:"round,omitempty"`
	Dealer      int                `json:"dealer,omitempty"`
}

func (s *GameState) appendMove(m Move) {
	s.History = append(s.History, m)
}
