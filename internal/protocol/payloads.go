package protocol

import "encoding/json"

// --- Client request payloads ---

// CreateLobbyPayload opens a new session. Private lobbies get a short
// code; public ones are listed in the lobby browser.
type CreateLobbyPayload struct {
	LobbyName  string `json:"lobbyName"`
	PlayerName string `json:"playerName"`
	IsPrivate  bool   `json:"isPrivate"`
}

// JoinLobbyPayload attaches a player to an existing session. Joining
// with a name already seated re-binds that seat only when its previous
// connection is gone; a live duplicate is rejected.
type JoinLobbyPayload struct {
	LobbyID    string `json:"lobbyId"`
	PlayerName string `json:"playerName"`
}

// MoveAction is the closed set of actions a seat may request.
type MoveAction string

const (
	ActionPlay MoveAction = "play"
	ActionPass MoveAction = "pass"
)

// MoveRequestPayload is a non-host participant's intent. Only the host
// applies it, and only after running it through the same validator used
// for local plays.
type MoveRequestPayload struct {
	Action MoveAction `json:"action"`
	Seat   int        `json:"seat"`
	Cards  []CardInfo `json:"cards,omitempty"`
}

// SyncStatePayload carries the host's full GameState. The relay treats
// it as opaque bytes; only host and replicas interpret it.
type SyncStatePayload struct {
	State json.RawMessage `json:"state"`
}

// ChatPayload is a chat line. Chat never touches game state.
type ChatPayload struct {
	Sender  string `json:"sender,omitempty"` // filled by the relay
	Content string `json:"content"`
	Time    int64  `json:"time,omitempty"` // unix millis, filled by the relay
}

// ReportResultPayload records a finished game's winner by name.
type ReportResultPayload struct {
	WinnerName string `json:"winnerName"`
}

// PingPayload / PongPayload carry the keepalive timestamps.
type PingPayload struct {
	Timestamp int64 `json:"timestamp"`
}

type PongPayload struct {
	ClientTimestamp int64 `json:"clientTimestamp"`
	ServerTimestamp int64 `json:"serverTimestamp"`
}

// --- Relay response payloads ---

// LobbyJoinedPayload confirms a create or join to the requester.
type LobbyJoinedPayload struct {
	LobbyID string `json:"lobbyId"`
	IsHost  bool   `json:"isHost"`
	Seat    int    `json:"seat"`
}

// LobbySummary is one row of the public lobby browser.
type LobbySummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Host    string `json:"host"`
	Current int    `json:"current"`
	Max     int    `json:"max"`
}

// PublicLobbiesPayload lists the joinable public lobbies.
type PublicLobbiesPayload struct {
	Lobbies []LobbySummary `json:"lobbies"`
}

// SeatInfo describes one seat of a lobby roster.
type SeatInfo struct {
	Seat      int    `json:"seat"`
	Name      string `json:"name"`
	IsAI      bool   `json:"isAI"`
	Connected bool   `json:"connected"`
}

// SeatsPayload announces a roster change (join or leave) to the room.
// The host additionally reconciles AI/human occupancy from it.
type SeatsPayload struct {
	Seats      []SeatInfo `json:"seats"`
	PlayerName string     `json:"playerName"` // who joined or left
}

// WinEntry is one leaderboard row.
type WinEntry struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

// LeaderboardPayload is the relay's win tally.
type LeaderboardPayload struct {
	Entries []WinEntry `json:"entries"`
}

// ErrorPayload reports a session-level failure to one requester.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CardInfo is a card on the wire.
type CardInfo struct {
	Rank int `json:"rank"`
	Suit int `json:"suit"`
}
