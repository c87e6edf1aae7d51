package client

import (
	"encoding/json"
	"time"

	"github.com/ndquang/thirteen/internal/protocol"
)

// --- Convenience senders ---

// CreateLobby asks the relay to open a session with us as host.
func (c *Client) CreateLobby(lobbyName string, isPrivate bool) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgCreateLobby, protocol.CreateLobbyPayload{
		LobbyName:  lobbyName,
		PlayerName: c.PlayerName,
		IsPrivate:  isPrivate,
	}))
}

// JoinLobby claims a seat in an existing session.
func (c *Client) JoinLobby(lobbyID string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgJoinLobby, protocol.JoinLobbyPayload{
		LobbyID:    lobbyID,
		PlayerName: c.PlayerName,
	}))
}

// LeaveLobby gives the seat back to an AI.
func (c *Client) LeaveLobby() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgLeaveLobby, nil))
}

// GetPublicLobbies refreshes the lobby browser.
func (c *Client) GetPublicLobbies() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgGetPublicLobbies, nil))
}

// SendChat posts a chat line to the room.
func (c *Client) SendChat(content string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgSendChat, protocol.ChatPayload{
		Content: content,
	}))
}

// RequestMove asks the host to apply a play or pass for our seat.
func (c *Client) RequestMove(action protocol.MoveAction, seat int, cards []protocol.CardInfo) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgRequestMove, protocol.MoveRequestPayload{
		Action: action,
		Seat:   seat,
		Cards:  cards,
	}))
}

// SendInitialState publishes the host's opening state to the room.
func (c *Client) SendInitialState(state json.RawMessage) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgSendInitialState, protocol.SyncStatePayload{
		State: state,
	}))
}

// SyncState publishes the host's current state to the room.
func (c *Client) SyncState(state json.RawMessage) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgSyncGameState, protocol.SyncStatePayload{
		State: state,
	}))
}

// ReportResult records the finished game's winner in the win tally.
func (c *Client) ReportResult(winnerName string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgReportResult, protocol.ReportResultPayload{
		WinnerName: winnerName,
	}))
}

// Ping sends a latency probe.
func (c *Client) Ping() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}
