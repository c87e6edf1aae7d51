package server

import (
	"context"
	"errors"
	"time"

	"github.com/ndquang/thirteen/internal/apperrors"
	"github.com/ndquang/thirteen/internal/protocol"
)

const leaderboardSize = 10

// Handler dispatches decoded frames. Every branch either answers the
// requester or fans out to the requester's lobby; game semantics never
// live here.
type Handler struct {
	server *Server
}

// NewHandler builds the dispatch table owner.
func NewHandler(s *Server) *Handler {
	return &Handler{server: s}
}

// Handle routes one frame from one connection.
func (h *Handler) Handle(c *Client, msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgCreateLobby:
		h.handleCreateLobby(c, msg)
	case protocol.MsgJoinLobby:
		h.handleJoinLobby(c, msg)
	case protocol.MsgLeaveLobby:
		h.server.handleLeave(c, false)
	case protocol.MsgGetPublicLobbies:
		h.handlePublicLobbies(c)
	case protocol.MsgSendChat:
		h.handleChat(c, msg)
	case protocol.MsgRequestMove:
		h.handleRequestMove(c, msg)
	case protocol.MsgSendInitialState, protocol.MsgSyncGameState:
		h.handleSyncState(c, msg)
	case protocol.MsgReportResult:
		h.handleReportResult(c, msg)
	case protocol.MsgPing:
		h.handlePing(c, msg)
	default:
		c.log().WithField("type", msg.Type).Warn("unknown message type")
		c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
	}
}

func (h *Handler) handleCreateLobby(c *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.CreateLobbyPayload](msg)
	if err != nil {
		c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	if payload.PlayerName != "" {
		c.Name = payload.PlayerName
	}

	// One lobby per connection: creating while seated leaves first.
	if c.GetLobby() != "" {
		h.server.handleLeave(c, false)
	}

	lobby := h.server.registry.Create(payload.LobbyName, c.Name, c.ID, payload.IsPrivate)
	c.SetLobby(lobby.ID)
	c.log().WithField("lobby", lobby.ID).Info("lobby created")

	c.SendMessage(protocol.MustNewMessage(protocol.MsgLobbyJoined, protocol.LobbyJoinedPayload{
		LobbyID: lobby.ID,
		IsHost:  true,
		Seat:    0,
	}))
}

func (h *Handler) handleJoinLobby(c *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinLobbyPayload](msg)
	if err != nil {
		c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	if payload.PlayerName != "" {
		c.Name = payload.PlayerName
	}

	lobby, ok := h.server.registry.Get(payload.LobbyID)
	if !ok {
		c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeLobbyNotFound))
		return
	}

	seat, err := lobby.Join(c.Name, c.ID)
	if errors.Is(err, apperrors.ErrNameTaken) {
		// The name holder's socket may have died without the read pump
		// noticing yet. A dead binding is vacated; a live one is a
		// genuine duplicate.
		if bound := lobby.ConnIDForName(c.Name); bound != "" && h.server.clientByID(bound) == nil {
			lobby.DropConn(bound)
			seat, err = lobby.Join(c.Name, c.ID)
		}
	}
	if err != nil {
		code := protocol.ErrCodeLobbyFull
		var sessErr *apperrors.SessionError
		if errors.As(err, &sessErr) {
			code = sessErr.Code
		}
		c.SendMessage(protocol.NewErrorMessage(code))
		return
	}
	c.SetLobby(lobby.ID)
	c.log().WithField("lobby", lobby.ID).Info("joined lobby")

	c.SendMessage(protocol.MustNewMessage(protocol.MsgLobbyJoined, protocol.LobbyJoinedPayload{
		LobbyID: lobby.ID,
		IsHost:  lobby.IsHost(c.ID),
		Seat:    seat,
	}))

	h.server.broadcastToLobby(lobby, protocol.MustNewMessage(protocol.MsgPlayerJoined, protocol.SeatsPayload{
		Seats:      lobby.Roster(),
		PlayerName: c.Name,
	}))
}

func (h *Handler) handlePublicLobbies(c *Client) {
	c.SendMessage(protocol.MustNewMessage(protocol.MsgPublicLobbies, protocol.PublicLobbiesPayload{
		Lobbies: h.server.registry.PublicLobbies(),
	}))
}

func (h *Handler) handleChat(c *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ChatPayload](msg)
	if err != nil {
		c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	lobby, ok := h.lobbyOf(c)
	if !ok {
		return
	}
	payload.Sender = c.Name
	payload.Time = time.Now().UnixMilli()
	h.server.broadcastToLobby(lobby, protocol.MustNewMessage(protocol.MsgReceiveChat, payload))
}

// handleRequestMove forwards a seat's intent to the host connection
// untouched. The host validates; the relay only routes.
func (h *Handler) handleRequestMove(c *Client, msg *protocol.Message) {
	lobby, ok := h.lobbyOf(c)
	if !ok {
		return
	}

	host := h.server.clientByID(lobby.HostConnID)
	if host == nil {
		c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeRejected))
		return
	}
	host.SendMessage(msg)
}

// handleSyncState fans the host's authoritative state out to the whole
// room. Only the host may publish state.
func (h *Handler) handleSyncState(c *Client, msg *protocol.Message) {
	lobby, ok := h.lobbyOf(c)
	if !ok {
		return
	}
	if !lobby.IsHost(c.ID) {
		c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotHost))
		return
	}
	h.server.broadcastToLobby(lobby, msg)
}

func (h *Handler) handleReportResult(c *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ReportResultPayload](msg)
	if err != nil {
		c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	lobby, ok := h.lobbyOf(c)
	if !ok {
		return
	}
	if !lobby.IsHost(c.ID) {
		c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotHost))
		return
	}
	if h.server.wins == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := h.server.wins.RecordWin(ctx, payload.WinnerName); err != nil {
		c.log().WithError(err).Warn("record win failed")
		return
	}

	top, err := h.server.wins.Top(ctx, leaderboardSize)
	if err != nil {
		c.log().WithError(err).Warn("leaderboard fetch failed")
		return
	}
	entries := make([]protocol.WinEntry, len(top))
	for i, e := range top {
		entries[i] = protocol.WinEntry{Name: e.Name, Wins: int(e.Wins)}
	}
	h.server.broadcastToLobby(lobby, protocol.MustNewMessage(protocol.MsgLeaderboard, protocol.LeaderboardPayload{
		Entries: entries,
	}))
}

func (h *Handler) handlePing(c *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	c.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// lobbyOf resolves the requester's lobby, answering with a session
// error when it has none.
func (h *Handler) lobbyOf(c *Client) (*Lobby, bool) {
	id := c.GetLobby()
	if id == "" {
		c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotInLobby))
		return nil, false
	}
	lobby, ok := h.server.registry.Get(id)
	if !ok {
		c.SetLobby("")
		c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeLobbyNotFound))
		return nil, false
	}
	return lobby, true
}
