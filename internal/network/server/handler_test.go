package server

import (
	"io"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndquang/thirteen/internal/config"
	"github.com/ndquang/thirteen/internal/network/server/storage"
	"github.com/ndquang/thirteen/internal/protocol"
)

// newTestServer builds a relay with no listener and no redis.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	s := &Server{
		config:   config.Default(),
		log:      log,
		registry: NewRegistry(),
		clients:  make(map[string]*Client),
	}
	s.handler = NewHandler(s)
	return s
}

// newTestClient registers a connectionless client; frames pile up in
// its send queue for the test to inspect.
func newTestClient(s *Server, name string) *Client {
	c := &Client{
		ID:     uuid.New().String(),
		Name:   name,
		server: s,
		send:   make(chan []byte, 256),
	}
	s.registerClient(c)
	return c
}

// recv pops the next queued frame, failing the test when none is there.
func recv(t *testing.T, c *Client) *protocol.Message {
	t.Helper()
	select {
	case data := <-c.send:
		msg, err := protocol.Decode(data)
		require.NoError(t, err)
		return msg
	default:
		t.Fatal("no message queued")
		return nil
	}
}

// drain empties a client's queue.
func drain(c *Client) {
	for {
		select {
		case <-c.send:
		default:
			return
		}
	}
}

func createLobby(t *testing.T, s *Server, c *Client, private bool) *protocol.LobbyJoinedPayload {
	t.Helper()
	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgCreateLobby, protocol.CreateLobbyPayload{
		LobbyName:  c.Name + "'s table",
		PlayerName: c.Name,
		IsPrivate:  private,
	}))
	msg := recv(t, c)
	require.Equal(t, protocol.MsgLobbyJoined, msg.Type)
	payload, err := protocol.ParsePayload[protocol.LobbyJoinedPayload](msg)
	require.NoError(t, err)
	return payload
}

func joinLobby(t *testing.T, s *Server, c *Client, lobbyID string) *protocol.LobbyJoinedPayload {
	t.Helper()
	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgJoinLobby, protocol.JoinLobbyPayload{
		LobbyID:    lobbyID,
		PlayerName: c.Name,
	}))
	msg := recv(t, c)
	require.Equal(t, protocol.MsgLobbyJoined, msg.Type)
	payload, err := protocol.ParsePayload[protocol.LobbyJoinedPayload](msg)
	require.NoError(t, err)
	return payload
}

func TestHandleCreateLobby(t *testing.T) {
	s := newTestServer(t)
	host := newTestClient(s, "alice")

	payload := createLobby(t, s, host, true)
	assert.True(t, payload.IsHost)
	assert.Equal(t, 0, payload.Seat)
	assert.Equal(t, payload.LobbyID, host.GetLobby())

	_, ok := s.registry.Get(payload.LobbyID)
	assert.True(t, ok)
}

func TestHandleJoinLobby(t *testing.T) {
	s := newTestServer(t)
	host := newTestClient(s, "alice")
	guest := newTestClient(s, "bob")

	created := createLobby(t, s, host, true)
	joined := joinLobby(t, s, guest, created.LobbyID)

	assert.False(t, joined.IsHost)
	assert.Equal(t, 1, joined.Seat)

	// Both seats hear about the join.
	for _, c := range []*Client{host, guest} {
		msg := recv(t, c)
		require.Equal(t, protocol.MsgPlayerJoined, msg.Type)
		roster, err := protocol.ParsePayload[protocol.SeatsPayload](msg)
		require.NoError(t, err)
		assert.Equal(t, "bob", roster.PlayerName)
		assert.Equal(t, "bob", roster.Seats[1].Name)
	}
}

func TestHandleJoinUnknownLobby(t *testing.T) {
	s := newTestServer(t)
	c := newTestClient(s, "bob")

	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgJoinLobby, protocol.JoinLobbyPayload{
		LobbyID:    "MISSING",
		PlayerName: "bob",
	}))
	msg := recv(t, c)
	require.Equal(t, protocol.MsgError, msg.Type)
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeLobbyNotFound, payload.Code)
}

func TestHandleJoinDuplicateNameRejected(t *testing.T) {
	s := newTestServer(t)
	host := newTestClient(s, "alice")
	guest := newTestClient(s, "bob")
	impostor := newTestClient(s, "bob")

	created := createLobby(t, s, host, true)
	joined := joinLobby(t, s, guest, created.LobbyID)
	drain(host)
	drain(guest)

	s.handler.Handle(impostor, protocol.MustNewMessage(protocol.MsgJoinLobby, protocol.JoinLobbyPayload{
		LobbyID:    created.LobbyID,
		PlayerName: "bob",
	}))
	msg := recv(t, impostor)
	require.Equal(t, protocol.MsgError, msg.Type)
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeNameTaken, payload.Code)

	// The seated player keeps the seat and the frames keep flowing to it.
	lobby, ok := s.registry.Get(created.LobbyID)
	require.True(t, ok)
	assert.Equal(t, guest.ID, lobby.Seats[joined.Seat].ConnID)
	assert.Empty(t, impostor.GetLobby())
}

func TestHandleJoinTakesOverDeadBinding(t *testing.T) {
	s := newTestServer(t)
	host := newTestClient(s, "alice")
	guest := newTestClient(s, "bob")

	created := createLobby(t, s, host, true)
	joinLobby(t, s, guest, created.LobbyID)
	drain(host)
	drain(guest)

	// The guest's socket dies without the lobby hearing about it.
	s.unregisterClient(guest)

	rejoined := newTestClient(s, "bob")
	payload := joinLobby(t, s, rejoined, created.LobbyID)
	assert.False(t, payload.IsHost)

	lobby, ok := s.registry.Get(created.LobbyID)
	require.True(t, ok)
	assert.Equal(t, rejoined.ID, lobby.Seats[payload.Seat].ConnID)
}

func TestHandleChatFanout(t *testing.T) {
	s := newTestServer(t)
	host := newTestClient(s, "alice")
	guest := newTestClient(s, "bob")

	created := createLobby(t, s, host, true)
	joinLobby(t, s, guest, created.LobbyID)
	drain(host)
	drain(guest)

	s.handler.Handle(guest, protocol.MustNewMessage(protocol.MsgSendChat, protocol.ChatPayload{
		Content: "good luck",
	}))

	for _, c := range []*Client{host, guest} {
		msg := recv(t, c)
		require.Equal(t, protocol.MsgReceiveChat, msg.Type)
		chat, err := protocol.ParsePayload[protocol.ChatPayload](msg)
		require.NoError(t, err)
		assert.Equal(t, "bob", chat.Sender, "relay stamps the sender")
		assert.Equal(t, "good luck", chat.Content)
		assert.NotZero(t, chat.Time)
	}
}

func TestHandleRequestMoveForwardsToHost(t *testing.T) {
	s := newTestServer(t)
	host := newTestClient(s, "alice")
	guest := newTestClient(s, "bob")

	created := createLobby(t, s, host, true)
	joinLobby(t, s, guest, created.LobbyID)
	drain(host)
	drain(guest)

	s.handler.Handle(guest, protocol.MustNewMessage(protocol.MsgRequestMove, protocol.MoveRequestPayload{
		Action: protocol.ActionPass,
		Seat:   1,
	}))

	msg := recv(t, host)
	require.Equal(t, protocol.MsgRequestMove, msg.Type)
	move, err := protocol.ParsePayload[protocol.MoveRequestPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ActionPass, move.Action)
	assert.Equal(t, 1, move.Seat)
}

func TestHandleSyncStateHostOnly(t *testing.T) {
	s := newTestServer(t)
	host := newTestClient(s, "alice")
	guest := newTestClient(s, "bob")

	created := createLobby(t, s, host, true)
	joinLobby(t, s, guest, created.LobbyID)
	drain(host)
	drain(guest)

	// A guest publishing state is rejected.
	s.handler.Handle(guest, protocol.MustNewMessage(protocol.MsgSyncGameState, protocol.SyncStatePayload{
		State: []byte(`{"phase":0}`),
	}))
	msg := recv(t, guest)
	require.Equal(t, protocol.MsgError, msg.Type)
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeNotHost, payload.Code)

	// The host's state fans out to the whole room untouched.
	s.handler.Handle(host, protocol.MustNewMessage(protocol.MsgSyncGameState, protocol.SyncStatePayload{
		State: []byte(`{"phase":1}`),
	}))
	for _, c := range []*Client{host, guest} {
		msg := recv(t, c)
		assert.Equal(t, protocol.MsgSyncGameState, msg.Type)
		sync, err := protocol.ParsePayload[protocol.SyncStatePayload](msg)
		require.NoError(t, err)
		assert.JSONEq(t, `{"phase":1}`, string(sync.State))
	}
}

func TestHandlePing(t *testing.T) {
	s := newTestServer(t)
	c := newTestClient(s, "alice")

	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{Timestamp: 12345}))
	msg := recv(t, c)
	require.Equal(t, protocol.MsgPong, msg.Type)
	pong, err := protocol.ParsePayload[protocol.PongPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), pong.ClientTimestamp)
	assert.NotZero(t, pong.ServerTimestamp)
}

func TestHandleUnknownType(t *testing.T) {
	s := newTestServer(t)
	c := newTestClient(s, "alice")

	s.handler.Handle(c, &protocol.Message{Type: "bogus"})
	msg := recv(t, c)
	require.Equal(t, protocol.MsgError, msg.Type)
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, payload.Code)
}

func TestGuestLeaveRevertsSeat(t *testing.T) {
	s := newTestServer(t)
	host := newTestClient(s, "alice")
	guest := newTestClient(s, "bob")

	created := createLobby(t, s, host, true)
	joinLobby(t, s, guest, created.LobbyID)
	drain(host)
	drain(guest)

	s.handler.Handle(guest, protocol.MustNewMessage(protocol.MsgLeaveLobby, nil))

	assert.Empty(t, guest.GetLobby())
	msg := recv(t, host)
	require.Equal(t, protocol.MsgPlayerLeft, msg.Type)
	roster, err := protocol.ParsePayload[protocol.SeatsPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "bob", roster.PlayerName)
	assert.True(t, roster.Seats[1].IsAI, "vacated seat reverts to AI")
}

func TestHostLeaveClosesLobby(t *testing.T) {
	s := newTestServer(t)
	host := newTestClient(s, "alice")
	guest := newTestClient(s, "bob")

	created := createLobby(t, s, host, true)
	joinLobby(t, s, guest, created.LobbyID)
	drain(host)
	drain(guest)

	s.handleLeave(host, true)

	_, ok := s.registry.Get(created.LobbyID)
	assert.False(t, ok, "lobby is torn down with its host")
	assert.Empty(t, guest.GetLobby())

	msg := recv(t, guest)
	require.Equal(t, protocol.MsgError, msg.Type)
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeLobbyNotFound, payload.Code)
}

func TestHandleReportResult(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	s := newTestServer(t)
	s.wins = storage.NewWinStore(rdb)

	host := newTestClient(s, "alice")
	guest := newTestClient(s, "bob")
	created := createLobby(t, s, host, true)
	joinLobby(t, s, guest, created.LobbyID)
	drain(host)
	drain(guest)

	// Only the host may report.
	s.handler.Handle(guest, protocol.MustNewMessage(protocol.MsgReportResult, protocol.ReportResultPayload{
		WinnerName: "bob",
	}))
	msg := recv(t, guest)
	require.Equal(t, protocol.MsgError, msg.Type)

	s.handler.Handle(host, protocol.MustNewMessage(protocol.MsgReportResult, protocol.ReportResultPayload{
		WinnerName: "alice",
	}))
	for _, c := range []*Client{host, guest} {
		msg := recv(t, c)
		require.Equal(t, protocol.MsgLeaderboard, msg.Type)
		board, err := protocol.ParsePayload[protocol.LeaderboardPayload](msg)
		require.NoError(t, err)
		require.Len(t, board.Entries, 1)
		assert.Equal(t, "alice", board.Entries[0].Name)
		assert.Equal(t, 1, board.Entries[0].Wins)
	}
}

func TestHandlePublicLobbies(t *testing.T) {
	s := newTestServer(t)
	host := newTestClient(s, "alice")
	browser := newTestClient(s, "bob")

	createLobby(t, s, host, false)

	s.handler.Handle(browser, protocol.MustNewMessage(protocol.MsgGetPublicLobbies, nil))
	msg := recv(t, browser)
	require.Equal(t, protocol.MsgPublicLobbies, msg.Type)
	payload, err := protocol.ParsePayload[protocol.PublicLobbiesPayload](msg)
	require.NoError(t, err)
	require.Len(t, payload.Lobbies, 1)
	assert.Equal(t, "alice", payload.Lobbies[0].Host)
}
