package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndquang/thirteen/internal/apperrors"
	"github.com/ndquang/thirteen/internal/game/card"
)

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry()
	lobby := r.Create("Friday game", "alice", "conn-1", true)

	assert.Len(t, lobby.ID, lobbyCodeLength)
	assert.Equal(t, "alice", lobby.Seats[0].Name)
	assert.False(t, lobby.Seats[0].IsAI)
	for i := 1; i < card.NumPlayers; i++ {
		assert.True(t, lobby.Seats[i].IsAI, "seat %d should start as AI", i)
	}
	assert.True(t, lobby.IsHost("conn-1"))

	got, ok := r.Get(lobby.ID)
	require.True(t, ok)
	assert.Same(t, lobby, got)
}

func TestPublicLobbyCodePrefix(t *testing.T) {
	r := NewRegistry()
	public := r.Create("open", "bob", "c1", false)
	private := r.Create("closed", "eve", "c2", true)

	assert.Contains(t, public.ID, publicPrefix)
	assert.NotContains(t, private.ID, publicPrefix)
}

func TestLobbyJoinClaimsFirstAISeat(t *testing.T) {
	r := NewRegistry()
	lobby := r.Create("table", "host", "c0", true)

	seat, err := lobby.Join("guest", "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, seat)
	assert.Equal(t, "guest", lobby.Seats[1].Name)
	assert.False(t, lobby.Seats[1].IsAI)
}

func TestLobbyJoinFull(t *testing.T) {
	r := NewRegistry()
	lobby := r.Create("table", "host", "c0", true)

	for i, name := range []string{"p1", "p2", "p3"} {
		seat, err := lobby.Join(name, "conn-"+name)
		require.NoError(t, err)
		assert.Equal(t, i+1, seat)
	}
	_, err := lobby.Join("p4", "conn-p4")
	assert.ErrorIs(t, err, apperrors.ErrLobbyFull)
}

func TestLobbyRejoinByNameRebindsSeat(t *testing.T) {
	r := NewRegistry()
	lobby := r.Create("table", "host", "c0", true)
	seat, err := lobby.Join("guest", "c1")
	require.NoError(t, err)

	// The guest drops and comes back on a new connection.
	droppedSeat, name := lobby.DropConn("c1")
	assert.Equal(t, seat, droppedSeat)
	assert.Equal(t, "guest", name)
	assert.True(t, lobby.Seats[seat].IsAI, "vacated seat reverts to AI")

	again, err := lobby.Join("guest", "c9")
	require.NoError(t, err)
	assert.Equal(t, seat, again, "rejoin lands on the first free AI seat")
	assert.Equal(t, "c9", lobby.Seats[again].ConnID)
}

func TestLobbyJoinDuplicateNameRejected(t *testing.T) {
	r := NewRegistry()
	lobby := r.Create("table", "host", "c0", true)
	seat, err := lobby.Join("guest", "c1")
	require.NoError(t, err)

	_, err = lobby.Join("guest", "c2")
	assert.ErrorIs(t, err, apperrors.ErrNameTaken)
	assert.Equal(t, "c1", lobby.Seats[seat].ConnID, "seated connection keeps its seat")
	assert.Equal(t, "c1", lobby.ConnIDForName("guest"))
}

func TestLobbyJoinRebindsVacatedBinding(t *testing.T) {
	r := NewRegistry()
	lobby := r.Create("table", "host", "c0", true)
	seat, err := lobby.Join("guest", "c1")
	require.NoError(t, err)

	// The binding is gone but the seat still carries the name.
	lobby.Seats[seat].ConnID = ""

	again, err := lobby.Join("guest", "c2")
	require.NoError(t, err)
	assert.Equal(t, seat, again)
	assert.Equal(t, "c2", lobby.Seats[again].ConnID)
}

func TestLobbyDropUnknownConn(t *testing.T) {
	r := NewRegistry()
	lobby := r.Create("table", "host", "c0", true)

	seat, name := lobby.DropConn("nope")
	assert.Equal(t, -1, seat)
	assert.Empty(t, name)
}

func TestPublicLobbies(t *testing.T) {
	r := NewRegistry()
	r.Create("open", "bob", "c1", false)
	r.Create("closed", "eve", "c2", true)

	listed := r.PublicLobbies()
	require.Len(t, listed, 1)
	assert.Equal(t, "open", listed[0].Name)
	assert.Equal(t, "bob", listed[0].Host)
	assert.Equal(t, 1, listed[0].Current)
	assert.Equal(t, card.NumPlayers, listed[0].Max)
}

func TestCleanupIdle(t *testing.T) {
	r := NewRegistry()
	stale := r.Create("stale", "gone", "c1", true)
	stale.CreatedAt = time.Now().Add(-time.Hour)
	stale.DropConn("c1")

	fresh := r.Create("fresh", "here", "c2", true)

	occupied := r.Create("occupied", "still", "c3", true)
	occupied.CreatedAt = time.Now().Add(-time.Hour)

	removed := r.CleanupIdle(30 * time.Minute)
	assert.Equal(t, []string{stale.ID}, removed)

	_, ok := r.Get(fresh.ID)
	assert.True(t, ok)
	_, ok = r.Get(occupied.ID)
	assert.True(t, ok, "old lobby with a connected human stays")
}

func TestRoster(t *testing.T) {
	r := NewRegistry()
	lobby := r.Create("table", "host", "c0", true)
	_, err := lobby.Join("guest", "c1")
	require.NoError(t, err)

	roster := lobby.Roster()
	require.Len(t, roster, card.NumPlayers)
	assert.Equal(t, "host", roster[0].Name)
	assert.True(t, roster[0].Connected)
	assert.Equal(t, "guest", roster[1].Name)
	assert.False(t, roster[1].IsAI)
	assert.True(t, roster[2].IsAI)
	assert.False(t, roster[2].Connected)
}
