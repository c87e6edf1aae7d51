package server

import (
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/ndquang/thirteen/internal/apperrors"
	"github.com/ndquang/thirteen/internal/game/card"
	"github.com/ndquang/thirteen/internal/protocol"
)

const (
	lobbyCodeLength = 6
	lobbyCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	publicPrefix    = "PUB-"
)

// Seat is one chair of a lobby roster. An AI seat belongs to the host's
// process; a human seat is bound to a connection id.
type Seat struct {
	Name      string
	IsAI      bool
	ConnID    string // empty for AI seats and disconnected humans
}

// Lobby is one session: a fixed four-seat roster plus routing metadata.
// The relay never inspects the game state flowing through it.
type Lobby struct {
	ID         string
	Name       string
	IsPrivate  bool
	HostConnID string
	HostName   string
	Seats      [card.NumPlayers]Seat
	CreatedAt  time.Time

	mu sync.RWMutex
}

// Registry owns every live lobby. It is created at server start and
// passed to the connection layer by handle, never reached as a global.
type Registry struct {
	lobbies map[string]*Lobby
	mu      sync.RWMutex
}

// NewRegistry returns an empty lobby registry.
func NewRegistry() *Registry {
	return &Registry{lobbies: make(map[string]*Lobby)}
}

// Create opens a lobby with the creator as host in seat 0 and AI
// placeholders everywhere else.
func (r *Registry) Create(lobbyName, playerName, connID string, isPrivate bool) *Lobby {
	r.mu.Lock()
	defer r.mu.Unlock()

	lobby := &Lobby{
		ID:         r.generateCode(isPrivate),
		Name:       lobbyName,
		IsPrivate:  isPrivate,
		HostConnID: connID,
		HostName:   playerName,
		CreatedAt:  time.Now(),
	}
	lobby.Seats[0] = Seat{Name: playerName, ConnID: connID}
	for i := 1; i < card.NumPlayers; i++ {
		lobby.Seats[i] = aiSeat(i)
	}
	r.lobbies[lobby.ID] = lobby
	return lobby
}

// Get looks a lobby up by id.
func (r *Registry) Get(id string) (*Lobby, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lobby, ok := r.lobbies[id]
	return lobby, ok
}

// Remove drops a lobby from the registry.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lobbies, id)
}

// PublicLobbies summarizes the joinable public lobbies for the browser.
func (r *Registry) PublicLobbies() []protocol.LobbySummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]protocol.LobbySummary, 0, len(r.lobbies))
	for _, lobby := range r.lobbies {
		if lobby.IsPrivate {
			continue
		}
		summaries = append(summaries, protocol.LobbySummary{
			ID:      lobby.ID,
			Name:    lobby.Name,
			Host:    lobby.HostName,
			Current: lobby.HumanCount(),
			Max:     card.NumPlayers,
		})
	}
	return summaries
}

// CleanupIdle removes lobbies older than maxAge with no connected
// humans. Returns the ids removed.
func (r *Registry) CleanupIdle(maxAge time.Duration) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []string
	for id, lobby := range r.lobbies {
		if time.Since(lobby.CreatedAt) > maxAge && lobby.HumanCount() == 0 {
			delete(r.lobbies, id)
			removed = append(removed, id)
		}
	}
	return removed
}

// generateCode builds an unused lobby code: 6 characters for private
// lobbies, a namespaced legible code for public ones.
func (r *Registry) generateCode(isPrivate bool) string {
	for {
		buf := make([]byte, lobbyCodeLength)
		for i := range buf {
			buf[i] = lobbyCodeChars[rand.IntN(len(lobbyCodeChars))]
		}
		code := string(buf)
		if !isPrivate {
			code = publicPrefix + code
		}
		if _, taken := r.lobbies[code]; !taken {
			return code
		}
	}
}

func aiSeat(i int) Seat {
	return Seat{Name: aiSeatName(i), IsAI: true}
}

func aiSeatName(i int) string {
	return "CPU " + strconv.Itoa(i)
}

// Join seats a player. A name already on the roster re-binds that seat
// only when its previous connection is gone; joining over a seat whose
// connection is still bound is a duplicate and rejected. Otherwise the
// first AI seat is claimed. With no AI seat free the lobby is full.
func (l *Lobby) Join(playerName, connID string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.Seats {
		if !l.Seats[i].IsAI && l.Seats[i].Name == playerName {
			if l.Seats[i].ConnID != "" {
				return 0, apperrors.ErrNameTaken
			}
			l.Seats[i].ConnID = connID
			return i, nil
		}
	}
	for i := range l.Seats {
		if l.Seats[i].IsAI {
			l.Seats[i] = Seat{Name: playerName, ConnID: connID}
			return i, nil
		}
	}
	return 0, apperrors.ErrLobbyFull
}

// ConnIDForName returns the connection bound to the named seat, or ""
// when no human seat carries the name.
func (l *Lobby) ConnIDForName(playerName string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := range l.Seats {
		if !l.Seats[i].IsAI && l.Seats[i].Name == playerName {
			return l.Seats[i].ConnID
		}
	}
	return ""
}

// DropConn reverts the seat bound to connID to an AI placeholder. It
// returns the vacated seat index and the leaver's name, or -1 when the
// connection held no seat.
func (l *Lobby) DropConn(connID string) (int, string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.Seats {
		if l.Seats[i].ConnID == connID {
			name := l.Seats[i].Name
			l.Seats[i] = aiSeat(i)
			return i, name
		}
	}
	return -1, ""
}

// IsHost reports whether connID is the lobby's authoritative host.
func (l *Lobby) IsHost(connID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.HostConnID == connID
}

// ConnIDs snapshots every bound connection id in the lobby.
func (l *Lobby) ConnIDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var ids []string
	for i := range l.Seats {
		if l.Seats[i].ConnID != "" {
			ids = append(ids, l.Seats[i].ConnID)
		}
	}
	return ids
}

// HumanCount counts seats held by connected humans.
func (l *Lobby) HumanCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := 0
	for i := range l.Seats {
		if !l.Seats[i].IsAI && l.Seats[i].ConnID != "" {
			n++
		}
	}
	return n
}

// Roster snapshots the seat list for a player_joined/left broadcast.
func (l *Lobby) Roster() []protocol.SeatInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seats := make([]protocol.SeatInfo, card.NumPlayers)
	for i := range l.Seats {
		seats[i] = protocol.SeatInfo{
			Seat:      i,
			Name:      l.Seats[i].Name,
			IsAI:      l.Seats[i].IsAI,
			Connected: l.Seats[i].ConnID != "",
		}
	}
	return seats
}
