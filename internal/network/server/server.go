// Package server implements the relay: a thin session layer that binds
// lobbies to websocket connections and forwards host-authored state.
// The relay never validates moves; the host is the single source of
// truth and everything else is routing.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/ndquang/thirteen/internal/config"
	"github.com/ndquang/thirteen/internal/network/server/storage"
	"github.com/ndquang/thirteen/internal/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin policy is enforced by the CORS layer
	},
}

// Server is the relay process.
type Server struct {
	config   *config.Config
	log      *logrus.Logger
	redis    *redis.Client
	wins     *storage.WinStore
	registry *Registry
	handler  *Handler

	clients   map[string]*Client
	clientsMu sync.RWMutex

	httpServer *http.Server
}

// NewServer wires the relay together. Redis is optional: when it is
// unreachable the win tally is disabled and everything else works.
func NewServer(cfg *config.Config, log *logrus.Logger) *Server {
	s := &Server{
		config:   cfg,
		log:      log,
		registry: NewRegistry(),
		clients:  make(map[string]*Client),
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis unreachable, win tally disabled")
	} else {
		s.redis = rdb
		s.wins = storage.NewWinStore(rdb)
	}

	s.handler = NewHandler(s)
	return s
}

// Start listens until the context is canceled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	router := mux.NewRouter()
	router.HandleFunc("/ws", s.handleWebSocket)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	corsMW := cors.New(cors.Options{
		AllowedOrigins: s.config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           corsMW.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go s.cleanupLoop(ctx)

	s.log.WithField("addr", addr).Info("relay listening")
	errCh := make(chan error, 1)
	go func() { errCh <- s.httpServer.ListenAndServe() }()

	select {
	case <-ctx.Done():
		s.Shutdown()
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown closes every connection and the listener.
func (s *Server) Shutdown() {
	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(ctx)
	}
	s.log.Info("relay stopped")
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := NewClient(s, conn)
	s.registerClient(client)
	s.log.WithFields(logrus.Fields{"player": client.Name, "conn": client.ID}).Info("connected")

	go client.ReadPump()
	go client.WritePump()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if _, ok := s.clients[client.ID]; ok {
		delete(s.clients, client.ID)
		s.log.WithFields(logrus.Fields{"player": client.Name, "conn": client.ID}).Info("disconnected")
	}
}

func (s *Server) clientByID(id string) *Client {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return s.clients[id]
}

// OnlineCount returns the number of live connections.
func (s *Server) OnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// broadcastToLobby delivers one message to every connected seat.
func (s *Server) broadcastToLobby(lobby *Lobby, msg *protocol.Message) {
	for _, id := range lobby.ConnIDs() {
		if client := s.clientByID(id); client != nil {
			client.SendMessage(msg)
		}
	}
}

// handleLeave detaches a connection from its lobby: the seat reverts to
// an AI placeholder, the room learns who left, and a lobby whose host
// is gone is torn down. Called both for an explicit leave_lobby and a
// dropped socket.
func (s *Server) handleLeave(c *Client, disconnected bool) {
	lobbyID := c.GetLobby()
	if lobbyID == "" {
		return
	}
	c.SetLobby("")

	lobby, ok := s.registry.Get(lobbyID)
	if !ok {
		return
	}

	seat, name := lobby.DropConn(c.ID)
	if seat < 0 {
		return
	}
	s.log.WithFields(logrus.Fields{
		"player": name, "lobby": lobbyID, "seat": seat, "disconnected": disconnected,
	}).Info("left lobby")

	if lobby.IsHost(c.ID) {
		// No host, no authority: every remaining seat is sent back to
		// the lobby browser.
		s.registry.Remove(lobbyID)
		notice := protocol.NewErrorMessageWithText(protocol.ErrCodeLobbyNotFound, "Host left, lobby closed")
		for _, id := range lobby.ConnIDs() {
			if client := s.clientByID(id); client != nil {
				client.SetLobby("")
				client.SendMessage(notice)
			}
		}
		return
	}

	s.broadcastToLobby(lobby, protocol.MustNewMessage(protocol.MsgPlayerLeft, protocol.SeatsPayload{
		Seats:      lobby.Roster(),
		PlayerName: name,
	}))
}

// cleanupLoop reaps lobbies nobody sits in anymore.
func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, id := range s.registry.CleanupIdle(s.config.Server.IdleLobbyTimeout()) {
				s.log.WithField("lobby", id).Info("idle lobby removed")
			}
		}
	}
}
