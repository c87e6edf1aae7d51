package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ndquang/thirteen/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024 // full-state broadcasts are the largest frames
)

// Client is one connected participant.
type Client struct {
	ID      string
	Name    string
	LobbyID string

	server *Server
	conn   *websocket.Conn
	send   chan []byte

	mu     sync.RWMutex
	closed bool
}

// NewClient wraps an upgraded websocket connection.
func NewClient(s *Server, conn *websocket.Conn) *Client {
	return &Client{
		ID:     uuid.New().String(),
		Name:   GenerateNickname(),
		server: s,
		conn:   conn,
		send:   make(chan []byte, 256),
	}
}

// ReadPump reads frames off the socket and hands them to the message
// handler until the connection drops.
func (c *Client) ReadPump() {
	defer func() {
		c.handleDisconnect()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log().WithError(err).Warn("read error")
			}
			break
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			c.log().WithError(err).Warn("malformed message")
			c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			continue
		}
		c.server.handler.Handle(c, msg)
	}
}

// WritePump drains the send queue onto the socket and keeps the
// connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage queues a message for delivery. A full queue means the
// peer stopped draining; the connection is closed rather than blocked.
func (c *Client) SendMessage(msg *protocol.Message) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return
	}
	c.mu.RUnlock()

	data, err := msg.Encode()
	if err != nil {
		c.log().WithError(err).Error("encode failed")
		return
	}

	select {
	case c.send <- data:
	default:
		c.log().Warn("send buffer full, dropping connection")
		c.Close()
	}
}

// Close shuts the send queue once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// SetLobby records which lobby the connection sits in.
func (c *Client) SetLobby(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LobbyID = id
}

// GetLobby returns the connection's current lobby id.
func (c *Client) GetLobby() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LobbyID
}

func (c *Client) handleDisconnect() {
	c.server.handleLeave(c, true)
	c.server.unregisterClient(c)
}

func (c *Client) log() *logrus.Entry {
	return c.server.log.WithFields(logrus.Fields{"player": c.Name, "conn": c.ID})
}
