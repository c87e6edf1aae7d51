// Package protocol defines the JSON wire format spoken between the
// relay, the host, and replica clients. The relay never interprets game
// state payloads; it only routes them.
package protocol

import "encoding/json"

// Message is the envelope for every frame on the wire.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType tags a message with its kind.
type MessageType string

// Client → relay.
const (
	MsgCreateLobby      MessageType = "create_lobby"
	MsgJoinLobby        MessageType = "join_lobby"
	MsgLeaveLobby       MessageType = "leave_lobby"
	MsgGetPublicLobbies MessageType = "get_public_lobbies"
	MsgSendChat         MessageType = "send_chat"
	MsgPing             MessageType = "ping"

	// MsgRequestMove travels client → relay → host: a seat asks the
	// host to apply an action. The relay forwards it untouched.
	MsgRequestMove MessageType = "request_move"

	// MsgSendInitialState and MsgSyncGameState travel host → relay →
	// room: the authoritative state replaces every replica wholesale.
	MsgSendInitialState MessageType = "send_initial_state"
	MsgSyncGameState    MessageType = "sync_game_state"

	// MsgReportResult lets the host record a finished game's winner.
	MsgReportResult MessageType = "report_result"
)

// Relay → client.
const (
	MsgLobbyJoined    MessageType = "lobby_joined"
	MsgPublicLobbies  MessageType = "public_lobbies_update"
	MsgPlayerJoined   MessageType = "player_joined"
	MsgPlayerLeft     MessageType = "player_left"
	MsgReceiveChat    MessageType = "receive_chat"
	MsgLeaderboard    MessageType = "leaderboard_update"
	MsgError          MessageType = "error_message"
	MsgPong           MessageType = "pong"
)

// Encode serializes a message for the wire.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode parses a wire frame into a message.
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// NewMessage builds a message with a marshaled payload.
func NewMessage(msgType MessageType, payload any) (*Message, error) {
	msg := &Message{Type: msgType}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		msg.Payload = data
	}
	return msg, nil
}

// MustNewMessage builds a message and panics on marshal failure. All
// payload types in this package marshal cleanly; a failure is a
// programming error.
func MustNewMessage(msgType MessageType, payload any) *Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// ParsePayload unmarshals a message's payload into the given type.
func ParsePayload[T any](msg *Message) (*T, error) {
	var payload T
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
