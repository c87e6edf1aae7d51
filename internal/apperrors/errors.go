// Package apperrors holds the session-level errors shared by the relay
// and its handlers. Rules-engine rejections are not errors; they travel
// as validator reason strings.
package apperrors

import "github.com/ndquang/thirteen/internal/protocol"

// SessionError is an error with a protocol error code attached.
type SessionError struct {
	Code    int
	Message string
}

func (e *SessionError) Error() string {
	return e.Message
}

var (
	ErrLobbyNotFound = &SessionError{Code: protocol.ErrCodeLobbyNotFound, Message: "Lobby not found"}
	ErrLobbyFull     = &SessionError{Code: protocol.ErrCodeLobbyFull, Message: "Lobby is full"}
	ErrNotInLobby    = &SessionError{Code: protocol.ErrCodeNotInLobby, Message: "You are not in a lobby"}
	ErrNotHost       = &SessionError{Code: protocol.ErrCodeNotHost, Message: "Only the host may do that"}
	ErrNameTaken     = &SessionError{Code: protocol.ErrCodeNameTaken, Message: "That name is already playing in this lobby"}
)
