package protocol

// Session error codes carried in ErrorPayload.
const (
	ErrCodeInvalidMsg = 1000 + iota
	ErrCodeLobbyNotFound
	ErrCodeLobbyFull
	ErrCodeNotInLobby
	ErrCodeNotHost
	ErrCodeRejected
	ErrCodeNameTaken
)

var errorMessages = map[int]string{
	ErrCodeInvalidMsg:    "Malformed message",
	ErrCodeLobbyNotFound: "Lobby not found",
	ErrCodeLobbyFull:     "Lobby is full",
	ErrCodeNotInLobby:    "You are not in a lobby",
	ErrCodeNotHost:       "Only the host may do that",
	ErrCodeRejected:      "Request rejected",
	ErrCodeNameTaken:     "That name is already playing in this lobby",
}

// NewErrorMessage builds an error frame from a known code.
func NewErrorMessage(code int) *Message {
	return MustNewMessage(MsgError, ErrorPayload{Code: code, Message: errorMessages[code]})
}

// NewErrorMessageWithText builds an error frame with custom text.
func NewErrorMessageWithText(code int, text string) *Message {
	return MustNewMessage(MsgError, ErrorPayload{Code: code, Message: text})
}
