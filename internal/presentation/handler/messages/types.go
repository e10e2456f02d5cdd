package messages

import "github.com/devSobrinho/socket-io-backend/internal/domain"

// listMessagesRequest is the payload of the messages_room event
type listMessagesRequest struct {
	RoomID string       `json:"roomId"`
	User   *domain.User `json:"user"`
}

// createMessageRequest is the payload of the create_message_room event
type createMessageRequest struct {
	RoomID  string       `json:"roomId"`
	User    *domain.User `json:"user"`
	Message string       `json:"message"`
}
