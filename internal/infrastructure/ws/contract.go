package ws

import (
	"encoding/json"

	"github.com/devSobrinho/socket-io-backend/internal/domain"
)

// Envelope is the outbound wire frame.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Inbound is the raw inbound frame; Data stays opaque until the handler
// for the event decodes it.
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// RoomSummary is the public shape of a room in the roster broadcast.
// Password and message contents are never exposed.
type RoomSummary struct {
	ID            string `json:"id"`
	MaxConnection int    `json:"maxConnection"`
	Name          string `json:"name"`
	IsPrivate     bool   `json:"isPrivate"`
	AdminID       string `json:"adminId"`
	MemberCount   int    `json:"memberCount"`
}

type RoomsPayload struct {
	Rooms []RoomSummary `json:"rooms"`
}

type SelectRoomPayload struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type MessagesRoomPayload struct {
	Messages []domain.Message `json:"messages"`
	IsAdmin  bool             `json:"isAdmin"`
}

type MessageErrorPayload struct {
	Message string `json:"message"`
}

// Summarize maps registry rooms to their public roster shape, keeping
// the registry's order.
func Summarize(rooms []*domain.Room) []RoomSummary {
	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, RoomSummary{
			ID:            room.ID,
			MaxConnection: room.MaxConnection,
			Name:          room.Name,
			IsPrivate:     room.IsPrivate,
			AdminID:       room.Admin.ID,
			MemberCount:   room.MemberCount(),
		})
	}
	return summaries
}

func NewRoomsEvent(summaries []RoomSummary) *Envelope {
	return &Envelope{
		Event: Rooms,
		Data:  RoomsPayload{Rooms: summaries},
	}
}

func NewSelectRoomStatus(message string, status int) *Envelope {
	return &Envelope{
		Event: SelectRoomMessage,
		Data: SelectRoomPayload{
			Message: message,
			Status:  status,
		},
	}
}

func NewMessagesResponse(messages []domain.Message, isAdmin bool) *Envelope {
	return &Envelope{
		Event: MessagesRoomResponse,
		Data: MessagesRoomPayload{
			Messages: messages,
			IsAdmin:  isAdmin,
		},
	}
}

func NewMessageError(message string) *Envelope {
	return &Envelope{
		Event: MessageError,
		Data:  MessageErrorPayload{Message: message},
	}
}
