package contracts

// AmqpMessage is the message structure for AMQP.
type AmqpMessage struct {
	AdminID string `json:"adminId"`
	Data    []byte `json:"data"`
}

// Routing keys - using consistent event/command patterns
const (
	EventRoomCreated  = "room.created"
	EventMemberJoined = "member.joined"
	EventMemberLeft   = "member.left"
	EventMessageSent  = "message.sent"
)
