package ws

// Inbound protocol events.
const (
	CreateRoom        = "create_room"
	SelectRoom        = "select_room"
	MessagesRoom      = "messages_room"
	CreateMessageRoom = "create_message_room"
	DisconnectRoom    = "disconnect_room"
	RoomsRequest      = "rooms_request"
	DeleteRoom        = "delete_room"
)

// Outbound protocol events.
const (
	Rooms                = "rooms"
	SelectRoomMessage    = "select_room_message"
	MessagesRoomResponse = "messages_room_response"
	MessageError         = "message_error"
)
