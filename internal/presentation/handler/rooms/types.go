package rooms

import "github.com/devSobrinho/socket-io-backend/internal/domain"

// createRoomRequest is the payload of the create_room event
type createRoomRequest struct {
	Name          string       `json:"name"`
	MaxConnection int          `json:"maxConnection"`
	IsPrivate     bool         `json:"isPrivate"`
	Password      string       `json:"password"`
	Admin         *domain.User `json:"admin"`
}

// selectRoomRequest is the payload of the select_room event
type selectRoomRequest struct {
	ID       string       `json:"id"`
	Password string       `json:"password"`
	User     *domain.User `json:"user"`
}

// roomRequest is the payload of the disconnect_room event
type roomRequest struct {
	RoomID string       `json:"roomId"`
	User   *domain.User `json:"user"`
}
