package messaging

const (
	RoomsQueue = "rooms"
)

// RoomEventData is the broker-facing projection of a room. It never
// carries the password or message contents.
type RoomEventData struct {
	RoomID      string `json:"roomId"`
	Name        string `json:"name"`
	AdminID     string `json:"adminId"`
	Private     bool   `json:"private"`
	MemberCount int    `json:"memberCount"`
}
