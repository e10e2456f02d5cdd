package domain

// User identifies a chat participant. Identity is supplied by the client
// on every request and trusted as-is; the server never issues or verifies
// user ids.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Known reports whether the client supplied enough identity to act on.
func (u *User) Known() bool {
	return u != nil && u.ID != ""
}
