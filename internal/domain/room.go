package domain

import (
	"context"
	"errors"
	"sync"

	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/validate"
	"github.com/google/uuid"
)

const (
	// Connection bounds are validated at creation only. Join-time
	// enforcement was never part of the observed protocol.
	MinConnections = 2
	MaxConnections = 10
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomAlreadyExists = errors.New("room already exists")
	ErrAlreadyInRoom     = errors.New("already in room")
	ErrNotInRoom         = errors.New("not in room")
	ErrIncorrectPassword = errors.New("incorrect password")
)

// Room is a named, capacity-bounded, optionally password-protected
// container for members and messages. ID, Name, MaxConnection,
// IsPrivate, Password and Admin are fixed at creation; Members and
// Messages mutate under the room's own mutex so concurrent gateway
// goroutines cannot interleave a stale membership read with a join or
// leave.
type Room struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MaxConnection int    `json:"maxConnection"`
	IsPrivate     bool   `json:"isPrivate"`
	Password      string `json:"-"`
	Admin         User   `json:"admin"`

	mu       sync.Mutex
	members  []User
	messages []Message
}

// RoomRegistry is the single source of truth for room existence.
type RoomRegistry interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	All(ctx context.Context) []*Room
}

func NewRoom(name string, maxConnection int, isPrivate bool, password string, admin User) (*Room, error) {
	validateName := validate.Compose(
		validate.Required(),
		validate.MaxLength(64),
	)
	if err := validateName(name); err != nil {
		return nil, ErrInvalidInput
	}
	if maxConnection < MinConnections || maxConnection > MaxConnections {
		return nil, ErrInvalidInput
	}
	if admin.ID == "" {
		return nil, ErrInvalidInput
	}

	return &Room{
		ID:            uuid.NewString(),
		Name:          name,
		MaxConnection: maxConnection,
		IsPrivate:     isPrivate,
		Password:      password,
		Admin:         admin,
		members:       make([]User, 0, maxConnection),
		messages:      make([]Message, 0, 64),
	}, nil
}

// CheckPassword reports whether the supplied password grants admission.
// Rooms without a password are open.
func (r *Room) CheckPassword(supplied string) bool {
	if r.Password == "" {
		return true
	}
	return r.Password == supplied
}

// IsAdmin is an attribute check, not a membership check: the admin
// recorded at creation is not automatically a member.
func (r *Room) IsAdmin(userID string) bool {
	return r.Admin.ID == userID
}

// Join adds the user to the member set. Joining twice is reported with
// ErrAlreadyInRoom and leaves the set unchanged.
func (r *Room) Join(user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.members {
		if m.ID == user.ID {
			return ErrAlreadyInRoom
		}
	}
	r.members = append(r.members, user)
	return nil
}

// Leave removes the user from the member set. Removing an absent user is
// a no-op.
func (r *Room) Leave(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, m := range r.members {
		if m.ID == userID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return
		}
	}
}

func (r *Room) HasMember(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// Members returns a snapshot to prevent external mutation.
func (r *Room) Members() []User {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := make([]User, len(r.members))
	copy(cpy, r.members)
	return cpy
}

// AppendMessage appends to the room's message log. The log is
// append-only and keeps insertion order; no expiry exists.
func (r *Room) AppendMessage(msg *Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *msg)
}

// Messages returns a snapshot of the full message log in insertion
// order.
func (r *Room) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := make([]Message, len(r.messages))
	copy(cpy, r.messages)
	return cpy
}
