package repository

import (
	"context"
	"sync"

	"github.com/devSobrinho/socket-io-backend/internal/domain"
)

// roomRegistry is the in-memory room collection. Rooms live for the
// process lifetime; no eviction or deletion path exists. Insertion order
// is preserved so All returns rooms in the order they were created.
type roomRegistry struct {
	rooms map[string]*domain.Room // ID -> Room
	order []*domain.Room
	mu    *sync.RWMutex
}

func NewRoomRegistry() domain.RoomRegistry {
	return &roomRegistry{
		rooms: make(map[string]*domain.Room),
		order: make([]*domain.Room, 0, 16),
		mu:    &sync.RWMutex{},
	}
}

// Create adds a room if its ID is unique.
func (r *roomRegistry) Create(ctx context.Context, room *domain.Room) error {
	if room == nil || room.ID == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[room.ID]; exists {
		return domain.ErrRoomAlreadyExists
	}

	r.rooms[room.ID] = room
	r.order = append(r.order, room)

	return nil
}

func (r *roomRegistry) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, exists := r.rooms[id]
	if !exists {
		return nil, domain.ErrRoomNotFound
	}

	return room, nil
}

// All returns a snapshot of the registry in insertion order.
func (r *roomRegistry) All(ctx context.Context) []*domain.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cpy := make([]*domain.Room, len(r.order))
	copy(cpy, r.order)
	return cpy
}
