package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/devSobrinho/socket-io-backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func newRoom(t *testing.T, name string) *domain.Room {
	t.Helper()

	room, err := domain.NewRoom(name, 5, false, "", domain.User{ID: "admin-1"})
	require.NoError(t, err)
	return room
}

func TestRoomRegistryCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and retrieves a room", func(t *testing.T) {
		// given
		registry := NewRoomRegistry()
		room := newRoom(t, "lobby")

		// when
		require.NoError(t, registry.Create(ctx, room))

		// then
		got, err := registry.GetByID(ctx, room.ID)
		require.NoError(t, err)
		require.Same(t, room, got)
	})

	t.Run("rejects a duplicate id", func(t *testing.T) {
		registry := NewRoomRegistry()
		room := newRoom(t, "lobby")

		require.NoError(t, registry.Create(ctx, room))
		require.ErrorIs(t, registry.Create(ctx, room), domain.ErrRoomAlreadyExists)
	})

	t.Run("rejects nil and id-less rooms", func(t *testing.T) {
		registry := NewRoomRegistry()

		require.ErrorIs(t, registry.Create(ctx, nil), domain.ErrInvalidInput)
		require.ErrorIs(t, registry.Create(ctx, &domain.Room{}), domain.ErrInvalidInput)
	})
}

func TestRoomRegistryGetByID(t *testing.T) {
	ctx := context.Background()
	registry := NewRoomRegistry()

	t.Run("unknown id", func(t *testing.T) {
		_, err := registry.GetByID(ctx, "nope")
		require.ErrorIs(t, err, domain.ErrRoomNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := registry.GetByID(ctx, "")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestRoomRegistryAll(t *testing.T) {
	ctx := context.Background()
	registry := NewRoomRegistry()

	var created []*domain.Room
	for i := 0; i < 5; i++ {
		room := newRoom(t, fmt.Sprintf("room-%d", i))
		require.NoError(t, registry.Create(ctx, room))
		created = append(created, room)
	}

	// insertion order must survive the snapshot
	got := registry.All(ctx)
	require.Equal(t, created, got)

	// the snapshot is detached from the registry
	got[0] = nil
	require.Equal(t, created, registry.All(ctx))
}
