package messages

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/devSobrinho/socket-io-backend/internal/domain"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/logging"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/metrics"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/repository"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/ws"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type stubConn struct{}

func (stubConn) ReadMessage() (int, []byte, error) { return 0, nil, io.EOF }
func (stubConn) WriteJSON(any) error               { return nil }
func (stubConn) Close() error                      { return nil }

type fixture struct {
	handler  *Handler
	hub      *ws.Hub
	registry domain.RoomRegistry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	registry := repository.NewRoomRegistry()
	hub := ws.NewHub(logging.NewNopLogger())

	return &fixture{
		handler: NewHandler(
			registry,
			nil, // no broker in tests
			metrics.New(prometheus.NewRegistry()),
			logging.NewNopLogger(),
		),
		hub:      hub,
		registry: registry,
	}
}

func (f *fixture) newClient() *ws.Client {
	c := ws.NewClient(stubConn{}, f.hub, logging.NewNopLogger())
	f.hub.Add(c)
	return c
}

func (f *fixture) newRoom(t *testing.T, admin domain.User, members ...domain.User) *domain.Room {
	t.Helper()

	room, err := domain.NewRoom("lobby", 5, false, "", admin)
	require.NoError(t, err)
	require.NoError(t, f.registry.Create(context.Background(), room))
	for _, m := range members {
		require.NoError(t, room.Join(m))
	}
	return room
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func recv(t *testing.T, c *ws.Client) *ws.Envelope {
	t.Helper()

	select {
	case env := <-c.Message:
		return env
	default:
		t.Fatal("expected a frame, got none")
		return nil
	}
}

func requireSilent(t *testing.T, c *ws.Client) {
	t.Helper()

	select {
	case env := <-c.Message:
		t.Fatalf("expected silence, got %q", env.Event)
	default:
	}
}

func TestListMessages(t *testing.T) {
	ctx := context.Background()
	admin := domain.User{ID: "u-admin", Name: "Admin"}
	ann := domain.User{ID: "u-ann", Name: "Ann"}

	t.Run("member receives the log in posting order", func(t *testing.T) {
		// given
		f := newFixture(t)
		room := f.newRoom(t, admin, ann)
		room.AppendMessage(domain.NewMessage(ann, "first"))
		room.AppendMessage(domain.NewMessage(ann, "second"))
		c := f.newClient()

		// when
		f.handler.ListMessages(ctx, c, mustJSON(t, map[string]any{
			"roomId": room.ID, "user": ann,
		}))

		// then
		env := recv(t, c)
		require.Equal(t, ws.MessagesRoomResponse, env.Event)

		payload, ok := env.Data.(ws.MessagesRoomPayload)
		require.True(t, ok)
		require.False(t, payload.IsAdmin)
		require.Len(t, payload.Messages, 2)
		require.Equal(t, "first", payload.Messages[0].Text)
		require.Equal(t, "second", payload.Messages[1].Text)
	})

	t.Run("admin flag is set even without membership", func(t *testing.T) {
		f := newFixture(t)
		room := f.newRoom(t, admin, ann)
		c := f.newClient()

		f.handler.ListMessages(ctx, c, mustJSON(t, map[string]any{
			"roomId": room.ID, "user": admin,
		}))

		payload := recv(t, c).Data.(ws.MessagesRoomPayload)
		require.True(t, payload.IsAdmin)
	})

	t.Run("stranger gets silence", func(t *testing.T) {
		f := newFixture(t)
		room := f.newRoom(t, admin, ann)
		c := f.newClient()

		f.handler.ListMessages(ctx, c, mustJSON(t, map[string]any{
			"roomId": room.ID, "user": domain.User{ID: "u-stranger"},
		}))

		requireSilent(t, c)
	})

	t.Run("unknown room gets silence", func(t *testing.T) {
		f := newFixture(t)
		c := f.newClient()

		f.handler.ListMessages(ctx, c, mustJSON(t, map[string]any{
			"roomId": "nope", "user": ann,
		}))

		requireSilent(t, c)
	})
}

func TestCreateMessage(t *testing.T) {
	ctx := context.Background()
	admin := domain.User{ID: "u-admin", Name: "Admin"}
	ann := domain.User{ID: "u-ann", Name: "Ann"}

	t.Run("member appends to the room log", func(t *testing.T) {
		// given
		f := newFixture(t)
		room := f.newRoom(t, admin, ann)
		c := f.newClient()

		// when
		f.handler.CreateMessage(ctx, c, mustJSON(t, map[string]any{
			"roomId": room.ID, "user": ann, "message": "hello",
		}))

		// then
		got := room.Messages()
		require.Len(t, got, 1)
		require.Equal(t, "hello", got[0].Text)
		require.Equal(t, ann, got[0].Author)
		require.True(t, strings.HasSuffix(got[0].ID, "-"+ann.ID))

		// delivery is pull-only, so even the author gets no push
		requireSilent(t, c)
	})

	t.Run("unknown room answers message_error", func(t *testing.T) {
		f := newFixture(t)
		c := f.newClient()

		f.handler.CreateMessage(ctx, c, mustJSON(t, map[string]any{
			"roomId": "nope", "user": ann, "message": "hello",
		}))

		env := recv(t, c)
		require.Equal(t, ws.MessageError, env.Event)
		require.Equal(t, ws.MessageErrorPayload{Message: "room not found"}, env.Data)
	})

	t.Run("non-member answers message_error", func(t *testing.T) {
		f := newFixture(t)
		room := f.newRoom(t, admin, ann)
		c := f.newClient()

		f.handler.CreateMessage(ctx, c, mustJSON(t, map[string]any{
			"roomId": room.ID, "user": domain.User{ID: "u-stranger"}, "message": "hi",
		}))

		env := recv(t, c)
		require.Equal(t, ws.MessageError, env.Event)
		require.Equal(t, ws.MessageErrorPayload{Message: "user not in room"}, env.Data)
		require.Empty(t, room.Messages())
	})

	t.Run("admin without membership cannot post", func(t *testing.T) {
		f := newFixture(t)
		room := f.newRoom(t, admin, ann)
		c := f.newClient()

		f.handler.CreateMessage(ctx, c, mustJSON(t, map[string]any{
			"roomId": room.ID, "user": admin, "message": "hi",
		}))

		env := recv(t, c)
		require.Equal(t, ws.MessageErrorPayload{Message: "user not in room"}, env.Data)
	})

	t.Run("missing fields are dropped silently", func(t *testing.T) {
		f := newFixture(t)
		room := f.newRoom(t, admin, ann)

		cases := map[string]json.RawMessage{
			"malformed json":  json.RawMessage(`{"roomId":`),
			"missing user":    mustJSON(t, map[string]any{"roomId": room.ID, "message": "hi"}),
			"empty message":   mustJSON(t, map[string]any{"roomId": room.ID, "user": ann, "message": ""}),
			"missing room id": mustJSON(t, map[string]any{"user": ann, "message": "hi"}),
		}

		for name, payload := range cases {
			t.Run(name, func(t *testing.T) {
				c := f.newClient()

				f.handler.CreateMessage(ctx, c, payload)

				requireSilent(t, c)
				require.Empty(t, room.Messages())
			})
		}
	})
}
