package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/devSobrinho/socket-io-backend/internal/domain"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/logging"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/metrics"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/repository"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/ws"
	auditrepo "github.com/devSobrinho/socket-io-backend/internal/persistence/repository"
	"github.com/devSobrinho/socket-io-backend/internal/presentation/handler/messages"
	"github.com/devSobrinho/socket-io-backend/internal/presentation/handler/rooms"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type stubConn struct{}

func (stubConn) ReadMessage() (int, []byte, error) { return 0, nil, io.EOF }
func (stubConn) WriteJSON(any) error               { return nil }
func (stubConn) Close() error                      { return nil }

func newGateway(t *testing.T) (*Gateway, domain.RoomRegistry, *ws.Hub) {
	t.Helper()

	registry := repository.NewRoomRegistry()
	hub := ws.NewHub(logging.NewNopLogger())
	m := metrics.New(prometheus.NewRegistry())
	log := logging.NewNopLogger()

	roomHandler := rooms.NewHandler(registry, hub, nil, auditrepo.NewNopRoomAuditRepository(), m, log)
	messageHandler := messages.NewHandler(registry, nil, m, log)

	return New(hub, roomHandler, messageHandler, m, log, []string{"*"}), registry, hub
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()

	inbound := func(t *testing.T, event string, data any) ws.Inbound {
		t.Helper()

		raw, err := json.Marshal(data)
		require.NoError(t, err)
		return ws.Inbound{Event: event, Data: raw}
	}

	t.Run("routes create_room to the room handler", func(t *testing.T) {
		g, registry, hub := newGateway(t)
		c := ws.NewClient(stubConn{}, hub, logging.NewNopLogger())
		hub.Add(c)

		g.Dispatch(ctx, c, inbound(t, ws.CreateRoom, map[string]any{
			"name":          "lobby",
			"maxConnection": 5,
			"admin":         domain.User{ID: "u-ann"},
		}))

		require.Len(t, registry.All(ctx), 1)
	})

	t.Run("routes select_room to the room handler", func(t *testing.T) {
		g, _, hub := newGateway(t)
		c := ws.NewClient(stubConn{}, hub, logging.NewNopLogger())
		hub.Add(c)

		g.Dispatch(ctx, c, inbound(t, ws.SelectRoom, map[string]any{
			"id": "nope", "user": domain.User{ID: "u-ann"},
		}))

		env := <-c.Message
		require.Equal(t, ws.SelectRoomMessage, env.Event)
	})

	t.Run("unknown events are dropped", func(t *testing.T) {
		g, _, hub := newGateway(t)
		c := ws.NewClient(stubConn{}, hub, logging.NewNopLogger())
		hub.Add(c)

		g.Dispatch(ctx, c, ws.Inbound{Event: "no_such_event"})

		select {
		case env := <-c.Message:
			t.Fatalf("expected silence, got %q", env.Event)
		default:
		}
	})
}

func TestOriginChecker(t *testing.T) {
	request := func(origin string) *http.Request {
		r, _ := http.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	t.Run("wildcard admits everyone", func(t *testing.T) {
		check := originChecker([]string{"*"})
		require.True(t, check(request("https://evil.example")))
	})

	t.Run("exact match only", func(t *testing.T) {
		check := originChecker([]string{"https://app.example"})
		require.True(t, check(request("https://app.example")))
		require.False(t, check(request("https://evil.example")))
	})

	t.Run("non-browser clients have no origin", func(t *testing.T) {
		check := originChecker([]string{"https://app.example"})
		require.True(t, check(request("")))
	})
}
