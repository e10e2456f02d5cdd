package gateway

import (
	"context"
	"net/http"

	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/logging"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/metrics"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/tracing"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/ws"
	"github.com/devSobrinho/socket-io-backend/internal/presentation/handler/messages"
	"github.com/devSobrinho/socket-io-backend/internal/presentation/handler/rooms"
	"github.com/gorilla/websocket"
)

// Gateway upgrades HTTP requests to websockets and routes every inbound
// frame to the handler for its event. One instance serves all clients.
type Gateway struct {
	hub      *ws.Hub
	rooms    *rooms.Handler
	messages *messages.Handler
	metrics  *metrics.Metrics
	log      logging.Logger
	upgrader websocket.Upgrader
}

func New(
	hub *ws.Hub,
	roomHandler *rooms.Handler,
	messageHandler *messages.Handler,
	metrics *metrics.Metrics,
	log logging.Logger,
	allowedOrigins []string,
) *Gateway {
	return &Gateway{
		hub:      hub,
		rooms:    roomHandler,
		messages: messageHandler,
		metrics:  metrics,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// ServeWS upgrades the connection, registers the client with the hub and
// starts its read and write pumps.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Warn(logging.IO, logging.Dispatch, "ws upgrade failed", map[logging.ExtraKey]any{
			logging.ClientIp:     r.RemoteAddr,
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	client := ws.NewClient(conn, g.hub, g.log)
	g.hub.Add(client)
	g.metrics.ConnectedClients.Inc()

	g.log.Info(logging.IO, logging.Dispatch, "client connected", map[logging.ExtraKey]any{
		"client":         client.ID,
		logging.ClientIp: r.RemoteAddr,
	})

	go client.WritePump()
	go func() {
		client.ReadPump(g)
		g.metrics.ConnectedClients.Dec()
		g.log.Info(logging.IO, logging.Dispatch, "client disconnected", map[logging.ExtraKey]any{
			"client": client.ID,
		})
	}()
}

// Dispatch routes one decoded frame. Unknown events are counted and
// dropped without closing the connection.
func (g *Gateway) Dispatch(ctx context.Context, c *ws.Client, msg ws.Inbound) {
	g.metrics.EventsTotal.WithLabelValues(msg.Event).Inc()

	ctx, span := tracing.GetTracer("gateway").Start(ctx, "ws."+msg.Event)
	defer span.End()

	switch msg.Event {
	case ws.CreateRoom:
		g.rooms.CreateRoom(ctx, c, msg.Data)
	case ws.SelectRoom:
		g.rooms.SelectRoom(ctx, c, msg.Data)
	case ws.DisconnectRoom:
		g.rooms.DisconnectRoom(ctx, c, msg.Data)
	case ws.RoomsRequest:
		g.rooms.RoomsRequest(ctx, c, msg.Data)
	case ws.DeleteRoom:
		g.rooms.DeleteRoom(ctx, c, msg.Data)
	case ws.MessagesRoom:
		g.messages.ListMessages(ctx, c, msg.Data)
	case ws.CreateMessageRoom:
		g.messages.CreateMessage(ctx, c, msg.Data)
	default:
		g.log.Debug(logging.Protocol, logging.Dispatch, "unknown event dropped", map[logging.ExtraKey]any{
			logging.Event: msg.Event,
			"client":      c.ID,
		})
	}
}
