package ws

import (
	"context"
	"encoding/json"

	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/logging"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Dispatcher routes a decoded inbound frame to the handler for its
// event.
type Dispatcher interface {
	Dispatch(ctx context.Context, c *Client, msg Inbound)
}

// Client is one connected socket. Outbound traffic goes through the
// buffered Message channel so a slow consumer never blocks a handler.
type Client struct {
	conn    *connWrapper
	hub     *Hub
	log     logging.Logger
	Message chan *Envelope
	ID      string
}

func NewClient(conn Conn, hub *Hub, log logging.Logger) *Client {
	return &Client{
		conn:    newConnWrapper(conn),
		hub:     hub,
		log:     log,
		Message: make(chan *Envelope, 64), // buffered to avoid dead-locks on slow clients
		ID:      uuid.NewString(),
	}
}

// Send queues an envelope for this client only. The frame is dropped if
// the client's buffer is full.
func (c *Client) Send(env *Envelope) {
	select {
	case c.Message <- env:
	default:
		c.log.Warn(logging.IO, logging.Dispatch, "client buffer full, dropping frame", map[logging.ExtraKey]any{
			logging.Event: env.Event,
			"client":      c.ID,
		})
	}
}

// ReadPump reads frames until the socket dies, handing each one to the
// dispatcher. It owns unregistration from the hub.
func (c *Client) ReadPump(d Dispatcher) {
	defer func() {
		c.hub.Remove(c)
		_ = c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn(logging.IO, logging.Dispatch, "ws read error", map[logging.ExtraKey]any{
					"client":             c.ID,
					logging.ErrorMessage: err.Error(),
				})
			}
			break
		}

		var msg Inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.log.Debug(logging.Protocol, logging.Dispatch, "malformed frame dropped", map[logging.ExtraKey]any{
				"client": c.ID,
			})
			continue
		}

		d.Dispatch(context.Background(), c, msg)
	}
}

// WritePump drains the Message channel onto the socket. It exits when
// the hub closes the channel.
func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for env := range c.Message {
		if err := c.conn.WriteJSON(env); err != nil {
			c.log.Warn(logging.IO, logging.Dispatch, "ws write error", map[logging.ExtraKey]any{
				"client":             c.ID,
				logging.ErrorMessage: err.Error(),
			})
			break
		}
	}
}
