package ws

import (
	"sync"

	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/logging"
)

// Hub tracks every connected client, regardless of room membership: the
// roster broadcast goes to all observers, not just room members.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex
	log     logging.Logger
}

func NewHub(log logging.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		log:     log,
	}
}

func (h *Hub) Add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

// Remove forgets the client and closes its outbound channel, which stops
// its write pump. Safe to call more than once.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Message)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastExcept fans the envelope out to every connected client except
// the sender. Slow clients are skipped rather than blocked on.
func (h *Hub) BroadcastExcept(sender *Client, env *Envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for cl := range h.clients {
		if cl == sender {
			continue
		}
		select {
		case cl.Message <- env:
		default:
			h.log.Warn(logging.IO, logging.Roster, "client buffer full, dropping broadcast", map[logging.ExtraKey]any{
				logging.Event: env.Event,
				"client":      cl.ID,
			})
		}
	}
}
