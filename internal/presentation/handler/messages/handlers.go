package messages

import (
	"context"
	"encoding/json"

	"github.com/devSobrinho/socket-io-backend/internal/domain"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/events"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/logging"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/metrics"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/ws"
)

// Handler owns the message log operations: messages_room and
// create_message_room. Delivery is pull-only; posting a message never
// pushes it to other members, they fetch on their next messages_room.
type Handler struct {
	registry  domain.RoomRegistry
	publisher *events.RoomPublisher
	metrics   *metrics.Metrics
	log       logging.Logger
}

func NewHandler(
	registry domain.RoomRegistry,
	publisher *events.RoomPublisher,
	metrics *metrics.Metrics,
	log logging.Logger,
) *Handler {
	return &Handler{
		registry:  registry,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
	}
}

// ListMessages replies to the requester with the room's full message log
// and the requester's admin flag. Members and the room's admin may read;
// anyone else, or an unknown room, gets silence.
func (h *Handler) ListMessages(ctx context.Context, c *ws.Client, data json.RawMessage) {
	var req listMessagesRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.log.Debug(logging.Protocol, logging.Messaging, "malformed messages_room dropped", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		return
	}
	if !req.User.Known() {
		return
	}

	room, err := h.registry.GetByID(ctx, req.RoomID)
	if err != nil {
		return
	}

	isAdmin := room.IsAdmin(req.User.ID)
	if !room.HasMember(req.User.ID) && !isAdmin {
		h.log.Debug(logging.Protocol, logging.Messaging, "messages_room from non-member dropped", map[logging.ExtraKey]any{
			logging.RoomID: room.ID,
			logging.UserID: req.User.ID,
		})
		return
	}

	c.Send(ws.NewMessagesResponse(room.Messages(), isAdmin))
}

// CreateMessage appends a message to the room's log. Missing fields are
// dropped silently; an unknown room or a non-member gets a message_error
// frame back.
func (h *Handler) CreateMessage(ctx context.Context, c *ws.Client, data json.RawMessage) {
	var req createMessageRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.log.Debug(logging.Protocol, logging.Messaging, "malformed create_message_room dropped", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		return
	}
	if !req.User.Known() || req.Message == "" || req.RoomID == "" {
		return
	}

	room, err := h.registry.GetByID(ctx, req.RoomID)
	if err != nil {
		c.Send(ws.NewMessageError("room not found"))
		return
	}
	if !room.HasMember(req.User.ID) {
		c.Send(ws.NewMessageError("user not in room"))
		return
	}

	msg := domain.NewMessage(*req.User, req.Message)
	room.AppendMessage(msg)
	h.metrics.MessagesPosted.Inc()

	if h.publisher != nil {
		if err := h.publisher.PublishMessageSent(ctx, room); err != nil {
			h.log.Error(logging.RabbitMQ, logging.Messaging, "message sent publish failed", map[logging.ExtraKey]any{
				logging.RoomID:       room.ID,
				logging.ErrorMessage: err.Error(),
			})
		}
	}

	h.log.Info(logging.Protocol, logging.Messaging, "message posted", map[logging.ExtraKey]any{
		logging.RoomID: room.ID,
		logging.UserID: req.User.ID,
	})
}
