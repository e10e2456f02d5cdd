package rooms

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/devSobrinho/socket-io-backend/internal/domain"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/events"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/logging"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/metrics"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/ws"
)

// Handler owns room lifecycle and membership: create_room, select_room,
// disconnect_room, rooms_request and delete_room.
type Handler struct {
	registry  domain.RoomRegistry
	hub       *ws.Hub
	publisher *events.RoomPublisher
	audit     domain.RoomAuditRepository
	metrics   *metrics.Metrics
	log       logging.Logger
}

func NewHandler(
	registry domain.RoomRegistry,
	hub *ws.Hub,
	publisher *events.RoomPublisher,
	audit domain.RoomAuditRepository,
	metrics *metrics.Metrics,
	log logging.Logger,
) *Handler {
	return &Handler{
		registry:  registry,
		hub:       hub,
		publisher: publisher,
		audit:     audit,
		metrics:   metrics,
		log:       log,
	}
}

// CreateRoom registers a new room and pushes the refreshed roster to
// every other client. Invalid payloads are dropped without a reply; the
// requester learns about the new room the same way everyone else does,
// through a later rooms frame.
func (h *Handler) CreateRoom(ctx context.Context, c *ws.Client, data json.RawMessage) {
	var req createRoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.log.Debug(logging.Protocol, logging.RoomLifecycle, "malformed create_room dropped", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	var admin domain.User
	if req.Admin != nil {
		admin = *req.Admin
	}

	room, err := domain.NewRoom(req.Name, req.MaxConnection, req.IsPrivate, req.Password, admin)
	if err != nil {
		h.log.Debug(logging.Validation, logging.RoomLifecycle, "invalid create_room dropped", map[logging.ExtraKey]any{
			"name":         req.Name,
			"max":          req.MaxConnection,
			logging.UserID: admin.ID,
		})
		return
	}

	if err := h.registry.Create(ctx, room); err != nil {
		h.log.Error(logging.Internal, logging.RoomLifecycle, "room registration failed", map[logging.ExtraKey]any{
			logging.RoomID:       room.ID,
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	h.metrics.RoomsCreated.Inc()
	h.metrics.LiveRooms.Inc()

	if err := h.audit.Log(ctx, domain.NewRoomCreatedLog(room)); err != nil {
		h.log.Warn(logging.Mongo, logging.RoomLifecycle, "audit write failed", map[logging.ExtraKey]any{
			logging.RoomID:       room.ID,
			logging.ErrorMessage: err.Error(),
		})
	}
	if h.publisher != nil {
		if err := h.publisher.PublishRoomCreated(ctx, room); err != nil {
			h.log.Error(logging.RabbitMQ, logging.RoomLifecycle, "room created publish failed", map[logging.ExtraKey]any{
				logging.RoomID:       room.ID,
				logging.ErrorMessage: err.Error(),
			})
		}
	}

	h.log.Info(logging.Protocol, logging.RoomLifecycle, "room created", map[logging.ExtraKey]any{
		logging.RoomID: room.ID,
		logging.UserID: room.Admin.ID,
		"private":      room.IsPrivate,
	})

	h.BroadcastRoster(ctx, c)
}

// SelectRoom admits a user into a room. Every outcome is reported back
// to the requester on select_room_message with an HTTP-flavored status:
// 400 invalid data, 404 unknown room, 403 bad password, 200 otherwise.
func (h *Handler) SelectRoom(ctx context.Context, c *ws.Client, data json.RawMessage) {
	var req selectRoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.log.Debug(logging.Protocol, logging.Membership, "malformed select_room dropped", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	if req.ID == "" || !req.User.Known() {
		c.Send(ws.NewSelectRoomStatus("invalid data", 400))
		return
	}

	room, err := h.registry.GetByID(ctx, req.ID)
	if err != nil {
		c.Send(ws.NewSelectRoomStatus("room does not exist", 404))
		return
	}

	if !room.CheckPassword(req.Password) {
		h.log.Info(logging.Protocol, logging.Membership, "join refused, bad password", map[logging.ExtraKey]any{
			logging.RoomID: room.ID,
			logging.UserID: req.User.ID,
		})
		c.Send(ws.NewSelectRoomStatus("incorrect password", 403))
		return
	}

	// TODO: refuse the join when MemberCount() >= MaxConnection. The
	// limit is only checked at creation today, so a room can grow past
	// its own cap; the web client needs a new status before we can turn
	// this on.
	if err := room.Join(*req.User); err != nil {
		if errors.Is(err, domain.ErrAlreadyInRoom) {
			c.Send(ws.NewSelectRoomStatus("user already in room", 200))
			return
		}
		c.Send(ws.NewSelectRoomStatus("invalid data", 400))
		return
	}

	if err := h.audit.Log(ctx, domain.NewMemberJoinedLog(room.ID, room.MemberCount())); err != nil {
		h.log.Warn(logging.Mongo, logging.Membership, "audit write failed", map[logging.ExtraKey]any{
			logging.RoomID:       room.ID,
			logging.ErrorMessage: err.Error(),
		})
	}
	if h.publisher != nil {
		if err := h.publisher.PublishMemberJoined(ctx, room); err != nil {
			h.log.Error(logging.RabbitMQ, logging.Membership, "member joined publish failed", map[logging.ExtraKey]any{
				logging.RoomID:       room.ID,
				logging.ErrorMessage: err.Error(),
			})
		}
	}

	h.log.Info(logging.Protocol, logging.Membership, "user joined room", map[logging.ExtraKey]any{
		logging.RoomID: room.ID,
		logging.UserID: req.User.ID,
	})

	c.Send(ws.NewSelectRoomStatus("loading", 200))
}

// DisconnectRoom drops the user from the room's member set and refreshes
// the roster for everyone else. Unknown rooms and absent members are
// silent no-ops.
func (h *Handler) DisconnectRoom(ctx context.Context, c *ws.Client, data json.RawMessage) {
	var req roomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.log.Debug(logging.Protocol, logging.Membership, "malformed disconnect_room dropped", map[logging.ExtraKey]any{
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

	room.Leave(req.User.ID)

	if err := h.audit.Log(ctx, domain.NewMemberLeftLog(room.ID, room.MemberCount())); err != nil {
		h.log.Warn(logging.Mongo, logging.Membership, "audit write failed", map[logging.ExtraKey]any{
			logging.RoomID:       room.ID,
			logging.ErrorMessage: err.Error(),
		})
	}
	if h.publisher != nil {
		if err := h.publisher.PublishMemberLeft(ctx, room); err != nil {
			h.log.Error(logging.RabbitMQ, logging.Membership, "member left publish failed", map[logging.ExtraKey]any{
				logging.RoomID:       room.ID,
				logging.ErrorMessage: err.Error(),
			})
		}
	}

	h.log.Info(logging.Protocol, logging.Membership, "user left room", map[logging.ExtraKey]any{
		logging.RoomID: room.ID,
		logging.UserID: req.User.ID,
	})

	h.BroadcastRoster(ctx, c)
}

// RoomsRequest re-broadcasts the roster. The requester is excluded like
// any other broadcast origin, so a lone client asking for rooms hears
// nothing.
func (h *Handler) RoomsRequest(ctx context.Context, c *ws.Client, _ json.RawMessage) {
	h.BroadcastRoster(ctx, c)
}

// DeleteRoom acknowledges the reserved delete_room event. The protocol
// names it but gives it no behavior yet, so the payload is only logged.
func (h *Handler) DeleteRoom(_ context.Context, _ *ws.Client, data json.RawMessage) {
	h.log.Debug(logging.Protocol, logging.RoomLifecycle, "delete_room received, not implemented", map[logging.ExtraKey]any{
		"payload": string(data),
	})
}

// BroadcastRoster pushes the current room list to every connected client
// except the one that caused the change.
func (h *Handler) BroadcastRoster(ctx context.Context, origin *ws.Client) {
	summaries := ws.Summarize(h.registry.All(ctx))
	h.hub.BroadcastExcept(origin, ws.NewRoomsEvent(summaries))
	h.metrics.RosterBroadcasts.Inc()
}
