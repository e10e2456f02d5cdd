package events

import (
	"context"
	"encoding/json"

	"github.com/devSobrinho/socket-io-backend/internal/domain"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/contracts"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/messaging"
)

// RoomPublisher feeds room lifecycle events to the broker for side
// consumers. The core protocol never depends on it.
type RoomPublisher struct {
	rabbitmq *messaging.RabbitMQ
}

func NewRoomPublisher(rabbitmq *messaging.RabbitMQ) *RoomPublisher {
	return &RoomPublisher{
		rabbitmq: rabbitmq,
	}
}

func (p *RoomPublisher) publish(ctx context.Context, routingKey string, room *domain.Room) error {
	payload := messaging.RoomEventData{
		RoomID:      room.ID,
		Name:        room.Name,
		AdminID:     room.Admin.ID,
		Private:     room.IsPrivate,
		MemberCount: room.MemberCount(),
	}

	roomEventJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, routingKey, contracts.AmqpMessage{
		AdminID: room.Admin.ID,
		Data:    roomEventJSON,
	})
}

func (p *RoomPublisher) PublishRoomCreated(ctx context.Context, room *domain.Room) error {
	return p.publish(ctx, contracts.EventRoomCreated, room)
}

func (p *RoomPublisher) PublishMemberJoined(ctx context.Context, room *domain.Room) error {
	return p.publish(ctx, contracts.EventMemberJoined, room)
}

func (p *RoomPublisher) PublishMemberLeft(ctx context.Context, room *domain.Room) error {
	return p.publish(ctx, contracts.EventMemberLeft, room)
}

func (p *RoomPublisher) PublishMessageSent(ctx context.Context, room *domain.Room) error {
	return p.publish(ctx, contracts.EventMessageSent, room)
}
