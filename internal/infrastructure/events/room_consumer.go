package events

import (
	"context"
	"encoding/json"

	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/contracts"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/logging"
	"github.com/devSobrinho/socket-io-backend/internal/infrastructure/messaging"
	"github.com/rabbitmq/amqp091-go"
)

type roomConsumer struct {
	rabbitmq *messaging.RabbitMQ
	log      logging.Logger
}

// NewRoomConsumer listens on the rooms queue and logs every lifecycle
// event. It exists for operators tailing the broker side of the system;
// the protocol never reads anything back from it.
func NewRoomConsumer(rabbitmq *messaging.RabbitMQ, log logging.Logger) *roomConsumer {
	return &roomConsumer{
		rabbitmq: rabbitmq,
		log:      log,
	}
}

func (c *roomConsumer) Listen() error {
	routingKeys := []string{
		contracts.EventRoomCreated,
		contracts.EventMemberJoined,
		contracts.EventMemberLeft,
		contracts.EventMessageSent,
	}
	if err := c.rabbitmq.DeclareAndBindQueue(messaging.RoomsQueue, routingKeys); err != nil {
		return err
	}

	return c.rabbitmq.ConsumeMessages(messaging.RoomsQueue, func(ctx context.Context, msg amqp091.Delivery) error {
		var message contracts.AmqpMessage
		if err := json.Unmarshal(msg.Body, &message); err != nil {
			c.log.Warn(logging.RabbitMQ, logging.ExternalService, "failed to unmarshal delivery", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
			return err
		}

		var payload messaging.RoomEventData
		if err := json.Unmarshal(message.Data, &payload); err != nil {
			c.log.Warn(logging.RabbitMQ, logging.ExternalService, "failed to unmarshal room event", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
			return err
		}

		c.log.Info(logging.RabbitMQ, logging.ExternalService, "room event received", map[logging.ExtraKey]any{
			logging.RoomID: payload.RoomID,
			logging.Event:  msg.RoutingKey,
			"members":      payload.MemberCount,
		})

		return nil
	})
}
