package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotel-booking/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher pushes reservation events to RabbitMQ. Errors are logged and
// returned so callers can ignore failures without interrupting the request.
type Publisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
}

type amqpPublisher struct {
	url       string
	queueName string
	log       *zap.Logger
}

func NewPublisher(config utils.QueueConfig, log *zap.Logger) Publisher {
	return &amqpPublisher{
		url:       config.URL,
		queueName: config.QueueName,
		log:       log.With(zap.String("publisher", "reservation_events")),
	}
}

func (p *amqpPublisher) Publish(ctx context.Context, event ReservationEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error("Failed to dial broker", zap.Error(err))
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error("Failed to open channel", zap.Error(err))
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(
		p.queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		p.log.Error("Failed to declare queue", zap.Error(err), zap.String("queue", p.queueName))
		return fmt.Errorf("declare queue %s: %w", p.queueName, err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to marshal event", zap.Error(err))
		return fmt.Errorf("marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",          // default exchange
		p.queueName, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		pub,
	); err != nil {
		p.log.Error("Failed to publish event",
			zap.Error(err),
			zap.String("type", string(event.Type)),
			zap.String("reservation_id", event.ReservationID),
		)
		return fmt.Errorf("publish event: %w", err)
	}

	return nil
}
