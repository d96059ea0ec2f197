package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Gaaaybe/Aetherium/internal/interfaces"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	publishTimeout  = 10 * time.Second
	publishAttempts = 3
	appID           = "aetherium-powers"
)

// channel - часть *amqp.Channel, которая нужна издателю.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

var _ interfaces.VisibilityEventPublisher = (*rabbitMQPublisher)(nil)

type rabbitMQPublisher struct {
	channel   channel
	queueName string
	logger    *zap.Logger
	backoff   time.Duration
}

// NewRabbitMQVisibilityPublisher открывает отдельный канал и объявляет durable очередь.
func NewRabbitMQVisibilityPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (interfaces.VisibilityEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("visibility publisher: failed to open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("visibility publisher: failed to declare queue '%s': %w", queueName, err)
	}
	logger.Info("Visibility events queue declared", zap.String("queue", queueName))
	return newPublisher(ch, queueName, logger), nil
}

func newPublisher(ch channel, queueName string, logger *zap.Logger) *rabbitMQPublisher {
	return &rabbitMQPublisher{
		channel:   ch,
		queueName: queueName,
		logger:    logger.Named("VisibilityPublisher"),
		backoff:   100 * time.Millisecond,
	}
}

func (p *rabbitMQPublisher) PublishVisibilityChanged(ctx context.Context, payload interfaces.VisibilityChangedPayload) error {
	logFields := []zap.Field{
		zap.String("eventID", payload.EventID),
		zap.String("kind", payload.Kind),
		zap.String("aggregateID", payload.AggregateID.String()),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Failed to marshal visibility event", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to marshal visibility event %s: %w", payload.EventID, err)
	}
	if err := p.publishMessage(ctx, body); err != nil {
		p.logger.Error("Failed to publish visibility event", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to publish visibility event %s: %w", payload.EventID, err)
	}
	p.logger.Info("Visibility event published", logFields...)
	return nil
}

// publishMessage публикует в default exchange с routing key = имя очереди, до трех попыток.
func (p *rabbitMQPublisher) publishMessage(ctx context.Context, body []byte) error {
	if p.channel == nil {
		return errors.New("rabbitmq channel is not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	var err error
	for attempt := 1; attempt <= publishAttempts; attempt++ {
		err = p.channel.PublishWithContext(ctx,
			"",          // default exchange
			p.queueName, // routing key
			false,       // mandatory
			false,       // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
				Timestamp:    time.Now(),
				AppId:        appID,
			},
		)
		if err == nil {
			return nil
		}
		p.logger.Warn("Publish attempt failed", zap.Int("attempt", attempt), zap.String("queue", p.queueName), zap.Error(err))
		if attempt == publishAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * p.backoff):
		}
	}
	return fmt.Errorf("publish to queue %s failed after %d attempts: %w", p.queueName, publishAttempts, err)
}
