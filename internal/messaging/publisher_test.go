package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Gaaaybe/Aetherium/internal/interfaces"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChannel struct {
	failures  int
	published []amqp.Publishing
	keys      []string
	calls     int
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.calls++
	if c.calls <= c.failures {
		return errors.New("channel closed")
	}
	c.keys = append(c.keys, exchange+"/"+key)
	c.published = append(c.published, msg)
	return nil
}

func testPublisher(ch channel) *rabbitMQPublisher {
	p := newPublisher(ch, "power_visibility_events", zap.NewNop())
	p.backoff = time.Millisecond
	return p
}

func TestPublishVisibilityChanged(t *testing.T) {
	payload := interfaces.VisibilityChangedPayload{
		EventID:     uuid.NewString(),
		Kind:        "power_made_public",
		AggregateID: uuid.New(),
		UserID:      uuid.New(),
		OccurredAt:  time.Now().UTC(),
	}

	t.Run("persistent json message", func(t *testing.T) {
		ch := &fakeChannel{}
		require.NoError(t, testPublisher(ch).PublishVisibilityChanged(t.Context(), payload))

		require.Len(t, ch.published, 1)
		msg := ch.published[0]
		assert.Equal(t, "/power_visibility_events", ch.keys[0])
		assert.Equal(t, "application/json", msg.ContentType)
		assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
		assert.Equal(t, appID, msg.AppId)

		var got interfaces.VisibilityChangedPayload
		require.NoError(t, json.Unmarshal(msg.Body, &got))
		assert.Equal(t, payload.AggregateID, got.AggregateID)
		assert.Equal(t, payload.Kind, got.Kind)
		assert.Nil(t, got.PeculiarityID)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		ch := &fakeChannel{failures: 2}
		require.NoError(t, testPublisher(ch).PublishVisibilityChanged(t.Context(), payload))
		assert.Equal(t, 3, ch.calls)
		assert.Len(t, ch.published, 1)
	})

	t.Run("gives up after three attempts", func(t *testing.T) {
		ch := &fakeChannel{failures: 5}
		err := testPublisher(ch).PublishVisibilityChanged(t.Context(), payload)
		require.Error(t, err)
		assert.ErrorContains(t, err, "after 3 attempts")
		assert.Equal(t, 3, ch.calls)
	})

	t.Run("nil channel", func(t *testing.T) {
		p := &rabbitMQPublisher{queueName: "q", logger: zap.NewNop()}
		assert.Error(t, p.PublishVisibilityChanged(t.Context(), payload))
	})
}
