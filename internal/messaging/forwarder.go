package messaging

import (
	"context"
	"fmt"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/events"
	"github.com/Gaaaybe/Aetherium/internal/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VisibilityForwarder пересылает события публикации во внешний брокер.
// Регистрируется после подписчиков каскада, чтобы сообщение уходило уже после него.
// Ошибка брокера только логируется: изменение уже сохранено и не должно откатываться.
type VisibilityForwarder struct {
	publisher interfaces.VisibilityEventPublisher
	logger    *zap.Logger
}

func NewVisibilityForwarder(publisher interfaces.VisibilityEventPublisher, logger *zap.Logger) *VisibilityForwarder {
	return &VisibilityForwarder{
		publisher: publisher,
		logger:    logger.Named("VisibilityForwarder"),
	}
}

// Register подписывает пересылку на оба события публикации.
func (f *VisibilityForwarder) Register(bus *events.Bus) {
	bus.Register(domain.EventPowerMadePublic, "ForwardPowerMadePublic", f.Forward)
	bus.Register(domain.EventPowerArrayMadePublic, "ForwardPowerArrayMadePublic", f.Forward)
}

// Forward переводит доменное событие в интеграционное и публикует его.
func (f *VisibilityForwarder) Forward(ctx context.Context, event domain.Event) error {
	payload, err := PayloadFromEvent(event)
	if err != nil {
		f.logger.Warn("Skipping event", zap.Stringer("kind", event.Kind()), zap.Error(err))
		return nil
	}
	if err := f.publisher.PublishVisibilityChanged(ctx, payload); err != nil {
		f.logger.Error("Failed to forward visibility event",
			zap.String("eventID", payload.EventID),
			zap.String("aggregateID", payload.AggregateID.String()),
			zap.Error(err),
		)
	}
	return nil
}

// PayloadFromEvent строит VisibilityChangedPayload для событий публикации.
func PayloadFromEvent(event domain.Event) (interfaces.VisibilityChangedPayload, error) {
	payload := interfaces.VisibilityChangedPayload{
		EventID:     uuid.NewString(),
		Kind:        event.Kind().String(),
		AggregateID: event.AggregateID(),
		OccurredAt:  event.OccurredAt(),
	}
	switch e := event.(type) {
	case domain.PowerMadePublicEvent:
		payload.UserID = e.Power.UserID()
		if e.PeculiarityID != uuid.Nil {
			id := e.PeculiarityID
			payload.PeculiarityID = &id
		}
	case domain.PowerArrayMadePublicEvent:
		payload.UserID = e.PowerArray.UserID()
		payload.PowerIDs = e.PowerArray.PowerIDs()
	default:
		return payload, fmt.Errorf("unsupported event kind %s", event.Kind())
	}
	return payload, nil
}
