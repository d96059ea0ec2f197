package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// VisibilityChangedPayload - интеграционное событие о публикации агрегата,
// которое уходит во внешние сервисы через брокер.
type VisibilityChangedPayload struct {
	EventID       string      `json:"event_id"`
	Kind          string      `json:"kind"`
	AggregateID   uuid.UUID   `json:"aggregate_id"`
	UserID        uuid.UUID   `json:"user_id"`
	PeculiarityID *uuid.UUID  `json:"peculiarity_id,omitempty"`
	PowerIDs      []uuid.UUID `json:"power_ids,omitempty"`
	OccurredAt    time.Time   `json:"occurred_at"`
}

// VisibilityEventPublisher публикует интеграционные события о видимости.
//
//go:generate mockery --name VisibilityEventPublisher --output ./mocks --outpkg mocks --case=underscore
type VisibilityEventPublisher interface {
	PublishVisibilityChanged(ctx context.Context, payload VisibilityChangedPayload) error
}
