package mocks

import (
	"context"

	"github.com/Gaaaybe/Aetherium/internal/interfaces"

	"github.com/stretchr/testify/mock"
)

// VisibilityEventPublisher is a mock type for the VisibilityEventPublisher type
type VisibilityEventPublisher struct {
	mock.Mock
}

func (m *VisibilityEventPublisher) PublishVisibilityChanged(ctx context.Context, payload interfaces.VisibilityChangedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
