package interfaces

import (
	"context"

	"github.com/Gaaaybe/Aetherium/internal/domain"
)

// EffectRepository - каталог эффектов.
// FindByID возвращает (nil, nil), если эффект не найден.
//
//go:generate mockery --name EffectRepository --output ./mocks --outpkg mocks --case=underscore
type EffectRepository interface {
	FindByID(ctx context.Context, id string) (*domain.EffectBase, error)
	FindAll(ctx context.Context) ([]*domain.EffectBase, error)
	FindByCategory(ctx context.Context, categoria string) ([]*domain.EffectBase, error)
	FindCustom(ctx context.Context) ([]*domain.EffectBase, error)
	// Create возвращает models.ErrAlreadyExists, если id занят.
	Create(ctx context.Context, effect *domain.EffectBase) error
}

// ModificationRepository - каталог модификаций (extras и falhas).
//
//go:generate mockery --name ModificationRepository --output ./mocks --outpkg mocks --case=underscore
type ModificationRepository interface {
	FindByID(ctx context.Context, id string) (*domain.ModificationBase, error)
	FindAll(ctx context.Context) ([]*domain.ModificationBase, error)
	FindByType(ctx context.Context, tipo domain.ModificationType) ([]*domain.ModificationBase, error)
	FindByCategory(ctx context.Context, categoria string) ([]*domain.ModificationBase, error)
	FindCustom(ctx context.Context) ([]*domain.ModificationBase, error)
	Create(ctx context.Context, modification *domain.ModificationBase) error
}
