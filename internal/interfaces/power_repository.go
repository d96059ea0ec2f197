package interfaces

import (
	"context"

	"github.com/Gaaaybe/Aetherium/internal/domain"

	"github.com/google/uuid"
)

// PageSize - размер страницы во всех списочных методах. Страницы нумеруются с 1.
const PageSize = 20

// PageOffset переводит номер страницы в смещение. Страницы меньше 1 считаются первой.
func PageOffset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}

// PowerRepository хранит силы. FindByID возвращает (nil, nil), если сила не найдена.
//
//go:generate mockery --name PowerRepository --output ./mocks --outpkg mocks --case=underscore
type PowerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Power, error)
	FindMany(ctx context.Context, page int) ([]*domain.Power, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Power, error)
	FindByDomain(ctx context.Context, name domain.DomainName, page int) ([]*domain.Power, error)
	// FindUserCreated - все неофициальные силы.
	FindUserCreated(ctx context.Context, page int) ([]*domain.Power, error)
	// FindPublic - официальные и публичные силы.
	FindPublic(ctx context.Context, page int) ([]*domain.Power, error)
	Create(ctx context.Context, power *domain.Power) error
	Update(ctx context.Context, power *domain.Power) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PowerArrayRepository хранит acervos.
//
//go:generate mockery --name PowerArrayRepository --output ./mocks --outpkg mocks --case=underscore
type PowerArrayRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.PowerArray, error)
	FindMany(ctx context.Context, page int) ([]*domain.PowerArray, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, page int) ([]*domain.PowerArray, error)
	FindByDomain(ctx context.Context, name domain.DomainName, page int) ([]*domain.PowerArray, error)
	FindPublic(ctx context.Context, page int) ([]*domain.PowerArray, error)
	Create(ctx context.Context, array *domain.PowerArray) error
	Update(ctx context.Context, array *domain.PowerArray) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PeculiarityRepository хранит peculiaridades.
//
//go:generate mockery --name PeculiarityRepository --output ./mocks --outpkg mocks --case=underscore
type PeculiarityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Peculiarity, error)
	FindMany(ctx context.Context, page int) ([]*domain.Peculiarity, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Peculiarity, error)
	FindPublic(ctx context.Context, page int) ([]*domain.Peculiarity, error)
	Create(ctx context.Context, peculiarity *domain.Peculiarity) error
	Update(ctx context.Context, peculiarity *domain.Peculiarity) error
	Delete(ctx context.Context, id uuid.UUID) error
}
