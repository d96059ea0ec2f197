package repository

import (
	"context"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/interfaces"
	"github.com/Gaaaybe/Aetherium/internal/models"

	"github.com/google/uuid"
)

func isVisible(o domain.Ownable) bool { return o.IsOfficial() || o.IsPublic() }

// InMemoryPowerRepository хранит силы в памяти в порядке создания.
type InMemoryPowerRepository struct {
	items *store[uuid.UUID, *domain.Power]
}

var _ interfaces.PowerRepository = (*InMemoryPowerRepository)(nil)

func NewInMemoryPowerRepository() *InMemoryPowerRepository {
	return &InMemoryPowerRepository{items: newStore[uuid.UUID, *domain.Power]()}
}

// Len - количество сохраненных сил.
func (r *InMemoryPowerRepository) Len() int { return r.items.len() }

func (r *InMemoryPowerRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Power, error) {
	p, ok := r.items.get(id)
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *InMemoryPowerRepository) FindMany(_ context.Context, p int) ([]*domain.Power, error) {
	return page(r.items.list(), p), nil
}

func (r *InMemoryPowerRepository) FindByUserID(_ context.Context, userID uuid.UUID, p int) ([]*domain.Power, error) {
	return page(filter(r.items.list(), func(pw *domain.Power) bool { return pw.IsOwnedBy(userID) }), p), nil
}

func (r *InMemoryPowerRepository) FindByDomain(_ context.Context, name domain.DomainName, p int) ([]*domain.Power, error) {
	return page(filter(r.items.list(), func(pw *domain.Power) bool { return pw.Dominio().Name() == name }), p), nil
}

func (r *InMemoryPowerRepository) FindUserCreated(_ context.Context, p int) ([]*domain.Power, error) {
	return page(filter(r.items.list(), func(pw *domain.Power) bool { return !pw.IsOfficial() }), p), nil
}

func (r *InMemoryPowerRepository) FindPublic(_ context.Context, p int) ([]*domain.Power, error) {
	return page(filter(r.items.list(), func(pw *domain.Power) bool { return isVisible(pw) }), p), nil
}

func (r *InMemoryPowerRepository) Create(_ context.Context, power *domain.Power) error {
	if !r.items.insert(power.ID(), power) {
		return models.ErrAlreadyExists
	}
	return nil
}

func (r *InMemoryPowerRepository) Update(_ context.Context, power *domain.Power) error {
	if !r.items.replace(power.ID(), power) {
		return models.ErrResourceNotFound
	}
	return nil
}

func (r *InMemoryPowerRepository) Delete(_ context.Context, id uuid.UUID) error {
	if !r.items.remove(id) {
		return models.ErrResourceNotFound
	}
	return nil
}

// InMemoryPowerArrayRepository хранит acervos в памяти.
type InMemoryPowerArrayRepository struct {
	items *store[uuid.UUID, *domain.PowerArray]
}

var _ interfaces.PowerArrayRepository = (*InMemoryPowerArrayRepository)(nil)

func NewInMemoryPowerArrayRepository() *InMemoryPowerArrayRepository {
	return &InMemoryPowerArrayRepository{items: newStore[uuid.UUID, *domain.PowerArray]()}
}

func (r *InMemoryPowerArrayRepository) Len() int { return r.items.len() }

func (r *InMemoryPowerArrayRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.PowerArray, error) {
	a, ok := r.items.get(id)
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (r *InMemoryPowerArrayRepository) FindMany(_ context.Context, p int) ([]*domain.PowerArray, error) {
	return page(r.items.list(), p), nil
}

func (r *InMemoryPowerArrayRepository) FindByUserID(_ context.Context, userID uuid.UUID, p int) ([]*domain.PowerArray, error) {
	return page(filter(r.items.list(), func(a *domain.PowerArray) bool { return a.IsOwnedBy(userID) }), p), nil
}

func (r *InMemoryPowerArrayRepository) FindByDomain(_ context.Context, name domain.DomainName, p int) ([]*domain.PowerArray, error) {
	return page(filter(r.items.list(), func(a *domain.PowerArray) bool { return a.Dominio().Name() == name }), p), nil
}

func (r *InMemoryPowerArrayRepository) FindPublic(_ context.Context, p int) ([]*domain.PowerArray, error) {
	return page(filter(r.items.list(), func(a *domain.PowerArray) bool { return isVisible(a) }), p), nil
}

func (r *InMemoryPowerArrayRepository) Create(_ context.Context, array *domain.PowerArray) error {
	if !r.items.insert(array.ID(), array) {
		return models.ErrAlreadyExists
	}
	return nil
}

func (r *InMemoryPowerArrayRepository) Update(_ context.Context, array *domain.PowerArray) error {
	if !r.items.replace(array.ID(), array) {
		return models.ErrResourceNotFound
	}
	return nil
}

func (r *InMemoryPowerArrayRepository) Delete(_ context.Context, id uuid.UUID) error {
	if !r.items.remove(id) {
		return models.ErrResourceNotFound
	}
	return nil
}

// InMemoryPeculiarityRepository хранит peculiaridades в памяти.
type InMemoryPeculiarityRepository struct {
	items *store[uuid.UUID, *domain.Peculiarity]
}

var _ interfaces.PeculiarityRepository = (*InMemoryPeculiarityRepository)(nil)

func NewInMemoryPeculiarityRepository() *InMemoryPeculiarityRepository {
	return &InMemoryPeculiarityRepository{items: newStore[uuid.UUID, *domain.Peculiarity]()}
}

func (r *InMemoryPeculiarityRepository) Len() int { return r.items.len() }

func (r *InMemoryPeculiarityRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Peculiarity, error) {
	p, ok := r.items.get(id)
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *InMemoryPeculiarityRepository) FindMany(_ context.Context, p int) ([]*domain.Peculiarity, error) {
	return page(r.items.list(), p), nil
}

func (r *InMemoryPeculiarityRepository) FindByUserID(_ context.Context, userID uuid.UUID, p int) ([]*domain.Peculiarity, error) {
	return page(filter(r.items.list(), func(pc *domain.Peculiarity) bool { return pc.IsOwnedBy(userID) }), p), nil
}

func (r *InMemoryPeculiarityRepository) FindPublic(_ context.Context, p int) ([]*domain.Peculiarity, error) {
	return page(filter(r.items.list(), func(pc *domain.Peculiarity) bool { return isVisible(pc) }), p), nil
}

func (r *InMemoryPeculiarityRepository) Create(_ context.Context, peculiarity *domain.Peculiarity) error {
	if !r.items.insert(peculiarity.ID(), peculiarity) {
		return models.ErrAlreadyExists
	}
	return nil
}

func (r *InMemoryPeculiarityRepository) Update(_ context.Context, peculiarity *domain.Peculiarity) error {
	if !r.items.replace(peculiarity.ID(), peculiarity) {
		return models.ErrResourceNotFound
	}
	return nil
}

func (r *InMemoryPeculiarityRepository) Delete(_ context.Context, id uuid.UUID) error {
	if !r.items.remove(id) {
		return models.ErrResourceNotFound
	}
	return nil
}
