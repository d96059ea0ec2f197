package repository

import (
	"context"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/interfaces"
	"github.com/Gaaaybe/Aetherium/internal/models"
)

// InMemoryEffectRepository - каталог эффектов в памяти. Используется в тестах и для сидов.
type InMemoryEffectRepository struct {
	items *store[string, *domain.EffectBase]
}

var _ interfaces.EffectRepository = (*InMemoryEffectRepository)(nil)

func NewInMemoryEffectRepository(seed ...*domain.EffectBase) *InMemoryEffectRepository {
	r := &InMemoryEffectRepository{items: newStore[string, *domain.EffectBase]()}
	for _, e := range seed {
		r.items.insert(e.ID, e)
	}
	return r
}

func (r *InMemoryEffectRepository) FindByID(_ context.Context, id string) (*domain.EffectBase, error) {
	e, ok := r.items.get(id)
	if !ok {
		return nil, nil
	}
	return e, nil
}

func (r *InMemoryEffectRepository) FindAll(_ context.Context) ([]*domain.EffectBase, error) {
	return r.items.list(), nil
}

func (r *InMemoryEffectRepository) FindByCategory(_ context.Context, categoria string) ([]*domain.EffectBase, error) {
	return filter(r.items.list(), func(e *domain.EffectBase) bool { return e.HasCategoria(categoria) }), nil
}

func (r *InMemoryEffectRepository) FindCustom(_ context.Context) ([]*domain.EffectBase, error) {
	return filter(r.items.list(), func(e *domain.EffectBase) bool { return e.Custom }), nil
}

func (r *InMemoryEffectRepository) Create(_ context.Context, effect *domain.EffectBase) error {
	if !r.items.insert(effect.ID, effect) {
		return models.ErrAlreadyExists
	}
	return nil
}

// InMemoryModificationRepository - каталог модификаций в памяти.
type InMemoryModificationRepository struct {
	items *store[string, *domain.ModificationBase]
}

var _ interfaces.ModificationRepository = (*InMemoryModificationRepository)(nil)

func NewInMemoryModificationRepository(seed ...*domain.ModificationBase) *InMemoryModificationRepository {
	r := &InMemoryModificationRepository{items: newStore[string, *domain.ModificationBase]()}
	for _, m := range seed {
		r.items.insert(m.ID, m)
	}
	return r
}

func (r *InMemoryModificationRepository) FindByID(_ context.Context, id string) (*domain.ModificationBase, error) {
	m, ok := r.items.get(id)
	if !ok {
		return nil, nil
	}
	return m, nil
}

func (r *InMemoryModificationRepository) FindAll(_ context.Context) ([]*domain.ModificationBase, error) {
	return r.items.list(), nil
}

func (r *InMemoryModificationRepository) FindByType(_ context.Context, tipo domain.ModificationType) ([]*domain.ModificationBase, error) {
	return filter(r.items.list(), func(m *domain.ModificationBase) bool { return m.Tipo == tipo }), nil
}

func (r *InMemoryModificationRepository) FindByCategory(_ context.Context, categoria string) ([]*domain.ModificationBase, error) {
	return filter(r.items.list(), func(m *domain.ModificationBase) bool { return m.Categoria == categoria }), nil
}

func (r *InMemoryModificationRepository) FindCustom(_ context.Context) ([]*domain.ModificationBase, error) {
	return filter(r.items.list(), func(m *domain.ModificationBase) bool { return m.Custom }), nil
}

func (r *InMemoryModificationRepository) Create(_ context.Context, modification *domain.ModificationBase) error {
	if !r.items.insert(modification.ID, modification) {
		return models.ErrAlreadyExists
	}
	return nil
}
