package mocks

import (
	"context"

	"github.com/Gaaaybe/Aetherium/internal/domain"

	"github.com/stretchr/testify/mock"
)

// EffectRepository is a mock type for the EffectRepository type
type EffectRepository struct {
	mock.Mock
}

func (m *EffectRepository) FindByID(ctx context.Context, id string) (*domain.EffectBase, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*domain.EffectBase)
	return e, args.Error(1)
}
func (m *EffectRepository) FindAll(ctx context.Context) ([]*domain.EffectBase, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*domain.EffectBase)
	return list, args.Error(1)
}
func (m *EffectRepository) FindByCategory(ctx context.Context, categoria string) ([]*domain.EffectBase, error) {
	args := m.Called(ctx, categoria)
	list, _ := args.Get(0).([]*domain.EffectBase)
	return list, args.Error(1)
}
func (m *EffectRepository) FindCustom(ctx context.Context) ([]*domain.EffectBase, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*domain.EffectBase)
	return list, args.Error(1)
}
func (m *EffectRepository) Create(ctx context.Context, effect *domain.EffectBase) error {
	args := m.Called(ctx, effect)
	return args.Error(0)
}

// ModificationRepository is a mock type for the ModificationRepository type
type ModificationRepository struct {
	mock.Mock
}

func (m *ModificationRepository) FindByID(ctx context.Context, id string) (*domain.ModificationBase, error) {
	args := m.Called(ctx, id)
	mod, _ := args.Get(0).(*domain.ModificationBase)
	return mod, args.Error(1)
}
func (m *ModificationRepository) FindAll(ctx context.Context) ([]*domain.ModificationBase, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*domain.ModificationBase)
	return list, args.Error(1)
}
func (m *ModificationRepository) FindByType(ctx context.Context, tipo domain.ModificationType) ([]*domain.ModificationBase, error) {
	args := m.Called(ctx, tipo)
	list, _ := args.Get(0).([]*domain.ModificationBase)
	return list, args.Error(1)
}
func (m *ModificationRepository) FindByCategory(ctx context.Context, categoria string) ([]*domain.ModificationBase, error) {
	args := m.Called(ctx, categoria)
	list, _ := args.Get(0).([]*domain.ModificationBase)
	return list, args.Error(1)
}
func (m *ModificationRepository) FindCustom(ctx context.Context) ([]*domain.ModificationBase, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*domain.ModificationBase)
	return list, args.Error(1)
}
func (m *ModificationRepository) Create(ctx context.Context, modification *domain.ModificationBase) error {
	args := m.Called(ctx, modification)
	return args.Error(0)
}
