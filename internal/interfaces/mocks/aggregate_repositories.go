package mocks

import (
	"context"

	"github.com/Gaaaybe/Aetherium/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// PowerRepository is a mock type for the PowerRepository type
type PowerRepository struct {
	mock.Mock
}

func (m *PowerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Power, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*domain.Power)
	return v, args.Error(1)
}
func (m *PowerRepository) FindMany(ctx context.Context, page int) ([]*domain.Power, error) {
	args := m.Called(ctx, page)
	list, _ := args.Get(0).([]*domain.Power)
	return list, args.Error(1)
}
func (m *PowerRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Power, error) {
	args := m.Called(ctx, userID, page)
	list, _ := args.Get(0).([]*domain.Power)
	return list, args.Error(1)
}
func (m *PowerRepository) FindPublic(ctx context.Context, page int) ([]*domain.Power, error) {
	args := m.Called(ctx, page)
	list, _ := args.Get(0).([]*domain.Power)
	return list, args.Error(1)
}
func (m *PowerRepository) FindByDomain(ctx context.Context, name domain.DomainName, page int) ([]*domain.Power, error) {
	args := m.Called(ctx, name, page)
	list, _ := args.Get(0).([]*domain.Power)
	return list, args.Error(1)
}
func (m *PowerRepository) FindUserCreated(ctx context.Context, page int) ([]*domain.Power, error) {
	args := m.Called(ctx, page)
	list, _ := args.Get(0).([]*domain.Power)
	return list, args.Error(1)
}
func (m *PowerRepository) Create(ctx context.Context, v *domain.Power) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *PowerRepository) Update(ctx context.Context, v *domain.Power) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *PowerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// PowerArrayRepository is a mock type for the PowerArrayRepository type
type PowerArrayRepository struct {
	mock.Mock
}

func (m *PowerArrayRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.PowerArray, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*domain.PowerArray)
	return v, args.Error(1)
}
func (m *PowerArrayRepository) FindMany(ctx context.Context, page int) ([]*domain.PowerArray, error) {
	args := m.Called(ctx, page)
	list, _ := args.Get(0).([]*domain.PowerArray)
	return list, args.Error(1)
}
func (m *PowerArrayRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page int) ([]*domain.PowerArray, error) {
	args := m.Called(ctx, userID, page)
	list, _ := args.Get(0).([]*domain.PowerArray)
	return list, args.Error(1)
}
func (m *PowerArrayRepository) FindPublic(ctx context.Context, page int) ([]*domain.PowerArray, error) {
	args := m.Called(ctx, page)
	list, _ := args.Get(0).([]*domain.PowerArray)
	return list, args.Error(1)
}
func (m *PowerArrayRepository) FindByDomain(ctx context.Context, name domain.DomainName, page int) ([]*domain.PowerArray, error) {
	args := m.Called(ctx, name, page)
	list, _ := args.Get(0).([]*domain.PowerArray)
	return list, args.Error(1)
}
func (m *PowerArrayRepository) Create(ctx context.Context, v *domain.PowerArray) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *PowerArrayRepository) Update(ctx context.Context, v *domain.PowerArray) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *PowerArrayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// PeculiarityRepository is a mock type for the PeculiarityRepository type
type PeculiarityRepository struct {
	mock.Mock
}

func (m *PeculiarityRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Peculiarity, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*domain.Peculiarity)
	return v, args.Error(1)
}
func (m *PeculiarityRepository) FindMany(ctx context.Context, page int) ([]*domain.Peculiarity, error) {
	args := m.Called(ctx, page)
	list, _ := args.Get(0).([]*domain.Peculiarity)
	return list, args.Error(1)
}
func (m *PeculiarityRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Peculiarity, error) {
	args := m.Called(ctx, userID, page)
	list, _ := args.Get(0).([]*domain.Peculiarity)
	return list, args.Error(1)
}
func (m *PeculiarityRepository) FindPublic(ctx context.Context, page int) ([]*domain.Peculiarity, error) {
	args := m.Called(ctx, page)
	list, _ := args.Get(0).([]*domain.Peculiarity)
	return list, args.Error(1)
}
func (m *PeculiarityRepository) Create(ctx context.Context, v *domain.Peculiarity) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *PeculiarityRepository) Update(ctx context.Context, v *domain.Peculiarity) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *PeculiarityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
