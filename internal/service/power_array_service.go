package service

import (
	"context"
	"fmt"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/events"
	"github.com/Gaaaybe/Aetherium/internal/interfaces"
	"github.com/Gaaaybe/Aetherium/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreatePowerArrayRequest - новый acervo из существующих сил.
// Dominio == nil берет домен первой силы.
type CreatePowerArrayRequest struct {
	UserID         uuid.UUID
	Nome           string
	Descricao      string
	Dominio        *domain.Domain
	ParametrosBase *domain.PowerParameters
	PowerIDs       []uuid.UUID
	IsPublic       bool
	Notas          string
}

// UpdatePowerArrayRequest - частичное изменение; PowerIDs == nil оставляет состав.
type UpdatePowerArrayRequest struct {
	PowerArrayID   uuid.UUID
	UserID         uuid.UUID
	Nome           *string
	Descricao      *string
	Dominio        *domain.Domain
	ParametrosBase *domain.PowerParameters
	PowerIDs       []uuid.UUID
	IsPublic       *bool
	Notas          *string
}

type PowerArrayService interface {
	CreatePowerArray(ctx context.Context, req CreatePowerArrayRequest) (*domain.PowerArray, error)
	UpdatePowerArray(ctx context.Context, req UpdatePowerArrayRequest) (*domain.PowerArray, error)
	DeletePowerArray(ctx context.Context, powerArrayID, userID uuid.UUID) error
	GetPowerArrayByID(ctx context.Context, powerArrayID, userID uuid.UUID) (*domain.PowerArray, error)
	FetchPublicPowerArrays(ctx context.Context, page int) ([]*domain.PowerArray, error)
	FetchUserPowerArrays(ctx context.Context, userID uuid.UUID, page int) ([]*domain.PowerArray, error)
}

type powerArrayServiceImpl struct {
	arrayRepo       interfaces.PowerArrayRepository
	powerRepo       interfaces.PowerRepository
	peculiarityRepo interfaces.PeculiarityRepository
	bus             *events.Bus
	logger          *zap.Logger
}

func NewPowerArrayService(
	arrayRepo interfaces.PowerArrayRepository,
	powerRepo interfaces.PowerRepository,
	peculiarityRepo interfaces.PeculiarityRepository,
	bus *events.Bus,
	logger *zap.Logger,
) PowerArrayService {
	return &powerArrayServiceImpl{
		arrayRepo:       arrayRepo,
		powerRepo:       powerRepo,
		peculiarityRepo: peculiarityRepo,
		bus:             bus,
		logger:          logger.Named("PowerArrayService"),
	}
}

func (s *powerArrayServiceImpl) CreatePowerArray(ctx context.Context, req CreatePowerArrayRequest) (*domain.PowerArray, error) {
	logFields := []zap.Field{
		zap.String("userID", req.UserID.String()),
		zap.String("nome", req.Nome),
		zap.Int("powers", len(req.PowerIDs)),
	}
	s.logger.Info("Creating power array", logFields...)

	powers, custo, err := s.loadPowers(ctx, req.PowerIDs, req.UserID)
	if err != nil {
		s.logger.Warn("Failed to resolve array powers", append(logFields, zap.Error(err))...)
		return nil, err
	}

	props := domain.PowerArrayProps{
		UserID:         req.UserID,
		Nome:           req.Nome,
		Descricao:      req.Descricao,
		ParametrosBase: req.ParametrosBase,
		Powers:         powers,
		CustoTotal:     custo,
		Notas:          req.Notas,
	}
	switch {
	case req.Dominio != nil:
		props.Dominio = *req.Dominio
	case len(powers) > 0:
		props.Dominio = powers[0].Dominio()
	}

	if req.IsPublic {
		if err := requirePeculiarity(ctx, s.peculiarityRepo, props.Dominio); err != nil {
			s.logger.Warn("Public array references a missing peculiarity", append(logFields, zap.Error(err))...)
			return nil, err
		}
	}

	var array *domain.PowerArray
	if req.UserID == uuid.Nil {
		array, err = domain.NewOfficialPowerArray(props)
	} else {
		array, err = domain.NewPowerArray(props)
	}
	if err != nil {
		s.logger.Warn("Power array validation failed", append(logFields, zap.Error(err))...)
		return nil, err
	}
	if req.IsPublic {
		if array, err = array.MakePublic(); err != nil {
			return nil, models.InvalidVisibility(err.Error())
		}
	}

	if err := s.arrayRepo.Create(ctx, array); err != nil {
		s.logger.Error("Failed to create power array", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to create power array: %w", err)
	}
	if err := s.bus.Dispatch(ctx, array); err != nil {
		s.logger.Error("Failed to dispatch power array events", append(logFields, zap.Error(err))...)
		return nil, err
	}

	s.logger.Info("Power array created", append(logFields, zap.String("powerArrayID", array.ID().String()))...)
	return array, nil
}

func (s *powerArrayServiceImpl) UpdatePowerArray(ctx context.Context, req UpdatePowerArrayRequest) (*domain.PowerArray, error) {
	logFields := []zap.Field{
		zap.String("powerArrayID", req.PowerArrayID.String()),
		zap.String("userID", req.UserID.String()),
	}
	s.logger.Info("Updating power array", logFields...)

	existing, err := s.findArray(ctx, req.PowerArrayID)
	if err != nil {
		return nil, err
	}
	if !existing.CanBeEditedBy(req.UserID) {
		s.logger.Warn("User cannot edit power array", logFields...)
		return nil, models.ErrNotAllowed
	}

	update := domain.PowerArrayUpdate{
		Nome:           req.Nome,
		Descricao:      req.Descricao,
		Dominio:        req.Dominio,
		ParametrosBase: req.ParametrosBase,
		Notas:          req.Notas,
	}
	if req.PowerIDs != nil {
		powers, custo, err := s.loadPowers(ctx, req.PowerIDs, req.UserID)
		if err != nil {
			s.logger.Warn("Failed to resolve array powers", append(logFields, zap.Error(err))...)
			return nil, err
		}
		update.Powers = powers
		update.CustoTotal = &custo
	} else if req.IsPublic != nil && *req.IsPublic && !existing.IsPublic() {
		// каскад строится по текущей видимости сил, а не по снимку в acervo
		powers, err := s.currentPowers(ctx, existing.Powers())
		if err != nil {
			s.logger.Error("Failed to refresh array powers", append(logFields, zap.Error(err))...)
			return nil, err
		}
		update.Powers = powers
	}

	updated, err := existing.Update(update)
	if err != nil {
		s.logger.Warn("Power array validation failed", append(logFields, zap.Error(err))...)
		return nil, err
	}

	if req.IsPublic != nil && *req.IsPublic && !existing.IsPublic() {
		if err := requirePeculiarity(ctx, s.peculiarityRepo, updated.Dominio()); err != nil {
			s.logger.Warn("Cannot publish array referencing a missing peculiarity", append(logFields, zap.Error(err))...)
			return nil, err
		}
	}
	updated, err = toggleVisibility(updated, req.IsPublic, updated.MakePublic, updated.MakePrivate)
	if err != nil {
		s.logger.Warn("Power array visibility change rejected", append(logFields, zap.Error(err))...)
		return nil, err
	}

	if err := s.arrayRepo.Update(ctx, updated); err != nil {
		s.logger.Error("Failed to update power array", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to update power array: %w", err)
	}
	if err := s.bus.Dispatch(ctx, updated); err != nil {
		s.logger.Error("Failed to dispatch power array events", append(logFields, zap.Error(err))...)
		return nil, err
	}

	s.logger.Info("Power array updated", logFields...)
	return updated, nil
}

func (s *powerArrayServiceImpl) DeletePowerArray(ctx context.Context, powerArrayID, userID uuid.UUID) error {
	logFields := []zap.Field{
		zap.String("powerArrayID", powerArrayID.String()),
		zap.String("userID", userID.String()),
	}
	array, err := s.findArray(ctx, powerArrayID)
	if err != nil {
		return err
	}
	if !array.CanBeEditedBy(userID) {
		s.logger.Warn("User cannot delete power array", logFields...)
		return models.ErrNotAllowed
	}
	if err := s.arrayRepo.Delete(ctx, powerArrayID); err != nil {
		s.logger.Error("Failed to delete power array", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to delete power array: %w", err)
	}
	s.logger.Info("Power array deleted", logFields...)
	return nil
}

func (s *powerArrayServiceImpl) GetPowerArrayByID(ctx context.Context, powerArrayID, userID uuid.UUID) (*domain.PowerArray, error) {
	array, err := s.findArray(ctx, powerArrayID)
	if err != nil {
		return nil, err
	}
	if !array.CanBeAccessedBy(userID) {
		return nil, models.ErrNotAllowed
	}
	return array, nil
}

func (s *powerArrayServiceImpl) FetchPublicPowerArrays(ctx context.Context, page int) ([]*domain.PowerArray, error) {
	arrays, err := s.arrayRepo.FindPublic(ctx, page)
	if err != nil {
		s.logger.Error("Failed to fetch public power arrays", zap.Int("page", page), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch public power arrays: %w", err)
	}
	return arrays, nil
}

func (s *powerArrayServiceImpl) FetchUserPowerArrays(ctx context.Context, userID uuid.UUID, page int) ([]*domain.PowerArray, error) {
	arrays, err := s.arrayRepo.FindByUserID(ctx, userID, page)
	if err != nil {
		s.logger.Error("Failed to fetch user power arrays", zap.String("userID", userID.String()), zap.Int("page", page), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch user power arrays: %w", err)
	}
	return arrays, nil
}

func (s *powerArrayServiceImpl) findArray(ctx context.Context, id uuid.UUID) (*domain.PowerArray, error) {
	array, err := s.arrayRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load power array", zap.String("powerArrayID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to load power array: %w", err)
	}
	if array == nil {
		return nil, models.ErrResourceNotFound
	}
	return array, nil
}

// currentPowers перечитывает силы acervo из хранилища. Удаленные силы выпадают из состава.
func (s *powerArrayServiceImpl) currentPowers(ctx context.Context, members []*domain.Power) ([]*domain.Power, error) {
	powers := make([]*domain.Power, 0, len(members))
	for _, member := range members {
		power, err := s.powerRepo.FindByID(ctx, member.ID())
		if err != nil {
			return nil, fmt.Errorf("failed to load power %s: %w", member.ID(), err)
		}
		if power != nil {
			powers = append(powers, power)
		}
	}
	return powers, nil
}

// loadPowers загружает силы по id в заданном порядке и суммирует их стоимость.
// Чужие приватные силы в acervo не допускаются.
func (s *powerArrayServiceImpl) loadPowers(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]*domain.Power, domain.PowerCost, error) {
	powers := make([]*domain.Power, 0, len(ids))
	costs := make([]domain.PowerCost, 0, len(ids))
	for _, id := range ids {
		power, err := s.powerRepo.FindByID(ctx, id)
		if err != nil {
			return nil, domain.PowerCost{}, fmt.Errorf("failed to load power %s: %w", id, err)
		}
		if power == nil {
			return nil, domain.PowerCost{}, fmt.Errorf("power %s: %w", id, models.ErrResourceNotFound)
		}
		if !power.CanBeAccessedBy(userID) {
			return nil, domain.PowerCost{}, fmt.Errorf("power %s: %w", id, models.ErrNotAllowed)
		}
		powers = append(powers, power)
		costs = append(costs, power.CustoTotal())
	}
	custo, err := domain.SumCosts(costs...)
	if err != nil {
		return nil, domain.PowerCost{}, err
	}
	return powers, custo, nil
}
