package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/events"
	"github.com/Gaaaybe/Aetherium/internal/interfaces"
	"github.com/Gaaaybe/Aetherium/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreatePowerRequest - данные новой силы. UserID == uuid.Nil создает официальную силу.
type CreatePowerRequest struct {
	UserID              uuid.UUID
	Nome                string
	Descricao           string
	Dominio             domain.Domain
	Parametros          *domain.PowerParameters // nil - параметры по умолчанию
	Effects             []domain.AppliedEffect
	GlobalModifications []domain.AppliedModification
	CustoAlternativo    *domain.AlternativeCost
	IsPublic            bool
	Notas               string
}

// UpdatePowerRequest - частичное изменение силы; nil поля не меняются.
type UpdatePowerRequest struct {
	PowerID             uuid.UUID
	UserID              uuid.UUID
	Nome                *string
	Descricao           *string
	Dominio             *domain.Domain
	Parametros          *domain.PowerParameters
	Effects             []domain.AppliedEffect
	GlobalModifications []domain.AppliedModification
	CustoAlternativo    *domain.AlternativeCost
	IsPublic            *bool
	Notas               *string
}

// PowerService управляет библиотекой сил пользователя.
type PowerService interface {
	CreatePower(ctx context.Context, req CreatePowerRequest) (*domain.Power, error)
	UpdatePower(ctx context.Context, req UpdatePowerRequest) (*domain.Power, error)
	DeletePower(ctx context.Context, powerID, userID uuid.UUID) error
	GetPowerByID(ctx context.Context, powerID, userID uuid.UUID) (*domain.Power, error)
	// CopyPublicPower копирует официальную или публичную силу в приватную библиотеку пользователя.
	CopyPublicPower(ctx context.Context, powerID, userID uuid.UUID) (*domain.Power, error)
	FetchPublicPowers(ctx context.Context, page int) ([]*domain.Power, error)
	FetchUserPowers(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Power, error)
	FetchPowersByDomain(ctx context.Context, name domain.DomainName, page int) ([]*domain.Power, error)
}

type powerServiceImpl struct {
	powerRepo       interfaces.PowerRepository
	peculiarityRepo interfaces.PeculiarityRepository
	calculator      PowerCostCalculator
	bus             *events.Bus
	logger          *zap.Logger
}

func NewPowerService(
	powerRepo interfaces.PowerRepository,
	peculiarityRepo interfaces.PeculiarityRepository,
	calculator PowerCostCalculator,
	bus *events.Bus,
	logger *zap.Logger,
) PowerService {
	return &powerServiceImpl{
		powerRepo:       powerRepo,
		peculiarityRepo: peculiarityRepo,
		calculator:      calculator,
		bus:             bus,
		logger:          logger.Named("PowerService"),
	}
}

func (s *powerServiceImpl) CreatePower(ctx context.Context, req CreatePowerRequest) (*domain.Power, error) {
	logFields := []zap.Field{
		zap.String("userID", req.UserID.String()),
		zap.String("nome", req.Nome),
		zap.Bool("isPublic", req.IsPublic),
	}
	s.logger.Info("Creating power", logFields...)

	cost, err := s.calculator.Calculate(ctx, CostInput{Effects: req.Effects, GlobalModifications: req.GlobalModifications})
	if err != nil {
		s.logger.Warn("Power cost calculation failed", append(logFields, zap.Error(err))...)
		return nil, err
	}

	if req.IsPublic {
		if err := requirePeculiarity(ctx, s.peculiarityRepo, req.Dominio); err != nil {
			s.logger.Warn("Public power references a missing peculiarity", append(logFields, zap.Error(err))...)
			return nil, err
		}
	}

	parametros := domain.DefaultPowerParameters()
	if req.Parametros != nil {
		parametros = *req.Parametros
	}
	props := domain.PowerProps{
		UserID:              req.UserID,
		Nome:                req.Nome,
		Descricao:           req.Descricao,
		Dominio:             req.Dominio,
		Parametros:          parametros,
		Effects:             cost.ApplyTo(req.Effects),
		GlobalModifications: req.GlobalModifications,
		CustoTotal:          cost.CustoTotal,
		CustoAlternativo:    req.CustoAlternativo,
		Notas:               req.Notas,
	}

	var power *domain.Power
	if req.UserID == uuid.Nil {
		power, err = domain.NewOfficialPower(props)
	} else {
		power, err = domain.NewPower(props)
	}
	if err != nil {
		s.logger.Warn("Power validation failed", append(logFields, zap.Error(err))...)
		return nil, err
	}

	if req.IsPublic {
		if power, err = power.MakePublic(); err != nil {
			return nil, models.InvalidVisibility(err.Error())
		}
	}

	if err := s.powerRepo.Create(ctx, power); err != nil {
		s.logger.Error("Failed to create power", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to create power: %w", err)
	}
	if err := s.bus.Dispatch(ctx, power); err != nil {
		s.logger.Error("Failed to dispatch power events", append(logFields, zap.Error(err))...)
		return nil, err
	}

	s.logger.Info("Power created", append(logFields, zap.String("powerID", power.ID().String()), zap.Int("pda", power.CustoTotal().PdA()))...)
	return power, nil
}

func (s *powerServiceImpl) UpdatePower(ctx context.Context, req UpdatePowerRequest) (*domain.Power, error) {
	logFields := []zap.Field{
		zap.String("powerID", req.PowerID.String()),
		zap.String("userID", req.UserID.String()),
	}
	s.logger.Info("Updating power", logFields...)

	existing, err := s.editablePower(ctx, req.PowerID, req.UserID)
	if err != nil {
		return nil, err
	}

	update := domain.PowerUpdate{
		Nome:                req.Nome,
		Descricao:           req.Descricao,
		Dominio:             req.Dominio,
		Parametros:          req.Parametros,
		Effects:             req.Effects,
		GlobalModifications: req.GlobalModifications,
		CustoAlternativo:    req.CustoAlternativo,
		Notas:               req.Notas,
	}

	if req.Effects != nil || req.GlobalModifications != nil {
		effects := req.Effects
		if effects == nil {
			effects = existing.Effects()
		}
		globals := req.GlobalModifications
		if globals == nil {
			globals = existing.GlobalModifications()
		}
		cost, err := s.calculator.Calculate(ctx, CostInput{Effects: effects, GlobalModifications: globals})
		if err != nil {
			s.logger.Warn("Power cost recalculation failed", append(logFields, zap.Error(err))...)
			return nil, err
		}
		update.CustoTotal = &cost.CustoTotal
		if req.Effects != nil {
			update.Effects = cost.ApplyTo(req.Effects)
		}
	}

	updated, err := existing.Update(update)
	if err != nil {
		s.logger.Warn("Power validation failed", append(logFields, zap.Error(err))...)
		return nil, err
	}

	if req.IsPublic != nil && *req.IsPublic && !existing.IsPublic() {
		if err := requirePeculiarity(ctx, s.peculiarityRepo, updated.Dominio()); err != nil {
			s.logger.Warn("Cannot publish power referencing a missing peculiarity", append(logFields, zap.Error(err))...)
			return nil, err
		}
	}
	updated, err = toggleVisibility(updated, req.IsPublic, updated.MakePublic, updated.MakePrivate)
	if err != nil {
		s.logger.Warn("Power visibility change rejected", append(logFields, zap.Error(err))...)
		return nil, err
	}

	if err := s.powerRepo.Update(ctx, updated); err != nil {
		s.logger.Error("Failed to update power", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to update power: %w", err)
	}
	if err := s.bus.Dispatch(ctx, updated); err != nil {
		s.logger.Error("Failed to dispatch power events", append(logFields, zap.Error(err))...)
		return nil, err
	}

	s.logger.Info("Power updated", logFields...)
	return updated, nil
}

func (s *powerServiceImpl) DeletePower(ctx context.Context, powerID, userID uuid.UUID) error {
	logFields := []zap.Field{
		zap.String("powerID", powerID.String()),
		zap.String("userID", userID.String()),
	}
	if _, err := s.editablePower(ctx, powerID, userID); err != nil {
		return err
	}
	if err := s.powerRepo.Delete(ctx, powerID); err != nil {
		s.logger.Error("Failed to delete power", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to delete power: %w", err)
	}
	s.logger.Info("Power deleted", logFields...)
	return nil
}

func (s *powerServiceImpl) GetPowerByID(ctx context.Context, powerID, userID uuid.UUID) (*domain.Power, error) {
	power, err := s.findPower(ctx, powerID)
	if err != nil {
		return nil, err
	}
	if !power.CanBeAccessedBy(userID) {
		return nil, models.ErrNotAllowed
	}
	return power, nil
}

func (s *powerServiceImpl) CopyPublicPower(ctx context.Context, powerID, userID uuid.UUID) (*domain.Power, error) {
	logFields := []zap.Field{
		zap.String("sourcePowerID", powerID.String()),
		zap.String("userID", userID.String()),
	}
	s.logger.Info("Copying power into user library", logFields...)

	source, err := s.findPower(ctx, powerID)
	if err != nil {
		return nil, err
	}
	// Копировать можно только то, что видно анонимно
	if !source.CanBeAccessedBy(uuid.Nil) {
		s.logger.Warn("Power is private, copy refused", logFields...)
		return nil, models.ErrNotAllowed
	}

	props := source.Props()
	props.ID = uuid.Nil
	props.UserID = userID
	props.IsPublic = false
	props.CreatedAt = time.Time{}
	props.UpdatedAt = nil

	copied, err := domain.NewPower(props)
	if err != nil {
		return nil, err
	}
	if err := s.powerRepo.Create(ctx, copied); err != nil {
		s.logger.Error("Failed to store power copy", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to create power copy: %w", err)
	}

	s.logger.Info("Power copied", append(logFields, zap.String("powerID", copied.ID().String()))...)
	return copied, nil
}

func (s *powerServiceImpl) FetchPublicPowers(ctx context.Context, page int) ([]*domain.Power, error) {
	powers, err := s.powerRepo.FindPublic(ctx, page)
	if err != nil {
		s.logger.Error("Failed to fetch public powers", zap.Int("page", page), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch public powers: %w", err)
	}
	return powers, nil
}

func (s *powerServiceImpl) FetchUserPowers(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Power, error) {
	powers, err := s.powerRepo.FindByUserID(ctx, userID, page)
	if err != nil {
		s.logger.Error("Failed to fetch user powers", zap.String("userID", userID.String()), zap.Int("page", page), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch user powers: %w", err)
	}
	return powers, nil
}

func (s *powerServiceImpl) FetchPowersByDomain(ctx context.Context, name domain.DomainName, page int) ([]*domain.Power, error) {
	if !name.IsValid() {
		return nil, fmt.Errorf("unknown domain %q: %w", name, models.ErrResourceNotFound)
	}
	powers, err := s.powerRepo.FindByDomain(ctx, name, page)
	if err != nil {
		s.logger.Error("Failed to fetch powers by domain", zap.String("domain", string(name)), zap.Int("page", page), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch powers by domain: %w", err)
	}
	return powers, nil
}

func (s *powerServiceImpl) findPower(ctx context.Context, powerID uuid.UUID) (*domain.Power, error) {
	power, err := s.powerRepo.FindByID(ctx, powerID)
	if err != nil {
		s.logger.Error("Failed to load power", zap.String("powerID", powerID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to load power: %w", err)
	}
	if power == nil {
		return nil, models.ErrResourceNotFound
	}
	return power, nil
}

func (s *powerServiceImpl) editablePower(ctx context.Context, powerID, userID uuid.UUID) (*domain.Power, error) {
	power, err := s.findPower(ctx, powerID)
	if err != nil {
		return nil, err
	}
	if !power.CanBeEditedBy(userID) {
		s.logger.Warn("User cannot edit power", zap.String("powerID", powerID.String()), zap.String("userID", userID.String()))
		return nil, models.ErrNotAllowed
	}
	return power, nil
}
