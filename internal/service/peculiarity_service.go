package service

import (
	"context"
	"fmt"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/interfaces"
	"github.com/Gaaaybe/Aetherium/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreatePeculiarityRequest struct {
	UserID     uuid.UUID
	Nome       string
	Descricao  string
	Espiritual bool
	IsPublic   bool
}

type UpdatePeculiarityRequest struct {
	PeculiarityID uuid.UUID
	UserID        uuid.UUID
	Nome          *string
	Descricao     *string
	Espiritual    *bool
	IsPublic      *bool
}

// PeculiarityService управляет peculiaridades, на которые ссылается домен peculiar.
type PeculiarityService interface {
	CreatePeculiarity(ctx context.Context, req CreatePeculiarityRequest) (*domain.Peculiarity, error)
	UpdatePeculiarity(ctx context.Context, req UpdatePeculiarityRequest) (*domain.Peculiarity, error)
	DeletePeculiarity(ctx context.Context, peculiarityID, userID uuid.UUID) error
	GetPeculiarityByID(ctx context.Context, peculiarityID, userID uuid.UUID) (*domain.Peculiarity, error)
	FetchUserPeculiarities(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Peculiarity, error)
}

type peculiarityServiceImpl struct {
	repo   interfaces.PeculiarityRepository
	logger *zap.Logger
}

func NewPeculiarityService(repo interfaces.PeculiarityRepository, logger *zap.Logger) PeculiarityService {
	return &peculiarityServiceImpl{
		repo:   repo,
		logger: logger.Named("PeculiarityService"),
	}
}

func (s *peculiarityServiceImpl) CreatePeculiarity(ctx context.Context, req CreatePeculiarityRequest) (*domain.Peculiarity, error) {
	logFields := []zap.Field{
		zap.String("userID", req.UserID.String()),
		zap.String("nome", req.Nome),
	}
	peculiarity, err := domain.NewPeculiarity(domain.PeculiarityProps{
		UserID:     req.UserID,
		Nome:       req.Nome,
		Descricao:  req.Descricao,
		Espiritual: req.Espiritual,
		IsPublic:   req.IsPublic,
	})
	if err != nil {
		s.logger.Warn("Peculiarity validation failed", append(logFields, zap.Error(err))...)
		return nil, err
	}
	if err := s.repo.Create(ctx, peculiarity); err != nil {
		s.logger.Error("Failed to create peculiarity", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to create peculiarity: %w", err)
	}
	s.logger.Info("Peculiarity created", append(logFields, zap.String("peculiarityID", peculiarity.ID().String()))...)
	return peculiarity, nil
}

func (s *peculiarityServiceImpl) UpdatePeculiarity(ctx context.Context, req UpdatePeculiarityRequest) (*domain.Peculiarity, error) {
	logFields := []zap.Field{
		zap.String("peculiarityID", req.PeculiarityID.String()),
		zap.String("userID", req.UserID.String()),
	}
	existing, err := s.find(ctx, req.PeculiarityID)
	if err != nil {
		return nil, err
	}
	if !existing.CanBeEditedBy(req.UserID) {
		s.logger.Warn("User cannot edit peculiarity", logFields...)
		return nil, models.ErrNotAllowed
	}

	updated, err := existing.Update(domain.PeculiarityUpdate{
		Nome:       req.Nome,
		Descricao:  req.Descricao,
		Espiritual: req.Espiritual,
	})
	if err != nil {
		s.logger.Warn("Peculiarity validation failed", append(logFields, zap.Error(err))...)
		return nil, err
	}
	if updated, err = toggleVisibility(updated, req.IsPublic, updated.MakePublic, updated.MakePrivate); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		s.logger.Error("Failed to update peculiarity", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to update peculiarity: %w", err)
	}
	s.logger.Info("Peculiarity updated", logFields...)
	return updated, nil
}

func (s *peculiarityServiceImpl) DeletePeculiarity(ctx context.Context, peculiarityID, userID uuid.UUID) error {
	logFields := []zap.Field{
		zap.String("peculiarityID", peculiarityID.String()),
		zap.String("userID", userID.String()),
	}
	peculiarity, err := s.find(ctx, peculiarityID)
	if err != nil {
		return err
	}
	if !peculiarity.CanBeEditedBy(userID) {
		s.logger.Warn("User cannot delete peculiarity", logFields...)
		return models.ErrNotAllowed
	}
	// Силы со ссылкой на peculiaridade не удаляются: ссылка проверяется только при публикации
	if err := s.repo.Delete(ctx, peculiarityID); err != nil {
		s.logger.Error("Failed to delete peculiarity", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to delete peculiarity: %w", err)
	}
	s.logger.Info("Peculiarity deleted", logFields...)
	return nil
}

func (s *peculiarityServiceImpl) GetPeculiarityByID(ctx context.Context, peculiarityID, userID uuid.UUID) (*domain.Peculiarity, error) {
	peculiarity, err := s.find(ctx, peculiarityID)
	if err != nil {
		return nil, err
	}
	if !peculiarity.CanBeAccessedBy(userID) {
		return nil, models.ErrNotAllowed
	}
	return peculiarity, nil
}

func (s *peculiarityServiceImpl) FetchUserPeculiarities(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Peculiarity, error) {
	list, err := s.repo.FindByUserID(ctx, userID, page)
	if err != nil {
		s.logger.Error("Failed to fetch user peculiarities", zap.String("userID", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch user peculiarities: %w", err)
	}
	return list, nil
}

func (s *peculiarityServiceImpl) find(ctx context.Context, id uuid.UUID) (*domain.Peculiarity, error) {
	peculiarity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load peculiarity", zap.String("peculiarityID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to load peculiarity: %w", err)
	}
	if peculiarity == nil {
		return nil, models.ErrResourceNotFound
	}
	return peculiarity, nil
}
