package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/interfaces"
	"github.com/Gaaaybe/Aetherium/internal/models"

	"go.uber.org/zap"
)

// ModificationFilter - необязательные фильтры списка модификаций.
type ModificationFilter struct {
	Tipo      domain.ModificationType
	Categoria string
}

// CatalogService читает каталог и добавляет в него пользовательские записи.
type CatalogService interface {
	FetchEffects(ctx context.Context, categoria string) ([]*domain.EffectBase, error)
	FetchModifications(ctx context.Context, filter ModificationFilter) ([]*domain.ModificationBase, error)
	CreateCustomEffect(ctx context.Context, effect domain.EffectBase) (*domain.EffectBase, error)
	CreateCustomModification(ctx context.Context, modification domain.ModificationBase) (*domain.ModificationBase, error)
	// ImportCatalog загружает официальный каталог. Уже существующие id пропускаются.
	ImportCatalog(ctx context.Context, catalog CatalogData) (ImportResult, error)
}

type catalogServiceImpl struct {
	effectRepo       interfaces.EffectRepository
	modificationRepo interfaces.ModificationRepository
	logger           *zap.Logger
}

func NewCatalogService(
	effectRepo interfaces.EffectRepository,
	modificationRepo interfaces.ModificationRepository,
	logger *zap.Logger,
) CatalogService {
	return &catalogServiceImpl{
		effectRepo:       effectRepo,
		modificationRepo: modificationRepo,
		logger:           logger.Named("CatalogService"),
	}
}

func (s *catalogServiceImpl) FetchEffects(ctx context.Context, categoria string) ([]*domain.EffectBase, error) {
	var (
		effects []*domain.EffectBase
		err     error
	)
	if categoria != "" {
		effects, err = s.effectRepo.FindByCategory(ctx, categoria)
	} else {
		effects, err = s.effectRepo.FindAll(ctx)
	}
	if err != nil {
		s.logger.Error("Failed to fetch effects", zap.String("categoria", categoria), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch effects: %w", err)
	}
	return effects, nil
}

// FetchModifications фильтрует по типу, затем по категории. Пустой фильтр возвращает весь каталог.
func (s *catalogServiceImpl) FetchModifications(ctx context.Context, filter ModificationFilter) ([]*domain.ModificationBase, error) {
	var (
		mods []*domain.ModificationBase
		err  error
	)
	switch {
	case filter.Tipo != "":
		mods, err = s.modificationRepo.FindByType(ctx, filter.Tipo)
	case filter.Categoria != "":
		mods, err = s.modificationRepo.FindByCategory(ctx, filter.Categoria)
	default:
		mods, err = s.modificationRepo.FindAll(ctx)
	}
	if err != nil {
		s.logger.Error("Failed to fetch modifications", zap.String("tipo", string(filter.Tipo)), zap.String("categoria", filter.Categoria), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch modifications: %w", err)
	}
	if filter.Tipo != "" && filter.Categoria != "" {
		filtered := mods[:0:0]
		for _, m := range mods {
			if m.Categoria == filter.Categoria {
				filtered = append(filtered, m)
			}
		}
		mods = filtered
	}
	return mods, nil
}

func (s *catalogServiceImpl) CreateCustomEffect(ctx context.Context, effect domain.EffectBase) (*domain.EffectBase, error) {
	effect.Custom = true
	created, err := domain.NewEffectBase(effect)
	if err != nil {
		return nil, err
	}
	if err := s.effectRepo.Create(ctx, created); err != nil {
		if errors.Is(err, models.ErrAlreadyExists) {
			s.logger.Warn("Effect id already taken", zap.String("effectID", created.ID))
			return nil, err
		}
		s.logger.Error("Failed to create custom effect", zap.String("effectID", created.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to create effect: %w", err)
	}
	s.logger.Info("Custom effect created", zap.String("effectID", created.ID))
	return created, nil
}

func (s *catalogServiceImpl) CreateCustomModification(ctx context.Context, modification domain.ModificationBase) (*domain.ModificationBase, error) {
	modification.Custom = true
	created, err := domain.NewModificationBase(modification)
	if err != nil {
		return nil, err
	}
	if err := s.modificationRepo.Create(ctx, created); err != nil {
		if errors.Is(err, models.ErrAlreadyExists) {
			s.logger.Warn("Modification id already taken", zap.String("modificationID", created.ID))
			return nil, err
		}
		s.logger.Error("Failed to create custom modification", zap.String("modificationID", created.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to create modification: %w", err)
	}
	s.logger.Info("Custom modification created", zap.String("modificationID", created.ID))
	return created, nil
}
