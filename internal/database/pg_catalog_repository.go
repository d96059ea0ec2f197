package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/interfaces"
	"github.com/Gaaaybe/Aetherium/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Каталог хранится документом JSONB, отдельные колонки нужны только для фильтров.
const (
	selectEffectBasesQuery     = `SELECT document FROM effect_bases`
	getEffectBaseByIDQuery     = selectEffectBasesQuery + ` WHERE id = $1`
	listEffectBasesQuery       = selectEffectBasesQuery + ` ORDER BY id`
	listEffectsByCategoryQuery = selectEffectBasesQuery + ` WHERE $1 = ANY(categorias) ORDER BY id`
	listCustomEffectsQuery     = selectEffectBasesQuery + ` WHERE custom ORDER BY id`
	insertEffectBaseQuery      = `INSERT INTO effect_bases (id, categorias, custom, document) VALUES ($1, $2, $3, $4)`

	selectModificationBasesQuery     = `SELECT document FROM modification_bases`
	getModificationBaseByIDQuery     = selectModificationBasesQuery + ` WHERE id = $1`
	listModificationBasesQuery       = selectModificationBasesQuery + ` ORDER BY id`
	listModificationsByTypeQuery     = selectModificationBasesQuery + ` WHERE tipo = $1 ORDER BY id`
	listModificationsByCategoryQuery = selectModificationBasesQuery + ` WHERE categoria = $1 ORDER BY id`
	listCustomModificationsQuery     = selectModificationBasesQuery + ` WHERE custom ORDER BY id`
	insertModificationBaseQuery      = `INSERT INTO modification_bases (id, tipo, categoria, custom, document) VALUES ($1, $2, $3, $4, $5)`
)

type catalogRecord struct {
	Document []byte `db:"document"`
}

var _ interfaces.EffectRepository = (*pgEffectRepository)(nil)

type pgEffectRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

func NewPgEffectRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.EffectRepository {
	return &pgEffectRepository{
		db:     db,
		logger: logger.Named("PgEffectRepo"),
	}
}

func (r *pgEffectRepository) FindByID(ctx context.Context, id string) (*domain.EffectBase, error) {
	var rec catalogRecord
	if err := pgxscan.Get(ctx, r.db, &rec, getEffectBaseByIDQuery, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Effect base not found", zap.String("effectID", id))
			return nil, nil
		}
		r.logger.Error("Failed to get effect base", zap.String("effectID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get effect base %s: %w", id, err)
	}
	return decodeCatalog[domain.EffectBase](rec)
}

func (r *pgEffectRepository) FindAll(ctx context.Context) ([]*domain.EffectBase, error) {
	return r.list(ctx, listEffectBasesQuery)
}

func (r *pgEffectRepository) FindByCategory(ctx context.Context, categoria string) ([]*domain.EffectBase, error) {
	return r.list(ctx, listEffectsByCategoryQuery, categoria)
}

func (r *pgEffectRepository) FindCustom(ctx context.Context) ([]*domain.EffectBase, error) {
	return r.list(ctx, listCustomEffectsQuery)
}

func (r *pgEffectRepository) Create(ctx context.Context, effect *domain.EffectBase) error {
	logFields := []zap.Field{zap.String("effectID", effect.ID), zap.Bool("custom", effect.Custom)}
	document, err := json.Marshal(effect)
	if err != nil {
		return fmt.Errorf("failed to encode effect base %s: %w", effect.ID, err)
	}
	categorias := effect.Categorias
	if categorias == nil {
		categorias = []string{}
	}
	if _, err := r.db.Exec(ctx, insertEffectBaseQuery, effect.ID, categorias, effect.Custom, document); err != nil {
		if mapped := mapPgError(err); errors.Is(mapped, models.ErrAlreadyExists) {
			r.logger.Warn("Effect base already exists", logFields...)
			return mapped
		}
		r.logger.Error("Failed to create effect base", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create effect base %s: %w", effect.ID, err)
	}
	r.logger.Info("Effect base created", logFields...)
	return nil
}

func (r *pgEffectRepository) list(ctx context.Context, query string, args ...any) ([]*domain.EffectBase, error) {
	var recs []catalogRecord
	if err := pgxscan.Select(ctx, r.db, &recs, query, args...); err != nil {
		r.logger.Error("Failed to list effect bases", zap.Error(err))
		return nil, fmt.Errorf("failed to list effect bases: %w", err)
	}
	return decodeCatalogList[domain.EffectBase](recs)
}

var _ interfaces.ModificationRepository = (*pgModificationRepository)(nil)

type pgModificationRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

func NewPgModificationRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.ModificationRepository {
	return &pgModificationRepository{
		db:     db,
		logger: logger.Named("PgModificationRepo"),
	}
}

func (r *pgModificationRepository) FindByID(ctx context.Context, id string) (*domain.ModificationBase, error) {
	var rec catalogRecord
	if err := pgxscan.Get(ctx, r.db, &rec, getModificationBaseByIDQuery, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Modification base not found", zap.String("modificationID", id))
			return nil, nil
		}
		r.logger.Error("Failed to get modification base", zap.String("modificationID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get modification base %s: %w", id, err)
	}
	return decodeCatalog[domain.ModificationBase](rec)
}

func (r *pgModificationRepository) FindAll(ctx context.Context) ([]*domain.ModificationBase, error) {
	return r.list(ctx, listModificationBasesQuery)
}

func (r *pgModificationRepository) FindByType(ctx context.Context, tipo domain.ModificationType) ([]*domain.ModificationBase, error) {
	return r.list(ctx, listModificationsByTypeQuery, string(tipo))
}

func (r *pgModificationRepository) FindByCategory(ctx context.Context, categoria string) ([]*domain.ModificationBase, error) {
	return r.list(ctx, listModificationsByCategoryQuery, categoria)
}

func (r *pgModificationRepository) FindCustom(ctx context.Context) ([]*domain.ModificationBase, error) {
	return r.list(ctx, listCustomModificationsQuery)
}

func (r *pgModificationRepository) Create(ctx context.Context, modification *domain.ModificationBase) error {
	logFields := []zap.Field{zap.String("modificationID", modification.ID), zap.String("tipo", string(modification.Tipo))}
	document, err := json.Marshal(modification)
	if err != nil {
		return fmt.Errorf("failed to encode modification base %s: %w", modification.ID, err)
	}
	_, err = r.db.Exec(ctx, insertModificationBaseQuery,
		modification.ID, string(modification.Tipo), modification.Categoria, modification.Custom, document)
	if err != nil {
		if mapped := mapPgError(err); errors.Is(mapped, models.ErrAlreadyExists) {
			r.logger.Warn("Modification base already exists", logFields...)
			return mapped
		}
		r.logger.Error("Failed to create modification base", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create modification base %s: %w", modification.ID, err)
	}
	r.logger.Info("Modification base created", logFields...)
	return nil
}

func (r *pgModificationRepository) list(ctx context.Context, query string, args ...any) ([]*domain.ModificationBase, error) {
	var recs []catalogRecord
	if err := pgxscan.Select(ctx, r.db, &recs, query, args...); err != nil {
		r.logger.Error("Failed to list modification bases", zap.Error(err))
		return nil, fmt.Errorf("failed to list modification bases: %w", err)
	}
	return decodeCatalogList[domain.ModificationBase](recs)
}

func decodeCatalog[T any](rec catalogRecord) (*T, error) {
	var item T
	if err := json.Unmarshal(rec.Document, &item); err != nil {
		return nil, fmt.Errorf("failed to decode catalog document: %w", err)
	}
	return &item, nil
}

func decodeCatalogList[T any](recs []catalogRecord) ([]*T, error) {
	items := make([]*T, 0, len(recs))
	for _, rec := range recs {
		item, err := decodeCatalog[T](rec)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
