package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/interfaces"
	"github.com/Gaaaybe/Aetherium/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	peculiarityColumns      = `id, user_id, nome, descricao, espiritual, is_public, created_at, updated_at`
	getPeculiarityByIDQuery = `SELECT ` + peculiarityColumns + ` FROM peculiarities WHERE id = $1`
	listPeculiaritiesQuery  = `SELECT ` + peculiarityColumns + ` FROM peculiarities ORDER BY created_at, id LIMIT $1 OFFSET $2`
	listPeculiaritiesByUser = `SELECT ` + peculiarityColumns + ` FROM peculiarities WHERE user_id = $1 ORDER BY created_at, id LIMIT $2 OFFSET $3`
	listPublicPeculiarities = `SELECT ` + peculiarityColumns + ` FROM peculiarities WHERE is_public ORDER BY created_at, id LIMIT $1 OFFSET $2`
	insertPeculiarityQuery  = `INSERT INTO peculiarities (` + peculiarityColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	updatePeculiarityQuery  = `UPDATE peculiarities SET nome = $2, descricao = $3, espiritual = $4, is_public = $5, updated_at = $6 WHERE id = $1`
	deletePeculiarityQuery  = `DELETE FROM peculiarities WHERE id = $1`
)

type peculiarityRecord struct {
	ID         uuid.UUID  `db:"id"`
	UserID     uuid.UUID  `db:"user_id"`
	Nome       string     `db:"nome"`
	Descricao  string     `db:"descricao"`
	Espiritual bool       `db:"espiritual"`
	IsPublic   bool       `db:"is_public"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at"`
}

func (rec peculiarityRecord) toDomain() (*domain.Peculiarity, error) {
	return domain.NewPeculiarity(domain.PeculiarityProps{
		ID:         rec.ID,
		UserID:     rec.UserID,
		Nome:       rec.Nome,
		Descricao:  rec.Descricao,
		Espiritual: rec.Espiritual,
		IsPublic:   rec.IsPublic,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	})
}

var _ interfaces.PeculiarityRepository = (*pgPeculiarityRepository)(nil)

type pgPeculiarityRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

func NewPgPeculiarityRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.PeculiarityRepository {
	return &pgPeculiarityRepository{
		db:     db,
		logger: logger.Named("PgPeculiarityRepo"),
	}
}

func (r *pgPeculiarityRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Peculiarity, error) {
	var rec peculiarityRecord
	if err := pgxscan.Get(ctx, r.db, &rec, getPeculiarityByIDQuery, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get peculiarity", zap.String("peculiarityID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get peculiarity %s: %w", id, err)
	}
	return rec.toDomain()
}

func (r *pgPeculiarityRepository) FindMany(ctx context.Context, page int) ([]*domain.Peculiarity, error) {
	return r.list(ctx, listPeculiaritiesQuery, interfaces.PageSize, interfaces.PageOffset(page))
}

func (r *pgPeculiarityRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Peculiarity, error) {
	return r.list(ctx, listPeculiaritiesByUser, userID, interfaces.PageSize, interfaces.PageOffset(page))
}

func (r *pgPeculiarityRepository) FindPublic(ctx context.Context, page int) ([]*domain.Peculiarity, error) {
	return r.list(ctx, listPublicPeculiarities, interfaces.PageSize, interfaces.PageOffset(page))
}

func (r *pgPeculiarityRepository) Create(ctx context.Context, p *domain.Peculiarity) error {
	logFields := []zap.Field{zap.String("peculiarityID", p.ID().String()), zap.String("userID", p.UserID().String())}
	_, err := r.db.Exec(ctx, insertPeculiarityQuery,
		p.ID(), p.UserID(), p.Nome(), p.Descricao(), p.Espiritual(), p.IsPublic(), p.CreatedAt(), p.UpdatedAt())
	if err != nil {
		if mapped := mapPgError(err); errors.Is(mapped, models.ErrAlreadyExists) {
			r.logger.Warn("Peculiarity already exists", logFields...)
			return mapped
		}
		r.logger.Error("Failed to create peculiarity", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create peculiarity: %w", err)
	}
	r.logger.Info("Peculiarity created", logFields...)
	return nil
}

func (r *pgPeculiarityRepository) Update(ctx context.Context, p *domain.Peculiarity) error {
	logFields := []zap.Field{zap.String("peculiarityID", p.ID().String())}
	tag, err := r.db.Exec(ctx, updatePeculiarityQuery,
		p.ID(), p.Nome(), p.Descricao(), p.Espiritual(), p.IsPublic(), p.UpdatedAt())
	if err != nil {
		r.logger.Error("Failed to update peculiarity", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to update peculiarity %s: %w", p.ID(), err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Peculiarity not found for update", logFields...)
		return models.ErrResourceNotFound
	}
	r.logger.Info("Peculiarity updated", append(logFields, zap.Bool("isPublic", p.IsPublic()))...)
	return nil
}

func (r *pgPeculiarityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logFields := []zap.Field{zap.String("peculiarityID", id.String())}
	tag, err := r.db.Exec(ctx, deletePeculiarityQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete peculiarity", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to delete peculiarity %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Peculiarity not found for delete", logFields...)
		return models.ErrResourceNotFound
	}
	r.logger.Info("Peculiarity deleted", logFields...)
	return nil
}

func (r *pgPeculiarityRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Peculiarity, error) {
	var recs []peculiarityRecord
	if err := pgxscan.Select(ctx, r.db, &recs, query, args...); err != nil {
		r.logger.Error("Failed to list peculiarities", zap.Error(err))
		return nil, fmt.Errorf("failed to list peculiarities: %w", err)
	}
	items := make([]*domain.Peculiarity, 0, len(recs))
	for _, rec := range recs {
		p, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to restore peculiarity %s: %w", rec.ID, err)
		}
		items = append(items, p)
	}
	return items, nil
}
