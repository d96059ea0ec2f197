package database

import (
	"context"
	"encoding/json"
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
	powerColumns = `id, user_id, nome, descricao, dominio, peculiar_id, parametros, effects, global_modifications,
        custo_pda, custo_pe, custo_espacos, custo_alternativo, is_public, notas, created_at, updated_at`
	powerPageSuffix = ` ORDER BY created_at, id LIMIT $%d OFFSET $%d`

	getPowerByIDQuery   = `SELECT ` + powerColumns + ` FROM powers WHERE id = $1`
	getPowersByIDsQuery = `SELECT ` + powerColumns + ` FROM powers WHERE id = ANY($1)`
	insertPowerQuery    = `INSERT INTO powers (` + powerColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	updatePowerQuery = `
        UPDATE powers SET
            nome = $2, descricao = $3, dominio = $4, peculiar_id = $5, parametros = $6, effects = $7,
            global_modifications = $8, custo_pda = $9, custo_pe = $10, custo_espacos = $11,
            custo_alternativo = $12, is_public = $13, notas = $14, updated_at = $15
        WHERE id = $1`
	deletePowerQuery = `DELETE FROM powers WHERE id = $1`
)

type powerRecord struct {
	ID                  uuid.UUID  `db:"id"`
	UserID              *uuid.UUID `db:"user_id"`
	Nome                string     `db:"nome"`
	Descricao           string     `db:"descricao"`
	Dominio             string     `db:"dominio"`
	PeculiarID          *uuid.UUID `db:"peculiar_id"`
	Parametros          []byte     `db:"parametros"`
	Effects             []byte     `db:"effects"`
	GlobalModifications []byte     `db:"global_modifications"`
	CustoPdA            int        `db:"custo_pda"`
	CustoPE             int        `db:"custo_pe"`
	CustoEspacos        int        `db:"custo_espacos"`
	CustoAlternativo    []byte     `db:"custo_alternativo"`
	IsPublic            bool       `db:"is_public"`
	Notas               string     `db:"notas"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           *time.Time `db:"updated_at"`
}

func newPowerRecord(p *domain.Power) (powerRecord, error) {
	dominio, peculiarID := domainColumns(p.Dominio())
	parametros := p.Parametros()
	rec := powerRecord{
		ID:           p.ID(),
		UserID:       nullableUserID(p.UserID()),
		Nome:         p.Nome(),
		Descricao:    p.Descricao(),
		Dominio:      dominio,
		PeculiarID:   peculiarID,
		CustoPdA:     p.CustoTotal().PdA(),
		CustoPE:      p.CustoTotal().PE(),
		CustoEspacos: p.CustoTotal().Espacos(),
		IsPublic:     p.IsPublic(),
		Notas:        p.Notas(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
	var err error
	if rec.Parametros, err = marshalParameters(&parametros); err != nil {
		return rec, fmt.Errorf("failed to encode parameters: %w", err)
	}
	if rec.Effects, err = json.Marshal(effectDocumentsOf(p.Effects())); err != nil {
		return rec, fmt.Errorf("failed to encode effects: %w", err)
	}
	if rec.GlobalModifications, err = json.Marshal(modificationDocumentsOf(p.GlobalModifications())); err != nil {
		return rec, fmt.Errorf("failed to encode global modifications: %w", err)
	}
	if rec.CustoAlternativo, err = marshalAlternativeCost(p.CustoAlternativo()); err != nil {
		return rec, fmt.Errorf("failed to encode alternative cost: %w", err)
	}
	return rec, nil
}

func (rec powerRecord) toDomain() (*domain.Power, error) {
	dominio, err := restoreDomain(rec.Dominio, rec.PeculiarID)
	if err != nil {
		return nil, err
	}
	parametros, err := unmarshalParameters(rec.Parametros)
	if err != nil {
		return nil, fmt.Errorf("parameters: %w", err)
	}
	if parametros == nil {
		def := domain.DefaultPowerParameters()
		parametros = &def
	}
	var effectDocs []appliedEffectDocument
	if err := json.Unmarshal(rec.Effects, &effectDocs); err != nil {
		return nil, fmt.Errorf("effects: %w", err)
	}
	effects, err := toEffects(effectDocs)
	if err != nil {
		return nil, err
	}
	var modDocs []appliedModificationDocument
	if len(rec.GlobalModifications) > 0 {
		if err := json.Unmarshal(rec.GlobalModifications, &modDocs); err != nil {
			return nil, fmt.Errorf("global modifications: %w", err)
		}
	}
	globals, err := toModifications(modDocs)
	if err != nil {
		return nil, err
	}
	custo, err := domain.NewPowerCost(rec.CustoPdA, rec.CustoPE, rec.CustoEspacos)
	if err != nil {
		return nil, err
	}
	alternativo, err := unmarshalAlternativeCost(rec.CustoAlternativo)
	if err != nil {
		return nil, fmt.Errorf("alternative cost: %w", err)
	}
	return domain.RestorePower(domain.PowerProps{
		ID:                  rec.ID,
		UserID:              userIDOf(rec.UserID),
		Nome:                rec.Nome,
		Descricao:           rec.Descricao,
		Dominio:             dominio,
		Parametros:          *parametros,
		Effects:             effects,
		GlobalModifications: globals,
		CustoTotal:          custo,
		CustoAlternativo:    alternativo,
		IsPublic:            rec.IsPublic,
		Notas:               rec.Notas,
		CreatedAt:           rec.CreatedAt,
		UpdatedAt:           rec.UpdatedAt,
	})
}

var _ interfaces.PowerRepository = (*pgPowerRepository)(nil)

type pgPowerRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

func NewPgPowerRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.PowerRepository {
	return &pgPowerRepository{
		db:     db,
		logger: logger.Named("PgPowerRepo"),
	}
}

func (r *pgPowerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Power, error) {
	var rec powerRecord
	if err := pgxscan.Get(ctx, r.db, &rec, getPowerByIDQuery, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get power", zap.String("powerID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get power %s: %w", id, err)
	}
	p, err := rec.toDomain()
	if err != nil {
		r.logger.Error("Failed to restore power", zap.String("powerID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to restore power %s: %w", id, err)
	}
	return p, nil
}

func (r *pgPowerRepository) FindMany(ctx context.Context, page int) ([]*domain.Power, error) {
	return r.page(ctx, "", page)
}

func (r *pgPowerRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page int) ([]*domain.Power, error) {
	return r.page(ctx, "user_id = $1", page, userID)
}

func (r *pgPowerRepository) FindByDomain(ctx context.Context, name domain.DomainName, page int) ([]*domain.Power, error) {
	return r.page(ctx, "dominio = $1", page, string(name))
}

func (r *pgPowerRepository) FindUserCreated(ctx context.Context, page int) ([]*domain.Power, error) {
	return r.page(ctx, "user_id IS NOT NULL", page)
}

func (r *pgPowerRepository) FindPublic(ctx context.Context, page int) ([]*domain.Power, error) {
	return r.page(ctx, "user_id IS NULL OR is_public", page)
}

func (r *pgPowerRepository) Create(ctx context.Context, p *domain.Power) error {
	logFields := []zap.Field{zap.String("powerID", p.ID().String()), zap.String("userID", p.UserID().String())}
	rec, err := newPowerRecord(p)
	if err != nil {
		return fmt.Errorf("failed to encode power %s: %w", p.ID(), err)
	}
	_, err = r.db.Exec(ctx, insertPowerQuery,
		rec.ID, rec.UserID, rec.Nome, rec.Descricao, rec.Dominio, rec.PeculiarID, rec.Parametros, rec.Effects,
		rec.GlobalModifications, rec.CustoPdA, rec.CustoPE, rec.CustoEspacos, rec.CustoAlternativo,
		rec.IsPublic, rec.Notas, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if mapped := mapPgError(err); errors.Is(mapped, models.ErrAlreadyExists) {
			r.logger.Warn("Power already exists", logFields...)
			return mapped
		}
		r.logger.Error("Failed to create power", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create power: %w", err)
	}
	r.logger.Info("Power created", logFields...)
	return nil
}

func (r *pgPowerRepository) Update(ctx context.Context, p *domain.Power) error {
	logFields := []zap.Field{zap.String("powerID", p.ID().String())}
	rec, err := newPowerRecord(p)
	if err != nil {
		return fmt.Errorf("failed to encode power %s: %w", p.ID(), err)
	}
	tag, err := r.db.Exec(ctx, updatePowerQuery,
		rec.ID, rec.Nome, rec.Descricao, rec.Dominio, rec.PeculiarID, rec.Parametros, rec.Effects,
		rec.GlobalModifications, rec.CustoPdA, rec.CustoPE, rec.CustoEspacos, rec.CustoAlternativo,
		rec.IsPublic, rec.Notas, rec.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update power", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to update power %s: %w", p.ID(), err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Power not found for update", logFields...)
		return models.ErrResourceNotFound
	}
	r.logger.Info("Power updated", append(logFields, zap.Bool("isPublic", p.IsPublic()))...)
	return nil
}

func (r *pgPowerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logFields := []zap.Field{zap.String("powerID", id.String())}
	tag, err := r.db.Exec(ctx, deletePowerQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete power", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to delete power %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Power not found for delete", logFields...)
		return models.ErrResourceNotFound
	}
	r.logger.Info("Power deleted", logFields...)
	return nil
}

// page выбирает страницу сил по условию where. Аргументы условия идут первыми.
func (r *pgPowerRepository) page(ctx context.Context, where string, page int, args ...any) ([]*domain.Power, error) {
	query := `SELECT ` + powerColumns + ` FROM powers`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += fmt.Sprintf(powerPageSuffix, len(args)+1, len(args)+2)
	args = append(args, interfaces.PageSize, interfaces.PageOffset(page))

	var recs []powerRecord
	if err := pgxscan.Select(ctx, r.db, &recs, query, args...); err != nil {
		r.logger.Error("Failed to list powers", zap.String("where", where), zap.Error(err))
		return nil, fmt.Errorf("failed to list powers: %w", err)
	}
	return restorePowers(recs)
}

// findPowersByIDs загружает силы по списку id в произвольном порядке.
func findPowersByIDs(ctx context.Context, db interfaces.DBTX, ids []uuid.UUID) (map[uuid.UUID]*domain.Power, error) {
	result := make(map[uuid.UUID]*domain.Power, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var recs []powerRecord
	if err := pgxscan.Select(ctx, db, &recs, getPowersByIDsQuery, ids); err != nil {
		return nil, fmt.Errorf("failed to load powers: %w", err)
	}
	powers, err := restorePowers(recs)
	if err != nil {
		return nil, err
	}
	for _, p := range powers {
		result[p.ID()] = p
	}
	return result, nil
}

func restorePowers(recs []powerRecord) ([]*domain.Power, error) {
	powers := make([]*domain.Power, 0, len(recs))
	for _, rec := range recs {
		p, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to restore power %s: %w", rec.ID, err)
		}
		powers = append(powers, p)
	}
	return powers, nil
}
