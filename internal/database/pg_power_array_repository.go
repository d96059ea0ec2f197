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
	powerArrayColumns = `id, user_id, nome, descricao, dominio, peculiar_id, parametros_base,
        custo_pda, custo_pe, custo_espacos, is_public, notas, created_at, updated_at`

	getPowerArrayByIDQuery = `SELECT ` + powerArrayColumns + ` FROM power_arrays WHERE id = $1`
	insertPowerArrayQuery  = `INSERT INTO power_arrays (` + powerArrayColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	updatePowerArrayQuery = `
        UPDATE power_arrays SET
            nome = $2, descricao = $3, dominio = $4, peculiar_id = $5, parametros_base = $6,
            custo_pda = $7, custo_pe = $8, custo_espacos = $9, is_public = $10, notas = $11, updated_at = $12
        WHERE id = $1`
	deletePowerArrayQuery = `DELETE FROM power_arrays WHERE id = $1`

	selectMembershipsQuery = `
        SELECT power_array_id, power_id, position FROM power_array_powers
        WHERE power_array_id = ANY($1)
        ORDER BY power_array_id, position`
	deleteMembershipsQuery = `DELETE FROM power_array_powers WHERE power_array_id = $1`
	insertMembershipQuery  = `INSERT INTO power_array_powers (power_array_id, power_id, position) VALUES ($1, $2, $3)`
)

type powerArrayRecord struct {
	ID             uuid.UUID  `db:"id"`
	UserID         *uuid.UUID `db:"user_id"`
	Nome           string     `db:"nome"`
	Descricao      string     `db:"descricao"`
	Dominio        string     `db:"dominio"`
	PeculiarID     *uuid.UUID `db:"peculiar_id"`
	ParametrosBase []byte     `db:"parametros_base"`
	CustoPdA       int        `db:"custo_pda"`
	CustoPE        int        `db:"custo_pe"`
	CustoEspacos   int        `db:"custo_espacos"`
	IsPublic       bool       `db:"is_public"`
	Notas          string     `db:"notas"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at"`
}

type membershipRecord struct {
	PowerArrayID uuid.UUID `db:"power_array_id"`
	PowerID      uuid.UUID `db:"power_id"`
	Position     int       `db:"position"`
}

func newPowerArrayRecord(a *domain.PowerArray) (powerArrayRecord, error) {
	dominio, peculiarID := domainColumns(a.Dominio())
	rec := powerArrayRecord{
		ID:           a.ID(),
		UserID:       nullableUserID(a.UserID()),
		Nome:         a.Nome(),
		Descricao:    a.Descricao(),
		Dominio:      dominio,
		PeculiarID:   peculiarID,
		CustoPdA:     a.CustoTotal().PdA(),
		CustoPE:      a.CustoTotal().PE(),
		CustoEspacos: a.CustoTotal().Espacos(),
		IsPublic:     a.IsPublic(),
		Notas:        a.Notas(),
		CreatedAt:    a.CreatedAt(),
		UpdatedAt:    a.UpdatedAt(),
	}
	var err error
	if rec.ParametrosBase, err = marshalParameters(a.ParametrosBase()); err != nil {
		return rec, fmt.Errorf("failed to encode base parameters: %w", err)
	}
	return rec, nil
}

func (rec powerArrayRecord) toDomain(powers []*domain.Power) (*domain.PowerArray, error) {
	dominio, err := restoreDomain(rec.Dominio, rec.PeculiarID)
	if err != nil {
		return nil, err
	}
	parametros, err := unmarshalParameters(rec.ParametrosBase)
	if err != nil {
		return nil, fmt.Errorf("base parameters: %w", err)
	}
	custo, err := domain.NewPowerCost(rec.CustoPdA, rec.CustoPE, rec.CustoEspacos)
	if err != nil {
		return nil, err
	}
	return domain.RestorePowerArray(domain.PowerArrayProps{
		ID:             rec.ID,
		UserID:         userIDOf(rec.UserID),
		Nome:           rec.Nome,
		Descricao:      rec.Descricao,
		Dominio:        dominio,
		ParametrosBase: parametros,
		Powers:         powers,
		CustoTotal:     custo,
		IsPublic:       rec.IsPublic,
		Notas:          rec.Notas,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	})
}

var _ interfaces.PowerArrayRepository = (*pgPowerArrayRepository)(nil)

// pgPowerArrayRepository хранит acervo в power_arrays, а состав в power_array_powers.
// Запись acervo и его состава идет в одной транзакции.
type pgPowerArrayRepository struct {
	db     interfaces.TxDB
	logger *zap.Logger
}

func NewPgPowerArrayRepository(db interfaces.TxDB, logger *zap.Logger) interfaces.PowerArrayRepository {
	return &pgPowerArrayRepository{
		db:     db,
		logger: logger.Named("PgPowerArrayRepo"),
	}
}

func (r *pgPowerArrayRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.PowerArray, error) {
	var rec powerArrayRecord
	if err := pgxscan.Get(ctx, r.db, &rec, getPowerArrayByIDQuery, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get power array", zap.String("powerArrayID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get power array %s: %w", id, err)
	}
	arrays, err := r.restore(ctx, []powerArrayRecord{rec})
	if err != nil {
		return nil, err
	}
	return arrays[0], nil
}

func (r *pgPowerArrayRepository) FindMany(ctx context.Context, page int) ([]*domain.PowerArray, error) {
	return r.page(ctx, "", page)
}

func (r *pgPowerArrayRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page int) ([]*domain.PowerArray, error) {
	return r.page(ctx, "user_id = $1", page, userID)
}

func (r *pgPowerArrayRepository) FindByDomain(ctx context.Context, name domain.DomainName, page int) ([]*domain.PowerArray, error) {
	return r.page(ctx, "dominio = $1", page, string(name))
}

func (r *pgPowerArrayRepository) FindPublic(ctx context.Context, page int) ([]*domain.PowerArray, error) {
	return r.page(ctx, "user_id IS NULL OR is_public", page)
}

func (r *pgPowerArrayRepository) Create(ctx context.Context, a *domain.PowerArray) error {
	logFields := []zap.Field{
		zap.String("powerArrayID", a.ID().String()),
		zap.String("userID", a.UserID().String()),
		zap.Int("powers", len(a.Powers())),
	}
	rec, err := newPowerArrayRecord(a)
	if err != nil {
		return fmt.Errorf("failed to encode power array %s: %w", a.ID(), err)
	}
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertPowerArrayQuery,
			rec.ID, rec.UserID, rec.Nome, rec.Descricao, rec.Dominio, rec.PeculiarID, rec.ParametrosBase,
			rec.CustoPdA, rec.CustoPE, rec.CustoEspacos, rec.IsPublic, rec.Notas, rec.CreatedAt, rec.UpdatedAt,
		); err != nil {
			return err
		}
		return insertMemberships(ctx, tx, a)
	})
	if err != nil {
		mapped := mapPgError(err)
		if errors.Is(mapped, models.ErrAlreadyExists) || errors.Is(mapped, models.ErrResourceNotFound) {
			r.logger.Warn("Power array rejected by constraint", append(logFields, zap.Error(err))...)
			return mapped
		}
		r.logger.Error("Failed to create power array", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create power array: %w", err)
	}
	r.logger.Info("Power array created", logFields...)
	return nil
}

func (r *pgPowerArrayRepository) Update(ctx context.Context, a *domain.PowerArray) error {
	logFields := []zap.Field{zap.String("powerArrayID", a.ID().String()), zap.Int("powers", len(a.Powers()))}
	rec, err := newPowerArrayRecord(a)
	if err != nil {
		return fmt.Errorf("failed to encode power array %s: %w", a.ID(), err)
	}
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, updatePowerArrayQuery,
			rec.ID, rec.Nome, rec.Descricao, rec.Dominio, rec.PeculiarID, rec.ParametrosBase,
			rec.CustoPdA, rec.CustoPE, rec.CustoEspacos, rec.IsPublic, rec.Notas, rec.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return models.ErrResourceNotFound
		}
		if _, err := tx.Exec(ctx, deleteMembershipsQuery, a.ID()); err != nil {
			return err
		}
		return insertMemberships(ctx, tx, a)
	})
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			r.logger.Warn("Power array not found for update", logFields...)
			return err
		}
		if mapped := mapPgError(err); errors.Is(mapped, models.ErrResourceNotFound) {
			r.logger.Warn("Power array references a missing power", logFields...)
			return mapped
		}
		r.logger.Error("Failed to update power array", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to update power array %s: %w", a.ID(), err)
	}
	r.logger.Info("Power array updated", append(logFields, zap.Bool("isPublic", a.IsPublic()))...)
	return nil
}

// Delete удаляет acervo; состав удаляется каскадно.
func (r *pgPowerArrayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logFields := []zap.Field{zap.String("powerArrayID", id.String())}
	tag, err := r.db.Exec(ctx, deletePowerArrayQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete power array", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to delete power array %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Power array not found for delete", logFields...)
		return models.ErrResourceNotFound
	}
	r.logger.Info("Power array deleted", logFields...)
	return nil
}

func (r *pgPowerArrayRepository) page(ctx context.Context, where string, page int, args ...any) ([]*domain.PowerArray, error) {
	query := `SELECT ` + powerArrayColumns + ` FROM power_arrays`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += fmt.Sprintf(powerPageSuffix, len(args)+1, len(args)+2)
	args = append(args, interfaces.PageSize, interfaces.PageOffset(page))

	var recs []powerArrayRecord
	if err := pgxscan.Select(ctx, r.db, &recs, query, args...); err != nil {
		r.logger.Error("Failed to list power arrays", zap.String("where", where), zap.Error(err))
		return nil, fmt.Errorf("failed to list power arrays: %w", err)
	}
	return r.restore(ctx, recs)
}

// restore подгружает состав всех acervos двумя запросами: связи и сами силы.
func (r *pgPowerArrayRepository) restore(ctx context.Context, recs []powerArrayRecord) ([]*domain.PowerArray, error) {
	if len(recs) == 0 {
		return []*domain.PowerArray{}, nil
	}
	arrayIDs := make([]uuid.UUID, 0, len(recs))
	for _, rec := range recs {
		arrayIDs = append(arrayIDs, rec.ID)
	}

	var memberships []membershipRecord
	if err := pgxscan.Select(ctx, r.db, &memberships, selectMembershipsQuery, arrayIDs); err != nil {
		r.logger.Error("Failed to load power array memberships", zap.Error(err))
		return nil, fmt.Errorf("failed to load power array memberships: %w", err)
	}
	powerIDs := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		powerIDs = append(powerIDs, m.PowerID)
	}
	powers, err := findPowersByIDs(ctx, r.db, powerIDs)
	if err != nil {
		r.logger.Error("Failed to load power array members", zap.Error(err))
		return nil, err
	}

	byArray := make(map[uuid.UUID][]*domain.Power, len(recs))
	for _, m := range memberships {
		if p, ok := powers[m.PowerID]; ok {
			byArray[m.PowerArrayID] = append(byArray[m.PowerArrayID], p)
		}
	}

	arrays := make([]*domain.PowerArray, 0, len(recs))
	for _, rec := range recs {
		a, err := rec.toDomain(byArray[rec.ID])
		if err != nil {
			r.logger.Error("Failed to restore power array", zap.String("powerArrayID", rec.ID.String()), zap.Error(err))
			return nil, fmt.Errorf("failed to restore power array %s: %w", rec.ID, err)
		}
		arrays = append(arrays, a)
	}
	return arrays, nil
}

func (r *pgPowerArrayRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// после Commit Rollback ничего не делает
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertMemberships(ctx context.Context, tx pgx.Tx, a *domain.PowerArray) error {
	for i, id := range a.PowerIDs() {
		if _, err := tx.Exec(ctx, insertMembershipQuery, a.ID(), id, i); err != nil {
			return err
		}
	}
	return nil
}
