package database

import (
	"errors"

	"github.com/Gaaaybe/Aetherium/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapPgError переводит известные коды PostgreSQL в ошибки прикладного уровня.
// Остальные ошибки возвращаются как есть.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return models.ErrAlreadyExists
		case pgForeignKeyViolation:
			return models.ErrResourceNotFound
		}
	}
	return err
}
