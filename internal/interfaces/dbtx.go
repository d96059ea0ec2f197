package interfaces

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX - общий интерфейс для *pgxpool.Pool и pgx.Tx,
// чтобы репозитории работали и внутри транзакции, и без нее.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxDB - DBTX, который умеет открывать транзакцию. Его реализуют *pgxpool.Pool и pgx.Tx
// (для pgx.Tx Begin создает savepoint).
type TxDB interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}
