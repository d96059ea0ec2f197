package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// MigrationsPath - каталог миграций внутри MigrationsFS.
const MigrationsPath = "migrations"

// MigrationsTable - таблица версий схемы сил.
const MigrationsTable = "power_schema_migrations"

// MigrationsFS содержит SQL-миграции схемы сил.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// ErrSchemaMismatch - версия схемы в базе не совпадает со встроенными миграциями.
var ErrSchemaMismatch = errors.New("database schema does not match embedded migrations")

// migrationVersions возвращает отсортированные версии up-миграций из fsys.
func migrationVersions(fsys fs.FS, dir string) ([]uint, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, err
	}
	versions := make([]uint, 0, len(files))
	for _, f := range files {
		prefix, _, ok := strings.Cut(path.Base(f), "_")
		if !ok {
			return nil, fmt.Errorf("migration %s has no version prefix", f)
		}
		v, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("migration %s: invalid version: %w", f, err)
		}
		versions = append(versions, uint(v))
	}
	slices.Sort(versions)
	return versions, nil
}

// SchemaVersion - версия, до которой встроенные миграции поднимают схему.
func SchemaVersion() (uint, error) {
	versions, err := migrationVersions(MigrationsFS, MigrationsPath)
	if err != nil {
		return 0, err
	}
	if len(versions) == 0 {
		return 0, errors.New("no embedded migrations")
	}
	return versions[len(versions)-1], nil
}

// SchemaMigrator применяет встроенные миграции к пулу.
type SchemaMigrator struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewSchemaMigrator(pool *pgxpool.Pool, logger *zap.Logger) *SchemaMigrator {
	return &SchemaMigrator{pool: pool, logger: logger.Named("SchemaMigrator")}
}

// Up поднимает схему до SchemaVersion. Грязная или чужая версия после применения
// возвращает ErrSchemaMismatch: сервис не должен стартовать на такой базе.
func (m *SchemaMigrator) Up(ctx context.Context) error {
	want, err := SchemaVersion()
	if err != nil {
		return err
	}
	if err := m.run(ctx, func(mg *migrate.Migrate) error { return mg.Up() }); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version(ctx)
	if err != nil {
		return err
	}
	if dirty || version != want {
		m.logger.Error("Schema version mismatch",
			zap.Uint("version", version), zap.Bool("dirty", dirty), zap.Uint("expected", want))
		return fmt.Errorf("%w: version %d (dirty=%t), expected %d", ErrSchemaMismatch, version, dirty, want)
	}
	m.logger.Info("Database schema is up to date", zap.Uint("version", version))
	return nil
}

// Steps применяет n миграций вперед или |n| назад.
func (m *SchemaMigrator) Steps(ctx context.Context, n int) error {
	if err := m.run(ctx, func(mg *migrate.Migrate) error { return mg.Steps(n) }); err != nil {
		return fmt.Errorf("failed to migrate %d steps: %w", n, err)
	}
	m.logger.Warn("Database schema moved", zap.Int("steps", n))
	return nil
}

// Version возвращает текущую версию схемы. Пустая база - версия 0.
func (m *SchemaMigrator) Version(ctx context.Context) (uint, bool, error) {
	var (
		version uint
		dirty   bool
	)
	err := m.run(ctx, func(mg *migrate.Migrate) error {
		var err error
		version, dirty, err = mg.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		return err
	})
	if err != nil {
		return 0, false, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, dirty, nil
}

func (m *SchemaMigrator) run(ctx context.Context, fn func(*migrate.Migrate) error) error {
	if err := m.pool.Ping(ctx); err != nil {
		return fmt.Errorf("database unavailable: %w", err)
	}
	driver, err := postgres.WithInstance(stdlib.OpenDBFromPool(m.pool), &postgres.Config{
		MigrationsTable: MigrationsTable,
	})
	if err != nil {
		return fmt.Errorf("failed to create postgres driver: %w", err)
	}
	source, err := iofs.New(MigrationsFS, MigrationsPath)
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	mg, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer mg.Close()
	mg.LockTimeout = 30 * time.Second

	if err := fn(mg); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
