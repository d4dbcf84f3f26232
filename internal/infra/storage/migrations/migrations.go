// Package migrations применяет встроенные SQL миграции схемы appointments.
package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/m04kA/SMC-CaptureBooking/pkg/dbmetrics"
)

//go:embed sql/*.sql
var files embed.FS

var ErrMigration = errors.New("migrations: failed to apply migration")

// TransactionManager выполняет функцию в транзакции
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migration одна миграция: версия (имя файла) и SQL
type Migration struct {
	Version string
	SQL     string
}

// List возвращает встроенные миграции в порядке применения
func List() ([]Migration, error) {
	entries, err := fs.ReadDir(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("%w: read embedded dir: %v", ErrMigration, err)
	}

	migrations := make([]Migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		body, err := files.ReadFile("sql/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrMigration, e.Name(), err)
		}
		migrations = append(migrations, Migration{
			Version: strings.TrimSuffix(e.Name(), ".sql"),
			SQL:     string(body),
		})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })

	return migrations, nil
}

// Apply применяет еще не примененные миграции, каждую в своей транзакции.
// Параллельные запуски сериализуются advisory lock внутри транзакции.
func Apply(ctx context.Context, db dbmetrics.DBExecutor, txManager TransactionManager, logger Logger) error {
	migrations, err := List()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return fmt.Errorf("%w: create schema_migrations: %v", ErrMigration, err)
	}

	for _, m := range migrations {
		applied := false

		err := txManager.Do(ctx, func(txCtx context.Context) error {
			executor := dbmetrics.GetExecutor(txCtx, db)

			if _, err := executor.ExecContext(txCtx, "SELECT pg_advisory_xact_lock(hashtext('schema_migrations'))"); err != nil {
				return err
			}

			var exists bool
			if err := executor.QueryRowContext(txCtx,
				"SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", m.Version,
			).Scan(&exists); err != nil {
				return err
			}
			if exists {
				return nil
			}

			if _, err := executor.ExecContext(txCtx, m.SQL); err != nil {
				return err
			}
			if _, err := executor.ExecContext(txCtx,
				"INSERT INTO schema_migrations (version) VALUES ($1)", m.Version,
			); err != nil {
				return err
			}

			applied = true
			return nil
		})
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMigration, m.Version, err)
		}

		if applied {
			logger.Info("Migration %s applied", m.Version)
		}
	}

	return nil
}
