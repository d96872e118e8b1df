package repositories

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"weather-journal/config"
	"weather-journal/internal/models"
	"weather-journal/pkg/logger"
)

//go:embed migrations
var migrationsFS embed.FS

// JournalRepository stores journal records. Several records may share a date;
// reads return them in insertion order within a date.
type JournalRepository interface {
	Save(ctx context.Context, entry models.JournalEntry) (models.JournalRecord, error)
	// FindAll returns every record ordered by date.
	FindAll(ctx context.Context) ([]models.JournalRecord, error)
	FindByDate(ctx context.Context, date string) ([]models.JournalRecord, error)
	DeleteByDate(ctx context.Context, date string) (int64, error)
	Close() error
}

func InitJournalRepository(ctx context.Context, cfg *config.Config, l *logger.Logger) (JournalRepository, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return NewMemoryJournalRepository(), nil
	case "sqlite":
		return NewSQLiteJournalRepository(ctx, cfg.Storage.DSN, l)
	case "postgres":
		return NewPostgresJournalRepository(ctx, cfg.Storage.DSN, l)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func migrate(ctx context.Context, dialect goose.Dialect, db *sql.DB, dir string, l *logger.Logger) error {
	fsys, err := fs.Sub(migrationsFS, "migrations/"+dir)
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	for _, r := range results {
		l.Info("applied migration", map[string]any{
			"source":   r.Source.Path,
			"duration": r.Duration.String(),
		})
	}

	return nil
}
