package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"weather-journal/internal/models"
	"weather-journal/pkg/logger"
)

var journalColumns = []string{"id", "date", "text", "weather_data", "created_at"}

// SQLiteJournalRepository stores records with the pure Go modernc.org/sqlite driver.
type SQLiteJournalRepository struct {
	db  *sql.DB
	now func() time.Time
	l   *logger.Logger
}

// NewSQLiteJournalRepository opens (or creates) the database at path and migrates it.
func NewSQLiteJournalRepository(ctx context.Context, path string, l *logger.Logger) (*SQLiteJournalRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	// one connection keeps ":memory:" databases shared and avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		l.Warning("could not set WAL mode", map[string]any{"err": err})
	}

	if err := migrate(ctx, goose.DialectSQLite3, db, "sqlite", l); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteJournalRepository{db: db, now: time.Now, l: l}, nil
}

func (r *SQLiteJournalRepository) Save(ctx context.Context, entry models.JournalEntry) (models.JournalRecord, error) {
	record := models.JournalRecord{
		ID:           uuid.New(),
		CreatedAt:    r.now().UTC(),
		JournalEntry: entry,
	}

	weather, err := json.Marshal(entry.WeatherData)
	if err != nil {
		return models.JournalRecord{}, fmt.Errorf("failed to encode weather data: %w", err)
	}

	query, args, err := sq.Insert("journals").
		Columns(journalColumns...).
		Values(record.ID.String(), record.Date, record.Text, string(weather), record.CreatedAt.Format(time.RFC3339Nano)).
		ToSql()
	if err != nil {
		return models.JournalRecord{}, fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return models.JournalRecord{}, fmt.Errorf("failed to insert journal: %w", err)
	}

	return record, nil
}

func (r *SQLiteJournalRepository) FindAll(ctx context.Context) ([]models.JournalRecord, error) {
	return r.find(ctx, sq.Select(journalColumns...).From("journals").OrderBy("date ASC", "seq ASC"))
}

func (r *SQLiteJournalRepository) FindByDate(ctx context.Context, date string) ([]models.JournalRecord, error) {
	return r.find(ctx, sq.Select(journalColumns...).From("journals").Where(sq.Eq{"date": date}).OrderBy("seq ASC"))
}

func (r *SQLiteJournalRepository) DeleteByDate(ctx context.Context, date string) (int64, error) {
	query, args, err := sq.Delete("journals").Where(sq.Eq{"date": date}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete journals: %w", err)
	}

	return res.RowsAffected()
}

func (r *SQLiteJournalRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteJournalRepository) find(ctx context.Context, b sq.SelectBuilder) ([]models.JournalRecord, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	out := make([]models.JournalRecord, 0)
	for rows.Next() {
		var (
			id, createdAt string
			weather       []byte
			record        models.JournalRecord
		)
		if err := rows.Scan(&id, &record.Date, &record.Text, &weather, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal: %w", err)
		}
		if record.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("bad journal id %q: %w", id, err)
		}
		if record.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("bad created_at %q: %w", createdAt, err)
		}
		if err := json.Unmarshal(weather, &record.WeatherData); err != nil {
			return nil, fmt.Errorf("failed to decode weather data: %w", err)
		}
		out = append(out, record)
	}

	return out, rows.Err()
}
