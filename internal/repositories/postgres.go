package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"weather-journal/internal/models"
	"weather-journal/pkg/logger"
)

// pgxQuerier is the slice of *pgxpool.Pool the repository needs.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PostgresJournalRepository struct {
	db  pgxQuerier
	now func() time.Time
	l   *logger.Logger
}

// NewPostgresJournalRepository connects a pool to dsn and migrates the schema.
func NewPostgresJournalRepository(ctx context.Context, dsn string, l *logger.Logger) (*PostgresJournalRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	err = migrate(ctx, goose.DialectPostgres, db, "postgres", l)
	_ = db.Close()
	if err != nil {
		pool.Close()
		return nil, err
	}

	return newPostgresJournalRepository(pool, l), nil
}

func newPostgresJournalRepository(db pgxQuerier, l *logger.Logger) *PostgresJournalRepository {
	return &PostgresJournalRepository{db: db, now: time.Now, l: l}
}

func (r *PostgresJournalRepository) Save(ctx context.Context, entry models.JournalEntry) (models.JournalRecord, error) {
	record := models.JournalRecord{
		ID:           uuid.New(),
		CreatedAt:    r.now().UTC(),
		JournalEntry: entry,
	}

	weather, err := json.Marshal(entry.WeatherData)
	if err != nil {
		return models.JournalRecord{}, fmt.Errorf("failed to encode weather data: %w", err)
	}

	query, args, err := psql.Insert("journals").
		Columns(journalColumns...).
		Values(record.ID.String(), record.Date, record.Text, string(weather), record.CreatedAt).
		ToSql()
	if err != nil {
		return models.JournalRecord{}, fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return models.JournalRecord{}, fmt.Errorf("failed to insert journal: %w", err)
	}

	return record, nil
}

func (r *PostgresJournalRepository) FindAll(ctx context.Context) ([]models.JournalRecord, error) {
	return r.find(ctx, psql.Select(pgSelectColumns...).From("journals").OrderBy("date ASC", "seq ASC"))
}

func (r *PostgresJournalRepository) FindByDate(ctx context.Context, date string) ([]models.JournalRecord, error) {
	return r.find(ctx, psql.Select(pgSelectColumns...).From("journals").Where(sq.Eq{"date": date}).OrderBy("seq ASC"))
}

func (r *PostgresJournalRepository) DeleteByDate(ctx context.Context, date string) (int64, error) {
	query, args, err := psql.Delete("journals").Where(sq.Eq{"date": date}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete journals: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *PostgresJournalRepository) Close() error {
	r.db.Close()
	return nil
}

// DATE and UUID come back as text so scanning does not depend on pgtype registration.
var pgSelectColumns = []string{"id::text", "to_char(date, 'YYYY-MM-DD')", "text", "weather_data", "created_at"}

func (r *PostgresJournalRepository) find(ctx context.Context, b sq.SelectBuilder) ([]models.JournalRecord, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	out := make([]models.JournalRecord, 0)
	for rows.Next() {
		var (
			id      string
			weather []byte
			record  models.JournalRecord
		)
		if err := rows.Scan(&id, &record.Date, &record.Text, &weather, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal: %w", err)
		}
		if record.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("bad journal id %q: %w", id, err)
		}
		if err := json.Unmarshal(weather, &record.WeatherData); err != nil {
			return nil, fmt.Errorf("failed to decode weather data: %w", err)
		}
		out = append(out, record)
	}

	return out, rows.Err()
}
