package journal

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"weather-journal/internal/models"
	"weather-journal/internal/repositories"
	"weather-journal/pkg/logger"
	"weather-journal/pkg/observe"
)

var (
	ErrIncompleteEntry = errors.New("Date, weather data, and text are required")
	ErrInvalidDate     = errors.New("Date must use the YYYY-MM-DD format")
	ErrDateRequired    = errors.New("Date parameter is required")
	ErrNotFound        = errors.New("No journals found for the specified date")
)

type JournalService struct {
	repo    repositories.JournalRepository
	metrics *observe.Metrics
	l       *logger.Logger
}

func NewJournalService(repo repositories.JournalRepository, metrics *observe.Metrics, l *logger.Logger) *JournalService {
	return &JournalService{
		repo:    repo,
		metrics: metrics,
		l:       l,
	}
}

// Create stores entry. Another entry for the same date is not replaced.
func (s *JournalService) Create(ctx context.Context, entry models.JournalEntry) error {
	if entry.Date == "" || len(entry.WeatherData) == 0 || strings.TrimSpace(entry.Text) == "" {
		return ErrIncompleteEntry
	}
	if !models.ValidDate(entry.Date) {
		return ErrInvalidDate
	}

	record, err := s.repo.Save(ctx, entry)
	if err != nil {
		return errors.Wrap(err, "save journal")
	}

	s.metrics.JournalCreated()
	s.l.Info("journal created", map[string]any{
		"id":   record.ID.String(),
		"date": record.Date,
	})
	if missing := entry.WeatherData.Missing(); len(missing) > 0 {
		s.l.Warning("journal weather data is incomplete", map[string]any{
			"id":      record.ID.String(),
			"missing": missing,
		})
	}

	return nil
}

// List returns every entry ordered by date.
func (s *JournalService) List(ctx context.Context) ([]models.JournalEntry, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list journals")
	}
	return models.Entries(records), nil
}

// ByDate returns the entries written on date, oldest first. A date that is
// not YYYY-MM-DD matches nothing.
func (s *JournalService) ByDate(ctx context.Context, date string) ([]models.JournalEntry, error) {
	if date == "" {
		return nil, ErrDateRequired
	}
	if !models.ValidDate(date) {
		return nil, ErrNotFound
	}

	records, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return nil, errors.Wrapf(err, "find journals for %s", date)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return models.Entries(records), nil
}

// Delete removes every entry written on date. Deleting nothing is not an error.
func (s *JournalService) Delete(ctx context.Context, date string) error {
	if date == "" {
		return ErrDateRequired
	}
	if !models.ValidDate(date) {
		return nil
	}

	deleted, err := s.repo.DeleteByDate(ctx, date)
	if err != nil {
		return errors.Wrapf(err, "delete journals for %s", date)
	}

	s.l.Info("journals deleted", map[string]any{
		"date":    date,
		"deleted": deleted,
	})

	return nil
}
