package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"weather-journal/internal/models"
)

// MemoryJournalRepository keeps records in process memory.
type MemoryJournalRepository struct {
	mu      sync.RWMutex
	records []models.JournalRecord
	now     func() time.Time
}

func NewMemoryJournalRepository() *MemoryJournalRepository {
	return &MemoryJournalRepository{now: time.Now}
}

func (m *MemoryJournalRepository) Save(_ context.Context, entry models.JournalEntry) (models.JournalRecord, error) {
	record := models.JournalRecord{
		ID:           uuid.New(),
		CreatedAt:    m.now().UTC(),
		JournalEntry: entry,
	}

	m.mu.Lock()
	m.records = append(m.records, record)
	m.mu.Unlock()

	return record, nil
}

func (m *MemoryJournalRepository) FindAll(_ context.Context) ([]models.JournalRecord, error) {
	m.mu.RLock()
	out := make([]models.JournalRecord, len(m.records))
	copy(out, m.records)
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})

	return out, nil
}

func (m *MemoryJournalRepository) FindByDate(_ context.Context, date string) ([]models.JournalRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.JournalRecord, 0)
	for _, r := range m.records {
		if r.Date == date {
			out = append(out, r)
		}
	}

	return out, nil
}

func (m *MemoryJournalRepository) DeleteByDate(_ context.Context, date string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	var deleted int64
	for _, r := range m.records {
		if r.Date == date {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept

	return deleted, nil
}

func (m *MemoryJournalRepository) Close() error {
	return nil
}
