package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the YYYY-MM-DD key of a journal entry.
const DateLayout = "2006-01-02"

// JournalEntry is one mood note bundled with the day's weather.
type JournalEntry struct {
	Date        string          `json:"date" example:"2024-01-01"`
	WeatherData WeatherSnapshot `json:"weatherData"`
	Text        string          `json:"text" example:"Sunny and calm, felt great."`
}

// JournalRecord is a stored JournalEntry. Several records may share a date.
type JournalRecord struct {
	ID        uuid.UUID
	CreatedAt time.Time
	JournalEntry
}

func ValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// Entries strips storage metadata from records, keeping their order.
func Entries(records []JournalRecord) []JournalEntry {
	entries := make([]JournalEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, r.JournalEntry)
	}
	return entries
}
