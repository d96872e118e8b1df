package screens

import (
	"context"
	"time"

	"weather-journal/internal/models"
)

// JournalList lists every entry in the order the backend returned them.
type JournalList struct {
	client JournalClient

	Entries []models.JournalEntry
	Loaded  bool
	Err     string
}

func NewJournalList(client JournalClient) *JournalList {
	return &JournalList{client: client}
}

func (s *JournalList) Load(ctx context.Context) {
	s.Entries, s.Loaded, s.Err = nil, false, ""

	entries, err := s.client.GetAllJournals(ctx)
	if err != nil {
		s.Err = err.Error()
		return
	}
	s.Entries = entries
	s.Loaded = true
}

func (s *JournalList) Empty() bool {
	return s.Loaded && len(s.Entries) == 0
}

// Rows are the navigable items, one per entry.
func (s *JournalList) Rows() []string {
	rows := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		rows = append(rows, "View "+e.Date)
	}
	return rows
}

// JournalDetail shows one entry. When the date holds several entries the
// first one is shown.
type JournalDetail struct {
	client JournalClient

	Date  string
	Entry *models.JournalEntry
	Err   string
}

func NewJournalDetail(client JournalClient, date string) *JournalDetail {
	return &JournalDetail{client: client, Date: date}
}

func (s *JournalDetail) Load(ctx context.Context) {
	s.Entry, s.Err = nil, ""

	entry, err := s.client.GetJournalByDate(ctx, s.Date)
	if err != nil {
		s.Err = err.Error()
		return
	}
	s.Entry = &entry
}

// JournalModal is the "My Mood Today" form.
type JournalModal struct {
	client JournalClient
	now    func() time.Time

	Weather      models.WeatherSnapshot
	Text         string
	Notification string
	Visible      bool
	// Rejected is set when the server answered with an error instead of a message.
	Rejected bool
}

func NewJournalModal(client JournalClient, weather models.WeatherSnapshot, now func() time.Time) *JournalModal {
	if now == nil {
		now = time.Now
	}
	return &JournalModal{client: client, now: now, Weather: weather}
}

// Submit posts the entry dated with today's UTC calendar date and shows the
// server's message or error. Only transport failures are returned.
func (s *JournalModal) Submit(ctx context.Context) error {
	entry := models.JournalEntry{
		Date:        s.now().UTC().Format(models.DateLayout),
		WeatherData: s.Weather,
		Text:        s.Text,
	}

	msg, err := s.client.CreateJournal(ctx, entry)
	if err != nil {
		return err
	}

	s.Notification = msg.Text()
	s.Rejected = msg.Failed()
	s.Visible = true

	return nil
}

func (s *JournalModal) Dismiss() {
	s.Visible = false
}
