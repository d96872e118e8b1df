// Package screens holds the view state of each client screen. A screen owns
// its state, resets it on Load and shares nothing with other screens.
package screens

import (
	"context"

	"weather-journal/internal/models"
)

type WeatherClient interface {
	GetWeather(ctx context.Context, coords models.Coordinates, timezone string) (models.WeatherSnapshot, error)
}

type JournalClient interface {
	GetAllJournals(ctx context.Context) ([]models.JournalEntry, error)
	GetJournalByDate(ctx context.Context, date string) (models.JournalEntry, error)
	CreateJournal(ctx context.Context, entry models.JournalEntry) (models.StatusMessage, error)
}

// Alert is a one-shot dialog.
type Alert struct {
	Title   string
	Message string
}

// MetricLabel pairs a grid title with the metric it shows.
type MetricLabel struct {
	Title  string
	Metric models.Metric
}

// GridLabels is the fixed order of the two-column weather grid.
var GridLabels = []MetricLabel{
	{Title: "UV Index Max", Metric: models.UVIndexMax},
	{Title: "Precipitation Sum", Metric: models.PrecipitationSum},
	{Title: "Sunrise", Metric: models.Sunrise},
	{Title: "Sunset", Metric: models.Sunset},
	{Title: "Precipitation Probability Max", Metric: models.PrecipitationProbabilityMax},
	{Title: "Wind Speed", Metric: models.WindSpeed},
	{Title: "Relative Humidity", Metric: models.RelativeHumidity},
}
