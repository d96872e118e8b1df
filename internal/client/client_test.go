package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-journal/internal/client"
	v1 "weather-journal/internal/controllers/http/v1"
	"weather-journal/internal/models"
	"weather-journal/internal/repositories"
	"weather-journal/internal/services/journal"
	"weather-journal/internal/services/weather"
	"weather-journal/pkg/httpserver"
	"weather-journal/pkg/logger"
	"weather-journal/pkg/observe"
)

var snapshot = models.WeatherSnapshot{
	models.TemperatureMax:              models.NumberValue(78),
	models.TemperatureMin:              models.NumberValue(63),
	models.UVIndexMax:                  models.NumberValue(6.45),
	models.PrecipitationSum:            models.NumberValue(0.02),
	models.PrecipitationProbabilityMax: models.NumberValue(12),
	models.WindSpeed:                   models.NumberValue(9.4),
	models.RelativeHumidity:            models.NumberValue(55),
	models.Sunrise:                     models.TextValue("05:26 AM"),
	models.Sunset:                      models.TextValue("08:31 PM"),
}

type fixedWeather struct{}

func (fixedWeather) Name() string { return "fixed" }

func (fixedWeather) FetchSnapshot(context.Context, models.WeatherRequest) (models.WeatherSnapshot, error) {
	return snapshot, nil
}

// newBackend serves the real router over a memory store.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	l := logger.NewNop()
	metrics := observe.NewMetrics("contract")
	app := httpserver.InitFiberServer("contract", 0, metrics)
	v1.NewRouter(
		app,
		weather.NewWeatherService(fixedWeather{}, l),
		journal.NewJournalService(repositories.NewMemoryJournalRepository(), metrics, l),
		l,
	)

	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)

	return srv
}

func TestContract_CreateThenRead(t *testing.T) {
	srv := newBackend(t)
	c := client.New(srv.URL, srv.URL)
	ctx := context.Background()

	for _, date := range []string{"2024-01-01", "2024-02-29", "2025-12-31"} {
		entry := models.JournalEntry{Date: date, WeatherData: snapshot, Text: "mood on " + date}

		msg, err := c.CreateJournal(ctx, entry)
		require.NoError(t, err)
		assert.False(t, msg.Failed())
		assert.Equal(t, "Journal created successfully", msg.Text())

		got, err := c.GetJournalByDate(ctx, date)
		require.NoError(t, err)
		assert.Equal(t, entry.Text, got.Text)
		assert.Equal(t, entry.WeatherData, got.WeatherData)
		assert.Equal(t, date, got.Date)
	}
}

func TestContract_ListOrder(t *testing.T) {
	srv := newBackend(t)
	c := client.New(srv.URL, srv.URL)
	ctx := context.Background()

	entries, err := c.GetAllJournals(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	for _, date := range []string{"2024-01-02", "2024-01-01"} {
		_, err := c.CreateJournal(ctx, models.JournalEntry{Date: date, WeatherData: snapshot, Text: "x"})
		require.NoError(t, err)
	}

	entries, err = c.GetAllJournals(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-01-01", entries[0].Date)
	assert.Equal(t, "2024-01-02", entries[1].Date)
}

func TestContract_DuplicateDateReturnsFirst(t *testing.T) {
	srv := newBackend(t)
	c := client.New(srv.URL, srv.URL)
	ctx := context.Background()

	for _, text := range []string{"morning", "evening"} {
		_, err := c.CreateJournal(ctx, models.JournalEntry{Date: "2024-03-01", WeatherData: snapshot, Text: text})
		require.NoError(t, err)
	}

	got, err := c.GetJournalByDate(ctx, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "morning", got.Text)
}

func TestContract_RejectedEntryIsNotAnError(t *testing.T) {
	srv := newBackend(t)
	c := client.New(srv.URL, srv.URL)

	msg, err := c.CreateJournal(context.Background(), models.JournalEntry{Date: "2024-01-01", WeatherData: snapshot})
	require.NoError(t, err)
	assert.True(t, msg.Failed())
	assert.Equal(t, "Date, weather data, and text are required", msg.Text())
}

func TestContract_MissingDate(t *testing.T) {
	srv := newBackend(t)
	c := client.New(srv.URL, srv.URL)

	_, err := c.GetJournalByDate(context.Background(), "1999-01-01")
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestContract_GetWeather(t *testing.T) {
	srv := newBackend(t)
	c := client.New(srv.URL, srv.URL)

	got, err := c.GetWeather(context.Background(), models.Coordinates{Latitude: 40.7128, Longitude: -74.006}, "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)
}

func TestGetWeather_Query(t *testing.T) {
	var (
		mu    sync.Mutex
		query map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		query = map[string]string{
			"path":      r.URL.Path,
			"latitude":  r.URL.Query().Get("latitude"),
			"longitude": r.URL.Query().Get("longitude"),
			"timezone":  r.URL.Query().Get("timezone"),
		}
		mu.Unlock()
		_ = json.NewEncoder(w).Encode(snapshot)
	}))
	defer srv.Close()

	c := client.New("http://journal.invalid", srv.URL+"/")
	_, err := c.GetWeather(context.Background(), models.Coordinates{Latitude: 51.5, Longitude: -0.12}, "Europe/London")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, map[string]string{
		"path":      "/getWeather",
		"latitude":  "51.5",
		"longitude": "-0.12",
		"timezone":  "Europe/London",
	}, query)
}

func TestGetWeather_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to retrieve weather data"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, srv.URL)
	_, err := c.GetWeather(context.Background(), models.Coordinates{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to retrieve weather data")
}

func TestGetJournalByDate_EmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := client.New(srv.URL, srv.URL).GetJournalByDate(context.Background(), "2024-01-01")
	assert.ErrorIs(t, err, client.ErrNotFound)
}

type failingTransport struct{}

func (failingTransport) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestTransportFailure(t *testing.T) {
	c := client.New("http://journal", "http://weather", client.WithHTTPClient(failingTransport{}))

	_, err := c.CreateJournal(context.Background(), models.JournalEntry{Date: "2024-01-01"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	_, err = c.GetAllJournals(context.Background())
	require.Error(t, err)
}

func TestGetJournalByDate_ServerErrorIsNotNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to retrieve journals"}`))
	}))
	defer srv.Close()

	_, err := client.New(srv.URL, srv.URL).GetJournalByDate(context.Background(), "2024-01-01")
	require.Error(t, err)
	assert.NotErrorIs(t, err, client.ErrNotFound)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "Failed to retrieve journals")
}

func TestGetJournalByDate_NotFoundEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"No journals found for the specified date"}`))
	}))
	defer srv.Close()

	_, err := client.New(srv.URL, srv.URL).GetJournalByDate(context.Background(), "2024-01-01")
	assert.ErrorIs(t, err, client.ErrNotFound)
}
