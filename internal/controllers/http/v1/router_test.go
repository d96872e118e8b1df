package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "weather-journal/internal/controllers/http/v1"
	"weather-journal/internal/models"
	"weather-journal/internal/repositories"
	"weather-journal/internal/services/journal"
	"weather-journal/internal/services/weather"
	"weather-journal/pkg/httpserver"
	"weather-journal/pkg/logger"
	"weather-journal/pkg/observe"
)

type stubWeather struct {
	snapshot models.WeatherSnapshot
	err      error
	last     models.WeatherRequest
}

func (s *stubWeather) Name() string { return "stub" }

func (s *stubWeather) FetchSnapshot(_ context.Context, req models.WeatherRequest) (models.WeatherSnapshot, error) {
	s.last = req
	return s.snapshot, s.err
}

var today = models.WeatherSnapshot{
	models.TemperatureMax:   models.NumberValue(78),
	models.TemperatureMin:   models.NumberValue(63),
	models.RelativeHumidity: models.NumberValue(55),
	models.Sunrise:          models.TextValue("05:26 AM"),
}

func newTestApp(t *testing.T, upstream *stubWeather) *fiber.App {
	t.Helper()

	l := logger.NewNop()
	metrics := observe.NewMetrics("test")
	app := httpserver.InitFiberServer("weather-journal-test", 0, metrics)

	v1.NewRouter(
		app,
		weather.NewWeatherService(upstream, l),
		journal.NewJournalService(repositories.NewMemoryJournalRepository(), metrics, l),
		l,
	)

	return app
}

func do(t *testing.T, app *fiber.App, method, target string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, raw
}

func errorMessage(t *testing.T, raw []byte) string {
	t.Helper()

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	return resp.Error
}

func TestGetWeather(t *testing.T) {
	upstream := &stubWeather{snapshot: today}
	app := newTestApp(t, upstream)

	status, raw := do(t, app, http.MethodGet, "/getWeather?latitude=40.7128&longitude=-74.006&timezone=America/New_York", nil)
	require.Equal(t, http.StatusOK, status)

	var got models.WeatherSnapshot
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, today, got)

	assert.Equal(t, 40.7128, upstream.last.Latitude)
	assert.Equal(t, -74.006, upstream.last.Longitude)
	assert.Equal(t, "America/New_York", upstream.last.Timezone)
}

func TestGetWeather_BadRequest(t *testing.T) {
	app := newTestApp(t, &stubWeather{snapshot: today})

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"missing both", "", "Latitude and longitude are required"},
		{"missing longitude", "?latitude=1", "Latitude and longitude are required"},
		{"bad latitude", "?latitude=north&longitude=1", "Invalid latitude format"},
		{"latitude out of range", "?latitude=91&longitude=1", "Latitude must be between -90 and 90"},
		{"bad longitude", "?latitude=1&longitude=east", "Invalid longitude format"},
		{"longitude out of range", "?latitude=1&longitude=-181", "Longitude must be between -180 and 180"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := do(t, app, http.MethodGet, "/getWeather"+tt.query, nil)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.want, errorMessage(t, raw))
		})
	}
}

func TestGetWeather_UpstreamFailure(t *testing.T) {
	app := newTestApp(t, &stubWeather{err: errors.New("open-meteo down")})

	status, raw := do(t, app, http.MethodGet, "/getWeather?latitude=1&longitude=2", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to retrieve weather data", errorMessage(t, raw))
}

func TestJournalLifecycle(t *testing.T) {
	app := newTestApp(t, &stubWeather{})

	for _, entry := range []models.JournalEntry{
		{Date: "2024-01-02", WeatherData: today, Text: "second day"},
		{Date: "2024-01-01", WeatherData: today, Text: "first day"},
		{Date: "2024-01-01", WeatherData: today, Text: "first day again"},
	} {
		status, raw := do(t, app, http.MethodPost, "/createJournal", entry)
		require.Equal(t, http.StatusCreated, status, string(raw))

		var msg models.MessageResponse
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, "Journal created successfully", msg.Message)
	}

	status, raw := do(t, app, http.MethodGet, "/getAllJournals", nil)
	require.Equal(t, http.StatusOK, status)

	var all []models.JournalEntry
	require.NoError(t, json.Unmarshal(raw, &all))
	require.Len(t, all, 3)
	assert.Equal(t, "2024-01-01", all[0].Date)
	assert.Equal(t, "2024-01-01", all[1].Date)
	assert.Equal(t, "2024-01-02", all[2].Date)

	status, raw = do(t, app, http.MethodGet, "/getJournalByDate?date=2024-01-01", nil)
	require.Equal(t, http.StatusOK, status)

	var day []models.JournalEntry
	require.NoError(t, json.Unmarshal(raw, &day))
	require.Len(t, day, 2)
	assert.Equal(t, "first day", day[0].Text)
	assert.Equal(t, "first day again", day[1].Text)
	assert.Equal(t, today, day[0].WeatherData)

	status, _ = do(t, app, http.MethodDelete, "/deleteJournal?date=2024-01-01", nil)
	require.Equal(t, http.StatusOK, status)

	status, raw = do(t, app, http.MethodGet, "/getJournalByDate?date=2024-01-01", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No journals found for the specified date", errorMessage(t, raw))
}

func TestCreateJournal_BadRequest(t *testing.T) {
	app := newTestApp(t, &stubWeather{})

	tests := []struct {
		name string
		body any
		want string
	}{
		{"missing text", models.JournalEntry{Date: "2024-01-01", WeatherData: today}, "Date, weather data, and text are required"},
		{"missing weather", models.JournalEntry{Date: "2024-01-01", Text: "hi"}, "Date, weather data, and text are required"},
		{"missing date", models.JournalEntry{WeatherData: today, Text: "hi"}, "Date, weather data, and text are required"},
		{"bad date", models.JournalEntry{Date: "01/01/2024", WeatherData: today, Text: "hi"}, "Date must use the YYYY-MM-DD format"},
		{"invalid json", `{"date":`, "Invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := do(t, app, http.MethodPost, "/createJournal", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.want, errorMessage(t, raw))
		})
	}
}

func TestGetAllJournals_Empty(t *testing.T) {
	app := newTestApp(t, &stubWeather{})

	status, raw := do(t, app, http.MethodGet, "/getAllJournals", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestDateRequired(t *testing.T) {
	app := newTestApp(t, &stubWeather{})

	status, raw := do(t, app, http.MethodGet, "/getJournalByDate", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Date parameter is required", errorMessage(t, raw))

	status, raw = do(t, app, http.MethodDelete, "/deleteJournal", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Date parameter is required", errorMessage(t, raw))
}

func TestManagementEndpoints(t *testing.T) {
	app := newTestApp(t, &stubWeather{snapshot: today})

	status, _ := do(t, app, http.MethodGet, "/manage/health", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodGet, "/manage/ready", nil)
	assert.Equal(t, http.StatusOK, status)

	do(t, app, http.MethodGet, "/getWeather?latitude=1&longitude=2", nil)

	status, raw := do(t, app, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `test_http_requests_total{method="GET",route="/getWeather",status="200"} 1`)
}

func TestMalformedDate(t *testing.T) {
	app := newTestApp(t, &stubWeather{})

	status, raw := do(t, app, http.MethodGet, "/getJournalByDate?date=foo", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No journals found for the specified date", errorMessage(t, raw))

	status, _ = do(t, app, http.MethodDelete, "/deleteJournal?date=foo", nil)
	assert.Equal(t, http.StatusOK, status)
}
