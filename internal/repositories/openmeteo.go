package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weather-journal/internal/models"
	"weather-journal/pkg/logger"
)

const (
	OpenMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

	openMeteoTimeLayout = "2006-01-02T15:04"
	clockLayout         = "03:04 PM"
)

// dailyVariables is the order Open-Meteo is asked for; the response is keyed by name.
var dailyVariables = []string{
	"temperature_2m_max",
	"temperature_2m_min",
	"uv_index_max",
	"precipitation_sum",
	"sunrise",
	"sunset",
	"precipitation_probability_max",
	"wind_speed_10m_max",
}

type OpenMeteoRepository struct {
	baseURL    string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewOpenMeteoRepository(baseURL string, l *logger.Logger, httpClient HTTPClient) *OpenMeteoRepository {
	if baseURL == "" {
		baseURL = OpenMeteoBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &OpenMeteoRepository{
		baseURL:    baseURL,
		httpClient: httpClient,
		l:          l,
	}
}

func (o *OpenMeteoRepository) Name() string {
	return "open-meteo"
}

type OpenMeteoDaily struct {
	Time                        []string  `json:"time"`
	Temperature2mMax            []float64 `json:"temperature_2m_max"`
	Temperature2mMin            []float64 `json:"temperature_2m_min"`
	UVIndexMax                  []float64 `json:"uv_index_max"`
	PrecipitationSum            []float64 `json:"precipitation_sum"`
	Sunrise                     []string  `json:"sunrise"`
	Sunset                      []string  `json:"sunset"`
	PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
	WindSpeed10mMax             []float64 `json:"wind_speed_10m_max"`
}

type OpenMeteoCurrent struct {
	Time               string  `json:"time"`
	RelativeHumidity2m float64 `json:"relative_humidity_2m"`
}

type OpenMeteoResponse struct {
	Timezone string           `json:"timezone"`
	Current  OpenMeteoCurrent `json:"current"`
	Daily    OpenMeteoDaily   `json:"daily"`
}

type OpenMeteoErrorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

func (o *OpenMeteoRepository) requestURL(req models.WeatherRequest) string {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(req.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(req.Longitude, 'f', -1, 64))
	params.Set("current", "relative_humidity_2m")
	params.Set("daily", strings.Join(dailyVariables, ","))
	params.Set("temperature_unit", "fahrenheit")
	params.Set("wind_speed_unit", "mph")
	params.Set("precipitation_unit", "inch")
	params.Set("timezone", req.TimezoneOrAuto())
	params.Set("forecast_days", "1")

	return o.baseURL + "?" + params.Encode()
}

// FetchSnapshot fetches today's daily aggregates plus current humidity for the request's coordinates.
func (o *OpenMeteoRepository) FetchSnapshot(ctx context.Context, req models.WeatherRequest) (models.WeatherSnapshot, error) {
	o.l.Info("making openmeteo API request", map[string]any{
		"params": req.RequestParams(),
	})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, o.requestURL(req), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	o.l.Info("received openmeteo API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp OpenMeteoErrorResponse
		if jsonErr := json.Unmarshal(body, &errorResp); jsonErr == nil && errorResp.Error {
			return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, errorResp.Reason)
		}
		return nil, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	var response OpenMeteoResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	o.l.Debug("parsed API response", map[string]any{
		"days":     len(response.Daily.Time),
		"timezone": response.Timezone,
	})

	snapshot, err := snapshotFromOpenMeteo(response)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}

	return snapshot, nil
}

// snapshotFromOpenMeteo takes day 0 of every daily series. Temperatures are
// truncated to whole degrees and sun times rendered as 12-hour clock strings.
func snapshotFromOpenMeteo(resp OpenMeteoResponse) (models.WeatherSnapshot, error) {
	daily := resp.Daily
	if len(daily.Time) == 0 {
		return nil, fmt.Errorf("no forecast data available")
	}

	numbers := []struct {
		metric models.Metric
		series string
		values []float64
		trunc  bool
	}{
		{models.TemperatureMax, "temperature_2m_max", daily.Temperature2mMax, true},
		{models.TemperatureMin, "temperature_2m_min", daily.Temperature2mMin, true},
		{models.UVIndexMax, "uv_index_max", daily.UVIndexMax, false},
		{models.PrecipitationSum, "precipitation_sum", daily.PrecipitationSum, false},
		{models.PrecipitationProbabilityMax, "precipitation_probability_max", daily.PrecipitationProbabilityMax, false},
		{models.WindSpeed, "wind_speed_10m_max", daily.WindSpeed10mMax, false},
	}

	snapshot := make(models.WeatherSnapshot, len(models.KnownMetrics))
	for _, n := range numbers {
		if len(n.values) == 0 {
			return nil, fmt.Errorf("missing daily series %s", n.series)
		}
		v := n.values[0]
		if n.trunc {
			v = math.Trunc(v)
		}
		snapshot[n.metric] = models.NumberValue(v)
	}

	clocks := []struct {
		metric models.Metric
		series string
		values []string
	}{
		{models.Sunrise, "sunrise", daily.Sunrise},
		{models.Sunset, "sunset", daily.Sunset},
	}
	for _, c := range clocks {
		if len(c.values) == 0 {
			return nil, fmt.Errorf("missing daily series %s", c.series)
		}
		t, err := time.Parse(openMeteoTimeLayout, c.values[0])
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s %q: %w", c.series, c.values[0], err)
		}
		snapshot[c.metric] = models.TextValue(t.Format(clockLayout))
	}

	snapshot[models.RelativeHumidity] = models.NumberValue(resp.Current.RelativeHumidity2m)

	return snapshot, nil
}
