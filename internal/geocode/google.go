package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"weather-journal/internal/models"
	"weather-journal/pkg/logger"
)

const GoogleBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Resolver turns coordinates into a city name. An empty name with a nil
// error means the lookup found nothing.
type Resolver interface {
	City(ctx context.Context, coords models.Coordinates) (string, error)
}

type Google struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
	l          *logger.Logger
}

type GoogleResponse struct {
	Status  string         `json:"status"`
	Results []GoogleResult `json:"results"`
}

type GoogleResult struct {
	AddressComponents []AddressComponent `json:"address_components"`
}

type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

func NewGoogle(baseURL, apiKey string, l *logger.Logger, httpClient HTTPClient) *Google {
	if baseURL == "" {
		baseURL = GoogleBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if l == nil {
		l = logger.NewNop()
	}

	return &Google{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		l:          l,
	}
}

// City returns the locality of the first result. Transport and decoding
// failures are errors, an unsuccessful or empty answer is not.
func (g *Google) City(ctx context.Context, coords models.Coordinates) (string, error) {
	q := url.Values{}
	q.Set("latlng", fmt.Sprintf("%v,%v", coords.Latitude, coords.Longitude))
	q.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", errors.Wrap(err, "build geocode request")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "geocode request")
	}
	defer resp.Body.Close()

	var body GoogleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errors.Wrap(err, "decode geocode response")
	}

	if resp.StatusCode != http.StatusOK || len(body.Results) == 0 {
		g.l.Info("no results from geocoding API", map[string]any{
			"status":      resp.StatusCode,
			"api_status":  body.Status,
			"coordinates": coords.String(),
		})
		return "", nil
	}

	return locality(body.Results[0]), nil
}

func locality(r GoogleResult) string {
	for _, c := range r.AddressComponents {
		for _, t := range c.Types {
			if t == "locality" {
				return c.LongName
			}
		}
	}
	return ""
}
