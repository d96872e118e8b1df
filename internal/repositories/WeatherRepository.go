package repositories

import (
	"context"
	"net/http"

	"weather-journal/config"
	"weather-journal/internal/models"
	"weather-journal/pkg/logger"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type WeatherRepository interface {
	Name() string
	FetchSnapshot(ctx context.Context, req models.WeatherRequest) (models.WeatherSnapshot, error)
}

func InitWeatherRepository(cfg *config.Config, l *logger.Logger) WeatherRepository {
	return NewOpenMeteoRepository(cfg.Weather.BaseURL, l, &http.Client{Timeout: cfg.Weather.Timeout})
}
