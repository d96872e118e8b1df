package weather

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"weather-journal/internal/models"
	"weather-journal/internal/repositories"
	"weather-journal/pkg/logger"
	"weather-journal/pkg/observe"
)

var ErrInvalidCoordinates = errors.New("latitude must be between -90 and 90 and longitude between -180 and 180")

// WeatherService answers /getWeather from the upstream repository, behind a
// rate limiter and a short-lived cache keyed by place, timezone and day.
type WeatherService struct {
	repo    repositories.WeatherRepository
	cache   *gocache.Cache
	limiter *rate.Limiter
	metrics *observe.Metrics
	now     func() time.Time
	l       *logger.Logger
}

type Option func(*WeatherService)

// WithCache keeps snapshots for ttl. A zero ttl disables caching.
func WithCache(ttl time.Duration) Option {
	return func(s *WeatherService) {
		if ttl > 0 {
			s.cache = gocache.New(ttl, 2*ttl)
		}
	}
}

// WithRateLimit caps upstream calls at rps with the given burst. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *WeatherService) {
		if rps > 0 {
			if burst < 1 {
				burst = 1
			}
			s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

func WithMetrics(m *observe.Metrics) Option {
	return func(s *WeatherService) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *WeatherService) {
		s.now = now
	}
}

func NewWeatherService(repo repositories.WeatherRepository, l *logger.Logger, opts ...Option) *WeatherService {
	s := &WeatherService{
		repo: repo,
		now:  time.Now,
		l:    l,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchSnapshot returns today's WeatherSnapshot for req.
func (s *WeatherService) FetchSnapshot(ctx context.Context, req models.WeatherRequest) (models.WeatherSnapshot, error) {
	if !req.Valid() {
		return nil, ErrInvalidCoordinates
	}

	key := req.CacheKey(req.Day(s.now()))
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			s.metrics.ObserveCache(true)
			s.l.Debug("weather cache hit", map[string]any{"key": key})
			return cached.(models.WeatherSnapshot), nil
		}
		s.metrics.ObserveCache(false)
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "rate limit wait canceled")
		}
	}

	s.l.Info("fetching weather snapshot", map[string]any{
		"repo":   s.repo.Name(),
		"params": req.RequestParams(),
	})

	snapshot, err := s.repo.FetchSnapshot(ctx, req)
	s.metrics.ObserveUpstream(s.repo.Name(), err)
	if err != nil {
		s.l.Error(err, map[string]any{
			"repo":   s.repo.Name(),
			"params": req.RequestParams(),
		})
		return nil, errors.Wrapf(err, "fetch snapshot from %s", s.repo.Name())
	}

	if s.cache != nil {
		s.cache.SetDefault(key, snapshot)
	}

	return snapshot, nil
}
