package screens

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"weather-journal/internal/geocode"
	"weather-journal/internal/location"
	"weather-journal/internal/models"
	"weather-journal/pkg/logger"
)

const (
	PermissionDeniedMessage = "Permission to access location was denied"
	WeatherFailedMessage    = "Failed to fetch weather data"
)

// Home shows today's weather for the current position.
// It renders only once both Location and Weather are set.
type Home struct {
	locator  location.Locator
	geocoder geocode.Resolver
	weather  WeatherClient
	journals JournalClient
	timezone string
	now      func() time.Time
	l        *logger.Logger

	Location *models.ResolvedLocation
	Weather  models.WeatherSnapshot
	Err      string
	Alerts   []Alert
}

type HomeDeps struct {
	Locator  location.Locator
	Geocoder geocode.Resolver
	Weather  WeatherClient
	Journals JournalClient
	Timezone string
	Now      func() time.Time
	Logger   *logger.Logger
}

func NewHome(d HomeDeps) *Home {
	h := &Home{
		locator:  d.Locator,
		geocoder: d.Geocoder,
		weather:  d.Weather,
		journals: d.Journals,
		timezone: d.Timezone,
		now:      d.Now,
		l:        d.Logger,
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.l == nil {
		h.l = logger.NewNop()
	}
	return h
}

// Load runs permission, position, geocode and weather in that order.
// Each stage sees only what the previous ones produced. A failed stage
// leaves the screen not Ready with Err set.
func (h *Home) Load(ctx context.Context) {
	h.Location = nil
	h.Weather = nil
	h.Err = ""
	h.Alerts = nil

	coords, err := h.position(ctx)
	if err != nil {
		h.fail(err)
		return
	}

	loc := models.ResolvedLocation{
		Coordinates: coords,
		City:        h.city(ctx, coords),
	}
	h.Location = &loc

	snapshot, err := h.weather.GetWeather(ctx, loc.Coordinates, h.timezone)
	if err != nil {
		h.l.Error(err, map[string]any{"coordinates": loc.Coordinates.String()})
		h.Err = WeatherFailedMessage
		return
	}
	if snapshot == nil {
		h.l.Warning("weather endpoint returned no data", map[string]any{"coordinates": loc.Coordinates.String()})
		h.Err = WeatherFailedMessage
		return
	}
	h.Weather = snapshot
}

func (h *Home) position(ctx context.Context) (models.Coordinates, error) {
	perm, err := h.locator.RequestPermission(ctx)
	if err != nil {
		return models.Coordinates{}, errors.Wrap(err, "request location permission")
	}
	if perm != location.Granted {
		return models.Coordinates{}, location.ErrPermissionDenied
	}

	coords, err := h.locator.CurrentPosition(ctx)
	if err != nil {
		return models.Coordinates{}, errors.Wrap(err, "current position")
	}
	return coords, nil
}

// city never stops the pipeline.
func (h *Home) city(ctx context.Context, coords models.Coordinates) string {
	if h.geocoder == nil {
		return ""
	}

	city, err := h.geocoder.City(ctx, coords)
	if err != nil {
		h.l.Warning("reverse geocoding failed", map[string]any{"err": err.Error()})
		h.Alerts = append(h.Alerts, Alert{Title: "Error", Message: "Could not get location."})
		return ""
	}
	return city
}

func (h *Home) fail(err error) {
	if errors.Is(err, location.ErrPermissionDenied) {
		h.Err = PermissionDeniedMessage
		h.Alerts = append(h.Alerts, Alert{Title: "Permission denied", Message: "Location permission is required."})
		return
	}
	h.l.Error(err)
	h.Err = err.Error()
}

func (h *Home) Ready() bool {
	return h.Location != nil && h.Weather != nil
}

// Compose opens a journal modal seeded with the current snapshot.
// It returns nil until the screen is Ready.
func (h *Home) Compose() *JournalModal {
	if !h.Ready() {
		return nil
	}
	return NewJournalModal(h.journals, h.Weather, h.now)
}
