package models

import (
	"fmt"
	"time"
)

// AutoTimezone lets Open-Meteo pick the timezone from the coordinates.
const AutoTimezone = "auto"

type WeatherRequest struct {
	Coordinates
	Timezone string
}

func (r WeatherRequest) TimezoneOrAuto() string {
	if r.Timezone == "" {
		return AutoTimezone
	}
	return r.Timezone
}

// Day is the calendar date of t in the requested timezone, UTC when it cannot be resolved.
func (r WeatherRequest) Day(t time.Time) string {
	loc := time.UTC
	if tz := r.TimezoneOrAuto(); tz != AutoTimezone {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	return t.In(loc).Format(DateLayout)
}

func (r WeatherRequest) CacheKey(day string) string {
	return fmt.Sprintf("%.4f:%.4f:%s:%s", r.Latitude, r.Longitude, r.TimezoneOrAuto(), day)
}

func (r WeatherRequest) RequestParams() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f timezone: %s", r.Latitude, r.Longitude, r.TimezoneOrAuto())
}
