package models

import "fmt"

type Coordinates struct {
	Latitude  float64 `json:"latitude" example:"40.7128"`
	Longitude float64 `json:"longitude" example:"-74.006"`
}

func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%f,%f", c.Latitude, c.Longitude)
}

// ResolvedLocation is a position plus its reverse-geocoded city.
// City is empty when the lookup produced nothing.
type ResolvedLocation struct {
	Coordinates
	City string
}

func (l ResolvedLocation) HasCity() bool {
	return l.City != ""
}
