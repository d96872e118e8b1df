package location

import (
	"context"

	"github.com/pkg/errors"

	"weather-journal/internal/models"
)

type Permission string

const (
	Granted Permission = "granted"
	Denied  Permission = "denied"
)

var ErrPermissionDenied = errors.New("Permission to access location was denied")

// Locator is the device location service.
type Locator interface {
	RequestPermission(ctx context.Context) (Permission, error)
	CurrentPosition(ctx context.Context) (models.Coordinates, error)
}

// Static reports a fixed position, e.g. from configuration or flags.
type Static struct {
	Coordinates models.Coordinates
	Granted     bool
}

func NewStatic(coords models.Coordinates, granted bool) *Static {
	return &Static{Coordinates: coords, Granted: granted}
}

func (s *Static) RequestPermission(ctx context.Context) (Permission, error) {
	if err := ctx.Err(); err != nil {
		return Denied, err
	}
	if !s.Granted {
		return Denied, nil
	}
	return Granted, nil
}

func (s *Static) CurrentPosition(ctx context.Context) (models.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinates{}, err
	}
	if !s.Granted {
		return models.Coordinates{}, ErrPermissionDenied
	}
	if !s.Coordinates.Valid() {
		return models.Coordinates{}, errors.Errorf("invalid position %s", s.Coordinates)
	}
	return s.Coordinates, nil
}
