package location

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-journal/internal/models"
)

func TestStatic_Granted(t *testing.T) {
	want := models.Coordinates{Latitude: 47.6062, Longitude: -122.3321}
	s := NewStatic(want, true)

	perm, err := s.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Granted, perm)

	got, err := s.CurrentPosition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStatic_Denied(t *testing.T) {
	s := NewStatic(models.Coordinates{Latitude: 1, Longitude: 2}, false)

	perm, err := s.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Denied, perm)

	_, err = s.CurrentPosition(context.Background())
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestStatic_InvalidPosition(t *testing.T) {
	_, err := NewStatic(models.Coordinates{Latitude: 120}, true).CurrentPosition(context.Background())
	assert.Error(t, err)
}

func TestStatic_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStatic(models.Coordinates{}, true).RequestPermission(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
