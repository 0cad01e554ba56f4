package worklocation

import (
	"testing"

	worklocationerrors "go-attendance/internal/worklocation/errors"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLocations(t *testing.T) {
	locs := DefaultLocations()

	assert.Len(t, locs, 1)
	assert.Equal(t, 6.927079, locs[0].Latitude)
	assert.Equal(t, 79.861243, locs[0].Longitude)
	assert.Equal(t, 100.0, locs[0].Radius)
	assert.NoError(t, locs[0].Validate())
}

func TestWorkLocation_Validate(t *testing.T) {
	valid := WorkLocation{Name: "HQ", Latitude: 6.9, Longitude: 79.8, Radius: 50}

	tests := []struct {
		name   string
		mutate func(l *WorkLocation)
		err    error
	}{
		{"valid", func(l *WorkLocation) {}, nil},
		{"blank name", func(l *WorkLocation) { l.Name = "  " }, worklocationerrors.ErrNameRequired},
		{"latitude too high", func(l *WorkLocation) { l.Latitude = 90.1 }, worklocationerrors.ErrInvalidLatitude},
		{"longitude too low", func(l *WorkLocation) { l.Longitude = -180.5 }, worklocationerrors.ErrInvalidLongitude},
		{"zero radius", func(l *WorkLocation) { l.Radius = 0 }, worklocationerrors.ErrInvalidRadius},
		{"poles are valid", func(l *WorkLocation) { l.Latitude = -90 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid
			tt.mutate(&l)
			err := l.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
