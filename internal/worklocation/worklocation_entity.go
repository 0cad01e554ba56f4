package worklocation

import (
	"strings"

	worklocationerrors "go-attendance/internal/worklocation/errors"
)

// WorkLocation is a geofenced office point. Radius is in meters.
type WorkLocation struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
	Address   string  `json:"address,omitempty"`
}

// DefaultLocations is served until the backend has answered once.
func DefaultLocations() []WorkLocation {
	return []WorkLocation{{
		Name:      "Head Office",
		Latitude:  6.927079,
		Longitude: 79.861243,
		Radius:    100,
	}}
}

func (l WorkLocation) Validate() error {
	switch {
	case strings.TrimSpace(l.Name) == "":
		return worklocationerrors.ErrNameRequired
	case l.Latitude < -90 || l.Latitude > 90:
		return worklocationerrors.ErrInvalidLatitude
	case l.Longitude < -180 || l.Longitude > 180:
		return worklocationerrors.ErrInvalidLongitude
	case !(l.Radius > 0):
		return worklocationerrors.ErrInvalidRadius
	}
	return nil
}
