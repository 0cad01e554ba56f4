// Package geofence decides whether a coordinate lies inside an office's
// circular boundary.
package geofence

import (
	"math"

	"go-attendance/internal/worklocation"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Result of evaluating one point against one office. Distance is in meters,
// rounded to one decimal place.
type Result struct {
	IsWithinOffice bool                      `json:"isWithinOffice"`
	Distance       float64                   `json:"distance"`
	Office         worklocation.WorkLocation `json:"office"`
}

// Distance returns the great-circle distance between a and b in meters.
// Coordinates are not validated; out-of-range input yields whatever the
// formula produces.
func Distance(a, b Point) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLng := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// Evaluate reports whether user is within office.Radius of the office.
// The boundary is inclusive and the sensor accuracy is not factored in.
func Evaluate(user Point, office worklocation.WorkLocation) Result {
	d := Distance(user, Point{Latitude: office.Latitude, Longitude: office.Longitude})
	return Result{
		IsWithinOffice: d <= office.Radius,
		Distance:       math.Round(d*10) / 10,
		Office:         office,
	}
}

// EvaluateNearest evaluates user against every office and returns the
// closest office the user is inside of, or the closest office overall when
// the user is inside none. ok is false when offices is empty.
func EvaluateNearest(user Point, offices []worklocation.WorkLocation) (res Result, ok bool) {
	for _, office := range offices {
		r := Evaluate(user, office)
		switch {
		case !ok:
			res, ok = r, true
		case r.IsWithinOffice && !res.IsWithinOffice:
			res = r
		case r.IsWithinOffice == res.IsWithinOffice && r.Distance < res.Distance:
			res = r
		}
	}
	return res, ok
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
