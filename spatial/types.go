// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"fmt"
	"math"
)

const earthRadius = 6371e3 // meters

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.Lng, p.Lat)
}

// Valid reports whether the point lies within the global coordinate ranges.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// India bounding box, with margin. Results outside it are suspicious but
// not invalid: border listings and country-level approximations
// legitimately fall outside.
const (
	indiaMinLat = 6.0
	indiaMaxLat = 37.0
	indiaMinLng = 68.0
	indiaMaxLng = 97.0
)

// InIndia reports whether the point falls within a rough bounding box of
// India. Used for flagging only, never for rejection.
func (p Point) InIndia() bool {
	return p.Lat >= indiaMinLat && p.Lat <= indiaMaxLat &&
		p.Lng >= indiaMinLng && p.Lng <= indiaMaxLng
}

// HaversineDistance calculates the distance between two points on Earth in meters.
func (p *Point) HaversineDistance(other *Point) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLng := (other.Lng - p.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
