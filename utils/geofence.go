package utils

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// Coordinate represents a geographic coordinate with latitude and longitude
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point returns the coordinate as an orb point (lng, lat).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// ValidateCoordinate checks latitude and longitude ranges.
func ValidateCoordinate(coord Coordinate) error {
	if coord.Lat < -90 || coord.Lat > 90 {
		return fmt.Errorf("latitude %.6f is out of valid range [-90, 90]", coord.Lat)
	}
	if coord.Lng < -180 || coord.Lng > 180 {
		return fmt.Errorf("longitude %.6f is out of valid range [-180, 180]", coord.Lng)
	}
	return nil
}

// DistanceKm is the great-circle distance between two coordinates.
func DistanceKm(a, b Coordinate) float64 {
	return geo.DistanceHaversine(a.Point(), b.Point()) / 1000
}

// WithinRadius reports whether p lies within radiusKm of center.
func WithinRadius(center, p Coordinate, radiusKm float64) bool {
	return DistanceKm(center, p) <= radiusKm
}

// InRegion reports whether p falls inside the polygon described by ring.
// The ring does not need to be closed.
func InRegion(p Coordinate, ring []Coordinate) bool {
	if len(ring) < 3 {
		return false
	}
	r := make(orb.Ring, 0, len(ring)+1)
	for _, c := range ring {
		r = append(r, c.Point())
	}
	if !r.Closed() {
		r = append(r, r[0])
	}
	return planar.RingContains(r, p.Point())
}
