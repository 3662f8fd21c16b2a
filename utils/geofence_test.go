package utils

import (
	"math"
	"testing"
)

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{"delhi", Coordinate{Lat: 28.61, Lng: 77.21}, false},
		{"poles", Coordinate{Lat: -90, Lng: 180}, false},
		{"lat too high", Coordinate{Lat: 90.5, Lng: 0}, true},
		{"lng too low", Coordinate{Lat: 0, Lng: -181}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate(tt.coord)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinate(%v) error = %v, wantErr %v", tt.coord, err, tt.wantErr)
			}
		})
	}
}

func TestDistanceKm(t *testing.T) {
	delhi := Coordinate{Lat: 28.6139, Lng: 77.2090}
	mumbai := Coordinate{Lat: 19.0760, Lng: 72.8777}

	d := DistanceKm(delhi, mumbai)
	if math.Abs(d-1150) > 20 {
		t.Errorf("DistanceKm(delhi, mumbai) = %.1f, expected about 1150", d)
	}
	if DistanceKm(delhi, delhi) != 0 {
		t.Errorf("distance to self should be 0")
	}
	if !WithinRadius(delhi, Coordinate{Lat: 28.62, Lng: 77.21}, 5) {
		t.Errorf("nearby point should be within 5km")
	}
	if WithinRadius(delhi, mumbai, 500) {
		t.Errorf("mumbai should not be within 500km of delhi")
	}
}

func TestInRegion(t *testing.T) {
	square := []Coordinate{{0, 0}, {0, 10}, {10, 10}, {10, 0}}

	if !InRegion(Coordinate{Lat: 5, Lng: 5}, square) {
		t.Errorf("centre should be inside")
	}
	if InRegion(Coordinate{Lat: 15, Lng: 5}, square) {
		t.Errorf("point outside should not be inside")
	}
	if InRegion(Coordinate{Lat: 1, Lng: 1}, square[:2]) {
		t.Errorf("two points are not a region")
	}
}
