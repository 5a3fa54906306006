package spatial

import (
	"math"
	"testing"
)

func TestValidLatLng(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     bool
	}{
		{0, 0, true},
		{89.999, 179.999, true},
		{-89.999, -179.999, true},
		{90.0001, 0, false},
		{0, 180.5, true},
		{10, 359.9, true},
		{-90.5, 0, false},
		{math.NaN(), 0, false},
		{0, math.Inf(1), false},
	}
	for _, c := range cases {
		if got := ValidLatLng(c.lat, c.lon); got != c.want {
			t.Errorf("ValidLatLng(%v, %v) = %v, want %v", c.lat, c.lon, got, c.want)
		}
	}
}

func TestHaversineDistance(t *testing.T) {
	// One degree of longitude on the equator
	d := HaversineDistance(0, 0, 0, 1)
	want := EarthRadiusMeters * math.Pi / 180
	if math.Abs(d-want) > 1e-6 {
		t.Errorf("expected %f m, got %f m", want, d)
	}
}

func TestAngleDiff(t *testing.T) {
	if d := AngleDiff(350, 10); math.Abs(d-20) > 1e-9 {
		t.Errorf("expected 20, got %v", d)
	}
	if d := AngleDiff(90, 270); math.Abs(d-180) > 1e-9 {
		t.Errorf("expected 180, got %v", d)
	}
}
