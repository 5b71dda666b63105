package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_SamePoint(t *testing.T) {
	p := Coordinate{Latitude: 32.7266, Longitude: 74.8570}

	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistance_Symmetric(t *testing.T) {
	a := Coordinate{Latitude: 55.75, Longitude: 37.61}
	b := Coordinate{Latitude: 32.7266, Longitude: 74.8570}

	assert.Equal(t, Distance(a, b), Distance(b, a))
}

func TestDistance_Antipodes(t *testing.T) {
	a := Coordinate{Latitude: 0, Longitude: 0}
	b := Coordinate{Latitude: 0, Longitude: 180}

	// Половина длины большого круга, ~20015 км
	assert.InDelta(t, 20015.0, Distance(a, b), 1.0)
}

func TestDistance_KnownValue(t *testing.T) {
	// Москва -> Санкт-Петербург, ~634 км
	a := Coordinate{Latitude: 55.7558, Longitude: 37.6173}
	b := Coordinate{Latitude: 59.9343, Longitude: 30.3351}

	assert.InDelta(t, 634.0, Distance(a, b), 5.0)
}

func TestDistance_MonotonicByLatitude(t *testing.T) {
	origin := Coordinate{Latitude: 10.0, Longitude: 74.0}

	prev := 0.0
	for dLat := 0.0; dLat <= 30.0; dLat += 0.5 {
		d := Distance(origin, Coordinate{Latitude: origin.Latitude + dLat, Longitude: origin.Longitude})
		assert.GreaterOrEqual(t, d, prev, "расстояние должно монотонно расти при смещении по широте")
		prev = d
	}
}

func TestCoordinate_Valid(t *testing.T) {
	assert.True(t, Coordinate{Latitude: 90, Longitude: -180}.Valid())
	assert.False(t, Coordinate{Latitude: 91, Longitude: 0}.Valid())
	assert.False(t, Coordinate{Latitude: 0, Longitude: 180.5}.Valid())
}
