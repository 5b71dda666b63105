package geo

import "math"

// earthRadiusKm - средний радиус Земли в километрах
const earthRadiusKm = 6371.0

// Coordinate - неизменяемая пара координат (широта/долгота)
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid проверяет, что координаты лежат в допустимых диапазонах
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Distance возвращает расстояние по дуге большого круга (формула гаверсинусов) в километрах
func Distance(a, b Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	// math.Min защищает Asin от выхода h за единицу из-за погрешности float64 (антиподы)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(math.Min(h, 1)))
}
