package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used for great-circle distances.
const EarthRadiusMeters = 6371000

const (
	MinRadius     = 100
	MaxRadius     = 5000
	DefaultRadius = 1000
)

// Haversine returns the great-circle distance in metres between two lat/lng points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ValidCoordinates reports whether lat is in [-90,90] and lng in [-180,180].
func ValidCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// ClampRadius returns radius unchanged when it is within [MinRadius, MaxRadius]
// and DefaultRadius otherwise. Out-of-range values are never rejected.
func ClampRadius(radius int) int {
	if radius < MinRadius || radius > MaxRadius {
		return DefaultRadius
	}
	return radius
}

// RoundMeters rounds a distance to the nearest whole metre.
func RoundMeters(d float64) float64 {
	return math.Round(d)
}
