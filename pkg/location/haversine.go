package location

import "math"

// EarthRadiusMeters is the mean Earth radius used for Haversine.
const EarthRadiusMeters = 6371000.0

// HaversineMeters returns distance in meters between two points (lat/lng in degrees).
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	φ1, φ2 := rad(lat1), rad(lat2)
	Δφ := rad(lat2 - lat1)
	Δλ := rad(lng2 - lng1)
	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// Geofence is a circle around a registered point.
type Geofence struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// Check returns the distance from the centre and whether it lies inside the radius.
func (g Geofence) Check(lat, lng float64) (distanceMeters float64, within bool) {
	d := HaversineMeters(g.Latitude, g.Longitude, lat, lng)
	return d, d <= g.RadiusMeters
}

// ValidCoordinate reports whether lat/lng are in range.
func ValidCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
