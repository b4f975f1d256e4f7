package proximity

// Label returns a coarse label for a member's distance to the gym, so clients
// can show progress without exposing raw coordinates of the gym.
func Label(distanceMeters, radiusMeters float64) string {
	if radiusMeters <= 0 {
		return ""
	}
	switch ratio := distanceMeters / radiusMeters; {
	case ratio <= 1:
		return "At the gym"
	case ratio <= 2:
		return "Almost there"
	case ratio <= 10:
		return "Nearby"
	default:
		return "Away"
	}
}

// Progress is how far into the approach zone the member is: 100 inside the
// geofence, falling linearly to 0 at ten radii out.
func Progress(distanceMeters, radiusMeters float64) float64 {
	if radiusMeters <= 0 {
		return 0
	}
	if distanceMeters <= radiusMeters {
		return 100
	}
	outer := 10 * radiusMeters
	if distanceMeters >= outer {
		return 0
	}
	return (outer - distanceMeters) / (outer - radiusMeters) * 100
}
