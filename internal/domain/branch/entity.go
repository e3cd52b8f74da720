package branch

// DefaultRadiusMeters is the geofence radius applied when a branch is
// created without one.
const DefaultRadiusMeters = 100

type Branch struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
}
