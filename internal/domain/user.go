package domain

// User is the read-only projection of a user account that the scheduling core
// needs: identity, location for hemisphere/weather lookups, and the
// notification opt-in flag. Account management itself lives outside the core.
type User struct {
	ID                   int64
	Email                string
	Name                 string
	Location             string
	Latitude             *float64
	Longitude            *float64
	NotificationsEnabled bool
}

// Coordinates returns the user's location, falling back to the service-wide
// default when the profile has no coordinates.
func (u *User) Coordinates(def GeoPoint) GeoPoint {
	p := def
	if u.Location != "" {
		p.Name = u.Location
	}
	if u.Latitude != nil && u.Longitude != nil {
		p.Latitude = *u.Latitude
		p.Longitude = *u.Longitude
	}
	return p
}

// SouthernHemisphere reports whether the user's stored latitude is south of
// the equator. Users without coordinates are treated as northern.
func (u *User) SouthernHemisphere() bool {
	return u.Latitude != nil && *u.Latitude < 0
}

// GeoPoint is a named coordinate pair used as the cache location key.
type GeoPoint struct {
	Name      string
	Latitude  float64
	Longitude float64
}
