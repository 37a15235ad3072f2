package domain

import "time"

// RecordSource tags how an environmental record was obtained, so callers and
// tests can tell a cache hit from a fresh fetch from a local fallback without
// relying on errors for control flow.
type RecordSource string

const (
	SourceCache    RecordSource = "cache"
	SourceFetched  RecordSource = "fetched"
	SourceFallback RecordSource = "fallback"
)

// WeatherFreshness is the window after which a cached weather entry is
// treated as a miss and refetched. Lunar entries never expire.
const WeatherFreshness = 24 * time.Hour

// LunarRecord is one day of astronomy facts for a location. Astronomy data is
// date-invariant, so a record is cached without expiry once fetched.
// Uniqueness is enforced on (date, location).
type LunarRecord struct {
	ID           int64
	Date         time.Time
	Location     string
	Latitude     float64
	Longitude    float64
	Phase        string
	Illumination float64
	Moonrise     string
	Moonset      string
	Sunrise      string
	Sunset       string

	CreatedAt time.Time

	// Source is not persisted; it is set on the way out of the cache layer.
	Source RecordSource
}

// WeatherRecord is one day of forecast facts for a location, unique on
// (date, location), trusted for WeatherFreshness after CachedAt.
type WeatherRecord struct {
	ID              int64
	Date            time.Time
	Location        string
	Latitude        float64
	Longitude       float64
	TempMaxC        float64
	TempMinC        float64
	TempAvgC        float64
	Condition       string
	Humidity        int
	PrecipitationMM float64
	ChanceOfRain    int
	WindKPH         float64
	UVIndex         float64

	CachedAt time.Time

	// Source is not persisted; it is set on the way out of the cache layer.
	Source RecordSource
}

// Fresh reports whether the record is still inside the freshness window.
func (w *WeatherRecord) Fresh(now time.Time) bool {
	return now.Sub(w.CachedAt) < WeatherFreshness
}
