package config

// Default external provider endpoints. Both are overridable so tests can
// point the fetchers at a local server.
const (
	DefaultAstronomyBaseURL = "http://api.weatherapi.com/v1"
	DefaultWeatherBaseURL   = "https://api.open-meteo.com/v1"
)

// Default location when a user has no coordinates on file.
const (
	DefaultLocationName = "Vitoria-Gasteiz,Spain"
	defaultLatitudeStr  = "42.8467"
	defaultLongitudeStr = "-2.6716"
)
