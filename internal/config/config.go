package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string

	// External data providers
	AstronomyBaseURL string
	AstronomyAPIKey  string // empty means the local phase calculator is used
	WeatherBaseURL   string

	// Default location used when a user profile has no coordinates
	DefaultLocation  string
	DefaultLatitude  float64
	DefaultLongitude float64

	// Web Push (VAPID). Empty keys disable dispatch; the scheduler still runs
	// and records history with success=false.
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubject    string

	SchedulerEnabled bool
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "lorapp"),

		AstronomyBaseURL: getEnv("ASTRONOMY_BASE_URL", DefaultAstronomyBaseURL),
		AstronomyAPIKey:  getEnv("ASTRONOMY_API_KEY", ""),
		WeatherBaseURL:   getEnv("WEATHER_BASE_URL", DefaultWeatherBaseURL),

		DefaultLocation: getEnv("DEFAULT_LOCATION", DefaultLocationName),

		VAPIDPublicKey:  getEnv("VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey: getEnv("VAPID_PRIVATE_KEY", ""),
		VAPIDSubject:    getEnv("VAPID_SUBJECT", ""),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	lat, err := strconv.ParseFloat(getEnv("DEFAULT_LATITUDE", defaultLatitudeStr), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_LATITUDE value: %w", err)
	}
	cfg.DefaultLatitude = lat

	lon, err := strconv.ParseFloat(getEnv("DEFAULT_LONGITUDE", defaultLongitudeStr), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_LONGITUDE value: %w", err)
	}
	cfg.DefaultLongitude = lon

	enabled, err := strconv.ParseBool(getEnv("SCHEDULER_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_ENABLED value: %w", err)
	}
	cfg.SchedulerEnabled = enabled

	// VAPID keys come as a pair or not at all
	if (cfg.VAPIDPublicKey == "") != (cfg.VAPIDPrivateKey == "") {
		return nil, fmt.Errorf("VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY must be set together")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// PushEnabled reports whether Web Push dispatch is configured.
func (c *Config) PushEnabled() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}
