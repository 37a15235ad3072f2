package repository

import (
	"context"
	"time"

	"github.com/urtzih/Lorapp/internal/domain"
)

// LunarCache defines the interface for lunar record persistence.
// Records are keyed by (date, location) and never expire.
type LunarCache interface {
	GetLunarRecord(ctx context.Context, date time.Time, location string) (*domain.LunarRecord, error)
	SaveLunarRecord(ctx context.Context, record domain.LunarRecord) (*domain.LunarRecord, error)
}

// WeatherCache defines the interface for weather record persistence.
// Records are keyed by (date, location); callers decide freshness.
type WeatherCache interface {
	GetWeatherRecord(ctx context.Context, date time.Time, location string) (*domain.WeatherRecord, error)
	SaveWeatherRecord(ctx context.Context, record domain.WeatherRecord) (*domain.WeatherRecord, error)
}
