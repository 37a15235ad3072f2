package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/urtzih/Lorapp/internal/domain"
)

// LunarCacheRepository implements the lunar cache repository for PostgreSQL
type LunarCacheRepository struct {
	db *pgxpool.Pool
}

// NewLunarCacheRepository creates a new LunarCacheRepository
func NewLunarCacheRepository(db *pgxpool.Pool) *LunarCacheRepository {
	return &LunarCacheRepository{db: db}
}

// GetLunarRecord retrieves the cached astronomy row for a date and location
func (r *LunarCacheRepository) GetLunarRecord(ctx context.Context, date time.Time, location string) (*domain.LunarRecord, error) {
	query := `
		SELECT id, date, location, latitude, longitude, phase, illumination,
		       moonrise, moonset, sunrise, sunset, created_at
		FROM lunar_cache
		WHERE date = $1 AND location = $2
	`
	var rec domain.LunarRecord
	err := r.db.QueryRow(ctx, query, dateOnly(date), location).Scan(
		&rec.ID, &rec.Date, &rec.Location, &rec.Latitude, &rec.Longitude,
		&rec.Phase, &rec.Illumination,
		&rec.Moonrise, &rec.Moonset, &rec.Sunrise, &rec.Sunset,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCacheEntryNotFound
		}
		return nil, fmt.Errorf("failed to get lunar record: %w", err)
	}
	return &rec, nil
}

// SaveLunarRecord upserts an astronomy row. Concurrent saves for the same
// (date, location) converge on a single row; the stored row is returned.
func (r *LunarCacheRepository) SaveLunarRecord(ctx context.Context, record domain.LunarRecord) (*domain.LunarRecord, error) {
	query := `
		INSERT INTO lunar_cache (date, location, latitude, longitude, phase, illumination,
		                         moonrise, moonset, sunrise, sunset, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (date, location) DO UPDATE
		SET latitude = EXCLUDED.latitude,
		    longitude = EXCLUDED.longitude,
		    phase = EXCLUDED.phase,
		    illumination = EXCLUDED.illumination,
		    moonrise = EXCLUDED.moonrise,
		    moonset = EXCLUDED.moonset,
		    sunrise = EXCLUDED.sunrise,
		    sunset = EXCLUDED.sunset
		RETURNING id, date, location, latitude, longitude, phase, illumination,
		          moonrise, moonset, sunrise, sunset, created_at
	`
	var rec domain.LunarRecord
	err := r.db.QueryRow(ctx, query,
		dateOnly(record.Date), record.Location, record.Latitude, record.Longitude,
		record.Phase, record.Illumination,
		record.Moonrise, record.Moonset, record.Sunrise, record.Sunset,
	).Scan(
		&rec.ID, &rec.Date, &rec.Location, &rec.Latitude, &rec.Longitude,
		&rec.Phase, &rec.Illumination,
		&rec.Moonrise, &rec.Moonset, &rec.Sunrise, &rec.Sunset,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save lunar record: %w", err)
	}
	return &rec, nil
}

// WeatherCacheRepository implements the weather cache repository for PostgreSQL
type WeatherCacheRepository struct {
	db *pgxpool.Pool
}

// NewWeatherCacheRepository creates a new WeatherCacheRepository
func NewWeatherCacheRepository(db *pgxpool.Pool) *WeatherCacheRepository {
	return &WeatherCacheRepository{db: db}
}

// GetWeatherRecord retrieves the cached forecast row for a date and location.
// Freshness is the caller's concern; stale rows are returned as stored.
func (r *WeatherCacheRepository) GetWeatherRecord(ctx context.Context, date time.Time, location string) (*domain.WeatherRecord, error) {
	query := `
		SELECT id, date, location, latitude, longitude,
		       temp_max_c, temp_min_c, temp_avg_c, condition, humidity,
		       precipitation_mm, chance_of_rain, wind_kph, uv_index, cached_at
		FROM weather_cache
		WHERE date = $1 AND location = $2
	`
	var rec domain.WeatherRecord
	err := r.db.QueryRow(ctx, query, dateOnly(date), location).Scan(
		&rec.ID, &rec.Date, &rec.Location, &rec.Latitude, &rec.Longitude,
		&rec.TempMaxC, &rec.TempMinC, &rec.TempAvgC, &rec.Condition, &rec.Humidity,
		&rec.PrecipitationMM, &rec.ChanceOfRain, &rec.WindKPH, &rec.UVIndex,
		&rec.CachedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCacheEntryNotFound
		}
		return nil, fmt.Errorf("failed to get weather record: %w", err)
	}
	return &rec, nil
}

// SaveWeatherRecord upserts a forecast row, resetting cached_at so the
// freshness window restarts from the write.
func (r *WeatherCacheRepository) SaveWeatherRecord(ctx context.Context, record domain.WeatherRecord) (*domain.WeatherRecord, error) {
	query := `
		INSERT INTO weather_cache (date, location, latitude, longitude,
		                           temp_max_c, temp_min_c, temp_avg_c, condition, humidity,
		                           precipitation_mm, chance_of_rain, wind_kph, uv_index, cached_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		ON CONFLICT (date, location) DO UPDATE
		SET latitude = EXCLUDED.latitude,
		    longitude = EXCLUDED.longitude,
		    temp_max_c = EXCLUDED.temp_max_c,
		    temp_min_c = EXCLUDED.temp_min_c,
		    temp_avg_c = EXCLUDED.temp_avg_c,
		    condition = EXCLUDED.condition,
		    humidity = EXCLUDED.humidity,
		    precipitation_mm = EXCLUDED.precipitation_mm,
		    chance_of_rain = EXCLUDED.chance_of_rain,
		    wind_kph = EXCLUDED.wind_kph,
		    uv_index = EXCLUDED.uv_index,
		    cached_at = NOW()
		RETURNING id, date, location, latitude, longitude,
		          temp_max_c, temp_min_c, temp_avg_c, condition, humidity,
		          precipitation_mm, chance_of_rain, wind_kph, uv_index, cached_at
	`
	var rec domain.WeatherRecord
	err := r.db.QueryRow(ctx, query,
		dateOnly(record.Date), record.Location, record.Latitude, record.Longitude,
		record.TempMaxC, record.TempMinC, record.TempAvgC, record.Condition, record.Humidity,
		record.PrecipitationMM, record.ChanceOfRain, record.WindKPH, record.UVIndex,
	).Scan(
		&rec.ID, &rec.Date, &rec.Location, &rec.Latitude, &rec.Longitude,
		&rec.TempMaxC, &rec.TempMinC, &rec.TempAvgC, &rec.Condition, &rec.Humidity,
		&rec.PrecipitationMM, &rec.ChanceOfRain, &rec.WindKPH, &rec.UVIndex,
		&rec.CachedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save weather record: %w", err)
	}
	return &rec, nil
}

// dateOnly truncates a timestamp to its UTC calendar day for use as the
// cache key column.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
