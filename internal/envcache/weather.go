package envcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/urtzih/Lorapp/internal/concurrency"
	"github.com/urtzih/Lorapp/internal/domain"
	"github.com/urtzih/Lorapp/internal/logger"
	"github.com/urtzih/Lorapp/internal/metrics"
	"github.com/urtzih/Lorapp/internal/repository"
)

// WeatherService resolves daily forecast data for calendar days.
type WeatherService interface {
	GetForDate(ctx context.Context, date time.Time, loc domain.GeoPoint) (*domain.WeatherRecord, error)
	Prefetch(ctx context.Context, start time.Time, days int, loc domain.GeoPoint)
}

type weatherService struct {
	repo    repository.WeatherCache
	fetcher WeatherFetcher
	clock   domain.Clock

	memory *expirable.LRU[string, *domain.WeatherRecord]
	fill   *concurrency.KeyedMutex

	delay time.Duration
}

// NewWeatherService creates a new WeatherService
func NewWeatherService(repo repository.WeatherCache, fetcher WeatherFetcher, clock domain.Clock) WeatherService {
	return &weatherService{
		repo:    repo,
		fetcher: fetcher,
		clock:   clock,
		memory:  expirable.NewLRU[string, *domain.WeatherRecord](memoryCacheSize, nil, domain.WeatherFreshness),
		fill:    concurrency.NewKeyedMutex(),
		delay:   fetchDelay,
	}
}

// GetForDate resolves a day's forecast. Cached rows older than the freshness
// window count as misses and trigger a refetch. A fetch failure falls back to
// the seasonal table, which is never persisted. The returned record is always
// non-nil; the error is reserved for context cancellation.
func (s *weatherService) GetForDate(ctx context.Context, date time.Time, loc domain.GeoPoint) (*domain.WeatherRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	key := cacheKey(date, loc.Name)
	now := s.clock.Now()

	if rec, ok := s.memory.Get(key); ok && rec.Fresh(now) {
		metrics.EnvLookups.WithLabelValues(metrics.KindWeather, string(domain.SourceCache)).Inc()
		return taggedWeather(rec, domain.SourceCache), nil
	}

	// Serialize fills per key so a burst of misses costs one provider call.
	unlock := s.fill.Lock(key)
	defer unlock()

	if rec, ok := s.memory.Get(key); ok && rec.Fresh(now) {
		metrics.EnvLookups.WithLabelValues(metrics.KindWeather, string(domain.SourceCache)).Inc()
		return taggedWeather(rec, domain.SourceCache), nil
	}

	rec, err := s.repo.GetWeatherRecord(ctx, date, loc.Name)
	if err == nil && rec.Fresh(now) {
		s.memory.Add(key, rec)
		metrics.EnvLookups.WithLabelValues(metrics.KindWeather, string(domain.SourceCache)).Inc()
		log.Debug(LogMsgCacheHit, "kind", "weather", "date", date.Format("2006-01-02"), "location", loc.Name)
		return taggedWeather(rec, domain.SourceCache), nil
	}
	if err != nil && !errors.Is(err, domain.ErrCacheEntryNotFound) {
		log.Error("Weather cache read failed", "error", err)
	}

	fetched, err := s.fetch(ctx, date, loc)
	if err != nil {
		metrics.EnvFetchErrors.WithLabelValues(metrics.KindWeather).Inc()
		metrics.EnvLookups.WithLabelValues(metrics.KindWeather, string(domain.SourceFallback)).Inc()
		log.Warn(LogMsgFetchFailed, "kind", "weather", "date", date.Format("2006-01-02"), "error", err)
		return s.fallback(date, loc, now), nil
	}

	stored, err := s.repo.SaveWeatherRecord(ctx, *fetched)
	if err != nil {
		log.Error(LogMsgPersistFailed, "kind", "weather", "error", err)
		fetched.CachedAt = now
		stored = fetched
	}
	s.memory.Add(key, stored)
	metrics.EnvLookups.WithLabelValues(metrics.KindWeather, string(domain.SourceFetched)).Inc()
	log.Info(LogMsgFetched, "kind", "weather", "date", date.Format("2006-01-02"), "location", loc.Name)
	return taggedWeather(stored, domain.SourceFetched), nil
}

// Prefetch warms the forecast cache for a run of days, spacing upstream calls
// with a fixed delay. Per-day failures are logged and skipped.
func (s *weatherService) Prefetch(ctx context.Context, start time.Time, days int, loc domain.GeoPoint) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPrefetchStarted, "kind", "weather", "start", start.Format("2006-01-02"), "days", days)

	for offset := 0; offset < days; offset++ {
		if ctx.Err() != nil {
			return
		}
		day := start.AddDate(0, 0, offset)
		if _, err := s.GetForDate(ctx, day, loc); err != nil {
			log.Warn(LogMsgPrefetchDayErr, "kind", "weather", "date", day.Format("2006-01-02"), "error", err)
		}
		time.Sleep(s.delay)
	}
	log.Info(LogMsgPrefetchDone, "kind", "weather", "days", days)
}

func (s *weatherService) fetch(ctx context.Context, date time.Time, loc domain.GeoPoint) (*domain.WeatherRecord, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	start := time.Now()
	rec, err := s.fetcher.FetchWeather(fetchCtx, date, loc)
	metrics.EnvFetchDuration.WithLabelValues(metrics.KindWeather).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("weather fetch: %w", err)
	}
	return rec, nil
}

// seasonalDefault is one row of the fallback forecast table.
type seasonalDefault struct {
	tempMax      float64
	tempMin      float64
	condition    string
	chanceOfRain int
	precipMM     float64
}

// seasonalDefaults carries conservative per-season values for a temperate
// northern climate, used when the provider is unreachable.
var seasonalDefaults = map[time.Month]seasonalDefault{
	time.December:  {10, 4, "Cloudy", 60, 1.5},
	time.January:   {10, 4, "Cloudy", 60, 1.5},
	time.February:  {10, 4, "Cloudy", 60, 1.5},
	time.March:     {16, 8, "Partly Cloudy", 40, 1.0},
	time.April:     {16, 8, "Partly Cloudy", 40, 1.0},
	time.May:       {16, 8, "Partly Cloudy", 40, 1.0},
	time.June:      {25, 15, "Sunny", 10, 0.2},
	time.July:      {25, 15, "Sunny", 10, 0.2},
	time.August:    {25, 15, "Sunny", 10, 0.2},
	time.September: {18, 10, "Cloudy", 45, 1.2},
	time.October:   {18, 10, "Cloudy", 45, 1.2},
	time.November:  {18, 10, "Cloudy", 45, 1.2},
}

func (s *weatherService) fallback(date time.Time, loc domain.GeoPoint, now time.Time) *domain.WeatherRecord {
	d := seasonalDefaults[date.Month()]
	return &domain.WeatherRecord{
		Date:            date,
		Location:        loc.Name,
		Latitude:        loc.Latitude,
		Longitude:       loc.Longitude,
		TempMaxC:        d.tempMax,
		TempMinC:        d.tempMin,
		TempAvgC:        (d.tempMax + d.tempMin) / 2,
		Condition:       d.condition,
		Humidity:        defaultHumidity,
		PrecipitationMM: d.precipMM,
		ChanceOfRain:    d.chanceOfRain,
		WindKPH:         8,
		UVIndex:         2,
		CachedAt:        now,
		Source:          domain.SourceFallback,
	}
}

func taggedWeather(rec *domain.WeatherRecord, src domain.RecordSource) *domain.WeatherRecord {
	cp := *rec
	cp.Source = src
	return &cp
}
