// Package envcache resolves per-day environmental data (astronomy and
// weather) through a layered lookup: in-process LRU, database cache, upstream
// fetch, deterministic fallback. Callers always get a usable record; the
// Source field says which layer produced it.
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
	"github.com/urtzih/Lorapp/internal/lunar"
	"github.com/urtzih/Lorapp/internal/metrics"
	"github.com/urtzih/Lorapp/internal/repository"
)

// LunarService resolves astronomy data for calendar days.
type LunarService interface {
	GetForDate(ctx context.Context, date time.Time, loc domain.GeoPoint) (*domain.LunarRecord, error)
	Prefetch(ctx context.Context, start time.Time, days int, loc domain.GeoPoint)
}

type lunarService struct {
	repo    repository.LunarCache
	fetcher LunarFetcher
	calc    *lunar.Calculator
	clock   domain.Clock

	memory *expirable.LRU[string, *domain.LunarRecord]
	fill   *concurrency.KeyedMutex

	// delay between sequential prefetch fetches; tests shorten it.
	delay time.Duration
}

// NewLunarService creates a new LunarService
func NewLunarService(repo repository.LunarCache, fetcher LunarFetcher, calc *lunar.Calculator, clock domain.Clock) LunarService {
	return &lunarService{
		repo:    repo,
		fetcher: fetcher,
		calc:    calc,
		clock:   clock,
		memory:  expirable.NewLRU[string, *domain.LunarRecord](memoryCacheSize, nil, 0),
		fill:    concurrency.NewKeyedMutex(),
		delay:   fetchDelay,
	}
}

// GetForDate resolves astronomy data for one day. Lunar rows never go stale:
// any cached row wins. A fetch failure falls back to the local calculation,
// which is never persisted. The returned record is always non-nil; the error
// is reserved for context cancellation.
func (s *lunarService) GetForDate(ctx context.Context, date time.Time, loc domain.GeoPoint) (*domain.LunarRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	key := cacheKey(date, loc.Name)

	if rec, ok := s.memory.Get(key); ok {
		metrics.EnvLookups.WithLabelValues(metrics.KindLunar, string(domain.SourceCache)).Inc()
		return tagged(rec, domain.SourceCache), nil
	}

	// Concurrent misses on the same day share one fill instead of racing the
	// provider; later waiters find the memory entry on the re-check.
	unlock := s.fill.Lock(key)
	defer unlock()

	if rec, ok := s.memory.Get(key); ok {
		metrics.EnvLookups.WithLabelValues(metrics.KindLunar, string(domain.SourceCache)).Inc()
		return tagged(rec, domain.SourceCache), nil
	}

	rec, err := s.repo.GetLunarRecord(ctx, date, loc.Name)
	if err == nil {
		s.memory.Add(key, rec)
		metrics.EnvLookups.WithLabelValues(metrics.KindLunar, string(domain.SourceCache)).Inc()
		log.Debug(LogMsgCacheHit, "kind", "lunar", "date", date.Format("2006-01-02"), "location", loc.Name)
		return tagged(rec, domain.SourceCache), nil
	}
	if !errors.Is(err, domain.ErrCacheEntryNotFound) {
		log.Error("Lunar cache read failed", "error", err)
	}

	fetched, err := s.fetch(ctx, date, loc)
	if err != nil {
		metrics.EnvFetchErrors.WithLabelValues(metrics.KindLunar).Inc()
		metrics.EnvLookups.WithLabelValues(metrics.KindLunar, string(domain.SourceFallback)).Inc()
		log.Warn(LogMsgFetchFailed, "kind", "lunar", "date", date.Format("2006-01-02"), "error", err)
		return s.fallback(date, loc), nil
	}

	stored, err := s.repo.SaveLunarRecord(ctx, *fetched)
	if err != nil {
		// The fetched value is still good; only the cache write failed.
		log.Error(LogMsgPersistFailed, "kind", "lunar", "error", err)
		stored = fetched
	}
	s.memory.Add(key, stored)
	metrics.EnvLookups.WithLabelValues(metrics.KindLunar, string(domain.SourceFetched)).Inc()
	log.Info(LogMsgFetched, "kind", "lunar", "date", date.Format("2006-01-02"), "location", loc.Name)
	return tagged(stored, domain.SourceFetched), nil
}

// Prefetch warms the cache for a run of days, one upstream call at a time.
// Failures are per-day: a bad day is logged and skipped, the rest of the
// window still loads. Returns early when the context is cancelled.
func (s *lunarService) Prefetch(ctx context.Context, start time.Time, days int, loc domain.GeoPoint) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPrefetchStarted, "kind", "lunar", "start", start.Format("2006-01-02"), "days", days)

	for offset := 0; offset < days; offset++ {
		if ctx.Err() != nil {
			return
		}
		day := start.AddDate(0, 0, offset)

		// Already cached days cost nothing and need no rate spacing.
		if _, ok := s.memory.Get(cacheKey(day, loc.Name)); ok {
			continue
		}
		if _, err := s.repo.GetLunarRecord(ctx, day, loc.Name); err == nil {
			continue
		}

		if _, err := s.GetForDate(ctx, day, loc); err != nil {
			log.Warn(LogMsgPrefetchDayErr, "kind", "lunar", "date", day.Format("2006-01-02"), "error", err)
		}
		time.Sleep(s.delay)
	}
	log.Info(LogMsgPrefetchDone, "kind", "lunar", "days", days)
}

func (s *lunarService) fetch(ctx context.Context, date time.Time, loc domain.GeoPoint) (*domain.LunarRecord, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	start := time.Now()
	rec, err := s.fetcher.FetchLunar(fetchCtx, date, loc)
	metrics.EnvFetchDuration.WithLabelValues(metrics.KindLunar).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("lunar fetch: %w", err)
	}
	return rec, nil
}

// fallback derives the record from the local phase calculation. Rise and set
// times are unknown without the provider and stay empty.
func (s *lunarService) fallback(date time.Time, loc domain.GeoPoint) *domain.LunarRecord {
	info := s.calc.PhaseAt(date)
	return &domain.LunarRecord{
		Date:         date,
		Location:     loc.Name,
		Latitude:     loc.Latitude,
		Longitude:    loc.Longitude,
		Phase:        info.Phase.Name(),
		Illumination: info.Illumination,
		Source:       domain.SourceFallback,
	}
}

func cacheKey(date time.Time, location string) string {
	return date.Format("2006-01-02") + "|" + location
}

// tagged returns a copy of the record with its resolution source set, so the
// shared cached value is never mutated.
func tagged(rec *domain.LunarRecord, src domain.RecordSource) *domain.LunarRecord {
	cp := *rec
	cp.Source = src
	return &cp
}
