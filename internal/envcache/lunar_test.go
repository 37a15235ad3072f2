package envcache

import (
	"context"
	"testing"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/urtzih/Lorapp/internal/concurrency"
	"github.com/urtzih/Lorapp/internal/domain"
	"github.com/urtzih/Lorapp/internal/lunar"
)

var testPoint = domain.GeoPoint{Name: "Vitoria-Gasteiz,Spain", Latitude: 42.8467, Longitude: -2.6716}

func newTestLunarService(repo *MockLunarCache, fetcher LunarFetcher) *lunarService {
	return &lunarService{
		repo:    repo,
		fetcher: fetcher,
		calc:    lunar.NewCalculator(),
		clock:   domain.RealClock{},
		memory:  expirable.NewLRU[string, *domain.LunarRecord](memoryCacheSize, nil, 0),
		fill:    concurrency.NewKeyedMutex(),
		delay:   0,
	}
}

func TestLunarGetForDate_CacheHit(t *testing.T) {
	repo := new(MockLunarCache)
	fetcher := &stubLunarFetcher{}
	svc := newTestLunarService(repo, fetcher)

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	cached := &domain.LunarRecord{ID: 7, Date: date, Location: testPoint.Name, Phase: "Full Moon"}
	repo.On("GetLunarRecord", mock.Anything, date, testPoint.Name).Return(cached, nil).Once()

	rec, err := svc.GetForDate(context.Background(), date, testPoint)

	require.NoError(t, err)
	assert.Equal(t, domain.SourceCache, rec.Source)
	assert.Equal(t, "Full Moon", rec.Phase)
	assert.Equal(t, 0, fetcher.calls)
	repo.AssertExpectations(t)
}

func TestLunarGetForDate_FetchesAndPersistsOnMiss(t *testing.T) {
	repo := new(MockLunarCache)
	fetcher := &stubLunarFetcher{}
	svc := newTestLunarService(repo, fetcher)

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo.On("GetLunarRecord", mock.Anything, date, testPoint.Name).Return(nil, domain.ErrCacheEntryNotFound).Once()
	repo.On("SaveLunarRecord", mock.Anything, mock.AnythingOfType("domain.LunarRecord")).
		Return(&domain.LunarRecord{ID: 1, Date: date, Location: testPoint.Name, Phase: "Waxing Crescent"}, nil).Once()

	rec, err := svc.GetForDate(context.Background(), date, testPoint)

	require.NoError(t, err)
	assert.Equal(t, domain.SourceFetched, rec.Source)
	assert.Equal(t, 1, fetcher.calls)
	repo.AssertExpectations(t)
}

func TestLunarGetForDate_SecondCallHitsMemory(t *testing.T) {
	repo := new(MockLunarCache)
	fetcher := &stubLunarFetcher{}
	svc := newTestLunarService(repo, fetcher)

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo.On("GetLunarRecord", mock.Anything, date, testPoint.Name).Return(nil, domain.ErrCacheEntryNotFound).Once()
	repo.On("SaveLunarRecord", mock.Anything, mock.AnythingOfType("domain.LunarRecord")).
		Return(&domain.LunarRecord{ID: 1, Date: date, Location: testPoint.Name, Phase: "Waxing Crescent"}, nil).Once()

	first, err := svc.GetForDate(context.Background(), date, testPoint)
	require.NoError(t, err)
	second, err := svc.GetForDate(context.Background(), date, testPoint)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceFetched, first.Source)
	assert.Equal(t, domain.SourceCache, second.Source)
	assert.Equal(t, 1, fetcher.calls)
	repo.AssertExpectations(t)
}

func TestLunarGetForDate_FallbackOnFetchFailure(t *testing.T) {
	repo := new(MockLunarCache)
	fetcher := &stubLunarFetcher{err: domain.ErrFetchFailed}
	svc := newTestLunarService(repo, fetcher)

	// Reference new moon day: fallback must say so.
	date := time.Date(2000, 1, 6, 18, 14, 0, 0, time.UTC)
	repo.On("GetLunarRecord", mock.Anything, date, testPoint.Name).Return(nil, domain.ErrCacheEntryNotFound)

	rec, err := svc.GetForDate(context.Background(), date, testPoint)

	require.NoError(t, err)
	assert.Equal(t, domain.SourceFallback, rec.Source)
	assert.Equal(t, "New Moon", rec.Phase)
	// Fallback records are never written back.
	repo.AssertNotCalled(t, "SaveLunarRecord", mock.Anything, mock.Anything)
}

func TestLunarGetForDate_PersistFailureStillReturnsRecord(t *testing.T) {
	repo := new(MockLunarCache)
	fetcher := &stubLunarFetcher{}
	svc := newTestLunarService(repo, fetcher)

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo.On("GetLunarRecord", mock.Anything, date, testPoint.Name).Return(nil, domain.ErrCacheEntryNotFound).Once()
	repo.On("SaveLunarRecord", mock.Anything, mock.AnythingOfType("domain.LunarRecord")).
		Return(nil, assert.AnError).Once()

	rec, err := svc.GetForDate(context.Background(), date, testPoint)

	require.NoError(t, err)
	assert.Equal(t, domain.SourceFetched, rec.Source)
	repo.AssertExpectations(t)
}

func TestLunarGetForDate_CancelledContext(t *testing.T) {
	svc := newTestLunarService(new(MockLunarCache), &stubLunarFetcher{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec, err := svc.GetForDate(ctx, time.Now(), testPoint)

	assert.Error(t, err)
	assert.Nil(t, rec)
}

func TestLunarPrefetch_SkipsCachedDays(t *testing.T) {
	repo := new(MockLunarCache)
	fetcher := &stubLunarFetcher{}
	svc := newTestLunarService(repo, fetcher)

	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	day2 := start.AddDate(0, 0, 1)

	// Day 1 cached, day 2 missing.
	repo.On("GetLunarRecord", mock.Anything, start, testPoint.Name).
		Return(&domain.LunarRecord{ID: 1, Date: start, Location: testPoint.Name}, nil)
	repo.On("GetLunarRecord", mock.Anything, day2, testPoint.Name).
		Return(nil, domain.ErrCacheEntryNotFound)
	repo.On("SaveLunarRecord", mock.Anything, mock.AnythingOfType("domain.LunarRecord")).
		Return(&domain.LunarRecord{ID: 2, Date: day2, Location: testPoint.Name}, nil).Once()

	svc.Prefetch(context.Background(), start, 2, testPoint)

	assert.Equal(t, 1, fetcher.calls)
	repo.AssertExpectations(t)
}

func TestLunarPrefetch_StopsOnCancel(t *testing.T) {
	repo := new(MockLunarCache)
	fetcher := &stubLunarFetcher{}
	svc := newTestLunarService(repo, fetcher)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc.Prefetch(ctx, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), 30, testPoint)

	assert.Equal(t, 0, fetcher.calls)
	repo.AssertNotCalled(t, "GetLunarRecord", mock.Anything, mock.Anything, mock.Anything)
}
