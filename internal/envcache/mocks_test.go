package envcache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/urtzih/Lorapp/internal/domain"
)

// MockLunarCache implements repository.LunarCache for testing
type MockLunarCache struct {
	mock.Mock
}

func (m *MockLunarCache) GetLunarRecord(ctx context.Context, date time.Time, location string) (*domain.LunarRecord, error) {
	args := m.Called(ctx, date, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LunarRecord), args.Error(1)
}

func (m *MockLunarCache) SaveLunarRecord(ctx context.Context, record domain.LunarRecord) (*domain.LunarRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LunarRecord), args.Error(1)
}

// MockWeatherCache implements repository.WeatherCache for testing
type MockWeatherCache struct {
	mock.Mock
}

func (m *MockWeatherCache) GetWeatherRecord(ctx context.Context, date time.Time, location string) (*domain.WeatherRecord, error) {
	args := m.Called(ctx, date, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeatherRecord), args.Error(1)
}

func (m *MockWeatherCache) SaveWeatherRecord(ctx context.Context, record domain.WeatherRecord) (*domain.WeatherRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeatherRecord), args.Error(1)
}

// stubLunarFetcher returns canned records or errors per date
type stubLunarFetcher struct {
	records map[string]*domain.LunarRecord
	err     error
	calls   int
}

func (s *stubLunarFetcher) FetchLunar(_ context.Context, date time.Time, loc domain.GeoPoint) (*domain.LunarRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if rec, ok := s.records[date.Format("2006-01-02")]; ok {
		return rec, nil
	}
	return &domain.LunarRecord{
		Date:     date,
		Location: loc.Name,
		Phase:    "Waxing Crescent",
	}, nil
}

// stubWeatherFetcher returns canned records or errors per date
type stubWeatherFetcher struct {
	err   error
	calls int

	// failDates fail individually while other days succeed
	failDates map[string]bool
}

func (s *stubWeatherFetcher) FetchWeather(_ context.Context, date time.Time, loc domain.GeoPoint) (*domain.WeatherRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.failDates[date.Format("2006-01-02")] {
		return nil, domain.ErrFetchFailed
	}
	return &domain.WeatherRecord{
		Date:      date,
		Location:  loc.Name,
		TempMaxC:  20,
		TempMinC:  10,
		Condition: "Clear",
	}, nil
}
