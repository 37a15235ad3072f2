package calendar

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/urtzih/Lorapp/internal/domain"
	"github.com/urtzih/Lorapp/internal/lunar"
)

// MockInventory implements repository.Inventory for testing
type MockInventory struct {
	mock.Mock
}

func (m *MockInventory) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockInventory) GetUsersWithNotificationsEnabled(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockInventory) GetLotsByUser(ctx context.Context, userID int64, state domain.LotState) ([]domain.LotWithVariety, error) {
	args := m.Called(ctx, userID, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LotWithVariety), args.Error(1)
}

func (m *MockInventory) GetPlantingsByUser(ctx context.Context, userID int64, states []domain.PlantingState) ([]domain.Planting, error) {
	args := m.Called(ctx, userID, states)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Planting), args.Error(1)
}

// stubEnvProvider returns fixed environmental records. Tests that need
// per-day control set the override funcs.
type stubEnvProvider struct {
	calc      *lunar.Calculator
	lunarFn   func(date time.Time, loc domain.GeoPoint) *domain.LunarRecord
	weatherFn func(date time.Time, loc domain.GeoPoint) *domain.WeatherRecord
}

func (s *stubEnvProvider) LunarForDate(_ context.Context, date time.Time, loc domain.GeoPoint) (*domain.LunarRecord, error) {
	if s.lunarFn != nil {
		return s.lunarFn(date, loc), nil
	}
	return &domain.LunarRecord{Date: date, Location: loc.Name, Phase: "Full Moon", Source: domain.SourceFallback}, nil
}

func (s *stubEnvProvider) WeatherForDate(_ context.Context, date time.Time, loc domain.GeoPoint) (*domain.WeatherRecord, error) {
	if s.weatherFn != nil {
		return s.weatherFn(date, loc), nil
	}
	return &domain.WeatherRecord{Date: date, Location: loc.Name, Condition: "Clear", Source: domain.SourceFallback}, nil
}

func (s *stubEnvProvider) SignificantPhases(start time.Time, daysAhead int) []lunar.SignificantPhase {
	if s.calc == nil {
		s.calc = lunar.NewCalculator()
	}
	return s.calc.SignificantPhases(start, daysAhead)
}
