package handler_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/urtzih/Lorapp/internal/calendar"
	"github.com/urtzih/Lorapp/internal/domain"
)

// MockEngine is a testify mock for calendar.Engine
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) MonthlyTasks(ctx context.Context, user *domain.User, month, year int) (*domain.MonthlyTasks, error) {
	args := m.Called(ctx, user, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyTasks), args.Error(1)
}

func (m *MockEngine) CurrentMonthRecommendations(ctx context.Context, user *domain.User) ([]domain.Recommendation, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recommendation), args.Error(1)
}

func (m *MockEngine) UpcomingTransplants(ctx context.Context, user *domain.User, daysAhead int) ([]domain.UpcomingTransplant, error) {
	args := m.Called(ctx, user, daysAhead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UpcomingTransplant), args.Error(1)
}

func (m *MockEngine) ExpiringLots(ctx context.Context, user *domain.User, daysAhead int) ([]domain.ExpiringLot, error) {
	args := m.Called(ctx, user, daysAhead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpiringLot), args.Error(1)
}

func (m *MockEngine) MonthOverview(ctx context.Context, user *domain.User, month, year int) (*calendar.MonthOverview, error) {
	args := m.Called(ctx, user, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.MonthOverview), args.Error(1)
}

func (m *MockEngine) YearSummary(ctx context.Context, user *domain.User, year int) (*calendar.YearSummary, error) {
	args := m.Called(ctx, user, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.YearSummary), args.Error(1)
}

func (m *MockEngine) PlantingAdvisory(ctx context.Context, user *domain.User) (*calendar.PlantingAdvisory, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.PlantingAdvisory), args.Error(1)
}

// MockLunarService is a testify mock for envcache.LunarService
type MockLunarService struct {
	mock.Mock
}

func (m *MockLunarService) GetForDate(ctx context.Context, date time.Time, loc domain.GeoPoint) (*domain.LunarRecord, error) {
	args := m.Called(ctx, date, loc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LunarRecord), args.Error(1)
}

func (m *MockLunarService) Prefetch(ctx context.Context, start time.Time, days int, loc domain.GeoPoint) {
	m.Called(ctx, start, days, loc)
}

// MockWeatherService is a testify mock for envcache.WeatherService
type MockWeatherService struct {
	mock.Mock
}

func (m *MockWeatherService) GetForDate(ctx context.Context, date time.Time, loc domain.GeoPoint) (*domain.WeatherRecord, error) {
	args := m.Called(ctx, date, loc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeatherRecord), args.Error(1)
}

func (m *MockWeatherService) Prefetch(ctx context.Context, start time.Time, days int, loc domain.GeoPoint) {
	m.Called(ctx, start, days, loc)
}

// MockSubscriptionRepo is a testify mock for repository.Subscription
type MockSubscriptionRepo struct {
	mock.Mock
}

func (m *MockSubscriptionRepo) GetActiveSubscriptions(ctx context.Context, userID int64) ([]domain.PushSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PushSubscription), args.Error(1)
}

func (m *MockSubscriptionRepo) GetSubscriptions(ctx context.Context, userID int64) ([]domain.PushSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PushSubscription), args.Error(1)
}

func (m *MockSubscriptionRepo) CreateSubscription(ctx context.Context, sub domain.PushSubscription) (*domain.PushSubscription, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PushSubscription), args.Error(1)
}

func (m *MockSubscriptionRepo) DeactivateSubscription(ctx context.Context, subscriptionID int64) error {
	args := m.Called(ctx, subscriptionID)
	return args.Error(0)
}

func (m *MockSubscriptionRepo) DeactivateByEndpoint(ctx context.Context, userID int64, endpoint string) error {
	args := m.Called(ctx, userID, endpoint)
	return args.Error(0)
}

// MockSender is a testify mock for notify.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, subs []domain.PushSubscription, title, body string, data map[string]any) domain.SendResult {
	args := m.Called(ctx, subs, title, body, data)
	return args.Get(0).(domain.SendResult)
}

// MockNotificationRepo is a testify mock for repository.Notification
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) RecordNotification(ctx context.Context, record domain.NotificationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockNotificationRepo) GetNotificationsSince(ctx context.Context, userID int64, since time.Time) ([]domain.NotificationRecord, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationRecord), args.Error(1)
}

func (m *MockNotificationRepo) WasNotifiedSince(ctx context.Context, userID int64, notificationType string, since time.Time) (bool, error) {
	args := m.Called(ctx, userID, notificationType, since)
	return args.Bool(0), args.Error(1)
}

// MockInventory is a testify mock for repository.Inventory
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
