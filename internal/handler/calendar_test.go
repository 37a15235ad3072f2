package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/urtzih/Lorapp/internal/calendar"
	"github.com/urtzih/Lorapp/internal/domain"
	"github.com/urtzih/Lorapp/internal/handler"
)

var calendarYearSummary = calendar.YearSummary{
	Year: 2026,
	Months: map[int]domain.TaskCounts{
		3: {Planting: 2, Reminders: 1},
		4: {Planting: 1},
	},
}

func testUser() *domain.User {
	lat, lon := 42.8467, -2.6716
	return &domain.User{
		ID:                   1,
		Email:                "gardener@example.com",
		Name:                 "Gardener",
		Location:             "Vitoria-Gasteiz",
		Latitude:             &lat,
		Longitude:            &lon,
		NotificationsEnabled: true,
	}
}

// withUser attaches the resolved user the way the middleware would.
func withUser(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(handler.WithUser(r.Context(), user))
}

func fixedClock() domain.FixedClock {
	return domain.FixedClock{T: time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)}
}

func TestCalendarHandler_MonthlyTasks(t *testing.T) {
	handler.InitValidator()

	tasks := &domain.MonthlyTasks{
		Planting: []domain.PlantingTask{
			{SeedLotID: 1, LotName: "Tomate Rosa", VarietyName: "Rosa de Aretxabaleta", SowType: domain.SowIndoor},
		},
		Transplanting: []domain.TransplantTask{},
		Harvesting:    []domain.HarvestTask{},
		Reminders:     []domain.ReminderTask{},
	}

	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockEngine)
		expectedStatus int
		expectedError  string
	}{
		{
			name:  "explicit month and year",
			query: "?month=3&year=2026",
			setupMock: func(m *MockEngine) {
				m.On("MonthlyTasks", mock.Anything, mock.Anything, 3, 2026).Return(tasks, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "defaults to current month",
			query: "",
			setupMock: func(m *MockEngine) {
				m.On("MonthlyTasks", mock.Anything, mock.Anything, 4, 2026).Return(tasks, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed month parameter",
			query:          "?month=march",
			setupMock:      func(m *MockEngine) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid month parameter",
		},
		{
			name:  "month out of range",
			query: "?month=13&year=2026",
			setupMock: func(m *MockEngine) {
				m.On("MonthlyTasks", mock.Anything, mock.Anything, 13, 2026).Return(nil, domain.ErrInvalidMonth)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "month must be between 1 and 12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEngine := &MockEngine{}
			tt.setupMock(mockEngine)

			h := handler.NewCalendarHandler(mockEngine, fixedClock())

			req := withUser(httptest.NewRequest(http.MethodGet, "/monthly"+tt.query, nil), testUser())
			w := httptest.NewRecorder()

			h.MonthlyTasks(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, strings.ToLower(w.Body.String()), tt.expectedError)
			}
			mockEngine.AssertExpectations(t)
		})
	}
}

func TestCalendarHandler_MonthlyTasks_Body(t *testing.T) {
	mockEngine := &MockEngine{}
	mockEngine.On("MonthlyTasks", mock.Anything, mock.Anything, 3, 2026).Return(&domain.MonthlyTasks{
		Planting: []domain.PlantingTask{
			{SeedLotID: 7, LotName: "Lechuga Maravilla", VarietyName: "Maravilla", SowType: domain.SowOutdoor},
		},
		Transplanting: []domain.TransplantTask{},
		Harvesting:    []domain.HarvestTask{},
		Reminders:     []domain.ReminderTask{},
	}, nil)

	h := handler.NewCalendarHandler(mockEngine, fixedClock())

	req := withUser(httptest.NewRequest(http.MethodGet, "/monthly?month=3&year=2026", nil), testUser())
	w := httptest.NewRecorder()

	h.MonthlyTasks(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body domain.MonthlyTasks
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Planting, 1)
	assert.Equal(t, int64(7), body.Planting[0].SeedLotID)
	assert.Equal(t, domain.SowOutdoor, body.Planting[0].SowType)
	// Empty buckets serialize as [] rather than null
	assert.Contains(t, w.Body.String(), `"harvesting":[]`)
}

func TestCalendarHandler_Recommendations(t *testing.T) {
	mockEngine := &MockEngine{}
	mockEngine.On("CurrentMonthRecommendations", mock.Anything, mock.Anything).Return([]domain.Recommendation{
		{SeedLotID: 1, LotName: "Tomate Rosa", CanPlantIndoor: true, GerminationDays: 8},
	}, nil)

	h := handler.NewCalendarHandler(mockEngine, fixedClock())

	req := withUser(httptest.NewRequest(http.MethodGet, "/recommendations", nil), testUser())
	w := httptest.NewRecorder()

	h.Recommendations(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var recs []domain.Recommendation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recs))
	require.Len(t, recs, 1)
	assert.True(t, recs[0].CanPlantIndoor)
}

func TestCalendarHandler_UpcomingTransplants_DefaultWindow(t *testing.T) {
	mockEngine := &MockEngine{}
	mockEngine.On("UpcomingTransplants", mock.Anything, mock.Anything, 7).
		Return([]domain.UpcomingTransplant{}, nil)

	h := handler.NewCalendarHandler(mockEngine, fixedClock())

	req := withUser(httptest.NewRequest(http.MethodGet, "/upcoming-transplants", nil), testUser())
	w := httptest.NewRecorder()

	h.UpcomingTransplants(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockEngine.AssertExpectations(t)
}

func TestCalendarHandler_ExpiringLots_CustomWindow(t *testing.T) {
	mockEngine := &MockEngine{}
	mockEngine.On("ExpiringLots", mock.Anything, mock.Anything, 40).Return([]domain.ExpiringLot{
		{SeedLotID: 3, LotName: "Pimiento de Gernika", DaysUntil: 12},
	}, nil)

	h := handler.NewCalendarHandler(mockEngine, fixedClock())

	req := withUser(httptest.NewRequest(http.MethodGet, "/expiring-lots?days=40", nil), testUser())
	w := httptest.NewRecorder()

	h.ExpiringLots(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var lots []domain.ExpiringLot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lots))
	require.Len(t, lots, 1)
	assert.Equal(t, 12, lots[0].DaysUntil)
}

func TestCalendarHandler_PlantingAdvisory(t *testing.T) {
	advisory := &calendar.PlantingAdvisory{
		Location: "Vitoria-Gasteiz",
		ForecastPeriod: calendar.ForecastPeriod{
			StartDate: "2026-04-15", EndDate: "2026-04-29",
		},
		Recommendations: calendar.AdvisoryBuckets{
			HighPriority: []calendar.DayRecommendation{
				{Date: "2026-04-16", DayName: "Thursday", SuitabilityScore: 90},
			},
		},
		WeatherSummary: calendar.AdvisorySummary{
			OverallCondition: "variable",
			BestPlantingDays: []string{"2026-04-16"},
		},
	}

	mockEngine := &MockEngine{}
	mockEngine.On("PlantingAdvisory", mock.Anything, mock.Anything).Return(advisory, nil)

	h := handler.NewCalendarHandler(mockEngine, fixedClock())

	req := withUser(httptest.NewRequest(http.MethodGet, "/planting-advisory", nil), testUser())
	w := httptest.NewRecorder()

	h.PlantingAdvisory(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body calendar.PlantingAdvisory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Recommendations.HighPriority, 1)
	assert.Equal(t, 90, body.Recommendations.HighPriority[0].SuitabilityScore)
	assert.Equal(t, []string{"2026-04-16"}, body.WeatherSummary.BestPlantingDays)
	mockEngine.AssertExpectations(t)
}

func TestCalendarHandler_YearSummary(t *testing.T) {
	tests := []struct {
		name           string
		year           string
		setupMock      func(*MockEngine)
		expectedStatus int
	}{
		{
			name: "valid year",
			year: "2026",
			setupMock: func(m *MockEngine) {
				m.On("YearSummary", mock.Anything, mock.Anything, 2026).
					Return(&calendarYearSummary, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed year",
			year:           "twenty26",
			setupMock:      func(m *MockEngine) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEngine := &MockEngine{}
			tt.setupMock(mockEngine)

			h := handler.NewCalendarHandler(mockEngine, fixedClock())

			r := chi.NewRouter()
			r.Get("/year-summary/{year}", h.YearSummary)

			req := withUser(httptest.NewRequest(http.MethodGet, "/year-summary/"+tt.year, nil), testUser())
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockEngine.AssertExpectations(t)
		})
	}
}

func TestCalendarHandler_MissingUser(t *testing.T) {
	h := handler.NewCalendarHandler(&MockEngine{}, fixedClock())

	req := httptest.NewRequest(http.MethodGet, "/current", nil)
	w := httptest.NewRecorder()

	h.CurrentMonth(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
