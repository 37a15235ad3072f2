package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/urtzih/Lorapp/internal/domain"
	"github.com/urtzih/Lorapp/internal/envcache"
	"github.com/urtzih/Lorapp/internal/lunar"
)

// weatherLookaheadDays bounds how far into the month the overview attaches
// forecasts; the provider cannot see further ahead anyway.
const weatherLookaheadDays = 7

// phaseLookaheadDays is the significant-phase annotation window.
const phaseLookaheadDays = 30

// DayDetail is one calendar day of the full month view with its
// environmental context attached.
type DayDetail struct {
	Date    time.Time             `json:"date"`
	Lunar   *domain.LunarRecord   `json:"lunar,omitempty"`
	Weather *domain.WeatherRecord `json:"weather,omitempty"`
}

// MonthOverview is the enriched month view: the task buckets plus per-day
// astronomy, near-term forecasts and upcoming quarter-point moon days.
type MonthOverview struct {
	Month             int                      `json:"month"`
	Year              int                      `json:"year"`
	Tasks             domain.MonthlyTasks      `json:"tasks"`
	Days              []DayDetail              `json:"days"`
	SignificantPhases []lunar.SignificantPhase `json:"significant_phases"`
}

// YearSummary gives per-month bucket counts for a whole year, with no
// environmental enrichment.
type YearSummary struct {
	Year   int                       `json:"year"`
	Months map[int]domain.TaskCounts `json:"months"`
}

// MonthOverview assembles the full month view. Environmental lookups never
// fail hard (the env layer always falls back), so the only error sources are
// the inventory store and a bad month.
func (e *engine) MonthOverview(ctx context.Context, user *domain.User, month, year int) (*MonthOverview, error) {
	tasks, err := e.MonthlyTasks(ctx, user, month, year)
	if err != nil {
		return nil, err
	}

	loc := userPoint(user)
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	now := e.clock.Now()

	days := make([]DayDetail, 0, daysInMonth)
	for d := 0; d < daysInMonth; d++ {
		date := first.AddDate(0, 0, d)
		detail := DayDetail{Date: date}

		if rec, err := e.env.LunarForDate(ctx, date, loc); err == nil {
			detail.Lunar = rec
		}
		if withinForecastWindow(now, date) {
			if rec, err := e.env.WeatherForDate(ctx, date, loc); err == nil {
				detail.Weather = rec
			}
		}
		days = append(days, detail)
	}

	return &MonthOverview{
		Month:             month,
		Year:              year,
		Tasks:             *tasks,
		Days:              days,
		SignificantPhases: e.env.SignificantPhases(first, phaseLookaheadDays),
	}, nil
}

// YearSummary runs the monthly derivation across all twelve months and keeps
// only the counts.
func (e *engine) YearSummary(ctx context.Context, user *domain.User, year int) (*YearSummary, error) {
	summary := &YearSummary{
		Year:   year,
		Months: make(map[int]domain.TaskCounts, 12),
	}
	for month := 1; month <= 12; month++ {
		tasks, err := e.MonthlyTasks(ctx, user, month, year)
		if err != nil {
			return nil, fmt.Errorf("month %d: %w", month, err)
		}
		summary.Months[month] = tasks.Counts()
	}
	return summary, nil
}

func withinForecastWindow(now, date time.Time) bool {
	start := now.AddDate(0, 0, -1)
	end := now.AddDate(0, 0, weatherLookaheadDays)
	return date.After(start) && date.Before(end)
}

func userPoint(user *domain.User) domain.GeoPoint {
	return user.Coordinates(domain.GeoPoint{})
}

// envProvider binds the cache services and the phase calculator into the
// EnvProvider the engine consumes.
type envProvider struct {
	lunarSvc   envcache.LunarService
	weatherSvc envcache.WeatherService
	calc       *lunar.Calculator
	defaultLoc domain.GeoPoint
}

// NewEnvProvider creates an EnvProvider backed by the envcache services.
func NewEnvProvider(lunarSvc envcache.LunarService, weatherSvc envcache.WeatherService, calc *lunar.Calculator, defaultLoc domain.GeoPoint) EnvProvider {
	return &envProvider{lunarSvc: lunarSvc, weatherSvc: weatherSvc, calc: calc, defaultLoc: defaultLoc}
}

func (p *envProvider) LunarForDate(ctx context.Context, date time.Time, loc domain.GeoPoint) (*domain.LunarRecord, error) {
	if loc.Name == "" {
		loc = p.defaultLoc
	}
	return p.lunarSvc.GetForDate(ctx, date, loc)
}

func (p *envProvider) WeatherForDate(ctx context.Context, date time.Time, loc domain.GeoPoint) (*domain.WeatherRecord, error) {
	if loc.Name == "" {
		loc = p.defaultLoc
	}
	return p.weatherSvc.GetForDate(ctx, date, loc)
}

func (p *envProvider) SignificantPhases(start time.Time, daysAhead int) []lunar.SignificantPhase {
	return p.calc.SignificantPhases(start, daysAhead)
}
