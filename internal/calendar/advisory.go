package calendar

import (
	"context"
	"strings"
	"time"

	"github.com/urtzih/Lorapp/internal/domain"
)

// advisoryDays is the scoring horizon for planting recommendations.
const advisoryDays = 14

// maxBestDays caps the highlighted best-planting-days list.
const maxBestDays = 5

// Suitability scoring weights. Temperature dominates, moisture matters,
// the moon phase tips the balance.
const (
	scoreGoodTemp     = 50
	scorePoorTemp     = 20
	scoreGoodMoisture = 30
	scorePoorMoisture = 10
	scoreWaxing       = 20
	scoreWaning       = 10

	highPriorityScore   = 80
	mediumPriorityScore = 50
)

// Optimal planting conditions. Temperatures between 10 and 25 degrees and a
// rain chance that is neither bone dry nor a washout.
const (
	optimalTempMinC = 10
	optimalTempMaxC = 25
	optimalRainMin  = 20
	optimalRainMax  = 80
)

// DayConditions summarizes the environment used to score one day.
type DayConditions struct {
	TemperatureC      float64 `json:"temperature_c"`
	PrecipitationRisk int     `json:"precipitation_risk"`
	Condition         string  `json:"condition"`
	LunarPhase        string  `json:"lunar_phase"`
	MoonIllumination  float64 `json:"moon_illumination"`
}

// DayRecommendation is one scored day of the advisory.
type DayRecommendation struct {
	Date             string        `json:"date"`
	DayName          string        `json:"day_name"`
	Conditions       DayConditions `json:"conditions"`
	SuitabilityScore int           `json:"suitability_score"`
}

// AdvisoryBuckets groups the scored days by priority.
type AdvisoryBuckets struct {
	HighPriority   []DayRecommendation `json:"high_priority"`
	MediumPriority []DayRecommendation `json:"medium_priority"`
	LowPriority    []DayRecommendation `json:"low_priority"`
}

// ForecastPeriod is the inclusive date window the advisory covers.
type ForecastPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// AdvisorySummary highlights the best days of the window.
type AdvisorySummary struct {
	OverallCondition string   `json:"overall_condition"`
	BestPlantingDays []string `json:"best_planting_days"`
}

// PlantingAdvisory is the scored fourteen-day planting outlook.
type PlantingAdvisory struct {
	GeneratedAt     time.Time       `json:"generated_at"`
	Location        string          `json:"location"`
	ForecastPeriod  ForecastPeriod  `json:"forecast_period"`
	Recommendations AdvisoryBuckets `json:"recommendations"`
	WeatherSummary  AdvisorySummary `json:"weather_summary"`
}

// PlantingAdvisory scores the next fourteen days on temperature, moisture and
// moon phase and buckets them by planting priority. The env layer substitutes
// fallbacks on provider outages, so the advisory degrades rather than fails.
func (e *engine) PlantingAdvisory(ctx context.Context, user *domain.User) (*PlantingAdvisory, error) {
	loc := userPoint(user)
	now := e.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	advisory := &PlantingAdvisory{
		GeneratedAt: now,
		ForecastPeriod: ForecastPeriod{
			StartDate: today.Format("2006-01-02"),
			EndDate:   today.AddDate(0, 0, advisoryDays).Format("2006-01-02"),
		},
		Recommendations: AdvisoryBuckets{
			HighPriority:   []DayRecommendation{},
			MediumPriority: []DayRecommendation{},
			LowPriority:    []DayRecommendation{},
		},
		WeatherSummary: AdvisorySummary{
			OverallCondition: "variable",
			BestPlantingDays: []string{},
		},
	}

	for offset := 0; offset < advisoryDays; offset++ {
		date := today.AddDate(0, 0, offset)

		weather, err := e.env.WeatherForDate(ctx, date, loc)
		if err != nil {
			return nil, err
		}
		moon, err := e.env.LunarForDate(ctx, date, loc)
		if err != nil {
			return nil, err
		}
		if advisory.Location == "" {
			advisory.Location = weather.Location
		}

		rec := scoreDay(date, weather, moon)
		switch {
		case rec.SuitabilityScore >= highPriorityScore:
			advisory.Recommendations.HighPriority = append(advisory.Recommendations.HighPriority, rec)
			if len(advisory.WeatherSummary.BestPlantingDays) < maxBestDays {
				advisory.WeatherSummary.BestPlantingDays = append(advisory.WeatherSummary.BestPlantingDays, rec.Date)
			}
		case rec.SuitabilityScore >= mediumPriorityScore:
			advisory.Recommendations.MediumPriority = append(advisory.Recommendations.MediumPriority, rec)
		default:
			advisory.Recommendations.LowPriority = append(advisory.Recommendations.LowPriority, rec)
		}
	}

	return advisory, nil
}

func scoreDay(date time.Time, weather *domain.WeatherRecord, moon *domain.LunarRecord) DayRecommendation {
	score := 0

	if weather.TempAvgC >= optimalTempMinC && weather.TempAvgC <= optimalTempMaxC {
		score += scoreGoodTemp
	} else {
		score += scorePoorTemp
	}

	if weather.ChanceOfRain >= optimalRainMin && weather.ChanceOfRain <= optimalRainMax {
		score += scoreGoodMoisture
	} else {
		score += scorePoorMoisture
	}

	if strings.Contains(moon.Phase, "Waxing") {
		score += scoreWaxing
	} else {
		score += scoreWaning
	}

	return DayRecommendation{
		Date:    date.Format("2006-01-02"),
		DayName: date.Weekday().String(),
		Conditions: DayConditions{
			TemperatureC:      weather.TempAvgC,
			PrecipitationRisk: weather.ChanceOfRain,
			Condition:         weather.Condition,
			LunarPhase:        moon.Phase,
			MoonIllumination:  moon.Illumination,
		},
		SuitabilityScore: score,
	}
}
