package handler

import (
	"net/http"

	"github.com/urtzih/Lorapp/internal/domain"
	"github.com/urtzih/Lorapp/internal/envcache"
)

// Week queries are capped at the provider's forecast horizon.
const maxWeekDays = 10

// WeatherDayResponse is the wire shape for one cached day of forecast data.
type WeatherDayResponse struct {
	Date            string  `json:"date"`
	Location        string  `json:"location"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	TempMaxC        float64 `json:"temp_max_c"`
	TempMinC        float64 `json:"temp_min_c"`
	TempAvgC        float64 `json:"temp_avg_c"`
	Condition       string  `json:"condition"`
	Humidity        int     `json:"humidity"`
	PrecipitationMM float64 `json:"precipitation_mm"`
	ChanceOfRain    int     `json:"chance_of_rain"`
	WindKPH         float64 `json:"wind_kph"`
	UVIndex         float64 `json:"uv_index"`
	Source          string  `json:"source"`
}

// WeatherHandler handles weather-related HTTP requests
type WeatherHandler struct {
	svc        envcache.WeatherService
	defaultLoc domain.GeoPoint
	clock      domain.Clock
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(svc envcache.WeatherService, defaultLoc domain.GeoPoint, clock domain.Clock) *WeatherHandler {
	return &WeatherHandler{svc: svc, defaultLoc: defaultLoc, clock: clock}
}

// Day returns the forecast for a single date
// @Summary Weather for a day
// @Description Returns the cached forecast for a date at the user's location, fetching or falling back to seasonal defaults as needed
// @Tags weather
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} WeatherDayResponse
// @Failure 400 {object} ErrorResponse "Invalid date"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/weather/day [get]
func (h *WeatherHandler) Day(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	date, ok := GetDateParam(r, w, "date", h.clock.Now())
	if !ok {
		return
	}

	rec, err := h.svc.GetForDate(r.Context(), date, user.Coordinates(h.defaultLoc))
	if err != nil {
		respondServiceError(w, r, "Get weather day", err)
		return
	}

	respondJSON(w, http.StatusOK, weatherDayResponse(rec))
}

// Week returns the forecast for a span of consecutive days
// @Summary Weather for a span of days
// @Description Returns the cached forecast for up to ten consecutive days at the user's location
// @Tags weather
// @Produce json
// @Param start query string false "Start date (YYYY-MM-DD), defaults to today"
// @Param days query int false "Number of days (default 7, max 10)"
// @Success 200 {array} WeatherDayResponse
// @Failure 400 {object} ErrorResponse "Invalid date or days parameter"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/weather/week [get]
func (h *WeatherHandler) Week(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	start, ok := GetDateParam(r, w, "start", h.clock.Now())
	if !ok {
		return
	}
	days, ok := GetIntParam(r, w, "days", 7)
	if !ok {
		return
	}
	if days < 1 {
		days = 1
	}
	if days > maxWeekDays {
		days = maxWeekDays
	}

	loc := user.Coordinates(h.defaultLoc)

	// Warm the cache in one batch first. Prefetch spaces its upstream calls,
	// so the per-day reads below are pure cache hits.
	h.svc.Prefetch(r.Context(), start, days, loc)

	records := make([]WeatherDayResponse, 0, days)
	for i := 0; i < days; i++ {
		rec, err := h.svc.GetForDate(r.Context(), start.AddDate(0, 0, i), loc)
		if err != nil {
			respondServiceError(w, r, "Get weather week", err)
			return
		}
		records = append(records, weatherDayResponse(rec))
	}

	respondJSON(w, http.StatusOK, records)
}

func weatherDayResponse(rec *domain.WeatherRecord) WeatherDayResponse {
	return WeatherDayResponse{
		Date:            rec.Date.Format(dateParamLayout),
		Location:        rec.Location,
		Latitude:        rec.Latitude,
		Longitude:       rec.Longitude,
		TempMaxC:        rec.TempMaxC,
		TempMinC:        rec.TempMinC,
		TempAvgC:        rec.TempAvgC,
		Condition:       rec.Condition,
		Humidity:        rec.Humidity,
		PrecipitationMM: rec.PrecipitationMM,
		ChanceOfRain:    rec.ChanceOfRain,
		WindKPH:         rec.WindKPH,
		UVIndex:         rec.UVIndex,
		Source:          string(rec.Source),
	}
}
