package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/urtzih/Lorapp/internal/domain"
	"github.com/urtzih/Lorapp/internal/envcache"
	"github.com/urtzih/Lorapp/internal/lunar"
)

// LunarDayResponse is the wire shape for one cached day of lunar data.
type LunarDayResponse struct {
	Date         string  `json:"date"`
	Location     string  `json:"location"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Phase        string  `json:"phase"`
	Illumination float64 `json:"illumination"`
	Moonrise     string  `json:"moonrise,omitempty"`
	Moonset      string  `json:"moonset,omitempty"`
	Sunrise      string  `json:"sunrise,omitempty"`
	Sunset       string  `json:"sunset,omitempty"`
	Source       string  `json:"source"`
}

// LunarHandler handles lunar-related HTTP requests
type LunarHandler struct {
	svc        envcache.LunarService
	calc       *lunar.Calculator
	defaultLoc domain.GeoPoint
	clock      domain.Clock
}

// NewLunarHandler creates a new lunar handler
func NewLunarHandler(svc envcache.LunarService, calc *lunar.Calculator, defaultLoc domain.GeoPoint, clock domain.Clock) *LunarHandler {
	return &LunarHandler{svc: svc, calc: calc, defaultLoc: defaultLoc, clock: clock}
}

// Phase returns the computed moon phase for a date
// @Summary Moon phase for a date
// @Description Computes the moon phase, illumination and agricultural advice for a date. Pure computation, no external calls.
// @Tags lunar
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} lunar.PhaseInfo
// @Failure 400 {object} ErrorResponse "Invalid date"
// @Router /api/v1/lunar/phase [get]
func (h *LunarHandler) Phase(w http.ResponseWriter, r *http.Request) {
	date, ok := GetDateParam(r, w, "date", h.clock.Now())
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, h.calc.PhaseAt(date))
}

// Day returns the cached lunar record for a date
// @Summary Lunar data for a day
// @Description Returns the cached astronomy record for a date at the user's location, fetching or falling back to the local calculator as needed
// @Tags lunar
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} LunarDayResponse
// @Failure 400 {object} ErrorResponse "Invalid date"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/lunar/day [get]
func (h *LunarHandler) Day(w http.ResponseWriter, r *http.Request) {
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
		respondServiceError(w, r, "Get lunar day", err)
		return
	}

	respondJSON(w, http.StatusOK, lunarDayResponse(rec))
}

// Prefetch warms the lunar cache for a whole month
// @Summary Prefetch a month of lunar data
// @Description Fills the lunar cache for every day of the requested month at the user's location, one upstream call at a time
// @Tags lunar
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Invalid month or year"
// @Router /api/v1/lunar/prefetch/{year}/{month} [post]
func (h *LunarHandler) Prefetch(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	year, month, ok := yearMonthFromPath(w, r)
	if !ok {
		return
	}
	if month < 1 || month > 12 {
		respondError(w, http.StatusBadRequest, "Invalid month")
		return
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	h.svc.Prefetch(r.Context(), first, days, user.Coordinates(h.defaultLoc))

	respondJSON(w, http.StatusOK, SuccessResponse{
		Message: fmt.Sprintf(MsgLunarPrefetchDone, year, month),
	})
}

func lunarDayResponse(rec *domain.LunarRecord) LunarDayResponse {
	return LunarDayResponse{
		Date:         rec.Date.Format(dateParamLayout),
		Location:     rec.Location,
		Latitude:     rec.Latitude,
		Longitude:    rec.Longitude,
		Phase:        rec.Phase,
		Illumination: rec.Illumination,
		Moonrise:     rec.Moonrise,
		Moonset:      rec.Moonset,
		Sunrise:      rec.Sunrise,
		Sunset:       rec.Sunset,
		Source:       string(rec.Source),
	}
}
