package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/urtzih/Lorapp/internal/calendar"
	"github.com/urtzih/Lorapp/internal/domain"
	"github.com/urtzih/Lorapp/internal/logger"
)

// Default query windows when the client does not pass one.
const (
	defaultTransplantDays = 7
	defaultExpiringDays   = 30
)

// CalendarHandler handles calendar-related HTTP requests
type CalendarHandler struct {
	engine calendar.Engine
	clock  domain.Clock
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(engine calendar.Engine, clock domain.Clock) *CalendarHandler {
	return &CalendarHandler{engine: engine, clock: clock}
}

// MonthlyTasks returns the task buckets for a given month
// @Summary Monthly garden tasks
// @Description Returns planting, transplanting, harvesting and reminder tasks for the requested month. Defaults to the current month.
// @Tags calendar
// @Produce json
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Success 200 {object} domain.MonthlyTasks
// @Failure 400 {object} ErrorResponse "Invalid month or year"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/calendar/monthly [get]
func (h *CalendarHandler) MonthlyTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	now := h.clock.Now()
	month, ok := GetIntParam(r, w, "month", int(now.Month()))
	if !ok {
		return
	}
	year, ok := GetIntParam(r, w, "year", now.Year())
	if !ok {
		return
	}

	tasks, err := h.engine.MonthlyTasks(r.Context(), user, month, year)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetMonthlyTasksFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

// CurrentMonth returns the task buckets for the month in progress
// @Summary Current month garden tasks
// @Description Returns the task buckets for the month in progress
// @Tags calendar
// @Produce json
// @Success 200 {object} domain.MonthlyTasks
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/calendar/current [get]
func (h *CalendarHandler) CurrentMonth(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	now := h.clock.Now()
	tasks, err := h.engine.MonthlyTasks(r.Context(), user, int(now.Month()), now.Year())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetMonthlyTasksFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

// Recommendations returns the lots that can be sown right now
// @Summary Sowing recommendations
// @Description Returns active seed lots whose sowing window includes the current month
// @Tags calendar
// @Produce json
// @Success 200 {array} domain.Recommendation
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/calendar/recommendations [get]
func (h *CalendarHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	recs, err := h.engine.CurrentMonthRecommendations(r.Context(), user)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetRecommendationsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, recs)
}

// UpcomingTransplants returns plantings reaching their transplant date soon
// @Summary Upcoming transplants
// @Description Returns plantings whose computed transplant date falls within the next N days
// @Tags calendar
// @Produce json
// @Param days query int false "Window in days (default 7)"
// @Success 200 {array} domain.UpcomingTransplant
// @Failure 400 {object} ErrorResponse "Invalid days parameter"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/calendar/upcoming-transplants [get]
func (h *CalendarHandler) UpcomingTransplants(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	days, ok := GetIntParam(r, w, "days", defaultTransplantDays)
	if !ok {
		return
	}

	transplants, err := h.engine.UpcomingTransplants(r.Context(), user, days)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetTransplantsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, transplants)
}

// ExpiringLots returns lots whose viability window closes soon
// @Summary Expiring seed lots
// @Description Returns active lots whose derived expiry date falls within the next N days, soonest first
// @Tags calendar
// @Produce json
// @Param days query int false "Window in days (default 30)"
// @Success 200 {array} domain.ExpiringLot
// @Failure 400 {object} ErrorResponse "Invalid days parameter"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/calendar/expiring-lots [get]
func (h *CalendarHandler) ExpiringLots(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	days, ok := GetIntParam(r, w, "days", defaultExpiringDays)
	if !ok {
		return
	}

	lots, err := h.engine.ExpiringLots(r.Context(), user, days)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetExpiringLotsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, lots)
}

// PlantingAdvisory returns the scored fourteen-day planting outlook
// @Summary Planting advisory
// @Description Scores the next fourteen days on temperature, moisture and moon phase and buckets them by planting priority
// @Tags calendar
// @Produce json
// @Success 200 {object} calendar.PlantingAdvisory
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/calendar/planting-advisory [get]
func (h *CalendarHandler) PlantingAdvisory(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	advisory, err := h.engine.PlantingAdvisory(r.Context(), user)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetAdvisoryFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, advisory)
}

// MonthOverview returns the integrated month view
// @Summary Integrated month view
// @Description Returns tasks, per-day lunar data, near-term weather and significant phases for a month
// @Tags calendar
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} calendar.MonthOverview
// @Failure 400 {object} ErrorResponse "Invalid month or year"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/calendar/full/month/{year}/{month} [get]
func (h *CalendarHandler) MonthOverview(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	year, month, ok := yearMonthFromPath(w, r)
	if !ok {
		return
	}

	overview, err := h.engine.MonthOverview(r.Context(), user, month, year)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetMonthOverviewFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, overview)
}

// YearSummary returns per-month task counts for a year
// @Summary Year summary
// @Description Returns the task counts for every month of the requested year
// @Tags calendar
// @Produce json
// @Param year path int true "Year"
// @Success 200 {object} calendar.YearSummary
// @Failure 400 {object} ErrorResponse "Invalid year"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/calendar/full/year-summary/{year} [get]
func (h *CalendarHandler) YearSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid year")
		return
	}

	summary, err := h.engine.YearSummary(r.Context(), user, year)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetYearSummaryFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// yearMonthFromPath parses the {year}/{month} path segments.
func yearMonthFromPath(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	log := logger.FromContext(r.Context())

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		log.Warn("Invalid year path segment", "value", chi.URLParam(r, "year"))
		respondError(w, http.StatusBadRequest, "Invalid year")
		return 0, 0, false
	}

	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		log.Warn("Invalid month path segment", "value", chi.URLParam(r, "month"))
		respondError(w, http.StatusBadRequest, "Invalid month")
		return 0, 0, false
	}

	return year, month, true
}
