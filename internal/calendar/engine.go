// Package calendar derives gardening tasks from the seed inventory: what to
// sow this month, what to transplant, what to harvest, what is about to
// expire. All queries are read-only projections over the inventory store.
package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/urtzih/Lorapp/internal/domain"
	"github.com/urtzih/Lorapp/internal/logger"
	"github.com/urtzih/Lorapp/internal/lunar"
	"github.com/urtzih/Lorapp/internal/repository"
)

// expiryReminderLeadDays is how far before a lot's expiry the monthly
// reminder bucket starts warning about it.
const expiryReminderLeadDays = 30

// Engine answers calendar queries for one user at a time.
type Engine interface {
	MonthlyTasks(ctx context.Context, user *domain.User, month, year int) (*domain.MonthlyTasks, error)
	CurrentMonthRecommendations(ctx context.Context, user *domain.User) ([]domain.Recommendation, error)
	UpcomingTransplants(ctx context.Context, user *domain.User, daysAhead int) ([]domain.UpcomingTransplant, error)
	ExpiringLots(ctx context.Context, user *domain.User, daysAhead int) ([]domain.ExpiringLot, error)
	MonthOverview(ctx context.Context, user *domain.User, month, year int) (*MonthOverview, error)
	YearSummary(ctx context.Context, user *domain.User, year int) (*YearSummary, error)
	PlantingAdvisory(ctx context.Context, user *domain.User) (*PlantingAdvisory, error)
}

type engine struct {
	repo  repository.Inventory
	env   EnvProvider
	clock domain.Clock
}

// EnvProvider supplies the environmental enrichment for the full month view.
// It is satisfied by the envcache services plus the phase calculator.
type EnvProvider interface {
	LunarForDate(ctx context.Context, date time.Time, loc domain.GeoPoint) (*domain.LunarRecord, error)
	WeatherForDate(ctx context.Context, date time.Time, loc domain.GeoPoint) (*domain.WeatherRecord, error)
	SignificantPhases(start time.Time, daysAhead int) []lunar.SignificantPhase
}

// NewEngine creates a new calendar Engine
func NewEngine(repo repository.Inventory, env EnvProvider, clock domain.Clock) Engine {
	return &engine{repo: repo, env: env, clock: clock}
}

// MonthlyTasks builds the four task buckets for one month. Lots whose variety
// relation is broken are skipped rather than failing the whole month.
func (e *engine) MonthlyTasks(ctx context.Context, user *domain.User, month, year int) (*domain.MonthlyTasks, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidMonth, month)
	}

	lots, err := e.repo.GetLotsByUser(ctx, user.ID, domain.LotStateActive)
	if err != nil {
		return nil, fmt.Errorf("failed to load lots: %w", err)
	}

	tasks := &domain.MonthlyTasks{
		Planting:      []domain.PlantingTask{},
		Transplanting: []domain.TransplantTask{},
		Harvesting:    []domain.HarvestTask{},
		Reminders:     []domain.ReminderTask{},
	}

	sowMonth := hemisphereMonth(user, month)
	byLotID := make(map[int64]domain.LotWithVariety, len(lots))

	for _, lw := range lots {
		byLotID[lw.Lot.ID] = lw
		if lw.Variety == nil {
			logger.FromContext(ctx).Warn("Skipping lot with missing variety", "seed_lot_id", lw.Lot.ID)
			continue
		}

		if lw.Variety.SowsInMonth(domain.SowIndoor, sowMonth) {
			tasks.Planting = append(tasks.Planting, plantingTask(lw, domain.SowIndoor))
		}
		if lw.Variety.SowsInMonth(domain.SowOutdoor, sowMonth) {
			tasks.Planting = append(tasks.Planting, plantingTask(lw, domain.SowOutdoor))
		}

		if expiry, ok := lw.Lot.ExpiryDate(); ok {
			warn := expiry.AddDate(0, 0, -expiryReminderLeadDays)
			if int(warn.Month()) == month && warn.Year() == year {
				tasks.Reminders = append(tasks.Reminders, domain.ReminderTask{
					SeedLotID:   lw.Lot.ID,
					LotName:     lw.Lot.CommercialName,
					Type:        "expiration_warning",
					ExpiresOn:   expiry,
					Description: fmt.Sprintf("%s expires on %s", lw.Lot.CommercialName, expiry.Format("2006-01-02")),
				})
			}
		}
	}

	plantings, err := e.repo.GetPlantingsByUser(ctx, user.ID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load plantings: %w", err)
	}

	for _, p := range plantings {
		lw, ok := byLotID[p.SeedLotID]
		if !ok || lw.Variety == nil {
			continue
		}

		if awaitingTransplant(p.State) && lw.Variety.DaysToTransplant > 0 && !p.SownAt.IsZero() {
			date := p.SownAt.AddDate(0, 0, lw.Variety.DaysToTransplant)
			if int(date.Month()) == month && date.Year() == year {
				tasks.Transplanting = append(tasks.Transplanting, domain.TransplantTask{
					PlantingID:  p.ID,
					LotName:     lw.Lot.CommercialName,
					VarietyName: lw.Variety.Name,
					Date:        date,
					Description: fmt.Sprintf("Transplant %s", lw.Lot.CommercialName),
				})
			}
		}

		if awaitingHarvest(p.State) {
			if date, ok := harvestDate(p, lw.Variety); ok &&
				int(date.Month()) == month && date.Year() == year {
				tasks.Harvesting = append(tasks.Harvesting, domain.HarvestTask{
					PlantingID:  p.ID,
					LotName:     lw.Lot.CommercialName,
					VarietyName: lw.Variety.Name,
					Date:        date,
					Description: fmt.Sprintf("Harvest %s", lw.Lot.CommercialName),
				})
			}
		}
	}

	return tasks, nil
}

// CurrentMonthRecommendations lists the lots whose variety can be sown in the
// month the clock currently points at.
func (e *engine) CurrentMonthRecommendations(ctx context.Context, user *domain.User) ([]domain.Recommendation, error) {
	month := hemisphereMonth(user, int(e.clock.Now().Month()))

	lots, err := e.repo.GetLotsByUser(ctx, user.ID, domain.LotStateActive)
	if err != nil {
		return nil, fmt.Errorf("failed to load lots: %w", err)
	}

	recs := []domain.Recommendation{}
	for _, lw := range lots {
		if lw.Variety == nil {
			continue
		}
		indoor := lw.Variety.SowsInMonth(domain.SowIndoor, month)
		outdoor := lw.Variety.SowsInMonth(domain.SowOutdoor, month)
		if !indoor && !outdoor {
			continue
		}
		recs = append(recs, domain.Recommendation{
			SeedLotID:       lw.Lot.ID,
			LotName:         lw.Lot.CommercialName,
			VarietyName:     lw.Variety.Name,
			CanPlantIndoor:  indoor,
			CanPlantOutdoor: outdoor,
			GerminationDays: lw.Variety.GerminationDaysMax,
		})
	}
	return recs, nil
}

// UpcomingTransplants lists plantings whose computed transplant date falls
// within the next daysAhead days.
func (e *engine) UpcomingTransplants(ctx context.Context, user *domain.User, daysAhead int) ([]domain.UpcomingTransplant, error) {
	now := e.clock.Now()
	end := now.AddDate(0, 0, daysAhead)

	lots, err := e.repo.GetLotsByUser(ctx, user.ID, domain.LotStateActive)
	if err != nil {
		return nil, fmt.Errorf("failed to load lots: %w", err)
	}
	byLotID := make(map[int64]domain.LotWithVariety, len(lots))
	for _, lw := range lots {
		byLotID[lw.Lot.ID] = lw
	}

	plantings, err := e.repo.GetPlantingsByUser(ctx, user.ID,
		[]domain.PlantingState{domain.PlantingStateGerminated})
	if err != nil {
		return nil, fmt.Errorf("failed to load plantings: %w", err)
	}

	upcoming := []domain.UpcomingTransplant{}
	for _, p := range plantings {
		lw, ok := byLotID[p.SeedLotID]
		if !ok || lw.Variety == nil || lw.Variety.DaysToTransplant <= 0 || p.SownAt.IsZero() {
			continue
		}
		date := p.SownAt.AddDate(0, 0, lw.Variety.DaysToTransplant)
		if date.Before(now) || date.After(end) {
			continue
		}
		upcoming = append(upcoming, domain.UpcomingTransplant{
			PlantingID:     p.ID,
			LotName:        lw.Lot.CommercialName,
			VarietyName:    lw.Variety.Name,
			TransplantDate: date,
			DaysUntil:      daysBetween(now, date),
		})
	}
	return upcoming, nil
}

// ExpiringLots lists active lots whose derived expiry falls within the next
// daysAhead days, soonest first. Lots already past expiry are excluded.
func (e *engine) ExpiringLots(ctx context.Context, user *domain.User, daysAhead int) ([]domain.ExpiringLot, error) {
	now := e.clock.Now()
	end := now.AddDate(0, 0, daysAhead)

	lots, err := e.repo.GetLotsByUser(ctx, user.ID, domain.LotStateActive)
	if err != nil {
		return nil, fmt.Errorf("failed to load lots: %w", err)
	}

	expiring := []domain.ExpiringLot{}
	for _, lw := range lots {
		expiry, ok := lw.Lot.ExpiryDate()
		if !ok || expiry.After(end) {
			continue
		}
		days := daysBetween(now, expiry)
		if days < 0 {
			continue
		}
		varietyName := ""
		if lw.Variety != nil {
			varietyName = lw.Variety.Name
		}
		expiring = append(expiring, domain.ExpiringLot{
			SeedLotID:   lw.Lot.ID,
			LotName:     lw.Lot.CommercialName,
			VarietyName: varietyName,
			ExpiresOn:   expiry,
			DaysUntil:   days,
		})
	}

	// soonest expiry first
	sort.Slice(expiring, func(i, j int) bool {
		return expiring[i].DaysUntil < expiring[j].DaysUntil
	})
	return expiring, nil
}

func plantingTask(lw domain.LotWithVariety, t domain.SowType) domain.PlantingTask {
	kind := "outdoor"
	if t == domain.SowIndoor {
		kind = "indoor"
	}
	return domain.PlantingTask{
		SeedLotID:   lw.Lot.ID,
		LotName:     lw.Lot.CommercialName,
		VarietyName: lw.Variety.Name,
		SowType:     t,
		Description: fmt.Sprintf("Sow %s (%s)", lw.Lot.CommercialName, kind),
	}
}

// hemisphereMonth shifts the sowing month for southern-hemisphere users,
// whose seasons run half a year offset from the northern tables.
func hemisphereMonth(user *domain.User, month int) int {
	if user.SouthernHemisphere() {
		return (month-1+6)%12 + 1
	}
	return month
}

// awaitingTransplant reports whether a planting is ready to move outdoors.
// Freshly sown plantings are excluded: a seed with no visible germination
// has no transplant to schedule yet.
func awaitingTransplant(s domain.PlantingState) bool {
	return s == domain.PlantingStateGerminated
}

func awaitingHarvest(s domain.PlantingState) bool {
	switch s {
	case domain.PlantingStateHarvested, domain.PlantingStateCancelled, domain.PlantingStatePlanned:
		return false
	}
	return true
}

// harvestDate prefers the recorded estimate and falls back to sowing date
// plus the variety's minimum days to harvest.
func harvestDate(p domain.Planting, v *domain.Variety) (time.Time, bool) {
	if p.EstimatedHarvestAt != nil {
		return *p.EstimatedHarvestAt, true
	}
	if !p.SownAt.IsZero() && v.DaysToHarvestMin > 0 {
		return p.SownAt.AddDate(0, 0, v.DaysToHarvestMin), true
	}
	return time.Time{}, false
}

// daysBetween counts whole days from a to b, truncating partial days the way
// a countdown display would.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
