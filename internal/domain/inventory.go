package domain

import "time"

// LotState is the lifecycle state of a seed lot.
type LotState string

const (
	LotStateActive    LotState = "active"
	LotStateDepleted  LotState = "depleted"
	LotStateExpired   LotState = "expired"
	LotStateDiscarded LotState = "discarded"
)

// PlantingState is the lifecycle state of a sowing event.
// Transitions are not enforced here: the inventory store is an external
// collaborator and may set any state directly. The core only reads the state
// to decide which task bucket a planting belongs to.
type PlantingState string

const (
	PlantingStatePlanned      PlantingState = "planned"
	PlantingStateSown         PlantingState = "sown"
	PlantingStateGerminated   PlantingState = "germinated"
	PlantingStateTransplanted PlantingState = "transplanted"
	PlantingStateGrowing      PlantingState = "growing"
	PlantingStateNearHarvest  PlantingState = "near_harvest"
	PlantingStateHarvested    PlantingState = "harvested"
	PlantingStateCancelled    PlantingState = "cancelled"
)

// SowType distinguishes indoor and outdoor sowing windows.
type SowType string

const (
	SowIndoor  SowType = "indoor"
	SowOutdoor SowType = "outdoor"
)

// Species is a botanical species. Cultivation parameters live on Variety;
// the species-level copies were phased out of the schema.
type Species struct {
	ID             int64
	CommonName     string
	ScientificName string
	Family         string
}

// Variety is a cultivar within a species. It carries the cultivation
// parameters the calendar engine schedules against.
type Variety struct {
	ID        int64
	SpeciesID int64
	Name      string

	// Sowing windows, month numbers 1-12.
	IndoorSowingMonths  []int
	OutdoorSowingMonths []int

	// Growth timeline, days. Zero means unknown.
	GerminationDaysMin int
	GerminationDaysMax int
	DaysToTransplant   int
	DaysToHarvestMin   int
	DaysToHarvestMax   int

	// Growing temperature range, Celsius.
	MinTempC *float64
	MaxTempC *float64
}

// SowsInMonth reports whether the variety's window for the given sow type
// contains the month.
func (v *Variety) SowsInMonth(t SowType, month int) bool {
	months := v.OutdoorSowingMonths
	if t == SowIndoor {
		months = v.IndoorSowingMonths
	}
	for _, m := range months {
		if m == month {
			return true
		}
	}
	return false
}

// viabilityYearDays converts viability years to days including the leap-year
// fraction, matching how expiry has always been derived.
const viabilityYearDays = 365.25

// SeedLot is a physical batch of seeds of one variety owned by one user.
type SeedLot struct {
	ID                int64
	UserID            int64
	VarietyID         int64
	CommercialName    string
	AcquiredOn        time.Time
	ViabilityYears    int
	QuantityRemaining int
	State             LotState
}

// ExpiryDate derives the lot's expiry from acquisition date and viability.
// The expiry is not stored; it is always recomputed. Returns false when the
// lot is missing either input.
func (l *SeedLot) ExpiryDate() (time.Time, bool) {
	if l.AcquiredOn.IsZero() || l.ViabilityYears <= 0 {
		return time.Time{}, false
	}
	days := viabilityYearDays * float64(l.ViabilityYears)
	return l.AcquiredOn.Add(time.Duration(days * 24 * float64(time.Hour))), true
}

// Planting records one sowing event from a seed lot.
type Planting struct {
	ID        int64
	UserID    int64
	SeedLotID int64
	Name      string
	SowType   SowType
	State     PlantingState

	SownAt             time.Time
	GerminatedAt       *time.Time
	TransplantedAt     *time.Time
	EstimatedHarvestAt *time.Time
}

// LotWithVariety is the joined read shape the calendar engine consumes.
// Variety or Species may be nil when the relation is broken; callers skip
// such lots instead of failing the whole computation.
type LotWithVariety struct {
	Lot     SeedLot
	Variety *Variety
	Species *Species
}
