package domain

import "time"

// Task bucket entry types returned by the calendar engine. Ordering within a
// bucket is insertion order; buckets are never deduplicated against each
// other.

// PlantingTask says a lot's variety can be sown this month.
type PlantingTask struct {
	SeedLotID   int64   `json:"seed_lot_id"`
	LotName     string  `json:"lot_name"`
	VarietyName string  `json:"variety_name"`
	SowType     SowType `json:"sow_type"`
	Description string  `json:"description"`
}

// TransplantTask says a germinated planting reaches its transplant date this month.
type TransplantTask struct {
	PlantingID  int64     `json:"planting_id"`
	LotName     string    `json:"lot_name"`
	VarietyName string    `json:"variety_name"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// HarvestTask says a planting's estimated harvest date falls this month.
type HarvestTask struct {
	PlantingID  int64     `json:"planting_id"`
	LotName     string    `json:"lot_name"`
	VarietyName string    `json:"variety_name"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// ReminderTask warns that a lot expires 30 days after the reminder date.
type ReminderTask struct {
	SeedLotID   int64     `json:"seed_lot_id"`
	LotName     string    `json:"lot_name"`
	Type        string    `json:"type"`
	ExpiresOn   time.Time `json:"expires_on"`
	Description string    `json:"description"`
}

// MonthlyTasks is the four-bucket result of MonthlyTasks.
type MonthlyTasks struct {
	Planting      []PlantingTask   `json:"planting"`
	Transplanting []TransplantTask `json:"transplanting"`
	Harvesting    []HarvestTask    `json:"harvesting"`
	Reminders     []ReminderTask   `json:"reminders"`
}

// Counts returns the per-bucket sizes, used by the year-summary view.
func (t *MonthlyTasks) Counts() TaskCounts {
	return TaskCounts{
		Planting:      len(t.Planting),
		Transplanting: len(t.Transplanting),
		Harvesting:    len(t.Harvesting),
		Reminders:     len(t.Reminders),
	}
}

// TaskCounts is the per-month summary shape.
type TaskCounts struct {
	Planting      int `json:"planting"`
	Transplanting int `json:"transplanting"`
	Harvesting    int `json:"harvesting"`
	Reminders     int `json:"reminders"`
}

// Recommendation is a lot that can be sown in the current month.
type Recommendation struct {
	SeedLotID       int64  `json:"seed_lot_id"`
	LotName         string `json:"lot_name"`
	VarietyName     string `json:"variety_name"`
	CanPlantIndoor  bool   `json:"can_plant_indoor"`
	CanPlantOutdoor bool   `json:"can_plant_outdoor"`
	GerminationDays int    `json:"germination_days"`
}

// UpcomingTransplant is a germinated planting whose computed transplant date
// falls inside the queried window.
type UpcomingTransplant struct {
	PlantingID     int64     `json:"planting_id"`
	LotName        string    `json:"lot_name"`
	VarietyName    string    `json:"variety_name"`
	TransplantDate time.Time `json:"transplant_date"`
	DaysUntil      int       `json:"days_until"`
}

// ExpiringLot is an active lot whose derived expiry falls inside the queried
// window. Lists of these are sorted ascending by DaysUntil.
type ExpiringLot struct {
	SeedLotID   int64     `json:"seed_lot_id"`
	LotName     string    `json:"lot_name"`
	VarietyName string    `json:"variety_name"`
	ExpiresOn   time.Time `json:"expires_on"`
	DaysUntil   int       `json:"days_until"`
}
