package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/urtzih/Lorapp/internal/domain"
)

// InventoryRepository implements the inventory repository for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetUserByID retrieves a single user by primary key
func (r *InventoryRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `
		SELECT id, email, name, location, latitude, longitude, notifications_enabled
		FROM users
		WHERE id = $1
	`
	var u domain.User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&u.ID, &u.Email, &u.Name, &u.Location, &u.Latitude, &u.Longitude, &u.NotificationsEnabled,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// GetUsersWithNotificationsEnabled retrieves every user opted in to notifications
func (r *InventoryRepository) GetUsersWithNotificationsEnabled(ctx context.Context) ([]domain.User, error) {
	query := `
		SELECT id, email, name, location, latitude, longitude, notifications_enabled
		FROM users
		WHERE notifications_enabled = TRUE
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Location, &u.Latitude, &u.Longitude, &u.NotificationsEnabled); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// GetLotsByUser retrieves a user's seed lots in the given state, joined with
// their variety and species. A lot whose variety row is missing comes back
// with a nil Variety; callers decide whether to skip it.
func (r *InventoryRepository) GetLotsByUser(ctx context.Context, userID int64, state domain.LotState) ([]domain.LotWithVariety, error) {
	query := `
		SELECT
			l.id, l.user_id, l.variety_id, l.commercial_name, l.acquired_on,
			l.viability_years, l.quantity_remaining, l.state,
			v.id, v.species_id, v.name,
			v.indoor_sowing_months, v.outdoor_sowing_months,
			v.germination_days_min, v.germination_days_max,
			v.days_to_transplant, v.days_to_harvest_min, v.days_to_harvest_max,
			v.min_temp_c, v.max_temp_c,
			s.id, s.common_name, s.scientific_name, s.family
		FROM seed_lots l
		LEFT JOIN varieties v ON v.id = l.variety_id
		LEFT JOIN species s ON s.id = v.species_id
		WHERE l.user_id = $1 AND l.state = $2
		ORDER BY l.id
	`
	rows, err := r.db.Query(ctx, query, userID, string(state))
	if err != nil {
		return nil, fmt.Errorf("failed to query seed lots: %w", err)
	}
	defer rows.Close()

	var lots []domain.LotWithVariety
	for rows.Next() {
		var (
			lw           domain.LotWithVariety
			lotState     string
			varietyID    *int64
			speciesID    *int64
			v            varietyRow
			sCommonName  *string
			sSciName     *string
			sFamily      *string
			spIDFromJoin *int64
		)
		err := rows.Scan(
			&lw.Lot.ID, &lw.Lot.UserID, &lw.Lot.VarietyID, &lw.Lot.CommercialName, &lw.Lot.AcquiredOn,
			&lw.Lot.ViabilityYears, &lw.Lot.QuantityRemaining, &lotState,
			&varietyID, &speciesID, &v.name,
			&v.indoorMonths, &v.outdoorMonths,
			&v.germMin, &v.germMax,
			&v.daysToTransplant, &v.harvestMin, &v.harvestMax,
			&v.minTempC, &v.maxTempC,
			&spIDFromJoin, &sCommonName, &sSciName, &sFamily,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan seed lot: %w", err)
		}
		lw.Lot.State = domain.LotState(lotState)
		if varietyID != nil {
			lw.Variety = v.toDomain(*varietyID, speciesID)
		}
		if spIDFromJoin != nil {
			lw.Species = &domain.Species{
				ID:             *spIDFromJoin,
				CommonName:     derefString(sCommonName),
				ScientificName: derefString(sSciName),
				Family:         derefString(sFamily),
			}
		}
		lots = append(lots, lw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate seed lots: %w", err)
	}
	return lots, nil
}

// GetPlantingsByUser retrieves a user's plantings in any of the given states.
// An empty state list returns all plantings.
func (r *InventoryRepository) GetPlantingsByUser(ctx context.Context, userID int64, states []domain.PlantingState) ([]domain.Planting, error) {
	query := `
		SELECT id, user_id, seed_lot_id, name, sow_type, state,
		       sown_at, germinated_at, transplanted_at, estimated_harvest_at
		FROM plantings
		WHERE user_id = $1
		  AND ($2::text[] IS NULL OR state = ANY($2))
		ORDER BY sown_at
	`
	var stateArg []string
	if len(states) > 0 {
		stateArg = make([]string, 0, len(states))
		for _, s := range states {
			stateArg = append(stateArg, string(s))
		}
	}

	rows, err := r.db.Query(ctx, query, userID, stateArg)
	if err != nil {
		return nil, fmt.Errorf("failed to query plantings: %w", err)
	}
	defer rows.Close()

	var plantings []domain.Planting
	for rows.Next() {
		var (
			p       domain.Planting
			sowType string
			state   string
		)
		err := rows.Scan(
			&p.ID, &p.UserID, &p.SeedLotID, &p.Name, &sowType, &state,
			&p.SownAt, &p.GerminatedAt, &p.TransplantedAt, &p.EstimatedHarvestAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planting: %w", err)
		}
		p.SowType = domain.SowType(sowType)
		p.State = domain.PlantingState(state)
		plantings = append(plantings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plantings: %w", err)
	}
	return plantings, nil
}

// varietyRow holds nullable scan targets for the variety columns of a join.
type varietyRow struct {
	name             *string
	indoorMonths     []int32
	outdoorMonths    []int32
	germMin          *int
	germMax          *int
	daysToTransplant *int
	harvestMin       *int
	harvestMax       *int
	minTempC         *float64
	maxTempC         *float64
}

func (v *varietyRow) toDomain(id int64, speciesID *int64) *domain.Variety {
	out := &domain.Variety{
		ID:                  id,
		Name:                derefString(v.name),
		IndoorSowingMonths:  int32sToInts(v.indoorMonths),
		OutdoorSowingMonths: int32sToInts(v.outdoorMonths),
		GerminationDaysMin:  derefInt(v.germMin),
		GerminationDaysMax:  derefInt(v.germMax),
		DaysToTransplant:    derefInt(v.daysToTransplant),
		DaysToHarvestMin:    derefInt(v.harvestMin),
		DaysToHarvestMax:    derefInt(v.harvestMax),
		MinTempC:            v.minTempC,
		MaxTempC:            v.maxTempC,
	}
	if speciesID != nil {
		out.SpeciesID = *speciesID
	}
	return out
}
