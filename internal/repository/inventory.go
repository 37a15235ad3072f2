package repository

import (
	"context"

	"github.com/urtzih/Lorapp/internal/domain"
)

// Inventory defines the interface for seed inventory persistence
type Inventory interface {
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	GetUsersWithNotificationsEnabled(ctx context.Context) ([]domain.User, error)

	// GetLotsByUser joins each lot with its variety and species, so callers
	// never need separate catalog lookups.
	GetLotsByUser(ctx context.Context, userID int64, state domain.LotState) ([]domain.LotWithVariety, error)
	GetPlantingsByUser(ctx context.Context, userID int64, states []domain.PlantingState) ([]domain.Planting, error)
}
