package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Inventory errors
	ErrMsgSeedLotNotFound  = "seed lot not found"
	ErrMsgVarietyNotFound  = "variety not found"
	ErrMsgPlantingNotFound = "planting not found"

	// Cache errors
	ErrMsgCacheEntryNotFound = "cache entry not found"
	ErrMsgCacheEntryStale    = "cache entry is stale"

	// Fetch errors
	ErrMsgFetchFailed = "external fetch failed"

	// Notification errors
	ErrMsgSubscriptionNotFound = "push subscription not found"
	ErrMsgSubscriptionInvalid  = "push subscription is no longer valid"

	// Input errors
	ErrMsgInvalidMonth = "month must be between 1 and 12"
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Inventory errors
	ErrSeedLotNotFound  = errors.New(ErrMsgSeedLotNotFound)
	ErrVarietyNotFound  = errors.New(ErrMsgVarietyNotFound)
	ErrPlantingNotFound = errors.New(ErrMsgPlantingNotFound)

	// Cache errors
	ErrCacheEntryNotFound = errors.New(ErrMsgCacheEntryNotFound)
	ErrCacheEntryStale    = errors.New(ErrMsgCacheEntryStale)

	// Fetch errors
	ErrFetchFailed = errors.New(ErrMsgFetchFailed)

	// Notification errors
	ErrSubscriptionNotFound = errors.New(ErrMsgSubscriptionNotFound)
	ErrSubscriptionInvalid  = errors.New(ErrMsgSubscriptionInvalid)

	// Input errors
	ErrInvalidMonth = errors.New(ErrMsgInvalidMonth)
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
