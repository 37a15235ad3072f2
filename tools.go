//go:build tools
// +build tools

package tools

// Tracks CLI tool dependencies in go.mod: goose drives migrations, swag
// regenerates the API docs. Neither is imported by application code.

import (
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/swaggo/swag/cmd/swag"
)
