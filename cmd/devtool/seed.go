package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Seed database with data (catalog, demo)"
}

func (c *SeedCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: catalog, demo")
	}
	subcmd := args[0]

	db, err := sql.Open("pgx", dbURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// catalog seeds species and varieties only; demo layers a sample user
	// with seed lots on top of it.
	var files []string
	switch subcmd {
	case "catalog":
		files = []string{"internal/database/seeds/catalog.sql"}
	case "demo":
		files = []string{
			"internal/database/seeds/catalog.sql",
			"internal/database/seeds/demo_user.sql",
		}
	default:
		return fmt.Errorf("unknown subcommand: %s", subcmd)
	}

	for _, file := range files {
		if err := c.executeFile(db, file); err != nil {
			return err
		}
	}

	PrintSuccess("Seeds completed successfully")
	return nil
}

func (c *SeedCommand) executeFile(db *sql.DB, path string) error {
	PrintInfo("Executing %s...", path)

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("failed to execute seed file %s: %w", path, err)
	}

	return nil
}
