package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	PrintHeader("Waiting for database...")

	url := dbURL()
	maxRetries := 30
	retryInterval := 2 * time.Second

	var err error
	for i := 0; i < maxRetries; i++ {
		var db *sql.DB
		db, err = sql.Open("pgx", url)
		if err == nil {
			err = db.Ping()
			db.Close()
			if err == nil {
				PrintSuccess("Database is ready")
				return nil
			}
		}

		fmt.Printf("Database not ready (%d/%d): %v\n", i+1, maxRetries, err)
		time.Sleep(retryInterval)
	}

	return fmt.Errorf("database failed to become ready after %d attempts", maxRetries)
}
