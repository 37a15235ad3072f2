package main

import (
	"github.com/urtzih/Lorapp/internal/config"
	"github.com/urtzih/Lorapp/internal/handler"
	"github.com/urtzih/Lorapp/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Determine if we should add source info (only in dev)
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.ServiceName,
		handler.Version,
		cfg.Environment,
		addSource,
	)

	logger.Init(loggerConfig)
}
