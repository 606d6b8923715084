package main

import (
	"log/slog"
	"os"

	"github.com/ethanbaker/minutes/internal/api"
	"github.com/ethanbaker/minutes/pkg/utils"
)

// Start the API server
func main() {
	// Load global config
	cfg := utils.NewConfigFromEnv(utils.EnvFile())

	settings, err := utils.LoadSettings(cfg)
	if err == nil {
		err = api.ConfigureMode(cfg)
	}
	if err != nil {
		slog.Error("Invalid configuration", "component", "api", "error", err)
		os.Exit(1)
	}

	log := utils.NewLogger(os.Stdout, settings.SlogLevel())

	// Start
	if err := api.Start(settings, api.NewServices(settings, log), log); err != nil {
		log.Error("Server stopped", "component", "api", "error", err)
		os.Exit(1)
	}
}
