package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/ethanbaker/minutes/internal/api"
	"github.com/ethanbaker/minutes/pkg/utils"
)

// Version is set via -ldflags at build time
var Version = "dev"

func main() {
	// Load global config
	cfg := utils.NewConfigFromEnv(utils.EnvFile())

	settings, err := utils.LoadSettings(cfg)
	if err == nil {
		err = api.ConfigureMode(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so stdout stays clean for JSON output and the MCP stream
	log := utils.NewLogger(os.Stderr, settings.SlogLevel())

	deps := &runtime{
		settings: settings,
		log:      log,
		services: sync.OnceValue(func() api.Services { return api.NewServices(settings, log) }),
	}

	if err := newCLIApp(deps).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
