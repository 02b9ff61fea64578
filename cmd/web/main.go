package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"skpg/internal/app"
	"skpg/internal/config"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	port := flag.Int("port", 0, "listen port (overrides SKPG_SERVER_PORT)")
	dataDir := flag.String("data", "", "survey data directory (overrides SKPG_PATHS_DATA_DIR)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s (%s)\n", config.AppName, config.AppVersion, config.AppVendor)
		return
	}

	// Flags beat the environment, and the environment is the last
	// overlay config.Load applies.
	if *port > 0 {
		os.Setenv("SKPG_SERVER_PORT", strconv.Itoa(*port))
	}
	if *dataDir != "" {
		os.Setenv("SKPG_PATHS_DATA_DIR", *dataDir)
	}

	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
