// Package config provides centralized configuration management for the SKPG
// reporting service. It handles loading configuration from multiple sources,
// validation, and provides a type-safe API for accessing configuration values
// throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration files (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SKPG_* for namespacing:
//
//	SKPG_SERVER_PORT=8080
//	SKPG_PATHS_DATA_DIR=/srv/skpg/data
//	SKPG_DATASET_RESCAN_SCHEDULE="@every 15m"
//	SKPG_LOGGING_LEVEL=info
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which handles all file system paths relative to the executable location:
//
//	paths, _ := config.GetPaths()
//	workbook := paths.WorkbookPath(2024)
//	cache := paths.ParquetPath(2024)
//
// # Validation
//
// All configuration is validated at load time to ensure:
//
//	- Required fields are present
//	- Values are within acceptable ranges
//	- Directories exist or can be created
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
