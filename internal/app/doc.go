// Package app wires the SKPG Insight server together and manages its
// lifecycle: configuration loading, logging and observability setup,
// dataset store construction, service assembly, HTTP routing and
// graceful shutdown.
//
// # Initialization Flow
//
// The typical initialization sequence:
//
//	1. Load configuration from defaults, config file and environment
//	2. Initialize logging and OpenTelemetry
//	3. Build the dataset loader and store (DuckDB conversion optional)
//	4. Assemble services and the websocket hub
//	5. Set up HTTP handlers and middleware
//	6. Configure the HTTP server and the rescan schedule
//
// # Usage
//
//	app, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := app.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// Run handles SIGINT and SIGTERM. Shutdown waits for active requests
// and a running rescan, disconnects websocket clients, closes the
// DuckDB converter and flushes telemetry, all bounded by the configured
// shutdown timeout.
//
// # Error Handling
//
// All initialization errors are returned to the caller. The app never
// calls os.Exit() directly, leaving exit control to main.
package app
