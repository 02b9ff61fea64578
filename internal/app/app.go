package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/metric"

	"skpg/internal/codes"
	"skpg/internal/config"
	"skpg/internal/dataset"
	"skpg/internal/errors"
	"skpg/internal/files"
	"skpg/internal/infrastructure"
	customMiddleware "skpg/internal/middleware"
	"skpg/internal/services"
	handlers "skpg/internal/transport/http"
	ws "skpg/internal/websocket"
)

// Application is the assembled server: configuration, dataset store,
// services, router and the background rescan schedule.
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
	Discovery     *files.Discovery
	Converter     *dataset.Converter
	Store         *dataset.Store
	WebSocketHub  *ws.Hub
	Cron          *cron.Cron
	Services      *ServiceContainer

	clientGauge metric.Registration
	runtime     *infrastructure.RuntimeCollector
	lastScan    string
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Dashboard *services.DashboardService
	Faculty   *services.FacultyService
	Dataset   *services.DatasetService
	Health    *services.HealthService
	WebSocket *ws.Hub
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("vendor", config.AppVendor))

	paths, err := config.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}
	paths.LogPathResolution()

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices builds the dataset pipeline, the websocket hub and
// all application services.
func (a *Application) initializeServices() error {
	if a.OTelProviders.Meter != nil {
		metrics, err := infrastructure.CreateBusinessMetrics(a.OTelProviders.Meter)
		if err != nil {
			return fmt.Errorf("failed to create business metrics: %w", err)
		}
		a.Metrics = metrics
	}

	hub := ws.NewHubWithSettings(ws.Settings{
		ReadBufferSize:  a.Config.WebSocket.ReadBufferSize,
		WriteBufferSize: a.Config.WebSocket.WriteBufferSize,
		PingPeriod:      a.Config.WebSocket.PingPeriod,
		PongWait:        a.Config.WebSocket.PongWait,
	}, a.Logger)
	hub.Start()
	a.WebSocketHub = hub

	a.Discovery = files.NewDiscovery(a.Config.GetDataDir())

	// DuckDB is optional. Without it workbooks are read directly, which
	// is slower on large years but produces the same table.
	converter, err := dataset.NewConverter(a.Config.Dataset.SheetName, a.Logger)
	if err != nil {
		a.Logger.Warn("Parquet conversion unavailable, reading workbooks directly",
			slog.String("error", err.Error()))
	} else {
		a.Converter = converter
	}

	var parquet dataset.ParquetSource
	if a.Converter != nil {
		parquet = a.Converter
	}

	loader := dataset.NewLoader(
		a.Discovery,
		parquet,
		dataset.NewExcelReader(a.Config.Dataset.SheetName, a.Logger),
		codes.NewNormalizer(),
		dataset.LoaderConfig{
			Concurrency:  a.Config.Dataset.LoadConcurrency,
			CacheEnabled: a.Config.Dataset.CacheEnabled,
			Metrics:      a.Metrics,
		},
		a.Logger,
	)
	a.Store = dataset.NewStore(loader, a.Logger)

	a.Services = &ServiceContainer{
		Dashboard: services.NewDashboardService(a.Store, a.Config.Dataset.ResponseTarget, a.Logger),
		Faculty:   services.NewFacultyService(a.Store, a.Logger),
		Dataset:   services.NewDatasetService(a.Store, hub, a.Logger),
		Health:    services.NewHealthService(a.Store, hub, config.AppName, config.AppVersion, config.AppVendor, a.Logger),
		WebSocket: hub,
	}

	// SkipIfStillRunning keeps a slow reload from overlapping the next tick.
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{a.Logger})))
	if schedule := a.Config.Dataset.RescanSchedule; schedule != "" {
		if _, err := c.AddFunc(schedule, a.runScheduledRescan); err != nil {
			return fmt.Errorf("invalid rescan schedule %q: %w", schedule, err)
		}
	}
	a.Cron = c

	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Minimal middleware first; these never wrap the ResponseWriter and
	// are safe for the websocket upgrade.
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	// WebSocket route stays outside the full middleware group: the
	// instrumented response writer breaks http.Hijacker.
	r.With(customMiddleware.WebSocketTraceMiddleware(a.Logger)).Get("/ws", a.handleWebSocket)

	r.Group(func(r chi.Router) {
		if a.OTelProviders.Tracer != nil && a.OTelProviders.Meter != nil {
			otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
			if err != nil {
				a.Logger.Error("Failed to create OpenTelemetry middleware", slog.String("error", err.Error()))
			} else {
				r.Use(otelMiddleware.Handler)
			}
		}

		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)
		r.Use(customMiddleware.CORS(a.getCORSConfig()))

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)
		a.setupStaticRoutes(r)
	})

	// Prometheus endpoint outside the middleware group
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := errors.NewErrorHandler(a.Logger, a.Config.Logging.Development)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))

			healthHandler := handlers.NewHealthHandler(a.Services.Health, a.Logger)
			r.Get("/health", healthHandler.Health)
			r.Get("/health/live", healthHandler.Live)
			r.Get("/health/ready", healthHandler.Ready)
			r.Get("/version", healthHandler.Version)

			dashboardHandler := handlers.NewDashboardHandler(a.Services.Dashboard, a.Logger, errorHandler)
			r.Mount("/dashboard", dashboardHandler.Routes())

			facultyHandler := handlers.NewFacultyHandler(a.Services.Faculty, a.Logger, errorHandler)
			r.Mount("/faculty", facultyHandler.Routes())
		})

		// Reload may convert a new year's workbook, so it gets the load
		// timeout instead of the request timeout.
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Dataset.LoadTimeout, a.Logger))

			datasetHandler := handlers.NewDatasetHandler(a.Services.Dataset, a.Logger, a.Metrics)
			r.Mount("/dataset", datasetHandler.Routes())
		})
	})
}

// setupStaticRoutes serves dashboard assets when a web directory is
// installed next to the binary. The API works without one.
func (a *Application) setupStaticRoutes(r chi.Router) {
	webDir := a.Config.GetWebDir()
	info, err := os.Stat(webDir)
	if err != nil || !info.IsDir() {
		a.Logger.Debug("Web directory not found, serving API only",
			slog.String("path", webDir))
		return
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5))
		r.Handle("/*", http.FileServer(http.Dir(webDir)))
	})

	a.Logger.Info("Serving web assets", slog.String("path", webDir))
}

// handleWebSocket upgrades reload-feed connections and hands them to the hub.
func (a *Application) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	a.Logger.InfoContext(r.Context(), "WebSocket upgrade request",
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("origin", r.Header.Get("Origin")))

	ws.ServeWS(a.WebSocketHub, w, r)
}

func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	origins := []string{
		fmt.Sprintf("http://localhost:%d", a.Config.Server.Port),
		fmt.Sprintf("http://127.0.0.1:%d", a.Config.Server.Port),
	}
	if a.Config.Logging.Development {
		origins = append(origins, "http://localhost:3000", "http://127.0.0.1:3000")
	}
	if a.Config.Security.EnableCORS && len(a.Config.Security.AllowedOrigins) > 0 {
		origins = append(origins, a.Config.Security.AllowedOrigins...)
	}

	return customMiddleware.CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
		Logger:         a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start runs the initial dataset load, starts the rescan schedule and
// brings the HTTP server up.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	if a.OTelProviders.Meter != nil {
		reg, err := infrastructure.ObserveConnectedClients(a.OTelProviders.Meter, a.WebSocketHub.ClientCount)
		if err != nil {
			a.Logger.WarnContext(ctx, "Client gauge registration failed", slog.String("error", err.Error()))
		} else {
			a.clientGauge = reg
		}

		collector, err := infrastructure.NewRuntimeCollector(a.OTelProviders.Meter, 30*time.Second)
		if err != nil {
			a.Logger.WarnContext(ctx, "Runtime metrics unavailable", slog.String("error", err.Error()))
		} else {
			a.runtime = collector
			go collector.Start(ctx)
		}
	}

	// Initial load. An empty data directory is not fatal: the server
	// starts anyway and readiness reports the missing dataset.
	loadCtx, cancelLoad := context.WithTimeout(ctx, a.Config.Dataset.LoadTimeout)
	if err := a.rescanDataset(infrastructure.EnsureTraceID(loadCtx), true); err != nil {
		a.Logger.WarnContext(ctx, "Starting without dataset",
			slog.String("error", err.Error()),
			slog.String("data_dir", a.Config.GetDataDir()))
	}
	cancelLoad()

	a.Cron.Start()

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))

	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	// Wait for a running rescan, bounded by the shutdown window.
	select {
	case <-a.Cron.Stop().Done():
	case <-shutdownCtx.Done():
		a.Logger.WarnContext(ctx, "Shutdown deadline reached while a rescan was running")
	}

	if a.clientGauge != nil {
		if err := a.clientGauge.Unregister(); err != nil {
			a.Logger.WarnContext(ctx, "Client gauge unregister failed", slog.String("error", err.Error()))
		}
	}
	if a.runtime != nil {
		a.runtime.Stop()
	}

	a.WebSocketHub.Shutdown()

	if a.Converter != nil {
		if err := a.Converter.Close(); err != nil {
			a.Logger.WarnContext(ctx, "Converter close failed", slog.String("error", err.Error()))
		}
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")

	// Last, so every shutdown line above still reaches the file.
	if err := infrastructure.CloseLogFile(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
		a.Logger.InfoContext(ctx, "Shutting down after server error")
	}

	// The run context may already be cancelled; shutdown gets its own.
	return a.Stop(context.Background())
}

// runScheduledRescan is the cron entry point.
func (a *Application) runScheduledRescan() {
	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Dataset.LoadTimeout)
	defer cancel()
	ctx = infrastructure.EnsureTraceID(ctx)

	if err := a.rescanDataset(ctx, false); err != nil {
		a.Logger.WarnContext(ctx, "Scheduled rescan failed", slog.String("error", err.Error()))
	}
}

// rescanDataset reloads the store when the data directory changed since
// the last scan. force bypasses the change check for the initial load.
func (a *Application) rescanDataset(ctx context.Context, force bool) error {
	sources, err := a.Discovery.FindYearFiles()
	if err != nil {
		return err
	}

	fp := fingerprintSources(sources)
	if !force && fp == a.lastScan && a.Store.Loaded() {
		a.Logger.DebugContext(ctx, "Rescan found no changes",
			slog.Int("workbooks", len(sources)))
		return nil
	}

	start := time.Now()
	status, err := a.Services.Dataset.Reload(ctx)

	rows := 0
	if err == nil && status.Snapshot != nil {
		rows = status.Snapshot.Rows
	}
	infrastructure.RecordDatasetLoad(ctx, a.Metrics, rows, time.Since(start), err)
	if err != nil {
		return err
	}

	infrastructure.RecordReloadBroadcast(ctx, a.Metrics, a.WebSocketHub.ClientCount())
	a.lastScan = fp
	return nil
}

// fingerprintSources condenses the discovered workbooks into a change
// marker. FindYearFiles sorts by year, so the result is stable.
func fingerprintSources(sources []files.SourceFile) string {
	var b strings.Builder
	for _, src := range sources {
		fmt.Fprintf(&b, "%d:%d:%d;", src.Year, src.WorkbookMod.UnixNano(), src.WorkbookSize)
	}
	return b.String()
}

// cronLogger adapts slog to the cron logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	args := append([]interface{}{"error", err}, keysAndValues...)
	l.logger.Error("cron: "+msg, args...)
}
