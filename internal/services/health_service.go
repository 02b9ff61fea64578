package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"skpg/internal/dataset"
	apperrors "skpg/internal/errors"
	"skpg/internal/websocket"
)

// HealthStatus is the full health report.
type HealthStatus struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Version   string        `json:"version"`
	Uptime    string        `json:"uptime"`
	Dataset   DatasetHealth `json:"dataset"`
	Clients   int           `json:"websocket_clients"`
}

// DatasetHealth summarizes the served snapshot for health checks.
type DatasetHealth struct {
	Loaded   bool       `json:"loaded"`
	Rows     int        `json:"rows,omitempty"`
	Years    []int      `json:"years,omitempty"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

// VersionInfo is the build identity.
type VersionInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Vendor    string `json:"vendor"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// HealthService answers liveness, readiness and version probes.
type HealthService struct {
	store     *dataset.Store
	hub       *websocket.Hub
	name      string
	version   string
	vendor    string
	startTime time.Time
	logger    *slog.Logger
}

// NewHealthService creates a health service. hub may be nil.
func NewHealthService(store *dataset.Store, hub *websocket.Hub, name, version, vendor string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		store:     store,
		hub:       hub,
		name:      name,
		version:   version,
		vendor:    vendor,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// Health reports overall health: degraded until a snapshot is served.
func (s *HealthService) Health(ctx context.Context) *HealthStatus {
	status := "healthy"
	ds := DatasetHealth{}

	if snap, err := s.store.Current(); err == nil {
		ds.Loaded = true
		ds.Rows = snap.Table.RowCount()
		ds.Years = snap.Years
		loadedAt := snap.LoadedAt
		ds.LoadedAt = &loadedAt
	} else {
		status = "degraded"
	}

	clients := 0
	if s.hub != nil {
		clients = s.hub.ClientCount()
	}

	return &HealthStatus{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Dataset:   ds,
		Clients:   clients,
	}
}

// Live reports process liveness. It never fails while the process runs.
func (s *HealthService) Live(ctx context.Context) error {
	return nil
}

// Ready reports whether the service can answer report queries.
func (s *HealthService) Ready(ctx context.Context) error {
	if !s.store.Loaded() {
		return apperrors.NewMissingDataError("no snapshot loaded yet", apperrors.ErrNoDataLoaded)
	}
	return nil
}

// Version reports the build identity.
func (s *HealthService) Version() VersionInfo {
	return VersionInfo{
		Name:      s.name,
		Version:   s.version,
		Vendor:    s.vendor,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
