package services

import (
	"context"
	"log/slog"

	"skpg/internal/dataset"
	"skpg/internal/websocket"
)

// DatasetStatus reports what the store currently serves.
type DatasetStatus struct {
	Loaded   bool                 `json:"loaded"`
	Snapshot *SnapshotRef         `json:"snapshot,omitempty"`
	Years    []int                `json:"years"`
	Sources  []dataset.SourceInfo `json:"sources,omitempty"`
}

// DatasetService exposes snapshot state and triggers reloads.
type DatasetService struct {
	store  *dataset.Store
	hub    *websocket.Hub
	logger *slog.Logger
}

// NewDatasetService creates a dataset service. hub may be nil when no
// websocket clients exist (the processor CLI).
func NewDatasetService(store *dataset.Store, hub *websocket.Hub, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{
		store:  store,
		hub:    hub,
		logger: logger.With(slog.String("component", "dataset_service")),
	}
}

// ConnectedClients reports how many websocket clients hear announcements.
func (s *DatasetService) ConnectedClients() int {
	if s.hub == nil {
		return 0
	}
	return s.hub.ClientCount()
}

// Status reports the current snapshot without failing when nothing is
// loaded yet; the zero state is a valid answer here.
func (s *DatasetService) Status(ctx context.Context) *DatasetStatus {
	snap, err := s.store.Current()
	if err != nil {
		return &DatasetStatus{Loaded: false, Years: []int{}}
	}

	ref := snapshotRef(snap)
	return &DatasetStatus{
		Loaded:   true,
		Snapshot: &ref,
		Years:    snap.Years,
		Sources:  snap.Sources,
	}
}

// Reload rescans the data directory, publishes the new snapshot and
// announces it to websocket clients.
func (s *DatasetService) Reload(ctx context.Context) (*DatasetStatus, error) {
	snap, err := s.store.Reload(ctx)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.AnnounceDatasetUpdated(ctx, snap.ID, snap.Years, snap.Table.RowCount())
	}

	s.logger.InfoContext(ctx, "dataset reloaded",
		slog.String("snapshot_id", snap.ID),
		slog.Int("rows", snap.Table.RowCount()))

	return s.Status(ctx), nil
}
