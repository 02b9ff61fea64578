package dataset

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	apperrors "skpg/internal/errors"
)

// Store hands out the current snapshot to readers and serializes reloads.
type Store struct {
	loader *Loader
	logger *slog.Logger

	mu        sync.RWMutex
	snap      *Snapshot
	reloading atomic.Bool
}

func NewStore(loader *Loader, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		loader: loader,
		logger: logger.With(slog.String("component", "dataset_store")),
	}
}

// Current returns the published snapshot. Callers must treat it as
// read-only.
func (s *Store) Current() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, apperrors.NewMissingDataError("no survey data loaded", apperrors.ErrNoDataLoaded)
	}
	return s.snap, nil
}

// Loaded reports whether a snapshot has been published.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap != nil
}

// Reload builds a fresh snapshot and publishes it. Only one reload runs at
// a time; a second caller gets ErrReloadInProgress instead of queueing.
// Readers keep the previous snapshot until the new one is published, and a
// failed reload leaves the previous snapshot in place.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	if !s.reloading.CompareAndSwap(false, true) {
		return nil, apperrors.ErrReloadInProgress
	}
	defer s.reloading.Store(false)

	snap, err := s.loader.Load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "dataset reload failed",
			slog.String("error", err.Error()))
		return nil, err
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	return snap, nil
}
