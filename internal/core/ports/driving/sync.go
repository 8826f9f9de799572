package driving

import (
	"context"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// SyncOrchestrator copies 7shifts records into the local store.
type SyncOrchestrator interface {
	// Sync runs one sync and returns its history record. The record is
	// returned even when the sync fails part way through.
	Sync(ctx context.Context, req domain.SyncRequest) (*domain.SyncRun, error)

	// Status returns a snapshot of the sync in progress, if any.
	Status() domain.SyncStatus

	// History returns recent runs, newest first.
	History(ctx context.Context, limit int) ([]domain.SyncRun, error)
}
