// Package messages defines Bubbletea message types for the sync progress view.
package messages

import (
	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// StatusPolled carries a snapshot of the running sync.
type StatusPolled struct {
	Status domain.SyncStatus
}

// SyncFinished is sent once the sync returns. Run is set even when Err
// is, unless the sync never started.
type SyncFinished struct {
	Run *domain.SyncRun
	Err error
}
