// Package tui renders a live progress view while a sync runs in a terminal.
// It is a driving adapter; the CLI falls back to plain progress lines when
// stdout is not a terminal.
package tui

import (
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driving"
)

// Ports aggregates the driving ports the progress view needs.
type Ports struct {
	// Sync runs the sync and reports its status.
	Sync driving.SyncOrchestrator
}

// NewPorts creates a new Ports aggregate.
func NewPorts(sync driving.SyncOrchestrator) *Ports {
	return &Ports{Sync: sync}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Sync == nil {
		return ErrMissingSyncOrchestrator
	}
	return nil
}
