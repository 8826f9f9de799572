package mcp

import (
	"time"

	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Workforce reads from the 7shifts API.
	Workforce driving.WorkforceService

	// Sync exposes the local sync history. Optional.
	Sync driving.SyncOrchestrator

	// Location is the zone bare dates in tool inputs are read in.
	// Defaults to the local zone.
	Location *time.Location
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Workforce == nil {
		return ErrMissingWorkforceService
	}
	return nil
}

func (p *Ports) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}
