package driving

import (
	"context"

	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
)

// WorkforceService exposes the 7shifts API to the CLI and MCP server.
// Required parameters are checked before any request is sent.
type WorkforceService interface {
	driven.WorkforceAPI

	// DefaultCompanyID returns the configured company, or the first
	// company the token can see when none is configured.
	DefaultCompanyID(ctx context.Context) (int64, error)
}
