// Package mcp provides an MCP (Model Context Protocol) server adapter for
// 7shifts. It lets AI assistants read companies, users, schedules, time
// punches and sales through read-only tools.
package mcp

import "errors"

// ErrMissingWorkforceService is returned when the workforce service is not provided.
var ErrMissingWorkforceService = errors.New("mcp: workforce service is required")
