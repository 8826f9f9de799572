// Package memory provides in-memory implementations of the driven storage
// ports. They back `sync --dry-run` and the service tests.
package memory
