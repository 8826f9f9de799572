// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - WorkforceAPI: the 7shifts REST API (internal/connectors/sevenshifts)
//   - TokenProvider: bearer token lookup
//   - ConfigStore: application configuration
//
// # Sync Interfaces
//
// Only needed by the sync command and daemon:
//
//   - WorkforceStore: upserts of fetched records
//   - SyncRunStore: sync history
//   - SchedulerStore: daemon task state
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
