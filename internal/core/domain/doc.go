// Package domain defines the core business entities for go7shifts.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Company, Location, Department, Role: the organisation tree
//   - User, Wage, Assignments: people and what they are paid
//   - Shift, TimePunch: scheduled and worked time
//   - Event, Receipt: calendar events and POS sales
//   - DailySalesAndLabor, HoursAndWagesReport: reports
//   - SyncWindow, SyncRun: local persistence bookkeeping
//
// Entities mirror the 7shifts API JSON objects. Each keeps the raw JSON
// it was decoded from so unnamed fields survive a round trip to storage.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
