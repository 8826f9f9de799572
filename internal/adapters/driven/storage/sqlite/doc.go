// Package sqlite stores synced 7shifts records in a local SQLite database.
//
// It uses modernc.org/sqlite, a pure Go driver, so the binary builds
// without CGO. One database backs three ports:
//
//   - WorkforceStore: companies, locations, users, shifts, punches,
//     receipts and report rows, each with its original JSON in a data column
//   - SyncRunStore: the history shown by '7shifts sync history'
//   - SchedulerStore: task state for '7shifts sync daemon'
//
// # Schema
//
// Migrations live in migrations/ as NNN_name.up.sql files and are applied
// in order on open. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default the database is ~/.7shifts/7shifts.db. The special path
// ":memory:" opens a private in-memory database.
package sqlite
