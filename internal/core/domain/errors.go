package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates a required service or setting is missing.
	ErrNotConfigured = errors.New("not configured")

	// ErrNoToken indicates no API access token could be found.
	ErrNoToken = errors.New("no access token: set ACCESS_TOKEN_7SHIFTS or run '7shifts settings token'")

	// ErrSyncInProgress indicates a sync is already running.
	ErrSyncInProgress = errors.New("sync in progress")

	// ErrUnknownResource indicates a sync resource name is not recognised.
	ErrUnknownResource = errors.New("unknown resource")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
