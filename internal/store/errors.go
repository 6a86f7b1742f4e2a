package store

import "errors"

// Store errors.
var (
	// ErrSchemaMissing indicates a store opened with auto-detected
	// columns whose backing file has no leading "#col;col" header line.
	ErrSchemaMissing = errors.New("schema missing: no column header in backing file")

	// ErrNotFound indicates no record matched a by-id lookup.
	ErrNotFound = errors.New("record not found")

	errLockTimeout  = errors.New("lock timeout")
	errLockFileOpen = errors.New("failed to open lock file")
)
