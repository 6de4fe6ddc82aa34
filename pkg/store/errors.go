package store

import "errors"

// Error kinds. Every error returned by Gateway wraps exactly one of
// ErrNotFound, ErrStorageRead, ErrStorageWrite or ErrSettingsCorrupt, plus the
// underlying cause when there is one.
var (
	// ErrNotFound means the read target does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrStorageRead is any other failure while reading or listing.
	ErrStorageRead = errors.New("storage read failed")
	// ErrStorageWrite is any failure while writing or renaming.
	ErrStorageWrite = errors.New("storage write failed")
	// ErrSettingsCorrupt means the settings file exists but does not parse.
	ErrSettingsCorrupt = errors.New("settings file corrupt")
	// ErrInvalidFilename rejects names that are not a single local path element.
	ErrInvalidFilename = errors.New("invalid filename")
)
