package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIConfigured  = errors.New("no API endpoint configured, use 'ybcloud config set api <url>' or --api")
	ErrUnknownConfigKey = errors.New("unknown configuration key")
	ErrInvalidOutput    = errors.New("invalid output format, expected table, json or yaml")
)

// Required field errors.
var (
	ErrAccountRequired = errors.New("--account flag is required")
	ErrTrackRequired   = errors.New("--track flag is required")
	ErrUUIDRequired    = errors.New("--uuid flag is required")
)

// Validation errors.
var (
	ErrInvalidPageSize   = errors.New("page size must be between 1 and 1000")
	ErrInvalidEntityType = errors.New("invalid value for --entity-type")
	ErrInvalidTaskType   = errors.New("invalid value for --task-type")
)
