package service

import "errors"

// Common service-level errors. Store-layer sentinels (store.ErrNotFound,
// store.ErrDuplicate and their entity-specific variants) pass through the
// services wrapped; these cover failures that originate in the services
// themselves.
var (
	// ErrValidation indicates malformed or missing required input, caught
	// before any persistence happens.
	ErrValidation = errors.New("validation failed")

	// ErrInternal indicates an unexpected persistence or logic error. It is
	// always logged with detail and surfaced to callers as a generic message.
	ErrInternal = errors.New("internal error")
)
