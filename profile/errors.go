package profile

import "errors"

var (
	// ErrNoDives indicates a plan without dives.
	ErrNoDives = errors.New("profile: plan has no dives")

	// ErrNoSegments indicates a dive without segments.
	ErrNoSegments = errors.New("profile: dive has no segments")

	// ErrSurfaceInterval indicates a negative surface interval.
	ErrSurfaceInterval = errors.New("profile: surface interval must be non-negative")
)
