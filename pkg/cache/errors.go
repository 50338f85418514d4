package cache

import "fmt"

// Common inspector errors.
var (
	// ErrUnknownFormat is returned when a report format is not supported.
	ErrUnknownFormat = fmt.Errorf("unknown report format")

	// ErrProbePanic is recorded when a probe or purge action panics.
	ErrProbePanic = fmt.Errorf("backend panicked")
)
