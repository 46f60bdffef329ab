package errors

import (
	"errors"
	"fmt"
)

// ErrNotFound is the base sentinel for missing entities. The per-entity
// sentinels below wrap it so callers can classify with errors.Is while the
// messages stay entity-specific.
var (
	ErrNotFound              = errors.New("not found")
	ErrContractorNotFound    = fmt.Errorf("contractor %w", ErrNotFound)
	ErrJobNotFound           = fmt.Errorf("job %w", ErrNotFound)
	ErrShortlistNotFound     = fmt.Errorf("shortlist %w", ErrNotFound)
	ErrShortlistItemNotFound = fmt.Errorf("shortlist item %w", ErrNotFound)

	ErrInvalidInput = errors.New("invalid input")

	// ErrContractorUnavailable is returned when a booking loses the race
	// for a contractor whose availability already flipped to unavailable.
	ErrContractorUnavailable = errors.New("contractor unavailable")
)
