package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned before any work starts when the inputs
	// cannot describe a playable board or a valid scan.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGenerationFailed is returned when a seed produced a board on which a
	// required object has no legal square. Retrying with another seed is the
	// expected response.
	ErrGenerationFailed = errors.New("generation failed")
)

// GenerationError reports which phase of which seed could not complete.
type GenerationError struct {
	Seed   int64
	Phase  string
	Reason string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: seed %d, %s: %s", e.Seed, e.Phase, e.Reason)
}

// Unwrap lets errors.Is match ErrGenerationFailed.
func (e *GenerationError) Unwrap() error {
	return ErrGenerationFailed
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
