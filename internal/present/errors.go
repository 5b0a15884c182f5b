package present

import (
	"errors"
	"fmt"
)

// Surface acquisition failures. Backends wrap their native errors with one of
// these so the loop can classify them with errors.Is.
var (
	ErrSurfaceLost     = errors.New("surface lost")
	ErrSurfaceOutdated = errors.New("surface outdated")
	ErrSurfaceTimeout  = errors.New("surface acquire timed out")
	ErrOutOfMemory     = errors.New("out of memory")
)

// ErrTerminated is returned once the loop has stopped for good.
var ErrTerminated = errors.New("presentation loop terminated")

// ErrNotConfigured is returned when rendering before Initialize.
var ErrNotConfigured = errors.New("surface is not configured")

// Outcome is what the loop does about a failed frame acquisition.
type Outcome int

const (
	// OutcomeContinue skips the frame and carries on.
	OutcomeContinue Outcome = iota
	// OutcomeReconfigure reconfigures the surface at its current size.
	OutcomeReconfigure
	// OutcomeSkip logs a transient failure and carries on.
	OutcomeSkip
	// OutcomeTerminate stops the loop.
	OutcomeTerminate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReconfigure:
		return "reconfigure"
	case OutcomeSkip:
		return "skip"
	case OutcomeTerminate:
		return "terminate"
	default:
		return "continue"
	}
}

// Classify maps an acquisition error onto the loop's recovery action.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeContinue
	case errors.Is(err, ErrSurfaceLost), errors.Is(err, ErrSurfaceOutdated):
		return OutcomeReconfigure
	case errors.Is(err, ErrSurfaceTimeout):
		return OutcomeSkip
	case errors.Is(err, ErrOutOfMemory):
		return OutcomeTerminate
	default:
		return OutcomeContinue
	}
}

func terminated(cause error) error {
	return fmt.Errorf("%w: %w", ErrTerminated, cause)
}
