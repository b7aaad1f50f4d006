package scheduling

import (
	"context"
	"errors"
	"fmt"
)

// Booking error taxonomy. Validation errors are detected before any
// mutation; ErrSlotConflict means the commit lost the race for the interval.
var (
	ErrUnknownClient  = errors.New("unknown client")
	ErrUnknownService = errors.New("unknown service")
	// ErrInvalidSlot covers misaligned or out-of-hours start times.
	ErrInvalidSlot  = errors.New("invalid slot")
	ErrSlotConflict = errors.New("slot already taken")
	// Cancellation errors.
	ErrNotFound         = errors.New("appointment not found")
	ErrAlreadyCancelled = errors.New("appointment already cancelled")
	// Storage errors. ErrStorageTimeout is transient and retryable;
	// ErrStorageUnavailable is fatal for the current request.
	ErrStorageTimeout     = errors.New("storage timeout")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// storageErr classifies a repository failure. A deadline hit is surfaced as
// a retryable timeout, everything else as unavailable; neither is ever
// swallowed.
func storageErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrStorageTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
