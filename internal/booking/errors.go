package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the request referenced a salon, staff member, service or
	// appointment that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation covers malformed dates/times and requests that can
	// never succeed regardless of the schedule.
	ErrValidation = errors.New("validation error")

	// ErrZeroDuration rejects standalone bookings whose services sum to
	// zero minutes: they would hold a slot without occupying time.
	ErrZeroDuration = fmt.Errorf("%w: booking reserves no time", ErrValidation)

	// ErrCapability: the staff member cannot perform a requested service.
	ErrCapability = fmt.Errorf("%w: staff member cannot perform a requested service", ErrValidation)

	// ErrSlotConflict: the target interval is unavailable. Expected under
	// concurrent load; callers surface "pick another time", never retry
	// silently.
	ErrSlotConflict = errors.New("slot is no longer available")

	// ErrInvalidTransition guards the appointment status lifecycle.
	ErrInvalidTransition = errors.New("illegal status transition")
)
