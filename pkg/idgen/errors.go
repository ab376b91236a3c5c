package idgen

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrWorkerIDOutOfRange  = fmt.Errorf("worker ID out of range [0, %d]", MaxWorkerID)
	ErrEpochInFuture       = errors.New("epoch is in the future")
	ErrTimeBeforeUnixEpoch = errors.New("system time is before the unix epoch")
	ErrClockUnavailable    = errors.New("clock unavailable")
	ErrClockMovedBackwards = errors.New("clock moved backwards")
	ErrTimestampOverflow   = errors.New("timestamp exceeds 41 bits")
	ErrNegativeID          = errors.New("id has the sign bit set")
)

// ClockMovedBackwardsError reports a clock reading older than the last
// timestamp the generator committed. Both values are milliseconds since the
// custom epoch.
type ClockMovedBackwardsError struct {
	Last     int64
	Observed int64
}

func (e *ClockMovedBackwardsError) Error() string {
	return fmt.Sprintf("%v: last %dms, observed %dms (retry in %s)",
		ErrClockMovedBackwards, e.Last, e.Observed, e.RetryAfter())
}

func (e *ClockMovedBackwardsError) Is(target error) bool {
	return target == ErrClockMovedBackwards
}

// RetryAfter is how long the clock must advance before generation can resume.
// A generator that has not committed a timestamp yet (Last == -1) still needs
// the clock to reach the custom epoch.
func (e *ClockMovedBackwardsError) RetryAfter() time.Duration {
	d := max(e.Last, 0) - e.Observed
	if d < 0 {
		d = 0
	}
	return time.Duration(d) * time.Millisecond
}
