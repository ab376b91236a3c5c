package idgen

import (
	"time"
)

// Clock abstracts the time source for the ID generator.
// Clocks handed to the shared generators must be safe for concurrent use.
type Clock interface {
	// Now returns the current time in milliseconds since the Unix epoch.
	Now() (int64, error)
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() (int64, error)

func (f ClockFunc) Now() (int64, error) {
	return f()
}

// SystemClock uses the local wall clock.
type SystemClock struct{}

func (SystemClock) Now() (int64, error) {
	ms := time.Now().UnixMilli()
	if ms < 0 {
		return 0, ErrTimeBeforeUnixEpoch
	}
	return ms, nil
}

// MonotonicClock reads the wall clock once and then advances with the
// process monotonic clock, so wall clock steps (NTP, manual changes) after
// construction cannot move it backwards.
type MonotonicClock struct {
	base  int64
	start time.Time
}

func NewMonotonicClock() (*MonotonicClock, error) {
	start := time.Now()
	base := start.UnixMilli()
	if base < 0 {
		return nil, ErrTimeBeforeUnixEpoch
	}
	return &MonotonicClock{base: base, start: start}, nil
}

func (c *MonotonicClock) Now() (int64, error) {
	return c.base + time.Since(c.start).Milliseconds(), nil
}
