package idgen

import (
	"context"
	"time"
)

// pollInterval is how often a waiting generator re-reads the clock while the
// sequence space of the current millisecond is exhausted.
const pollInterval = 100 * time.Microsecond

// Option configures a generator.
type Option func(*options)

type options struct {
	clock Clock
}

// WithClock replaces the default SystemClock.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// state is the mutable core shared by every generator flavour. It is not
// safe for concurrent use; the wrappers decide how access is serialized.
type state struct {
	clock    Clock
	epoch    int64
	workerID int64

	// lastTimestamp is milliseconds since epoch of the last committed ID,
	// -1 until the first ID is generated.
	lastTimestamp int64
	sequence      int64
}

func newState(workerID, epoch int64, opts []Option) (*state, error) {
	if workerID < 0 || workerID > MaxWorkerID {
		return nil, ErrWorkerIDOutOfRange
	}

	o := options{clock: SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}

	now, err := o.clock.Now()
	if err != nil {
		return nil, err
	}
	if epoch > now {
		return nil, ErrEpochInFuture
	}

	return &state{
		clock:         o.clock,
		epoch:         epoch,
		workerID:      workerID,
		lastTimestamp: -1,
		sequence:      0,
	}, nil
}

// step runs one attempt of the generation algorithm. When the sequence space
// of lastTimestamp is used up it returns exhausted without touching the
// state; the caller must wait for the clock to pass lastTimestamp and retry.
func (s *state) step() (id int64, exhausted bool, err error) {
	now, err := s.clock.Now()
	if err != nil {
		return 0, false, err
	}
	ts := now - s.epoch

	switch {
	case ts < 0 || ts < s.lastTimestamp:
		return 0, false, &ClockMovedBackwardsError{Last: s.lastTimestamp, Observed: ts}
	case ts == s.lastTimestamp:
		if s.sequence >= MaxSequence {
			return 0, true, nil
		}
		s.sequence++
	default:
		if ts > MaxTimestamp {
			return 0, false, ErrTimestampOverflow
		}
		s.lastTimestamp = ts
		s.sequence = 0
	}

	return Encode(s.lastTimestamp, s.workerID, s.sequence), false, nil
}

// waitFunc pauses the caller for roughly d.
type waitFunc func(ctx context.Context, d time.Duration) error

// sleepWait parks the calling goroutine unconditionally.
func sleepWait(_ context.Context, d time.Duration) error {
	time.Sleep(d)
	return nil
}

// suspendWait parks the calling goroutine until d elapses or ctx is done.
func suspendWait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// awaitPast returns once the clock has left the millisecond last. A reading
// older than last also ends the wait so that step can report the regression.
// It only reads immutable fields and may run without the generator lock.
func (s *state) awaitPast(ctx context.Context, last int64, wait waitFunc) error {
	for {
		now, err := s.clock.Now()
		if err != nil {
			return err
		}
		if now-s.epoch != last {
			return nil
		}
		if err := wait(ctx, pollInterval); err != nil {
			return err
		}
	}
}

// next runs step until it yields an ID, waiting out exhausted milliseconds.
// Used by the flavours that keep exclusive access across the wait.
func (s *state) next(ctx context.Context, wait waitFunc) (int64, error) {
	for {
		id, exhausted, err := s.step()
		if !exhausted {
			return id, err
		}
		if err := s.awaitPast(ctx, s.lastTimestamp, wait); err != nil {
			return 0, err
		}
	}
}
