package idgen

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// SharedGenerator is safe for concurrent use. Callers are serialized by a
// mutex that stays held while an exhausted millisecond is waited out.
type SharedGenerator struct {
	mu sync.Mutex
	s  *state
}

func NewSharedGenerator(workerID, epoch int64, opts ...Option) (*SharedGenerator, error) {
	s, err := newState(workerID, epoch, opts)
	if err != nil {
		return nil, err
	}
	return &SharedGenerator{s: s}, nil
}

// Next generates the next unique ID.
func (g *SharedGenerator) Next() (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.s.next(context.Background(), sleepWait)
}

func (g *SharedGenerator) WorkerID() int64 { return g.s.workerID }
func (g *SharedGenerator) Epoch() int64    { return g.s.epoch }

// SharedAsyncGenerator is safe for concurrent use and cancellable. Unlike
// SharedGenerator it gives up its lock while waiting for the next
// millisecond, so a waiting caller never holds up the others.
type SharedAsyncGenerator struct {
	// sem is a one-slot lock whose acquisition can be abandoned via ctx.
	sem *semaphore.Weighted
	s   *state
}

func NewSharedAsyncGenerator(workerID, epoch int64, opts ...Option) (*SharedAsyncGenerator, error) {
	s, err := newState(workerID, epoch, opts)
	if err != nil {
		return nil, err
	}
	return &SharedAsyncGenerator{sem: semaphore.NewWeighted(1), s: s}, nil
}

// Next generates the next unique ID. It returns ctx.Err() if ctx ends while
// acquiring the lock or waiting for the next millisecond.
func (g *SharedAsyncGenerator) Next(ctx context.Context) (int64, error) {
	for {
		if err := g.sem.Acquire(ctx, 1); err != nil {
			return 0, err
		}
		id, exhausted, err := g.s.step()
		last := g.s.lastTimestamp
		g.sem.Release(1)

		if !exhausted {
			return id, err
		}
		if err := g.s.awaitPast(ctx, last, suspendWait); err != nil {
			return 0, err
		}
	}
}

func (g *SharedAsyncGenerator) WorkerID() int64 { return g.s.workerID }
func (g *SharedAsyncGenerator) Epoch() int64    { return g.s.epoch }
