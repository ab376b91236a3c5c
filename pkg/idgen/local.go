package idgen

import "context"

// LocalGenerator is a single-owner generator. It does no locking: the owner
// must not call Next from more than one goroutine at a time.
type LocalGenerator struct {
	s *state
}

func NewLocalGenerator(workerID, epoch int64, opts ...Option) (*LocalGenerator, error) {
	s, err := newState(workerID, epoch, opts)
	if err != nil {
		return nil, err
	}
	return &LocalGenerator{s: s}, nil
}

// Next returns the next ID, sleeping through exhausted milliseconds.
func (g *LocalGenerator) Next() (int64, error) {
	return g.s.next(context.Background(), sleepWait)
}

func (g *LocalGenerator) WorkerID() int64 { return g.s.workerID }
func (g *LocalGenerator) Epoch() int64    { return g.s.epoch }

// LocalAsyncGenerator is the single-owner generator whose overflow wait
// honours context cancellation. Same ownership rules as LocalGenerator.
type LocalAsyncGenerator struct {
	s *state
}

func NewLocalAsyncGenerator(workerID, epoch int64, opts ...Option) (*LocalAsyncGenerator, error) {
	s, err := newState(workerID, epoch, opts)
	if err != nil {
		return nil, err
	}
	return &LocalAsyncGenerator{s: s}, nil
}

// Next returns the next ID. If ctx ends while waiting for the next
// millisecond, ctx.Err() is returned and the generator state is unchanged.
func (g *LocalAsyncGenerator) Next(ctx context.Context) (int64, error) {
	return g.s.next(ctx, suspendWait)
}

func (g *LocalAsyncGenerator) WorkerID() int64 { return g.s.workerID }
func (g *LocalAsyncGenerator) Epoch() int64    { return g.s.epoch }
