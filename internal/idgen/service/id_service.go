package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anthanhphan/go-snowflake/internal/idgen/config"
	"github.com/anthanhphan/go-snowflake/internal/idgen/domain"
	"github.com/anthanhphan/go-snowflake/internal/idgen/port"
	"github.com/anthanhphan/go-snowflake/pkg/idgen"
	"github.com/anthanhphan/gosdk/logger"
)

// IDServiceImpl mints IDs from a shared generator. A clock regression is
// retried a bounded number of times, each after the regression has had time
// to heal; everything else is returned as is.
type IDServiceImpl struct {
	gen          port.IDGenerator
	maxBatch     int
	maxRetries   int
	maxRetryWait time.Duration
}

var _ port.IDService = (*IDServiceImpl)(nil)

func NewIDService(cfg config.GeneratorConfig, gen port.IDGenerator) *IDServiceImpl {
	maxBatch := cfg.MaxBatch
	if maxBatch <= 0 {
		maxBatch = 1
	}
	return &IDServiceImpl{
		gen:          gen,
		maxBatch:     maxBatch,
		maxRetries:   cfg.MaxClockRetries,
		maxRetryWait: time.Duration(cfg.MaxRetryWaitMS) * time.Millisecond,
	}
}

func (s *IDServiceImpl) NextID(ctx context.Context) (int64, error) {
	return s.next(ctx)
}

func (s *IDServiceImpl) NextIDs(ctx context.Context, n int) ([]int64, error) {
	if n < 1 || n > s.maxBatch {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", port.ErrInvalidBatchSize, n, s.maxBatch)
	}

	ids := make([]int64, 0, n)
	for len(ids) < n {
		id, err := s.next(ctx)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *IDServiceImpl) Decode(id int64) (*domain.IDInfo, error) {
	parts, err := idgen.Decompose(id, s.gen.Epoch())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrInvalidID, err)
	}

	return &domain.IDInfo{
		ID:        id,
		IDString:  domain.FormatID(id),
		UnixMilli: parts.UnixMilli,
		Time:      parts.Time().UTC(),
		WorkerID:  parts.WorkerID,
		Sequence:  parts.Sequence,
	}, nil
}

func (s *IDServiceImpl) next(ctx context.Context) (int64, error) {
	for attempt := 0; ; attempt++ {
		id, err := s.gen.Next(ctx)
		if err == nil {
			return id, nil
		}

		var backErr *idgen.ClockMovedBackwardsError
		if !errors.As(err, &backErr) || attempt >= s.maxRetries {
			return 0, err
		}

		wait := backErr.RetryAfter()
		if wait > s.maxRetryWait {
			logger.Errorw("Clock regression too large to wait out",
				"worker_id", s.gen.WorkerID(),
				"retry_after", wait.String(),
				"max_wait", s.maxRetryWait.String())
			return 0, err
		}

		logger.Warnw("Clock moved backwards, retrying",
			"worker_id", s.gen.WorkerID(),
			"attempt", attempt+1,
			"retry_after", wait.String())

		if err := sleepCtx(ctx, wait); err != nil {
			return 0, err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
