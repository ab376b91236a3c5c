package port

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-snowflake/internal/idgen/domain"
)

var (
	ErrInvalidBatchSize = errors.New("invalid batch size")
	ErrInvalidID        = errors.New("invalid id")
)

//go:generate mockgen -destination=../service/mocks/id_generator_mock.go -package=mocks -source=service.go

// IDGenerator is the generator the service mints IDs from.
type IDGenerator interface {
	Next(ctx context.Context) (int64, error)
	WorkerID() int64
	Epoch() int64
}

// IDService defines the operations exposed by the inbound adapters.
type IDService interface {
	// NextID returns one new ID.
	NextID(ctx context.Context) (int64, error)

	// NextIDs returns n new IDs in generation order.
	NextIDs(ctx context.Context, n int) ([]int64, error)

	// Decode splits an ID generated with this service's epoch.
	Decode(id int64) (*domain.IDInfo, error)
}
