package grpc_handler

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/anthanhphan/go-snowflake/internal/idgen/config"
	"github.com/anthanhphan/go-snowflake/internal/idgen/port"
	"github.com/anthanhphan/go-snowflake/internal/idgen/service"
	"github.com/anthanhphan/go-snowflake/internal/idgen/service/mocks"
	"github.com/anthanhphan/go-snowflake/pkg/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const testEpoch int64 = 1_704_067_200_000

func startServer(t *testing.T, svc port.IDService) *Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterIDGeneratorServer(srv, NewServer(svc))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewClient(conn)
}

func realService(t *testing.T, workerID int64) port.IDService {
	t.Helper()
	gen, err := idgen.NewSharedAsyncGenerator(workerID, testEpoch)
	require.NoError(t, err)
	cfg := config.DefaultConfig().Generator
	cfg.MaxBatch = 100
	return service.NewIDService(cfg, gen)
}

func TestServer_RoundTrip(t *testing.T) {
	client := startServer(t, realService(t, 17))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := client.NextID(ctx)
	require.NoError(t, err)
	_, worker, _ := idgen.Decode(id)
	assert.Equal(t, int64(17), worker)

	ids, err := client.NextIDs(ctx, 50)
	require.NoError(t, err)
	require.Len(t, ids, 50)
	assert.Greater(t, ids[0], id)
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}

	decoded, err := client.DecodeID(ctx, id)
	require.NoError(t, err)
	fields := decoded.AsMap()
	assert.EqualValues(t, 17, fields["worker_id"])
	assert.NotEmpty(t, fields["time"])
}

func TestServer_ErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(svc *mocks.MockIDService)
		call     func(ctx context.Context, c *Client) error
		wantCode codes.Code
	}{
		{
			name: "batch too large",
			setup: func(svc *mocks.MockIDService) {
				svc.EXPECT().NextIDs(gomock.Any(), 5000).Return(nil, port.ErrInvalidBatchSize)
			},
			call: func(ctx context.Context, c *Client) error {
				_, err := c.NextIDs(ctx, 5000)
				return err
			},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "clock moved backwards",
			setup: func(svc *mocks.MockIDService) {
				svc.EXPECT().NextID(gomock.Any()).Return(int64(0), &idgen.ClockMovedBackwardsError{Last: 3, Observed: 1})
			},
			call: func(ctx context.Context, c *Client) error {
				_, err := c.NextID(ctx)
				return err
			},
			wantCode: codes.Unavailable,
		},
		{
			name: "negative id",
			setup: func(svc *mocks.MockIDService) {
				svc.EXPECT().Decode(int64(-1)).Return(nil, port.ErrInvalidID)
			},
			call: func(ctx context.Context, c *Client) error {
				_, err := c.DecodeID(ctx, -1)
				return err
			},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "internal",
			setup: func(svc *mocks.MockIDService) {
				svc.EXPECT().NextID(gomock.Any()).Return(int64(0), errors.New("boom"))
			},
			call: func(ctx context.Context, c *Client) error {
				_, err := c.NextID(ctx)
				return err
			},
			wantCode: codes.Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockIDService(ctrl)
			tt.setup(svc)
			client := startServer(t, svc)

			err := tt.call(context.Background(), client)
			assert.Equal(t, tt.wantCode, status.Code(err), "err: %v", err)
		})
	}
}

func TestNormalizeRPCErr(t *testing.T) {
	t.Run("grpc canceled to context canceled", func(t *testing.T) {
		err := normalizeRPCErr(context.Background(), status.Error(codes.Canceled, "canceled"))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("eof with canceled context to context canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, normalizeRPCErr(ctx, io.EOF), context.Canceled)
	})

	t.Run("unavailable stays failure", func(t *testing.T) {
		err := normalizeRPCErr(context.Background(), status.Error(codes.Unavailable, "unavailable"))
		assert.Equal(t, codes.Unavailable, status.Code(err))
	})
}
