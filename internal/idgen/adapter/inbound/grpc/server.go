package grpc_handler

import (
	"context"
	"errors"
	"time"

	"github.com/anthanhphan/go-snowflake/internal/idgen/port"
	"github.com/anthanhphan/go-snowflake/pkg/idgen"
	"github.com/anthanhphan/gosdk/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Server implements the gRPC IDGenerator service.
type Server struct {
	service port.IDService
}

var _ IDGeneratorServer = (*Server)(nil)

// NewServer creates a new gRPC server.
func NewServer(service port.IDService) *Server {
	return &Server{
		service: service,
	}
}

func (s *Server) NextID(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	id, err := s.service.NextID(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.Int64(id), nil
}

// NextIDs streams the requested number of IDs in generation order.
func (s *Server) NextIDs(req *wrapperspb.UInt32Value, stream grpc.ServerStreamingServer[wrapperspb.Int64Value]) error {
	ids, err := s.service.NextIDs(stream.Context(), int(req.GetValue()))
	if err != nil {
		return toStatus(err)
	}

	for _, id := range ids {
		if err := stream.Send(wrapperspb.Int64(id)); err != nil {
			logger.Warnw("Failed to stream id", "error", err.Error())
			return err
		}
	}
	return nil
}

func (s *Server) DecodeID(_ context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	info, err := s.service.Decode(req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}

	out, err := structpb.NewStruct(map[string]any{
		"id_str":    info.IDString,
		"unix_ms":   info.UnixMilli,
		"time":      info.Time.Format(time.RFC3339Nano),
		"worker_id": info.WorkerID,
		"sequence":  info.Sequence,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode decoded id: %v", err)
	}
	return out, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, port.ErrInvalidBatchSize), errors.Is(err, port.ErrInvalidID):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, idgen.ErrClockMovedBackwards), errors.Is(err, idgen.ErrClockUnavailable):
		logger.Warnw("ID generation unavailable", "error", err.Error())
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		logger.Errorw("ID generation failed", "error", err.Error())
		return status.Error(codes.Internal, err.Error())
	}
}
