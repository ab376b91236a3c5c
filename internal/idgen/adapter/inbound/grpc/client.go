package grpc_handler

import (
	"context"
	"errors"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls a remote IDGenerator service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) NextID(ctx context.Context) (int64, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, NextIDFullMethod, &emptypb.Empty{}, out); err != nil {
		return 0, normalizeRPCErr(ctx, err)
	}
	return out.GetValue(), nil
}

func (c *Client) NextIDs(ctx context.Context, n uint32) ([]int64, error) {
	cs, err := c.cc.NewStream(ctx, &IDGeneratorServiceDesc.Streams[0], NextIDsFullMethod)
	if err != nil {
		return nil, normalizeRPCErr(ctx, err)
	}
	stream := &grpc.GenericClientStream[wrapperspb.UInt32Value, wrapperspb.Int64Value]{ClientStream: cs}
	if err := stream.SendMsg(wrapperspb.UInt32(n)); err != nil {
		return nil, normalizeRPCErr(ctx, err)
	}
	if err := stream.CloseSend(); err != nil {
		return nil, normalizeRPCErr(ctx, err)
	}

	ids := make([]int64, 0, n)
	for {
		msg, err := stream.Recv()
		if err == io.EOF {
			return ids, nil
		}
		if err != nil {
			return nil, normalizeRPCErr(ctx, err)
		}
		ids = append(ids, msg.GetValue())
	}
}

func (c *Client) DecodeID(ctx context.Context, id int64) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DecodeIDFullMethod, wrapperspb.Int64(id), out); err != nil {
		return nil, normalizeRPCErr(ctx, err)
	}
	return out, nil
}

// normalizeRPCErr maps transport-level cancellation back to context errors.
func normalizeRPCErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil && (errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled) {
		return ctxErr
	}
	switch status.Code(err) {
	case codes.Canceled:
		return context.Canceled
	case codes.DeadlineExceeded:
		return context.DeadlineExceeded
	}
	return err
}
