package grpc_handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The service is described by hand over well-known protobuf types, so no
// generated stubs are needed:
//
//	service IDGenerator {
//	  rpc NextID(google.protobuf.Empty) returns (google.protobuf.Int64Value);
//	  rpc NextIDs(google.protobuf.UInt32Value) returns (stream google.protobuf.Int64Value);
//	  rpc DecodeID(google.protobuf.Int64Value) returns (google.protobuf.Struct);
//	}
const (
	ServiceName = "idgen.v1.IDGenerator"

	NextIDFullMethod   = "/" + ServiceName + "/NextID"
	NextIDsFullMethod  = "/" + ServiceName + "/NextIDs"
	DecodeIDFullMethod = "/" + ServiceName + "/DecodeID"
)

// IDGeneratorServer is the server API for the IDGenerator service.
type IDGeneratorServer interface {
	NextID(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
	NextIDs(*wrapperspb.UInt32Value, grpc.ServerStreamingServer[wrapperspb.Int64Value]) error
	DecodeID(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
}

// RegisterIDGeneratorServer registers srv on s.
func RegisterIDGeneratorServer(s grpc.ServiceRegistrar, srv IDGeneratorServer) {
	s.RegisterService(&IDGeneratorServiceDesc, srv)
}

var IDGeneratorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IDGeneratorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "NextID", Handler: nextIDHandler},
		{MethodName: "DecodeID", Handler: decodeIDHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "NextIDs", Handler: nextIDsHandler, ServerStreams: true},
	},
}

func nextIDHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDGeneratorServer).NextID(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: NextIDFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IDGeneratorServer).NextID(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func decodeIDHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDGeneratorServer).DecodeID(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DecodeIDFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IDGeneratorServer).DecodeID(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func nextIDsHandler(srv any, stream grpc.ServerStream) error {
	in := new(wrapperspb.UInt32Value)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(IDGeneratorServer).NextIDs(in, &grpc.GenericServerStream[wrapperspb.UInt32Value, wrapperspb.Int64Value]{ServerStream: stream})
}
