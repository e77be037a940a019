// Package api defines the SmallFS inspection service. Requests and
// responses are protobuf well-known types, so the service needs no
// generated message code; see messages.go for their field layout.
package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	SmallFS_GetAttr_FullMethodName   = "/smallfs.v1.SmallFS/GetAttr"
	SmallFS_ReadDir_FullMethodName   = "/smallfs.v1.SmallFS/ReadDir"
	SmallFS_Read_FullMethodName      = "/smallfs.v1.SmallFS/Read"
	SmallFS_ListXattr_FullMethodName = "/smallfs.v1.SmallFS/ListXattr"
	SmallFS_GetXattr_FullMethodName  = "/smallfs.v1.SmallFS/GetXattr"
)

// SmallFSClient is the client API for the SmallFS service.
type SmallFSClient interface {
	// GetAttr returns the attributes of a path.
	GetAttr(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	// ReadDir lists a directory.
	ReadDir(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error)
	// Read opens a file read-only and reads a window of it.
	Read(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	// ListXattr lists the extended attribute names of a path.
	ListXattr(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error)
	// GetXattr returns one extended attribute value.
	GetXattr(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type smallFSClient struct {
	cc grpc.ClientConnInterface
}

// NewSmallFSClient returns a client for the SmallFS service on cc.
func NewSmallFSClient(cc grpc.ClientConnInterface) SmallFSClient {
	return &smallFSClient{cc}
}

func (c *smallFSClient) GetAttr(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SmallFS_GetAttr_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *smallFSClient) ReadDir(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, SmallFS_ReadDir_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *smallFSClient) Read(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, SmallFS_Read_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *smallFSClient) ListXattr(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, SmallFS_ListXattr_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *smallFSClient) GetXattr(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, SmallFS_GetXattr_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// SmallFSServer is the server API for the SmallFS service.
// Implementations must embed UnimplementedSmallFSServer.
type SmallFSServer interface {
	GetAttr(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ReadDir(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
	Read(context.Context, *structpb.Struct) (*wrapperspb.BytesValue, error)
	ListXattr(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
	GetXattr(context.Context, *structpb.Struct) (*wrapperspb.BytesValue, error)
	mustEmbedUnimplementedSmallFSServer()
}

// UnimplementedSmallFSServer answers every method with codes.Unimplemented.
type UnimplementedSmallFSServer struct{}

func (UnimplementedSmallFSServer) GetAttr(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAttr not implemented")
}
func (UnimplementedSmallFSServer) ReadDir(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReadDir not implemented")
}
func (UnimplementedSmallFSServer) Read(context.Context, *structpb.Struct) (*wrapperspb.BytesValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Read not implemented")
}
func (UnimplementedSmallFSServer) ListXattr(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListXattr not implemented")
}
func (UnimplementedSmallFSServer) GetXattr(context.Context, *structpb.Struct) (*wrapperspb.BytesValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetXattr not implemented")
}
func (UnimplementedSmallFSServer) mustEmbedUnimplementedSmallFSServer() {}

// RegisterSmallFSServer registers srv on s.
func RegisterSmallFSServer(s grpc.ServiceRegistrar, srv SmallFSServer) {
	s.RegisterService(&SmallFS_ServiceDesc, srv)
}

func _SmallFS_GetAttr_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SmallFSServer).GetAttr(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SmallFS_GetAttr_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SmallFSServer).GetAttr(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _SmallFS_ReadDir_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SmallFSServer).ReadDir(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SmallFS_ReadDir_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SmallFSServer).ReadDir(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _SmallFS_Read_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SmallFSServer).Read(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SmallFS_Read_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SmallFSServer).Read(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _SmallFS_ListXattr_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SmallFSServer).ListXattr(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SmallFS_ListXattr_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SmallFSServer).ListXattr(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _SmallFS_GetXattr_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SmallFSServer).GetXattr(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SmallFS_GetXattr_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SmallFSServer).GetXattr(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// SmallFS_ServiceDesc is the grpc.ServiceDesc for the SmallFS service.
var SmallFS_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "smallfs.v1.SmallFS",
	HandlerType: (*SmallFSServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetAttr", Handler: _SmallFS_GetAttr_Handler},
		{MethodName: "ReadDir", Handler: _SmallFS_ReadDir_Handler},
		{MethodName: "Read", Handler: _SmallFS_Read_Handler},
		{MethodName: "ListXattr", Handler: _SmallFS_ListXattr_Handler},
		{MethodName: "GetXattr", Handler: _SmallFS_GetXattr_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "smallfs/v1/smallfs.proto",
}
