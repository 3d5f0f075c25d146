package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "vagabond.api.v1alpha1.PowerRollService"

// Full method names
const (
	PowerRollService_RollPower_FullMethodName      = "/" + ServiceName + "/RollPower"
	PowerRollService_SpendHeroToken_FullMethodName = "/" + ServiceName + "/SpendHeroToken"
	PowerRollService_GetResources_FullMethodName   = "/" + ServiceName + "/GetResources"
	PowerRollService_UpdateMalice_FullMethodName   = "/" + ServiceName + "/UpdateMalice"
	PowerRollService_SetHeroTokens_FullMethodName  = "/" + ServiceName + "/SetHeroTokens"
)

// PowerRollServiceServer is the server API. Messages are google.protobuf.Struct
// values whose fields are documented on the request and response types.
type PowerRollServiceServer interface {
	RollPower(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SpendHeroToken(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetResources(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateMalice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetHeroTokens(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterPowerRollServiceServer registers srv with s
func RegisterPowerRollServiceServer(s grpc.ServiceRegistrar, srv PowerRollServiceServer) {
	s.RegisterService(&PowerRollService_ServiceDesc, srv)
}

type unaryMethod func(PowerRollServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PowerRollServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PowerRollServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// PowerRollService_ServiceDesc is the grpc.ServiceDesc for PowerRollService
var PowerRollService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PowerRollServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "RollPower",
			Handler:    unaryHandler(PowerRollService_RollPower_FullMethodName, PowerRollServiceServer.RollPower),
		},
		{
			MethodName: "SpendHeroToken",
			Handler:    unaryHandler(PowerRollService_SpendHeroToken_FullMethodName, PowerRollServiceServer.SpendHeroToken),
		},
		{
			MethodName: "GetResources",
			Handler:    unaryHandler(PowerRollService_GetResources_FullMethodName, PowerRollServiceServer.GetResources),
		},
		{
			MethodName: "UpdateMalice",
			Handler:    unaryHandler(PowerRollService_UpdateMalice_FullMethodName, PowerRollServiceServer.UpdateMalice),
		},
		{
			MethodName: "SetHeroTokens",
			Handler:    unaryHandler(PowerRollService_SetHeroTokens_FullMethodName, PowerRollServiceServer.SetHeroTokens),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vagabond/api/v1alpha1/power_roll.proto",
}

// PowerRollServiceClient is the client API for PowerRollService
type PowerRollServiceClient interface {
	RollPower(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SpendHeroToken(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetResources(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdateMalice(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SetHeroTokens(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type powerRollServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPowerRollServiceClient returns a client over cc
func NewPowerRollServiceClient(cc grpc.ClientConnInterface) PowerRollServiceClient {
	return &powerRollServiceClient{cc}
}

func (c *powerRollServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *powerRollServiceClient) RollPower(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PowerRollService_RollPower_FullMethodName, in, opts)
}

func (c *powerRollServiceClient) SpendHeroToken(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PowerRollService_SpendHeroToken_FullMethodName, in, opts)
}

func (c *powerRollServiceClient) GetResources(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PowerRollService_GetResources_FullMethodName, in, opts)
}

func (c *powerRollServiceClient) UpdateMalice(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PowerRollService_UpdateMalice_FullMethodName, in, opts)
}

func (c *powerRollServiceClient) SetHeroTokens(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PowerRollService_SetHeroTokens_FullMethodName, in, opts)
}
