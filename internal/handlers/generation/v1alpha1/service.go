package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "owrando.generation.v1alpha1.GenerationService"

// Full method names, usable with grpc.ClientConn.Invoke.
const (
	GenerateSlotMethod       = "/" + ServiceName + "/GenerateSlot"
	GetSlotMethod            = "/" + ServiceName + "/GetSlot"
	ListSlotsMethod          = "/" + ServiceName + "/ListSlots"
	GenerateMultiworldMethod = "/" + ServiceName + "/GenerateMultiworld"
)

// GenerationServiceServer is the server API for the generation service.
// Requests and responses are generic Structs whose fields are documented on
// the request types in messages.go.
type GenerationServiceServer interface {
	GenerateSlot(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSlot(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSlots(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GenerateMultiworld(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterGenerationServiceServer registers srv on s.
func RegisterGenerationServiceServer(s grpc.ServiceRegistrar, srv GenerationServiceServer) {
	s.RegisterService(&GenerationServiceDesc, srv)
}

func unaryHandler(
	method string,
	call func(GenerationServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GenerationServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(GenerationServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// GenerationServiceDesc is the grpc.ServiceDesc for the generation service.
var GenerationServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GenerationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GenerateSlot",
			Handler:    unaryHandler(GenerateSlotMethod, GenerationServiceServer.GenerateSlot),
		},
		{
			MethodName: "GetSlot",
			Handler:    unaryHandler(GetSlotMethod, GenerationServiceServer.GetSlot),
		},
		{
			MethodName: "ListSlots",
			Handler:    unaryHandler(ListSlotsMethod, GenerationServiceServer.ListSlots),
		},
		{
			MethodName: "GenerateMultiworld",
			Handler:    unaryHandler(GenerateMultiworldMethod, GenerationServiceServer.GenerateMultiworld),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "owrando/generation/v1alpha1/generation.proto",
}

// GenerationServiceClient is the client API for the generation service.
type GenerationServiceClient interface {
	GenerateSlot(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetSlot(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListSlots(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GenerateMultiworld(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type generationServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewGenerationServiceClient creates a client over cc.
func NewGenerationServiceClient(cc grpc.ClientConnInterface) GenerationServiceClient {
	return &generationServiceClient{cc: cc}
}

func (c *generationServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *generationServiceClient) GenerateSlot(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GenerateSlotMethod, in, opts)
}

func (c *generationServiceClient) GetSlot(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetSlotMethod, in, opts)
}

func (c *generationServiceClient) ListSlots(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListSlotsMethod, in, opts)
}

func (c *generationServiceClient) GenerateMultiworld(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GenerateMultiworldMethod, in, opts)
}
