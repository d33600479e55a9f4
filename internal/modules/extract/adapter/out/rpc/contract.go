package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey          = "unhook"
	serviceName           = "unhook.extractor.v1.UsageExtractor"
	jsonCodecName         = "json"
	methodGetMetadata     = "/" + serviceName + "/GetMetadata"
	methodExtractSessions = "/" + serviceName + "/ExtractSessions"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "UNHOOK_EXTRACTOR",
	MagicCookieValue: "unhook",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Source  string `json:"source"`
}

type ExtractRequest struct {
	StartMS int64 `json:"start_ms"`
	EndMS   int64 `json:"end_ms"`
}

type SessionRecord struct {
	App     string `json:"app"`
	StartMS int64  `json:"start_ms"`
	EndMS   int64  `json:"end_ms"`
}

type ExtractResponse struct {
	Sessions []SessionRecord `json:"sessions"`
}

type UsageExtractorServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	ExtractSessions(ctx context.Context, in *ExtractRequest) (*ExtractResponse, error)
}

type UsageExtractorClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	ExtractSessions(ctx context.Context, in *ExtractRequest) (*ExtractResponse, error)
}

type usageExtractorClient struct {
	conn *grpc.ClientConn
}

func NewUsageExtractorClient(conn *grpc.ClientConn) UsageExtractorClient {
	return &usageExtractorClient{conn: conn}
}

func (c *usageExtractorClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *usageExtractorClient) ExtractSessions(ctx context.Context, in *ExtractRequest) (*ExtractResponse, error) {
	out := &ExtractResponse{}
	if err := c.conn.Invoke(ctx, methodExtractSessions, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterUsageExtractorServer(server grpc.ServiceRegistrar, impl UsageExtractorServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*UsageExtractorServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "ExtractSessions",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &ExtractRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ExtractSessions(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodExtractSessions}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*ExtractRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ExtractSessions(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/extractor-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl UsageExtractorServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterUsageExtractorServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewUsageExtractorClient(conn), nil
}

func PluginMap(impl UsageExtractorServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
