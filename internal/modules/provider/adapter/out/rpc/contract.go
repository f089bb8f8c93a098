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
	PluginMapKey  = "provider"
	serviceName   = "focusdrive.provider.v1.Provider"
	jsonCodecName = "json"

	methodGetMetadata          = "GetMetadata"
	methodRoute                = "Route"
	methodAuthorizationStatus  = "AuthorizationStatus"
	methodRequestAuthorization = "RequestAuthorization"
	methodApplyShield          = "ApplyShield"
	methodClearShield          = "ClearShield"
	methodPlay                 = "Play"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "FOCUSDRIVE_PROVIDER",
	MagicCookieValue: "focusdrive",
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
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type RouteRequest struct {
	Origin      Coordinate `json:"origin"`
	Destination Coordinate `json:"destination"`
}

type RouteResponse struct {
	Meters  float64 `json:"meters"`
	Seconds float64 `json:"seconds"`
}

// AuthorizationResponse.Status is one of not_determined, denied, approved.
type AuthorizationResponse struct {
	Status string `json:"status"`
}

type ShieldRequest struct {
	Categories []string `json:"categories"`
}

type PlayRequest struct {
	Event   string `json:"event"`
	Variant string `json:"variant"`
	Sound   string `json:"sound"`
	Haptic  bool   `json:"haptic"`
}

type ProviderServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Route(ctx context.Context, in *RouteRequest) (*RouteResponse, error)
	AuthorizationStatus(ctx context.Context, in *Empty) (*AuthorizationResponse, error)
	RequestAuthorization(ctx context.Context, in *Empty) (*AuthorizationResponse, error)
	ApplyShield(ctx context.Context, in *ShieldRequest) (*Empty, error)
	ClearShield(ctx context.Context, in *Empty) (*Empty, error)
	Play(ctx context.Context, in *PlayRequest) (*Empty, error)
}

type ProviderClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Route(ctx context.Context, in *RouteRequest) (*RouteResponse, error)
	AuthorizationStatus(ctx context.Context) (*AuthorizationResponse, error)
	RequestAuthorization(ctx context.Context) (*AuthorizationResponse, error)
	ApplyShield(ctx context.Context, in *ShieldRequest) error
	ClearShield(ctx context.Context) error
	Play(ctx context.Context, in *PlayRequest) error
}

type providerClient struct {
	conn *grpc.ClientConn
}

func NewProviderClient(conn *grpc.ClientConn) ProviderClient {
	return &providerClient{conn: conn}
}

func invoke[Resp any](ctx context.Context, conn *grpc.ClientConn, method string, in any) (*Resp, error) {
	out := new(Resp)
	if err := conn.Invoke(ctx, fullMethod(method), in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *providerClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	return invoke[Metadata](ctx, c.conn, methodGetMetadata, &Empty{})
}

func (c *providerClient) Route(ctx context.Context, in *RouteRequest) (*RouteResponse, error) {
	return invoke[RouteResponse](ctx, c.conn, methodRoute, in)
}

func (c *providerClient) AuthorizationStatus(ctx context.Context) (*AuthorizationResponse, error) {
	return invoke[AuthorizationResponse](ctx, c.conn, methodAuthorizationStatus, &Empty{})
}

func (c *providerClient) RequestAuthorization(ctx context.Context) (*AuthorizationResponse, error) {
	return invoke[AuthorizationResponse](ctx, c.conn, methodRequestAuthorization, &Empty{})
}

func (c *providerClient) ApplyShield(ctx context.Context, in *ShieldRequest) error {
	_, err := invoke[Empty](ctx, c.conn, methodApplyShield, in)
	return err
}

func (c *providerClient) ClearShield(ctx context.Context) error {
	_, err := invoke[Empty](ctx, c.conn, methodClearShield, &Empty{})
	return err
}

func (c *providerClient) Play(ctx context.Context, in *PlayRequest) error {
	_, err := invoke[Empty](ctx, c.conn, methodPlay, in)
	return err
}

func fullMethod(name string) string {
	return "/" + serviceName + "/" + name
}

// unary adapts a typed server method to a grpc.MethodDesc, honouring any
// configured interceptor.
func unary[Req, Resp any](name string, call func(context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				typed, ok := req.(*Req)
				if !ok {
					return nil, fmt.Errorf("invalid request type")
				}
				return call(ctx, typed)
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func RegisterProviderServer(server grpc.ServiceRegistrar, impl ProviderServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*ProviderServer)(nil),
		Methods: []grpc.MethodDesc{
			unary(methodGetMetadata, impl.GetMetadata),
			unary(methodRoute, impl.Route),
			unary(methodAuthorizationStatus, impl.AuthorizationStatus),
			unary(methodRequestAuthorization, impl.RequestAuthorization),
			unary(methodApplyShield, impl.ApplyShield),
			unary(methodClearShield, impl.ClearShield),
			unary(methodPlay, impl.Play),
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "focusdrive/provider/v1",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl ProviderServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterProviderServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewProviderClient(conn), nil
}

func PluginMap(impl ProviderServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
