package out

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	providerrpc "focusdrive/internal/modules/provider/adapter/out/rpc"
	"focusdrive/internal/modules/provider/domain"
	providerout "focusdrive/internal/modules/provider/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

type connection struct {
	client *plugin.Client
	rpc    providerrpc.ProviderClient
}

// GRPCHost keeps one provider process per manifest alive between calls and
// restarts it when it has exited.
type GRPCHost struct {
	debug bool

	mu    sync.Mutex
	conns map[string]connection
}

func NewGRPCHost(debug bool) providerout.Host {
	return &GRPCHost{debug: debug, conns: map[string]connection{}}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	meta, err := h.GetMetadata(ctx, manifest)
	if err != nil {
		return err
	}
	return meta.Covers(manifest)
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, err := h.connect(manifest)
	if err != nil {
		return domain.Metadata{}, err
	}
	callCtx, cancel := h.callContext(ctx)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, h.callError(callCtx, manifest, "get metadata", err)
	}
	capabilities := make([]domain.Capability, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		capabilities = append(capabilities, domain.Capability(capability))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Capabilities: capabilities}, nil
}

func (h *GRPCHost) Route(ctx context.Context, manifest domain.Manifest, req domain.DirectionsRequest) (domain.DirectionsResult, error) {
	client, err := h.connect(manifest)
	if err != nil {
		return domain.DirectionsResult{}, err
	}
	callCtx, cancel := h.callContext(ctx)
	defer cancel()

	resp, err := client.Route(callCtx, &providerrpc.RouteRequest{
		Origin:      providerrpc.Coordinate{Lat: req.Origin.Lat, Lon: req.Origin.Lon},
		Destination: providerrpc.Coordinate{Lat: req.Destination.Lat, Lon: req.Destination.Lon},
	})
	if err != nil {
		return domain.DirectionsResult{}, h.callError(callCtx, manifest, "route", err)
	}
	return domain.DirectionsResult{Meters: resp.Meters, Seconds: resp.Seconds}, nil
}

func (h *GRPCHost) AuthorizationStatus(ctx context.Context, manifest domain.Manifest) (string, error) {
	client, err := h.connect(manifest)
	if err != nil {
		return "", err
	}
	callCtx, cancel := h.callContext(ctx)
	defer cancel()

	resp, err := client.AuthorizationStatus(callCtx)
	if err != nil {
		return "", h.callError(callCtx, manifest, "authorization status", err)
	}
	return resp.Status, nil
}

func (h *GRPCHost) RequestAuthorization(ctx context.Context, manifest domain.Manifest) (string, error) {
	client, err := h.connect(manifest)
	if err != nil {
		return "", err
	}
	callCtx, cancel := h.callContext(ctx)
	defer cancel()

	resp, err := client.RequestAuthorization(callCtx)
	if err != nil {
		return "", h.callError(callCtx, manifest, "request authorization", err)
	}
	return resp.Status, nil
}

func (h *GRPCHost) ApplyShield(ctx context.Context, manifest domain.Manifest, categories []string) error {
	client, err := h.connect(manifest)
	if err != nil {
		return err
	}
	callCtx, cancel := h.callContext(ctx)
	defer cancel()

	if err := client.ApplyShield(callCtx, &providerrpc.ShieldRequest{Categories: categories}); err != nil {
		return h.callError(callCtx, manifest, "apply shield", err)
	}
	return nil
}

func (h *GRPCHost) ClearShield(ctx context.Context, manifest domain.Manifest) error {
	client, err := h.connect(manifest)
	if err != nil {
		return err
	}
	callCtx, cancel := h.callContext(ctx)
	defer cancel()

	if err := client.ClearShield(callCtx); err != nil {
		return h.callError(callCtx, manifest, "clear shield", err)
	}
	return nil
}

func (h *GRPCHost) Play(ctx context.Context, manifest domain.Manifest, cue domain.Cue) error {
	client, err := h.connect(manifest)
	if err != nil {
		return err
	}
	callCtx, cancel := h.callContext(ctx)
	defer cancel()

	err = client.Play(callCtx, &providerrpc.PlayRequest{Event: cue.Event, Variant: cue.Variant, Sound: cue.Sound, Haptic: cue.Haptic})
	if err != nil {
		return h.callError(callCtx, manifest, "play", err)
	}
	return nil
}

// Close kills every provider process started by this host.
func (h *GRPCHost) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for name, conn := range h.conns {
		conn.client.Kill()
		delete(h.conns, name)
	}
}

func (h *GRPCHost) connect(manifest domain.Manifest) (providerrpc.ProviderClient, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conn, ok := h.conns[manifest.Name]; ok {
		if !conn.client.Exited() {
			return conn.rpc, nil
		}
		delete(h.conns, manifest.Name)
	}

	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  providerrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          providerrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           h.pluginLogger(manifest.Name),
	})
	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("start provider client: %w", err)
	}
	raw, err := rpcClient.Dispense(providerrpc.PluginMapKey)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("dispense provider: %w", err)
	}
	typed, ok := raw.(providerrpc.ProviderClient)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("provider rpc client type mismatch")
	}
	h.conns[manifest.Name] = connection{client: client, rpc: typed}
	return typed, nil
}

func (h *GRPCHost) pluginLogger(name string) hclog.Logger {
	if !h.debug {
		return hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel})
	}
	return hclog.New(&hclog.LoggerOptions{Name: "provider." + name, Output: os.Stderr, Level: hclog.Debug})
}

func (h *GRPCHost) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, defaultCallTimeout)
}

func (h *GRPCHost) callError(callCtx context.Context, manifest domain.Manifest, op string, err error) error {
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s %s", domain.ErrProviderTimeout, manifest.Name, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}
