package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	providerrpc "focusdrive/internal/modules/provider/adapter/out/rpc"
	"focusdrive/internal/platform/geo"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	roadFactor    = 1.3
	averageMPH    = 50.0
	secondsInHour = 3600.0
)

// server is a desk-side stand-in for device services: approximate
// directions, an always-approving shield, and cue logging.
type server struct {
	logger hclog.Logger

	mu         sync.Mutex
	authorized bool
	shielded   []string
}

func (s *server) GetMetadata(_ context.Context, _ *providerrpc.Empty) (*providerrpc.Metadata, error) {
	return &providerrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"directions", "shield", "feedback"},
	}, nil
}

func (s *server) Route(_ context.Context, in *providerrpc.RouteRequest) (*providerrpc.RouteResponse, error) {
	origin := geo.Coordinate{Lat: in.Origin.Lat, Lon: in.Origin.Lon}
	destination := geo.Coordinate{Lat: in.Destination.Lat, Lon: in.Destination.Lon}
	if !origin.Valid() || !destination.Valid() {
		return nil, fmt.Errorf("coordinates out of range")
	}
	miles := geo.HaversineMiles(origin, destination) * roadFactor
	return &providerrpc.RouteResponse{
		Meters:  geo.MilesToMeters(miles),
		Seconds: miles / averageMPH * secondsInHour,
	}, nil
}

func (s *server) AuthorizationStatus(_ context.Context, _ *providerrpc.Empty) (*providerrpc.AuthorizationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authorized {
		return &providerrpc.AuthorizationResponse{Status: "approved"}, nil
	}
	return &providerrpc.AuthorizationResponse{Status: "not_determined"}, nil
}

func (s *server) RequestAuthorization(_ context.Context, _ *providerrpc.Empty) (*providerrpc.AuthorizationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorized = true
	return &providerrpc.AuthorizationResponse{Status: "approved"}, nil
}

func (s *server) ApplyShield(_ context.Context, in *providerrpc.ShieldRequest) (*providerrpc.Empty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authorized {
		return nil, fmt.Errorf("shield not authorized")
	}
	s.shielded = append(s.shielded[:0], in.Categories...)
	s.logger.Info("shield applied", "categories", s.shielded)
	return &providerrpc.Empty{}, nil
}

func (s *server) ClearShield(_ context.Context, _ *providerrpc.Empty) (*providerrpc.Empty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shielded = nil
	s.logger.Info("shield cleared")
	return &providerrpc.Empty{}, nil
}

func (s *server) Play(_ context.Context, in *providerrpc.PlayRequest) (*providerrpc.Empty, error) {
	s.logger.Info("cue", "event", in.Event, "variant", in.Variant, "sound", in.Sound, "haptic", in.Haptic)
	return &providerrpc.Empty{}, nil
}

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "reference",
		Output:     os.Stderr,
		Level:      hclog.Info,
		JSONFormat: true,
	})
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: providerrpc.HandshakeConfig,
		Plugins:         providerrpc.PluginMap(&server{logger: logger}),
		GRPCServer:      plugin.DefaultGRPCServer,
		Logger:          logger,
	})
}
