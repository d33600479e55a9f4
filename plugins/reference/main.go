package main

import (
	"context"
	"time"

	"github.com/hashicorp/go-plugin"

	extractrpc "unhook/internal/modules/extract/adapter/out/rpc"
)

// Deterministic sample extractor: a fixed daily routine of sessions,
// useful for integration checks without touching a real device.
type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *extractrpc.Empty) (*extractrpc.Metadata, error) {
	return &extractrpc.Metadata{
		Name:    "reference",
		Version: "1.0.0",
		Source:  "sample",
	}, nil
}

// routine is the per-day session template: app, start hour:minute,
// duration minutes. Minimum-duration and merge-gap policy are already
// reflected in the template.
var routine = []struct {
	app      string
	hour     int
	minute   int
	duration int
}{
	{"instagram", 8, 15, 6},
	{"twitter", 12, 30, 4},
	{"instagram", 12, 36, 3}, // quick reopen after the twitter check
	{"youtube", 19, 0, 25},
	{"instagram", 22, 10, 12},
}

func (s *server) ExtractSessions(_ context.Context, in *extractrpc.ExtractRequest) (*extractrpc.ExtractResponse, error) {
	sessions := []extractrpc.SessionRecord{}
	day := time.UnixMilli(in.StartMS).UTC().Truncate(24 * time.Hour)
	for ; day.UnixMilli() < in.EndMS; day = day.AddDate(0, 0, 1) {
		for _, r := range routine {
			start := day.Add(time.Duration(r.hour)*time.Hour + time.Duration(r.minute)*time.Minute)
			end := start.Add(time.Duration(r.duration) * time.Minute)
			if start.UnixMilli() < in.StartMS || end.UnixMilli() > in.EndMS {
				continue
			}
			sessions = append(sessions, extractrpc.SessionRecord{
				App:     r.app,
				StartMS: start.UnixMilli(),
				EndMS:   end.UnixMilli(),
			})
		}
	}
	return &extractrpc.ExtractResponse{Sessions: sessions}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: extractrpc.HandshakeConfig,
		Plugins:         extractrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
