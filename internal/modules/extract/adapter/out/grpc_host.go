package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	extractrpc "unhook/internal/modules/extract/adapter/out/rpc"
	"unhook/internal/modules/extract/domain"
	extractout "unhook/internal/modules/extract/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	metadataTimeout     = 5 * time.Second
	extractTimeout      = 30 * time.Second
)

type GRPCHost struct{}

func NewGRPCHost() extractout.Host {
	return &GRPCHost{}
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, metadataTimeout)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Source: meta.Source}, nil
}

func (h *GRPCHost) ExtractSessions(ctx context.Context, manifest domain.Manifest, startMS, endMS int64) ([]domain.Record, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, extractTimeout)
	defer cancel()
	response, err := client.ExtractSessions(callCtx, &extractrpc.ExtractRequest{StartMS: startMS, EndMS: endMS})
	if err != nil {
		return nil, fmt.Errorf("extract sessions: %w", err)
	}
	records := make([]domain.Record, 0, len(response.Sessions))
	for _, s := range response.Sessions {
		records = append(records, domain.Record{App: s.App, StartMS: s.StartMS, EndMS: s.EndMS})
	}
	return records, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest, startTimeout time.Duration) (extractrpc.UsageExtractorClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  extractrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          extractrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start extractor client: %w", err)
	}
	raw, err := rpcClient.Dispense(extractrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense extractor: %w", err)
	}
	typed, ok := raw.(extractrpc.UsageExtractorClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("extractor rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
