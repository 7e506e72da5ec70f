// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ManuGH/ipwww-iptv/internal/bbc"
	"github.com/ManuGH/ipwww-iptv/internal/config"
	"github.com/ManuGH/ipwww-iptv/internal/iptv"
	"github.com/ManuGH/ipwww-iptv/internal/jobs"
	xglog "github.com/ManuGH/ipwww-iptv/internal/log"
	"github.com/ManuGH/ipwww-iptv/internal/settings"
	"github.com/ManuGH/ipwww-iptv/internal/telemetry"
)

// appRuntime is everything one invocation needs, wired from config.
type appRuntime struct {
	cfg        config.AppConfig
	client     *bbc.Client
	aggregator *jobs.Aggregator
	store      *settings.Store
	manager    *iptv.Manager
	tracing    *telemetry.Provider
}

func loadConfig(g globalFlags) (config.AppConfig, error) {
	xglog.Configure(xglog.Config{Level: "info", Service: "ipwww-iptv", Version: version})
	cfg, err := config.NewLoader(g.configPath, g.envFile).Load()
	if err != nil {
		return cfg, err
	}
	xglog.Configure(xglog.Config{Level: cfg.LogLevel, Service: "ipwww-iptv", Version: version})
	return cfg, nil
}

func newRuntime(ctx context.Context, cfg config.AppConfig) (*appRuntime, error) {
	tracing, err := telemetry.NewProvider(ctx, cfg.TelemetryProviderConfig(version))
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	store, err := settings.Open(cfg.Settings.Path)
	if err != nil {
		_ = tracing.Shutdown(ctx)
		return nil, fmt.Errorf("open settings: %w", err)
	}

	client := bbc.New(cfg.ClientOptions())
	agg := jobs.NewAggregator(client, cfg.EPGOptions())
	agg.Window = cfg.Window()
	agg.Concurrency = cfg.Guide.MaxConcurrency

	return &appRuntime{
		cfg:        cfg,
		client:     client,
		aggregator: agg,
		store:      store,
		tracing:    tracing,
		manager: &iptv.Manager{
			Builder:  agg,
			Settings: store,
			Keys:     cfg.Settings.Keys,
			Timeout:  cfg.Delivery.Timeout,
		},
	}, nil
}

// Close flushes spans and drops pooled connections.
func (r *appRuntime) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.tracing.Shutdown(ctx); err != nil {
		logger := xglog.WithComponent("daemon")
		logger.Warn().Err(err).
			Str(xglog.FieldEvent, "telemetry.shutdown_failed").
			Msg("failed to flush traces")
	}
	r.client.CloseIdleConnections()
}
