// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/ManuGH/ipwww-iptv/internal/api"
	xglog "github.com/ManuGH/ipwww-iptv/internal/log"
	"github.com/ManuGH/ipwww-iptv/internal/settings"
)

func runServe(ctx context.Context, g globalFlags, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	listen := fs.String("listen", "", "override server.listenAddr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(g)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	if *listen != "" {
		cfg.Server.ListenAddr = *listen
	}

	rt, err := newRuntime(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Startup error: %v\n", err)
		return 1
	}
	defer rt.Close()

	logger := xglog.WithComponent("daemon")
	if cfg.Settings.Watch {
		go func() {
			err := rt.store.Watch(ctx, settings.DefaultDebounce, func() {
				logger.Info().
					Str(xglog.FieldEvent, "settings.reloaded").
					Str(xglog.FieldPath, rt.store.Path()).
					Msg("settings reloaded")
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn().Err(err).Str(xglog.FieldEvent, "settings.watch_failed").Msg("settings watcher stopped")
			}
		}()
	}

	srv := api.NewServer(rt.manager, cfg.Server.RateLimit)
	if err := srv.Serve(ctx, cfg.Server.ListenAddr, cfg.Server.ShutdownTimeout); err != nil {
		logger.Error().Err(err).Str(xglog.FieldEvent, "server.failed").Msg("server stopped with error")
		return 1
	}
	return 0
}
