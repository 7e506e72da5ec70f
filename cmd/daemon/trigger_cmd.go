// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"io"

	"github.com/google/uuid"

	xglog "github.com/ManuGH/ipwww-iptv/internal/log"
)

type triggerKind int

const (
	triggerChannels triggerKind = iota
	triggerEPG
)

func (k triggerKind) String() string {
	if k == triggerEPG {
		return "epg"
	}
	return "channels"
}

// runTrigger answers a single IPTV Manager request. It always returns 0:
// failures are logged, never reported to the caller.
func runTrigger(ctx context.Context, g globalFlags, kind triggerKind, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet(kind.String(), flag.ContinueOnError)
	fs.SetOutput(stderr)
	rawPort := fs.String("port", "", "TCP port IPTV Manager listens on")
	if err := fs.Parse(args); err != nil {
		return 0
	}
	if *rawPort == "" && fs.NArg() > 0 {
		*rawPort = fs.Arg(0)
	}

	logger := xglog.WithComponent("daemon")
	cfg, err := loadConfig(g)
	if err != nil {
		logger.Error().Err(err).Str(xglog.FieldEvent, "config.invalid").Msg("configuration error")
		return 0
	}
	rt, err := newRuntime(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Str(xglog.FieldEvent, "startup.failed").Msg("startup failed")
		return 0
	}
	defer rt.Close()

	ctx = xglog.ContextWithRequestID(ctx, uuid.New().String())
	switch kind {
	case triggerEPG:
		rt.manager.HandleEPG(ctx, *rawPort)
	default:
		rt.manager.HandleChannels(ctx, *rawPort)
	}
	return 0
}
