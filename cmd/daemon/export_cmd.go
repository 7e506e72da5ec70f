// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/ManuGH/ipwww-iptv/internal/jobs"
	xglog "github.com/ManuGH/ipwww-iptv/internal/log"
)

func runExport(ctx context.Context, g globalFlags, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("out", "", "directory to write the documents to")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *out == "" {
		fmt.Fprintln(stderr, "Error: --out is required")
		return 2
	}

	cfg, err := loadConfig(g)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	rt, err := newRuntime(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Startup error: %v\n", err)
		return 1
	}
	defer rt.Close()

	sel := rt.manager.Selection()
	streams := rt.aggregator.BuildStreams(sel)
	guide := rt.aggregator.BuildGuide(ctx, sel)
	if err := jobs.Export(ctx, *out, streams, guide, rt.aggregator.Channels(sel)); err != nil {
		fmt.Fprintf(stderr, "Export error: %v\n", err)
		return 1
	}

	logger := xglog.WithComponent("daemon")
	logger.Info().
		Str(xglog.FieldEvent, "export.done").
		Str(xglog.FieldPath, *out).
		Int(xglog.FieldEntries, guide.Entries()).
		Msg("export written")
	return 0
}
