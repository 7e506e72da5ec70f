// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

var (
	version   = "v1.0.0"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// globalFlags are accepted before the subcommand.
type globalFlags struct {
	configPath string
	envFile    string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ipwww-iptv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var g globalFlags
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.StringVar(&g.configPath, "config", "", "path to config file (YAML)")
	fs.StringVar(&g.envFile, "env-file", ".env", "optional dotenv file layered below the environment")
	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "%s (commit: %s, built: %s)\n", version, commit, buildDate)
		return 0
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return 2
	}

	switch rest[0] {
	case "channels":
		return runTrigger(ctx, g, triggerChannels, rest[1:], stderr)
	case "epg":
		return runTrigger(ctx, g, triggerEPG, rest[1:], stderr)
	case "serve":
		return runServe(ctx, g, rest[1:], stderr)
	case "export":
		return runExport(ctx, g, rest[1:], stderr)
	case "config":
		return runConfigCLI(g, rest[1:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", rest[0])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ipwww-iptv [--config file.yaml] [--env-file .env] <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  channels --port N        push the channel list to IPTV Manager")
	fmt.Fprintln(w, "  epg --port N             push the programme guide to IPTV Manager")
	fmt.Fprintln(w, "  serve                    run the HTTP trigger server")
	fmt.Fprintln(w, "  export --out DIR         write streams, guide, M3U and XMLTV files")
	fmt.Fprintln(w, "  config validate|dump     check or print the effective configuration")
}
