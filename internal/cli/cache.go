package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"messcut/internal/assetcache"
	"messcut/internal/config"
)

func runCacheCommand(args []string, env *Env) int {
	if len(args) == 0 {
		printCacheUsage(env)
		return 1
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "install":
		return runCacheInstall(cmdArgs, env)
	case "activate":
		return runCacheActivate(cmdArgs, env)
	case "fetch":
		return runCacheFetch(cmdArgs, env)
	case "help", "-h", "--help":
		printCacheUsage(env)
		return 0
	default:
		fmt.Fprintf(env.stderr(), "Unknown cache command: %s\n", command)
		printCacheUsage(env)
		return 1
	}
}

func printCacheUsage(env *Env) {
	fmt.Fprintln(env.stderr(), `messcut cache - Offline asset cache

Usage: messcut cache <command> [arguments]

Commands:
  install [--origin URL]         Download every asset of the current manifest
  activate                       Delete caches of older versions
  fetch [--origin URL] <path>    Print an asset, from the cache if present`)
}

// newWorker parses the shared --origin flag and builds a worker over the
// configured cache directory.
func newWorker(name string, args []string, env *Env) (*assetcache.Worker, []string, bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.stderr())

	cfg := env.Config
	if cfg == nil {
		cfg = &config.Config{Origin: config.DefaultOrigin}
	}
	origin := fs.String("origin", cfg.Origin, "Asset origin")

	if err := fs.Parse(args); err != nil {
		return nil, nil, false
	}
	manifest := assetcache.DefaultManifest()
	if cfg.CacheName != "" {
		manifest.Name = cfg.CacheName
	}
	return assetcache.NewWorker(cfg.CacheDir(), *origin, manifest), fs.Args(), true
}

func runCacheInstall(args []string, env *Env) int {
	w, _, ok := newWorker("install", args, env)
	if !ok {
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := w.Install(ctx); err != nil {
		fmt.Fprintf(env.stderr(), "Error installing cache: %v\n", err)
		return 1
	}
	fmt.Fprintf(env.stdout(), "Installed %s (%d assets)\n", w.Manifest.Name, len(w.Manifest.URLs))
	return 0
}

func runCacheActivate(args []string, env *Env) int {
	w, _, ok := newWorker("activate", args, env)
	if !ok {
		return 1
	}

	removed, err := w.Activate()
	if err != nil {
		fmt.Fprintf(env.stderr(), "Error activating cache: %v\n", err)
		return 1
	}
	if len(removed) == 0 {
		fmt.Fprintln(env.stdout(), "No stale caches.")
		return 0
	}
	for _, name := range removed {
		fmt.Fprintf(env.stdout(), "Deleted: %s\n", name)
	}
	return 0
}

func runCacheFetch(args []string, env *Env) int {
	w, rest, ok := newWorker("fetch", args, env)
	if !ok {
		return 1
	}
	if len(rest) == 0 {
		fmt.Fprintln(env.stderr(), "Error: path required")
		fmt.Fprintln(env.stderr(), "Usage: messcut cache fetch [--origin URL] <path>")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	body, src, err := w.Fetch(ctx, rest[0])
	if err != nil {
		fmt.Fprintf(env.stderr(), "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(env.stderr(), "served from %s\n", src)
	env.stdout().Write(body)
	return 0
}
