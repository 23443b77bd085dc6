// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/galleria/internal/api"
	"github.com/tomtom215/galleria/internal/config"
	"github.com/tomtom215/galleria/internal/logging"
	"github.com/tomtom215/galleria/internal/preference"
	"github.com/tomtom215/galleria/internal/supervisor"
	"github.com/tomtom215/galleria/internal/supervisor/services"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the ops HTTP server and snapshot refresher",
		Long: `Load the similarity space and preference backend, then serve
/healthz, /readyz and /metrics until SIGINT or SIGTERM.

With the snapshot backend the interaction log is re-read every
preferences.refresh_interval. Changes to the config file re-apply the log level.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

//nolint:gocyclo // Sequential setup steps
func runServe(parent context.Context, opts *options) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := opts.cfg
	logging.Info().
		Str("artifacts_dir", cfg.Artifacts.Dir).
		Str("preference_backend", cfg.Preferences.Backend).
		Msg("Starting galleria with supervisor tree")

	rt, err := opts.openRuntime(ctx, true)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load recommendation data")
	}
	defer rt.Close()

	logging.Info().
		Int("items", rt.engine.ItemCount()).
		Str("backend", rt.prefs.Backend).
		Str("source", rt.prefs.Location).
		Msg("Recommendation engine ready")

	tree, err := supervisor.NewSupervisorTree(
		logging.NewSlogLogger(logging.WithComponent("supervisor")),
		supervisor.TreeConfig{ShutdownTimeout: cfg.Server.ShutdownTimeout},
	)
	if err != nil {
		return err
	}

	if rt.prefs.Refreshable() {
		tree.AddDataService(services.NewRefreshService(rt.prefs, cfg.Preferences.RefreshInterval, logging.WithComponent("refresh")))
	}

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           api.NewRouter(api.NewHandler(rt.engine, readiness(rt.prefs)), cfg.RouterConfig()),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))

	if path := opts.watchedConfigPath(); path != "" {
		watcher, err := config.WatchConfigFile(path, func() { opts.reloadLogging(path) })
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Config file watch disabled")
		} else {
			defer func() { _ = watcher.Unwatch() }()
		}
	}

	err = tree.Serve(ctx)
	if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		logging.Warn().Int("count", len(report)).Msg("Services did not stop before the shutdown timeout")
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logging.Info().Msg("Shutdown complete")
	return nil
}

// reloadLogging re-reads the config file and re-applies logging settings.
// Everything else needs a restart. A broken file keeps the current logger.
func (o *options) reloadLogging(path string) {
	cfg, err := config.Load(path)
	if err == nil {
		err = o.applyOverrides(cfg)
	}
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Ignoring config change")
		return
	}
	logging.Init(cfg.LoggingSettings())
	logging.Info().Str("level", cfg.Logging.Level).Msg("Logging configuration reloaded")
}

// readiness describes the preference handle for /readyz.
func readiness(h *preference.Handle) api.Preferences {
	prefs := api.Preferences{Backend: h.Backend, Resolver: h.Resolver}
	if h.Snapshot != nil {
		prefs.Snapshot = h.Snapshot
	}
	return prefs
}
