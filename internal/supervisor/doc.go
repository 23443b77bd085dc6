// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package supervisor provides process supervision for galleria serve using suture v4.

# Overview

	RootSupervisor ("galleria")
	├── DataSupervisor ("data-layer")
	│   └── RefreshService (snapshot backend only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (ops endpoints)

Crashed services restart with suture's backoff. Each layer counts failures
independently, so a refresher that keeps failing against a broken log never
restarts the ops server.

# Logging

Supervisor events go through sutureslog. Callers pass the zerolog logger
through the slog adapter so events land in the same stream as everything else:

	slogger := logging.NewSlogLogger(logging.WithComponent("supervisor"))
	tree, err := supervisor.NewSupervisorTree(slogger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddDataService(services.NewRefreshService(handle, interval, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, timeout, logger))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	err = tree.Serve(ctx)

# Shutdown

Canceling the context stops every service. Services still running after
ShutdownTimeout are listed by UnstoppedServiceReport.
*/
package supervisor
