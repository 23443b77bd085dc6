// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package api provides the ops HTTP surface of galleria serve.

Endpoints:

  - GET /healthz: liveness, always 200 while the process runs
  - GET /readyz: 200 once the similarity space is loaded, with the catalog
    size, preference backend, breaker state and snapshot size; 503 otherwise
  - GET /metrics: Prometheus exposition via promhttp

There is no recommendation endpoint. Responses use the models.APIResponse
envelope shared with the CLI. Requests are rate limited per client IP
(go-chi/httprate); CORS (go-chi/cors) is enabled only when origins are
configured.

	router := api.NewRouter(api.NewHandler(engine, api.Preferences{Backend: "snapshot", Resolver: resolver}), api.DefaultRouterConfig())
	server := &http.Server{Addr: addr, Handler: router}
*/
package api
