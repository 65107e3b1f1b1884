// Package server exposes the URL analyzer over HTTP.
//
// Routes:
//   - POST /scan            analyze {"url": "..."} and return the Report
//   - GET  /                scanner page
//   - GET  /education.html  explanation of every detection layer
//   - GET  /healthz         liveness probe
//   - GET  /metrics         Prometheus metrics
//
// The router is built on gin with CORS (gin-contrib/cors), a request ID
// middleware (google/uuid), slog request logging and a recovery handler
// that turns panics into the same 500 JSON error body as other failures.
//
// Design decision: Each Server owns its own Prometheus registry instead of
// using the global default registry, so several servers (as in tests) can
// coexist in one process without duplicate registration panics.
package server
