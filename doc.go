// Package soundboard provides the Soundboard API server.

// This package contains the repository root. The implementation is organized
// into subpackages:

// - internal/handlers: HTTP request handlers for all API endpoints
// - internal/models: Data models and database schemas
// - internal/auth: Authentication service (registration, login, tokens)
// - internal/storage: Object storage (S3) operations and upload credentials
// - internal/database: Database connection and migrations
// - internal/middleware: HTTP middleware (auth, rate limiting, metrics)
// - internal/config: Environment configuration
// - internal/errors: API error taxonomy
// - internal/logger: Structured logging
// - internal/metrics: Prometheus collectors

// The server entry point lives in cmd/server.
package soundboard
