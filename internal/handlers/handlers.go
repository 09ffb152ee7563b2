package handlers

import (
	"net/http"

	"github.com/instantfun/soundboard/internal/auth"
	"github.com/instantfun/soundboard/internal/config"
	"github.com/instantfun/soundboard/internal/storage"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	auth  *auth.Service
	store storage.ObjectStore
	cfg   *config.Config

	// Client for upstream proxy fetches. No global timeout: transfers are
	// unbounded and cancellation rides on the request context.
	proxyClient *http.Client
}

// NewHandlers creates a new handlers instance
func NewHandlers(authService *auth.Service, store storage.ObjectStore, cfg *config.Config) *Handlers {
	return &Handlers{
		auth:        authService,
		store:       store,
		cfg:         cfg,
		proxyClient: &http.Client{},
	}
}
