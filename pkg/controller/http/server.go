package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr         string
	maxBodyBytes int64
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithMaxBodyBytes limits the size of request bodies
func WithMaxBodyBytes(n int64) Option {
	return func(c *config) {
		c.maxBodyBytes = n
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server exposing the build triggers. The
// scheduler triggers under /triggers require a body signed by triggerAuth.
func NewServer(
	ctx context.Context,
	buildUC interfaces.BuildUseCase,
	triggerAuth interfaces.Authenticator,
	opts ...Option,
) (*Server, error) {
	if triggerAuth == nil {
		return nil, goerr.New("trigger authenticator is required")
	}

	cfg := &config{
		addr: "localhost:8080",
		// GitHub caps webhook payloads at 25MB
		maxBodyBytes: 25 << 20,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestSize(cfg.maxBodyBytes))

	router.Get("/health", handleHealth)

	webhookHandler := NewWebhookHandler(buildUC)
	router.Post("/hooks/github", webhookHandler.Handle)

	triggerHandler := NewTriggerHandler(buildUC)
	router.Route("/triggers", func(r chi.Router) {
		r.Use(SignatureMiddleware(triggerAuth))
		r.Post("/status", triggerHandler.HandleStatus)
		r.Post("/complete", triggerHandler.HandleComplete)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
