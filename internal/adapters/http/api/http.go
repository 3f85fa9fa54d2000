// Package api declares the webhook HTTP contract and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/careerdesk/pkg/logger"
)

// Defaults.
const (
	DefaultWebhookPath = "/df-webhook"
	DefaultSourceTag   = "careers-demo-webhook"
)

// Server wires HTTP routes for the webhook.
type Server struct {
	healthHandler  *HealthHandler
	webhookHandler *WebhookHandler
	webhookPath    string
	apology        string
	source         string
	logger         logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithWebhookPath sets the fulfillment route.
func WithWebhookPath(path string) Option {
	return func(s *Server) {
		if path != "" {
			s.webhookPath = path
		}
	}
}

// WithSourceTag sets the source field of every reply.
func WithSourceTag(tag string) Option {
	return func(s *Server) {
		if tag != "" {
			s.source = tag
		}
	}
}

// WithApology sets the reply sent when a handler panics.
func WithApology(text string) Option {
	return func(s *Server) {
		if text != "" {
			s.apology = text
		}
	}
}

// WithLogger sets a custom logger for the handlers.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server answering through resolver.
func NewServer(resolver Resolver, opts ...Option) *Server {
	s := &Server{
		webhookPath: DefaultWebhookPath,
		source:      DefaultSourceTag,
		apology:     "An error occurred.",
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.webhookHandler = NewWebhookHandler(resolver, s.source, s.logger)
	return s
}

// WebhookPath returns the route the webhook is served on.
func (s *Server) WebhookPath() string { return s.webhookPath }

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.Handle(s.webhookPath, RecoverMiddleware(
		MetricsMiddleware(s.webhookHandler.HandleWebhook, "webhook"),
		s.apology, s.source, s.logger))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
