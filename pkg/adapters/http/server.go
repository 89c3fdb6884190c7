package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/vitrine"
	"github.com/aretw0/vitrine/internal/logging"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/preview"
	"github.com/aretw0/vitrine/pkg/session"
	"github.com/aretw0/vitrine/pkg/templates"
	"github.com/go-chi/chi/v5"
)

// Engine is the live preview session driven over HTTP.
type Engine interface {
	Edit(text string) error
	RunNow() error
	Clear() error
	SetPreferences(p domain.Preferences) error
	LoadTemplate(name string) error
	Snapshot(ctx context.Context) (session.Snapshot, error)
}

// Server holds the handlers of the HTTP surface.
type Server struct {
	Engine  Engine
	Events  *preview.Broadcaster
	metrics http.Handler
	verify  bool
	logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithEvents enables GET /events, streaming every result shown on b.
func WithEvents(b *preview.Broadcaster) Option {
	return func(s *Server) {
		s.Events = b
	}
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithValidation toggles OpenAPI request validation. It is on by default.
func WithValidation(on bool) Option {
	return func(s *Server) {
		s.verify = on
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// SnapshotResponse is the body returned by every state-changing endpoint.
type SnapshotResponse struct {
	Document    string             `json:"document"`
	Preferences domain.Preferences `json:"preferences"`
	Preview     preview.View       `json:"preview"`
	Pending     bool               `json:"pending"`
	Runs        uint64             `json:"runs"`
}

type documentRequest struct {
	Document string `json:"document"`
}

// NewHandler creates the HTTP handler for engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine: engine,
		verify: true,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(enableCORS)
	if s.verify {
		if mw, err := requestValidator(); err != nil {
			s.logger.Error("OpenAPI validation disabled", "err", err)
		} else {
			r.Use(mw)
		}
	}

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawOpenAPI)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/preview", s.GetPreview)
	r.Put("/document", s.PutDocument)
	r.Post("/run", s.RunNow)
	r.Post("/clear", s.Clear)
	r.Put("/preferences", s.PutPreferences)
	r.Get("/templates", s.ListTemplates)
	r.Post("/templates/{name}", s.LoadTemplate)
	r.Get("/events", s.SubscribeEvents)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Vitrine API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := GetSwagger(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "vitrine-http",
		"version":     strings.TrimSpace(vitrine.Version),
		"api_version": apiVersion,
	}, s.logger)
}

// GetPreview handles GET /preview.
func (s *Server) GetPreview(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK)
}

// PutDocument handles PUT /document.
func (s *Server) PutDocument(w http.ResponseWriter, r *http.Request) {
	var body documentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PutDocument: Invalid request body", "err", err)
		return
	}
	if err := s.Engine.Edit(body.Document); err != nil {
		s.fail(w, "Edit", err)
		return
	}
	s.respond(w, r, http.StatusAccepted)
}

// RunNow handles POST /run.
func (s *Server) RunNow(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.RunNow(); err != nil {
		s.fail(w, "Run", err)
		return
	}
	s.respond(w, r, http.StatusOK)
}

// Clear handles POST /clear.
func (s *Server) Clear(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.Clear(); err != nil {
		s.fail(w, "Clear", err)
		return
	}
	s.respond(w, r, http.StatusOK)
}

// PutPreferences handles PUT /preferences.
func (s *Server) PutPreferences(w http.ResponseWriter, r *http.Request) {
	var prefs domain.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PutPreferences: Invalid request body", "err", err)
		return
	}
	if err := s.Engine.SetPreferences(prefs); err != nil {
		s.fail(w, "SetPreferences", err)
		return
	}
	s.respond(w, r, http.StatusOK)
}

// ListTemplates handles GET /templates.
func (s *Server) ListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, templates.All(), s.logger)
}

// LoadTemplate handles POST /templates/{name}.
func (s *Server) LoadTemplate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Engine.LoadTemplate(name); err != nil {
		s.fail(w, "LoadTemplate", err)
		return
	}
	s.respond(w, r, http.StatusAccepted)
}

// SubscribeEvents handles GET /events (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	if s.Events == nil {
		http.Error(w, "Event stream not enabled", http.StatusServiceUnavailable)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	updates := s.Events.Subscribe(r.Context())
	s.logger.Debug("SSE: Client subscribed", "subscribers", s.Events.Subscribers())

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE: Client disconnected")
			return
		case result, ok := <-updates:
			if !ok {
				return
			}
			payload, err := json.Marshal(preview.NewView(result))
			if err != nil {
				s.logger.Error("SSE: Encode failed", "err", err)
				continue
			}
			fmt.Fprintf(w, "event: preview\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int) {
	snap, err := s.Engine.Snapshot(r.Context())
	if err != nil {
		s.fail(w, "Snapshot", err)
		return
	}
	writeJSON(w, status, SnapshotResponse{
		Document:    snap.Document,
		Preferences: snap.Preferences,
		Preview:     preview.NewView(snap.Result),
		Pending:     snap.Pending,
		Runs:        snap.Runs,
	}, s.logger)
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrTemplateNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrSessionClosed):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
		s.logger.Error(op+" failed", "err", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "err", err)
	}
}
