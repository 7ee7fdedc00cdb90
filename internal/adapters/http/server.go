package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/envcheck"
	"github.com/aretw0/envcheck/internal/logging"
	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// APIVersion is the version of the JSON API served here.
const APIVersion = "0.1.0"

// Engine is the part of envcheck.Engine the HTTP API needs.
type Engine interface {
	Variables() []domain.Variable
	Variable(name string) (domain.Variable, error)
	Describe(name string) (string, error)
	Check(ctx context.Context) (*domain.Report, error)
	LastReport(ctx context.Context) (*domain.Report, error)
	Example() string
	Graph(report *domain.Report) string
	Reload(ctx context.Context) error
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Server serves the envcheck JSON API.
type Server struct {
	Engine  Engine
	Metrics http.Handler
	Logger  *slog.Logger
}

// NewHandler creates the HTTP handler for the engine.
// metrics, when non-nil, is mounted on /metrics.
func NewHandler(engine Engine, metrics http.Handler, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{Engine: engine, Metrics: metrics, Logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/variables", s.ListVariables)
	r.Get("/variables/{name}", s.GetVariable)
	r.Post("/check", s.PostCheck)
	r.Get("/report", s.GetReport)
	r.Get("/example", s.GetExample)
	r.Get("/graph", s.GetGraph)
	r.Get("/events", s.SubscribeEvents)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	return r
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "envcheck-http",
		"version":     envcheck.Version,
		"api_version": APIVersion,
	})
}

// ListVariables handles GET /variables.
func (s *Server) ListVariables(w http.ResponseWriter, r *http.Request) {
	vars := s.Engine.Variables()
	if vars == nil {
		vars = []domain.Variable{}
	}
	s.writeJSON(w, http.StatusOK, vars)
}

// variableResponse is a variable plus its rendered hover text.
type variableResponse struct {
	domain.Variable
	Required bool   `json:"required"`
	Markdown string `json:"markdown"`
}

// GetVariable handles GET /variables/{name}.
func (s *Server) GetVariable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	v, err := s.Engine.Variable(name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	md, err := s.Engine.Describe(name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, variableResponse{Variable: v, Required: v.Required(), Markdown: md})
}

// PostCheck handles POST /check. ?reload=true re-reads the schemas first.
func (s *Server) PostCheck(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("reload") == "true" {
		if err := s.Engine.Reload(r.Context()); err != nil {
			s.writeError(w, err)
			return
		}
	}
	report, err := s.Engine.Check(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// GetReport handles GET /report.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.Engine.LastReport(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// GetExample handles GET /example.
func (s *Server) GetExample(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, s.Engine.Example())
}

// GetGraph handles GET /graph, overlaying the last report when there is one.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	report, err := s.Engine.LastReport(r.Context())
	if err != nil && !errors.Is(err, domain.ErrReportNotFound) {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, s.Engine.Graph(report))
}

// SubscribeEvents handles GET /events (SSE). Each change of the workspace
// files triggers a reload and a check whose report is pushed as an event.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	changes, err := s.Engine.Watch(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			if err := s.Engine.Reload(r.Context()); err != nil {
				s.Logger.Warn("reload failed", "error", err)
				continue
			}
			report, err := s.Engine.Check(r.Context())
			if err != nil {
				s.Logger.Warn("check failed", "error", err)
				continue
			}
			data, err := json.Marshal(report)
			if err != nil {
				s.Logger.Error("failed to encode report", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: report\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

// -- Helpers --

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrVariableNotFound), errors.Is(err, domain.ErrReportNotFound):
		status = http.StatusNotFound
	case errors.Is(err, context.Canceled):
		status = http.StatusRequestTimeout
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
