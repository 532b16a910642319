package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/description"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/aretw0/automata/pkg/search"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodySize bounds request bodies; words are further limited by the runner.
const maxBodySize = 1 << 20

// Engine defines what the API needs from the simulator core.
type Engine interface {
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, id string) (*domain.Automaton, error)
}

// Observer receives run statistics. internal/metrics.Collector implements it.
type Observer interface {
	Hooks(id string) domain.LifecycleHooks
	ObserveRun(id string, report *runner.Report)
	ObservePath(id string, path domain.Path)
	Handler() http.Handler
}

// Server serves the JSON API.
type Server struct {
	Engine    Engine
	Publisher ports.Publisher
	Observer  Observer
	Logger    *slog.Logger

	MaxInputSize int
}

// Option configures the Server.
type Option func(*Server)

// WithPublisher enables PUT /automata/{id}.
func WithPublisher(p ports.Publisher) Option {
	return func(s *Server) {
		s.Publisher = p
	}
}

// WithObserver records metrics for every run and serves them on /metrics.
func WithObserver(o Observer) Option {
	return func(s *Server) {
		s.Observer = o
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMaxInputSize limits simulated words, see runner.WithMaxInputSize.
func WithMaxInputSize(size int) Option {
	return func(s *Server) {
		s.MaxInputSize = size
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{Engine: engine}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.Observer != nil {
		r.Handle("/metrics", s.Observer.Handler())
	}

	r.Route("/automata", func(r chi.Router) {
		r.Get("/", s.ListAutomata)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetAutomaton)
			r.Put("/", s.PublishAutomaton)
			r.Get("/graph", s.GetGraph)
			r.Get("/validate", s.Validate)
			r.Post("/simulate", s.Simulate)
			r.Post("/path", s.FindPath)
		})
	})

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
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
    <title>Automata API Documentation</title>
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

// SimulateRequest is the body of POST /automata/{id}/simulate.
type SimulateRequest struct {
	Word  string        `json:"word"`
	Start *domain.State `json:"start,omitempty"`
}

// PathRequest is the body of POST /automata/{id}/path.
type PathRequest struct {
	From *domain.State `json:"from,omitempty"`
}

// Rejection describes the symbol that stopped a replay.
type Rejection struct {
	Kind    domain.RejectionKind `json:"kind"`
	State   domain.State         `json:"state"`
	Symbol  domain.Symbol        `json:"symbol"`
	Message string               `json:"message"`
}

// PathResult is the outcome of a search.
type PathResult struct {
	Found   bool         `json:"found"`
	From    domain.State `json:"from"`
	Path    *domain.Path `json:"path,omitempty"`
	Message string       `json:"message,omitempty"`
}

// SimulateResponse mirrors runner.Report.
type SimulateResponse struct {
	RunID     string              `json:"run_id"`
	Word      string              `json:"word"`
	Start     domain.State        `json:"start"`
	Trace     []domain.Transition `json:"trace"`
	Rejection *Rejection          `json:"rejection,omitempty"`
	Final     domain.State        `json:"final"`
	Accepted  bool                `json:"accepted"`
	Search    PathResult          `json:"search"`
}

func newPathResult(from domain.State, path *domain.Path, err error) PathResult {
	res := PathResult{From: from, Path: path, Found: path != nil}
	if err != nil {
		res.Message = err.Error()
	}
	return res
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "automata-http",
		"version":     strings.TrimSpace(automata.Version),
		"api_version": apiVersion,
	})
}

// ListAutomata handles the GET /automata request.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"automata": ids})
}

// GetAutomaton handles the GET /automata/{id} request.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request) {
	id, a, ok := s.load(w, r)
	if !ok {
		return
	}
	doc := description.NewDocument(a)
	doc.Name = id
	writeJSON(w, http.StatusOK, doc)
}

// PublishAutomaton handles the PUT /automata/{id} request.
// Text bodies are parsed as the text format; application/json and YAML bodies as documents.
func (s *Server) PublishAutomaton(w http.ResponseWriter, r *http.Request) {
	if s.Publisher == nil {
		writeError(w, http.StatusMethodNotAllowed, "the configured loader does not support publishing")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	a, err := description.ParseFormat(formatFromContentType(r.Header.Get("Content-Type")), data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.Publisher.Publish(r.Context(), id, a); err != nil {
		s.fail(w, r, err)
		return
	}
	s.Logger.Info("automaton published", "id", id, "request_id", middleware.GetReqID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func formatFromContentType(ct string) description.Format {
	mediaType, _, _ := mime.ParseMediaType(ct)
	switch mediaType {
	case "application/json":
		return description.FormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml":
		return description.FormatYAML
	default:
		return description.FormatText
	}
}

// GetGraph handles the GET /automata/{id}/graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	_, a, ok := s.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(a, nil))
}

// Validate handles the GET /automata/{id}/validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	_, a, ok := s.load(w, r)
	if !ok {
		return
	}
	res := validator.Inspect(a)
	if res.Errors == nil {
		res.Errors = []string{}
	}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}
	writeJSON(w, http.StatusOK, res)
}

// Simulate handles the POST /automata/{id}/simulate request.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		s.Logger.Warn("Simulate: Invalid request body", "error", err)
		return
	}

	id, a, ok := s.load(w, r)
	if !ok {
		return
	}

	logger := s.Logger.With("request_id", middleware.GetReqID(r.Context()), "automaton", id)
	hooks := observability.LoggingHooks(logger)
	if s.Observer != nil {
		hooks = observability.Combine(s.Observer.Hooks(id), hooks)
	}
	machineOpts := []domain.MachineOption{domain.WithHooks(hooks)}
	if body.Start != nil {
		machineOpts = append(machineOpts, domain.WithStartState(*body.Start))
	}
	m := domain.NewMachine(a, machineOpts...)

	run := runner.New(
		runner.WithLogger(logger),
		runner.WithMaxInputSize(s.MaxInputSize),
	)
	report, err := run.Run(r.Context(), m, body.Word)
	if err != nil {
		if errors.Is(err, runner.ErrInputTooLarge) || errors.Is(err, runner.ErrInvalidUTF8) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.fail(w, r, err)
		return
	}
	if s.Observer != nil {
		s.Observer.ObserveRun(id, report)
	}

	resp := SimulateResponse{
		RunID:    report.RunID,
		Word:     report.Word,
		Start:    report.Start,
		Trace:    report.Trace,
		Final:    report.Final,
		Accepted: report.Accepted,
		Search:   newPathResult(report.Final, report.Path, report.PathErr),
	}
	if resp.Trace == nil {
		resp.Trace = []domain.Transition{}
	}
	if rej := report.Rejection; rej != nil {
		resp.Rejection = &Rejection{Kind: rej.Kind, State: rej.State, Symbol: rej.Symbol, Message: rej.Error()}
	}
	writeJSON(w, http.StatusOK, resp)
}

// FindPath handles the POST /automata/{id}/path request. An empty body searches from the initial state.
func (s *Server) FindPath(w http.ResponseWriter, r *http.Request) {
	var body PathRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, a, ok := s.load(w, r)
	if !ok {
		return
	}

	from := a.Initial()
	if body.From != nil {
		from = *body.From
	}

	path, err := search.FindPathToAnyFinalState(a, from)
	if err != nil {
		writeJSON(w, http.StatusOK, newPathResult(from, nil, err))
		return
	}
	if s.Observer != nil {
		s.Observer.ObservePath(id, path)
	}
	writeJSON(w, http.StatusOK, newPathResult(from, &path, nil))
}

func pathID(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "id")
	id, err := url.PathUnescape(raw)
	if err != nil || id == "" {
		return "", fmt.Errorf("invalid automaton id %q", raw)
	}
	return id, nil
}

// load resolves the {id} parameter and writes the error response itself when it fails.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (string, *domain.Automaton, bool) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", nil, false
	}
	a, err := s.Engine.Load(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return "", nil, false
	}
	return id, a, true
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrAutomatonNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAutomaton), errors.Is(err, domain.ErrLoad):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err, "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()))
	}
	writeError(w, status, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
