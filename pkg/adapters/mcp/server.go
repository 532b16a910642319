package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/description"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/aretw0/automata/pkg/search"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ResourceScheme prefixes the URIs of automaton resources.
const ResourceScheme = "automata://"

// SimulateResult is the structured output of the simulate tool.
// Transitions are rendered as "from symbol to" strings, which read well in a chat.
type SimulateResult struct {
	RunID     string       `json:"run_id" jsonschema_description:"Identifier of this run"`
	Trace     []string     `json:"trace" jsonschema_description:"Accepted transitions in input order"`
	Rejection string       `json:"rejection,omitempty" jsonschema_description:"Why input processing stopped early, if it did"`
	Final     domain.State `json:"final" jsonschema_description:"State reached when input processing stopped"`
	Accepted  bool         `json:"accepted" jsonschema_description:"Whole word consumed and final state reached"`
	Search    PathResult   `json:"search" jsonschema_description:"Shortest path from the reached state to a final state"`
}

// PathResult is the structured output of the find_path tool.
type PathResult struct {
	From    domain.State `json:"from" jsonschema_description:"Start state of the search"`
	Found   bool         `json:"found" jsonschema_description:"Whether a final state is reachable"`
	Path    []string     `json:"path" jsonschema_description:"Transitions to follow, in order"`
	Message string       `json:"message,omitempty" jsonschema_description:"Diagnostic when no path exists"`
}

func newPathResult(from domain.State, path *domain.Path, err error) PathResult {
	res := PathResult{From: from, Path: []string{}}
	if err != nil {
		res.Message = err.Error()
		return res
	}
	res.Found = true
	for _, t := range path.Transitions() {
		res.Path = append(res.Path, t.String())
	}
	return res
}

// Engine defines what the MCP server needs from the simulator core.
type Engine interface {
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, id string) (*domain.Automaton, error)
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("automata-mcp", strings.TrimSpace(automata.Version)),
	}

	s.registerTools()
	s.registerResources()

	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: simulate
	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Replay a word on an automaton, then search the nearest final state from where the replay stopped."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description("Automaton ID (see list_automata)")),
		mcp.WithString("word", mcp.Required(), mcp.Description("Input word; every character is one symbol")),
		mcp.WithNumber("start", mcp.Description("Start state (optional, defaults to the initial state)")),
		mcp.WithOutputSchema[SimulateResult](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	// TOOL: find_path
	pathTool := mcp.NewTool("find_path",
		mcp.WithDescription("Find the shortest sequence of transitions from a state to any final state."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description("Automaton ID (see list_automata)")),
		mcp.WithNumber("from", mcp.Description("Start state (optional, defaults to the initial state)")),
		mcp.WithOutputSchema[PathResult](),
	)
	s.mcpServer.AddTool(pathTool, mcp.NewStructuredToolHandler(s.handleFindPath))

	// TOOL: list_automata
	s.mcpServer.AddTool(mcp.NewTool("list_automata",
		mcp.WithDescription("List the IDs of the available automata."),
	), s.handleList)

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get a Mermaid flowchart of an automaton."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description("Automaton ID")),
	), s.handleGraph)
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResult, error) {
	id, _ := args["automaton"].(string)
	word, _ := args["word"].(string)

	a, err := s.engine.Load(ctx, id)
	if err != nil {
		return SimulateResult{}, fmt.Errorf("load failed: %w", err)
	}

	var opts []domain.MachineOption
	if start, ok := numberArg(args, "start"); ok {
		opts = append(opts, domain.WithStartState(start))
	}

	report, err := runner.New(runner.WithLogger(s.logger)).Run(ctx, domain.NewMachine(a, opts...), word)
	if err != nil {
		s.logger.Warn("MCP Simulate: run failed", "error", err, "size", len(word))
		return SimulateResult{}, fmt.Errorf("simulate failed: %w", err)
	}

	res := SimulateResult{
		RunID:    report.RunID,
		Trace:    []string{},
		Final:    report.Final,
		Accepted: report.Accepted,
		Search:   newPathResult(report.Final, report.Path, report.PathErr),
	}
	for _, t := range report.Trace {
		res.Trace = append(res.Trace, t.String())
	}
	if report.Rejection != nil {
		res.Rejection = report.Rejection.Error()
	}
	return res, nil
}

func (s *Server) handleFindPath(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PathResult, error) {
	id, _ := args["automaton"].(string)

	a, err := s.engine.Load(ctx, id)
	if err != nil {
		return PathResult{}, fmt.Errorf("load failed: %w", err)
	}

	from := a.Initial()
	if start, ok := numberArg(args, "from"); ok {
		from = start
	}

	path, err := search.FindPathToAnyFinalState(a, from)
	if err != nil {
		return newPathResult(from, nil, err), nil
	}
	return newPathResult(from, &path, nil), nil
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := s.engine.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	if ids == nil {
		ids = []string{}
	}
	jsonBytes, _ := json.Marshal(ids)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("automaton")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a, err := s.engine.Load(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(a, nil)), nil
}

// numberArg reads an optional numeric argument; JSON numbers arrive as float64.
func numberArg(args map[string]interface{}, key string) (domain.State, bool) {
	switch v := args[key].(type) {
	case float64:
		return domain.State(v), true
	case int:
		return domain.State(v), true
	case json.Number:
		n, err := v.Int64()
		return domain.State(n), err == nil
	}
	return 0, false
}

func (s *Server) registerResources() {
	// EXPOSE: automata://index
	s.mcpServer.AddResource(mcp.NewResource(ResourceScheme+"index", "Available Automata",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.engine.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list automata: %w", err)
		}
		jsonBytes, _ := json.Marshal(ids)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ResourceScheme + "index",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	// EXPOSE: automata://{id} as a text description
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(ResourceScheme+"{id}", "Automaton Description",
		mcp.WithTemplateMIMEType("text/plain"),
	), s.readDescription)
}

func (s *Server) readDescription(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	id := strings.TrimPrefix(uri, ResourceScheme)

	a, err := s.engine.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", id, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     description.Render(a),
		},
	}, nil
}
