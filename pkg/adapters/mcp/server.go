package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/envcheck"
	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CheckResponse is the structured result of the check_env tool.
type CheckResponse struct {
	OK          bool                `json:"ok" jsonschema_description:"True when no required variable is missing"`
	Missing     []string            `json:"missing" jsonschema_description:"Required variables absent from every env file"`
	Unused      []string            `json:"unused" jsonschema_description:"Env file entries not declared by any schema"`
	Diagnostics []domain.Diagnostic `json:"diagnostics" jsonschema_description:"Editor-style findings, one per problem"`
}

// Engine is the part of envcheck.Engine the MCP server needs.
type Engine interface {
	Variables() []domain.Variable
	Describe(name string) (string, error)
	Check(ctx context.Context) (*domain.Report, error)
	LastReport(ctx context.Context) (*domain.Report, error)
	Example() string
	Reload(ctx context.Context) error
}

// Server exposes an envcheck engine as an MCP server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("envcheck-mcp", envcheck.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
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

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_variables",
		mcp.WithDescription("List every environment variable declared by the workspace schemas."),
	), s.handleListVariables)

	s.mcpServer.AddTool(mcp.NewTool("describe_variable",
		mcp.WithDescription("Describe one environment variable: type, description, default, group."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Variable name, as written in the .env file")),
	), s.handleDescribeVariable)

	s.mcpServer.AddTool(mcp.NewTool("check_env",
		mcp.WithDescription("Check the workspace env files against the declared variables."),
		mcp.WithBoolean("reload", mcp.Description("Re-read schema files before checking (optional)")),
		mcp.WithOutputSchema[CheckResponse](),
	), mcp.NewStructuredToolHandler(s.handleCheck))

	s.mcpServer.AddTool(mcp.NewTool("generate_example",
		mcp.WithDescription("Generate .env.example content for the workspace."),
	), s.handleGenerateExample)
}

func (s *Server) handleListVariables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(s.engine.Variables())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleDescribeVariable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	md, err := s.engine.Describe(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(md), nil
}

func (s *Server) handleCheck(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CheckResponse, error) {
	if reload, _ := args["reload"].(bool); reload {
		if err := s.engine.Reload(ctx); err != nil {
			return CheckResponse{}, fmt.Errorf("reload failed: %w", err)
		}
	}

	report, err := s.engine.Check(ctx)
	if err != nil {
		s.logger.Error("MCP check failed", "error", err)
		return CheckResponse{}, fmt.Errorf("check failed: %w", err)
	}
	return toCheckResponse(report), nil
}

func (s *Server) handleGenerateExample(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.engine.Example()), nil
}

func toCheckResponse(report *domain.Report) CheckResponse {
	resp := CheckResponse{
		OK:          report.OK(),
		Missing:     make([]string, 0, len(report.Missing)),
		Unused:      make([]string, 0, len(report.Unused)),
		Diagnostics: report.Diagnostics,
	}
	for _, v := range report.Missing {
		resp.Missing = append(resp.Missing, v.Name)
	}
	for _, u := range report.Unused {
		resp.Unused = append(resp.Unused, u.Name)
	}
	if resp.Diagnostics == nil {
		resp.Diagnostics = []domain.Diagnostic{}
	}
	return resp
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("envcheck://example", "Generated .env.example",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "envcheck://example",
				MIMEType: "text/plain",
				Text:     s.engine.Example(),
			},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource("envcheck://report", "Last check report",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		report, err := s.engine.LastReport(ctx)
		if errors.Is(err, domain.ErrReportNotFound) {
			report, err = s.engine.Check(ctx)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load report: %w", err)
		}
		jsonBytes, _ := json.Marshal(report)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "envcheck://report",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
