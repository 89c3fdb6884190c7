package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/vitrine"
	"github.com/aretw0/vitrine/internal/logging"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/inject"
	"github.com/aretw0/vitrine/pkg/preview"
	"github.com/aretw0/vitrine/pkg/templates"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// TemplatesURI is the resource listing every starter template.
const TemplatesURI = "vitrine://templates"

// PreviewResponse is the structured output of preview_markup.
type PreviewResponse struct {
	Preview preview.View `json:"preview" jsonschema_description:"The classified preview of the markup"`
	Wrapped bool         `json:"wrapped" jsonschema_description:"Whether default namespaces were injected before parsing"`
}

// Previewer evaluates one document. *pipeline.Pipeline satisfies it.
type Previewer interface {
	Run(ctx context.Context, document string, wrap bool) domain.Result
}

// Server exposes the preview pipeline as MCP tools.
type Server struct {
	previewer Previewer
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(previewer Previewer, opts ...Option) *Server {
	s := &Server{
		previewer: previewer,
		mcpServer: server.NewMCPServer("vitrine-mcp", strings.TrimSpace(vitrine.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx is done.
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

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
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
	// TOOL: preview_markup
	previewTool := mcp.NewTool("preview_markup",
		mcp.WithDescription("Parse a XAML-style markup fragment and classify it as rendered, non-visual, failed or empty."),
		mcp.WithString("markup", mcp.Required(), mcp.Description("The markup fragment")),
		mcp.WithBoolean("wrap", mcp.DefaultBool(true), mcp.Description("Inject default namespace declarations before parsing")),
		mcp.WithOutputSchema[PreviewResponse](),
	)
	s.mcpServer.AddTool(previewTool, mcp.NewStructuredToolHandler(s.handlePreview))

	// TOOL: wrap_markup
	s.mcpServer.AddTool(mcp.NewTool("wrap_markup",
		mcp.WithDescription("Return the fragment with default namespace declarations injected, exactly as the previewer would parse it."),
		mcp.WithString("markup", mcp.Required(), mcp.Description("The markup fragment")),
	), s.handleWrap)

	// TOOL: list_templates
	s.mcpServer.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List the starter templates."),
	), s.handleListTemplates)

	// TOOL: get_template
	s.mcpServer.AddTool(mcp.NewTool("get_template",
		mcp.WithDescription("Get the markup of a starter template."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Template name")),
	), s.handleGetTemplate)
}

func (s *Server) handlePreview(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PreviewResponse, error) {
	markup, ok := args["markup"].(string)
	if !ok {
		return PreviewResponse{}, errors.New("markup is required")
	}
	wrap := true
	if v, ok := args["wrap"].(bool); ok {
		wrap = v
	}

	result := s.previewer.Run(ctx, markup, wrap)
	s.logger.Debug("MCP preview", "kind", result.Kind, "type", result.TypeName)
	return PreviewResponse{
		Preview: preview.NewView(result),
		Wrapped: wrap && inject.NeedsWrap(markup),
	}, nil
}

func (s *Server) handleWrap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	markup, err := request.RequireString("markup")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(inject.Inject(markup)), nil
}

func (s *Server) handleListTemplates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(templates.All())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGetTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := templates.Body(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(body), nil
}

func (s *Server) registerResources() {
	// EXPOSE: vitrine://templates
	s.mcpServer.AddResource(mcp.NewResource(TemplatesURI, "Starter Templates",
		mcp.WithMIMEType("application/json"),
	), s.readTemplates)
}

func (s *Server) readTemplates(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(templates.All())
	if err != nil {
		return nil, fmt.Errorf("failed to encode templates: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      TemplatesURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
