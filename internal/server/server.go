// Package server runs the stdio MCP server the host starts after registration.
package server

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/config"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/gemini"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ToolGenerate is the name of the generation tool.
const ToolGenerate = "gemini_generate"

// Generator produces text for a request.
type Generator interface {
	Generate(ctx context.Context, req gemini.Request) (string, error)
}

// Server exposes the generator as MCP tools.
type Server struct {
	mcp          *server.MCPServer
	gen          Generator
	systemPrompt string
	model        string
	logger       *slog.Logger
}

// New builds the MCP server. A model named in the design context overrides
// the client's default.
func New(gen Generator, dc *config.DesignContext, logger *slog.Logger) *Server {
	s := &Server{
		gen:          gen,
		systemPrompt: SystemPrompt(dc),
		logger:       logger,
	}
	if dc != nil {
		s.model = dc.Model
	}

	s.mcp = server.NewMCPServer(
		config.ToolID,
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	s.mcp.AddTool(generateTool(), s.handleGenerate)
	return s
}

func generateTool() mcp.Tool {
	return mcp.NewTool(ToolGenerate,
		mcp.WithDescription("Generate or modify a single React TypeScript component with Gemini. Returns the component source only."),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("What to build: component name, props, behavior and styling notes"),
		),
		mcp.WithString("existing_code",
			mcp.Description("Current component source when modifying instead of creating"),
		),
		mcp.WithString("model",
			mcp.Description("Gemini model override"),
		),
	)
}

func (s *Server) handleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := req.RequireString("prompt")
	if err != nil || strings.TrimSpace(prompt) == "" {
		return mcp.NewToolResultError("prompt is required"), nil
	}

	system := s.systemPrompt
	if existing := req.GetString("existing_code", ""); existing != "" {
		system += modifyPrompt
		prompt = prompt + "\n\n## Existing Component\n\n" + existing
	}

	model := req.GetString("model", s.model)
	s.logger.Debug("tool call", "tool", ToolGenerate, "model", model)

	text, err := s.gen.Generate(ctx, gemini.Request{
		SystemPrompt: system,
		Prompt:       prompt,
		Model:        model,
	})
	if err != nil {
		s.logger.Warn("generation failed", "error", err)
		return mcp.NewToolResultError("generation failed: " + err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// MCP returns the underlying server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves on stdin/stdout until the host closes the stream.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}
