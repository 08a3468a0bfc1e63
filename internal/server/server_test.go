package server

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/config"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/gemini"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/logging"
)

type fakeGenerator struct {
	text string
	err  error
	last gemini.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req gemini.Request) (string, error) {
	f.last = req
	return f.text, f.err
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = ToolGenerate
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	default:
		t.Fatalf("content type = %T, want text", res.Content[0])
		return ""
	}
}

func TestHandleGenerate(t *testing.T) {
	t.Run("generates with design context", func(t *testing.T) {
		gen := &fakeGenerator{text: "export function Card() {}"}
		dc := &config.DesignContext{Model: "gemini-2.5-pro", DesignContext: "rounded cards"}
		s := New(gen, dc, logging.NewForTest())

		res, err := s.handleGenerate(context.Background(), callRequest(map[string]any{"prompt": "a card"}))
		if err != nil {
			t.Fatalf("handleGenerate() error = %v", err)
		}
		if res.IsError {
			t.Fatalf("result is an error: %s", resultText(t, res))
		}
		if got := resultText(t, res); got != "export function Card() {}" {
			t.Errorf("text = %q", got)
		}
		if gen.last.Model != "gemini-2.5-pro" {
			t.Errorf("model = %q, want design context model", gen.last.Model)
		}
		if !strings.Contains(gen.last.SystemPrompt, "rounded cards") {
			t.Error("system prompt missing design context")
		}
	})

	t.Run("modify mode", func(t *testing.T) {
		gen := &fakeGenerator{text: "x"}
		s := New(gen, nil, logging.NewForTest())

		_, err := s.handleGenerate(context.Background(), callRequest(map[string]any{
			"prompt":        "make it blue",
			"existing_code": "export const A = () => null",
			"model":         "gemini-2.5-flash-lite",
		}))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(gen.last.Prompt, "export const A") {
			t.Error("existing code not forwarded")
		}
		if !strings.Contains(gen.last.SystemPrompt, "Modify Component") {
			t.Error("modify instructions missing")
		}
		if gen.last.Model != "gemini-2.5-flash-lite" {
			t.Errorf("model = %q, want argument override", gen.last.Model)
		}
	})

	t.Run("missing prompt", func(t *testing.T) {
		s := New(&fakeGenerator{}, nil, logging.NewForTest())
		res, err := s.handleGenerate(context.Background(), callRequest(map[string]any{}))
		if err != nil {
			t.Fatal(err)
		}
		if !res.IsError {
			t.Error("expected tool error for missing prompt")
		}
	})

	t.Run("generator failure", func(t *testing.T) {
		s := New(&fakeGenerator{err: errors.New("quota exceeded")}, nil, logging.NewForTest())
		res, err := s.handleGenerate(context.Background(), callRequest(map[string]any{"prompt": "p"}))
		if err != nil {
			t.Fatal(err)
		}
		if !res.IsError || !strings.Contains(resultText(t, res), "quota exceeded") {
			t.Errorf("result = %+v", res)
		}
	})
}

func TestSystemPrompt(t *testing.T) {
	if got := SystemPrompt(nil); got != basePrompt {
		t.Error("nil context should yield the base prompt")
	}

	dc := &config.DesignContext{
		Conventions:       &config.Conventions{Styling: "tailwind", DataFetching: "tanstack-query"},
		ComponentPatterns: map[string]string{"widgets": "src/widgets", "shared": "src/shared/ui"},
	}
	got := SystemPrompt(dc)
	for _, want := range []string{"- Styling: tailwind", "- Data Fetching: tanstack-query", "## Component File Structure"} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(got, "- Units:") {
		t.Error("empty conventions should be omitted")
	}
	if strings.Index(got, "- shared:") > strings.Index(got, "- widgets:") {
		t.Error("component patterns should be sorted")
	}
}

func TestNew_RegistersTool(t *testing.T) {
	s := New(&fakeGenerator{}, nil, logging.NewForTest())
	if s.MCP() == nil {
		t.Fatal("MCP() = nil")
	}
	tool := generateTool()
	if tool.Name != ToolGenerate {
		t.Errorf("tool name = %q", tool.Name)
	}
	if len(tool.InputSchema.Required) != 1 || tool.InputSchema.Required[0] != "prompt" {
		t.Errorf("required = %v, want [prompt]", tool.InputSchema.Required)
	}
}
