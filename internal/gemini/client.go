// Package gemini adapts the Google GenAI SDK for content generation and
// API key probing.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/config"
)

// DefaultTemperature is used when a Request leaves Temperature unset.
const DefaultTemperature float32 = 0.7

// ErrEmptyResponse is returned when the service answers without text.
var ErrEmptyResponse = errors.New("gemini returned empty response")

// modelAPI is the subset of *genai.Models used here.
type modelAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Settings selects the backend and credentials.
type Settings struct {
	APIKey      string
	Model       string
	UseVertexAI bool
	Project     string
	Location    string
}

// SettingsFrom combines file configuration with the environment snapshot.
func SettingsFrom(cfg *config.Config, env config.Environment) Settings {
	gc := cfg.Gemini
	s := Settings{
		APIKey:      env.APIKey,
		Model:       gc.Model,
		UseVertexAI: gc.UseVertexAI || env.UseVertexAI,
		Project:     gc.Project,
		Location:    gc.Location,
	}
	if env.CloudProject != "" {
		s.Project = env.CloudProject
	}
	if env.CloudLocation != "" {
		s.Location = env.CloudLocation
	}
	return s
}

// ClientConfig returns the SDK configuration for these settings.
func (s Settings) ClientConfig() (*genai.ClientConfig, error) {
	if s.UseVertexAI {
		if s.Project == "" {
			return nil, fmt.Errorf("%s is required for Vertex AI", config.EnvCloudProject)
		}
		return &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  s.Project,
			Location: s.Location,
		}, nil
	}
	if s.APIKey == "" {
		return nil, fmt.Errorf("%s is required when %s is not set", config.EnvAPIKey, config.EnvUseVertexAI)
	}
	return &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  s.APIKey,
	}, nil
}

// Request is a single generation call.
type Request struct {
	SystemPrompt string
	Prompt       string
	// Model overrides the client default when non-empty.
	Model       string
	Temperature *float32
}

// Client issues generation requests.
type Client struct {
	models modelAPI
	model  string
	logger *slog.Logger
}

// NewClient connects to the backend selected by settings.
func NewClient(ctx context.Context, s Settings, logger *slog.Logger) (*Client, error) {
	cc, err := s.ClientConfig()
	if err != nil {
		return nil, err
	}
	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	if s.UseVertexAI {
		logger.Info("initialized Vertex AI client", "project", s.Project, "location", s.Location)
	} else {
		logger.Info("initialized Gemini API client")
	}
	return &Client{models: gc.Models, model: s.Model, logger: logger}, nil
}

// Generate sends one prompt and returns the response text.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	temp := DefaultTemperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}

	gcc := &genai.GenerateContentConfig{Temperature: &temp}
	if req.SystemPrompt != "" {
		gcc.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	c.logger.Debug("generating content", "model", model, "prompt_bytes", len(req.Prompt))
	resp, err := c.models.GenerateContent(ctx, model, genai.Text(req.Prompt), gcc)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
