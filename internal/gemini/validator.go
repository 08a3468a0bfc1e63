package gemini

import (
	"context"
	"log/slog"

	"google.golang.org/genai"
)

const (
	probePrompt    = "Reply with OK"
	probeMaxTokens = 16
)

// Connector opens a model API for a key. Tests replace it.
type Connector func(ctx context.Context, apiKey string) (modelAPI, error)

// connectGeminiAPI opens the Gemini Developer API backend for apiKey.
func connectGeminiAPI(ctx context.Context, apiKey string) (modelAPI, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return gc.Models, nil
}

// Validator confirms an API key with one minimal generation call.
type Validator struct {
	Model   string
	Connect Connector
	Logger  *slog.Logger
}

// NewValidator returns a Validator probing model over the Gemini API.
func NewValidator(model string, logger *slog.Logger) *Validator {
	return &Validator{Model: model, Connect: connectGeminiAPI, Logger: logger}
}

// Validate reports whether the key produced a usable response. Every failure
// (transport, auth, empty reply) is reported as false; the probe is not retried,
// so false means "could not be confirmed".
func (v *Validator) Validate(ctx context.Context, apiKey string) bool {
	if apiKey == "" {
		return false
	}

	models, err := v.Connect(ctx, apiKey)
	if err != nil {
		v.Logger.Debug("key probe: client setup failed", "error", err)
		return false
	}

	resp, err := models.GenerateContent(ctx, v.Model, genai.Text(probePrompt), &genai.GenerateContentConfig{
		MaxOutputTokens: probeMaxTokens,
	})
	if err != nil {
		v.Logger.Debug("key probe: request failed", "model", v.Model, "error", err)
		return false
	}
	if resp == nil || len(resp.Candidates) == 0 {
		v.Logger.Debug("key probe: no candidates", "model", v.Model)
		return false
	}
	return true
}
