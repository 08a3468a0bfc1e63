// Package installer sequences skill installation, key capture, key
// validation and host registration into the install and uninstall flows.
package installer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/config"
	ierrors "github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/errors"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/logging"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/registration"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/skill"
)

// KeyURL is where users obtain a Gemini API key.
const KeyURL = "https://aistudio.google.com/apikey"

const secretPrompt = "  Enter your Gemini API key: "

// AssetInstaller places and removes the skill asset.
type AssetInstaller interface {
	Install(scope skill.Scope) (string, error)
	Remove() []skill.Removal
}

// SecretPrompter reads a key from the user.
type SecretPrompter interface {
	ReadSecret(prompt string) (string, error)
}

// KeyValidator confirms a key with the generation service.
type KeyValidator interface {
	Validate(ctx context.Context, key string) bool
}

// Registrar adds and removes the host integration.
type Registrar interface {
	Add(ctx context.Context, spec registration.Spec) registration.Result
	Remove(ctx context.Context, name, scope string) registration.Result
}

// Result is the terminal state of an install run.
type Result int

const (
	// ResultComplete means the asset is installed and the host accepted the registration.
	ResultComplete Result = iota
	// ResultNoSecret means no key was supplied; registration was skipped.
	ResultNoSecret
	// ResultInsideHost means registration was left to the user because the
	// process runs inside a host session.
	ResultInsideHost
	// ResultRegistrationFailed means the host rejected the registration and
	// the manual command was printed.
	ResultRegistrationFailed
)

func (r Result) String() string {
	switch r {
	case ResultComplete:
		return "complete"
	case ResultNoSecret:
		return "partial: no key"
	case ResultInsideHost:
		return "partial: inside host session"
	case ResultRegistrationFailed:
		return "partial: registration failed"
	default:
		return "unknown"
	}
}

// Partial reports whether the run ended without a registration.
func (r Result) Partial() bool {
	return r != ResultComplete
}

// SecretSource records where the key came from.
type SecretSource string

const (
	SourceNone        SecretSource = ""
	SourceEnvironment SecretSource = "environment"
	SourcePrompt      SecretSource = "prompt"
)

// Outcome describes a finished install run.
type Outcome struct {
	Result       Result
	SkillPath    string
	SecretSource SecretSource
	// Registration is set when the host was invoked.
	Registration *registration.Result
}

// Installer runs the install and uninstall flows. Every collaborator is
// injected; the flows never read the process environment themselves.
type Installer struct {
	Assets    AssetInstaller
	Prompter  SecretPrompter
	Validator KeyValidator
	Registrar Registrar

	// HostBinary is the host CLI name shown in manual commands.
	HostBinary  string
	Integration string
	Transport   string
	// Server is the argv registered for starting this tool.
	Server []string

	Out    io.Writer
	Logger *slog.Logger
}

// New builds an Installer from configuration and collaborators.
func New(cfg *config.Config, assets AssetInstaller, prompter SecretPrompter, validator KeyValidator, registrar Registrar, out io.Writer, logger *slog.Logger) *Installer {
	return &Installer{
		Assets:      assets,
		Prompter:    prompter,
		Validator:   validator,
		Registrar:   registrar,
		HostBinary:  cfg.Host.Binary,
		Integration: cfg.Host.Integration,
		Transport:   cfg.Host.Transport,
		Server:      registration.ServerCommand(cfg.Server.Command, nil),
		Out:         out,
		Logger:      logging.WithComponent(logger, "installer"),
	}
}

// Install runs the install flow for scope. It returns an error only for
// fatal outcomes: an unusable packaged asset, an unwritable destination,
// a rejected key, or interrupted key entry. Every partial outcome returns
// a nil error.
func (in *Installer) Install(ctx context.Context, scope skill.Scope, env config.Environment) (Outcome, error) {
	log := logging.WithScope(in.Logger, scope.String())
	var out Outcome

	in.printf("\nInstalling %s...\n\n", in.Integration)

	path, err := in.Assets.Install(scope)
	if err != nil {
		log.Error("skill install failed", "error", err)
		return out, err
	}
	out.SkillPath = path
	in.printf("✓ Skill installed: %s\n", path)
	in.printf("  Invoke with /%s inside Claude Code\n\n", in.Integration)

	secret, source, err := in.acquireSecret(env)
	if err != nil {
		return out, err
	}
	out.SecretSource = source

	spec := in.spec(scope, secret)

	if secret == "" {
		log.Info("no key supplied, skipping registration")
		out.Result = ResultNoSecret
		in.printf("\n! No API key provided, skipping MCP registration.\n")
		in.printFallback(spec)
		in.printf("Setup complete (partial). Add the MCP server manually when ready.\n\n")
		return out, nil
	}

	in.printf("Validating API key...\n")
	if !in.Validator.Validate(ctx, secret) {
		log.Warn("key rejected by validation probe", "source", source)
		in.printf("✗ API key could not be confirmed. Check it at %s and re-run.\n", KeyURL)
		if env.InsideHostSession {
			in.printf("\n! Running inside Claude Code, cannot auto-register.\n")
			in.printFallback(spec)
		} else {
			in.printf("\n")
		}
		return out, ierrors.SecretRejected(config.EnvAPIKey).
			WithDetail("hint", "check the key at "+KeyURL+"; a network failure also ends here")
	}
	in.printf("✓ API key confirmed\n")

	if env.InsideHostSession {
		log.Info("inside host session, leaving registration to the user")
		out.Result = ResultInsideHost
		in.printf("\n! Running inside Claude Code, cannot auto-register.\n")
		in.printFallback(spec)
		in.printf("Setup complete (partial). Run the command above in a new terminal.\n\n")
		return out, nil
	}

	in.printf("\nRegistering MCP server with Claude Code...\n")
	res := in.Registrar.Add(ctx, spec)
	out.Registration = &res

	if res.Status != registration.StatusOK {
		log.Warn("registration failed", "exit_code", res.ExitCode, "error", res.Err)
		out.Result = ResultRegistrationFailed
		in.printf("! Auto-registration failed")
		if detail := firstLine(res.Stderr); detail != "" {
			in.printf(": %s", detail)
		}
		in.printf("\n")
		in.printFallback(spec)
		return out, nil
	}

	out.Result = ResultComplete
	in.printf("✓ MCP server registered: %s\n", in.Integration)
	in.printf("  Verify with /mcp in Claude Code\n\n")
	in.printf("Setup complete!\n\n")
	return out, nil
}

// acquireSecret prefers the environment and falls back to the prompter.
// The result is trimmed.
func (in *Installer) acquireSecret(env config.Environment) (string, SecretSource, error) {
	if key := strings.TrimSpace(env.APIKey); key != "" {
		in.printf("✓ %s detected from environment\n", config.EnvAPIKey)
		return key, SourceEnvironment, nil
	}

	in.printf("Gemini API key needed to register the MCP server.\n")
	in.printf("  Get one at: %s\n\n", KeyURL)

	key, err := in.Prompter.ReadSecret(secretPrompt)
	if err != nil {
		return "", SourceNone, err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", SourceNone, nil
	}
	return key, SourcePrompt, nil
}

func (in *Installer) spec(scope skill.Scope, secret string) registration.Spec {
	return registration.Spec{
		Name:      in.Integration,
		Transport: in.Transport,
		Scope:     scope.String(),
		EnvVar:    config.EnvAPIKey,
		Secret:    secret,
		Server:    in.Server,
	}
}

// printFallback prints the add command for a separate terminal.
func (in *Installer) printFallback(spec registration.Spec) {
	in.printf("\n  Run this in a new terminal to register the MCP server:\n\n")
	in.printf("%s\n\n", indent(registration.ManualAddCommand(in.HostBinary, spec), "  "))
}

func (in *Installer) printf(format string, args ...any) {
	fmt.Fprintf(in.Out, format, args...)
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
