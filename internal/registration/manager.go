package registration

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"

	ierrors "github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/errors"
)

// Status is the classified outcome of one host invocation.
type Status int

const (
	// StatusOK means the host exited 0.
	StatusOK Status = iota
	// StatusNotFound means a removal found nothing registered.
	StatusNotFound
	// StatusFailed covers non-zero exits and launch failures.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not found"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result reports one Add or Remove call.
type Result struct {
	Status   Status
	ExitCode int
	// Stderr is the host's trimmed standard error, for display only.
	Stderr string
	// Err is set when Status is StatusFailed.
	Err error
}

// notFoundPatterns match the host's wording for "nothing to remove". The host
// exposes no distinct exit code for this case, so the text is all there is.
var notFoundPatterns = []string{
	"not found",
	"no mcp server",
	"no such",
	"does not exist",
	"not registered",
}

// isNotFound reports whether host output says the integration is absent.
func isNotFound(output string) bool {
	lower := strings.ToLower(output)
	for _, p := range notFoundPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Manager invokes the host CLI. Calls are never retried.
type Manager struct {
	// Binary is the host executable, resolved on PATH when relative.
	Binary string
	Logger *slog.Logger
}

// NewManager returns a Manager for the given host binary.
func NewManager(binary string, logger *slog.Logger) *Manager {
	return &Manager{Binary: binary, Logger: logger}
}

// Add registers spec with the host.
func (m *Manager) Add(ctx context.Context, spec Spec) Result {
	m.Logger.Debug("registering integration",
		"binary", m.Binary, "args", strings.Join(spec.RedactedAddArgs(), " "))

	res := m.run(ctx, spec.AddArgs())
	if res.Status == StatusFailed && res.Err == nil {
		res.Err = ierrors.RegistrationFailed(spec.Name, res.ExitCode, res.Stderr)
	}
	m.Logger.Debug("register finished", "status", res.Status, "exit_code", res.ExitCode)
	return res
}

// Remove unregisters name at scope. A host failure whose output says the
// integration does not exist is reported as StatusNotFound.
func (m *Manager) Remove(ctx context.Context, name, scope string) Result {
	args := RemoveArgs(name, scope)
	m.Logger.Debug("removing integration", "binary", m.Binary, "args", strings.Join(args, " "))

	res := m.run(ctx, args)
	if res.Status == StatusFailed && res.Err == nil {
		if isNotFound(res.Stderr) {
			res.Status = StatusNotFound
		} else {
			res.Err = ierrors.RegistrationFailed(name, res.ExitCode, res.Stderr)
		}
	}
	m.Logger.Debug("remove finished", "scope", scope, "status", res.Status, "exit_code", res.ExitCode)
	return res
}

// run executes the host and waits for it to exit. Stdout is captured with
// stderr because some host versions report errors there.
func (m *Manager) run(ctx context.Context, args []string) Result {
	cmd := exec.CommandContext(ctx, m.Binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := strings.TrimSpace(stderr.String())
	if output == "" {
		output = strings.TrimSpace(stdout.String())
	}

	if err == nil {
		return Result{Status: StatusOK}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{Status: StatusFailed, ExitCode: exitErr.ExitCode(), Stderr: output}
	}

	// Never started: missing binary, permission, cancelled context.
	return Result{
		Status:   StatusFailed,
		ExitCode: -1,
		Stderr:   output,
		Err:      ierrors.HostLaunchFailed(m.Binary, err),
	}
}
