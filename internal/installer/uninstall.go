package installer

import (
	"context"
	"errors"

	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/config"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/registration"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/skill"
)

// ScopeResult is the host's answer for one registration scope.
type ScopeResult struct {
	Scope  skill.Scope
	Result registration.Result
}

// UninstallReport describes a finished uninstall run.
type UninstallReport struct {
	Removals      []skill.Removal
	Registrations []ScopeResult
	// InsideHost is set when removal commands were printed instead of run.
	InsideHost bool
}

// RemovedAny reports whether any asset location was deleted.
func (r UninstallReport) RemovedAny() bool {
	for _, rm := range r.Removals {
		if rm.Removed {
			return true
		}
	}
	return false
}

// Uninstall removes every known asset location, then unregisters the
// integration at each scope. Absent assets and registrations are reported,
// not treated as failures. The returned error joins asset locations that
// exist but could not be deleted; host failures only print the manual command.
func (in *Installer) Uninstall(ctx context.Context, env config.Environment) (UninstallReport, error) {
	var report UninstallReport
	var errs []error

	in.printf("\nUninstalling %s...\n\n", in.Integration)

	report.Removals = in.Assets.Remove()
	for _, rm := range report.Removals {
		switch {
		case rm.Err != nil:
			in.Logger.Error("skill removal failed", "path", rm.Path, "error", rm.Err)
			in.printf("! Could not remove %s\n", rm.Path)
			errs = append(errs, rm.Err)
		case rm.Removed:
			in.printf("✓ Removed: %s\n", rm.Path)
		}
	}
	if !report.RemovedAny() && len(errs) == 0 {
		in.printf("  Skill not installed, nothing to remove.\n")
	}

	if env.InsideHostSession {
		report.InsideHost = true
		in.Logger.Info("inside host session, leaving unregistration to the user")
		in.printf("\n! Running inside Claude Code, cannot auto-unregister.\n")
		in.printf("\n  Run this in a new terminal to remove the MCP server:\n\n")
		for _, scope := range skill.Scopes {
			in.printf("  %s\n", registration.ManualRemoveCommand(in.HostBinary, in.Integration, scope.String()))
		}
		in.printf("\n")
		return report, errors.Join(errs...)
	}

	in.printf("\n")
	for _, scope := range skill.Scopes {
		res := in.Registrar.Remove(ctx, in.Integration, scope.String())
		report.Registrations = append(report.Registrations, ScopeResult{Scope: scope, Result: res})

		switch res.Status {
		case registration.StatusOK:
			in.printf("✓ MCP server unregistered (%s scope)\n", scope)
		case registration.StatusNotFound:
			in.printf("  MCP server not registered (%s scope)\n", scope)
		default:
			in.Logger.Warn("unregister failed", "scope", scope, "exit_code", res.ExitCode, "error", res.Err)
			in.printf("! Could not unregister (%s scope)", scope)
			if detail := firstLine(res.Stderr); detail != "" {
				in.printf(": %s", detail)
			}
			in.printf("\n  Run manually: %s\n", registration.ManualRemoveCommand(in.HostBinary, in.Integration, scope.String()))
		}
	}

	in.printf("\nUninstall complete.\n\n")
	return report, errors.Join(errs...)
}
