package registration

import (
	"os"
	"path/filepath"
	"strings"
)

// ModulePath is the import path used to fetch the tool on demand.
const ModulePath = "github.com/lightwater2/claude-code-gemini-ui-assistant-mcp"

// OnDemandCommand runs the latest release without a local install.
var OnDemandCommand = []string{"go", "run", ModulePath + "/cmd/gemini-ui-mcp@latest"}

// ServerCommand resolves the argv the host should run to start this tool.
// An explicit override wins. Otherwise the running executable is used,
// unless it lives in the go build cache (a `go run` invocation), which is
// removed after exit; then the on-demand command is registered instead.
func ServerCommand(override []string, executable func() (string, error)) []string {
	if len(override) > 0 {
		return append([]string(nil), override...)
	}
	if executable == nil {
		executable = os.Executable
	}

	exe, err := executable()
	if err != nil || exe == "" || isEphemeral(exe) {
		return append([]string(nil), OnDemandCommand...)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return []string{exe}
}

// isEphemeral reports whether path is a binary built by `go run`.
func isEphemeral(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if strings.HasPrefix(part, "go-build") {
			return true
		}
	}
	return false
}
