// Package testutil provides test doubles shared across packages.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// argSep separates recorded arguments within one call line.
const argSep = "\x1f"

// FakeHost is a shell script standing in for the host CLI. It records every
// invocation and keeps a registry of added integrations on disk, so add and
// remove behave like the real host: removing an absent name fails with a
// "not found" message.
type FakeHost struct {
	// Path is the executable to pass as the host binary.
	Path string

	dir string
}

// NewFakeHost writes the script into a temp dir. Tests using it are skipped
// where /bin/sh is unavailable.
func NewFakeHost(t *testing.T) *FakeHost {
	t.Helper()
	RequirePOSIXShell(t)

	dir := t.TempDir()
	h := &FakeHost{Path: filepath.Join(dir, "claude"), dir: dir}

	script := fmt.Sprintf(`#!/bin/sh
DIR='%s'
{ for a in "$@"; do printf '%%s\037' "$a"; done; printf '\n'; } >> "$DIR/calls.log"

if [ -f "$DIR/behavior" ]; then
    . "$DIR/behavior"
    [ -n "$FAKE_STDERR" ] && printf '%%s\n' "$FAKE_STDERR" >&2
    exit "$FAKE_EXIT"
fi

if [ "$1" = "mcp" ]; then
    sub=$2
    name=$3
    scope=local
    shift 3
    while [ $# -gt 0 ]; do
        case $1 in
            --scope) scope=$2; shift 2 ;;
            --) break ;;
            *) shift ;;
        esac
    done
    case $sub in
        add)
            mkdir -p "$DIR/state"
            : > "$DIR/state/$name.$scope"
            echo "Added stdio MCP server $name to $scope config"
            exit 0
            ;;
        remove)
            if [ -f "$DIR/state/$name.$scope" ]; then
                rm -f "$DIR/state/$name.$scope"
                echo "Removed MCP server $name from $scope config"
                exit 0
            fi
            echo "No MCP server found with name: $name" >&2
            exit 1
            ;;
    esac
fi

echo "unknown command: $*" >&2
exit 2
`, dir)

	if err := os.WriteFile(h.Path, []byte(script), 0755); err != nil {
		t.Fatalf("Failed to create fake host script: %v", err)
	}
	return h
}

// Fail makes every subsequent call exit with code after printing stderr.
func (h *FakeHost) Fail(t *testing.T, code int, stderr string) {
	t.Helper()
	body := fmt.Sprintf("FAKE_EXIT=%d\nFAKE_STDERR='%s'\n", code, strings.ReplaceAll(stderr, "'", `'\''`))
	if err := os.WriteFile(filepath.Join(h.dir, "behavior"), []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write fake host behavior: %v", err)
	}
}

// Recover restores the default stateful behavior.
func (h *FakeHost) Recover(t *testing.T) {
	t.Helper()
	if err := os.Remove(filepath.Join(h.dir, "behavior")); err != nil && !os.IsNotExist(err) {
		t.Fatalf("Failed to clear fake host behavior: %v", err)
	}
}

// Register pre-seeds the registry as if name had been added at scope.
func (h *FakeHost) Register(t *testing.T, name, scope string) {
	t.Helper()
	state := filepath.Join(h.dir, "state")
	if err := os.MkdirAll(state, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(state, name+"."+scope), nil, 0644); err != nil {
		t.Fatal(err)
	}
}

// Registered reports whether name is currently registered at scope.
func (h *FakeHost) Registered(name, scope string) bool {
	_, err := os.Stat(filepath.Join(h.dir, "state", name+"."+scope))
	return err == nil
}

// Calls returns the argv of every invocation so far, oldest first.
func (h *FakeHost) Calls(t *testing.T) [][]string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(h.dir, "calls.log"))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("Failed to read fake host log: %v", err)
	}
	if len(data) == 0 {
		return nil
	}

	var calls [][]string
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		args := strings.Split(line, argSep)
		calls = append(calls, args[:len(args)-1])
	}
	return calls
}

// RequirePOSIXShell skips the test when /bin/sh cannot run scripts.
func RequirePOSIXShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake host script requires /bin/sh")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("fake host script requires /bin/sh")
	}
}
