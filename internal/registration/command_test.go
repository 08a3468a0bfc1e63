package registration

import (
	"strings"
	"testing"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

func testSpec() Spec {
	return Spec{
		Name:      "gemini-ui",
		Transport: "stdio",
		Scope:     "user",
		EnvVar:    "GEMINI_API_KEY",
		Secret:    "AIza-secret",
		Server:    []string{"/opt/bin/gemini-ui-mcp"},
	}
}

// shellWords parses a rendered command the way a POSIX shell would.
func shellWords(t *testing.T, cmd string) []string {
	t.Helper()
	file, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(cmd), "")
	if err != nil {
		t.Fatalf("rendered command does not parse: %v\n%s", err, cmd)
	}
	if len(file.Stmts) != 1 {
		t.Fatalf("rendered command has %d statements, want 1:\n%s", len(file.Stmts), cmd)
	}
	call, ok := file.Stmts[0].Cmd.(*syntax.CallExpr)
	if !ok {
		t.Fatalf("rendered command is not a simple command:\n%s", cmd)
	}
	if len(call.Assigns) != 0 {
		t.Fatalf("rendered command starts with an assignment:\n%s", cmd)
	}

	words := make([]string, 0, len(call.Args))
	for _, w := range call.Args {
		lit, err := expand.Literal(nil, w)
		if err != nil {
			t.Fatalf("expanding word: %v", err)
		}
		words = append(words, lit)
	}
	return words
}

func equalArgs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSpec_AddArgs(t *testing.T) {
	got := testSpec().AddArgs()
	want := []string{
		"mcp", "add", "gemini-ui",
		"--transport", "stdio",
		"--scope", "user",
		"--env", "GEMINI_API_KEY=AIza-secret",
		"--", "/opt/bin/gemini-ui-mcp",
	}
	if !equalArgs(got, want) {
		t.Errorf("AddArgs() = %q, want %q", got, want)
	}

	redacted := strings.Join(testSpec().RedactedAddArgs(), " ")
	if strings.Contains(redacted, "AIza-secret") {
		t.Errorf("RedactedAddArgs() leaks the secret: %s", redacted)
	}
	if !strings.Contains(redacted, "GEMINI_API_KEY=***") {
		t.Errorf("RedactedAddArgs() = %s", redacted)
	}
}

func TestSpec_AddArgsWithoutEnv(t *testing.T) {
	s := testSpec()
	s.EnvVar = ""
	for _, a := range s.AddArgs() {
		if a == "--env" {
			t.Fatal("--env emitted without an env var")
		}
	}
}

func TestRemoveArgs(t *testing.T) {
	want := []string{"mcp", "remove", "gemini-ui", "--scope", "project"}
	if got := RemoveArgs("gemini-ui", "project"); !equalArgs(got, want) {
		t.Errorf("RemoveArgs() = %q, want %q", got, want)
	}
}

func TestManualAddCommand(t *testing.T) {
	tests := []struct {
		name       string
		spec       func() Spec
		wantSecret string
	}{
		{
			name:       "captured secret is shown",
			spec:       testSpec,
			wantSecret: "AIza-secret",
		},
		{
			name: "placeholder without secret",
			spec: func() Spec {
				s := testSpec()
				s.Secret = ""
				return s
			},
			wantSecret: PlaceholderSecret,
		},
		{
			name: "secret with shell metacharacters",
			spec: func() Spec {
				s := testSpec()
				s.Secret = `a'b"c $HOME;rm -rf`
				return s
			},
			wantSecret: `a'b"c $HOME;rm -rf`,
		},
		{
			name: "server argv with spaces and flags",
			spec: func() Spec {
				s := testSpec()
				s.Server = []string{"/Applications/My Tools/gemini-ui-mcp", "--verbose"}
				return s
			},
			wantSecret: "AIza-secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := tt.spec()
			cmd := ManualAddCommand("claude", spec)

			words := shellWords(t, cmd)
			spec.Secret = tt.wantSecret
			want := append([]string{"claude"}, spec.AddArgs()...)
			if !equalArgs(words, want) {
				t.Errorf("parsed words = %q\nwant %q\ncommand:\n%s", words, want, cmd)
			}
			if !strings.Contains(cmd, " \\\n    --scope ") {
				t.Errorf("flags should be one per line:\n%s", cmd)
			}
		})
	}
}

func TestManualRemoveCommand(t *testing.T) {
	cmd := ManualRemoveCommand("claude", "gemini-ui", "user")
	if cmd != "claude mcp remove gemini-ui --scope user" {
		t.Errorf("ManualRemoveCommand() = %q", cmd)
	}
	words := shellWords(t, ManualRemoveCommand("/usr/local/bin/my claude", "gemini-ui", "user"))
	if words[0] != "/usr/local/bin/my claude" {
		t.Errorf("binary word = %q", words[0])
	}
}

func TestServerCommand(t *testing.T) {
	exe := func(path string, err error) func() (string, error) {
		return func() (string, error) { return path, err }
	}

	tests := []struct {
		name       string
		override   []string
		executable func() (string, error)
		want       []string
	}{
		{
			name:       "override wins",
			override:   []string{"gemini-ui-mcp", "serve"},
			executable: exe("/opt/bin/gemini-ui-mcp", nil),
			want:       []string{"gemini-ui-mcp", "serve"},
		},
		{
			name:       "installed binary",
			executable: exe("/nonexistent/bin/gemini-ui-mcp", nil),
			want:       []string{"/nonexistent/bin/gemini-ui-mcp"},
		},
		{
			name:       "go run build cache",
			executable: exe("/tmp/go-build1234567/b001/exe/gemini-ui-mcp", nil),
			want:       OnDemandCommand,
		},
		{
			name:       "executable unknown",
			executable: exe("", errFake),
			want:       OnDemandCommand,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ServerCommand(tt.override, tt.executable); !equalArgs(got, tt.want) {
				t.Errorf("ServerCommand() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("result does not alias the override", func(t *testing.T) {
		override := []string{"a"}
		got := ServerCommand(override, nil)
		got[0] = "b"
		if override[0] != "a" {
			t.Error("ServerCommand returned the caller's slice")
		}
	})
}
