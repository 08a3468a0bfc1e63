package installer

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/config"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/logging"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/registration"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/skill"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/testutil"
)

// newRealInstaller wires the embedded asset, the subprocess registrar and a
// fake host; only the key probe is faked.
func newRealInstaller(t *testing.T) (*Installer, *testutil.FakeHost, skill.Roots, *bytes.Buffer) {
	t.Helper()
	host := testutil.NewFakeHost(t)
	roots := skill.Roots{Home: t.TempDir(), WorkDir: t.TempDir()}
	logger := logging.NewForTest()

	cfg := config.Default()
	cfg.Host.Binary = host.Path
	cfg.Server.Command = []string{"/opt/bin/gemini-ui-mcp"}

	out := &bytes.Buffer{}
	inst := New(cfg,
		skill.NewInstaller(cfg.Host.Integration, roots, logger),
		&fakePrompter{},
		&fakeValidator{valid: true},
		registration.NewManager(cfg.Host.Binary, logger),
		out, logger)
	return inst, host, roots, out
}

func TestInstallUninstall_EndToEnd(t *testing.T) {
	inst, host, roots, _ := newRealInstaller(t)
	ctx := context.Background()

	out, err := inst.Install(ctx, skill.ScopeUser, config.Environment{APIKey: "AIza-e2e"})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if out.Result != ResultComplete {
		t.Fatalf("Result = %v, want complete", out.Result)
	}
	if out.SkillPath != roots.Destination(skill.ScopeUser, "gemini-ui") {
		t.Errorf("SkillPath = %q", out.SkillPath)
	}
	if _, err := os.Stat(out.SkillPath); err != nil {
		t.Errorf("skill not on disk: %v", err)
	}
	if !host.Registered("gemini-ui", "user") {
		t.Fatal("host registry missing gemini-ui at user scope")
	}

	first, err := inst.Uninstall(ctx, config.Environment{})
	if err != nil {
		t.Fatalf("first Uninstall() error = %v", err)
	}
	if !first.RemovedAny() {
		t.Error("first uninstall removed nothing")
	}
	if first.Registrations[0].Result.Status != registration.StatusOK {
		t.Errorf("user scope = %v, want ok", first.Registrations[0].Result.Status)
	}
	if first.Registrations[1].Result.Status != registration.StatusNotFound {
		t.Errorf("project scope = %v, want not found", first.Registrations[1].Result.Status)
	}

	second, err := inst.Uninstall(ctx, config.Environment{})
	if err != nil {
		t.Fatalf("second Uninstall() error = %v", err)
	}
	if second.RemovedAny() {
		t.Error("second uninstall removed something")
	}
	for _, sr := range second.Registrations {
		if sr.Result.Status != registration.StatusNotFound {
			t.Errorf("second uninstall %s scope = %v, want not found", sr.Scope, sr.Result.Status)
		}
	}
}

func TestInstall_ProjectScopeEndToEnd(t *testing.T) {
	inst, host, roots, _ := newRealInstaller(t)

	out, err := inst.Install(context.Background(), skill.ScopeProject, config.Environment{APIKey: "k"})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if out.SkillPath != roots.Destination(skill.ScopeProject, "gemini-ui") {
		t.Errorf("SkillPath = %q, want project destination", out.SkillPath)
	}
	if !host.Registered("gemini-ui", "project") {
		t.Error("registration should use project scope")
	}
}

func TestInstall_InsideHostNeverRunsHost(t *testing.T) {
	inst, host, _, out := newRealInstaller(t)

	if _, err := inst.Install(context.Background(), skill.ScopeUser, config.Environment{APIKey: "k", InsideHostSession: true}); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if calls := host.Calls(t); len(calls) != 0 {
		t.Errorf("host invoked %d times inside a host session", len(calls))
	}
	if !bytes.Contains(out.Bytes(), []byte("mcp add gemini-ui")) {
		t.Errorf("manual command not printed:\n%s", out.String())
	}
}

func TestInstall_HostFailureEndToEnd(t *testing.T) {
	inst, host, _, out := newRealInstaller(t)
	host.Fail(t, 1, "config file is locked")

	res, err := inst.Install(context.Background(), skill.ScopeUser, config.Environment{APIKey: "k"})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if res.Result != ResultRegistrationFailed {
		t.Errorf("Result = %v", res.Result)
	}
	if !bytes.Contains(out.Bytes(), []byte("config file is locked")) {
		t.Errorf("stderr detail missing:\n%s", out.String())
	}
}
