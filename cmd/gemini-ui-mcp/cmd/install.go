package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/cli"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/gemini"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/installer"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/registration"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/skill"
)

var installProject bool

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the skill and register the MCP server",
	Long: `Install the gemini-ui skill and register the MCP server with Claude Code.

The API key is read from GEMINI_API_KEY, or prompted for when unset.
Leaving the prompt empty installs the skill only and prints the
registration command to run later.

Examples:
  # Install for your user
  gemini-ui-mcp install

  # Install into the current project
  gemini-ui-mcp install --project`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installProject, "project", false, "install into the project instead of the user directory")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	scope := skill.ScopeUser
	if installProject {
		scope = skill.ScopeProject
	}

	in, err := newInstaller(cmd, s)
	if err != nil {
		return err
	}

	outcome, err := in.Install(commandContext(cmd), scope, s.env)
	if err != nil {
		return err
	}
	s.logger.Debug("install finished", "result", outcome.Result.String(), "skill", outcome.SkillPath)
	return nil
}

// newInstaller wires the production collaborators.
func newInstaller(cmd *cobra.Command, s *session) (*installer.Installer, error) {
	roots, err := skill.DefaultRoots()
	if err != nil {
		return nil, err
	}
	roots.WorkDir = s.dir

	prompter := cli.NewSecretReader()
	prompter.Out = cmd.OutOrStdout()

	return installer.New(
		s.cfg,
		skill.NewInstaller(s.cfg.Host.Integration, roots, s.logger),
		prompter,
		gemini.NewValidator(s.cfg.ValidationModel(), s.logger),
		registration.NewManager(s.cfg.Host.Binary, s.logger),
		cmd.OutOrStdout(),
		s.logger,
	), nil
}
