package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/config"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/logging"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/server"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/skill"
)

var (
	// Global flags
	verbose bool
	workDir string
)

var rootCmd = &cobra.Command{
	Use:   "gemini-ui-mcp",
	Short: "Gemini-powered UI component generation for Claude Code",
	Long: `gemini-ui-mcp generates React components with Gemini and serves them
to Claude Code over MCP.

Run without a subcommand to start the stdio MCP server. Use 'install' once to
add the /gemini-ui skill and register the server with Claude Code.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&workDir, "workdir", "C", "", "working directory (default: current)")

	rootCmd.Version = server.Version
	rootCmd.SetVersionTemplate("gemini-ui-mcp {{.Version}}\n")
}

// getWorkDir returns the effective working directory.
func getWorkDir() (string, error) {
	if workDir != "" {
		return skill.ExpandPath(workDir), nil
	}
	return os.Getwd()
}

// session is the per-invocation state shared by every subcommand.
type session struct {
	dir    string
	env    config.Environment
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

func (s *session) Close() {
	if s.closer != nil {
		_ = s.closer.Close()
	}
}

// newSession snapshots the environment and loads configuration. Logs go to
// logOut; stdout belongs to the MCP protocol in serve mode.
func newSession(logOut io.Writer) (*session, error) {
	dir, err := getWorkDir()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.LoadFromDir(dir)
	if err != nil {
		return nil, err
	}
	env := config.ReadEnvironment()
	env.Apply(cfg)
	if verbose {
		cfg.Logging.Level = config.LogLevelDebug
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, closer, err := logging.NewFromConfig(cfg, logOut, dir)
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}

	return &session{dir: dir, env: env, cfg: cfg, logger: logger, closer: closer}, nil
}

// commandContext returns the command's context, or Background when the
// command is invoked directly rather than through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
