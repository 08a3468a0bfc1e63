package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/config"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/gemini"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/logging"
	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the stdio MCP server",
	Long: `Run the MCP server on stdin/stdout. Claude Code starts this after
registration; it is also the default when no subcommand is given.

A .gemini-ui-config.json in the working directory, or the file named by
GEMINI_UI_CONFIG, adds project conventions to every generation.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	dc, err := config.LoadDesignContext(s.env.DesignConfigPath, s.dir)
	if err != nil {
		return err
	}

	client, err := gemini.NewClient(commandContext(cmd), gemini.SettingsFrom(s.cfg, s.env), s.logger)
	if err != nil {
		return fmt.Errorf("creating Gemini client: %w", err)
	}

	srv := server.New(client, dc, logging.WithComponent(s.logger, "server"))
	s.logger.Info("serving", "version", server.Version, "model", s.cfg.Gemini.Model)
	return srv.ServeStdio()
}
