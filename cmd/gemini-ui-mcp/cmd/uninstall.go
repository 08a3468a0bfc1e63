package cmd

import (
	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the skill and unregister the MCP server",
	Long: `Remove the gemini-ui skill from the user and project directories and
unregister the MCP server from Claude Code at both scopes.

Locations that were never installed are skipped.`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	in, err := newInstaller(cmd, s)
	if err != nil {
		return err
	}

	_, err = in.Uninstall(commandContext(cmd), s.env)
	return err
}
