package main

import (
	"fmt"
	"os"

	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/cmd/gemini-ui-mcp/cmd"
	ierrors "github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", ierrors.Report(err))
		os.Exit(1)
	}
}
