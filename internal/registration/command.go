// Package registration adds and removes the tool as a stdio integration of
// the host CLI by running the host as a subprocess.
package registration

import (
	"fmt"
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// PlaceholderSecret stands in for the key in printed commands when none was captured.
const PlaceholderSecret = "your-api-key"

// redactedSecret replaces the key in log output.
const redactedSecret = "***"

// Spec describes one registration.
type Spec struct {
	Name      string
	Transport string
	Scope     string

	// EnvVar receives Secret in the integration's environment.
	EnvVar string
	Secret string

	// Server is the argv the host runs to start this tool.
	Server []string
}

// AddArgs returns the host argv for registering s:
//
//	mcp add <name> --transport <t> --scope <s> --env VAR=secret -- <server argv...>
func (s Spec) AddArgs() []string {
	return s.addArgs(s.Secret)
}

func (s Spec) addArgs(secret string) []string {
	args := []string{
		"mcp", "add", s.Name,
		"--transport", s.Transport,
		"--scope", s.Scope,
	}
	if s.EnvVar != "" {
		args = append(args, "--env", s.EnvVar+"="+secret)
	}
	args = append(args, "--")
	return append(args, s.Server...)
}

// RedactedAddArgs is AddArgs with the secret masked, for logging.
func (s Spec) RedactedAddArgs() []string {
	return s.addArgs(redactedSecret)
}

// RemoveArgs returns the host argv for unregistering name at scope.
func RemoveArgs(name, scope string) []string {
	return []string{"mcp", "remove", name, "--scope", scope}
}

// ManualAddCommand renders the add command for the user to paste into a
// terminal. The captured secret is shown when present, else PlaceholderSecret.
func ManualAddCommand(binary string, s Spec) string {
	secret := s.Secret
	if secret == "" {
		secret = PlaceholderSecret
	}
	args := s.addArgs(secret)

	// One flag per line; words after the separator belong to the server argv.
	var b strings.Builder
	b.WriteString(quote(binary))
	serverArgs := false
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case serverArgs:
			b.WriteString(" " + quote(a))
		case a == "--":
			serverArgs = true
			b.WriteString(" \\\n    --")
		case strings.HasPrefix(a, "--") && i+1 < len(args):
			fmt.Fprintf(&b, " \\\n    %s %s", a, quote(args[i+1]))
			i++
		default:
			b.WriteString(" " + quote(a))
		}
	}
	return b.String()
}

// ManualRemoveCommand renders the remove command for the user to paste.
func ManualRemoveCommand(binary, name, scope string) string {
	words := append([]string{binary}, RemoveArgs(name, scope)...)
	for i, w := range words {
		words[i] = quote(w)
	}
	return strings.Join(words, " ")
}

// quote makes s a single shell word.
func quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		// POSIX has no escape for control bytes; Bash's $'...' form does.
		if q, err = syntax.Quote(s, syntax.LangBash); err != nil {
			return strconv.Quote(s)
		}
	}
	return q
}
