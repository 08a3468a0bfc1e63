package skill

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// hostDir is the host's per-root configuration directory.
const hostDir = ".claude"

// Roots holds the two filesystem anchors scopes resolve against.
type Roots struct {
	Home    string
	WorkDir string
}

// DefaultRoots returns the current user's home and working directory.
func DefaultRoots() (Roots, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Roots{}, fmt.Errorf("resolving home directory: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return Roots{}, fmt.Errorf("resolving working directory: %w", err)
	}
	return Roots{Home: home, WorkDir: wd}, nil
}

// ScopeRoot returns <anchor>/.claude for the scope.
func (r Roots) ScopeRoot(scope Scope) string {
	if scope == ScopeProject {
		return filepath.Join(r.WorkDir, hostDir)
	}
	return filepath.Join(r.Home, hostDir)
}

// SkillsDir returns <scope-root>/skills.
func (r Roots) SkillsDir(scope Scope) string {
	return filepath.Join(r.ScopeRoot(scope), "skills")
}

// Destination returns <scope-root>/skills/<name>/SKILL.md.
func (r Roots) Destination(scope Scope, name string) string {
	return filepath.Join(r.SkillsDir(scope), name, ManifestName)
}

// Candidates lists every location an install of name may have produced,
// current layout first, across both scopes. The flat <name>.md file is
// the layout used before skills moved into directories.
func (r Roots) Candidates(name string) []string {
	var paths []string
	seen := make(map[string]bool)
	for _, scope := range Scopes {
		dir := r.SkillsDir(scope)
		for _, p := range []string{
			filepath.Join(dir, name),
			filepath.Join(dir, name+".md"),
		} {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	return paths
}

// ExpandPath expands ~ at the start of a path to the user's home directory.
// If ~ is not at the start or home directory cannot be determined, returns path unchanged.
func ExpandPath(path string) string {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
