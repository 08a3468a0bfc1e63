package skill

import "fmt"

// ManifestName is the filename the host looks for inside a skill directory.
const ManifestName = "SKILL.md"

// Manifest is the YAML frontmatter of a SKILL.md file.
type Manifest struct {
	// Name is the skill identifier and must equal the directory name (required)
	Name string `yaml:"name"`

	// Description tells the host when to use the skill (required)
	Description string `yaml:"description"`

	// AllowedTools restricts the tools the skill may call (optional)
	AllowedTools string `yaml:"allowed-tools,omitempty"`
}

// Scope selects the installation root.
type Scope string

const (
	// ScopeUser installs under the user's home directory.
	ScopeUser Scope = "user"
	// ScopeProject installs under the working directory.
	ScopeProject Scope = "project"
)

// Scopes lists every scope in removal order.
var Scopes = []Scope{ScopeUser, ScopeProject}

// ParseScope converts a string to a Scope.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeUser, ScopeProject:
		return Scope(s), nil
	default:
		return "", fmt.Errorf("unknown scope %q: must be %q or %q", s, ScopeUser, ScopeProject)
	}
}

// String implements fmt.Stringer.
func (s Scope) String() string {
	return string(s)
}

// Removal is the outcome for one candidate asset location.
type Removal struct {
	Path    string
	Removed bool
	// Err is set when the location existed but could not be removed.
	Err error
}
