// Package skill installs the gemini-ui skill descriptor into the host's
// skills directory for a user or project scope.
package skill

import (
	"embed"
	"io/fs"
)

// AssetPath is the location of the canonical SKILL.md inside Assets.
const AssetPath = "assets/gemini-ui/SKILL.md"

//go:embed assets
var assets embed.FS

// Assets returns the filesystem holding the packaged skill assets.
// The asset travels inside the binary, so installs work the same from a
// local build or a fetched module.
func Assets() fs.FS {
	return assets
}

// ReadEmbedded returns the packaged SKILL.md content.
func ReadEmbedded() ([]byte, error) {
	return fs.ReadFile(assets, AssetPath)
}
