package skill

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	ierrors "github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/errors"
)

// Installer copies the canonical SKILL.md into a scope's skills directory
// and removes every known layout on uninstall.
type Installer struct {
	// Name is the skill directory name (the tool id).
	Name string

	// Source holds the canonical asset at SourcePath.
	Source     fs.FS
	SourcePath string

	Roots  Roots
	Logger *slog.Logger
}

// NewInstaller returns an Installer reading the embedded asset.
func NewInstaller(name string, roots Roots, logger *slog.Logger) *Installer {
	return &Installer{
		Name:       name,
		Source:     Assets(),
		SourcePath: AssetPath,
		Roots:      roots,
		Logger:     logger,
	}
}

// Install writes the asset to <scope-root>/skills/<name>/SKILL.md, creating
// directories as needed and overwriting any previous copy. It returns the
// destination path. A missing or malformed source asset is a packaging error.
func (i *Installer) Install(scope Scope) (string, error) {
	data, err := i.readSource()
	if err != nil {
		return "", err
	}

	dest := i.Roots.Destination(scope, i.Name)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", ioError(filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return "", ioError(dest, err)
	}

	i.logger().Debug("skill installed", "scope", scope, "path", dest, "bytes", len(data))
	return dest, nil
}

// Remove deletes every candidate location for the skill in both scopes.
// Absent locations are reported with Removed=false and are not errors.
func (i *Installer) Remove() []Removal {
	candidates := i.Roots.Candidates(i.Name)
	results := make([]Removal, 0, len(candidates))

	for _, path := range candidates {
		r := Removal{Path: path}
		if _, err := os.Lstat(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				r.Err = ioError(path, err)
			}
			results = append(results, r)
			continue
		}

		if err := os.RemoveAll(path); err != nil {
			r.Err = ioError(path, err)
		} else {
			r.Removed = true
			i.logger().Debug("skill removed", "path", path)
		}
		results = append(results, r)
	}
	return results
}

// readSource loads and checks the canonical asset.
func (i *Installer) readSource() ([]byte, error) {
	if i.Source == nil {
		return nil, ierrors.AssetMissing(i.SourcePath, fs.ErrNotExist)
	}

	data, err := fs.ReadFile(i.Source, i.SourcePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ierrors.AssetMissing(i.SourcePath, err)
		}
		return nil, ierrors.IOReadError(i.SourcePath, err)
	}

	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, ierrors.AssetInvalid(i.SourcePath, err.Error())
	}
	if result := manifest.Validate(i.Name); result.HasErrors() {
		return nil, ierrors.AssetInvalid(i.SourcePath, result.Error())
	}
	return data, nil
}

func (i *Installer) logger() *slog.Logger {
	if i.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return i.Logger
}

func ioError(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return ierrors.IOPermissionDenied(path, err)
	}
	return ierrors.IOWriteError(path, err)
}
