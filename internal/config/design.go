package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DesignFileName is the project design-context file looked up in the working directory.
const DesignFileName = ".gemini-ui-config.json"

// Conventions describes project coding conventions passed to the generator.
type Conventions struct {
	Styling         string `yaml:"styling,omitempty"`
	Units           string `yaml:"units,omitempty"`
	Imports         string `yaml:"imports,omitempty"`
	StateManagement string `yaml:"stateManagement,omitempty"`
	DataFetching    string `yaml:"dataFetching,omitempty"`
}

// DesignContext is the optional per-project generation context.
// The file is JSON by convention; YAML is accepted as well.
type DesignContext struct {
	Model             string            `yaml:"model,omitempty"`
	DesignContext     string            `yaml:"designContext,omitempty"`
	Conventions       *Conventions      `yaml:"conventions,omitempty"`
	ComponentPatterns map[string]string `yaml:"componentPatterns,omitempty"`
}

// LoadDesignContext reads the design-context file. explicitPath wins over
// <dir>/.gemini-ui-config.json. A missing file yields an empty context.
func LoadDesignContext(explicitPath, dir string) (*DesignContext, error) {
	path := explicitPath
	if path == "" {
		path = filepath.Join(dir, DesignFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &DesignContext{}, nil
		}
		return nil, fmt.Errorf("reading design context: %w", err)
	}

	var dc DesignContext
	if err := yaml.Unmarshal(data, &dc); err != nil {
		return nil, fmt.Errorf("parsing design context %s: %w", path, err)
	}
	return &dc, nil
}
