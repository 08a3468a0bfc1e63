package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	ierrors "github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/errors"
)

// ToolID is the identifier used for the skill directory and the host integration name.
const ToolID = "gemini-ui"

// DirName is the per-user and per-project configuration directory.
const DirName = ".gemini-ui"

// LogLevel specifies the logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat specifies the log output format.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// HostConfig describes the external host CLI that owns integration registrations.
type HostConfig struct {
	// Binary is the host CLI executable, looked up on PATH when not absolute.
	Binary string `toml:"binary"`

	// Integration is the name the tool is registered under.
	Integration string `toml:"integration"`

	// Transport is the integration transport kind passed to the host.
	Transport string `toml:"transport"`
}

// GeminiConfig holds Content Generation Service settings.
type GeminiConfig struct {
	Model           string `toml:"model"`
	ValidationModel string `toml:"validation_model"`
	UseVertexAI     bool   `toml:"use_vertex_ai"`
	Project         string `toml:"project"`
	Location        string `toml:"location"`
}

// ServerConfig controls how the host re-invokes this tool as a server.
type ServerConfig struct {
	// Command overrides the argv registered with the host. Empty means
	// resolve from the running executable.
	Command []string `toml:"command"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  LogLevel  `toml:"level"`
	Format LogFormat `toml:"format"`
	File   string    `toml:"file"`
}

// Config is the main configuration struct.
type Config struct {
	Version string        `toml:"version"`
	Host    HostConfig    `toml:"host"`
	Gemini  GeminiConfig  `toml:"gemini"`
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Version: "1",
		Host: HostConfig{
			Binary:      "claude",
			Integration: ToolID,
			Transport:   "stdio",
		},
		Gemini: GeminiConfig{
			Model:           "gemini-2.5-flash",
			ValidationModel: "gemini-2.5-flash",
			Location:        "us-central1",
		},
		Logging: LoggingConfig{
			Level:  LogLevelWarn,
			Format: LogFormatText,
		},
	}
}

// Load loads configuration from file, merging with defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, ierrors.ConfigParse(path, err)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from the standard locations.
// Applies in order: defaults -> ~/.gemini-ui/config.toml -> <dir>/.gemini-ui/config.toml
// Later configs override earlier ones.
func LoadFromDir(dir string) (*Config, error) {
	cfg := Default()

	home, err := os.UserHomeDir()
	if err == nil {
		globalConfig := filepath.Join(home, DirName, "config.toml")
		if data, err := os.ReadFile(globalConfig); err == nil {
			if _, err := toml.Decode(string(data), cfg); err != nil {
				return nil, ierrors.ConfigParse(globalConfig, err)
			}
		}
	}

	projectConfig := filepath.Join(dir, DirName, "config.toml")
	if data, err := os.ReadFile(projectConfig); err == nil {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, ierrors.ConfigParse(projectConfig, err)
		}
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host.Binary) == "" {
		return ierrors.ConfigInvalidValue("host.binary", c.Host.Binary, "is required")
	}
	if strings.TrimSpace(c.Host.Integration) == "" {
		return ierrors.ConfigInvalidValue("host.integration", c.Host.Integration, "is required")
	}
	if strings.ContainsAny(c.Host.Integration, " \t/") {
		return ierrors.ConfigInvalidValue("host.integration", c.Host.Integration, "must not contain whitespace or slashes")
	}
	if c.Host.Transport != "stdio" {
		return ierrors.ConfigInvalidValue("host.transport", c.Host.Transport, "only stdio is supported")
	}
	if c.Gemini.Model == "" {
		return ierrors.ConfigInvalidValue("gemini.model", c.Gemini.Model, "is required")
	}
	switch c.Logging.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, "":
	default:
		return ierrors.ConfigInvalidValue("logging.level", c.Logging.Level, "must be debug, info, warn, or error")
	}
	return nil
}

// ValidationModel returns the model used for the key probe.
func (c *Config) ValidationModel() string {
	if c.Gemini.ValidationModel != "" {
		return c.Gemini.ValidationModel
	}
	return c.Gemini.Model
}

// LogFile returns the absolute log file path, or empty if file logging is off.
func (c *Config) LogFile(baseDir string) string {
	if c.Logging.File == "" {
		return ""
	}
	if filepath.IsAbs(c.Logging.File) {
		return c.Logging.File
	}
	return filepath.Join(baseDir, c.Logging.File)
}
