package config

import (
	"os"
	"strings"
)

// Environment variables consulted at command entry.
const (
	EnvAPIKey       = "GEMINI_API_KEY"
	EnvHostSession  = "CLAUDECODE"
	EnvUseVertexAI  = "GOOGLE_GENAI_USE_VERTEXAI"
	EnvCloudProject = "GOOGLE_CLOUD_PROJECT"
	EnvCloudRegion  = "GOOGLE_CLOUD_LOCATION"
	EnvDesignConfig = "GEMINI_UI_CONFIG"
)

// Environment is a read-once snapshot of the process environment.
// It is taken at command entry and passed by value; flows never read
// os.Getenv themselves.
type Environment struct {
	APIKey            string
	InsideHostSession bool
	UseVertexAI       bool
	CloudProject      string
	CloudLocation     string
	DesignConfigPath  string
}

// LookupFunc matches the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ReadEnvironment snapshots the process environment.
func ReadEnvironment() Environment {
	return EnvironmentFrom(os.LookupEnv)
}

// EnvironmentFrom builds an Environment from an arbitrary lookup.
func EnvironmentFrom(lookup LookupFunc) Environment {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}
	return Environment{
		APIKey:            get(EnvAPIKey),
		InsideHostSession: get(EnvHostSession) != "",
		UseVertexAI:       get(EnvUseVertexAI) == "true",
		CloudProject:      get(EnvCloudProject),
		CloudLocation:     get(EnvCloudRegion),
		DesignConfigPath:  get(EnvDesignConfig),
	}
}

// Apply overlays environment-sourced Gemini settings onto the config.
func (e Environment) Apply(cfg *Config) {
	if e.UseVertexAI {
		cfg.Gemini.UseVertexAI = true
	}
	if e.CloudProject != "" {
		cfg.Gemini.Project = e.CloudProject
	}
	if e.CloudLocation != "" {
		cfg.Gemini.Location = e.CloudLocation
	}
}
