// Package config loads and validates the generator configuration from YAML.
// Every field has a default, so a missing file or a partial file still yields
// a complete, working configuration.
package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/storynet/storygen/pkg/generator"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the loader looks for the configuration file when no
// explicit path is given, relative to the process working directory.
const DefaultPath = "config/generator.yaml"

// Local backend types. Any unknown type is treated as OpenAI-compatible.
const (
	LocalTypeOllama = "ollama"
	LocalTypeVLLM   = "vllm"
)

// Cloud providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderZhipu  = "zhipu"
)

const (
	defaultLocalURL   = "http://localhost:11434"
	defaultLocalModel = "qwen2.5:7b"
	defaultCloudModel = "gpt-4o-mini"
	defaultKeyEnv     = "OPENAI_API_KEY"
)

// Config is the root of the YAML configuration file.
type Config struct {
	Generator Backend `yaml:"generator"`
}

// Backend selects and parameterizes one generation backend. The mode decides
// which of the two sections is read; the other is kept so switching modes is
// a one-line change.
type Backend struct {
	// Mode selects where generation runs: "local" or "cloud".
	Mode string `yaml:"mode"`

	Local Local `yaml:"local"`
	Cloud Cloud `yaml:"cloud"`
}

// Local configures a local inference server.
type Local struct {
	// Type selects the server protocol. "ollama" speaks the native Ollama
	// API; anything else is treated as OpenAI-compatible (vLLM and friends).
	Type string `yaml:"type"`

	// URL is the server base URL.
	URL string `yaml:"url"`

	// Model is the model identifier to run.
	Model string `yaml:"model"`
}

// Cloud configures a hosted provider.
type Cloud struct {
	// Provider is one of "openai", "gemini" or "zhipu".
	Provider string `yaml:"provider"`

	// Model is the provider-side model identifier.
	Model string `yaml:"model"`

	// APIKeyEnv names the environment variable holding the credential.
	// The key itself never appears in the file.
	APIKeyEnv string `yaml:"api_key_env"`

	// Endpoint optionally overrides the provider base URL, for custom
	// OpenAI deployments or self-hosted GLM gateways.
	Endpoint string `yaml:"endpoint"`
}

// Default returns the built-in configuration: the primary local backend
// (Ollama with a small general model) with the cloud section pre-filled.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// Load reads, defaults and validates the configuration file at path.
// A missing file is reported with an error wrapping os.ErrNotExist so
// callers can fall back to Default; any other failure is terminal.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Generator.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// applyDefaults fills every empty field. Loading the same file twice yields
// identical configurations.
func (c *Config) applyDefaults() {
	g := &c.Generator

	if g.Mode == "" {
		g.Mode = string(generator.ModeLocal)
	}
	if g.Local.Type == "" {
		g.Local.Type = LocalTypeOllama
	}
	if g.Local.URL == "" {
		g.Local.URL = defaultLocalURL
	}
	if g.Local.Model == "" {
		g.Local.Model = defaultLocalModel
	}
	if g.Cloud.Provider == "" {
		g.Cloud.Provider = ProviderOpenAI
	}
	if g.Cloud.Model == "" {
		g.Cloud.Model = defaultCloudModel
	}
	if g.Cloud.APIKeyEnv == "" {
		g.Cloud.APIKeyEnv = defaultKeyEnv
	}
}

// Validate rejects selections that no backend can serve. It assumes defaults
// have been applied.
func (b Backend) Validate() error {
	switch b.Mode {
	case string(generator.ModeLocal):
		u, err := url.Parse(b.Local.URL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%w: local url %q is not an absolute http(s) url", generator.ErrInvalidConfig, b.Local.URL)
		}
	case string(generator.ModeCloud):
		switch b.Cloud.Provider {
		case ProviderOpenAI, ProviderGemini, ProviderZhipu:
		default:
			return fmt.Errorf("%w: unknown provider %q", generator.ErrInvalidConfig, b.Cloud.Provider)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", generator.ErrInvalidConfig, b.Mode)
	}

	return nil
}
