package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/storynet/storygen/pkg/generator"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "generator.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault_PrimaryLocalBackend(t *testing.T) {
	cfg := Default()

	if cfg.Generator.Mode != string(generator.ModeLocal) {
		t.Errorf("expected mode local, got %q", cfg.Generator.Mode)
	}
	if cfg.Generator.Local.Type != LocalTypeOllama {
		t.Errorf("expected type ollama, got %q", cfg.Generator.Local.Type)
	}
	if cfg.Generator.Local.URL != "http://localhost:11434" {
		t.Errorf("unexpected local url: %q", cfg.Generator.Local.URL)
	}
	if cfg.Generator.Local.Model != "qwen2.5:7b" {
		t.Errorf("unexpected local model: %q", cfg.Generator.Local.Model)
	}
	if cfg.Generator.Cloud.Provider != ProviderOpenAI {
		t.Errorf("expected cloud provider openai, got %q", cfg.Generator.Cloud.Provider)
	}
	if cfg.Generator.Cloud.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("unexpected key env: %q", cfg.Generator.Cloud.APIKeyEnv)
	}

	if err := cfg.Generator.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}

	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("Default is not deterministic")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "generator:\n  mode: cloud\n  cloud:\n    provider: zhipu\n    model: glm-4\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Generator.Cloud.Provider != ProviderZhipu {
		t.Errorf("expected provider zhipu, got %q", cfg.Generator.Cloud.Provider)
	}
	if cfg.Generator.Cloud.Model != "glm-4" {
		t.Errorf("expected model glm-4, got %q", cfg.Generator.Cloud.Model)
	}
	// Unset fields come back defaulted.
	if cfg.Generator.Cloud.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("expected defaulted key env, got %q", cfg.Generator.Cloud.APIKeyEnv)
	}
	if cfg.Generator.Local.URL != "http://localhost:11434" {
		t.Errorf("expected defaulted local url, got %q", cfg.Generator.Local.URL)
	}
}

func TestLoad_Idempotent(t *testing.T) {
	path := writeConfig(t, "generator:\n  mode: local\n  local:\n    type: vllm\n    url: http://localhost:8000\n")

	first, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("loads differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "generator: [mode: {{")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, os.ErrNotExist) {
		t.Errorf("parse failure should not look like a missing file: %v", err)
	}
}

func TestBackend_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "default local",
			mutate: func(c *Config) {},
		},
		{
			name: "cloud with known provider",
			mutate: func(c *Config) {
				c.Generator.Mode = string(generator.ModeCloud)
				c.Generator.Cloud.Provider = ProviderGemini
			},
		},
		{
			name:    "unknown mode",
			mutate:  func(c *Config) { c.Generator.Mode = "hybrid" },
			wantErr: true,
		},
		{
			name: "unknown provider",
			mutate: func(c *Config) {
				c.Generator.Mode = string(generator.ModeCloud)
				c.Generator.Cloud.Provider = "anthropic"
			},
			wantErr: true,
		},
		{
			name:    "relative local url",
			mutate:  func(c *Config) { c.Generator.Local.URL = "localhost:11434" },
			wantErr: true,
		},
		{
			name:    "non-http local url",
			mutate:  func(c *Config) { c.Generator.Local.URL = "ftp://localhost:11434" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Generator.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, generator.ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
