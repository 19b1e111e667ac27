package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, "")
	for key := range envMappings {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Addr() != ":8080" {
		t.Errorf("addr: got %q", cfg.Server.Addr())
	}
	if cfg.Completion.Provider != "openai" || cfg.Completion.Model != "" {
		t.Errorf("completion: got %+v", cfg.Completion)
	}
	if cfg.Completion.APIKey != "sk-test" {
		t.Errorf("api key not read from environment")
	}
	if cfg.Completion.Timeout != 90*time.Second {
		t.Errorf("timeout: got %v", cfg.Completion.Timeout)
	}
	if cfg.Storage.Driver != "none" {
		t.Errorf("storage driver: got %q", cfg.Storage.Driver)
	}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, []string{"http://localhost:3000"}) {
		t.Errorf("cors origins: got %v", cfg.Server.CORSOrigins)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("COMPLETION_TIMEOUT", "30s")
	t.Setenv("COMPLETION_MODEL", "gpt-4o-mini")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("STORAGE_PATH", "/tmp/audit.db")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
	if cfg.Completion.Timeout != 30*time.Second {
		t.Errorf("timeout: got %v", cfg.Completion.Timeout)
	}
	if cfg.Completion.Model != "gpt-4o-mini" {
		t.Errorf("model: got %q", cfg.Completion.Model)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, want) {
		t.Errorf("cors origins: got %v, want %v", cfg.Server.CORSOrigins, want)
	}
	if cfg.Storage.Driver != "sqlite" || cfg.Storage.Path != "/tmp/audit.db" {
		t.Errorf("storage: got %+v", cfg.Storage)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("log format: got %q", cfg.Logging.Format)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 7000
completion:
  provider: ollama
  ollama_host: http://ollama.internal:11434
  model: mistral
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HTTP_PORT", "7001")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 7001 {
		t.Errorf("env should override file: got port %d", cfg.Server.Port)
	}
	if cfg.Completion.Provider != "ollama" || cfg.Completion.Model != "mistral" {
		t.Errorf("completion: got %+v", cfg.Completion)
	}
	if cfg.Completion.BaseURL() != "http://ollama.internal:11434" {
		t.Errorf("base url: got %q", cfg.Completion.BaseURL())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level: got %q", cfg.Logging.Level)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "openai without key",
			env:     map[string]string{},
			wantErr: "OPENAI_API_KEY",
		},
		{
			name:    "unknown provider",
			env:     map[string]string{"COMPLETION_PROVIDER": "bard"},
			wantErr: "Provider",
		},
		{
			name:    "unknown storage driver",
			env:     map[string]string{"OPENAI_API_KEY": "sk", "STORAGE_DRIVER": "postgres"},
			wantErr: "Driver",
		},
		{
			name:    "port out of range",
			env:     map[string]string{"OPENAI_API_KEY": "sk", "HTTP_PORT": "70000"},
			wantErr: "Port",
		},
		{
			name:    "bad log level",
			env:     map[string]string{"OPENAI_API_KEY": "sk", "LOG_LEVEL": "loud"},
			wantErr: "Level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_OllamaNeedsNoKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("COMPLETION_PROVIDER", "ollama")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Completion.Provider != "ollama" {
		t.Fatalf("provider: got %q", cfg.Completion.Provider)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk")
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoad_ProviderEndpoints(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantBaseURL string
	}{
		{
			name: "openai ignores OLLAMA_HOST",
			env: map[string]string{
				"COMPLETION_PROVIDER": "openai",
				"OPENAI_API_KEY":      "sk-test",
				"OLLAMA_HOST":         "http://gpu-box:11434",
			},
			wantBaseURL: "",
		},
		{
			name: "openai uses OPENAI_BASE_URL",
			env: map[string]string{
				"OPENAI_API_KEY":  "sk-test",
				"OPENAI_BASE_URL": "https://proxy.example.com/v1",
				"OLLAMA_HOST":     "http://gpu-box:11434",
			},
			wantBaseURL: "https://proxy.example.com/v1",
		},
		{
			name: "ollama ignores OPENAI_BASE_URL",
			env: map[string]string{
				"COMPLETION_PROVIDER": "ollama",
				"OPENAI_BASE_URL":     "https://proxy.example.com/v1",
			},
			wantBaseURL: "",
		},
		{
			name: "bare ollama host gets a scheme",
			env: map[string]string{
				"COMPLETION_PROVIDER": "ollama",
				"OLLAMA_HOST":         "127.0.0.1:11434",
			},
			wantBaseURL: "http://127.0.0.1:11434",
		},
		{
			name: "ollama host with scheme is kept",
			env: map[string]string{
				"COMPLETION_PROVIDER": "ollama",
				"OLLAMA_HOST":         "https://ollama.internal",
			},
			wantBaseURL: "https://ollama.internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load("")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got := cfg.Completion.BaseURL(); got != tt.wantBaseURL {
				t.Errorf("base url: got %q, want %q", got, tt.wantBaseURL)
			}
		})
	}
}
