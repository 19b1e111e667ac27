// Package config loads runtime configuration in layers: built-in defaults,
// an optional YAML file, then environment variables (a .env file in the
// working directory is read first, without overriding the real environment).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when no path is given.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/soundify/config.yaml",
}

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Completion CompletionConfig `koanf:"completion"`
	Storage    StorageConfig    `koanf:"storage"`
	Audit      AuditConfig      `koanf:"audit"`
	Logging    LoggingConfig    `koanf:"logging"`
}

type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CompletionConfig selects the completion provider. Each provider has its
// own endpoint setting so that one provider's address never receives the
// other's credentials. An empty Model falls back to the provider's default;
// a zero Timeout means no client-side limit.
type CompletionConfig struct {
	Provider      string        `koanf:"provider" validate:"oneof=openai ollama"`
	OpenAIBaseURL string        `koanf:"openai_base_url" validate:"omitempty,url"`
	OllamaHost    string        `koanf:"ollama_host" validate:"omitempty,url"`
	APIKey        string        `koanf:"api_key"`
	Model         string        `koanf:"model"`
	Timeout       time.Duration `koanf:"timeout"`
}

// BaseURL returns the endpoint configured for the selected provider, or ""
// to use the provider's default.
func (c CompletionConfig) BaseURL() string {
	if c.Provider == "ollama" {
		return c.OllamaHost
	}
	return c.OpenAIBaseURL
}

// normalizeOllamaHost accepts the bare host:port form Ollama itself uses.
func normalizeOllamaHost(host string) string {
	host = strings.TrimSpace(host)
	if host == "" || strings.Contains(host, "://") {
		return host
	}
	return "http://" + host
}

type StorageConfig struct {
	Driver string `koanf:"driver" validate:"oneof=none sqlite"`
	Path   string `koanf:"path"`
}

type AuditConfig struct {
	Workers   int `koanf:"workers" validate:"min=1"`
	QueueSize int `koanf:"queue_size" validate:"min=1"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "",
			Port:              8080,
			ReadHeaderTimeout: 15 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{"http://localhost:3000"},
		},
		Completion: CompletionConfig{
			Provider: "openai",
			Timeout:  90 * time.Second,
		},
		Storage: StorageConfig{
			Driver: "none",
			Path:   "soundify.db",
		},
		Audit: AuditConfig{
			Workers:   2,
			QueueSize: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// envMappings maps recognised environment variables to koanf paths. Anything
// else in the environment is ignored.
var envMappings = map[string]string{
	"HTTP_HOST":                "server.host",
	"HTTP_PORT":                "server.port",
	"HTTP_READ_HEADER_TIMEOUT": "server.read_header_timeout",
	"HTTP_SHUTDOWN_TIMEOUT":    "server.shutdown_timeout",
	"CORS_ORIGINS":             "server.cors_origins",
	"COMPLETION_PROVIDER":      "completion.provider",
	"OPENAI_BASE_URL":          "completion.openai_base_url",
	"OLLAMA_HOST":              "completion.ollama_host",
	"OPENAI_API_KEY":           "completion.api_key",
	"COMPLETION_MODEL":         "completion.model",
	"COMPLETION_TIMEOUT":       "completion.timeout",
	"STORAGE_DRIVER":           "storage.driver",
	"STORAGE_PATH":             "storage.path",
	"AUDIT_WORKERS":            "audit.workers",
	"AUDIT_QUEUE_SIZE":         "audit.queue_size",
	"LOG_LEVEL":                "logging.level",
	"LOG_FORMAT":               "logging.format",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToUpper(key)]
}

// Load builds the configuration. path may be empty, in which case
// CONFIG_PATH and DefaultConfigPaths are consulted.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := splitList(k, "server.cors_origins"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.Completion.OllamaHost = normalizeOllamaHost(cfg.Completion.OllamaHost)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// splitList turns a comma-separated string value (from the environment) into
// a trimmed slice. Slices loaded from YAML are left alone.
func splitList(k *koanf.Koanf, path string) error {
	raw, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if err := k.Set(path, parts); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Completion.Provider == "openai" && c.Completion.APIKey == "" {
		return errors.New("completion.api_key (OPENAI_API_KEY) is required for the openai provider")
	}
	if c.Storage.Driver == "sqlite" && c.Storage.Path == "" {
		return errors.New("storage.path is required for the sqlite driver")
	}
	return nil
}
