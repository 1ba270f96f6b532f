package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the searchdemo client configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	UI      UIConfig      `yaml:"ui"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// BackendConfig describes how to reach the search service.
type BackendConfig struct {
	BaseURL    string `yaml:"base_url"`
	APIKey     string `yaml:"api_key"`     // sent as a Bearer token when set
	TimeoutSec int    `yaml:"timeout_sec"` // 0 = no client timeout, transport defaults only
	UserAgent  string `yaml:"user_agent"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	NotificationTTLMs int   `yaml:"notification_ttl_ms"`
	Color             *bool `yaml:"color"` // nil = default (on)
}

// MetricsConfig holds the prometheus endpoint settings.
type MetricsConfig struct {
	Port int `yaml:"port"` // 0 disables the /metrics server
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// fallbackConfig is used when no config file exists for the environment,
// e.g. for an installed binary run outside the source tree.
const fallbackConfig = `
backend:
  base_url: ${SEARCH_BACKEND_URL:-http://localhost:8000}
  api_key: ${SEARCH_BACKEND_API_KEY:-}
metrics:
  port: ${METRICS_PORT:-0}
logging:
  level: ${LOG_LEVEL:-}
`

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A missing file is not an error: defaults and environment variables apply.
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if errors.Is(err, fs.ErrNotExist) {
		data = []byte(fallbackConfig)
	} else if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML config bytes, expands ${VAR} references, applies
// defaults and validates the result.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = "http://localhost:8000"
	}
	c.Backend.BaseURL = strings.TrimRight(c.Backend.BaseURL, "/")
	if c.UI.NotificationTTLMs <= 0 {
		c.UI.NotificationTTLMs = 5000
	}
	if c.UI.Color == nil {
		on := true
		c.UI.Color = &on
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend.base_url must be an absolute http(s) URL, got %q", c.Backend.BaseURL)
	}
	if c.Backend.TimeoutSec < 0 {
		return fmt.Errorf("backend.timeout_sec must be >= 0, got %d", c.Backend.TimeoutSec)
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 0 and 65535, got %d", c.Metrics.Port)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

// Timeout returns the backend HTTP timeout (0 = none).
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSec) * time.Second
}

// NotificationTTL returns how long a notification stays visible.
func (c *Config) NotificationTTL() time.Duration {
	return time.Duration(c.UI.NotificationTTLMs) * time.Millisecond
}

// ColorEnabled reports whether the terminal surface may emit ANSI escapes.
func (c *Config) ColorEnabled() bool {
	return c.UI.Color == nil || *c.UI.Color
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
