package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the vecdesk client configuration.
// Connection settings (store url and credential) are not part of it: they
// live in the settings store and are reloaded on every operation.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Settings  SettingsConfig  `yaml:"settings"`
	Listing   ListingConfig   `yaml:"listing"`
	Search    SearchConfig    `yaml:"search"`
	Embedding EmbeddingConfig `yaml:"embedding"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// SettingsConfig locates the persisted connection settings.
type SettingsConfig struct {
	Path           string `yaml:"path"`            // settings file; empty = user config dir
	KeyringService string `yaml:"keyring_service"` // keyring service holding the credential
}

// ListingConfig holds collection listing settings.
type ListingConfig struct {
	CountConcurrency int `yaml:"count_concurrency"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit"`
}

// EmbeddingConfig configures the optional query vectorizer used for
// nearVector searches. Disabled when Model is empty.
type EmbeddingConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKey      string `yaml:"api_key"`
	Model       string `yaml:"model"`
	Dimensions  int    `yaml:"dimensions"`
	Provider    string `yaml:"provider"`
	Instruction string `yaml:"instruction"` // prepended to every query
}

// Enabled reports whether a query vectorizer is configured.
func (e EmbeddingConfig) Enabled() bool { return e.Model != "" }

// Load reads configuration for an environment name (local, dev, prod).
// A missing file is not an error: defaults apply.
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(filepath.Clean(path))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		// Substitute env variables of the form ${VAR}
		data = expandEnvVars(data)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// GetEnv returns the current environment from VECDESK_ENV, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("VECDESK_ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Settings.KeyringService == "" {
		c.Settings.KeyringService = "vecdesk"
	}
	if c.Listing.CountConcurrency <= 0 {
		c.Listing.CountConcurrency = 4
	}
	if c.Search.DefaultLimit <= 0 {
		c.Search.DefaultLimit = 10
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	if c.Listing.CountConcurrency > 64 {
		return fmt.Errorf("listing.count_concurrency must be at most 64, got %d", c.Listing.CountConcurrency)
	}
	if c.Embedding.Dimensions < 0 {
		return fmt.Errorf("embedding.dimensions must not be negative, got %d", c.Embedding.Dimensions)
	}
	if c.Embedding.Enabled() && c.Embedding.APIKey == "" {
		return errors.New("embedding.api_key is required when embedding.model is set")
	}
	return nil
}

// findConfigPath locates the config file: ./config/<env>.yaml first, then
// the vecdesk directory under the user config dir.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	local := filepath.Join("config", filename)
	if fileExists(local) {
		return local
	}
	if dir, err := os.UserConfigDir(); err == nil {
		if path := filepath.Join(dir, "vecdesk", filename); fileExists(path) {
			return path
		}
	}
	return local
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
