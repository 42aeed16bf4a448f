package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. GACHALOG_LOG_LEVEL.
const EnvPrefix = "gachalog"

// Config holds application configuration.
type Config struct {
	// LocalAppDataLow is the directory holding the game clients' logs.
	// Empty means <home>/AppData/LocalLow.
	LocalAppDataLow string `json:"local_app_data_low,omitempty" split_words:"true"`

	// HTTPTimeoutSeconds bounds each request to the gacha log API.
	HTTPTimeoutSeconds int `json:"http_timeout_seconds,omitempty" split_words:"true"`

	// PageDelayMS is the pause between pages of one category. The API
	// throttles clients that page faster.
	PageDelayMS int `json:"page_delay_ms,omitempty" split_words:"true"`

	// UserAgent is sent with every request.
	UserAgent string `json:"user_agent,omitempty" split_words:"true"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty" split_words:"true"`

	// DisableLedger turns off recording of exports in ledger.db.
	DisableLedger bool `json:"disable_ledger,omitempty" split_words:"true"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty" split_words:"true"`

	// DisabledTypes is a list of tool groups to disable entirely.
	// Known types: "gacha", "ledger". Unknown type names are logged as warnings.
	DisabledTypes []string `json:"disabled_types,omitempty" split_words:"true"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		HTTPTimeoutSeconds: 30,
		PageDelayMS:        500,
		UserAgent:          "gachalog",
		LogLevel:           "warn",
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.gachalog.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// Resolve loads defaults, then baseDir/config.json, then GACHALOG_*
// environment variables. A .env file in the working directory is read
// first when present; variables already set in the environment win.
func Resolve(baseDir string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(baseDir)
	if err != nil {
		return nil, err
	}
	env, err := FromEnv()
	if err != nil {
		return nil, err
	}
	return Merge(cfg, env), nil
}

// FromEnv reads the GACHALOG_* overrides. Unset variables stay zero.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	// Scalars: overlay wins if non-zero, else base
	result.LocalAppDataLow = overlayString(base.LocalAppDataLow, overlay.LocalAppDataLow)
	result.UserAgent = overlayString(base.UserAgent, overlay.UserAgent)
	result.LogLevel = overlayString(base.LogLevel, overlay.LogLevel)

	result.HTTPTimeoutSeconds = overlay.HTTPTimeoutSeconds
	if result.HTTPTimeoutSeconds == 0 {
		result.HTTPTimeoutSeconds = base.HTTPTimeoutSeconds
	}

	result.PageDelayMS = overlay.PageDelayMS
	if result.PageDelayMS == 0 {
		result.PageDelayMS = base.PageDelayMS
	}

	// Booleans: overlay wins if true, else base
	result.DisableLedger = base.DisableLedger || overlay.DisableLedger

	// Arrays: merge and deduplicate
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)
	result.DisabledTypes = mergeStringSlice(base.DisabledTypes, overlay.DisabledTypes)

	return result
}

// HTTPTimeout returns the per-request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// PageDelay returns the pause between pages. Negative values disable it.
func (c *Config) PageDelay() time.Duration {
	if c.PageDelayMS < 0 {
		return 0
	}
	return time.Duration(c.PageDelayMS) * time.Millisecond
}

// Level parses LogLevel. An empty level means warn.
func (c *Config) Level() (slog.Level, error) {
	if strings.TrimSpace(c.LogLevel) == "" {
		return slog.LevelWarn, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelWarn, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

// LocalLow returns the configured client log root, or <home>/AppData/LocalLow.
func (c *Config) LocalLow() (string, error) {
	if c.LocalAppDataLow != "" {
		return c.LocalAppDataLow, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "AppData", "LocalLow"), nil
}

func overlayString(base, overlay string) string {
	if strings.TrimSpace(overlay) != "" {
		return overlay
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
