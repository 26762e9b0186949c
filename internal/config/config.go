// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/rigsh/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete rigsh configuration.
type Config struct {
	// Shell behaviour
	Shell ShellConfig `toml:"shell" json:"shell"`

	// Natural language translation
	NL NLConfig `toml:"nl" json:"nl"`

	// File display
	Display DisplayConfig `toml:"display" json:"display"`

	// Diagnostic logging
	Log LogConfig `toml:"log" json:"log"`
}

// ShellConfig contains REPL settings.
type ShellConfig struct {
	// StartDir is the initial working directory (empty = process cwd)
	StartDir string `toml:"start_dir" json:"start_dir"`
	// Banner prints the version banner on start
	Banner bool `toml:"banner" json:"banner"`
	// PersistHistory records every line in the SQLite journal
	PersistHistory bool `toml:"persist_history" json:"persist_history"`
	// HistoryDB is the journal path (empty = ~/.rigsh/history.db)
	HistoryDB string `toml:"history_db" json:"history_db"`
	// HistoryLoadLimit is how many journal lines are preloaded into the editor
	HistoryLoadLimit int `toml:"history_load_limit" json:"history_load_limit"`
}

// NLConfig contains settings for the nl command.
type NLConfig struct {
	// Enabled turns the translator on
	Enabled bool `toml:"enabled" json:"enabled"`
	// Provider is one of "ollama", "openrouter", "gemini"
	Provider string `toml:"provider" json:"provider"`
	// Model overrides the provider's default model
	Model string `toml:"model" json:"model"`
	// OllamaURL is the URL of the Ollama server
	OllamaURL string `toml:"ollama_url" json:"ollama_url"`
	// OpenRouterKey is the OpenRouter API key
	OpenRouterKey string `toml:"openrouter_key" json:"openrouter_key"`
	// GeminiKey is the Gemini API key
	GeminiKey string `toml:"gemini_key" json:"gemini_key"`
	// TimeoutSecs bounds a single translation request
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// RequestsPerMinute limits translation calls (0 = unlimited)
	RequestsPerMinute int `toml:"requests_per_minute" json:"requests_per_minute"`
	// MaxRetries is the number of attempts for a cloud request that fails
	// with a transient error
	MaxRetries int `toml:"max_retries" json:"max_retries"`
	// LocalOnly refuses cloud providers and non-loopback Ollama servers
	LocalOnly bool `toml:"local_only" json:"local_only"`
}

// DisplayConfig contains cat/head rendering settings.
type DisplayConfig struct {
	// HighlightStyle is a chroma style name
	HighlightStyle string `toml:"highlight_style" json:"highlight_style"`
	// Formatter is a chroma terminal formatter name
	Formatter string `toml:"formatter" json:"formatter"`
	// RenderMarkdown renders .md files with glamour in cat
	RenderMarkdown bool `toml:"render_markdown" json:"render_markdown"`
	// HeadLines is the default line count for head
	HeadLines int `toml:"head_lines" json:"head_lines"`
	// WordWrap is the markdown wrap width
	WordWrap int `toml:"word_wrap" json:"word_wrap"`
}

// LogConfig contains diagnostic log settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level" json:"level"`
	// Path is the log file (empty = ~/.rigsh/rigsh.log)
	Path string `toml:"path" json:"path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Shell: ShellConfig{
			Banner:           true,
			PersistHistory:   true,
			HistoryLoadLimit: 500,
		},
		NL: NLConfig{
			Enabled:           true,
			Provider:          "gemini",
			OllamaURL:         "http://127.0.0.1:11434",
			TimeoutSecs:       30,
			RequestsPerMinute: 10,
			MaxRetries:        3,
		},
		Display: DisplayConfig{
			HighlightStyle: "monokai",
			Formatter:      "terminal256",
			RenderMarkdown: true,
			HeadLines:      10,
			WordWrap:       80,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the rigsh configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".rigsh"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// FindPath returns the first existing config file, TOML before JSON, or ""
// when neither exists.
func FindPath() string {
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// HistoryDBPath returns the journal location.
func (c *Config) HistoryDBPath() (string, error) {
	if c.Shell.HistoryDB != "" {
		return c.Shell.HistoryDB, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// LogPath returns the log file location.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rigsh.log"), nil
}

// ensureSecurePermissions tightens a config file to 0600; it may hold API keys.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode&0o077 != 0 {
		if err := os.Chmod(path, 0o600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
//
// The returned config is never nil: when the file is unreadable or invalid
// the defaults (with environment overrides) are returned along with the error.
func Load() (*Config, error) {
	if path := FindPath(); path != "" {
		cfg, err := LoadFromPath(path)
		if err != nil {
			return defaultsWithEnv(), err
		}
		return cfg, nil
	}

	cfg := defaultsWithEnv()
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func defaultsWithEnv() *Config {
	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	return cfg
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// LoadJSON loads configuration from a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
// Keys missing from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveToPath writes cfg to path, as JSON when path ends in ".json" and as TOML
// otherwise, mirroring LoadFromPath.
func SaveToPath(cfg *Config, path string) error {
	if strings.HasSuffix(path, ".json") {
		return SaveJSON(cfg, path)
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var sb strings.Builder
	sb.WriteString("# rigsh configuration file\n")
	sb.WriteString("# Keys missing here use built-in defaults.\n\n")

	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFileWithDir(path, []byte(sb.String()), 0o600, 0o755); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFileWithDir(path, data, 0o600, 0o755); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	validProviders  = []string{"ollama", "openrouter", "gemini"}
	validLevels     = []string{"debug", "info", "warn", "error"}
	validFormatters = []string{"terminal", "terminal8", "terminal16", "terminal256", "terminal16m", "noop"}
)

func oneOf(value string, allowed []string) bool {
	value = strings.ToLower(value)
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Shell
	if c.Shell.HistoryLoadLimit < 0 {
		errs = append(errs, ValidationError{"shell.history_load_limit", "must not be negative"})
	}
	if c.Shell.StartDir != "" {
		if info, err := os.Stat(c.Shell.StartDir); err != nil || !info.IsDir() {
			errs = append(errs, ValidationError{"shell.start_dir", fmt.Sprintf("'%s' is not a directory", c.Shell.StartDir)})
		}
	}

	// NL
	if !oneOf(c.NL.Provider, validProviders) {
		errs = append(errs, ValidationError{
			Field:   "nl.provider",
			Message: fmt.Sprintf("invalid provider '%s', must be one of: %s", c.NL.Provider, strings.Join(validProviders, ", ")),
		})
	}
	if c.NL.OllamaURL != "" {
		u, err := url.Parse(c.NL.OllamaURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ValidationError{"nl.ollama_url", fmt.Sprintf("invalid URL '%s'", c.NL.OllamaURL)})
		}
	}
	if c.NL.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{"nl.timeout_secs", "must not be negative"})
	}
	if c.NL.RequestsPerMinute < 0 {
		errs = append(errs, ValidationError{"nl.requests_per_minute", "must not be negative"})
	}
	if c.NL.MaxRetries < 0 {
		errs = append(errs, ValidationError{"nl.max_retries", "must not be negative"})
	}

	// Display
	if c.Display.Formatter != "" && !oneOf(c.Display.Formatter, validFormatters) {
		errs = append(errs, ValidationError{
			Field:   "display.formatter",
			Message: fmt.Sprintf("invalid formatter '%s', must be one of: %s", c.Display.Formatter, strings.Join(validFormatters, ", ")),
		})
	}
	if c.Display.HeadLines < 0 {
		errs = append(errs, ValidationError{"display.head_lines", "must not be negative"})
	}
	if c.Display.WordWrap < 0 {
		errs = append(errs, ValidationError{"display.word_wrap", "must not be negative"})
	}

	// Log
	if !oneOf(c.Log.Level, validLevels) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: %s", c.Log.Level, strings.Join(validLevels, ", ")),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values that have no meaningful zero setting.
func (c *Config) SetDefaults() {
	d := Default()

	if c.NL.Provider == "" {
		c.NL.Provider = d.NL.Provider
	}
	c.NL.Provider = strings.ToLower(c.NL.Provider)
	if c.NL.OllamaURL == "" {
		c.NL.OllamaURL = d.NL.OllamaURL
	}
	if c.NL.TimeoutSecs == 0 {
		c.NL.TimeoutSecs = d.NL.TimeoutSecs
	}
	if c.NL.MaxRetries == 0 {
		c.NL.MaxRetries = d.NL.MaxRetries
	}
	if c.Display.HighlightStyle == "" {
		c.Display.HighlightStyle = d.Display.HighlightStyle
	}
	if c.Display.HeadLines == 0 {
		c.Display.HeadLines = d.Display.HeadLines
	}
	if c.Display.WordWrap == 0 {
		c.Display.WordWrap = d.Display.WordWrap
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
//   - RIGSH_NL_PROVIDER: overrides nl.provider
//   - RIGSH_MODEL: overrides nl.model
//   - RIGSH_OLLAMA_URL: overrides nl.ollama_url
//   - RIGSH_OPENROUTER_KEY: overrides nl.openrouter_key
//   - GEMINI_API_KEY: overrides nl.gemini_key
//   - RIGSH_NL_ENABLED: overrides nl.enabled ("1"/"true" or "0"/"false")
//   - RIGSH_NL_LOCAL_ONLY: overrides nl.local_only
//   - RIGSH_LOG_LEVEL: overrides log.level
//   - RIGSH_HISTORY_DB: overrides shell.history_db
func (c *Config) ApplyEnvOverrides() {
	if provider := os.Getenv("RIGSH_NL_PROVIDER"); provider != "" {
		c.NL.Provider = provider
	}
	if model := os.Getenv("RIGSH_MODEL"); model != "" {
		c.NL.Model = model
	}
	if u := os.Getenv("RIGSH_OLLAMA_URL"); u != "" {
		c.NL.OllamaURL = u
	}
	if key := os.Getenv("RIGSH_OPENROUTER_KEY"); key != "" {
		c.NL.OpenRouterKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.NL.GeminiKey = key
	}
	if enabled := os.Getenv("RIGSH_NL_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			c.NL.Enabled = b
		}
	}
	if localOnly := os.Getenv("RIGSH_NL_LOCAL_ONLY"); localOnly != "" {
		if b, err := strconv.ParseBool(localOnly); err == nil {
			c.NL.LocalOnly = b
		}
	}
	if level := os.Getenv("RIGSH_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if db := os.Getenv("RIGSH_HISTORY_DB"); db != "" {
		c.Shell.HistoryDB = db
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the configuration as indented JSON with API keys redacted.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.NL.OpenRouterKey != "" {
		safe.NL.OpenRouterKey = "[REDACTED]"
	}
	if safe.NL.GeminiKey != "" {
		safe.NL.GeminiKey = "[REDACTED]"
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}
