// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/doctalk/internal/gemini"
	"github.com/jeranaias/doctalk/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete doctalk configuration.
type Config struct {
	Gemini  GeminiConfig  `toml:"gemini" json:"gemini"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Storage StorageConfig `toml:"storage" json:"storage"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// GeminiConfig contains provider settings.
type GeminiConfig struct {
	// Model is the generateContent model name.
	Model string `toml:"model" json:"model"`
	// RequestTimeoutSecs bounds one round-trip. 0 means no bound.
	RequestTimeoutSecs int `toml:"request_timeout_secs" json:"request_timeout_secs"`
	// APIKey is only ever populated from the environment and never written.
	APIKey string `toml:"-" json:"-"`
}

// UIConfig contains chat screen settings.
type UIConfig struct {
	// Theme is "auto", "dark" or "light".
	Theme          string `toml:"theme" json:"theme"`
	ShowTimestamps bool   `toml:"show_timestamps" json:"show_timestamps"`
}

// StorageConfig controls the transcript database.
type StorageConfig struct {
	HistoryEnabled bool `toml:"history_enabled" json:"history_enabled"`
	// HistoryPath empty means ~/.doctalk/history.db.
	HistoryPath string `toml:"history_path" json:"history_path"`
	// RestoreLimit is how many messages the chat screen reloads on start.
	RestoreLimit int `toml:"restore_limit" json:"restore_limit"`
}

// LogConfig controls the zerolog sink.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	// File empty means ~/.doctalk/doctalk.log.
	File string `toml:"file" json:"file"`
}

// MaxRequestTimeoutSecs is the largest accepted request timeout.
const MaxRequestTimeoutSecs = 600

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Gemini: GeminiConfig{
			Model:              gemini.DefaultModel,
			RequestTimeoutSecs: 0,
		},
		UI: UIConfig{
			Theme:          "auto",
			ShowTimestamps: true,
		},
		Storage: StorageConfig{
			HistoryEnabled: true,
			RestoreLimit:   200,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// RequestTimeout returns the request bound as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Gemini.RequestTimeoutSecs) * time.Second
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// DataDir returns the doctalk data directory. DOCTALK_HOME overrides the
// default of ~/.doctalk.
func DataDir() (string, error) {
	if dir := os.Getenv("DOCTALK_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".doctalk"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	return inDataDir("config.toml")
}

// HistoryPath returns the resolved transcript database path.
func (c *Config) HistoryPath() (string, error) {
	if c.Storage.HistoryPath != "" {
		return expandHome(c.Storage.HistoryPath)
	}
	return inDataDir("history.db")
}

// LogPath returns the resolved log file path.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return expandHome(c.Log.File)
	}
	return inDataDir("doctalk.log")
}

func inDataDir(name string) (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ensureSecurePermissions tightens a config file to 0600.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads .env files, then the default config file if it exists, then
// applies environment overrides and validates the result. A missing file
// is not an error.
func Load() (*Config, error) {
	LoadDotEnv()

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		return LoadFromPath(path)
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific TOML file on top of
// the defaults, applies environment overrides and validates.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes path into cfg. Keys absent from the file keep the
// values cfg already holds.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("could not ensure secure permissions on config file")
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		var errs ValidateErrors
		for _, k := range undecoded {
			errs = append(errs, ValidationError{Field: k.String(), Message: "unknown key"})
		}
		return errs
	}
	return nil
}

// LoadDotEnv loads .env from the working directory and the data directory
// into the process environment. Variables already set win.
func LoadDotEnv() {
	candidates := []string{".env"}
	if dir, err := DataDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to the default config path.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path atomically with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# doctalk configuration file")
	fmt.Fprintln(&buf, "# Generated by doctalk - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
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

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.Gemini.Model) == "" {
		errs = append(errs, ValidationError{Field: "gemini.model", Message: "must not be empty"})
	}
	if c.Gemini.RequestTimeoutSecs < 0 || c.Gemini.RequestTimeoutSecs > MaxRequestTimeoutSecs {
		errs = append(errs, ValidationError{
			Field:   "gemini.request_timeout_secs",
			Message: fmt.Sprintf("must be between 0 and %d, got %d", MaxRequestTimeoutSecs, c.Gemini.RequestTimeoutSecs),
		})
	}

	switch strings.ToLower(c.UI.Theme) {
	case "auto", "dark", "light":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}

	if c.Storage.RestoreLimit < 0 {
		errs = append(errs, ValidationError{Field: "storage.restore_limit", Message: "must not be negative"})
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: trace, debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - DOCTALK_MODEL: overrides gemini.model
//   - DOCTALK_API_KEY, GEMINI_API_KEY: session credential (first non-empty wins)
//   - DOCTALK_LOG_LEVEL: overrides log.level
//   - DOCTALK_HISTORY: "0"/"false" disables the transcript store
//   - DOCTALK_REQUEST_TIMEOUT: seconds ("30") or a duration ("1m")
func (c *Config) ApplyEnvOverrides() {
	if model := os.Getenv("DOCTALK_MODEL"); model != "" {
		c.Gemini.Model = model
	}

	for _, name := range []string{"DOCTALK_API_KEY", "GEMINI_API_KEY"} {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			c.Gemini.APIKey = key
			break
		}
	}

	if level := os.Getenv("DOCTALK_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	if history := os.Getenv("DOCTALK_HISTORY"); history != "" {
		c.Storage.HistoryEnabled = parseBool(history)
	}

	if timeout := os.Getenv("DOCTALK_REQUEST_TIMEOUT"); timeout != "" {
		if secs, ok := parseSeconds(timeout); ok {
			c.Gemini.RequestTimeoutSecs = secs
		}
	}
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

func parseSeconds(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if d, err := time.ParseDuration(s); err == nil {
		return int(d / time.Second), true
	}
	return 0, false
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a JSON rendering for debug logs. The API key is never
// included, only whether one is set.
func (c *Config) String() string {
	data, _ := json.Marshal(struct {
		*Config
		APIKeySet bool `json:"api_key_set"`
	}{c, c.Gemini.APIKey != ""})
	return string(data)
}
