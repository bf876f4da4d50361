// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/mailcheck-tui/internal/checkapi"
	"github.com/jeranaias/mailcheck-tui/internal/present"
	"github.com/jeranaias/mailcheck-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete mailcheck configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	API     APIConfig     `toml:"api" json:"api"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	History HistoryConfig `toml:"history" json:"history"`
	Log     LogConfig     `toml:"log" json:"log"`
	Metrics MetricsConfig `toml:"metrics" json:"metrics"`
}

// APIConfig describes the check endpoint.
type APIConfig struct {
	BaseURL     string  `toml:"base_url" json:"base_url"`
	TimeoutSecs int     `toml:"timeout_secs" json:"timeout_secs"`
	RateLimit   float64 `toml:"rate_limit" json:"rate_limit"` // checks per second
	RateBurst   int     `toml:"rate_burst" json:"rate_burst"`
}

// UIConfig holds interactive view settings.
type UIConfig struct {
	Suggestions []string `toml:"suggestions" json:"suggestions"`
	JSONStyle   string   `toml:"json_style" json:"json_style"` // chroma style name
	ShowJSON    bool     `toml:"show_json" json:"show_json"`   // open the JSON view after each check
}

// HistoryConfig controls the recent-checks store.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled"`
	Path    string `toml:"path" json:"path"` // empty = ~/.mailcheck/history.db
	Limit   int    `toml:"limit" json:"limit"`
}

// LogConfig controls the log file.
type LogConfig struct {
	File  string `toml:"file" json:"file"`   // empty = ~/.mailcheck/mailcheck.log, "-" = disabled
	Level string `toml:"level" json:"level"` // debug, info, warn, error
}

// MetricsConfig controls the optional Prometheus listener.
type MetricsConfig struct {
	Addr string `toml:"addr" json:"addr"` // empty = disabled
}

// DefaultSuggestions are offered before any history exists.
var DefaultSuggestions = []string{
	"test_user@gmail.com",
	"p303200@uoa.gr",
	"zerile@forexzig.com",
	"qwer1234ksnf45ms92@hotmail.com",
}

// CurrentVersion is the config schema version written by Save.
const CurrentVersion = "1"

// LogDisabled as log.file turns logging off.
const LogDisabled = "-"

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		API: APIConfig{
			BaseURL:     "http://127.0.0.1:8080",
			TimeoutSecs: 15,
			RateLimit:   5,
			RateBurst:   5,
		},
		UI: UIConfig{
			Suggestions: append([]string(nil), DefaultSuggestions...),
			JSONStyle:   present.DefaultStyle,
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   20,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the mailcheck configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".mailcheck"), nil
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

// ActivePath returns the file Load would read: the TOML file if it exists,
// else the JSON file if it exists, else the TOML path.
func ActivePath() (string, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last. A file that fails to parse is
// reported alongside the (valid) defaults.
func Load() (*Config, error) {
	path, err := ActivePath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			cfg, loadErr := LoadFromPath(path)
			if loadErr == nil {
				return cfg, nil
			}
			if errors.As(loadErr, new(ValidateErrors)) {
				return nil, loadErr
			}
			err = loadErr
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if verr := cfg.Validate(); verr != nil {
		return nil, fmt.Errorf("invalid config: %w", verr)
	}
	return cfg, err
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
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
func LoadFromPath(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFile decodes path over the defaults without environment overrides or
// validation. Edits that are saved back start from here.
func LoadFile(path string) (*Config, error) {
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
	cfg.SetDefaults()
	return cfg, nil
}

// SetDefaults fills zero values left by a sparse file.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.TimeoutSecs == 0 {
		c.API.TimeoutSecs = defaults.API.TimeoutSecs
	}
	if c.API.RateLimit == 0 {
		c.API.RateLimit = defaults.API.RateLimit
	}
	if c.API.RateBurst == 0 {
		c.API.RateBurst = defaults.API.RateBurst
	}
	if c.UI.Suggestions == nil {
		c.UI.Suggestions = defaults.UI.Suggestions
	}
	if c.UI.JSONStyle == "" {
		c.UI.JSONStyle = defaults.UI.JSONStyle
	}
	if c.History.Limit == 0 {
		c.History.Limit = defaults.History.Limit
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveToPath writes cfg as JSON or TOML depending on the file extension.
func SaveToPath(cfg *Config, path string) error {
	if strings.HasSuffix(path, ".json") {
		return SaveJSON(cfg, path)
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg atomically as TOML with a short header.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# mailcheck configuration file\n")
	buf.WriteString("# Generated by mailcheck - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg atomically as indented JSON.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
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
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	u, err := url.Parse(c.API.BaseURL)
	switch {
	case err != nil:
		errs = append(errs, ValidationError{Field: "api.base_url", Message: fmt.Sprintf("invalid URL: %v", err)})
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, ValidationError{Field: "api.base_url", Message: fmt.Sprintf("scheme must be http or https, got '%s'", u.Scheme)})
	case u.Host == "":
		errs = append(errs, ValidationError{Field: "api.base_url", Message: "missing host"})
	}

	if c.API.TimeoutSecs < 1 || c.API.TimeoutSecs > 300 {
		errs = append(errs, ValidationError{Field: "api.timeout_secs", Message: fmt.Sprintf("must be between 1 and 300, got %d", c.API.TimeoutSecs)})
	}
	if c.API.RateLimit <= 0 {
		errs = append(errs, ValidationError{Field: "api.rate_limit", Message: "must be positive"})
	}
	if c.API.RateBurst < 1 {
		errs = append(errs, ValidationError{Field: "api.rate_burst", Message: "must be at least 1"})
	}

	if !present.KnownStyle(c.UI.JSONStyle) {
		errs = append(errs, ValidationError{Field: "ui.json_style", Message: fmt.Sprintf("unknown style '%s'", c.UI.JSONStyle)})
	}
	for i, s := range c.UI.Suggestions {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("ui.suggestions[%d]", i), Message: "must not be blank"})
		}
	}

	if c.History.Limit < 1 || c.History.Limit > 1000 {
		errs = append(errs, ValidationError{Field: "history.limit", Message: fmt.Sprintf("must be between 1 and 1000, got %d", c.History.Limit)})
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{Field: "log.level", Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//   - MAILCHECK_API_URL: overrides api.base_url
//   - MAILCHECK_TIMEOUT: overrides api.timeout_secs
//   - MAILCHECK_LOG_FILE: overrides log.file
//   - MAILCHECK_LOG_LEVEL: overrides log.level
//   - MAILCHECK_METRICS_ADDR: overrides metrics.addr
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("MAILCHECK_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("MAILCHECK_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("MAILCHECK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("MAILCHECK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("MAILCHECK_METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

// Timeout returns api.timeout_secs as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSecs) * time.Second
}

// ClientConfig builds the check client configuration.
func (c *Config) ClientConfig(logger *slog.Logger) *checkapi.ClientConfig {
	return &checkapi.ClientConfig{
		BaseURL:   c.API.BaseURL,
		Timeout:   c.Timeout(),
		RateLimit: c.API.RateLimit,
		RateBurst: c.API.RateBurst,
		UserAgent: "mailcheck",
		Logger:    logger,
	}
}

// LogPath resolves log.file. ok is false when logging is disabled.
func (c *Config) LogPath() (path string, ok bool) {
	switch c.Log.File {
	case LogDisabled:
		return "", false
	case "":
		dir, err := ConfigDir()
		if err != nil {
			return "", false
		}
		return filepath.Join(dir, "mailcheck.log"), true
	default:
		return c.Log.File, true
	}
}

// SlogLevel maps log.level onto slog.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// HistoryPath resolves history.path.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "api.base_url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "api.timeout_secs").
// String values are converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field
// equivalent. Acronym fields (BaseURL, JSONStyle) match case-insensitively.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(strVal == "1" || lower == "true" || lower == "yes")
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				var items []string
				for _, s := range strings.Split(strVal, ",") {
					if s = strings.TrimSpace(s); s != "" {
						items = append(items, s)
					}
				}
				field.Set(reflect.ValueOf(items))
				return nil
			}
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"api.base_url",
		"api.timeout_secs",
		"api.rate_limit",
		"api.rate_burst",
		"ui.suggestions",
		"ui.json_style",
		"ui.show_json",
		"history.enabled",
		"history.path",
		"history.limit",
		"log.file",
		"log.level",
		"metrics.addr",
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.UI.Suggestions = append([]string(nil), c.UI.Suggestions...)
	return &clone
}

// String renders the config as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
