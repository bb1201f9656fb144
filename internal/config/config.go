// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/huddle/internal/media"
	"github.com/jeranaias/huddle/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete huddle configuration.
type Config struct {
	// Version is the config file format version.
	Version string `toml:"version" json:"version"`

	User  UserConfig  `toml:"user" json:"user"`
	Call  CallConfig  `toml:"call" json:"call"`
	Media MediaConfig `toml:"media" json:"media"`
	UI    UIConfig    `toml:"ui" json:"ui"`
	Log   LogConfig   `toml:"log" json:"log"`
}

// UserConfig holds the local profile shown in the sidebar footer.
type UserConfig struct {
	Username string `toml:"username" json:"username"`
	// Tag is the four digit discriminator shown after the username
	Tag   string `toml:"tag" json:"tag"`
	Email string `toml:"email" json:"email"`
}

// CallConfig contains call setup settings.
type CallConfig struct {
	// STUNServers are the ICE servers handed to every new peer connection
	STUNServers []string `toml:"stun_servers" json:"stun_servers"`
	// PromptTimeoutSecs bounds how long a capture permission prompt may take
	PromptTimeoutSecs int `toml:"prompt_timeout_secs" json:"prompt_timeout_secs"`
	// AutoOpenDialog opens the call overlay for video calls and screen shares
	AutoOpenDialog bool `toml:"auto_open_dialog" json:"auto_open_dialog"`
}

// MediaConfig is the permission policy of the virtual capture devices.
type MediaConfig struct {
	// Microphone, Camera and Display are "granted", "denied" or "missing"
	Microphone string `toml:"microphone" json:"microphone"`
	Camera     string `toml:"camera" json:"camera"`
	Display    string `toml:"display" json:"display"`
	// PromptDelayMS simulates the user taking time to answer a prompt
	PromptDelayMS int `toml:"prompt_delay_ms" json:"prompt_delay_ms"`
	// ShareMaxSecs ends screen sharing by itself after this many seconds (0 = never)
	ShareMaxSecs int `toml:"share_max_secs" json:"share_max_secs"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// Markdown renders message content with glamour
	Markdown bool `toml:"markdown" json:"markdown"`
	// ToastSecs is how long notifications stay on screen
	ToastSecs int `toml:"toast_secs" json:"toast_secs"`
}

// LogConfig contains logger configuration.
type LogConfig struct {
	Enabled bool `toml:"enabled" json:"enabled"`
	// Level is one of debug, info, warn, error
	Level string `toml:"level" json:"level"`
	// Path is the log file. Empty means ~/.huddle/huddle.log
	Path string `toml:"path" json:"path"`
	// Development switches to the human readable console encoder
	Development bool `toml:"development" json:"development"`
}

// PromptTimeout returns the capture prompt timeout as a duration.
func (c CallConfig) PromptTimeout() time.Duration {
	return time.Duration(c.PromptTimeoutSecs) * time.Second
}

// Policy converts the media section into a virtual device policy.
func (m MediaConfig) Policy() media.Policy {
	return media.Policy{
		Microphone:       media.Permission(strings.ToLower(m.Microphone)),
		Camera:           media.Permission(strings.ToLower(m.Camera)),
		Display:          media.Permission(strings.ToLower(m.Display)),
		PromptDelay:      time.Duration(m.PromptDelayMS) * time.Millisecond,
		ShareMaxDuration: time.Duration(m.ShareMaxSecs) * time.Second,
	}
}

// ToastDuration returns the notification lifetime.
func (u UIConfig) ToastDuration() time.Duration {
	return time.Duration(u.ToastSecs) * time.Second
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	grants := media.DefaultPolicy()
	return &Config{
		Version: "1.0.0",

		User: UserConfig{
			Username: "You",
			Tag:      "0001",
		},

		Call: CallConfig{
			STUNServers:       append([]string(nil), media.DefaultICEServers...),
			PromptTimeoutSecs: 30,
			AutoOpenDialog:    true,
		},

		Media: MediaConfig{
			Microphone:    string(grants.Microphone),
			Camera:        string(grants.Camera),
			Display:       string(grants.Display),
			PromptDelayMS: 300,
		},

		UI: UIConfig{
			Theme:     "dark",
			Markdown:  true,
			ToastSecs: 5,
		},

		Log: LogConfig{
			Enabled: true,
			Level:   "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the huddle configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".huddle"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultLogPath returns the log file used when log.path is empty.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "huddle.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from ~/.huddle/config.toml and falls back to
// defaults when the file is missing. A file that cannot be decoded also
// falls back to defaults; the decode error is returned for information.
// Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			cfg, err := LoadFromPath(path)
			if err == nil {
				return cfg, nil
			}
			def, derr := finish(Default())
			if derr != nil {
				return nil, derr
			}
			return def, err
		}
	}
	return finish(Default())
}

// LoadTOML decodes a TOML file over cfg and fills missing values.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
// Keys absent from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}
	return finish(cfg)
}

// LoadFile reads the file's own values over the defaults, without
// environment overrides. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}
	return cfg, nil
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	// User
	if cfg.User.Username == "" {
		cfg.User.Username = defaults.User.Username
	}
	if cfg.User.Tag == "" {
		cfg.User.Tag = defaults.User.Tag
	}

	// Call
	if len(cfg.Call.STUNServers) == 0 {
		cfg.Call.STUNServers = defaults.Call.STUNServers
	}
	if cfg.Call.PromptTimeoutSecs == 0 {
		cfg.Call.PromptTimeoutSecs = defaults.Call.PromptTimeoutSecs
	}

	// Media
	if cfg.Media.Microphone == "" {
		cfg.Media.Microphone = defaults.Media.Microphone
	}
	if cfg.Media.Camera == "" {
		cfg.Media.Camera = defaults.Media.Camera
	}
	if cfg.Media.Display == "" {
		cfg.Media.Display = defaults.Media.Display
	}

	// UI
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.UI.ToastSecs == 0 {
		cfg.UI.ToastSecs = defaults.UI.ToastSecs
	}

	// Log
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes the configuration to path with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# huddle configuration file\n")
	buf.WriteString("# Only preferences live here. Chats reset on restart.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveUser replaces the [user] section of the file at path and keeps every
// other value as the file has it.
func SaveUser(path string, user UserConfig) error {
	cfg, err := LoadFile(path)
	if err != nil {
		return err
	}
	cfg.User = user
	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// Encode returns the TOML form of the configuration.
func (c *Config) Encode() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", err
	}
	return buf.String(), nil
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

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// User
	// ==========================================================================

	if strings.TrimSpace(c.User.Username) == "" {
		errs = append(errs, ValidationError{Field: "user.username", Message: "must not be empty"})
	}
	if c.User.Tag != "" {
		if _, err := strconv.Atoi(c.User.Tag); err != nil || len(c.User.Tag) != 4 {
			errs = append(errs, ValidationError{
				Field:   "user.tag",
				Message: fmt.Sprintf("invalid tag '%s', must be four digits", c.User.Tag),
			})
		}
	}
	if c.User.Email != "" && !strings.Contains(c.User.Email, "@") {
		errs = append(errs, ValidationError{
			Field:   "user.email",
			Message: fmt.Sprintf("invalid email '%s'", c.User.Email),
		})
	}

	// ==========================================================================
	// Call
	// ==========================================================================

	for _, s := range c.Call.STUNServers {
		if !strings.HasPrefix(s, "stun:") && !strings.HasPrefix(s, "turn:") && !strings.HasPrefix(s, "turns:") {
			errs = append(errs, ValidationError{
				Field:   "call.stun_servers",
				Message: fmt.Sprintf("invalid server '%s', must start with stun:, turn: or turns:", s),
			})
		}
	}
	if c.Call.PromptTimeoutSecs < 1 || c.Call.PromptTimeoutSecs > 300 {
		errs = append(errs, ValidationError{
			Field:   "call.prompt_timeout_secs",
			Message: fmt.Sprintf("must be 1-300, got %d", c.Call.PromptTimeoutSecs),
		})
	}

	// ==========================================================================
	// Media
	// ==========================================================================

	for field, value := range map[string]string{
		"media.microphone": c.Media.Microphone,
		"media.camera":     c.Media.Camera,
		"media.display":    c.Media.Display,
	} {
		if !media.Permission(strings.ToLower(value)).IsValid() {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("invalid permission '%s', must be one of: granted, denied, missing", value),
			})
		}
	}
	if c.Media.PromptDelayMS < 0 {
		errs = append(errs, ValidationError{Field: "media.prompt_delay_ms", Message: "must not be negative"})
	}
	if c.Media.ShareMaxSecs < 0 {
		errs = append(errs, ValidationError{Field: "media.share_max_secs", Message: "must not be negative"})
	}

	// ==========================================================================
	// UI
	// ==========================================================================

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}
	if c.UI.ToastSecs < 1 || c.UI.ToastSecs > 60 {
		errs = append(errs, ValidationError{
			Field:   "ui.toast_secs",
			Message: fmt.Sprintf("must be 1-60, got %d", c.UI.ToastSecs),
		})
	}

	// ==========================================================================
	// Log
	// ==========================================================================

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
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
// Supported variables:
//   - HUDDLE_USERNAME: overrides user.username
//   - HUDDLE_LOG_LEVEL: overrides log.level
//   - HUDDLE_STUN: comma separated list, overrides call.stun_servers
//   - HUDDLE_MICROPHONE, HUDDLE_CAMERA, HUDDLE_DISPLAY: override the media policy
func (c *Config) ApplyEnvOverrides() {
	if name := os.Getenv("HUDDLE_USERNAME"); name != "" {
		c.User.Username = name
	}

	if level := os.Getenv("HUDDLE_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	if stun := os.Getenv("HUDDLE_STUN"); stun != "" {
		var servers []string
		for _, s := range strings.Split(stun, ",") {
			if s = strings.TrimSpace(s); s != "" {
				servers = append(servers, s)
			}
		}
		c.Call.STUNServers = servers
	}

	if mic := os.Getenv("HUDDLE_MICROPHONE"); mic != "" {
		c.Media.Microphone = mic
	}
	if cam := os.Getenv("HUDDLE_CAMERA"); cam != "" {
		c.Media.Camera = cam
	}
	if display := os.Getenv("HUDDLE_DISPLAY"); display != "" {
		c.Media.Display = display
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "media.camera").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "ui.theme").
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
		field, ok := fieldByTag(v, part)
		if !ok {
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

// fieldByTag finds a struct field by its toml tag.
func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
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
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(lower == "1" || lower == "true" || lower == "yes")
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(strVal, ",")
				for i := range parts {
					parts[i] = strings.TrimSpace(parts[i])
				}
				field.Set(reflect.ValueOf(parts))
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

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Call.STUNServers = append([]string(nil), c.Call.STUNServers...)
	return &clone
}
