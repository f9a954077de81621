// FILE: lixenwraith/dlog/config.go
package dlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/lixenwraith/config"
	"github.com/lixenwraith/dlog/sanitizer"
	"github.com/pelletier/go-toml/v2"
)

// configPrefix is the TOML table holding logger settings
const configPrefix = "dlog."

// Config holds all logger configuration values
type Config struct {
	// Sinks and filtering
	Mode  string `toml:"mode"`  // Comma list of debug, file, console
	Level int64  `toml:"level"` // Records above this level are dropped
	Style string `toml:"style"` // Comma list of time_inline, no_file_names, no_tab_separator

	// File sink
	File   string `toml:"file"`   // Log file path, empty disables the file sink
	Append bool   `toml:"append"` // Append instead of backup-and-truncate on open

	// Destinations
	ConsoleTarget string `toml:"console_target"` // "stdout" or "stderr"
	DebugTarget   string `toml:"debug_target"`   // "stderr", "stdout" or "discard"

	// Text safety
	Sanitize string `toml:"sanitize"` // "raw", "ascii" or "strip"

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal errors to stderr
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Mode:  "debug",
	Level: DefaultLevel,
	Style: "",

	File:   "",
	Append: false,

	ConsoleTarget: "stdout",
	DebugTarget:   "stderr",

	Sanitize: string(sanitizer.PolicyRaw),

	InternalErrorsToStderr: false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from the [dlog] table of a TOML file and returns a validated Config.
// A missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	if err := loader.RegisterStruct(configPrefix, *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, configPrefix, cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides keyed by toml tag
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmtErrorf("failed to apply overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration as a [dlog] TOML table readable by NewConfigFromFile
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmtErrorf("failed to create config directory '%s': %w", dir, err)
		}
	}

	data, err := toml.Marshal(struct {
		Dlog *Config `toml:"dlog"`
	}{Dlog: c})
	if err != nil {
		return fmtErrorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmtErrorf("failed to write config to %s: %w", path, err)
	}
	return nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if _, err := ParseMode(c.Mode); err != nil {
		return err
	}

	if _, err := ParseStyle(c.Style); err != nil {
		return err
	}

	if c.ConsoleTarget != "stdout" && c.ConsoleTarget != "stderr" {
		return fmtErrorf("invalid console_target: '%s' (use stdout or stderr)", c.ConsoleTarget)
	}

	if c.DebugTarget != "stderr" && c.DebugTarget != "stdout" && c.DebugTarget != "discard" {
		return fmtErrorf("invalid debug_target: '%s' (use stderr, stdout or discard)", c.DebugTarget)
	}

	if !sanitizer.ValidPolicy(c.Sanitize) {
		return fmtErrorf("invalid sanitize policy: '%s' (use raw, ascii or strip)", c.Sanitize)
	}

	return nil
}

// Validate reports the first invalid setting, if any
func (c *Config) Validate() error {
	return c.validate()
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
