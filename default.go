// FILE: lixenwraith/dlog/default.go
package dlog

import (
	"github.com/lixenwraith/dlog/lockorder"
)

// Global instance for package-level functions
var defaultLogger = NewLogger()

// Default returns the process-wide logger behind the package-level functions
func Default() *Logger {
	return defaultLogger
}

// Configure sets file, mode and level of the default logger
func Configure(mode, level int64, filename string, appendMode bool) {
	defaultLogger.Configure(mode, level, filename, appendMode)
}

// ApplyConfig applies a validated configuration to the default logger
func ApplyConfig(cfg *Config) error {
	return defaultLogger.ApplyConfig(cfg)
}

// ApplyConfigString applies "key=value" overrides to the default logger
func ApplyConfigString(overrides ...string) error {
	return defaultLogger.ApplyConfigString(overrides...)
}

// Print writes a record through the default logger
func Print(level int64, format string, args ...any) {
	defaultLogger.Print(level, format, args...)
}

// Dump writes a value description through the default logger
func Dump(level int64, label string, v any) {
	defaultLogger.Dump(level, label, v)
}

// Validate checks lock order through the default logger
func Validate(m lockorder.Ordered, format string) uint32 {
	return defaultLogger.Validate(m, format)
}

// SetMode selects the default logger's sinks
func SetMode(mode int64) {
	defaultLogger.SetMode(mode)
}

// GetMode returns the default logger's active sinks
func GetMode() int64 {
	return defaultLogger.GetMode()
}

// SetLevel changes the default logger's threshold
func SetLevel(level int64) {
	defaultLogger.SetLevel(level)
}

// GetLevel returns the default logger's threshold
func GetLevel() int64 {
	return defaultLogger.GetLevel()
}

// SetStyle changes the default logger's record appearance
func SetStyle(style int64) {
	defaultLogger.SetStyle(style)
}

// GetStyle returns the default logger's style flags
func GetStyle() int64 {
	return defaultLogger.GetStyle()
}

// SetFile replaces the default logger's file
func SetFile(filename string, appendMode bool) {
	defaultLogger.SetFile(filename, appendMode)
}

// Sync commits the default logger's file to stable storage
func Sync() error {
	return defaultLogger.Sync()
}

// Close releases the default logger's file
func Close() error {
	return defaultLogger.Close()
}
