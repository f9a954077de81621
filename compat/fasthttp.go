// FILE: lixenwraith/dlog/compat/fasthttp.go
package compat

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/dlog"
	"github.com/valyala/fasthttp"
)

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

const fasthttpTag = "fasthttp:\t"

// levelUndetected tells Printf to use the adapter's default level
const levelUndetected int64 = -1

// FastHTTPAdapter wraps dlog.Logger to implement the fasthttp Logger interface
type FastHTTPAdapter struct {
	logger        *dlog.Logger
	defaultLevel  int64
	levelDetector func(string) int64 // Function to detect log level from message
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(logger *dlog.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger:        logger,
		defaultLevel:  dlog.LevelIntInfo,
		levelDetector: DetectLogLevel, // Default level detection
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the level used when the detector finds nothing
func WithDefaultLevel(level int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to detect log level from message content.
// The detector returns a negative value when it cannot tell.
func WithLevelDetector(detector func(string) int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	level := a.defaultLevel
	if a.levelDetector != nil {
		if detected := a.levelDetector(msg); detected >= 0 {
			level = detected
		}
	}

	// The rendered message is passed as an argument so any '%' it contains stays literal
	a.logger.Print(level, fasthttpTag+"%s\n", strings.TrimSuffix(msg, "\n"))
}

// DetectLogLevel maps message keywords to a dlog level, or -1 when none match
func DetectLogLevel(msg string) int64 {
	msgLower := strings.ToLower(msg)

	// Check for error indicators
	if strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") ||
		strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic") {
		return dlog.LevelSockErr
	}

	// Check for warning indicators
	if strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "deprecated") {
		return dlog.LevelIntWarn
	}

	// Check for debug indicators
	if strings.Contains(msgLower, "debug") ||
		strings.Contains(msgLower, "trace") {
		return dlog.LevelSockInfo
	}

	return levelUndetected
}
