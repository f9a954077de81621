// FILE: lixenwraith/dlog/compat/gnet.go
package compat

import (
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/dlog"
	"github.com/panjf2000/gnet/v2/pkg/logging"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// gnetTag separates the source from the message like a location prefix,
// so the no_file_names style drops it
const gnetTag = "gnet:\t"

// GnetAdapter wraps dlog.Logger to implement the gnet logging.Logger interface
type GnetAdapter struct {
	logger       *dlog.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *dlog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs event loop chatter at LevelSockInfo
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logger.Print(dlog.LevelSockInfo, gnetFormat(format), args...)
}

// Infof logs at LevelIntInfo
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logger.Print(dlog.LevelIntInfo, gnetFormat(format), args...)
}

// Warnf logs at LevelIntWarn
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logger.Print(dlog.LevelIntWarn, gnetFormat(format), args...)
}

// Errorf logs at LevelIntErr
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logger.Print(dlog.LevelIntErr, gnetFormat(format), args...)
}

// Fatalf logs at LevelIntErr and triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	a.logger.Print(dlog.LevelIntErr, gnetFormat(format), args...)

	// Ensure the record reaches disk before exit
	_ = a.logger.Sync()

	if a.fatalHandler != nil {
		a.fatalHandler(fmt.Sprintf(format, args...))
	}
}

func gnetFormat(format string) string {
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	return gnetTag + format
}
