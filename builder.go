// FILE: lixenwraith/dlog/builder.go
package dlog

import (
	"io"
	"strings"
)

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling

	clock           Clock
	debugOverride   io.Writer
	consoleOverride io.Writer
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger instance with the specified configuration.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	l := newLogger()
	if b.clock != nil {
		l.clock = b.clock
	}
	l.debugOverride = b.debugOverride
	l.consoleOverride = b.consoleOverride

	if err := l.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}

	return l, nil
}

// Mode sets the active sinks.
func (b *Builder) Mode(mode int64) *Builder {
	b.cfg.Mode = ModeString(mode)
	return b
}

// ModeString sets the active sinks from a comma list.
func (b *Builder) ModeString(mode string) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := ParseMode(mode); err != nil {
		b.err = err
		return b
	}
	b.cfg.Mode = mode
	return b
}

// Level sets the level threshold.
func (b *Builder) Level(level int64) *Builder {
	b.cfg.Level = level
	return b
}

// LevelString sets the level threshold from a name.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := Level(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = levelVal
	return b
}

// Style sets the record appearance flags.
func (b *Builder) Style(style int64) *Builder {
	b.cfg.Style = StyleString(style)
	return b
}

// File sets the log file and whether it is appended to.
func (b *Builder) File(name string, appendMode bool) *Builder {
	b.cfg.File = name
	b.cfg.Append = appendMode
	return b
}

// ConsoleTarget selects stdout or stderr for the console sink.
func (b *Builder) ConsoleTarget(target string) *Builder {
	b.cfg.ConsoleTarget = strings.ToLower(target)
	return b
}

// DebugTarget selects stderr, stdout or discard for the debug sink.
func (b *Builder) DebugTarget(target string) *Builder {
	b.cfg.DebugTarget = strings.ToLower(target)
	return b
}

// Sanitize sets the text policy.
func (b *Builder) Sanitize(policy string) *Builder {
	b.cfg.Sanitize = policy
	return b
}

// InternalErrorsToStderr enables stderr reporting of failures no sink can carry.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// DebugWriter replaces the debug channel with w.
func (b *Builder) DebugWriter(w io.Writer) *Builder {
	b.debugOverride = w
	return b
}

// ConsoleWriter replaces the console with w.
func (b *Builder) ConsoleWriter(w io.Writer) *Builder {
	b.consoleOverride = w
	return b
}

// Clock replaces the wall clock used for timestamp lines.
func (b *Builder) Clock(c Clock) *Builder {
	b.clock = c
	return b
}

// Example usage:
// logger, err := dlog.NewBuilder().
//
//	ModeString("debug,file").
//	File("/var/log/app.log", false).
//	LevelString("intwarn").
//	Style(dlog.StyleNoFileNames).
//	Build()
//
// if err == nil {
//
//	 defer logger.Close()
//	 logger.Print(dlog.LevelState, "Logger initialized\n")
//
// }
