// FILE: lixenwraith/dlog/logger.go
package dlog

import (
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/dlog/formatter"
	"github.com/lixenwraith/dlog/sanitizer"
)

// Logger writes records to any combination of a debug channel, a console and a file.
// Print may be called from any goroutine. Reconfiguration is serialized among itself
// but not against Print.
type Logger struct {
	currentConfig atomic.Value // stores *Config
	state         State
	initMu        sync.Mutex
	formatter     atomic.Pointer[formatter.Formatter]

	// Guarded by initMu
	filename     string
	appendOnOpen bool

	// Set before first use
	clock           Clock
	debugOverride   io.Writer
	consoleOverride io.Writer
}

// NewLogger creates a Logger writing to the debug channel at level 1
func NewLogger() *Logger {
	l := newLogger()
	l.applyBase(DefaultConfig())
	l.setMode(DefaultMode)
	l.state.Level.Store(DefaultLevel)
	return l
}

// New creates a Logger and configures it as Configure does
func New(mode, level int64, filename string, appendMode bool) *Logger {
	l := newLogger()
	l.applyBase(DefaultConfig())
	l.Configure(mode, level, filename, appendMode)
	return l
}

func newLogger() *Logger {
	l := &Logger{clock: systemClock{}}
	l.currentConfig.Store(DefaultConfig())
	l.formatter.Store(formatter.New())
	return l
}

// Configure sets the file name and append policy first, then the mode and the level.
// Enabling ToFile here opens the file.
func (l *Logger) Configure(mode, level int64, filename string, appendMode bool) {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	l.setFile(filename, appendMode)
	l.setMode(mode)
	l.state.Level.Store(level)
}

// ApplyConfig applies a validated configuration to the logger
func (l *Logger) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}

	if err := cfg.validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}

	mode, _ := ParseMode(cfg.Mode)
	style, _ := ParseStyle(cfg.Style)

	l.initMu.Lock()
	defer l.initMu.Unlock()

	l.applyBase(cfg)

	// Only a change of file or policy reopens, so reloading an unchanged config never rotates
	if cfg.File != l.filename || cfg.Append != l.appendOnOpen {
		l.setFile(cfg.File, cfg.Append)
	}
	l.setMode(mode)
	l.state.Level.Store(cfg.Level)
	l.state.Style.Store(style)

	return nil
}

// applyBase stores cfg and rebuilds everything that does not touch the file sink
func (l *Logger) applyBase(cfg *Config) {
	l.currentConfig.Store(cfg.Clone())

	l.formatter.Store(formatter.New(sanitizer.New().Policy(sanitizer.PolicyPreset(cfg.Sanitize))))

	l.state.DebugWriter.Store(&sink{w: l.debugWriter(cfg.DebugTarget)})
	if l.state.ConsoleAllocated.Load() {
		l.state.ConsoleWriter.Store(&sink{w: l.consoleWriter(cfg.ConsoleTarget)})
	}
}

// GetConfig returns a copy of the current configuration, live settings included
func (l *Logger) GetConfig() *Config {
	cfg := l.getConfig().Clone()

	l.initMu.Lock()
	cfg.File = l.filename
	cfg.Append = l.appendOnOpen
	l.initMu.Unlock()

	cfg.Mode = ModeString(l.GetMode())
	cfg.Level = l.GetLevel()
	cfg.Style = StyleString(l.GetStyle())
	return cfg
}

// SetMode selects the active sinks. Enabling ToFile opens the file unless it is already open;
// disabling it closes the file. The console is allocated the first time ToConsole is enabled.
func (l *Logger) SetMode(mode int64) {
	l.initMu.Lock()
	defer l.initMu.Unlock()
	l.setMode(mode)
}

func (l *Logger) setMode(mode int64) {
	l.state.ToDebug.Store(mode&ToDebug != 0)

	if mode&ToFile != 0 {
		if !l.state.ToFile.Load() {
			l.openFile()
		}
	} else {
		_ = l.closeFile()
		l.state.ToFile.Store(false)
	}

	if mode&ToConsole != 0 {
		l.allocConsole()
		l.state.ToConsole.Store(true)
	} else {
		l.state.ToConsole.Store(false)
	}
}

// GetMode returns the active sinks. ToFile is reported only while the file is open,
// and ToDebug is reported when a file failure forced it on.
func (l *Logger) GetMode() int64 {
	var mode int64
	if l.state.ToDebug.Load() {
		mode |= ToDebug
	}
	if l.state.ToFile.Load() && l.state.CurrentFile.Load() != nil {
		mode |= ToFile
	}
	if l.state.ToConsole.Load() {
		mode |= ToConsole
	}
	return mode
}

// SetLevel changes the level threshold
func (l *Logger) SetLevel(level int64) {
	l.state.Level.Store(level)
}

// GetLevel returns the level threshold
func (l *Logger) GetLevel() int64 {
	return l.state.Level.Load()
}

// SetStyle changes the appearance of records
func (l *Logger) SetStyle(style int64) {
	l.state.Style.Store(style)
}

// GetStyle returns the style flags
func (l *Logger) GetStyle() int64 {
	return l.state.Style.Load()
}

// SetFile closes any open log file and replaces the file name and append policy.
// If the file sink is enabled the new file is opened immediately.
// An empty name leaves the logger without a file; enabling the file sink then falls back to debug.
func (l *Logger) SetFile(filename string, appendMode bool) {
	l.initMu.Lock()
	defer l.initMu.Unlock()
	l.setFile(filename, appendMode)
}

func (l *Logger) setFile(filename string, appendMode bool) {
	_ = l.closeFile()
	l.filename = filename
	l.appendOnOpen = appendMode
	if l.state.ToFile.Load() {
		l.openFile()
	}
}

// Print writes a record if level is at or below the threshold.
// Filtered calls cost one atomic load and do no formatting.
// Records from concurrent callers are not ordered against the timestamp line: a record
// written while another goroutine emits a new second's timestamp may land under the previous one.
func (l *Logger) Print(level int64, format string, args ...any) {
	if level > l.state.Level.Load() {
		return
	}
	l.reallyPrint(format, args)
}

// Dump writes a multi-line description of v as a single record
func (l *Logger) Dump(level int64, label string, v any) {
	if level > l.state.Level.Load() {
		return
	}
	text := strings.ReplaceAll(sanitizer.DumpLabeled(label, v), "\n", formatter.LineEnding)
	l.reallyPrint("%s\n", []any{text})
}

func (l *Logger) reallyPrint(format string, args []any) {
	style := l.state.Style.Load()

	// One timestamp line per distinct second; the CAS winner writes it.
	// Losers do not wait for it, so their record can precede the new timestamp.
	now := l.clock.Now()
	sec := now.Unix()
	last := l.state.LastLogTime.Load()
	if sec != last && l.state.LastLogTime.CompareAndSwap(last, sec) {
		l.writeLine(formatter.TimestampLine(now, style))
	}

	l.writeLine(l.formatter.Load().Format(style, format, args))
	l.state.TotalRecords.Add(1)
}

// Close releases the log file. Debug and console sinks keep working.
func (l *Logger) Close() error {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	err := l.closeFile()
	l.state.ToFile.Store(false)
	return err
}

// getConfig returns the current configuration
func (l *Logger) getConfig() *Config {
	return l.currentConfig.Load().(*Config)
}
