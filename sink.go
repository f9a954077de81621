// FILE: lixenwraith/dlog/sink.go
package dlog

import (
	"io"
	"os"
)

// writeLine sends one finished line to every enabled sink.
// Each sink is independent: a disabled, absent or failing sink never blocks the others.
func (l *Logger) writeLine(line string) {
	if l.state.ToDebug.Load() {
		l.writeSink(&l.state.DebugWriter, line)
	}

	if l.state.ToConsole.Load() {
		l.writeSink(&l.state.ConsoleWriter, line)
	}

	if l.state.ToFile.Load() {
		if f := l.state.CurrentFile.Load(); f != nil {
			if _, err := f.WriteString(line); err != nil {
				l.state.WriteErrors.Add(1)
			}
		}
	}
}

func (l *Logger) writeSink(v interface{ Load() any }, line string) {
	s, ok := v.Load().(*sink)
	if !ok || s == nil || s.w == nil {
		return
	}
	if _, err := io.WriteString(s.w, line); err != nil {
		l.state.WriteErrors.Add(1)
	}
}

// allocConsole resolves the console writer on first use. The console is never released.
func (l *Logger) allocConsole() {
	if !l.state.ConsoleAllocated.CompareAndSwap(false, true) {
		return
	}
	l.state.ConsoleWriter.Store(&sink{w: l.consoleWriter(l.getConfig().ConsoleTarget)})
}

// consoleWriter maps console_target to a writer, honoring an injected writer
func (l *Logger) consoleWriter(target string) io.Writer {
	if l.consoleOverride != nil {
		return l.consoleOverride
	}
	if target == "stderr" {
		return os.Stderr
	}
	return os.Stdout
}

// debugWriter maps debug_target to a writer, honoring an injected writer
func (l *Logger) debugWriter(target string) io.Writer {
	if l.debugOverride != nil {
		return l.debugOverride
	}
	switch target {
	case "stdout":
		return os.Stdout
	case "discard":
		return io.Discard
	default:
		return os.Stderr
	}
}
