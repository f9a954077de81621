// FILE: lixenwraith/dlog/state.go
package dlog

import (
	"io"
	"os"
	"sync/atomic"
	"time"
)

// State encapsulates the runtime state of the logger.
// Every field is read on the Print path without locking.
type State struct {
	Level atomic.Int64
	Style atomic.Int64

	ToDebug   atomic.Bool
	ToConsole atomic.Bool
	ToFile    atomic.Bool

	LastLogTime atomic.Int64 // Unix second of the last timestamp line, 0 forces a new one

	CurrentFile      atomic.Pointer[os.File]
	DebugWriter      atomic.Value // stores *sink
	ConsoleWriter    atomic.Value // stores *sink once the console is allocated
	ConsoleAllocated atomic.Bool

	// Statistics
	TotalRecords     atomic.Uint64 // Records that passed the level filter
	TotalBackups     atomic.Uint64 // Successful renames of the previous log to its backup
	FileOpenFailures atomic.Uint64
	WriteErrors      atomic.Uint64
}

// sink is a wrapper around an io.Writer, atomic value type change workaround
type sink struct {
	w io.Writer
}

// Clock supplies wall-clock time to the formatter
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Stats is a point-in-time copy of the logger counters
type Stats struct {
	TotalRecords     uint64
	TotalBackups     uint64
	FileOpenFailures uint64
	WriteErrors      uint64
}

// Stats returns the current counters
func (l *Logger) Stats() Stats {
	return Stats{
		TotalRecords:     l.state.TotalRecords.Load(),
		TotalBackups:     l.state.TotalBackups.Load(),
		FileOpenFailures: l.state.FileOpenFailures.Load(),
		WriteErrors:      l.state.WriteErrors.Load(),
	}
}
