// FILE: lixenwraith/dlog/storage.go
package dlog

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

// openFile opens the configured log file and enables the file sink.
// On any failure the debug sink is forced on, the file sink off, and one diagnostic is printed.
// Caller holds initMu.
func (l *Logger) openFile() {
	name := l.filename
	if name == "" {
		l.fileUnavailable()
		l.Print(LevelState, "Error opening log file\n")
		return
	}

	l.state.ToFile.Store(true)
	l.state.LastLogTime.Store(0)

	if !l.appendOnOpen {
		l.backupLogFile(name)
	}

	flags := os.O_WRONLY | os.O_CREATE
	if l.appendOnOpen {
		flags |= os.O_APPEND
	}
	f, err := os.OpenFile(name, flags, filePerm)
	if err != nil {
		l.internalLog("failed to open log file '%s': %v\n", name, err)
		l.fileUnavailable()
		l.Print(LevelState, "Error opening log file %s\n", name)
		return
	}

	if !l.appendOnOpen {
		// A rename that failed leaves the old content in place
		if err := f.Truncate(0); err != nil {
			l.internalLog("failed to truncate log file '%s': %v\n", name, err)
		}
	}

	l.state.CurrentFile.Store(f)
}

// fileUnavailable applies the fallback for a missing or unopenable file
func (l *Logger) fileUnavailable() {
	l.state.FileOpenFailures.Add(1)
	l.state.ToDebug.Store(true)
	l.state.ToFile.Store(false)
}

// backupLogFile moves an existing log to "<name>.bak", replacing any older backup.
// Failures are silent: there is no sink to report them to yet.
func (l *Logger) backupLogFile(name string) {
	backup := name + backupSuffix

	if err := os.Remove(backup); err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.internalLog("failed to remove log backup '%s': %v\n", backup, err)
	}

	if err := os.Rename(name, backup); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.internalLog("failed to back up log file '%s': %v\n", name, err)
		}
		return
	}
	l.state.TotalBackups.Add(1)
}

// closeFile releases the file handle if one is held. Safe to call repeatedly.
func (l *Logger) closeFile() error {
	f := l.state.CurrentFile.Swap(nil)
	if f == nil {
		return nil
	}

	var finalErr error
	if err := f.Sync(); err != nil {
		finalErr = fmtErrorf("failed to sync log file '%s': %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		finalErr = combineErrors(finalErr, fmtErrorf("failed to close log file '%s': %w", f.Name(), err))
	}
	if finalErr != nil {
		l.internalLog("%s\n", strings.TrimPrefix(finalErr.Error(), errorPrefix))
	}
	return finalErr
}

// Sync commits the log file's contents to stable storage
func (l *Logger) Sync() error {
	f := l.state.CurrentFile.Load()
	if f == nil {
		return nil
	}
	if err := f.Sync(); err != nil {
		return fmtErrorf("failed to sync log file '%s': %w", f.Name(), err)
	}
	return nil
}
