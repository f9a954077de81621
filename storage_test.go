// FILE: lixenwraith/dlog/storage_test.go
package dlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createFileLogger creates a logger with the debug channel captured and the given file
func createFileLogger(t *testing.T, path string, appendMode bool) (*Logger, *syncBuffer) {
	t.Helper()
	debug := &syncBuffer{}

	logger, err := NewBuilder().
		Mode(ToFile).
		File(path, appendMode).
		Level(LevelAll).
		DebugWriter(debug).
		Clock(newTestClock()).
		Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })

	return logger, debug
}

func TestFileModeWithoutFilename(t *testing.T) {
	logger, debug, _ := createTestLogger(t)
	logger.SetMode(0)

	logger.SetMode(ToFile)

	mode := logger.GetMode()
	assert.NotZero(t, mode&ToDebug, "debug forced on")
	assert.Zero(t, mode&ToFile, "file sink stays off")
	assert.Equal(t, 1, strings.Count(debug.String(), "Error opening log file"))
	assert.Equal(t, uint64(1), logger.Stats().FileOpenFailures)
}

func TestFileOpenFailure(t *testing.T) {
	// A directory cannot be opened for writing
	dir := t.TempDir()
	logger, debug := createFileLogger(t, dir, true)

	assert.Equal(t, ToDebug, logger.GetMode())
	assert.Contains(t, debug.String(), "Error opening log file "+dir+"\r\n")

	logger.Print(LevelState, "fallback\n")
	assert.Contains(t, debug.String(), "fallback\r\n")
}

func TestFileBackupOnOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	previous := strings.Repeat("old record\n", 10)
	require.NoError(t, os.WriteFile(path, []byte(previous), 0644))

	logger, _ := createFileLogger(t, path, false)

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, previous, string(backup))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
	assert.Equal(t, uint64(1), logger.Stats().TotalBackups)
}

func TestFileBackupReplacesOlderBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	require.NoError(t, os.WriteFile(path+".bak", []byte("ancient"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("recent"), 0644))

	createFileLogger(t, path, false)

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "recent", string(backup))
}

func TestFileAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	require.NoError(t, os.WriteFile(path, []byte("kept\r\n"), 0644))

	logger, _ := createFileLogger(t, path, true)
	logger.Print(LevelState, "added\n")
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "kept\r\n"))
	assert.True(t, strings.HasSuffix(string(content), "added\r\n"))

	_, err = os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err))
	assert.Zero(t, logger.Stats().TotalBackups)
}

func TestSetModeFileIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	require.NoError(t, os.WriteFile(path, []byte("before"), 0644))

	logger, _ := createFileLogger(t, path, false)
	logger.Print(LevelState, "written once\n")
	require.NoError(t, logger.Sync())

	// Re-enabling an open file sink must not rotate it again
	logger.SetMode(ToFile)
	logger.SetMode(ToFile | ToDebug)

	assert.Equal(t, uint64(1), logger.Stats().TotalBackups)

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "before", string(backup))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "written once\r\n")
}

func TestFileTimestampRestartsAfterOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	logger, _ := createFileLogger(t, path, false)

	logger.Print(LevelState, "one\n")
	logger.SetMode(0)
	logger.SetMode(ToFile)
	logger.Print(LevelState, "two\n")
	require.NoError(t, logger.Sync())

	// The reopened file starts with its own timestamp line even within the same second
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Tue Mar  5 10:00:00 2024\r\ntwo\r\n", string(content))
}

func TestSetFileReopens(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	logger, _ := createFileLogger(t, first, false)
	logger.Print(LevelState, "to first\n")

	logger.SetFile(second, false)
	assert.NotZero(t, logger.GetMode()&ToFile)
	logger.Print(LevelState, "to second\n")
	require.NoError(t, logger.Sync())

	firstContent, err := os.ReadFile(first)
	require.NoError(t, err)
	secondContent, err := os.ReadFile(second)
	require.NoError(t, err)

	assert.Contains(t, string(firstContent), "to first\r\n")
	assert.NotContains(t, string(firstContent), "to second")
	assert.Contains(t, string(secondContent), "to second\r\n")
}

func TestSetFileWhileFileSinkOff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "later.log")
	logger, _, _ := createTestLogger(t)

	logger.SetFile(path, false)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "file is not opened until the sink is enabled")

	logger.SetMode(ToFile)
	defer logger.Close()
	_, err = os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, ToFile, logger.GetMode())
}

func TestCloseKeepsOtherSinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	debug := &syncBuffer{}

	logger, err := NewBuilder().
		Mode(ToFile|ToDebug).
		File(path, false).
		Level(LevelAll).
		DebugWriter(debug).
		Build()
	require.NoError(t, err)

	require.NoError(t, logger.Close())
	assert.Equal(t, ToDebug, logger.GetMode())
	assert.Nil(t, logger.state.CurrentFile.Load())

	// Repeated close is harmless
	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Sync())

	logger.Print(LevelState, "after close\n")
	assert.Contains(t, debug.String(), "after close\r\n")
}

func TestGetModeReflectsOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	logger, _ := createFileLogger(t, path, false)

	assert.Equal(t, ToFile, logger.GetMode())
	assert.NotNil(t, logger.state.CurrentFile.Load())

	logger.SetMode(ToDebug)
	assert.Equal(t, ToDebug, logger.GetMode())
	assert.Nil(t, logger.state.CurrentFile.Load())
}
