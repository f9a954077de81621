// FILE: lixenwraith/dlog/logger_test.go
package dlog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for concurrent writers
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Len()
}

// testClock is a settable clock
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// createTestLogger creates a debug-only logger writing into a buffer with a fixed clock
func createTestLogger(t testing.TB) (*Logger, *syncBuffer, *testClock) {
	t.Helper()
	debug := &syncBuffer{}
	clock := newTestClock()

	logger, err := NewBuilder().
		Mode(ToDebug).
		Level(LevelAll).
		DebugWriter(debug).
		ConsoleWriter(&syncBuffer{}).
		Clock(clock).
		Build()
	require.NoError(t, err)

	return logger, debug, clock
}

// recordLines splits sink output into records, dropping the timestamp lines
func recordLines(output string) []string {
	var lines []string
	for _, line := range strings.SplitAfter(output, "\r\n") {
		if line == "" || isTimestampLine(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func isTimestampLine(line string) bool {
	ts := strings.TrimSuffix(line, "\r\n")
	_, err := time.Parse(time.ANSIC, ts)
	return err == nil
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger()

	assert.NotNil(t, logger)
	assert.Equal(t, ToDebug, logger.GetMode())
	assert.Equal(t, int64(1), logger.GetLevel())
	assert.Equal(t, int64(0), logger.GetStyle())
	assert.Nil(t, logger.state.CurrentFile.Load())
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger := New(ToFile, LevelIntWarn, path, false)
	defer logger.Close()

	assert.Equal(t, ToFile, logger.GetMode())
	assert.Equal(t, LevelIntWarn, logger.GetLevel())

	logger.Print(LevelState, "started\n")
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "started\r\n")
}

// TestPrintLevelFilter checks that records are written only at or below the threshold
func TestPrintLevelFilter(t *testing.T) {
	logger, debug, _ := createTestLogger(t)
	logger.SetLevel(LevelSockErr)

	for level := int64(-2); level <= LevelAll+2; level++ {
		before := debug.Len()
		logger.Print(level, "level %d\n", level)
		if level <= LevelSockErr {
			assert.Greater(t, debug.Len(), before, "level %d should be written", level)
		} else {
			assert.Equal(t, before, debug.Len(), "level %d should be dropped", level)
		}
	}
	assert.Equal(t, uint64(LevelSockErr+3), logger.Stats().TotalRecords)
}

func TestPrintFilteredWritesNothingAnywhere(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filtered.log")
	console := &syncBuffer{}
	debug := &syncBuffer{}

	logger, err := NewBuilder().
		Mode(ToDebug|ToFile|ToConsole).
		File(path, false).
		Level(LevelClients).
		DebugWriter(debug).
		ConsoleWriter(console).
		Build()
	require.NoError(t, err)
	defer logger.Close()

	logger.Print(LevelIntInfo, "too detailed\n")
	require.NoError(t, logger.Sync())

	assert.Zero(t, debug.Len())
	assert.Zero(t, console.Len())
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestTimestampOncePerSecond(t *testing.T) {
	logger, debug, clock := createTestLogger(t)

	logger.Print(LevelState, "first\n")
	clock.Advance(300 * time.Millisecond)
	logger.Print(LevelState, "second\n")

	assert.Equal(t, "Tue Mar  5 10:00:00 2024\r\nfirst\r\nsecond\r\n", debug.String())

	clock.Advance(time.Second)
	logger.Print(LevelState, "third\n")
	assert.Equal(t, 2, strings.Count(debug.String(), "2024\r\n"))
	assert.True(t, strings.HasSuffix(debug.String(), "Tue Mar  5 10:00:01 2024\r\nthird\r\n"))
}

func TestTimestampInlineStyle(t *testing.T) {
	logger, debug, _ := createTestLogger(t)
	logger.SetStyle(StyleTimeInline)

	logger.Print(LevelState, "hello\n")
	logger.Print(LevelState, "again\n")

	assert.Equal(t, "Tue Mar  5 10:00:00 2024 - hello\r\nagain\r\n", debug.String())
}

func TestPrintLineEnding(t *testing.T) {
	logger, debug, _ := createTestLogger(t)
	logger.SetStyle(StyleTimeInline)
	logger.Print(LevelState, "x")
	debug.mu.Lock()
	debug.buf.Reset()
	debug.mu.Unlock()

	logger.Print(LevelState, "with newline\n")
	assert.Equal(t, "with newline\r\n", debug.String())

	logger.Print(LevelState, "|no newline")
	assert.Equal(t, "with newline\r\n|no newline", debug.String())
}

func TestPrintStyles(t *testing.T) {
	tests := []struct {
		name  string
		style int64
		want  string
	}{
		{"default keeps location", 0, "logger_test.go(42):\tclient gone\r\n"},
		{"no file names", StyleNoFileNames, "client gone\r\n"},
		{"no tab separator", StyleNoTabSeparator, "logger_test.go(42): client gone\r\n"},
		{"no file names wins", StyleNoFileNames | StyleNoTabSeparator, "client gone\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, debug, _ := createTestLogger(t)
			logger.SetStyle(tt.style)

			logger.Print(LevelState, "/home/dev/dlog/logger_test.go(42):\tclient %s\n", "gone")

			lines := recordLines(debug.String())
			require.Len(t, lines, 1)
			assert.Equal(t, tt.want, lines[0])
		})
	}
}

func TestHere(t *testing.T) {
	logger, debug, _ := createTestLogger(t)

	logger.Print(LevelState, Here("value=%d\n"), 7)

	lines := recordLines(debug.String())
	require.Len(t, lines, 1)
	assert.Regexp(t, `^logger_test\.go\(\d+\):\tvalue=7\r\n$`, lines[0])
}

func TestPrintKeepsPathLikeMessages(t *testing.T) {
	logger, debug, _ := createTestLogger(t)

	logger.Print(LevelState, "GET /api/v1/users (200):\tok\n")
	logger.Print(LevelState, "loaded %s (%d):\tdone\n", "/etc/app/conf.toml", 3)

	assert.Equal(t, []string{
		"GET /api/v1/users (200):\tok\r\n",
		"loaded /etc/app/conf.toml (3):\tdone\r\n",
	}, recordLines(debug.String()))
}

func TestPrintTruncatesLongRecords(t *testing.T) {
	logger, debug, _ := createTestLogger(t)
	logger.SetStyle(StyleTimeInline)
	logger.Print(LevelState, "x")
	debug.mu.Lock()
	debug.buf.Reset()
	debug.mu.Unlock()

	logger.Print(LevelState, "%s\n", strings.Repeat("a", 5000))
	assert.Equal(t, 1022, debug.Len())
}

func TestSinksAreIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multi.log")
	console := &syncBuffer{}
	debug := &syncBuffer{}

	logger, err := NewBuilder().
		Mode(ToDebug|ToFile|ToConsole).
		File(path, false).
		Level(LevelAll).
		DebugWriter(debug).
		ConsoleWriter(console).
		Build()
	require.NoError(t, err)
	defer logger.Close()

	logger.Print(LevelState, "everywhere\n")
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, debug.String(), "everywhere\r\n")
	assert.Contains(t, console.String(), "everywhere\r\n")
	assert.Contains(t, string(content), "everywhere\r\n")

	logger.SetMode(ToConsole)
	logger.Print(LevelState, "console only\n")
	assert.Contains(t, console.String(), "console only\r\n")
	assert.NotContains(t, debug.String(), "console only")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }

func TestFailingSinkDoesNotBlockOthers(t *testing.T) {
	console := &syncBuffer{}
	logger, err := NewBuilder().
		Mode(ToDebug|ToConsole).
		Level(LevelAll).
		DebugWriter(failingWriter{}).
		ConsoleWriter(console).
		Build()
	require.NoError(t, err)

	logger.Print(LevelState, "still here\n")
	assert.Contains(t, console.String(), "still here\r\n")
	assert.NotZero(t, logger.Stats().WriteErrors)
}

func TestConsoleAllocatedOnce(t *testing.T) {
	logger, _, _ := createTestLogger(t)
	assert.False(t, logger.state.ConsoleAllocated.Load())

	logger.SetMode(ToConsole)
	require.True(t, logger.state.ConsoleAllocated.Load())
	first := logger.state.ConsoleWriter.Load()

	logger.SetMode(ToDebug)
	assert.Equal(t, ToDebug, logger.GetMode())
	// The console is not released when disabled
	assert.True(t, logger.state.ConsoleAllocated.Load())

	logger.SetMode(ToConsole | ToDebug)
	assert.Same(t, first, logger.state.ConsoleWriter.Load())
}

func TestAccessors(t *testing.T) {
	logger, _, _ := createTestLogger(t)

	logger.SetLevel(LevelSockInfo)
	assert.Equal(t, LevelSockInfo, logger.GetLevel())

	logger.SetStyle(StyleNoFileNames | StyleTimeInline)
	assert.Equal(t, StyleNoFileNames|StyleTimeInline, logger.GetStyle())

	logger.SetMode(ToDebug | ToConsole)
	assert.Equal(t, ToDebug|ToConsole, logger.GetMode())
}

func TestDump(t *testing.T) {
	logger, debug, _ := createTestLogger(t)

	type clientInfo struct {
		ID   int
		Addr string
	}
	logger.Dump(LevelIntInfo, "client", clientInfo{ID: 3, Addr: "10.0.0.2"})

	out := debug.String()
	assert.Contains(t, out, "client: (dlog.clientInfo)")
	assert.Contains(t, out, "ID: (int) 3,\r\n")
	assert.True(t, strings.HasSuffix(out, "}\r\n"))
	assert.NotContains(t, strings.ReplaceAll(out, "\r\n", ""), "\n")

	before := debug.Len()
	logger.SetLevel(LevelClients)
	logger.Dump(LevelIntInfo, "hidden", 1)
	assert.Equal(t, before, debug.Len())
}

func TestSanitizedOutput(t *testing.T) {
	debug := &syncBuffer{}
	logger, err := NewBuilder().
		Level(LevelAll).
		Sanitize("ascii").
		DebugWriter(debug).
		Build()
	require.NoError(t, err)

	logger.Print(LevelState, "user=%s\n", "zoë")
	lines := recordLines(debug.String())
	require.Len(t, lines, 1)
	assert.Equal(t, "user=zo<c3ab>\r\n", lines[0])
}

func TestSanitizedTruncationDropsPartialGroup(t *testing.T) {
	debug := &syncBuffer{}
	logger, err := NewBuilder().
		Level(LevelAll).
		Style(StyleTimeInline).
		Sanitize("ascii").
		DebugWriter(debug).
		Build()
	require.NoError(t, err)

	logger.Print(LevelState, "%s", strings.Repeat("a", 1019)+"é")
	out := debug.String()
	assert.True(t, strings.HasSuffix(out, " - "+strings.Repeat("a", 1019)), "record ends on a whole character")
}

func TestConcurrentPrint(t *testing.T) {
	logger, debug, clock := createTestLogger(t)

	const goroutines = 8
	const perGoroutine = 50

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				logger.Print(LevelState, "worker %d record %d\n", id, i)
			}
		}(g)
	}
	wg.Wait()

	assert.Len(t, recordLines(debug.String()), goroutines*perGoroutine)
	// All records fell in one clock second, so exactly one timestamp line was written
	assert.Equal(t, 1, strings.Count(debug.String(), clock.Now().Format(time.ANSIC)))
}
