// FILE: lixenwraith/dlog/watch_test.go
package dlog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replaceFile swaps in new content with a rename so the watcher never sees a partial file
func replaceFile(t *testing.T, path, content string) {
	t.Helper()
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0644))
	require.NoError(t, os.Rename(tmp, path))
}

func TestWatchConfigReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dlog.toml")
	require.NoError(t, os.WriteFile(path, []byte("[dlog]\nlevel = 1\ndebug_target = \"discard\"\n"), 0644))

	logger, debug, _ := createTestLogger(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, logger.WatchConfig(ctx, path))

	replaceFile(t, path, "[dlog]\nlevel = 9\nstyle = \"no_file_names\"\n")

	assert.Eventually(t, func() bool {
		return logger.GetLevel() == LevelIntInfo
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, StyleNoFileNames, logger.GetStyle())

	// The injected debug writer stays in place across reloads
	logger.Print(LevelState, "after reload\n")
	assert.Contains(t, debug.String(), "after reload\r\n")
}

func TestWatchConfigReportsBadReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dlog.toml")
	require.NoError(t, os.WriteFile(path, []byte("[dlog]\nlevel = 10\n"), 0644))

	logger, debug, _ := createTestLogger(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, logger.WatchConfig(ctx, path))

	replaceFile(t, path, "[dlog]\nmode = \"pager\"\n")

	assert.Eventually(t, func() bool {
		return len(recordLines(debug.String())) > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, debug.String(), "Config reload of "+path+" failed")
	assert.Equal(t, LevelAll, logger.GetLevel(), "previous settings stay in effect")
}

func TestWatchConfigMissingDirectory(t *testing.T) {
	logger := NewLogger()
	err := logger.WatchConfig(context.Background(), filepath.Join(t.TempDir(), "absent", "dlog.toml"))
	assert.Error(t, err)
}
