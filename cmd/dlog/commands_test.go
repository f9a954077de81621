// FILE: lixenwraith/dlog/cmd/dlog/commands_test.go
package main

import (
	"testing"

	"github.com/lixenwraith/dlog"
	"github.com/lixenwraith/dlog/lockorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := parseLevel("8")
	require.NoError(t, err)
	assert.Equal(t, dlog.LevelIntWarn, level)

	level, err = parseLevel("sockinfo")
	require.NoError(t, err)
	assert.Equal(t, dlog.LevelSockInfo, level)

	_, err = parseLevel("loud")
	assert.Error(t, err)
}

func TestParseLockLevels(t *testing.T) {
	levels, err := parseLockLevels("0, 2,,5")
	require.NoError(t, err)
	assert.Equal(t, []lockorder.Level{0, 2, 5}, levels)

	levels, err = parseLockLevels("")
	require.NoError(t, err)
	assert.Empty(t, levels)

	_, err = parseLockLevels("1,32")
	assert.ErrorContains(t, err, "exceeds maximum")

	_, err = parseLockLevels("x")
	assert.ErrorContains(t, err, "invalid lock level")
}

func TestConfigPairs(t *testing.T) {
	pairs := configPairs(dlog.DefaultConfig())

	assert.Len(t, pairs, 9)
	assert.Equal(t, [2]string{"mode", "debug"}, pairs[0])
	assert.Equal(t, [2]string{"style", "none"}, pairs[2])
	assert.Equal(t, [2]string{"file", "(none)"}, pairs[3])
}
