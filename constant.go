// FILE: lixenwraith/dlog/constant.go
package dlog

import (
	"github.com/lixenwraith/dlog/formatter"
)

// Logging mode flags, combined to select active sinks
const (
	ToDebug   int64 = 0b001
	ToFile    int64 = 0b010
	ToConsole int64 = 0b100
	modeMask        = ToDebug | ToFile | ToConsole
)

// Log levels. A record is written when its level is at or below the logger's level,
// so the level reads as "amount of detail".
const (
	LevelNone     int64 = 0  // No logging at all
	LevelState    int64 = 0  // Startup and shutdown
	LevelClients  int64 = 1  // Connect and disconnect
	LevelConnErr  int64 = 0  // Connection errors
	LevelSockErr  int64 = 4  // Socket errors
	LevelIntErr   int64 = 0  // Internal errors
	LevelIntWarn  int64 = 8  // Internal warnings, lock-order reports
	LevelIntInfo  int64 = 9  // Internal info
	LevelSockInfo int64 = 10 // Socket info
	LevelAll      int64 = 10 // Everything, including table setup
)

// Style flags for controlling record appearance
const (
	StyleTimeInline     = formatter.TimeInline
	StyleNoFileNames    = formatter.NoFileNames
	StyleNoTabSeparator = formatter.NoTabSeparator
	styleMask           = StyleTimeInline | StyleNoFileNames | StyleNoTabSeparator
)

// Defaults used by NewLogger
const (
	DefaultMode  = ToDebug
	DefaultLevel = LevelClients
)

// Storage
const (
	backupSuffix = ".bak"
	filePerm     = 0644
)
