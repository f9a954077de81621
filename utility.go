// FILE: lixenwraith/dlog/utility.go
package dlog

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

const errorPrefix = "dlog: "

// Here prefixes format with the caller's "<file>(<line>):\t" location.
// The path is reduced to its base name when the record is formatted.
func Here(format string) string {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return format
	}
	return fmt.Sprintf("%s(%d):\t", strings.ReplaceAll(file, "%", "%%"), line) + format
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, errorPrefix) {
		format = errorPrefix + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// Level converts level string to numeric constant
func Level(levelStr string) (int64, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "none":
		return LevelNone, nil
	case "state":
		return LevelState, nil
	case "clients":
		return LevelClients, nil
	case "connerr":
		return LevelConnErr, nil
	case "sockerr":
		return LevelSockErr, nil
	case "interr":
		return LevelIntErr, nil
	case "intwarn":
		return LevelIntWarn, nil
	case "intinfo":
		return LevelIntInfo, nil
	case "sockinfo":
		return LevelSockInfo, nil
	case "all":
		return LevelAll, nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use none, state, clients, connerr, sockerr, interr, intwarn, intinfo, sockinfo, all)", levelStr)
	}
}

// internalLog writes logger diagnostics that have no sink to stderr, if enabled
func (l *Logger) internalLog(format string, args ...any) {
	if !l.getConfig().InternalErrorsToStderr {
		return
	}

	if !strings.HasPrefix(format, errorPrefix) {
		format = errorPrefix + format
	}

	fmt.Fprintf(os.Stderr, format, args...)
}
