// FILE: lixenwraith/dlog/override.go
package dlog

import (
	"fmt"
	"strconv"
	"strings"
)

var modeNames = []struct {
	name string
	flag int64
}{
	{"debug", ToDebug},
	{"file", ToFile},
	{"console", ToConsole},
}

var styleNames = []struct {
	name string
	flag int64
}{
	{"time_inline", StyleTimeInline},
	{"no_file_names", StyleNoFileNames},
	{"no_tab_separator", StyleNoTabSeparator},
}

// ApplyConfigString applies string key-value overrides to the logger's current configuration.
// Each override should be in the format "key=value".
//
// Example:
//
//	logger := dlog.NewLogger()
//	err := logger.ApplyConfigString(
//	    "mode=debug,file",
//	    "file=/var/log/app.log",
//	    "level=intwarn",
//	)
func (l *Logger) ApplyConfigString(overrides ...string) error {
	cfg := l.GetConfig()

	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return combineConfigErrors(errors)
	}

	return l.ApplyConfig(cfg)
}

// combineConfigErrors combines multiple configuration errors into a single error
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString(errorPrefix + "multiple configuration errors:")
	for i, err := range errors {
		errMsg := strings.TrimPrefix(err.Error(), errorPrefix)
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	case "mode":
		if _, err := ParseMode(value); err != nil {
			return err
		}
		cfg.Mode = value
	case "level":
		// Accept both numeric and named values
		if numVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			cfg.Level = numVal
		} else {
			levelVal, err := Level(value)
			if err != nil {
				return fmtErrorf("invalid level value '%s': %w", value, err)
			}
			cfg.Level = levelVal
		}
	case "style":
		if _, err := ParseStyle(value); err != nil {
			return err
		}
		cfg.Style = value
	case "file":
		cfg.File = value
	case "append":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for append '%s': %w", value, err)
		}
		cfg.Append = boolVal
	case "console_target":
		cfg.ConsoleTarget = value
	case "debug_target":
		cfg.DebugTarget = value
	case "sanitize":
		cfg.Sanitize = value
	case "internal_errors_to_stderr":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for internal_errors_to_stderr '%s': %w", value, err)
		}
		cfg.InternalErrorsToStderr = boolVal
	default:
		return fmtErrorf("unknown config key in override: %s", key)
	}

	return nil
}

// ParseMode converts a comma list of sink names, or a number, to mode flags.
// An empty string or "none" selects no sink.
func ParseMode(s string) (int64, error) {
	return parseFlags(s, "mode", modeMask, func(name string) (int64, bool) {
		for _, m := range modeNames {
			if m.name == name {
				return m.flag, true
			}
		}
		return 0, false
	})
}

// ParseStyle converts a comma list of style names, or a number, to style flags
func ParseStyle(s string) (int64, error) {
	return parseFlags(s, "style", styleMask, func(name string) (int64, bool) {
		for _, st := range styleNames {
			if st.name == name {
				return st.flag, true
			}
		}
		return 0, false
	})
}

// ModeString renders mode flags in the form ParseMode accepts
func ModeString(mode int64) string {
	var names []string
	for _, m := range modeNames {
		if mode&m.flag != 0 {
			names = append(names, m.name)
		}
	}
	return strings.Join(names, ",")
}

// StyleString renders style flags in the form ParseStyle accepts
func StyleString(style int64) string {
	var names []string
	for _, st := range styleNames {
		if style&st.flag != 0 {
			names = append(names, st.name)
		}
	}
	return strings.Join(names, ",")
}

func parseFlags(s, what string, mask int64, lookup func(string) (int64, bool)) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return 0, nil
	}

	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		if n&^mask != 0 {
			return 0, fmtErrorf("invalid %s value: %d has unknown bits", what, n)
		}
		return n, nil
	}

	var flags int64
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		flag, ok := lookup(name)
		if !ok {
			return 0, fmtErrorf("invalid %s name: '%s'", what, name)
		}
		flags |= flag
	}
	return flags, nil
}
