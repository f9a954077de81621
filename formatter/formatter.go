// FILE: lixenwraith/dlog/formatter/formatter.go
// Package formatter builds the text of a single log record: the once-per-second
// timestamp line, source path stripping, bounded rendering, line ending
// normalization and the style-dependent tab handling.
package formatter

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lixenwraith/dlog/sanitizer"
)

// Style flags for controlling record appearance
const (
	TimeInline     int64 = 0x01 // Timestamp prefixes the next record instead of its own line
	NoFileNames    int64 = 0x02 // Drop everything up to and including the first tab
	NoTabSeparator int64 = 0x04 // Replace the first tab with a space
)

const (
	// LineBufferSize is the fixed maximum record size, terminator included
	LineBufferSize = 1024
	// MaxRenderedLength leaves room for the line ending rewrite
	MaxRenderedLength = LineBufferSize - 2
	// LineEnding terminates every record written by the logger
	LineEnding = "\r\n"
	// TimestampLayout renders 24 characters, e.g. "Wed Jun 30 21:49:08 1993"
	TimestampLayout = time.ANSIC

	timeInlineSeparator = " - "
	locationSuffix      = "):\t"
)

// Formatter turns a format string and its arguments into a finished line.
// It keeps no per-call state and is safe for concurrent use.
type Formatter struct {
	sanitizer *sanitizer.Sanitizer
}

// New creates a formatter with the provided sanitizer
func New(s ...*sanitizer.Sanitizer) *Formatter {
	var san *sanitizer.Sanitizer
	if len(s) > 0 && s[0] != nil {
		san = s[0]
	} else {
		san = sanitizer.New()
	}
	return &Formatter{sanitizer: san}
}

// Format runs the record pipeline for one Print call
func (f *Formatter) Format(style int64, format string, args []any) string {
	line := Render(StripSourcePath(format), args)
	if !f.sanitizer.Passthrough() {
		sanitized := f.sanitizer.Sanitize(line)
		line = Truncate(sanitized, MaxRenderedLength)
		if len(line) < len(sanitized) {
			line = trimPartialGroup(line)
		}
	}
	line = NormalizeLineEnding(line)
	return ApplyStyle(style, line)
}

// TimestampLine renders the standalone timestamp record for t
func TimestampLine(t time.Time, style int64) string {
	ts := t.Format(TimestampLayout)
	if style&TimeInline != 0 {
		return ts + timeInlineSeparator
	}
	return ts + LineEnding
}

// StripSourcePath reduces a location-tagged format "<path>(<line>):\t<msg>"
// to "<base>(<line>):\t<msg>". The tag must open the format and the path must be
// a single token; anything else is returned as is.
func StripSourcePath(format string) string {
	end := strings.Index(format, locationSuffix)
	if end < 0 {
		return format
	}
	open := strings.LastIndexByte(format[:end], '(')
	if open <= 0 || open+1 == end || !allDigits(format[open+1:end]) {
		return format
	}
	path := format[:open]
	if strings.ContainsAny(path, " \t\r\n()") {
		return format
	}
	sep := strings.LastIndexAny(path, `/\`)
	if sep < 0 {
		return format
	}
	return format[sep+1:]
}

// Render formats args into at most MaxRenderedLength bytes
func Render(format string, args []any) string {
	return Truncate(fmt.Sprintf(format, args...), MaxRenderedLength)
}

// Truncate cuts s to at most n bytes without splitting a UTF-8 sequence
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// NormalizeLineEnding rewrites a trailing bare "\n" into LineEnding
func NormalizeLineEnding(line string) string {
	n := len(line)
	if n == 0 || line[n-1] != '\n' {
		return line
	}
	if n > 1 && line[n-2] == '\r' {
		return line
	}
	return line[:n-1] + LineEnding
}

// ApplyStyle handles the first tab, which separates the location prefix from the message
func ApplyStyle(style int64, line string) string {
	if style&(NoFileNames|NoTabSeparator) == 0 {
		return line
	}
	i := strings.IndexByte(line, '\t')
	if i < 0 {
		return line
	}
	if style&NoFileNames != 0 {
		return line[i+1:]
	}
	return line[:i] + " " + line[i+1:]
}

// trimPartialGroup drops a hex group "<xx..." that truncation cut before its '>'
func trimPartialGroup(line string) string {
	i := strings.LastIndexByte(line, '<')
	if i < 0 || strings.IndexByte(line[i:], '>') >= 0 || !isHex(line[i+1:]) {
		return line
	}
	return line[:i]
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
