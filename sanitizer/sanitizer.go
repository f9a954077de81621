// FILE: lixenwraith/dlog/sanitizer/sanitizer.go
// Package sanitizer rewrites rendered log text so that it stays plain ASCII,
// using bitwise filter flags matched against each rune and a transform applied to matches.
package sanitizer

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
)

// Filter flags for character matching
const (
	FilterUnsafeControl uint64 = 1 << iota // Control runes other than tab, CR and LF
	FilterNonASCII                         // Runes above 0x7f
)

// Transform flags for character transformation
const (
	TransformStrip     uint64 = 1 << iota // Removes the character
	TransformHexEncode                    // Encodes the character's UTF-8 bytes as "<XXYY>"
)

// PolicyPreset names a pre-configured rule set
type PolicyPreset string

const (
	PolicyRaw   PolicyPreset = "raw"   // Passthrough
	PolicyASCII PolicyPreset = "ascii" // Hex-encode anything that is not line-safe ASCII
	PolicyStrip PolicyPreset = "strip" // Drop anything that is not line-safe ASCII
)

type rule struct {
	filter    uint64
	transform uint64
}

var policyRules = map[PolicyPreset][]rule{
	PolicyRaw:   {},
	PolicyASCII: {{filter: FilterUnsafeControl | FilterNonASCII, transform: TransformHexEncode}},
	PolicyStrip: {{filter: FilterUnsafeControl | FilterNonASCII, transform: TransformStrip}},
}

var filterCheckers = map[uint64]func(rune) bool{
	FilterUnsafeControl: func(r rune) bool {
		switch r {
		case '\t', '\r', '\n':
			return false
		}
		return unicode.IsControl(r)
	},
	FilterNonASCII: func(r rune) bool { return r > unicode.MaxASCII },
}

// ValidPolicy reports whether name is a known policy preset
func ValidPolicy(name string) bool {
	_, ok := policyRules[PolicyPreset(name)]
	return ok
}

// Sanitizer holds an ordered list of rules. It keeps no buffer between calls and is
// safe for concurrent use once built.
type Sanitizer struct {
	rules []rule
}

// New creates a passthrough Sanitizer
func New() *Sanitizer {
	return &Sanitizer{}
}

// Rule appends a custom rule, earliest rule applies first
func (s *Sanitizer) Rule(filter uint64, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy appends the rules of a preset
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Passthrough reports whether the sanitizer leaves every input unchanged
func (s *Sanitizer) Passthrough() bool {
	return s == nil || len(s.rules) == 0
}

// Sanitize applies all configured rules to the input string
func (s *Sanitizer) Sanitize(data string) string {
	if s.Passthrough() || isLineSafeASCII(data) {
		return data
	}

	buf := make([]byte, 0, len(data)+16)
	for _, r := range data {
		matched := false
		// First match wins
		for _, rl := range s.rules {
			if matchesFilter(r, rl.filter) {
				applyTransform(&buf, r, rl.transform)
				matched = true
				break
			}
		}
		if !matched {
			buf = utf8.AppendRune(buf, r)
		}
	}
	return string(buf)
}

// isLineSafeASCII is the fast path: nothing any rule could match
func isLineSafeASCII(data string) bool {
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c > unicode.MaxASCII || (c < 0x20 && c != '\t' && c != '\r' && c != '\n') || c == 0x7f {
			return false
		}
	}
	return true
}

func matchesFilter(r rune, filterMask uint64) bool {
	for flag, checker := range filterCheckers {
		if (filterMask&flag) != 0 && checker(r) {
			return true
		}
	}
	return false
}

func applyTransform(buf *[]byte, r rune, transformMask uint64) {
	switch {
	case (transformMask & TransformStrip) != 0:
		// strip

	case (transformMask & TransformHexEncode) != 0:
		var runeBytes [utf8.UTFMax]byte
		n := utf8.EncodeRune(runeBytes[:], r)
		*buf = append(*buf, '<')
		*buf = append(*buf, hex.EncodeToString(runeBytes[:n])...)
		*buf = append(*buf, '>')
	}
}

var dumper = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump renders v with type and size information, one field per line.
// The result carries no trailing newline.
func Dump(v any) string {
	var b bytes.Buffer
	dumper.Fdump(&b, v)
	return strings.TrimRight(b.String(), "\n")
}

// DumpLabeled prefixes the dump with "label: " when label is set
func DumpLabeled(label string, v any) string {
	if label == "" {
		return Dump(v)
	}
	return fmt.Sprintf("%s: %s", label, Dump(v))
}
