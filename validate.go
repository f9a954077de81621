// FILE: lixenwraith/dlog/validate.go
package dlog

import (
	"github.com/lixenwraith/dlog/lockorder"
)

const historyBits = 32

// Validate checks the process-wide lock history before m is acquired.
// When a lower-level lock is held while m is not, one warning is printed at
// LevelIntWarn with the rendered history as the single argument of format.
// The snapshot that was inspected is returned unchanged.
// A nil m is untracked and never warns.
func (l *Logger) Validate(m lockorder.Ordered, format string) uint32 {
	if m == nil {
		return lockorder.History()
	}
	return l.validate(lockorder.History(), m.Bit(), format)
}

func (l *Logger) validate(history, bit uint32, format string) uint32 {
	// A mutex without a bit does not take part in ordering
	if bit == 0 {
		return history
	}
	if (history & bit) < (history & (bit - 1)) {
		l.Print(LevelIntWarn, format, RenderHistory(history, bit))
	}
	return history
}

// RenderHistory writes the 32 history bits from most to least significant:
// '*' at the candidate's bit, '1' for a held bit and '0' otherwise.
func RenderHistory(history, bit uint32) string {
	var q [historyBits]byte
	i := 0
	for b := uint32(1) << (historyBits - 1); b != 0; b >>= 1 {
		switch {
		case bit&b != 0:
			q[i] = '*'
		case history&b != 0:
			q[i] = '1'
		default:
			q[i] = '0'
		}
		i++
	}
	return string(q[:])
}
