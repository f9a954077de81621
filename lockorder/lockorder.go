// FILE: lixenwraith/dlog/lockorder/lockorder.go
// Package lockorder provides mutexes that record themselves in a process-wide
// acquisition history, one bit per mutex.
//
// Every participating mutex owns a distinct bit 1<<level, where levels are
// numbered from the innermost lock (0) to the outermost. A lock is expected to
// be taken only while no lock of a lower level is held. The history is read
// without synchronization against Lock/Unlock, so any check built on it is an
// early warning, not a proof.
package lockorder

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// MaxLevel is the highest level that fits the 32-bit history
const MaxLevel Level = 31

// DefaultWarning is the format used when a caller has nothing better.
// The single verb receives the rendered history.
const DefaultWarning = "Potential deadlock -> %s\n"

var history atomic.Uint32

// Level is a position in the declared lock ordering, innermost first
type Level uint

// Bit returns the history bit owned by the level
func (l Level) Bit() uint32 {
	return 1 << l
}

// History returns a snapshot of the bits of all currently held mutexes
func History() uint32 {
	return history.Load()
}

// Acquire ORs bit into the history
func Acquire(bit uint32) {
	history.Or(bit)
}

// Release clears bit from the history
func Release(bit uint32) {
	history.And(^bit)
}

// Ordered is anything that owns a history bit
type Ordered interface {
	Bit() uint32
}

// Validator inspects the history before an Ordered lock is taken and
// returns the snapshot it looked at
type Validator interface {
	Validate(m Ordered, format string) uint32
}

// Mutex is a sync.Mutex that records itself in the history while held.
// The zero value owns no bit and is not tracked.
type Mutex struct {
	mu  sync.Mutex
	bit uint32
}

// New creates a mutex at the given ordering level
func New(level Level) (*Mutex, error) {
	if level > MaxLevel {
		return nil, fmt.Errorf("lockorder: level %d exceeds maximum %d", level, MaxLevel)
	}
	return &Mutex{bit: level.Bit()}, nil
}

// MustNew is New for package-level declarations
func MustNew(level Level) *Mutex {
	m, err := New(level)
	if err != nil {
		panic(err)
	}
	return m
}

// Bit returns the mutex's history bit, zero for a nil mutex
func (m *Mutex) Bit() uint32 {
	if m == nil {
		return 0
	}
	return m.bit
}

// Lock acquires the mutex and marks it held
func (m *Mutex) Lock() {
	m.mu.Lock()
	Acquire(m.bit)
}

// TryLock attempts to acquire the mutex without blocking
func (m *Mutex) TryLock() bool {
	if !m.mu.TryLock() {
		return false
	}
	Acquire(m.bit)
	return true
}

// Unlock marks the mutex released and unlocks it
func (m *Mutex) Unlock() {
	Release(m.bit)
	m.mu.Unlock()
}

// LockChecked asks v to validate the acquisition, then locks.
// It returns the history v inspected.
func (m *Mutex) LockChecked(v Validator, format string) uint32 {
	var h uint32
	if v != nil {
		h = v.Validate(m, format)
	}
	m.Lock()
	return h
}
