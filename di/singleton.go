package di

import (
	"sync/atomic"

	"co2gateway-go/errcode"
	"co2gateway-go/x/critical"
)

// Cell is a slot for one driver's private state. The zero value is an empty
// cell ready for use. A payload is installed at most once and lives for the
// rest of the program; there is no teardown.
type Cell[T any] struct {
	name  string
	ready atomic.Bool
	val   T
}

// NewCell returns an empty cell. The name only shows up in fatal errors.
func NewCell[T any](name string) *Cell[T] {
	return &Cell[T]{name: name}
}

func (c *Cell[T]) Name() string {
	if c.name == "" {
		return "cell"
	}
	return c.name
}

// IsInitialized reports whether a payload has been installed. It does not
// enter a critical section.
func (c *Cell[T]) IsInitialized() bool { return c.ready.Load() }

// With gives f exclusive access to the payload inside a critical section.
// Calling With on the same cell from inside f is not supported.
func (c *Cell[T]) With(f func(v *T)) {
	critical.With(func(cs critical.Section) { c.WithLocked(cs, f) })
}

// WithLocked is With for callers already inside a critical section.
func (c *Cell[T]) WithLocked(_ critical.Section, f func(v *T)) {
	if !c.ready.Load() {
		errcode.Fatal("di.Cell.With", errcode.NotInitialized, c.Name())
	}
	f(&c.val)
}

// installLocked stores v. The ready flag is published last so that a reader
// seeing it set also sees the whole payload.
func (c *Cell[T]) installLocked(_ critical.Section, v T) {
	c.val = v
	c.ready.Store(true)
}

// Call runs f on the payload inside a critical section and returns its
// result.
func Call[T, R any](c *Cell[T], f func(v *T) R) (r R) {
	c.With(func(v *T) { r = f(v) })
	return r
}

// InitOnce installs ctor(cs, deps) into an empty cell. A second call is a
// bring-up ordering bug and is fatal; ctor is not run in that case.
//
// ctor runs inside the critical section. It receives the open Section so it
// can take register blocks or tokens through their Locked variants; it must
// not enter another section.
func InitOnce[T, D any](c *Cell[T], deps D, ctor func(cs critical.Section, d D) T) {
	critical.With(func(cs critical.Section) {
		if c.ready.Load() {
			errcode.Fatal("di.InitOnce", errcode.AlreadyInitialized, c.Name())
		}
		c.installLocked(cs, ctor(cs, deps))
	})
}

// Ensure initialises the cell unless it already holds a payload, checking
// and installing in one section. ctor only runs when the cell is empty, so
// dependencies it takes are never taken twice. It reports whether this call
// performed the installation.
func Ensure[T, D any](c *Cell[T], deps D, ctor func(cs critical.Section, d D) T) bool {
	return critical.Do(func(cs critical.Section) bool {
		return EnsureLocked(cs, c, deps, ctor)
	})
}

// EnsureLocked is Ensure for callers already inside a critical section.
func EnsureLocked[T, D any](cs critical.Section, c *Cell[T], deps D, ctor func(cs critical.Section, d D) T) bool {
	if c.ready.Load() {
		return false
	}
	c.installLocked(cs, ctor(cs, deps))
	return true
}
