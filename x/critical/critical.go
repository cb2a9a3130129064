// Package critical provides the only lock used by the driver framework: a
// short span during which the running code cannot be preempted by another
// task or by an interrupt handler.
//
// Sections must be bounded and must never block. On MCU builds a section
// disables interrupts, so nested entry is harmless. On host builds a section
// holds one process-wide mutex and nested entry deadlocks; code already
// inside a section receives a Section value and passes it on instead of
// calling With again.
package critical

// Section is proof that the holder runs inside a critical section.
// It is only valid for the duration of the callback it was handed to.
type Section struct{ _ [0]func() }

// Do runs f inside a critical section and returns its result.
func Do[R any](f func(cs Section) R) (r R) {
	With(func(cs Section) { r = f(cs) })
	return r
}
