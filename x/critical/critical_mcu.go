//go:build baremetal

package critical

import "runtime/interrupt"

// With runs f with interrupts disabled. The previous mask is restored even
// if f panics.
func With(f func(cs Section)) {
	state := interrupt.Disable()
	defer interrupt.Restore(state)
	f(Section{})
}
