//go:build !baremetal

package critical

import "sync"

var mu sync.Mutex

// With runs f while holding the process-wide section lock. The lock is
// released even if f panics.
func With(f func(cs Section)) {
	mu.Lock()
	defer mu.Unlock()
	f(Section{})
}
