// Package di holds the driver state primitives: a lazily initialised
// singleton cell and a reference-counted shared token.
//
// Both are fully synchronous. Every operation completes inside a single
// critical section and is safe to call from interrupt context.
package di

// Driver is implemented by every driver in the bring-up chain.
//
// Init installs the driver state and is fatal when called twice. Ensure
// installs it only if that has not happened yet; it is used when two
// higher-level drivers share a lower-level one and either may come up first.
type Driver interface {
	Init()
	Ensure()
	IsInitialized() bool
}

// EnsureAll brings up ds in order.
func EnsureAll(ds ...Driver) {
	for _, d := range ds {
		d.Ensure()
	}
}
