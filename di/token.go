package di

import (
	"math"

	"co2gateway-go/errcode"
	"co2gateway-go/x/critical"
)

// MaxTokens is the default limit on outstanding tokens per counter.
const MaxTokens = math.MaxInt32

// Hooks are the activation callbacks of a Counter. Raise runs on the 0→1
// transition and Lower on the 1→0 transition, both inside the critical
// section that changes the count. Either may be nil.
type Hooks struct {
	Raise func(cs critical.Section)
	Lower func(cs critical.Section)
}

// Counter is the shared use count for one resource kind. T is a zero-size
// marker naming the resource; it keeps tokens for different resources apart
// at compile time.
type Counter[T any] struct {
	name   string
	hooks  Hooks
	limit  uint32
	n      uint32
	cycles uint32
}

// NewCounter returns a counter with no outstanding tokens.
func NewCounter[T any](name string, h Hooks) *Counter[T] {
	return &Counter[T]{name: name, hooks: h, limit: MaxTokens}
}

// SetLimit lowers the saturation point. Must be called before the first
// Acquire.
func (c *Counter[T]) SetLimit(n uint32) {
	if n == 0 {
		n = 1
	}
	c.limit = n
}

// Acquire registers one more user and returns its token.
func (c *Counter[T]) Acquire() Token[T] {
	return critical.Do(func(cs critical.Section) Token[T] { return c.AcquireLocked(cs) })
}

// AcquireLocked is Acquire for callers already inside a critical section.
// The count is only committed after Raise returns, so a failing hook leaves
// the counter untouched.
func (c *Counter[T]) AcquireLocked(cs critical.Section) Token[T] {
	if c.n >= c.limit {
		errcode.Fatal("di.Counter.Acquire", errcode.CapacityExceeded, c.name)
	}
	if c.n == 0 && c.hooks.Raise != nil {
		c.hooks.Raise(cs)
	}
	c.n++
	return Token[T]{c: c}
}

func (c *Counter[T]) releaseLocked(cs critical.Section) {
	if c.n == 0 {
		errcode.Fatal("di.Token.Release", errcode.OverRelease, c.name)
	}
	if c.n == 1 {
		if c.hooks.Lower != nil {
			c.hooks.Lower(cs)
		}
		c.cycles++
	}
	c.n--
}

// Count returns the number of outstanding tokens.
func (c *Counter[T]) Count() int {
	return critical.Do(func(critical.Section) int { return int(c.n) })
}

// Active reports whether at least one token is outstanding.
func (c *Counter[T]) Active() bool { return c.Count() > 0 }

// Cycles returns how many activation windows have closed so far, i.e. how
// many times Lower has fired.
func (c *Counter[T]) Cycles() int {
	return critical.Do(func(critical.Section) int { return int(c.cycles) })
}

// Token is one outstanding claim on the resource counted by its Counter.
// Duplicate a claim with Clone, never by copying the value: each token must
// be released exactly once.
type Token[T any] struct {
	c *Counter[T]
}

// Held reports whether the token still counts towards its resource.
func (t *Token[T]) Held() bool { return t.c != nil }

// Clone registers another user of the same resource.
func (t *Token[T]) Clone() Token[T] {
	if t.c == nil {
		errcode.Fatal("di.Token.Clone", errcode.OverRelease, "released token")
	}
	return t.c.Acquire()
}

// Release gives the claim back. The last release fires the counter's Lower
// hook. Releasing the same token twice is fatal.
func (t *Token[T]) Release() {
	critical.With(func(cs critical.Section) { t.ReleaseLocked(cs) })
}

// ReleaseLocked is Release for callers already inside a critical section.
func (t *Token[T]) ReleaseLocked(cs critical.Section) {
	c := t.c
	if c == nil {
		errcode.Fatal("di.Token.Release", errcode.OverRelease, "released token")
	}
	c.releaseLocked(cs)
	t.c = nil
}
