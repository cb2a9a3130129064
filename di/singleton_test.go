package di

import (
	"sync"
	"testing"

	"co2gateway-go/errcode"
	"co2gateway-go/x/critical"
)

type counterState struct{ n int }

func expectFatal(t *testing.T, want errcode.Code, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected fatal %s, got none", want)
		}
		e, ok := errcode.Recovered(r)
		if !ok {
			t.Fatalf("expected *errcode.E, got %#v", r)
		}
		if e.C != want {
			t.Fatalf("expected %s, got %s", want, e.C)
		}
	}()
	f()
}

func TestZeroCellIsEmpty(t *testing.T) {
	var c Cell[counterState]
	if c.IsInitialized() {
		t.Fatal("zero cell must be empty")
	}
	expectFatal(t, errcode.NotInitialized, func() {
		c.With(func(*counterState) {})
	})
}

func TestInitOnceInstallsPayload(t *testing.T) {
	c := NewCell[counterState]("counter")
	InitOnce(c, 7, func(_ critical.Section, n int) counterState { return counterState{n: n} })
	if !c.IsInitialized() {
		t.Fatal("cell should be initialised")
	}
	got := Call(c, func(s *counterState) int { return s.n })
	if got != 7 {
		t.Fatalf("payload n=%d, want 7", got)
	}
}

func TestInitOnceTwiceIsFatalAndSkipsCtor(t *testing.T) {
	c := NewCell[counterState]("counter")
	InitOnce(c, 1, func(_ critical.Section, n int) counterState { return counterState{n: n} })

	ran := false
	expectFatal(t, errcode.AlreadyInitialized, func() {
		InitOnce(c, 2, func(_ critical.Section, n int) counterState { ran = true; return counterState{n: n} })
	})
	if ran {
		t.Fatal("constructor must not run on the second InitOnce")
	}
	if got := Call(c, func(s *counterState) int { return s.n }); got != 1 {
		t.Fatalf("payload overwritten: n=%d", got)
	}
}

func TestWithMutatesInPlace(t *testing.T) {
	c := NewCell[counterState]("counter")
	InitOnce(c, struct{}{}, func(critical.Section, struct{}) counterState { return counterState{} })
	for i := 0; i < 3; i++ {
		c.With(func(s *counterState) { s.n++ })
	}
	if got := Call(c, func(s *counterState) int { return s.n }); got != 3 {
		t.Fatalf("n=%d, want 3", got)
	}
}

func TestEnsureIsIdempotentAndRunsCtorOnce(t *testing.T) {
	c := NewCell[counterState]("counter")
	runs := 0
	ctor := func(_ critical.Section, n int) counterState { runs++; return counterState{n: n} }

	if !Ensure(c, 5, ctor) {
		t.Fatal("first Ensure should install")
	}
	if Ensure(c, 6, ctor) {
		t.Fatal("second Ensure should be a no-op")
	}
	if runs != 1 {
		t.Fatalf("ctor ran %d times, want 1", runs)
	}
	if got := Call(c, func(s *counterState) int { return s.n }); got != 5 {
		t.Fatalf("n=%d, want 5", got)
	}
}

func TestEnsureAfterInitOnceIsNoop(t *testing.T) {
	c := NewCell[counterState]("counter")
	InitOnce(c, 3, func(_ critical.Section, n int) counterState { return counterState{n: n} })
	Ensure(c, 4, func(critical.Section, int) counterState {
		t.Fatal("ctor must not run")
		return counterState{}
	})
}

// A constructor can move a dependency out of another cell-guarded slot
// through the Section it is handed.
func TestCtorUsesLockedAccess(t *testing.T) {
	src := NewCell[counterState]("src")
	InitOnce(src, 9, func(_ critical.Section, n int) counterState { return counterState{n: n} })

	dst := NewCell[counterState]("dst")
	Ensure(dst, src, func(cs critical.Section, s *Cell[counterState]) counterState {
		var n int
		s.WithLocked(cs, func(v *counterState) { n = v.n; v.n = 0 })
		return counterState{n: n}
	})
	if got := Call(dst, func(s *counterState) int { return s.n }); got != 9 {
		t.Fatalf("dst n=%d", got)
	}
	if got := Call(src, func(s *counterState) int { return s.n }); got != 0 {
		t.Fatalf("src n=%d", got)
	}
}

// Many goroutines race to initialise; exactly one wins and the rest observe
// the fatal double-init on their InitOnce.
func TestConcurrentInitOnceExactlyOneWinner(t *testing.T) {
	c := NewCell[counterState]("race")
	const workers = 16
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		fatals int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() {
				if e, ok := errcode.Recovered(recover()); ok && e.C == errcode.AlreadyInitialized {
					mu.Lock()
					fatals++
					mu.Unlock()
				}
			}()
			InitOnce(c, i, func(_ critical.Section, n int) counterState { return counterState{n: n} })
		}(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Readers never see a half-built payload.
			if c.IsInitialized() {
				c.With(func(s *counterState) { _ = s.n })
			}
		}()
	}
	wg.Wait()
	if fatals != workers-1 {
		t.Fatalf("fatals=%d, want %d", fatals, workers-1)
	}
}

type fakeDriver struct {
	cell  Cell[struct{}]
	order *[]string
	name  string
}

func (d *fakeDriver) build(_ critical.Section, n string) struct{} {
	*d.order = append(*d.order, n)
	return struct{}{}
}
func (d *fakeDriver) Init()               { InitOnce(&d.cell, d.name, d.build) }
func (d *fakeDriver) Ensure()             { Ensure(&d.cell, d.name, d.build) }
func (d *fakeDriver) IsInitialized() bool { return d.cell.IsInitialized() }

func TestEnsureAllKeepsOrder(t *testing.T) {
	var order []string
	a := &fakeDriver{order: &order, name: "a"}
	b := &fakeDriver{order: &order, name: "b"}
	b.Init()
	EnsureAll(a, b, a)
	if len(order) != 2 || order[0] != "b" || order[1] != "a" {
		t.Fatalf("order=%v", order)
	}
}
