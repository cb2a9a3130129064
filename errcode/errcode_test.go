package errcode

import (
	"errors"
	"testing"
)

func TestCodesAreStableStrings(t *testing.T) {
	cases := map[string]Code{
		"already_initialized": AlreadyInitialized,
		"not_initialized":     NotInitialized,
		"already_claimed":     AlreadyClaimed,
		"resource_taken":      ResourceTaken,
		"over_release":        OverRelease,
		"capacity_exceeded":   CapacityExceeded,
		"timeout":             Timeout,
		"busy":                Busy,
	}
	for want, c := range cases {
		if c.Error() != want {
			t.Fatalf("code %q mismatch: got %q", want, c.Error())
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		c    Code
		want Kind
	}{
		{AlreadyInitialized, KindProgramming},
		{NotInitialized, KindProgramming},
		{AlreadyClaimed, KindProgramming},
		{ResourceTaken, KindProgramming},
		{OverRelease, KindProgramming},
		{CapacityExceeded, KindCapacity},
		{Timeout, KindTimeout},
		{Busy, KindOther},
	}
	for _, tt := range tests {
		if got := KindOf(tt.c); got != tt.want {
			t.Errorf("KindOf(%s) = %s, want %s", tt.c, got, tt.want)
		}
	}
}

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Fatal("nil should map to ok")
	}
	if Of(Timeout) != Timeout {
		t.Fatal("bare code should map to itself")
	}
	wrapped := &E{C: OverRelease, Op: "token.Release", Err: errors.New("cause")}
	if Of(wrapped) != OverRelease {
		t.Fatalf("got %s", Of(wrapped))
	}
	if Of(errors.New("x")) != Error {
		t.Fatal("foreign error should map to error")
	}
}

func TestErrorString(t *testing.T) {
	e := &E{C: ResourceTaken, Op: "periph.Take", Msg: "RTC0"}
	if got, want := e.Error(), "periph.Take: resource_taken: RTC0"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFatalPanicsWithE(t *testing.T) {
	defer func() {
		e, ok := Recovered(recover())
		if !ok {
			t.Fatal("expected *E panic")
		}
		if e.C != AlreadyInitialized || e.Op != "cell" {
			t.Fatalf("unexpected %#v", e)
		}
	}()
	Fatal("cell", AlreadyInitialized, "clock")
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		r    any
		want string
	}{
		{&E{C: ResourceTaken, Op: "periph.Slot.Take", Msg: "RTC0"}, "programming: periph.Slot.Take: resource_taken: RTC0"},
		{&E{C: CapacityExceeded, Op: "di.Counter.Acquire", Msg: "lfclk"}, "capacity: di.Counter.Acquire: capacity_exceeded: lfclk"},
		{errors.New("boom"), "panic: boom"},
		{"index out of range", "panic: index out of range"},
		{42, "panic"},
	}
	for _, tt := range tests {
		if got := Describe(tt.r); got != tt.want {
			t.Errorf("Describe(%v) = %q, want %q", tt.r, got, tt.want)
		}
	}
}
