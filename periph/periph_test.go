package periph

import (
	"testing"

	"co2gateway-go/errcode"
	"co2gateway-go/hw"
	"co2gateway-go/hw/sim"
)

func expectFatal(t *testing.T, want errcode.Code, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		e, ok := errcode.Recovered(recover())
		if !ok {
			t.Fatalf("expected fatal %s", want)
		}
		if e.C != want {
			t.Fatalf("expected %s, got %s", want, e.C)
		}
	}()
	f()
}

func TestClaimSucceedsOnce(t *testing.T) {
	chip := sim.NewChip(1)
	steals := 0
	c := NewClaim(func() hw.Peripherals { steals++; return chip.Peripherals() })

	p := c.Take()
	if p.CLOCK == nil || p.RTC0 == nil {
		t.Fatal("blocks missing from claimed set")
	}
	if !c.Taken() {
		t.Fatal("claim not recorded")
	}
	expectFatal(t, errcode.AlreadyClaimed, func() { c.Take() })
	if steals != 1 {
		t.Fatalf("steal ran %d times", steals)
	}
}

func TestTransferMovesEachBlockOnce(t *testing.T) {
	chip := sim.NewChip(1)
	r := Transfer(chip.Peripherals())

	if got := len(r.Remaining()); got != 7 {
		t.Fatalf("remaining=%d, want 7", got)
	}

	rtc := r.Mono.Take()
	if rtc != hw.RTC(chip.RTC0) {
		t.Fatal("RTC0 slot returned the wrong block")
	}
	if r.Mono.Present() {
		t.Fatal("RTC0 still present after move")
	}
	expectFatal(t, errcode.ResourceTaken, func() { r.Mono.Take() })

	for _, name := range r.Remaining() {
		if name == "RTC0" {
			t.Fatal("RTC0 listed as remaining")
		}
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	r := Transfer(sim.NewChip(1).Peripherals())
	_ = r.Clock.Take()
	if !r.USB.Present() || !r.Power.Present() {
		t.Fatal("taking CLOCK affected other slots")
	}
	if r.Clock.Name() != "CLOCK" {
		t.Fatalf("name=%q", r.Clock.Name())
	}
}
