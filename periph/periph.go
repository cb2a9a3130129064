// Package periph is the single source of the chip's register blocks. The
// whole set is claimed once and split into slots, one block per slot, and
// each slot is moved into exactly one driver.
package periph

import (
	"co2gateway-go/errcode"
	"co2gateway-go/hw"
	"co2gateway-go/x/critical"
)

// Claim guards a steal function so that it runs at most once.
type Claim struct {
	steal func() hw.Peripherals
	taken bool
}

// NewClaim wraps steal. steal must be the only code path that materialises
// the register blocks.
func NewClaim(steal func() hw.Peripherals) *Claim {
	return &Claim{steal: steal}
}

// Take returns the register blocks. Any call after the first is fatal.
func (c *Claim) Take() hw.Peripherals {
	critical.With(func(critical.Section) {
		if c.taken {
			errcode.Fatal("periph.Take", errcode.AlreadyClaimed, "peripherals")
		}
		c.taken = true
	})
	return c.steal()
}

// Taken reports whether Take has succeeded.
func (c *Claim) Taken() bool {
	return critical.Do(func(critical.Section) bool { return c.taken })
}

// chip is the process-wide claim over the platform's blocks; steal is
// provided by a build-tagged file.
var chip = NewClaim(steal)

// Take claims the chip's register blocks for this process. It succeeds once.
func Take() hw.Peripherals { return chip.Take() }

// Slot holds one register block until a driver moves it out.
type Slot[T any] struct {
	name string
	v    T
	full bool
}

func newSlot[T any](name string, v T) Slot[T] {
	return Slot[T]{name: name, v: v, full: true}
}

// Name is the block's datasheet name.
func (s *Slot[T]) Name() string { return s.name }

// Take moves the block out. Taking from an empty slot is fatal.
func (s *Slot[T]) Take() T {
	return critical.Do(func(cs critical.Section) T { return s.TakeLocked(cs) })
}

// TakeLocked is Take for callers already inside a critical section.
func (s *Slot[T]) TakeLocked(critical.Section) T {
	if !s.full {
		errcode.Fatal("periph.Slot.Take", errcode.ResourceTaken, s.name)
	}
	v := s.v
	var zero T
	s.v, s.full = zero, false
	return v
}

// Present reports whether the block is still in the slot.
func (s *Slot[T]) Present() bool {
	return critical.Do(func(critical.Section) bool { return s.full })
}

// Registry is the claimed set split by owning driver.
type Registry struct {
	Power  Slot[hw.Power]
	Clock  Slot[hw.Clock]
	RNG    Slot[hw.RNG]
	GPIO   Slot[hw.Port]
	Mono   Slot[hw.RTC]
	USB    Slot[hw.USBD]
	Sensor Slot[hw.TWIM]
}

// Transfer partitions p into per-driver slots.
func Transfer(p hw.Peripherals) *Registry {
	return &Registry{
		Power:  newSlot("POWER", p.POWER),
		Clock:  newSlot("CLOCK", p.CLOCK),
		RNG:    newSlot("RNG", p.RNG),
		GPIO:   newSlot("P0", p.P0),
		Mono:   newSlot("RTC0", p.RTC0),
		USB:    newSlot("USBD", p.USBD),
		Sensor: newSlot("TWIM0", p.TWIM0),
	}
}

// Remaining lists the blocks no driver has taken yet.
func (r *Registry) Remaining() []string {
	var out []string
	add := func(present bool, name string) {
		if present {
			out = append(out, name)
		}
	}
	add(r.Power.Present(), r.Power.Name())
	add(r.Clock.Present(), r.Clock.Name())
	add(r.RNG.Present(), r.RNG.Name())
	add(r.GPIO.Present(), r.GPIO.Name())
	add(r.Mono.Present(), r.Mono.Name())
	add(r.USB.Present(), r.USB.Name())
	add(r.Sensor.Present(), r.Sensor.Name())
	return out
}
