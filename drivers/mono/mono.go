// Package mono is the monotonic time base. It runs RTC0 from LFCLK, keeping
// an LF token for the life of the program, and extends the 24-bit counter to
// 64 bits.
//
// The extension relies on Now being called at least once per counter period
// (512 s at 32768 Hz); the delay loops below do so.
package mono

import (
	"context"
	"time"

	"co2gateway-go/di"
	"co2gateway-go/drivers/clock"
	"co2gateway-go/errcode"
	"co2gateway-go/hw"
	"co2gateway-go/periph"
	"co2gateway-go/x/critical"
	"co2gateway-go/x/mathx"
)

// TickHz is the RTC0 rate (prescaler 0).
const TickHz = uint64(clock.LFFreq)

// Instant is a point on the monotonic time line, in ticks since start.
type Instant uint64

// Add returns i shifted by d, rounded down to a whole tick.
func (i Instant) Add(d time.Duration) Instant {
	if d <= 0 {
		return i
	}
	return i + Instant(Ticks(d))
}

// Sub returns i-j as a duration. It is zero when j is after i.
func (i Instant) Sub(j Instant) time.Duration {
	if i <= j {
		return 0
	}
	return Duration(uint64(i - j))
}

// Ticks converts d to RTC ticks.
func Ticks(d time.Duration) uint64 {
	n := uint64(d)
	sec := uint64(time.Second)
	return n/sec*TickHz + n%sec*TickHz/sec
}

// Duration converts ticks to a duration, rounded up so that waiting for it
// never undershoots.
func Duration(ticks uint64) time.Duration {
	sec := uint64(time.Second)
	whole := ticks / TickHz * sec
	frac := (ticks%TickHz*sec + TickHz - 1) / TickHz
	return time.Duration(whole + frac)
}

type deps struct {
	reg *periph.Registry
	clk *clock.Arbiter
}

type state struct {
	rtc   hw.RTC
	lf    clock.LFToken
	last  uint32
	ticks uint64
}

type Driver struct {
	deps deps
	cell *di.Cell[state]
}

var _ di.Driver = (*Driver)(nil)

func New(reg *periph.Registry, clk *clock.Arbiter) *Driver {
	return &Driver{deps: deps{reg: reg, clk: clk}, cell: di.NewCell[state]("mono")}
}

func construct(cs critical.Section, d deps) state {
	d.clk.EnsureLocked(cs)
	lf := d.clk.RequestLFLocked(cs)
	rtc := d.reg.Mono.TakeLocked(cs)
	rtc.Start()
	return state{rtc: rtc, lf: lf, last: rtc.Counter()}
}

func (d *Driver) Init()               { di.InitOnce(d.cell, d.deps, construct) }
func (d *Driver) Ensure()             { di.Ensure(d.cell, d.deps, construct) }
func (d *Driver) IsInitialized() bool { return d.cell.IsInitialized() }

// Now returns the current instant.
func (d *Driver) Now() Instant {
	return di.Call(d.cell, func(s *state) Instant {
		c := s.rtc.Counter() & hw.RTCMask
		s.ticks += uint64(mathx.WrapDelta(s.last, c, hw.RTCMask))
		s.last = c
		return Instant(s.ticks)
	})
}

// Delay suspends the caller for at least dur.
func (d *Driver) Delay(ctx context.Context, dur time.Duration) error {
	return d.DelayUntil(ctx, d.Now().Add(dur))
}

// DelayUntil suspends the caller until the monotonic time reaches at.
func (d *Driver) DelayUntil(ctx context.Context, at Instant) error {
	for {
		now := d.Now()
		if now >= at {
			return nil
		}
		wait := at.Sub(now)
		if wait > maxWait {
			wait = maxWait
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

// maxWait keeps long delays sampling the counter well inside one period.
const maxWait = 60 * time.Second

// TimeoutAfter runs fn and gives up after dur with errcode.Timeout. The
// context passed to fn is cancelled when the deadline passes.
func (d *Driver) TimeoutAfter(ctx context.Context, dur time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- fn(ctx) }()

	deadline := make(chan error, 1)
	go func() { deadline <- d.Delay(ctx, dur) }()

	select {
	case err := <-done:
		return err
	case err := <-deadline:
		if err != nil {
			return err
		}
		return errcode.Timeout
	}
}
