// Package clock arbitrates the two oscillators among the drivers that need
// them. A client requests an oscillator and holds the returned token for as
// long as it needs the clock; the oscillator is started by the first request
// and stopped when the last token is released.
//
// Start and stop only trigger the hardware tasks. Oscillator ramp-up is not
// modelled; callers that need a stable clock poll Oscillator.Running.
package clock

import (
	"co2gateway-go/di"
	"co2gateway-go/errcode"
	"co2gateway-go/hw"
	"co2gateway-go/periph"
	"co2gateway-go/x/critical"
)

// LFClock and HFClock mark tokens for the two oscillators.
type (
	LFClock struct{}
	HFClock struct{}
)

type (
	LFToken = di.Token[LFClock]
	HFToken = di.Token[HFClock]
)

type arbiterState struct {
	regs  hw.Clock
	state State
}

// Arbiter owns the CLOCK block and the oscillator use counts.
type Arbiter struct {
	reg  *periph.Registry
	cfg  Config
	cell *di.Cell[arbiterState]
	lf   *di.Counter[LFClock]
	hf   *di.Counter[HFClock]
}

var _ di.Driver = (*Arbiter)(nil)

// New returns an arbiter that will take CLOCK from reg when initialised.
func New(reg *periph.Registry, cfg Config) *Arbiter {
	a := &Arbiter{reg: reg, cfg: cfg.withDefaults(), cell: di.NewCell[arbiterState]("clock")}
	a.lf = di.NewCounter[LFClock]("lfclk", di.Hooks{
		Raise: func(cs critical.Section) { a.stepLocked(cs, "request_lf", requestLF) },
		Lower: func(cs critical.Section) { a.stepLocked(cs, "release_lf", ReleaseLF) },
	})
	a.hf = di.NewCounter[HFClock]("hfxo", di.Hooks{
		Raise: func(cs critical.Section) { a.stepLocked(cs, "request_hf", requestHF) },
		Lower: func(cs critical.Section) { a.stepLocked(cs, "release_hf", ReleaseHF) },
	})
	return a
}

func requestLF(s State) (State, error) { return RequestLF(s), nil }
func requestHF(s State) (State, error) { return RequestHF(s), nil }

func (a *Arbiter) build(_ critical.Section, regs hw.Clock) arbiterState {
	regs.SetLFSource(a.cfg.LFSource)
	return arbiterState{regs: regs, state: OffOff}
}

func (a *Arbiter) construct(cs critical.Section, reg *periph.Registry) arbiterState {
	return a.build(cs, reg.Clock.TakeLocked(cs))
}

// Init takes the CLOCK block and enters OffOff. Fatal when called twice.
func (a *Arbiter) Init() { di.InitOnce(a.cell, a.reg, a.construct) }

// Ensure initialises the arbiter if nobody has yet.
func (a *Arbiter) Ensure() { di.Ensure(a.cell, a.reg, a.construct) }

// EnsureLocked is Ensure for callers already inside a critical section.
func (a *Arbiter) EnsureLocked(cs critical.Section) {
	di.EnsureLocked(cs, a.cell, a.reg, a.construct)
}

func (a *Arbiter) IsInitialized() bool { return a.cell.IsInitialized() }

// State returns the current oscillator state.
func (a *Arbiter) State() State {
	return di.Call(a.cell, func(s *arbiterState) State { return s.state })
}

// stepLocked applies one transition and drives the hardware for the axis
// that moved.
func (a *Arbiter) stepLocked(cs critical.Section, op string, next func(State) (State, error)) {
	a.cell.WithLocked(cs, func(s *arbiterState) {
		from := s.state
		to, err := next(from)
		if err != nil {
			errcode.Fatal("clock."+op, errcode.Of(err), from.String())
		}
		if to == from {
			return
		}
		switch {
		case to.LF() && !from.LF():
			s.regs.StartLF()
		case !to.LF() && from.LF():
			s.regs.StopLF()
		case to.HF() && !from.HF():
			s.regs.StartHFXO()
		case !to.HF() && from.HF():
			s.regs.StopHFXO()
		}
		s.state = to
		if a.cfg.Observe != nil {
			a.cfg.Observe(from, to)
		}
	})
}

// requireLocked makes a request before Init fail before any count moves.
func (a *Arbiter) requireLocked(cs critical.Section) {
	a.cell.WithLocked(cs, func(*arbiterState) {})
}

// RequestLF returns a token keeping LFCLK started.
func (a *Arbiter) RequestLF() LFToken {
	return critical.Do(a.RequestLFLocked)
}

// RequestLFLocked is RequestLF for callers already inside a critical section.
func (a *Arbiter) RequestLFLocked(cs critical.Section) LFToken {
	a.requireLocked(cs)
	return a.lf.AcquireLocked(cs)
}

// RequestHF returns a token keeping HFXO enabled.
func (a *Arbiter) RequestHF() HFToken {
	return critical.Do(a.RequestHFLocked)
}

// RequestHFLocked is RequestHF for callers already inside a critical section.
func (a *Arbiter) RequestHFLocked(cs critical.Section) HFToken {
	a.requireLocked(cs)
	return a.hf.AcquireLocked(cs)
}

// Outstanding returns the number of live LF and HF tokens.
func (a *Arbiter) Outstanding() (lf, hf int) { return a.lf.Count(), a.hf.Count() }

// LF describes the low-frequency oscillator.
func (a *Arbiter) LF() Oscillator[LFClock] {
	return Oscillator[LFClock]{
		name:    "lfclk",
		freq:    LFFreq,
		drift:   a.cfg.LFAccuracy,
		arb:     a,
		running: func(r hw.Clock) bool { return r.LFRunning() },
		request: a.RequestLF,
	}
}

// HF describes the high-accuracy high-frequency oscillator.
func (a *Arbiter) HF() Oscillator[HFClock] {
	return Oscillator[HFClock]{
		name:    "hfxo",
		freq:    HFFreq,
		drift:   a.cfg.HFAccuracy,
		arb:     a,
		running: func(r hw.Clock) bool { return r.HFXORunning() },
		request: a.RequestHF,
	}
}

// Oscillator is a handle on one clock source.
type Oscillator[T any] struct {
	name    string
	freq    Hertz
	drift   Ppm
	arb     *Arbiter
	running func(hw.Clock) bool
	request func() di.Token[T]
}

func (o Oscillator[T]) Name() string { return o.name }
func (o Oscillator[T]) Freq() Hertz  { return o.freq }
func (o Oscillator[T]) Drift() Ppm   { return o.drift }

// Request returns a token keeping the oscillator on.
func (o Oscillator[T]) Request() di.Token[T] { return o.request() }

// Running reads the hardware status. It may lag behind the arbiter state
// while the oscillator ramps up.
func (o Oscillator[T]) Running() bool {
	return di.Call(o.arb.cell, func(s *arbiterState) bool { return o.running(s.regs) })
}
