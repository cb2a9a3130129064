// Package sim is a host-side model of the chip's register blocks. Every
// block records what the drivers did to it so tests and the simulator CLI
// can observe the hardware state.
package sim

import (
	"math/rand"
	"sync"
	"time"

	"co2gateway-go/hw"
)

// Chip bundles one instance of every block.
type Chip struct {
	Power *Power
	Clock *Clock
	RNG   *RNG
	P0    *Port
	RTC0  *RTC
	USBD  *USBD
	TWIM0 *I2C
}

// NewChip returns an idle chip. seed drives the RNG block.
func NewChip(seed int64) *Chip {
	return &Chip{
		Power: &Power{},
		Clock: &Clock{},
		RNG:   &RNG{r: rand.New(rand.NewSource(seed))},
		P0:    &Port{},
		RTC0:  &RTC{},
		USBD:  &USBD{},
		TWIM0: &I2C{},
	}
}

// Peripherals exposes the chip as the set the registry partitions.
func (c *Chip) Peripherals() hw.Peripherals {
	return hw.Peripherals{
		POWER: c.Power,
		CLOCK: c.Clock,
		RNG:   c.RNG,
		P0:    c.P0,
		RTC0:  c.RTC0,
		USBD:  c.USBD,
		TWIM0: c.TWIM0,
	}
}

// ----------------------------- POWER -----------------------------------------

type Power struct {
	mu   sync.Mutex
	dcdc bool
}

func (p *Power) EnableDCDC() { p.mu.Lock(); p.dcdc = true; p.mu.Unlock() }

func (p *Power) DCDC() bool { p.mu.Lock(); defer p.mu.Unlock(); return p.dcdc }

// ----------------------------- CLOCK -----------------------------------------

// ClockEvent names one task trigger on the CLOCK block.
type ClockEvent string

const (
	EvLFStart ClockEvent = "lf_start"
	EvLFStop  ClockEvent = "lf_stop"
	EvHFStart ClockEvent = "hf_start"
	EvHFStop  ClockEvent = "hf_stop"
)

// Clock models LFCLK and HFXO as instantly stable.
type Clock struct {
	mu     sync.Mutex
	src    hw.LFSource
	lf, hf bool
	events []ClockEvent
}

func (c *Clock) SetLFSource(src hw.LFSource) { c.mu.Lock(); c.src = src; c.mu.Unlock() }

func (c *Clock) StartLF()   { c.record(EvLFStart, &c.lf, true) }
func (c *Clock) StopLF()    { c.record(EvLFStop, &c.lf, false) }
func (c *Clock) StartHFXO() { c.record(EvHFStart, &c.hf, true) }
func (c *Clock) StopHFXO()  { c.record(EvHFStop, &c.hf, false) }

func (c *Clock) record(ev ClockEvent, bit *bool, v bool) {
	c.mu.Lock()
	*bit = v
	c.events = append(c.events, ev)
	c.mu.Unlock()
}

func (c *Clock) LFRunning() bool   { c.mu.Lock(); defer c.mu.Unlock(); return c.lf }
func (c *Clock) HFXORunning() bool { c.mu.Lock(); defer c.mu.Unlock(); return c.hf }

func (c *Clock) LFSource() hw.LFSource { c.mu.Lock(); defer c.mu.Unlock(); return c.src }

// Events returns a copy of the task triggers seen so far.
func (c *Clock) Events() []ClockEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ClockEvent(nil), c.events...)
}

// ----------------------------- RNG -------------------------------------------

type RNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (g *RNG) Fill(p []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range p {
		p[i] = byte(g.r.Intn(256))
	}
}

// ----------------------------- GPIO ------------------------------------------

type Port struct {
	mu    sync.Mutex
	out   uint32
	level uint32
}

func (p *Port) ConfigureOutput(pin uint8, initial bool) {
	p.mu.Lock()
	p.out |= 1 << pin
	p.set(pin, initial)
	p.mu.Unlock()
}

func (p *Port) Set(pin uint8, high bool) { p.mu.Lock(); p.set(pin, high); p.mu.Unlock() }

// caller holds lock
func (p *Port) set(pin uint8, high bool) {
	if high {
		p.level |= 1 << pin
	} else {
		p.level &^= 1 << pin
	}
}

func (p *Port) Get(pin uint8) bool { p.mu.Lock(); defer p.mu.Unlock(); return p.level&(1<<pin) != 0 }

// IsOutput reports whether pin was configured as an output.
func (p *Port) IsOutput(pin uint8) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out&(1<<pin) != 0
}

// ----------------------------- RTC -------------------------------------------

// RTC counts at 32768 Hz from Start. Tests may replace Now.
type RTC struct {
	mu      sync.Mutex
	started time.Time
	running bool
	Now     func() time.Time
}

func (r *RTC) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *RTC) Start() {
	r.mu.Lock()
	if !r.running {
		r.started = r.now()
		r.running = true
	}
	r.mu.Unlock()
}

func (r *RTC) Counter() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return 0
	}
	d := uint64(r.now().Sub(r.started))
	sec := uint64(time.Second)
	ticks := d/sec*32768 + d%sec*32768/sec
	return uint32(ticks) & hw.RTCMask
}

func (r *RTC) Running() bool { r.mu.Lock(); defer r.mu.Unlock(); return r.running }

// ----------------------------- USBD ------------------------------------------

type USBD struct {
	mu sync.Mutex
	on bool
}

func (u *USBD) Enable()       { u.mu.Lock(); u.on = true; u.mu.Unlock() }
func (u *USBD) Enabled() bool { u.mu.Lock(); defer u.mu.Unlock(); return u.on }

// ----------------------------- TWIM ------------------------------------------

// I2C implements hw.TWIM for host-side tests. Handler, when set, answers
// each transaction; otherwise reads return zeros. ConfigErr, when set, is
// returned by Configure.
type I2C struct {
	mu        sync.Mutex
	Handler   func(addr uint16, w, r []byte) error
	ConfigErr error
	Config    hw.TWIConfig
	LastTx    struct {
		Addr uint16
		W    []byte
		Rn   int
	}
	Count int
}

func (h *I2C) Configure(cfg hw.TWIConfig) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ConfigErr != nil {
		return h.ConfigErr
	}
	h.Config = cfg
	return nil
}

func (h *I2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastTx.Addr = addr
	h.LastTx.W = append([]byte(nil), w...)
	h.LastTx.Rn = len(r)
	h.Count++
	if h.Handler != nil {
		return h.Handler(addr, w, r)
	}
	for i := range r {
		r[i] = 0
	}
	return nil
}

// SHTC3 answers SHTC3 measurement reads with raw for every word. The same
// raw value is returned for temperature and humidity, so the reading does
// not depend on which word the driver expects first.
func SHTC3(raw uint16) func(addr uint16, w, r []byte) error {
	word := [3]byte{byte(raw >> 8), byte(raw), 0}
	word[2] = crc8(word[:2])
	return func(_ uint16, _, r []byte) error {
		for i := range r {
			r[i] = word[i%3]
		}
		return nil
	}
}

// crc8 is the Sensirion checksum: polynomial 0x31, init 0xFF.
func crc8(b []byte) byte {
	c := byte(0xFF)
	for _, x := range b {
		c ^= x
		for i := 0; i < 8; i++ {
			if c&0x80 != 0 {
				c = c<<1 ^ 0x31
			} else {
				c <<= 1
			}
		}
	}
	return c
}
