//go:build nrf52840

// Package nrf52840 adapts the nRF52840 register blocks to the hw interfaces.
// Only the handful of registers the drivers need are touched here.
package nrf52840

import (
	"device/nrf"
	"machine"

	"co2gateway-go/hw"
)

// Peripherals returns every block. Callers must go through periph.Take,
// which guarantees this is done once.
func Peripherals() hw.Peripherals {
	return hw.Peripherals{
		POWER: power{},
		CLOCK: clock{},
		RNG:   rng{},
		P0:    port{},
		RTC0:  rtc0{},
		USBD:  usbd{},
		TWIM0: twim0{bus: machine.I2C0},
	}
}

type power struct{}

func (power) EnableDCDC() { nrf.POWER.DCDCEN.Set(1) }

// CLOCK status bits (LFCLKSTAT / HFCLKSTAT).
const (
	clkStatState = 1 << 16
	hfStatSrcXO  = 1 << 0
)

type clock struct{}

// SRC field encoding matches hw.LFSource (RC=0, Xtal=1, Synth=2).
func (clock) SetLFSource(src hw.LFSource) { nrf.CLOCK.LFCLKSRC.Set(uint32(src)) }

func (clock) StartLF() {
	nrf.CLOCK.EVENTS_LFCLKSTARTED.Set(0)
	nrf.CLOCK.TASKS_LFCLKSTART.Set(1)
}

func (clock) StopLF() { nrf.CLOCK.TASKS_LFCLKSTOP.Set(1) }

func (clock) StartHFXO() {
	nrf.CLOCK.EVENTS_HFCLKSTARTED.Set(0)
	nrf.CLOCK.TASKS_HFCLKSTART.Set(1)
}

// StopHFXO hands HFCLK back to the internal RC oscillator.
func (clock) StopHFXO() { nrf.CLOCK.TASKS_HFCLKSTOP.Set(1) }

func (clock) LFRunning() bool { return nrf.CLOCK.LFCLKSTAT.Get()&clkStatState != 0 }

func (clock) HFXORunning() bool {
	st := nrf.CLOCK.HFCLKSTAT.Get()
	return st&clkStatState != 0 && st&hfStatSrcXO != 0
}

type rng struct{}

func (rng) Fill(p []byte) {
	nrf.RNG.TASKS_START.Set(1)
	for i := range p {
		for nrf.RNG.EVENTS_VALRDY.Get() == 0 {
		}
		nrf.RNG.EVENTS_VALRDY.Set(0)
		p[i] = byte(nrf.RNG.VALUE.Get())
	}
	nrf.RNG.TASKS_STOP.Set(1)
}

type port struct{}

func (port) ConfigureOutput(pin uint8, initial bool) {
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Set(initial)
}

func (port) Set(pin uint8, high bool) { machine.Pin(pin).Set(high) }
func (port) Get(pin uint8) bool       { return machine.Pin(pin).Get() }

type rtc0 struct{}

func (rtc0) Start() {
	nrf.RTC0.PRESCALER.Set(0)
	nrf.RTC0.TASKS_START.Set(1)
}

func (rtc0) Counter() uint32 { return nrf.RTC0.COUNTER.Get() & hw.RTCMask }

type usbd struct{}

func (usbd) Enable()       { nrf.USBD.ENABLE.Set(1) }
func (usbd) Enabled() bool { return nrf.USBD.ENABLE.Get() != 0 }

type twim0 struct {
	bus *machine.I2C
}

func (t twim0) Configure(c hw.TWIConfig) error {
	return t.bus.Configure(machine.I2CConfig{
		SDA:       machine.Pin(c.SDA),
		SCL:       machine.Pin(c.SCL),
		Frequency: c.Hz,
	})
}

func (t twim0) Tx(addr uint16, w, r []byte) error { return t.bus.Tx(addr, w, r) }
