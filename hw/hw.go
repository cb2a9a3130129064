// Package hw describes the register blocks of the chip as small interfaces.
// Drivers only see these interfaces; the concrete blocks come from a chip
// adapter (hw/nrf52840) or from the host simulation (hw/sim).
package hw

import "tinygo.org/x/drivers"

// Power is the POWER block.
type Power interface {
	EnableDCDC()
}

// LFSource selects the low-frequency clock source.
type LFSource uint8

const (
	LFSourceRC    LFSource = iota // internal RC
	LFSourceXtal                  // external 32.768 kHz crystal
	LFSourceSynth                 // synthesised from HFCLK
)

func (s LFSource) String() string {
	switch s {
	case LFSourceXtal:
		return "xtal"
	case LFSourceSynth:
		return "synth"
	default:
		return "rc"
	}
}

// Clock is the CLOCK block. Start and stop trigger the hardware tasks and
// return immediately; the Running methods read the status registers.
type Clock interface {
	SetLFSource(src LFSource)
	StartLF()
	StopLF()
	StartHFXO()
	StopHFXO()
	LFRunning() bool
	HFXORunning() bool
}

// RNG is the RNG block.
type RNG interface {
	Fill(p []byte)
}

// Port is a GPIO port (P0).
type Port interface {
	ConfigureOutput(pin uint8, initial bool)
	Set(pin uint8, high bool)
	Get(pin uint8) bool
}

// RTC is a real-time counter block. Counter is 24 bits wide.
type RTC interface {
	Start()
	Counter() uint32
}

// RTCMask covers the significant bits of RTC.Counter.
const RTCMask = 1<<24 - 1

// USBD is the USB device block.
type USBD interface {
	Enable()
	Enabled() bool
}

// I2C is a bus in the shape the TinyGo sensor drivers use.
type I2C = drivers.I2C

// TWIConfig wires a TWI master.
type TWIConfig struct {
	SDA, SCL uint8
	Hz       uint32
}

// TWIM is the TWI master block. It must be configured before the first Tx.
type TWIM interface {
	I2C
	Configure(cfg TWIConfig) error
}

// Peripherals is the complete set of register blocks the firmware drives.
type Peripherals struct {
	POWER Power
	CLOCK Clock
	RNG   RNG
	P0    Port
	RTC0  RTC
	USBD  USBD
	TWIM0 TWIM
}
