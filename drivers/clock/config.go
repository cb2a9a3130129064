package clock

import "co2gateway-go/hw"

// Hertz is a frequency.
type Hertz uint32

// Ppm is a frequency tolerance in parts per million.
type Ppm uint16

// Nominal frequencies.
const (
	LFFreq Hertz = 32_768
	HFFreq Hertz = 64_000_000
)

// Config controls the oscillator setup. All fields are optional.
type Config struct {
	// LFSource selects the LFCLK source. Zero value is the internal RC.
	LFSource hw.LFSource
	// LFAccuracy defaults to 50 ppm (crystal on the DK).
	LFAccuracy Ppm
	// HFAccuracy defaults to 30 ppm.
	HFAccuracy Ppm
	// Observe, when set, is called for every committed state change. It runs
	// inside the critical section and must return quickly.
	Observe func(from, to State)
}

func (c Config) withDefaults() Config {
	if c.LFAccuracy == 0 {
		c.LFAccuracy = 50
	}
	if c.HFAccuracy == 0 {
		c.HFAccuracy = 30
	}
	return c
}
