package clock

import "co2gateway-go/errcode"

// State is the combined oscillator state: (HFXO enabled, LFCLK started).
// The encoding is one bit per axis so a transition touches exactly one bit.
type State uint8

const (
	OffOff State = iota // HFXO off, LFCLK stopped
	OffOn               // HFXO off, LFCLK started
	OnOff               // HFXO on,  LFCLK stopped
	OnOn                // HFXO on,  LFCLK started
)

const (
	lfBit State = 1 << 0
	hfBit State = 1 << 1
)

func (s State) String() string {
	switch s {
	case OffOff:
		return "OffOff"
	case OffOn:
		return "OffOn"
	case OnOff:
		return "OnOff"
	case OnOn:
		return "OnOn"
	}
	return "invalid"
}

// Valid reports whether s is one of the four states.
func (s State) Valid() bool { return s <= OnOn }

// LF reports whether the low-frequency clock is started.
func (s State) LF() bool { return s&lfBit != 0 }

// HF reports whether the high-frequency crystal oscillator is enabled.
func (s State) HF() bool { return s&hfBit != 0 }

// RequestLF starts the LF axis: OffOff→OffOn, OnOff→OnOn. It is a no-op
// when the axis is already on.
func RequestLF(s State) State { return s | lfBit }

// ReleaseLF stops the LF axis: OffOn→OffOff, OnOn→OnOff.
func ReleaseLF(s State) (State, error) { return release(s, lfBit) }

// RequestHF enables HFXO: OffOff→OnOff, OffOn→OnOn. No-op when already on.
func RequestHF(s State) State { return s | hfBit }

// ReleaseHF disables HFXO: OnOff→OffOff, OnOn→OffOn.
func ReleaseHF(s State) (State, error) { return release(s, hfBit) }

func release(s State, bit State) (State, error) {
	if s&bit == 0 {
		return s, errcode.OverRelease
	}
	return s &^ bit, nil
}
