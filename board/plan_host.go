//go:build !nrf52840

package board

import "co2gateway-go/hw"

// Selected mirrors the DK wiring against the simulated chip.
var Selected = Plan{
	Name:      "host-sim",
	LEDPin:    13,
	SensorSDA: 26,
	SensorSCL: 27,
	LFSource:  hw.LFSourceXtal,
}.WithDefaults()
