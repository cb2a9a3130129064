//go:build nrf52840

package board

import "co2gateway-go/hw"

// Selected is the nRF52840-DK wiring: LED1 on P0.13, sensor on P0.26/P0.27.
var Selected = Plan{
	Name:      "nrf52840dk",
	LEDPin:    13,
	SensorSDA: 26,
	SensorSCL: 27,
	LFSource:  hw.LFSourceXtal,
}.WithDefaults()
