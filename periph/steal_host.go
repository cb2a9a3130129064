//go:build !nrf52840

package periph

import (
	"co2gateway-go/hw"
	"co2gateway-go/hw/sim"
)

// HostChip backs Take on host builds. Its sensor bus answers like an SHTC3
// at 25 °C and 40 %RH.
var HostChip = newHostChip()

func newHostChip() *sim.Chip {
	c := sim.NewChip(1)
	c.TWIM0.Handler = sim.SHTC3(0x6666)
	return c
}

func steal() hw.Peripherals { return HostChip.Peripherals() }
