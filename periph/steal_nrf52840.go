//go:build nrf52840

package periph

import (
	"co2gateway-go/hw"
	"co2gateway-go/hw/nrf52840"
)

func steal() hw.Peripherals { return nrf52840.Peripherals() }
