// Package sensor reads the environmental sensor on the sensor bus.
package sensor

import (
	"context"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/shtc3"

	"co2gateway-go/x/mathx"
)

// Reading is one sample. Temperature is in deci-degrees Celsius, relative
// humidity in hundredths of a percent.
type Reading struct {
	DeciC  int16
	RHx100 uint16
}

// Source produces readings.
type Source interface {
	Read(ctx context.Context) (Reading, error)
}

// SHTC3 is a Source backed by a Sensirion SHTC3 at its fixed address.
type SHTC3 struct {
	drv shtc3.Device
}

var _ Source = (*SHTC3)(nil)

func NewSHTC3(bus drivers.I2C) *SHTC3 {
	return &SHTC3{drv: shtc3.New(bus)}
}

// Read wakes the sensor, measures and puts it back to sleep.
func (s *SHTC3) Read(ctx context.Context) (Reading, error) {
	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}
	_ = s.drv.WakeUp()
	defer func() { _ = s.drv.Sleep() }()

	tmc, rhx100, err := s.drv.ReadTemperatureHumidity()
	if err != nil {
		return Reading{}, err
	}
	return convert(int32(tmc), int32(rhx100)), nil
}

// convert scales milli-degrees to deci-degrees and clamps both channels to
// their representable ranges.
func convert(milliC, rhx100 int32) Reading {
	return Reading{
		DeciC:  int16(mathx.Clamp(milliC/100, -32768, 32767)),
		RHx100: uint16(mathx.Clamp(rhx100, 0, 10000)),
	}
}
