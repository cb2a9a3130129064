// Package bringup constructs every driver in dependency order. It is the
// only place that knows the full driver set; tasks receive the handles it
// returns.
package bringup

import (
	"co2gateway-go/board"
	"co2gateway-go/di"
	"co2gateway-go/drivers/clock"
	"co2gateway-go/drivers/gpio"
	"co2gateway-go/drivers/mono"
	"co2gateway-go/drivers/power"
	"co2gateway-go/drivers/rng"
	"co2gateway-go/drivers/twi"
	"co2gateway-go/drivers/usb"
	"co2gateway-go/hw"
	"co2gateway-go/periph"
)

// Drivers is the brought-up driver set.
type Drivers struct {
	Registry *periph.Registry

	Power *power.Driver
	Clock *clock.Arbiter
	RNG   *rng.Driver
	Mono  *mono.Driver
	GPIO  *gpio.Driver
	USB   *usb.Driver
	TWI   *twi.Driver
}

// New wires the drivers over p without initialising any of them.
func New(p hw.Peripherals, plan board.Plan) *Drivers {
	plan = plan.WithDefaults()
	reg := periph.Transfer(p)
	clk := clock.New(reg, clock.Config{
		LFSource:   plan.LFSource,
		LFAccuracy: clock.Ppm(plan.LFAccuracyPPM),
		HFAccuracy: clock.Ppm(plan.HFAccuracyPPM),
	})
	return &Drivers{
		Registry: reg,
		Power:    power.New(reg),
		Clock:    clk,
		RNG:      rng.New(reg),
		Mono:     mono.New(reg, clk),
		GPIO:     gpio.New(reg, gpio.Config{LED: plan.LEDPin}),
		USB:      usb.New(reg, clk, usb.Identity{HostName: plan.HostName, MAC: plan.MAC}),
		TWI:      twi.New(reg, hw.TWIConfig{SDA: plan.SensorSDA, SCL: plan.SensorSCL, Hz: plan.SensorHz}),
	}
}

// Ordered lists the drivers in bring-up order.
func (d *Drivers) Ordered() []di.Driver {
	return []di.Driver{d.Power, d.Clock, d.RNG, d.Mono, d.GPIO, d.USB, d.TWI}
}

// Init brings every driver up. Each block is taken exactly once; running
// Init twice on the same set is fatal.
func Init(p hw.Peripherals, plan board.Plan) *Drivers {
	plan = plan.WithDefaults()
	println("[boot]", plan.Name, "lf", plan.LFSource.String(), "host", plan.HostName)

	d := New(p, plan)
	d.Power.Init()
	d.Clock.Init()
	d.RNG.Init()
	d.Mono.Init()
	d.GPIO.Init()
	d.USB.Init()
	d.TWI.Init()

	println("[boot] drivers up")
	return d
}
