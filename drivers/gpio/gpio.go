// Package gpio owns port P0 and exposes the board's named output lines.
package gpio

import (
	"co2gateway-go/di"
	"co2gateway-go/hw"
	"co2gateway-go/periph"
	"co2gateway-go/x/critical"
)

// Config names the pins driven as outputs.
type Config struct {
	LED uint8
}

type state struct {
	port hw.Port
}

type Driver struct {
	reg  *periph.Registry
	cfg  Config
	cell *di.Cell[state]
}

var _ di.Driver = (*Driver)(nil)

func New(reg *periph.Registry, cfg Config) *Driver {
	return &Driver{reg: reg, cfg: cfg, cell: di.NewCell[state]("gpio")}
}

// Outputs start low.
func (d *Driver) construct(cs critical.Section, reg *periph.Registry) state {
	port := reg.GPIO.TakeLocked(cs)
	port.ConfigureOutput(d.cfg.LED, false)
	return state{port: port}
}

func (d *Driver) Init()               { di.InitOnce(d.cell, d.reg, d.construct) }
func (d *Driver) Ensure()             { di.Ensure(d.cell, d.reg, d.construct) }
func (d *Driver) IsInitialized() bool { return d.cell.IsInitialized() }

// LED returns the status LED line.
func (d *Driver) LED() Line { return Line{d: d, pin: d.cfg.LED} }

// Line is one output pin of the port.
type Line struct {
	d   *Driver
	pin uint8
}

func (l Line) Pin() uint8 { return l.pin }

func (l Line) Set(high bool) {
	l.d.cell.With(func(s *state) { s.port.Set(l.pin, high) })
}

func (l Line) Get() bool {
	return di.Call(l.d.cell, func(s *state) bool { return s.port.Get(l.pin) })
}

// Toggle inverts the line and returns the new level.
func (l Line) Toggle() bool {
	return di.Call(l.d.cell, func(s *state) bool {
		v := !s.port.Get(l.pin)
		s.port.Set(l.pin, v)
		return v
	})
}
