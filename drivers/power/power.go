// Package power owns the POWER block. Bringing it up switches the core
// regulator to the DC/DC converter.
package power

import (
	"co2gateway-go/di"
	"co2gateway-go/hw"
	"co2gateway-go/periph"
	"co2gateway-go/x/critical"
)

type state struct {
	regs hw.Power
}

type Driver struct {
	reg  *periph.Registry
	cell *di.Cell[state]
}

var _ di.Driver = (*Driver)(nil)

func New(reg *periph.Registry) *Driver {
	return &Driver{reg: reg, cell: di.NewCell[state]("power")}
}

func construct(cs critical.Section, reg *periph.Registry) state {
	regs := reg.Power.TakeLocked(cs)
	regs.EnableDCDC()
	return state{regs: regs}
}

func (d *Driver) Init()               { di.InitOnce(d.cell, d.reg, construct) }
func (d *Driver) Ensure()             { di.Ensure(d.cell, d.reg, construct) }
func (d *Driver) IsInitialized() bool { return d.cell.IsInitialized() }
