// Package usb owns the USB device block. The USB PHY needs the crystal
// oscillator, so the driver keeps an HF token for as long as it runs.
package usb

import (
	"co2gateway-go/di"
	"co2gateway-go/drivers/clock"
	"co2gateway-go/hw"
	"co2gateway-go/periph"
	"co2gateway-go/x/critical"
)

// Identity is what the gateway presents on the USB Ethernet function.
type Identity struct {
	HostName string
	MAC      [6]byte
}

type deps struct {
	reg *periph.Registry
	clk *clock.Arbiter
}

type state struct {
	bus hw.USBD
	hf  clock.HFToken
}

type Driver struct {
	deps deps
	id   Identity
	cell *di.Cell[state]
}

var _ di.Driver = (*Driver)(nil)

func New(reg *periph.Registry, clk *clock.Arbiter, id Identity) *Driver {
	return &Driver{deps: deps{reg: reg, clk: clk}, id: id, cell: di.NewCell[state]("usb")}
}

func construct(cs critical.Section, d deps) state {
	d.clk.EnsureLocked(cs)
	hf := d.clk.RequestHFLocked(cs)
	bus := d.reg.USB.TakeLocked(cs)
	bus.Enable()
	return state{bus: bus, hf: hf}
}

func (d *Driver) Init()               { di.InitOnce(d.cell, d.deps, construct) }
func (d *Driver) Ensure()             { di.Ensure(d.cell, d.deps, construct) }
func (d *Driver) IsInitialized() bool { return d.cell.IsInitialized() }

// Bus returns the enabled USBD block for the USB stack.
func (d *Driver) Bus() hw.USBD {
	return di.Call(d.cell, func(s *state) hw.USBD { return s.bus })
}

func (d *Driver) Identity() Identity { return d.id }
