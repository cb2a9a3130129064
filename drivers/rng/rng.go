// Package rng owns the hardware random number generator.
package rng

import (
	"encoding/binary"

	"co2gateway-go/di"
	"co2gateway-go/hw"
	"co2gateway-go/periph"
	"co2gateway-go/x/critical"
)

type state struct {
	regs hw.RNG
}

// Driver reads random bytes from the RNG block. It implements io.Reader.
type Driver struct {
	reg  *periph.Registry
	cell *di.Cell[state]
}

var _ di.Driver = (*Driver)(nil)

func New(reg *periph.Registry) *Driver {
	return &Driver{reg: reg, cell: di.NewCell[state]("rng")}
}

func construct(cs critical.Section, reg *periph.Registry) state {
	return state{regs: reg.RNG.TakeLocked(cs)}
}

func (d *Driver) Init()               { di.InitOnce(d.cell, d.reg, construct) }
func (d *Driver) Ensure()             { di.Ensure(d.cell, d.reg, construct) }
func (d *Driver) IsInitialized() bool { return d.cell.IsInitialized() }

// Read fills p completely. It never fails.
func (d *Driver) Read(p []byte) (int, error) {
	d.cell.With(func(s *state) { s.regs.Fill(p) })
	return len(p), nil
}

func (d *Driver) Uint8() uint8 {
	var b [1]byte
	d.Read(b[:])
	return b[0]
}

func (d *Driver) Uint16() uint16 {
	var b [2]byte
	d.Read(b[:])
	return binary.LittleEndian.Uint16(b[:])
}

func (d *Driver) Uint32() uint32 {
	var b [4]byte
	d.Read(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

func (d *Driver) Uint64() uint64 {
	var b [8]byte
	d.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
