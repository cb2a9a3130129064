// Package twi owns the sensor bus (TWIM0). All transactions go through one
// worker goroutine; callers get a drivers.I2C adaptor with an optional
// per-call deadline.
//
// The worker never touches caller memory once the caller has given up: it
// transfers through its own copies and hands read data back only to a
// caller that is still waiting.
package twi

import (
	"sync"
	"time"

	"tinygo.org/x/drivers"

	"co2gateway-go/di"
	"co2gateway-go/errcode"
	"co2gateway-go/hw"
	"co2gateway-go/periph"
	"co2gateway-go/x/critical"
)

// QueueLen is the number of transactions that may wait for the worker.
const QueueLen = 16

// request posted to the worker. w and r are owned by the worker; out is the
// caller's read buffer and may only be written while abandoned is false.
type request struct {
	addr uint16
	w, r []byte

	mu        sync.Mutex
	out       []byte
	abandoned bool
	done      chan error // buffered(1)
}

// complete copies the read data out and signals the caller, unless the
// caller has already returned.
func (req *request) complete(err error) {
	req.mu.Lock()
	defer req.mu.Unlock()
	if req.abandoned {
		return
	}
	copy(req.out, req.r)
	req.done <- err
}

// abandon detaches the caller's buffer. It reports false when the worker
// got there first and a result is waiting in done.
func (req *request) abandon() bool {
	req.mu.Lock()
	defer req.mu.Unlock()
	if len(req.done) > 0 {
		return false
	}
	req.abandoned = true
	return true
}

type state struct {
	bus  hw.I2C
	reqs chan *request
}

type Driver struct {
	reg  *periph.Registry
	cfg  hw.TWIConfig
	cell *di.Cell[state]
}

var _ di.Driver = (*Driver)(nil)

// New returns a driver that configures TWIM0 with cfg when initialised.
func New(reg *periph.Registry, cfg hw.TWIConfig) *Driver {
	return &Driver{reg: reg, cfg: cfg, cell: di.NewCell[state]("twi")}
}

// A bus that rejects its configuration is a wiring defect.
func (d *Driver) construct(cs critical.Section, reg *periph.Registry) state {
	bus := reg.Sensor.TakeLocked(cs)
	if err := bus.Configure(d.cfg); err != nil {
		errcode.Fatal("twi.Init", errcode.InvalidParams, err.Error())
	}
	return state{bus: bus, reqs: make(chan *request, QueueLen)}
}

// The worker is started outside the construction section.
func (d *Driver) Init() {
	di.InitOnce(d.cell, d.reg, d.construct)
	d.start()
}

func (d *Driver) Ensure() {
	if di.Ensure(d.cell, d.reg, d.construct) {
		d.start()
	}
}

func (d *Driver) IsInitialized() bool { return d.cell.IsInitialized() }

func (d *Driver) start() {
	var s state
	d.cell.With(func(v *state) { s = *v })
	go loop(s.bus, s.reqs)
}

func loop(bus hw.I2C, reqs <-chan *request) {
	for req := range reqs {
		req.complete(bus.Tx(req.addr, req.w, req.r))
	}
}

// I2C returns an adaptor on the bus. timeout bounds both the wait for a
// queue slot (errcode.Busy) and the wait for completion (errcode.Timeout);
// zero means no deadline.
func (d *Driver) I2C(timeout time.Duration) drivers.I2C {
	reqs := di.Call(d.cell, func(s *state) chan *request { return s.reqs })
	return &adaptor{reqs: reqs, timeout: timeout}
}

type adaptor struct {
	reqs    chan<- *request
	timeout time.Duration
}

var _ drivers.I2C = (*adaptor)(nil)

func (a *adaptor) Tx(addr uint16, w, r []byte) error {
	req := &request{
		addr: addr,
		w:    append([]byte(nil), w...),
		r:    make([]byte, len(r)),
		out:  r,
		done: make(chan error, 1),
	}

	if a.timeout <= 0 {
		a.reqs <- req
		return <-req.done
	}

	t := time.NewTimer(a.timeout)
	defer t.Stop()
	select {
	case a.reqs <- req:
	case <-t.C:
		return errcode.Busy
	}
	if !t.Stop() {
		<-t.C
	}
	t.Reset(a.timeout)
	select {
	case err := <-req.done:
		return err
	case <-t.C:
		if req.abandon() {
			return errcode.Timeout
		}
		return <-req.done
	}
}
