// Package tasks holds the long-running firmware tasks. Each task runs until
// its context is cancelled and talks to the others over the bus.
package tasks

import (
	"context"
	"time"

	"co2gateway-go/bus"
	"co2gateway-go/drivers/mono"
	"co2gateway-go/sensor"
	"co2gateway-go/x/conv"
)

var (
	TopicReading = bus.Topic{"env", "reading"}
	TopicError   = bus.Topic{"env", "error"}
)

// Timebase is the part of the monotonic driver the tasks wait on.
type Timebase interface {
	Now() mono.Instant
	DelayUntil(ctx context.Context, at mono.Instant) error
	TimeoutAfter(ctx context.Context, d time.Duration, fn func(ctx context.Context) error) error
}

var _ Timebase = (*mono.Driver)(nil)

// Toggler is an output line.
type Toggler interface {
	Toggle() bool
}

// Sample is a reading stamped with the time it was taken.
type Sample struct {
	sensor.Reading
	At mono.Instant
}

// Blink toggles led every period. Deadlines are absolute so the rate does
// not drift with scheduling latency.
func Blink(ctx context.Context, tb Timebase, led Toggler, period time.Duration) error {
	next := tb.Now()
	for {
		led.Toggle()
		next = next.Add(period)
		if err := tb.DelayUntil(ctx, next); err != nil {
			return err
		}
	}
}

// Sense reads src every period and publishes the result as a retained
// message on TopicReading. A failed or timed out read is published on
// TopicError and the loop carries on.
func Sense(ctx context.Context, tb Timebase, src sensor.Source, conn *bus.Connection, period, timeout time.Duration) error {
	next := tb.Now()
	for {
		var r sensor.Reading
		err := tb.TimeoutAfter(ctx, timeout, func(ctx context.Context) error {
			var err error
			r, err = src.Read(ctx)
			return err
		})
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			println("[sense] read failed:", err.Error())
			conn.Publish(conn.NewMessage(TopicError, err, false))
		} else {
			conn.Publish(conn.NewMessage(TopicReading, Sample{Reading: r, At: tb.Now()}, true))
		}

		next = next.Add(period)
		if err := tb.DelayUntil(ctx, next); err != nil {
			return err
		}
	}
}

// Uplink carries samples off the board.
type Uplink interface {
	Send(ctx context.Context, s Sample) error
}

// Forward hands every published sample to up. Send errors are logged and
// do not stop the task.
func Forward(ctx context.Context, conn *bus.Connection, up Uplink) error {
	sub := conn.Subscribe(TopicReading)
	defer conn.Unsubscribe(sub)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-sub.Channel():
			if !ok {
				return nil
			}
			s, ok := msg.Payload.(Sample)
			if !ok {
				continue
			}
			if err := up.Send(ctx, s); err != nil {
				println("[uplink] send failed:", err.Error())
			}
		}
	}
}

// LogUplink prints samples on the console. It stands in for the USB
// Ethernet gateway.
type LogUplink struct {
	HostName string
}

func (l LogUplink) Send(_ context.Context, s Sample) error {
	var tb, hb [24]byte
	t := conv.Fixed(tb[:], int64(s.DeciC), 1)
	h := conv.Fixed(hb[:], int64(s.RHx100), 2)
	println("[uplink]", l.HostName, "t="+string(t)+"C", "rh="+string(h)+"%", "at", uint64(s.At))
	return nil
}
