package tasks

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"co2gateway-go/board"
	"co2gateway-go/bringup"
	"co2gateway-go/bus"
	"co2gateway-go/sensor"
)

// SensorTimeout bounds one sensor transaction and one full read.
const SensorTimeout = 100 * time.Millisecond

// Run starts the blink, sense and uplink tasks on a brought-up driver set
// and waits until ctx is cancelled or a task fails.
func Run(ctx context.Context, d *bringup.Drivers, plan board.Plan, up Uplink) error {
	plan = plan.WithDefaults()
	b := bus.NewBus(4)
	src := sensor.NewSHTC3(d.TWI.I2C(SensorTimeout))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return Blink(ctx, d.Mono, d.GPIO.LED(), plan.BlinkPeriod) })
	g.Go(func() error {
		return Sense(ctx, d.Mono, src, b.NewConnection("sense"), plan.SamplePeriod, SensorTimeout)
	})
	g.Go(func() error { return Forward(ctx, b.NewConnection("uplink"), up) })

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
