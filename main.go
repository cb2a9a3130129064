// Command co2gateway-go is the gateway firmware: it brings up the drivers,
// then blinks the status LED and forwards sensor readings until reset.
package main

import (
	"context"
	"time"

	"co2gateway-go/board"
	"co2gateway-go/bringup"
	"co2gateway-go/errcode"
	"co2gateway-go/periph"
	"co2gateway-go/tasks"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)

	// Report a wiring defect before the panic handler resets the chip.
	defer func() {
		if r := recover(); r != nil {
			println("[boot] fatal", errcode.Describe(r))
			panic(r)
		}
	}()

	plan := board.Selected
	d := bringup.Init(periph.Take(), plan)

	up := tasks.LogUplink{HostName: plan.HostName}
	if err := tasks.Run(context.Background(), d, plan, up); err != nil {
		println("[boot] tasks stopped:", err.Error())
	}
	for {
		time.Sleep(time.Hour)
	}
}
