package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"co2gateway-go/board"
	"co2gateway-go/bringup"
	"co2gateway-go/hw/sim"
	"co2gateway-go/tasks"
)

var (
	runOpts = struct {
		plan     string
		duration time.Duration
		seed     int64
		raw      uint16
	}{}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Bring up the drivers and run the tasks for a while",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := loadPlan(runOpts.plan)
			if err != nil {
				return err
			}

			chip := sim.NewChip(runOpts.seed)
			chip.TWIM0.Handler = sim.SHTC3(runOpts.raw)
			d := bringup.Init(chip.Peripherals(), plan)

			ctx, cancel := context.WithTimeout(cmd.Context(), runOpts.duration)
			defer cancel()
			if err := tasks.Run(ctx, d, plan, tasks.LogUplink{HostName: plan.HostName}); err != nil {
				return err
			}

			lf, hf := d.Clock.Outstanding()
			fmt.Fprintf(cmd.OutOrStdout(), "clock %s lf=%d hf=%d events=%d\n",
				d.Clock.State(), lf, hf, len(chip.Clock.Events()))
			fmt.Fprintf(cmd.OutOrStdout(), "sensor transactions %d, led %v\n",
				chip.TWIM0.Count, chip.P0.Get(plan.LEDPin))
			return nil
		},
	}

	planCmd = &cobra.Command{
		Use:   "plan",
		Short: "Print the effective board plan as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := loadPlan(runOpts.plan)
			if err != nil {
				return err
			}
			return board.WritePlan(cmd.OutOrStdout(), plan)
		},
	}
)

// loadPlan overlays the YAML file at path, if any, on the built-in plan.
func loadPlan(path string) (board.Plan, error) {
	if path == "" {
		return board.Selected, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return board.Plan{}, err
	}
	defer f.Close()
	return board.LoadPlan(f, board.Selected)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&runOpts.plan, "plan", "p", "", "YAML board plan overlay")
	runCmd.Flags().DurationVarP(&runOpts.duration, "duration", "d", 10*time.Second, "how long to run the tasks")
	runCmd.Flags().Int64Var(&runOpts.seed, "seed", 1, "RNG seed of the simulated chip")
	runCmd.Flags().Uint16Var(&runOpts.raw, "raw", 0x6666, "raw SHTC3 word returned by the simulated sensor")
}
