package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"co2gateway-go/drivers/clock"
	"co2gateway-go/errcode"
	"co2gateway-go/hw/sim"
	"co2gateway-go/periph"
)

var arbiterCmd = &cobra.Command{
	Use:   "arbiter op...",
	Short: "Replay oscillator requests and releases",
	Long: `Replay a sequence of oscillator operations against a fresh arbiter and
print every state change. Operations are request-lf, release-lf, request-hf
and release-hf. A release gives back the most recent token on that axis.`,
	Example: "  simboard arbiter request-hf request-lf release-lf release-hf",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return replay(cmd.OutOrStdout(), args)
	},
}

func replay(w io.Writer, ops []string) (err error) {
	chip := sim.NewChip(1)
	arb := clock.New(periph.Transfer(chip.Peripherals()), clock.Config{
		Observe: func(from, to clock.State) { fmt.Fprintf(w, "  %s -> %s\n", from, to) },
	})
	arb.Init()

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		e, ok := errcode.Recovered(r)
		if !ok {
			panic(r)
		}
		err = e
	}()

	var lfs []clock.LFToken
	var hfs []clock.HFToken
	for _, op := range ops {
		fmt.Fprintln(w, op)
		switch op {
		case "request-lf":
			lfs = append(lfs, arb.RequestLF())
		case "request-hf":
			hfs = append(hfs, arb.RequestHF())
		case "release-lf":
			if len(lfs) == 0 {
				return &errcode.E{C: errcode.OverRelease, Op: op, Msg: "no LF token held"}
			}
			lfs[len(lfs)-1].Release()
			lfs = lfs[:len(lfs)-1]
		case "release-hf":
			if len(hfs) == 0 {
				return &errcode.E{C: errcode.OverRelease, Op: op, Msg: "no HF token held"}
			}
			hfs[len(hfs)-1].Release()
			hfs = hfs[:len(hfs)-1]
		default:
			return &errcode.E{C: errcode.InvalidParams, Op: "arbiter", Msg: op}
		}
	}
	lf, hf := arb.Outstanding()
	fmt.Fprintf(w, "final %s lf=%d hf=%d\n", arb.State(), lf, hf)
	return nil
}
