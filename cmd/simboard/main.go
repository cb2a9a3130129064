// Command simboard runs the firmware's bring-up and tasks against the
// simulated chip, and replays clock request sequences against the arbiter.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"co2gateway-go/errcode"
)

var rootCmd = &cobra.Command{
	Use:           "simboard",
	Short:         "Run the gateway firmware on a simulated nRF52840",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(runCmd, arbiterCmd, planCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

// describe prefixes err with the kind of its code.
func describe(err error) string {
	return errcode.KindOf(errcode.Of(err)).String() + ": " + err.Error()
}
