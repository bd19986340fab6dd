//go:build !(js || wasm)

package main

import (
	"os"

	"github.com/cottand/sigtest/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "sigtest [subcommand]",
	Short:        "sigtest checks recorded method calls against their declared signatures",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.CheckCmd)
	rootCmd.AddCommand(cmd.SampleCmd)
}
