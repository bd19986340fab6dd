package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cottand/sigtest/sample"
	"github.com/spf13/cobra"
)

var SampleCmd = &cobra.Command{
	Use:          "sample length",
	Short:        "Print which indices of a collection of the given length would be checked",
	RunE:         runSample,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	sampleSize *string
	sampleSeed *uint64
)

func init() {
	sampleSize = SampleCmd.Flags().StringP("size", "s", "", "sample size, or ALL (defaults to 100)")
	sampleSeed = SampleCmd.Flags().Uint64("seed", 0, "seed for reproducible sampling")
}

func runSample(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return fmt.Errorf("length should be a non negative integer: `%s`", args[0])
	}
	size, err := sample.ParseSize(*sampleSize)
	if err != nil {
		return err
	}
	policy := sample.New(size)
	if *sampleSeed != 0 {
		policy = sample.Seeded(size, *sampleSeed)
	}

	indices := policy.Indices(n)
	shown := make([]string, len(indices))
	for i, idx := range indices {
		shown[i] = strconv.Itoa(idx)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(shown, " "))
	return err
}
