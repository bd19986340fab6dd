package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cottand/sigtest/check"
	"github.com/cottand/sigtest/definition"
	"github.com/cottand/sigtest/internal/config"
	"github.com/cottand/sigtest/internal/log"
	"github.com/cottand/sigtest/sigerr"
	"github.com/cottand/sigtest/sigfile"
	"github.com/cottand/sigtest/tester"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:          "check definitions.yaml calls.yaml",
	Short:        "Check recorded calls against the signatures of their methods",
	RunE:         runCheck,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
}

var (
	settings    = config.NewViper()
	showMetrics *bool
)

func init() {
	flags := CheckCmd.Flags()
	flags.StringSlice("target", nil, "classes to check, like Foo::Bar or Foo::* (defaults to all)")
	flags.StringSlice("skip", nil, "classes not to check")
	flags.String("sample-size", "", "how many elements of a collection to check, or ALL (defaults to 100)")
	flags.Uint64("seed", 0, "seed for reproducible sampling")
	flags.String("double-mode", "", "how doubles are checked: strict, lax or none")
	flags.String("log-level", "", "one of debug, info, warn or error")
	showMetrics = flags.Bool("metrics", false, "print counters of checked calls")

	for key, flag := range map[string]string{
		config.KeyTarget:     "target",
		config.KeySkip:       "skip",
		config.KeySampleSize: "sample-size",
		config.KeySeed:       "seed",
		config.KeyDoubleMode: "double-mode",
		config.KeyLogLevel:   "log-level",
	} {
		if err := settings.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(settings)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	log.SetLevel(cfg.Level())

	defs, err := sigfile.LoadDefinitions(args[0])
	if err != nil {
		return fmt.Errorf("could not load definitions: %w", err)
	}
	calls, err := sigfile.LoadCalls(args[1])
	if err != nil {
		return fmt.Errorf("could not load calls: %w", err)
	}

	reg := prometheus.NewRegistry()
	metrics, err := tester.NewMetrics("sigtest", reg)
	if err != nil {
		return fmt.Errorf("could not register metrics: %w", err)
	}

	out := cmd.OutOrStdout()
	report, err := CheckCalls(out, defs, calls, cfg, metrics)
	if err != nil {
		return err
	}
	if *showMetrics {
		if err := printMetrics(out, reg); err != nil {
			return fmt.Errorf("could not gather metrics: %w", err)
		}
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d calls do not conform to their signature", report.Failed, report.Checked)
	}
	return nil
}

// Report sums up a run of CheckCalls
type Report struct {
	Checked int
	Failed  int
	Skipped int
}

// CheckCalls checks every call whose receiver cfg selects, writing a line per call to out
func CheckCalls(out io.Writer, defs *definition.Registry, calls []sigfile.Call, cfg *config.Config, metrics *tester.Metrics) (Report, error) {
	var (
		report Report
		red    = color.New(color.FgRed)
		green  = color.New(color.FgGreen)
		gray   = color.New(color.FgHiBlack)
	)
	tst := tester.New(cfg.CheckConfig(defs), tester.WithFilter(cfg.Selects), tester.WithMetrics(metrics))
	keys := make(map[check.Receiver]uuid.UUID)

	for _, c := range calls {
		name := c.Receiver.MethodName(c.Trace.MethodName)
		key, installed := keys[c.Receiver]
		if !installed {
			var err error
			key, err = tst.Install(c.Receiver)
			if err != nil && !errors.Is(err, tester.ErrNotSelected) {
				return report, err
			}
			keys[c.Receiver] = key
		}
		if key == uuid.Nil {
			report.Skipped++
			_, _ = gray.Fprintf(out, "skip %s (line %d)\n", name, c.Line)
			continue
		}

		report.Checked++
		err := tst.Notify(key, c.Trace)
		var typeErr *sigerr.TypeError
		switch {
		case errors.As(err, &typeErr):
			report.Failed++
			_, _ = red.Fprintf(out, "FAIL %s (line %d)\n", name, c.Line)
			for _, e := range typeErr.Errors {
				_, _ = fmt.Fprintf(out, "    %s\n", sigerr.FormatWithCode(e))
			}
		case err != nil:
			return report, err
		default:
			_, _ = green.Fprintf(out, "ok   %s (line %d)\n", name, c.Line)
		}
	}
	_, _ = fmt.Fprintf(out, "%d checked, %d failed, %d skipped\n", report.Checked, report.Failed, report.Skipped)
	return report, nil
}

func printMetrics(out io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		for _, m := range family.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			sort.Strings(labels)
			_, _ = fmt.Fprintf(out, "%s{%s} %v\n", family.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
	return nil
}
