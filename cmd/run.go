package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/checkpoint-sim/sim"
	"github.com/inference-sim/checkpoint-sim/sim/trace"
)

var (
	// CLI flags specific to run
	numWorkers int    // ID workers of the single staffing level
	traceLevel string // Lifecycle trace level of the first replicate
)

// runCmd simulates a single staffing level
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the replications of one staffing level",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd.Flags())
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("workers") {
			cfg.NumWorkers = numWorkers
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			return fmt.Errorf("unknown trace level %q", traceLevel)
		}

		sink, err := openReporter(cmd, reportFormat, outputPath)
		if err != nil {
			return err
		}

		logrus.Infof("Running %d replicates with %d ID workers, %d scanners, horizon=%.1f min",
			cfg.Replicates, cfg.NumWorkers, cfg.NumPersonal, cfg.SimTime)
		res, err := sim.RunStaffingLevel(cfg.NumWorkers, cfg.Replicates, cfg)
		if err != nil {
			return err
		}
		s := sim.NewLevelSummary(cfg.NumWorkers, res)
		if err := sink.ReportLevel(s); err != nil {
			return err
		}
		if err := sink.ReportSweep([]sim.LevelSummary{s}); err != nil {
			return err
		}

		if trace.TraceLevel(traceLevel) != trace.TraceLevelNone && traceLevel != "" {
			rec := trace.NewRecorder(trace.TraceLevel(traceLevel))
			seed := sim.DeriveSeed(cfg.BaseSeed, 0, cfg.NumWorkers)
			if _, err := sim.RunReplication(cfg, seed, sim.WithTracer(rec)); err != nil {
				return err
			}
			printTraceSummary(cmd.ErrOrStderr(), seed, trace.Summarize(rec))
		}
		return nil
	},
}

func printTraceSummary(w io.Writer, seed int64, s *trace.TraceSummary) {
	fmt.Fprintf(w, "=== Trace Summary (seed %d) ===\n", seed)
	fmt.Fprintf(w, "Scanner choices      : %d (%d ties)\n", s.TotalChoices, s.TiedChoices)
	fmt.Fprintf(w, "Mean chosen load     : %.2f\n", s.MeanChosenLoad)
	scanners := make([]int, 0, len(s.ScannerCounts))
	for idx := range s.ScannerCounts {
		scanners = append(scanners, idx)
	}
	sort.Ints(scanners)
	for _, idx := range scanners {
		fmt.Fprintf(w, "  scanner %-3d        : %d\n", idx, s.ScannerCounts[idx])
	}
	if s.TotalTransitions > 0 {
		fmt.Fprintf(w, "State transitions    : %d (%d reached DONE)\n", s.TotalTransitions, s.TransitionCount["DONE"])
	}
}

func registerRunFlags(c *cobra.Command) {
	c.Flags().IntVar(&numWorkers, "workers", sim.DefaultConfig().NumWorkers, "Number of ID workers")
	c.Flags().StringVar(&traceLevel, "trace", "none", "Trace the first replicate (none, choices, full)")
}
