package cmd

import (
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/checkpoint-sim/sim"
)

var (
	// CLI flags specific to sweep
	minWorkers int // Smallest staffing level
	maxWorkers int // Largest staffing level
)

// sweepCmd runs every staffing level in [min-workers, max-workers]
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep staffing levels and report mean waits per level",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd.Flags())
		if err != nil {
			return err
		}
		wr := sim.WorkerRange{Min: minWorkers, Max: maxWorkers}

		sink, err := openReporter(cmd, reportFormat, outputPath)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		logrus.Infof("Sweeping %d..%d ID workers, %d replicates each", wr.Min, wr.Max, cfg.Replicates)
		summaries, err := sim.Sweep(ctx, wr, cfg, sink)
		if err != nil {
			return err
		}

		gaps := 0
		for _, s := range summaries {
			if !s.HasData {
				gaps++
			}
		}
		logrus.Infof("Sweep complete: %d levels, %d without data", len(summaries), gaps)
		return nil
	},
}

func registerSweepFlags(c *cobra.Command) {
	d := sim.DefaultWorkerRange()
	c.Flags().IntVar(&minWorkers, "min-workers", d.Min, "Smallest number of ID workers")
	c.Flags().IntVar(&maxWorkers, "max-workers", d.Max, "Largest number of ID workers")
}
