package cmd

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/inference-sim/checkpoint-sim/sim"
	"github.com/inference-sim/checkpoint-sim/sim/report"
)

// openReporter builds the sink selected by --format writing to --output.
// Files are closed by an atexit handler.
func openReporter(cmd *cobra.Command, format, path string) (sim.Reporter, error) {
	var w io.Writer = cmd.OutOrStdout()
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		atexit.Register(func() {
			if err := f.Close(); err != nil {
				logrus.Errorf("closing %s: %v", path, err)
			}
		})
		w = f
	}
	return report.New(format, w)
}
