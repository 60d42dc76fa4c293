package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tebeka/atexit"

	"github.com/inference-sim/checkpoint-sim/sim"
)

var (
	// CLI flags shared by run and sweep
	configPath   string  // YAML config file layered over the defaults
	logLevel     string  // Log verbosity level
	checkTime    float64 // Fixed ID-check duration (minutes)
	passInter    float64 // Mean interarrival time (minutes)
	simTime      float64 // Replication horizon (minutes)
	numPersonal  int     // Number of personal scanners
	personalMin  float64 // Minimum scan duration (minutes)
	personalMax  float64 // Maximum scan duration (minutes)
	replicates   int     // Replications per staffing level
	baseSeed     int64   // Base seed all replication seeds derive from
	initialBusy  bool    // Seed one passenger per ID worker at t=0
	parallelism  int     // Concurrent replications per staffing level
	reportFormat string  // Report sink format
	outputPath   string  // Report destination ("-" = stdout)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "checkpoint-sim",
	Short: "Discrete-event simulator for an airport security checkpoint",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI root command and exits through atexit so that
// registered report sinks are flushed and closed. Command errors are
// printed once, here.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

// resolveConfig layers the config file (if any) and then every flag the user
// set explicitly over sim.DefaultConfig.
func resolveConfig(flags *pflag.FlagSet) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := sim.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	// Flags override the file only when given (a default must not clobber a file value).
	if flags.Changed("check-time") {
		cfg.CheckTime = checkTime
	}
	if flags.Changed("pass-inter") {
		cfg.PassInter = passInter
	}
	if flags.Changed("sim-time") {
		cfg.SimTime = simTime
	}
	if flags.Changed("num-personal") {
		cfg.NumPersonal = numPersonal
	}
	if flags.Changed("personal-min") {
		cfg.PersonalMin = personalMin
	}
	if flags.Changed("personal-max") {
		cfg.PersonalMax = personalMax
	}
	if flags.Changed("replicates") {
		cfg.Replicates = replicates
	}
	if flags.Changed("seed") {
		cfg.BaseSeed = baseSeed
	}
	if flags.Changed("initial-busy") {
		cfg.InitialBusy = initialBusy
	}
	if flags.Changed("parallelism") {
		cfg.Parallelism = parallelism
	}
	return cfg, nil
}

// registerModelFlags attaches the model flags to a subcommand.
func registerModelFlags(c *cobra.Command) {
	d := sim.DefaultConfig()
	c.Flags().StringVar(&configPath, "config", "", "YAML config file (unset keys keep defaults)")
	c.Flags().Float64Var(&checkTime, "check-time", d.CheckTime, "Fixed ID-check duration (minutes)")
	c.Flags().Float64Var(&passInter, "pass-inter", d.PassInter, "Mean interarrival time (minutes)")
	c.Flags().Float64Var(&simTime, "sim-time", d.SimTime, "Replication horizon (minutes)")
	c.Flags().IntVar(&numPersonal, "num-personal", d.NumPersonal, "Number of personal scanners")
	c.Flags().Float64Var(&personalMin, "personal-min", d.PersonalMin, "Minimum scan duration (minutes)")
	c.Flags().Float64Var(&personalMax, "personal-max", d.PersonalMax, "Maximum scan duration (minutes)")
	c.Flags().IntVar(&replicates, "replicates", d.Replicates, "Replications per staffing level")
	c.Flags().Int64Var(&baseSeed, "seed", d.BaseSeed, "Base seed for replication seeds")
	c.Flags().BoolVar(&initialBusy, "initial-busy", d.InitialBusy, "Start with one passenger per ID worker")
	c.Flags().IntVar(&parallelism, "parallelism", d.Parallelism, "Concurrent replications per staffing level")
	c.Flags().StringVar(&reportFormat, "format", "text", "Report format (text, csv, json, yaml)")
	c.Flags().StringVarP(&outputPath, "output", "o", "-", "Report destination file (- for stdout)")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	registerModelFlags(runCmd)
	registerRunFlags(runCmd)
	registerModelFlags(sweepCmd)
	registerSweepFlags(sweepCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
