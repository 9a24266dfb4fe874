package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inventory-sim/inventory-sim/sim"
	"github.com/inventory-sim/inventory-sim/sim/history"
	"github.com/inventory-sim/inventory-sim/sim/trace"
)

var (
	// CLI flags for the batch
	days       int    // Days simulated per run
	runs       int    // Independent runs
	seed       int64  // Master seed; run i draws from its own derived stream
	workers    int    // Runs simulated concurrently
	configPath string // YAML policy file; built-in defaults when empty
	traceLevel string // Trace verbosity for run 0 (none, days)
	showSeries bool   // Print cross-run daily series and histograms

	// CLI flags for output
	historyDir string // Directory to save the batch in; not saved when empty
	logLevel   string // Log verbosity level
	logFile    string // Rotating log file; stderr only when empty
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "inventory-sim",
	Short: "Monte Carlo simulator for a two-location periodic-review inventory policy",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel, logFile)
	},
}

// runCmd executes a batch using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a batch of inventory simulations",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := sim.DefaultConfig()
		if configPath != "" {
			loaded, err := sim.LoadConfig(configPath)
			if err != nil {
				logrus.Fatalf("Failed to load config %s: %v", configPath, err)
			}
			cfg = *loaded
		}

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %q (valid: none, days)", traceLevel)
		}
		printTrace := trace.TraceLevel(traceLevel) == trace.TraceLevelDays

		// History records carry run 0's days, so record them whenever saving.
		level := trace.TraceLevelNone
		if printTrace || historyDir != "" {
			level = trace.TraceLevelDays
		}
		recorder := sim.NewTraceRecorder(level)

		req := sim.BatchRequest{Days: days, Runs: runs, Seed: seed, Workers: workers}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		startTime := time.Now()
		result, err := sim.RunBatch(ctx, cfg, req, recorder)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulated %d runs in %v", len(result.Runs), time.Since(startTime))

		out := cmd.OutOrStdout()
		if printTrace {
			writeTrace(out, recorder.Trace)
		}
		if showSeries {
			writeSeries(out, result.Runs)
		}
		writeSummary(out, result.Summary)

		if historyDir != "" {
			store, err := history.NewStore(historyDir)
			if err != nil {
				logrus.Fatalf("Failed to open history: %v", err)
			}
			rec := history.NewRecord(cfg, history.Params{Days: days, Runs: runs, Seed: seed}, result, recorder.Trace)
			if err := store.Save(rec); err != nil {
				logrus.Fatalf("Failed to save batch: %v", err)
			}
			writeLine(out, "Saved batch %s to %s", rec.ID, store.Dir())
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	loadEnv()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this file, rotated by size")

	runCmd.Flags().IntVar(&days, "days", 10, "Days simulated per run")
	runCmd.Flags().IntVar(&runs, "runs", 10, "Number of independent runs")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the per-run random streams")
	runCmd.Flags().IntVar(&workers, "workers", 1, "Runs simulated concurrently")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML policy file (defaults when empty)")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Trace run 0 (none, days); bare --trace means days")
	runCmd.Flags().Lookup("trace").NoOptDefVal = string(trace.TraceLevelDays)
	runCmd.Flags().BoolVar(&showSeries, "series", false, "Print daily means with confidence bands, histograms and per-run counts")
	runCmd.Flags().StringVar(&historyDir, "history-dir", "", "Save the batch to this directory (default $"+envHistoryDir+")")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
