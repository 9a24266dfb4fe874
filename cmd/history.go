package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inventory-sim/inventory-sim/sim/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved batches",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel, logFile)
		if historyDir == "" {
			logrus.Fatalf("No history directory: pass --history-dir or set %s", envHistoryDir)
		}
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved batches, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := openStore().List()
		if err != nil {
			logrus.Fatalf("Failed to list history: %v", err)
		}
		writeHistoryList(cmd.OutOrStdout(), entries)
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved batch's configuration and statistics",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rec, err := openStore().Load(args[0])
		if err != nil {
			logrus.Fatalf("Failed to load batch: %v", err)
		}
		out := cmd.OutOrStdout()
		if err := writeRecord(out, rec); err != nil {
			logrus.Fatalf("Failed to print batch: %v", err)
		}
		if showSeries {
			writeSeries(out, rec.RebuildRuns())
		}
		if traceLevel == "days" {
			writeTrace(out, rec.Trace())
		}
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved batch",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := openStore().Delete(args[0]); err != nil {
			logrus.Fatalf("Failed to delete batch: %v", err)
		}
	},
}

func openStore() *history.Store {
	store, err := history.NewStore(historyDir)
	if err != nil {
		logrus.Fatalf("Failed to open history: %v", err)
	}
	return store
}

func writeHistoryList(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		writeLine(w, "No saved batches.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSAVED\tDAYS\tRUNS\tSEED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", e.ID, e.Timestamp.Local().Format(time.DateTime), e.Params.Days, e.Params.Runs, e.Params.Seed)
	}
	tw.Flush()
}

// writeRecord prints a record's parameters, its configuration as YAML and the
// statistics that were displayed when it ran.
func writeRecord(w io.Writer, rec *history.Record) error {
	writeLine(w, "Batch %s (saved %s)", rec.ID, rec.Timestamp.Local().Format(time.DateTime))
	writeLine(w, "Days: %d  Runs: %d  Seed: %d", rec.Params.Days, rec.Params.Runs, rec.Params.Seed)
	writeLine(w, "=== Configuration ===")
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&rec.Config); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	dist := rec.Config.Distributions
	writeLine(w, "Expected daily demand: %.4f  Expected lead time: %.4f",
		dist.OccupiedRooms.Mean()*dist.RoomConsumption.Mean(), dist.LeadTime.Mean())
	writeLine(w, "=== Simulation Statistics ===")
	for _, st := range rec.Statistics {
		writeLine(w, "%-38s: %s", st.Label, st.Value)
	}
	return nil
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historyDir, "history-dir", "", "Directory holding saved batches (default $"+envHistoryDir+")")
	historyShowCmd.Flags().BoolVar(&showSeries, "series", false, "Also print the cross-run series rebuilt from stored runs")
	historyShowCmd.Flags().StringVar(&traceLevel, "trace", "none", "Also print run 0's stored days (none, days)")
	historyShowCmd.Flags().Lookup("trace").NoOptDefVal = "days"

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}
