package cmd

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inventory-sim/inventory-sim/sim"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the built-in policy as YAML",
	Long:  "Print the default configuration in the format accepted by run --config. Redirect it to a file to start a custom policy.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeDefaultConfig(cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Failed to encode defaults: %v", err)
		}
	},
}

func writeDefaultConfig(w io.Writer) error {
	cfg := sim.DefaultConfig()
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&cfg); err != nil {
		return err
	}
	return enc.Close()
}

func init() {
	rootCmd.AddCommand(defaultsCmd)
}
