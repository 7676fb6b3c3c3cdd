// Package cli provides the command-line interface for cmapscore.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/conceptmap/cmapscore/internal/config"
	"github.com/conceptmap/cmapscore/internal/scoring"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and registry
	cfg      config.Config
	registry *scoring.Registry

	// Closes the log file, if one was opened.
	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cmapscore",
	Short: "Score student concept maps against a master map",
	Long: `Cmapscore grades student concept maps against a teacher's master map.

Maps are CSV files of propositions (antecedent concepts, a consequent
concept, and a relation type). Several scoring algorithms are available,
from strict greedy matching to optimal-assignment scoring; each reports
a point total alongside precision, recall, and f-value.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, cleanup := config.SetupLogger(cfg.LogFile, level)
		slog.SetDefault(logger)
		logCleanup = cleanup

		registry = scoring.DefaultRegistry()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(algorithmsCmd)
}
