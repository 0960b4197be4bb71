// Command imusim generates synthetic IMU data sets for testing orientation
// estimators.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/config"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/logging"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "imusim",
		Short: "Synthetic IMU data generator",
		Long: `imusim simulates a rigid body following a reference attitude trajectory
and writes the gyroscope, accelerometer and magnetometer signals it would
measure, together with their noise-free counterparts and the true attitude.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file (defaults apply when empty)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug or trace (overrides the config file)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newGenerateCmd(),
		newCheckCmd(),
		newPlotCmd(),
		newServeCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "imusim version %s\n", version)
		},
	}
}

// loadConfig reads the configuration named by the global flags and builds
// the logger it asks for.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr()), nil
}

// baseSeed returns the seed flag if set, else the configured seed, else a
// time-based one.
func baseSeed(cmd *cobra.Command, cfg *config.Config) int64 {
	if cmd.Flags().Changed("seed") {
		s, _ := cmd.Flags().GetInt64("seed")
		return s
	}
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}
