package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/noise"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/sensorplot"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/sim"
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Simulate one run and render its series as PNG plots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dir, _ := cmd.Flags().GetString("out")

			m, err := sim.Run(cfg.Params(), noise.New(baseSeed(cmd, cfg), logger))
			if err != nil {
				return err
			}
			paths, err := sensorplot.SaveRun(dir, m)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().String("out", "plots", "Directory for the PNG files")
	cmd.Flags().Int64("seed", 0, "Seed of the run (overrides the config file)")
	return cmd
}
