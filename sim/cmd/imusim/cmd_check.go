package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/magnetometer"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/noise"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/sim"
)

// Tolerances of the self-consistency checks.
const (
	controlTolerance    = 1e-3
	firstOrderTolerance = 1e-2
	normTolerance       = 1e-9
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the propagation self-consistency checks",
		Long: `Checks that two successive 90 degree steps compose to the direct Euler
construction, and that first-order integration of the true rates tracks the
exact quaternion propagation on a smooth sinusoidal trajectory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			d, err := sim.CheckControl(cfg.SamplingInterval)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "control scenario: max deviation %.3g (tolerance %g)\n", d, controlTolerance)
			if d > controlTolerance {
				return fmt.Errorf("control scenario deviates by %g", d)
			}

			p := cfg.Params()
			p.Samples = 2000
			p.Profile = sim.Profile{Mode: sim.ModeSinusoidal, Amplitude: 0.2}
			m, err := sim.Run(p, noise.New(baseSeed(cmd, cfg), logger))
			if err != nil {
				return err
			}
			if e := m.Trajectory.MaxNormError(); e > normTolerance {
				return fmt.Errorf("quaternion norm drifted by %g", e)
			}
			d, err = m.Trajectory.FirstOrderDeviation()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "first-order integration: max deviation %.3g (tolerance %g)\n", d, firstOrderTolerance)
			if d > firstOrderTolerance {
				return fmt.Errorf("first-order integration deviates by %g", d)
			}
			// The first sample is level, so the ideal field is the reference itself.
			ref := p.Mag.Reference.Scale(p.Mag.Scale)
			fmt.Fprintf(out, "magnetic reference: inclination %.4f deg, declination %.4f deg\n",
				magnetometer.Inclination(m.Mag.Ideal[0]), magnetometer.Declination(m.Mag.Ideal[0]))
			if d := magnetometer.NormDiff(m.Mag.Ideal[0], ref); d > normTolerance*ref.Norm() {
				return fmt.Errorf("ideal magnetic field at rest is off the reference by %g", d)
			}

			fmt.Fprintln(out, "ok")
			return nil
		},
	}
	cmd.Flags().Int64("seed", 1, "Seed for the noise of the consistency run")
	return cmd
}
