package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/noise"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/sim"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/simweb"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Replay a simulated run over WebSocket",
		Long: `Simulates one run and streams it sample by sample as JSON to every
WebSocket client connected to /imu. With --loop the run restarts when it ends.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			addr, _ := cmd.Flags().GetString("addr")
			interval, _ := cmd.Flags().GetDuration("interval")
			loop, _ := cmd.Flags().GetBool("loop")
			if interval <= 0 {
				interval = time.Duration(cfg.SamplingInterval * float64(time.Second))
			}

			m, err := sim.Run(cfg.Params(), noise.New(baseSeed(cmd, cfg), logger))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			room := simweb.NewRoom(logger)
			go room.Run(ctx)

			mux := http.NewServeMux()
			mux.Handle("/imu", room)
			srv := &http.Server{Addr: addr, Handler: mux}

			go func() {
				for {
					err := simweb.Replay(ctx, room, m, interval)
					if err != nil || !loop {
						if err != nil && !errors.Is(err, context.Canceled) {
							logger.Error("replay stopped", "err", err)
						}
						return
					}
				}
			}()
			go func() {
				<-ctx.Done()
				shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(shutdown)
			}()

			logger.Info("serving", "addr", addr, "samples", m.Len(), "interval", interval)
			fmt.Fprintf(cmd.OutOrStdout(), "streaming on ws://%s/imu\n", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().String("addr", fmt.Sprintf(":%d", simweb.Port), "Listen address")
	cmd.Flags().Duration("interval", 0, "Time between samples (0 = the sampling interval)")
	cmd.Flags().Bool("loop", false, "Restart the replay when it ends")
	cmd.Flags().Int64("seed", 0, "Seed of the run (overrides the config file)")
	return cmd
}
