package simweb

import (
	"context"
	"encoding/json"
	"time"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/sim"
)

// Replay publishes one Sample of m to the room per interval. It returns nil
// after the last sample, or the context error if cancelled first.
func Replay(ctx context.Context, r *Room, m *sim.Measurements, interval time.Duration) error {
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for i := 0; i < m.Len(); i++ {
		msg, err := json.Marshal(SampleAt(m, i))
		if err != nil {
			return err
		}
		if err := r.Publish(ctx, msg); err != nil {
			return err
		}
		select {
		case <-tick.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
