package simweb

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/noise"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/orientation"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/sim"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func startRoom(t *testing.T) (*Room, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRoom(quiet())
	go r.Run(ctx)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return r, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func testMeasurements(t *testing.T, n int) *sim.Measurements {
	t.Helper()
	p := sim.Params{
		Samples:  n,
		Interval: 0.01,
		Profile:  sim.Profile{Mode: sim.ModeRamp, Step: 0.01},
		Accel:    sim.SensorModel{Reference: orientation.Vector{Z: -1}, Scale: 9.81},
		Mag:      sim.SensorModel{Reference: orientation.Vector{X: 1}, Scale: 65},
	}
	m, err := sim.Run(p, noise.New(1, quiet()))
	require.NoError(t, err)
	return m
}

func TestReplayBroadcast(t *testing.T) {
	r, url := startRoom(t)
	a := dial(t, url)
	b := dial(t, url)
	require.Eventually(t, func() bool { return r.Len() == 2 }, 2*time.Second, 5*time.Millisecond)

	m := testMeasurements(t, 5)
	require.NoError(t, Replay(context.Background(), r, m, time.Millisecond))

	for _, c := range []*websocket.Conn{a, b} {
		c.SetReadDeadline(time.Now().Add(2 * time.Second))
		for i := 0; i < 5; i++ {
			_, msg, err := c.ReadMessage()
			require.NoError(t, err)
			var s Sample
			require.NoError(t, json.Unmarshal(msg, &s))
			assert.Equal(t, i, s.Index)
			assert.InDelta(t, float64(i)*0.01, s.T, 1e-12)
			assert.Equal(t, m.Accel.Ideal[i].Array(), s.AccelTrue)
		}
	}
}

func TestClientMessagesForwarded(t *testing.T) {
	r, url := startRoom(t)
	producer := dial(t, url)
	viewer := dial(t, url)
	require.Eventually(t, func() bool { return r.Len() == 2 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, producer.WriteMessage(websocket.TextMessage, []byte(`{"index":7}`)))

	viewer.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := viewer.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"index":7}`, string(msg))
}

func TestClientLeaves(t *testing.T) {
	r, url := startRoom(t)
	c := dial(t, url)
	require.Eventually(t, func() bool { return r.Len() == 1 }, 2*time.Second, 5*time.Millisecond)

	c.Close()
	require.Eventually(t, func() bool { return r.Len() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestReplayCancelled(t *testing.T) {
	r, _ := startRoom(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Replay(ctx, r, testMeasurements(t, 50), time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPublishAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRoom(quiet())
	stopped := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped
	assert.ErrorIs(t, r.Publish(context.Background(), []byte("x")), ErrClosed)
}
