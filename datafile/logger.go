package datafile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/sim"
)

// Logger writes rows of floats as CSV under a fixed header.
type Logger struct {
	w   io.Writer
	h   []string
	fmt string
}

// NewLogger writes the header line to w.
func NewLogger(w io.Writer, h ...string) (*Logger, error) {
	l := &Logger{w: w, h: h}
	if _, err := fmt.Fprint(w, strings.Join(h, ","), "\n"); err != nil {
		return nil, err
	}
	s := strings.Repeat("%g,", len(h))
	l.fmt = s[:len(s)-1] + "\n"
	return l, nil
}

// Log writes one row; v must match the header.
func (l *Logger) Log(v ...float64) error {
	if len(v) != len(l.h) {
		return fmt.Errorf("logged %d values for %d columns", len(v), len(l.h))
	}
	args := make([]interface{}, len(v))
	for i := range v {
		args[i] = v[i]
	}
	_, err := fmt.Fprintf(l.w, l.fmt, args...)
	return err
}

func writeTrajectoryLog(path string, m *sim.Measurements) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	l, err := NewLogger(f, "t", "roll", "pitch", "yaw", "q0", "q1", "q2", "q3", "w1", "w2", "w3")
	if err != nil {
		return err
	}
	t := m.Trajectory
	for i, e := range t.Euler() {
		q, w := t.Quaternions[i], t.Rates[i]
		if err := l.Log(float64(i)*t.Dt, e.Roll, e.Pitch, e.Yaw, q.W, q.X, q.Y, q.Z, w.X, w.Y, w.Z); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return f.Close()
}
