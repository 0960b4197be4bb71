// Package sensorplot renders simulated series as PNG line plots over time.
package sensorplot

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/orientation"
	"github.com/HRadak/GDOrientationPerformanceAnalysis/sim"
)

var ErrNoData = errors.New("no data to plot")

// Size of the rendered images.
const (
	widthIn  = 8.0
	heightIn = 5.0
	dpi      = 150
)

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(8)
	p.X.Label.TextStyle.Font.Size = vg.Points(13)
	p.Y.Label.TextStyle.Font.Size = vg.Points(13)
	p.X.Label.Padding = vg.Points(6)
	p.Y.Label.Padding = vg.Points(6)
	p.X.Tick.Label.Font.Size = vg.Points(11)
	p.Y.Tick.Label.Font.Size = vg.Points(11)
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
}

// SaveSeries plots each series against t = i·dt, one line per name.
func SaveSeries(path, title, ylabel string, dt float64, names []string, series ...[]float64) error {
	if len(series) == 0 || len(series) != len(names) {
		return fmt.Errorf("%s: %d names for %d series: %w", title, len(names), len(series), ErrNoData)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = ylabel
	stylePlot(p)

	for j, ys := range series {
		if len(ys) == 0 {
			return fmt.Errorf("%s/%s: %w", title, names[j], ErrNoData)
		}
		pts := make(plotter.XYs, len(ys))
		for i := range ys {
			pts[i].X = float64(i) * dt
			pts[i].Y = ys[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.2)
		line.LineStyle.Color = plotutil.Color(j)
		p.Add(line)
		p.Legend.Add(names[j], line)
	}
	return savePlotPNG(p, path)
}

func savePlotPNG(p *plot.Plot, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return bw.Flush()
}

func split(v []orientation.Vector) (x, y, z []float64) {
	x, y, z = make([]float64, len(v)), make([]float64, len(v)), make([]float64, len(v))
	for i := range v {
		x[i], y[i], z[i] = v[i].X, v[i].Y, v[i].Z
	}
	return
}

// SaveRun writes the standard set of plots for one run into dir and returns
// the file paths.
func SaveRun(dir string, m *sim.Measurements) ([]string, error) {
	t := m.Trajectory
	var paths []string
	save := func(name, title, ylabel string, names []string, series ...[]float64) error {
		path := filepath.Join(dir, name)
		if err := SaveSeries(path, title, ylabel, t.Dt, names, series...); err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	}

	e := t.Euler()
	r, p, y := make([]float64, len(e)), make([]float64, len(e)), make([]float64, len(e))
	for i := range e {
		d := e[i].Degrees()
		r[i], p[i], y[i] = d.Roll, d.Pitch, d.Yaw
	}
	if err := save("euler.png", "True attitude", "angle (deg)", []string{"roll", "pitch", "yaw"}, r, p, y); err != nil {
		return nil, err
	}

	qw, qx, qy, qz := make([]float64, len(e)), make([]float64, len(e)), make([]float64, len(e)), make([]float64, len(e))
	for i, q := range t.Quaternions {
		qw[i], qx[i], qy[i], qz[i] = q.W, q.X, q.Y, q.Z
	}
	if err := save("quaternion.png", "True quaternion", "component", []string{"w", "x", "y", "z"}, qw, qx, qy, qz); err != nil {
		return nil, err
	}

	channels := []struct {
		name, title, unit string
		c                 sim.Channel
	}{
		{"gyro", "Gyroscope", "rate (rad/s)", m.Gyro},
		{"acc", "Accelerometer", "acceleration (m/s²)", m.Accel},
		{"mag", "Magnetometer", "field", m.Mag},
	}
	for _, ch := range channels {
		x, y, z := split(ch.c.Measured)
		if err := save(ch.name+".png", ch.title+" measured", ch.unit, []string{"x", "y", "z"}, x, y, z); err != nil {
			return nil, err
		}
		x, y, z = split(ch.c.Ideal)
		if err := save(ch.name+"_ideal.png", ch.title+" ideal", ch.unit, []string{"x", "y", "z"}, x, y, z); err != nil {
			return nil, err
		}
	}
	return paths, nil
}
