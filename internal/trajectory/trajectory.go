// Package trajectory samples how one joint moves while a pose is blended
// into another, and plots the result.
package trajectory

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"skelpose/internal/mathutil"
	"skelpose/internal/skeleton"
)

// ErrSteps is returned when fewer than two samples are requested.
var ErrSteps = errors.New("trajectory needs at least two steps")

// Sample is the global transform of one joint at blend factor Alpha.
type Sample struct {
	Alpha       float64
	Position    mathutil.Vec3
	Orientation mathutil.Quat
}

// Run blends local pose a into b in steps evenly spaced alphas from 0 to 1
// and records the global transform of joint at each step.
func Run(a, b skeleton.Pose, parents skeleton.Parents, joint, steps int) ([]Sample, error) {
	if steps < 2 {
		return nil, errors.Wrapf(ErrSteps, "got %d", steps)
	}

	samples := make([]Sample, 0, steps)
	for i := 0; i < steps; i++ {
		alpha := float64(i) / float64(steps-1)
		blended, err := skeleton.Interpolate(a, b, alpha)
		if err != nil {
			return nil, err
		}
		global, err := skeleton.LocalToGlobal(blended, parents)
		if err != nil {
			return nil, err
		}
		j, err := global.At(joint)
		if err != nil {
			return nil, errors.Wrap(err, "trajectory joint")
		}
		samples = append(samples, Sample{Alpha: alpha, Position: j.Position, Orientation: j.Orientation})
	}
	return samples, nil
}

// PathLength is the length of the polyline through the sampled positions.
func PathLength(samples []Sample) float64 {
	var total float64
	for i := 1; i < len(samples); i++ {
		total += samples[i].Position.Sub(samples[i-1].Position).Len()
	}
	return total
}

// Plot builds a chart of the x, y and z position against alpha.
func Plot(samples []Sample, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "alpha"
	p.Y.Label.Text = "position"
	p.Add(plotter.NewGrid())

	for axis, name := range []string{"x", "y", "z"} {
		pts := make(plotter.XYs, len(samples))
		for i, s := range samples {
			pts[i].X = s.Alpha
			pts[i].Y = s.Position[axis]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("trajectory: %s line: %w", name, err)
		}
		line.Color = plotutil.Color(axis)
		line.Dashes = plotutil.Dashes(axis)
		p.Add(line)
		p.Legend.Add(name, line)
	}
	return p, nil
}

// Save renders the chart to path. The image format follows the extension
// (png, svg, pdf and the others gonum/plot supports).
func Save(samples []Sample, title, path string) error {
	p, err := Plot(samples, title)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("trajectory: save %s: %w", path, err)
	}
	return nil
}
