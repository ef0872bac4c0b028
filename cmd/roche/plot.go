package main

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/StuartLittlefair/trm-roche/advanced"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	primaryColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	secondaryColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	streamColor    = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

func curveXYs(curve *advanced.Curve) plotter.XYs {
	pts := make(plotter.XYs, 0, curve.Len())
	for _, p := range curve.Points() {
		pts = append(pts, plotter.XY{X: p.X, Y: p.Y})
	}
	return pts
}

// binaryCurves computes both lobes and the stream, in position or velocity
// space. The stream is omitted when nStream is 0.
func binaryCurves(q float64, n, nStream int, velocity bool, cfg advanced.StreamConfig) (lobe1, lobe2, stream *advanced.Curve, err error) {
	lobe := advanced.Lobe
	if velocity {
		lobe = advanced.VLobe
	}
	if lobe1, err = lobe(q, n, advanced.Primary); err != nil {
		return nil, nil, nil, err
	}
	if lobe2, err = lobe(q, n, advanced.Secondary); err != nil {
		return nil, nil, nil, err
	}
	if nStream < 2 {
		return lobe1, lobe2, nil, nil
	}
	traj, err := advanced.StreamWithConfig(q, nStream, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	if traj.Termination != advanced.Completed {
		log.Printf("stream %v after %d of %d points", traj.Termination, traj.Len(), nStream)
	}
	if velocity {
		stream, err = traj.Velocities(advanced.Inertial)
		if err != nil {
			return nil, nil, nil, err
		}
	} else {
		stream = traj.Positions()
	}
	return lobe1, lobe2, stream, nil
}

func plotBinary(path string, q float64, n, nStream int, velocity bool, cfg advanced.StreamConfig) error {
	lobe1, lobe2, stream, err := binaryCurves(q, n, nStream, velocity, cfg)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("q = %g", q)
	if velocity {
		p.X.Label.Text = "Vx"
		p.Y.Label.Text = "Vy"
	} else {
		p.X.Label.Text = "X"
		p.Y.Label.Text = "Y"
	}

	for _, c := range []struct {
		label string
		curve *advanced.Curve
		color color.Color
	}{
		{"primary", lobe1, primaryColor},
		{"secondary", lobe2, secondaryColor},
		{"stream", stream, streamColor},
	} {
		if c.curve == nil {
			continue
		}
		line, err := plotter.NewLine(curveXYs(c.curve))
		if err != nil {
			return err
		}
		line.Color = c.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(c.label, line)
	}

	points, err := lagrangePoints(q)
	if err != nil {
		return err
	}
	lpts := make(plotter.XYs, 0, len(points))
	for _, l := range points {
		if velocity {
			l = advanced.CorotationVelocity(q, l)
		}
		lpts = append(lpts, plotter.XY{X: l.X, Y: l.Y})
	}
	scatter, err := plotter.NewScatter(lpts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = color.Black
	p.Add(scatter)

	// Equal scales on both axes, so the lobes keep their shape.
	xmin, xmax, ymin, ymax := p.X.Min, p.X.Max, p.Y.Min, p.Y.Max
	half := math.Max(xmax-xmin, ymax-ymin) / 2
	xmid, ymid := (xmin+xmax)/2, (ymin+ymax)/2
	p.X.Min, p.X.Max = xmid-half, xmid+half
	p.Y.Min, p.Y.Max = ymid-half, ymid+half

	p.Legend.Top = true
	p.Legend.Left = false
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}

// drawBinary is the quick debugging counterpart of plotBinary.
func drawBinary(path string, q, scale float64, cfg advanced.StreamConfig) error {
	lobe1, lobe2, stream, err := binaryCurves(q, 200, 150, false, cfg)
	if err != nil {
		return err
	}
	if path != "" {
		return advanced.DrawPNG(path, scale, lobe1, lobe2, stream)
	}
	return advanced.ShowCurves(scale, lobe1, lobe2, stream)
}
