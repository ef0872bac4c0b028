package advanced

import (
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
)

// This is for debugging purposes only. For publication quality plots use the
// plot command of cmd/roche.

const dbgDrawPadding = 20

// Line colours, cycled through in the order the curves are given.
var dbgDrawColors = [][3]float64{
	{0, 1, 1},
	{1, 0.5, 0},
	{0.5, 1, 0},
	{1, 0, 1},
}

func renderCurves(scale float64, curves []*Curve) (*gg.Context, error) {
	if len(curves) == 0 {
		return nil, invalidf("draw: no curves")
	}
	var minX, minY, maxX, maxY float64
	minX = math.Inf(1)
	minY = math.Inf(1)
	maxX = math.Inf(-1)
	maxY = math.Inf(-1)
	for _, curve := range curves {
		for _, p := range curve.Points() {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if !isFinite(maxX-minX) || !isFinite(maxY-minY) {
		return nil, invalidf("draw: curves have non-finite extent")
	}

	// Set up the context
	width := int(scale*(maxX-minX)) + dbgDrawPadding*2
	height := int(scale*(maxY-minY)) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)

	// Translate for padding
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	// Scale
	c.Scale(scale, scale)
	// Translate to min
	c.Translate(-minX, -minY)

	c.SetLineWidth(2)
	for i, curve := range curves {
		points := curve.Points()
		c.MoveTo(points[0].X, points[0].Y)
		for _, p := range points[1:] {
			c.LineTo(p.X, p.Y)
		}
		rgb := dbgDrawColors[i%len(dbgDrawColors)]
		c.SetRGB(rgb[0], rgb[1], rgb[2])
		c.Stroke()
	}
	return c, nil
}

// DrawPNG renders the curves, scale pixels per unit separation, to a PNG
// file.
func DrawPNG(path string, scale float64, curves ...*Curve) error {
	c, err := renderCurves(scale, curves)
	if err != nil {
		return err
	}
	return errors.Wrapf(c.SavePNG(path), "draw: saving %s", path)
}

// ShowCurves draws the curves straight into the terminal (iTerm only).
func ShowCurves(scale float64, curves ...*Curve) error {
	path := filepath.Join(os.TempDir(), "roche_curves.png")
	if err := DrawPNG(path, scale, curves...); err != nil {
		return err
	}
	return imgcat.CatFile(path, os.Stdout)
}
