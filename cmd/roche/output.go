package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/StuartLittlefair/trm-roche/advanced"
)

func printCurve(out io.Writer, curve *advanced.Curve) error {
	w := bufio.NewWriter(out)
	for _, p := range curve.Points() {
		fmt.Fprintf(w, "%.10g %.10g\n", p.X, p.Y)
	}
	return w.Flush()
}

// lagrangePoints returns L1 to L5 in order.
func lagrangePoints(q float64) ([]advanced.Vec, error) {
	var points []advanced.Vec
	for _, xl := range []func(float64) (float64, error){advanced.XL1, advanced.XL2, advanced.XL3} {
		x, err := xl(q)
		if err != nil {
			return nil, err
		}
		points = append(points, advanced.Vec{X: x})
	}
	for _, l := range []func(float64) (advanced.Vec, error){advanced.L4, advanced.L5} {
		p, err := l(q)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func printLagrange(out io.Writer, q float64) error {
	points, err := lagrangePoints(q)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)
	for i, p := range points {
		fmt.Fprintf(w, "L%d %.10f %.10f\n", i+1, p.X, p.Y)
	}
	return w.Flush()
}

func printTurningPoint(out io.Writer, tp advanced.TurningPoint) error {
	kind := "maximum"
	if tp.Minimum {
		kind = "minimum"
	}
	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "turning point %d (%s)\n", tp.N, kind)
	fmt.Fprintf(w, "position   %.8f %.8f\n", tp.Position.X, tp.Position.Y)
	fmt.Fprintf(w, "radius     %.8f\n", tp.Radius)
	fmt.Fprintf(w, "time       %.8f\n", tp.Time)
	fmt.Fprintf(w, "distance   %.8f\n", tp.Distance)
	fmt.Fprintf(w, "stream v   %.8f %.8f\n", tp.Inertial.X, tp.Inertial.Y)
	fmt.Fprintf(w, "disc v     %.8f %.8f\n", tp.Disc.X, tp.Disc.Y)
	return w.Flush()
}
