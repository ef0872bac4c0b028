package advanced

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vec is a position or velocity in the co-rotating frame, in units of the
// binary separation (and separation times orbital frequency for velocities).
// The primary sits at the origin and the secondary at (1, 0, 0).
type Vec struct {
	X float64
	Y float64
	Z float64
}

type Point = Vec

func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec) Scale(f float64) Vec {
	return Vec{f * v.X, f * v.Y, f * v.Z}
}

func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec) Cross(o Vec) Vec {
	return Vec{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X+v.Y+v.Z) && !math.IsInf(v.X+v.Y+v.Z, 0)
}

func (v Vec) String() string {
	return fmt.Sprintf("(%.6g, %.6g, %.6g)", v.X, v.Y, v.Z)
}

// Star selects one of the two components of the binary.
type Star int

const (
	Primary   Star = 1
	Secondary Star = 2
)

// Centre of the star in the co-rotating frame.
func (s Star) Centre() Vec {
	if s == Secondary {
		return Vec{X: 1}
	}
	return Vec{}
}

func (s Star) Other() Star {
	if s == Primary {
		return Secondary
	}
	return Primary
}

func (s Star) Valid() bool {
	return s == Primary || s == Secondary
}

func (s Star) String() string {
	switch s {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	}
	return fmt.Sprintf("Star(%d)", int(s))
}

// VelocityFrame selects how a co-rotating velocity is mapped for Doppler
// (velocity space) plots.
type VelocityFrame int

const (
	// Inertial velocity of the particle itself.
	Inertial VelocityFrame = 1
	// Velocity of a Keplerian disc around the primary at the particle's
	// position, also in the inertial frame.
	Disc VelocityFrame = 2
)

func (f VelocityFrame) Valid() bool {
	return f == Inertial || f == Disc
}

// Curve is an ordered sequence of points held as a 2xN matrix: row 0 holds
// the x values and row 1 the y values, so column i is the i-th point. Curves
// can be rotated by left multiplication with a 2x2 rotation matrix.
type Curve struct {
	m *mat.Dense
}

// NewCurve builds a curve from matching x and y slices. The slices are copied.
func NewCurve(x, y []float64) *Curve {
	if len(x) != len(y) {
		panic(fmt.Sprintf("curve: x and y lengths differ (%d != %d)", len(x), len(y)))
	}
	n := len(x)
	data := make([]float64, 2*n)
	copy(data[:n], x)
	copy(data[n:], y)
	return &Curve{m: mat.NewDense(2, n, data)}
}

func newCurveFromPoints(points []Vec) *Curve {
	n := len(points)
	data := make([]float64, 2*n)
	for i, p := range points {
		data[i] = p.X
		data[n+i] = p.Y
	}
	return &Curve{m: mat.NewDense(2, n, data)}
}

func (c *Curve) Len() int {
	_, n := c.m.Dims()
	return n
}

// At returns the i-th point, with Z = 0.
func (c *Curve) At(i int) Vec {
	return Vec{X: c.m.At(0, i), Y: c.m.At(1, i)}
}

func (c *Curve) Points() []Vec {
	points := make([]Vec, c.Len())
	for i := range points {
		points[i] = c.At(i)
	}
	return points
}

// X returns a copy of row 0.
func (c *Curve) X() []float64 {
	return mat.Row(nil, 0, c.m)
}

// Y returns a copy of row 1.
func (c *Curve) Y() []float64 {
	return mat.Row(nil, 1, c.m)
}

// Rotate returns a new curve rotated counterclockwise by angle radians about
// the origin.
func (c *Curve) Rotate(angle float64) *Curve {
	cos, sin := math.Cos(angle), math.Sin(angle)
	rotation := mat.NewDense(2, 2, []float64{
		cos, -sin,
		sin, cos,
	})
	var rotated mat.Dense
	rotated.Mul(rotation, c.m)
	return &Curve{m: &rotated}
}

// Map applies fn to every point, returning a new curve.
func (c *Curve) Map(fn func(Vec) Vec) *Curve {
	points := c.Points()
	for i, p := range points {
		points[i] = fn(p)
	}
	return newCurveFromPoints(points)
}

// Closed reports whether the first and last points coincide within tol.
func (c *Curve) Closed(tol float64) bool {
	n := c.Len()
	if n < 2 {
		return false
	}
	return c.At(0).Sub(c.At(n-1)).Norm() <= tol
}
