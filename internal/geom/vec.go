package geom

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec2 is a 2D vector in meters. Values are immutable; every operation returns a new vector.
type Vec2 struct {
	X, Y float32
}

var (
	Zero  = Vec2{}
	UnitX = Vec2{X: 1}
	UnitY = Vec2{Y: 1}
)

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Neg() Vec2            { return Vec2{-v.X, -v.Y} }
func (v Vec2) Dot(o Vec2) float32   { return v.X*o.X + v.Y*o.Y }

// Cross is the 2D perp-dot product (z component of the 3D cross product).
func (v Vec2) Cross(o Vec2) float32 { return v.X*o.Y - v.Y*o.X }

func (v Vec2) LenSq() float32 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float32   { return math32.Sqrt(v.LenSq()) }

// Normalize returns the unit vector in the direction of v. A zero-length vector
// normalizes to the zero vector, never to NaN.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// NormalizeOr is Normalize with an explicit result for the zero-length case.
func (v Vec2) NormalizeOr(fallback Vec2) Vec2 {
	l := v.Len()
	if l == 0 {
		return fallback
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp returns (y, -x): the components swapped and the second one negated.
// For a counter-clockwise edge p1->p2, (p2-p1).Perp() points out of the polygon.
func (v Vec2) Perp() Vec2 { return Vec2{v.Y, -v.X} }

// Rotate rotates v counter-clockwise by rad radians.
func (v Vec2) Rotate(rad float32) Vec2 {
	r := mgl32.Rotate2D(rad).Mul2x1(mgl32.Vec2{v.X, v.Y})
	return Vec2{r[0], r[1]}
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// UnmarshalYAML accepts the compact [x, y] form used in scene files.
func (v *Vec2) UnmarshalYAML(unmarshal func(any) error) error {
	var pair []float32
	if err := unmarshal(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("vector needs 2 components, got %d", len(pair))
	}
	v.X, v.Y = pair[0], pair[1]
	return nil
}

// MarshalYAML writes v in the same [x, y] form.
func (v Vec2) MarshalYAML() (any, error) {
	return []float32{v.X, v.Y}, nil
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
