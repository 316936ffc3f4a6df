package geom

import (
	"math"

	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// Winding is the orientation of a closed vertex ring.
type Winding int

const (
	Degenerate Winding = iota
	CounterClockwise
	Clockwise
)

// convexEps is the tolerance for treating a cross product as zero when checking convexity.
const convexEps = 1e-6

// SignedArea returns the shoelace area of the ring; positive for counter-clockwise rings.
func SignedArea(points []Vec2) float32 {
	n := len(points)
	var sum float32
	for i := range n {
		j := (i + 1) % n
		sum += points[i].Cross(points[j])
	}
	return 0.5 * sum
}

// PolygonArea returns the absolute area enclosed by the ring.
func PolygonArea(points []Vec2) float32 {
	return math32.Abs(SignedArea(points))
}

// PolygonCentroid returns the area-weighted centroid of the ring. Rings without area
// fall back to the plain vertex average.
func PolygonCentroid(points []Vec2) Vec2 {
	n := len(points)
	if n == 0 {
		return Vec2{}
	}
	var c Vec2
	var area float32
	for i := range n {
		j := (i + 1) % n
		cross := points[i].Cross(points[j])
		c.X += (points[i].X + points[j].X) * cross
		c.Y += (points[i].Y + points[j].Y) * cross
		area += cross
	}
	if area == 0 {
		var sum Vec2
		for _, p := range points {
			sum = sum.Add(p)
		}
		return sum.Scale(1 / float32(n))
	}
	return c.Scale(1 / (3 * area))
}

// RingWinding reports the orientation of the ring from its signed area.
func RingWinding(points []Vec2) Winding {
	a := SignedArea(points)
	switch {
	case a > 0:
		return CounterClockwise
	case a < 0:
		return Clockwise
	default:
		return Degenerate
	}
}

// IsConvex reports whether the ring is strictly convex: at least 3 vertices, every turn
// in the same direction, no collinear or repeated vertices and no self-intersection.
func IsConvex(points []Vec2) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	var sign float32
	var turned float32
	for i := range n {
		a := points[i]
		b := points[(i+1)%n]
		c := points[(i+2)%n]
		e1 := b.Sub(a)
		e2 := c.Sub(b)
		cross := e1.Cross(e2)
		if math32.Abs(cross) <= convexEps {
			return false
		}
		if sign == 0 {
			sign = math32.Copysign(1, cross)
		} else if math32.Copysign(1, cross) != sign {
			return false
		}
		turned += math32.Atan2(cross, e1.Dot(e2))
	}
	// A simple convex ring turns exactly once; star shapes turn more.
	return math32.Abs(math32.Abs(turned)-2*math32.Pi) < 1e-3
}

// Reversed returns a copy of the ring in the opposite order.
func Reversed(points []Vec2) []Vec2 {
	out := make([]Vec2, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

// RectVertices returns the corners of a w x h rectangle centered on center and rotated by
// rotDeg degrees, in the order (-w/2,-h/2), (w/2,-h/2), (w/2,h/2), (-w/2,h/2) before rotation.
// The rotation is evaluated in float64 so right angles land on exact coordinates.
func RectVertices(center Vec2, w, h, rotDeg float32) [4]Vec2 {
	hw, hh := float64(w)/2, float64(h)/2
	rad := float64(rotDeg) * math.Pi / 180
	sin, cos := math.Sincos(rad)
	// Snap the sin/cos of multiples of 90 degrees so axis-aligned rectangles stay exact.
	sin, cos = snapUnit(sin), snapUnit(cos)
	corners := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var out [4]Vec2
	for i, c := range corners {
		x := c[0]*cos - c[1]*sin
		y := c[0]*sin + c[1]*cos
		out[i] = Vec2{float32(float64(center.X) + x), float32(float64(center.Y) + y)}
	}
	return out
}

// RegularPolygonVertices returns sides points on a circle of the given radius around the
// origin, counter-clockwise, starting at 90 degrees.
func RegularPolygonVertices(radius float32, sides int) []Vec2 {
	if sides < 3 {
		return nil
	}
	out := make([]Vec2, sides)
	step := 360.0 / float64(sides)
	for s := range sides {
		phi := (90 + float64(s)*step) * math.Pi / 180
		sin, cos := math.Sincos(phi)
		out[s] = Vec2{radius * float32(snapUnit(cos)), radius * float32(snapUnit(sin))}
	}
	return out
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 { return deg * math32.Pi / 180 }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float32) float32 { return rad * 180 / math32.Pi }

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func snapUnit(f float64) float64 {
	const eps = 1e-12
	switch {
	case math.Abs(f) < eps:
		return 0
	case math.Abs(f-1) < eps:
		return 1
	case math.Abs(f+1) < eps:
		return -1
	}
	return f
}
