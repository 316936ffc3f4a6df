package collision

import "physics-sandbox/internal/geom"

// AxisTest is one separating-axis test. Origin is where a debug layer would anchor the
// axis when drawing it (an edge midpoint, or a circle center).
type AxisTest struct {
	Origin geom.Vec2
	Axis   geom.Vec2 // unit length
	Gap    bool      // true when this axis separated the shapes
}

// Trace collects the diagnostics of a single collision test. Pass a *Trace to
// CollideTrace (or the pair functions) to fill it; it is reset at the start of
// CollideTrace and may be reused between calls.
type Trace struct {
	Axes     []AxisTest
	Collided bool
	Result   Response
}

func (t *Trace) reset() {
	if t == nil {
		return
	}
	t.Axes = t.Axes[:0]
	t.Collided = false
	t.Result = Response{}
}

// record stores one axis test; axis need not be unit length.
func (t *Trace) record(origin, axis geom.Vec2, gap bool) {
	if t == nil {
		return
	}
	t.Axes = append(t.Axes, AxisTest{Origin: origin, Axis: axis.Normalize(), Gap: gap})
}

func (t *Trace) finish(r Response) {
	if t == nil {
		return
	}
	t.Collided = true
	t.Result = r
}
