// Package collision is the narrow phase: for a pair of shapes it reports whether they
// overlap and, if they do, the minimum translation that separates them.
//
// Every function here is a pure function of its inputs. Nothing is cached between calls
// and the shapes are never mutated, so disjoint pairs may be tested concurrently.
package collision

import (
	"fmt"

	"physics-sandbox/internal/geom"
	"physics-sandbox/internal/shape"
)

// Response is the minimum translation vector of an overlapping pair. Normal is unit length
// and points from the first shape towards the second; Depth is the distance either shape
// has to travel along Normal to end up just touching the other.
type Response struct {
	Normal geom.Vec2
	Depth  float32
}

// Collide tests a against b. Touching shapes (zero penetration) do not collide.
func Collide(a, b shape.Shape) (Response, bool) {
	return CollideTrace(a, b, nil)
}

// CollideTrace is Collide that also records every separating-axis test into tr.
// A nil tr records nothing.
func CollideTrace(a, b shape.Shape, tr *Trace) (Response, bool) {
	tr.reset()
	switch a := a.(type) {
	case *shape.Circle:
		switch b := b.(type) {
		case *shape.Circle:
			return CircleCircle(a, b, tr)
		case *shape.Polygon:
			return CirclePolygon(a, b, tr)
		}
	case *shape.Polygon:
		switch b := b.(type) {
		case *shape.Circle:
			return PolygonCircle(a, b, tr)
		case *shape.Polygon:
			return PolygonPolygon(a, b, tr)
		}
	}
	panic(fmt.Sprintf("collision: unsupported shape pair %T / %T", a, b))
}

// CircleCircle tests two circles. Concentric circles have no defined normal; they report
// geom.UnitX so that no NaN reaches the resolver.
func CircleCircle(a, b *shape.Circle, tr *Trace) (Response, bool) {
	delta := b.Position().Sub(a.Position())
	distance := delta.Len()
	radii := a.Radius() + b.Radius()
	normal := delta.NormalizeOr(geom.UnitX)

	gap := distance >= radii
	tr.record(a.Position(), normal, gap)
	if gap {
		return Response{}, false
	}
	r := Response{Normal: normal, Depth: radii - distance}
	tr.finish(r)
	return r, true
}

// PolygonCircle tests a polygon against a circle by running the circle case with the
// arguments swapped and flipping the normal back.
func PolygonCircle(p *shape.Polygon, c *shape.Circle, tr *Trace) (Response, bool) {
	r, ok := CirclePolygon(c, p, tr)
	if !ok {
		return Response{}, false
	}
	r.Normal = r.Normal.Neg()
	tr.finish(r)
	return r, true
}
