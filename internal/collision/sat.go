package collision

import (
	"github.com/chewxy/math32"

	"physics-sandbox/internal/geom"
	"physics-sandbox/internal/shape"
)

// bucketsPerHalfTurn is the number of dedup buckets in 180 degrees (0.01 degree each).
// A direction and its negation are the same separating axis, hence the half turn.
const bucketsPerHalfTurn = 18000

// axis is a candidate separating axis. origin only matters to the trace.
type axis struct {
	origin geom.Vec2
	dir    geom.Vec2
}

// axisSet collects candidate axes, dropping any that are parallel to one already held.
type axisSet struct {
	axes    []axis
	buckets []int32
}

func (s *axisSet) add(origin, dir geom.Vec2) {
	if dir.LenSq() == 0 {
		return
	}
	b := bucket(dir)
	for _, seen := range s.buckets {
		if seen == b {
			return
		}
	}
	s.buckets = append(s.buckets, b)
	s.axes = append(s.axes, axis{origin: origin, dir: dir})
}

// addEdges adds the edge normals of p, anchored at the midpoints of ring, p's world
// vertices. When unit is false the normals keep the edge length, which saves a sqrt per axis.
func (s *axisSet) addEdges(p *shape.Polygon, ring []geom.Vec2, unit bool) {
	n := len(ring)
	for i, dir := range p.Normals() {
		if unit {
			dir = dir.Normalize()
		}
		s.add(ring[i].Add(ring[(i+1)%n]).Scale(0.5), dir)
	}
}

// bucket maps a direction to its angle in hundredths of a degree, modulo 180 degrees.
func bucket(dir geom.Vec2) int32 {
	deg := geom.RadToDeg(math32.Atan2(dir.Y, dir.X))
	if deg < 0 {
		deg += 360
	}
	return int32(math32.Round(deg*100)) % bucketsPerHalfTurn
}

// project returns the extent of the ring along dir.
func project(ring []geom.Vec2, dir geom.Vec2) (lo, hi float32) {
	if len(ring) < 2 {
		panic("collision: cannot project a polygon with fewer than 2 vertices")
	}
	lo = ring[0].Dot(dir)
	hi = lo
	for _, v := range ring[1:] {
		d := v.Dot(dir)
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return lo, hi
}

// overlap returns the penetration of [aLo, aHi] and [bLo, bHi], or false when they are
// separated or merely touching.
func overlap(aLo, aHi, bLo, bHi float32) (float32, bool) {
	if aLo >= bHi || bLo >= aHi {
		return 0, false
	}
	return math32.Min(bHi-aLo, aHi-bLo), true
}

// orient flips normal so it points along from -> to.
func orient(normal, from, to geom.Vec2) geom.Vec2 {
	if to.Sub(from).Dot(normal) < 0 {
		return normal.Neg()
	}
	return normal
}

// PolygonPolygon runs the separating axis test over the edge normals of both polygons.
// On an exact tie between two axes the one tested first wins.
func PolygonPolygon(a, b *shape.Polygon, tr *Trace) (Response, bool) {
	va := a.WorldVertices()
	vb := b.WorldVertices()

	var set axisSet
	set.addEdges(a, va, false)
	set.addEdges(b, vb, false)

	// Overlaps on an unnormalized axis are in units of |dir|, so axes are ranked by
	// d²/|dir|², the squared overlap in meters.
	bestSq := float32(math32.MaxFloat32)
	var depth float32
	var best geom.Vec2
	for _, ax := range set.axes {
		aLo, aHi := project(va, ax.dir)
		bLo, bHi := project(vb, ax.dir)
		d, ok := overlap(aLo, aHi, bLo, bHi)
		tr.record(ax.origin, ax.dir, !ok)
		if !ok {
			return Response{}, false
		}
		if sq := d * d / ax.dir.LenSq(); sq < bestSq {
			bestSq = sq
			depth = d
			best = ax.dir
		}
	}

	l := best.Len()
	if l == 0 {
		panic("collision: polygon pair produced no usable axis")
	}
	r := Response{
		Normal: orient(best.Scale(1/l), a.Position(), b.Position()),
		Depth:  depth / l,
	}
	tr.finish(r)
	return r, true
}

// CirclePolygon runs the separating axis test over the polygon's edge normals plus the
// axis from the circle center to the nearest polygon vertex.
func CirclePolygon(c *shape.Circle, p *shape.Polygon, tr *Trace) (Response, bool) {
	verts := p.WorldVertices()
	center := c.Position()
	radius := c.Radius()

	var set axisSet
	set.addEdges(p, verts, true)

	nearest := verts[0]
	for _, v := range verts[1:] {
		if v.Sub(center).LenSq() < nearest.Sub(center).LenSq() {
			nearest = v
		}
	}
	// Not deduplicated: it is the only axis that covers the curved side of the circle.
	// A center sitting exactly on the vertex has no direction and is skipped.
	if dir := nearest.Sub(center).Normalize(); dir.LenSq() > 0 {
		set.axes = append(set.axes, axis{origin: center, dir: dir})
	}

	depth := float32(math32.MaxFloat32)
	var best geom.Vec2
	for _, ax := range set.axes {
		proj := center.Dot(ax.dir)
		pLo, pHi := project(verts, ax.dir)
		d, ok := overlap(proj-radius, proj+radius, pLo, pHi)
		tr.record(ax.origin, ax.dir, !ok)
		if !ok {
			return Response{}, false
		}
		if d < depth {
			depth = d
			best = ax.dir
		}
	}

	r := Response{
		Normal: orient(best, center, p.Position()),
		Depth:  depth,
	}
	tr.finish(r)
	return r, true
}
