package shape

import (
	"fmt"

	"github.com/chewxy/math32"

	"physics-sandbox/internal/geom"
)

// Polygon is a convex polygon. Vertices are stored relative to the centroid in
// counter-clockwise order; rotation is baked into them rather than kept as an angle.
type Polygon struct {
	centroid geom.Vec2
	vertices []geom.Vec2
}

// NewPolygon builds a polygon from world-space points. The ring must be strictly convex;
// clockwise rings are reversed so every polygon shares the same winding.
func NewPolygon(points []geom.Vec2) (*Polygon, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("%w (%d given)", ErrTooFewPoints, len(points))
	}
	for i, p := range points {
		if !p.IsFinite() {
			return nil, fmt.Errorf("%w: vertex %d is %v", ErrNonFinite, i, p)
		}
	}
	if !geom.IsConvex(points) {
		return nil, ErrNotConvex
	}
	ring := points
	if geom.RingWinding(points) == geom.Clockwise {
		ring = geom.Reversed(points)
	}
	return fromRing(ring, geom.PolygonCentroid(ring)), nil
}

// NewRect builds a w x h rectangle centered on center, rotated by rotDeg degrees.
func NewRect(center geom.Vec2, w, h, rotDeg float32) (*Polygon, error) {
	if !positive(w) || !positive(h) {
		return nil, fmt.Errorf("%w (%g x %g requested)", ErrBadDimensions, w, h)
	}
	if !center.IsFinite() {
		return nil, fmt.Errorf("%w: center %v", ErrNonFinite, center)
	}
	corners := geom.RectVertices(center, w, h, rotDeg)
	return fromRing(corners[:], center), nil
}

// NewRegularPolygon builds a regular polygon with sides vertices on a circle of the given
// radius, the first vertex pointing straight up before rotDeg is applied.
func NewRegularPolygon(center geom.Vec2, radius float32, sides int, rotDeg float32) (*Polygon, error) {
	if sides < 3 {
		return nil, fmt.Errorf("%w (%d sides requested)", ErrTooFewPoints, sides)
	}
	if !positive(radius) {
		return nil, fmt.Errorf("%w (radius %g requested)", ErrBadDimensions, radius)
	}
	if !center.IsFinite() {
		return nil, fmt.Errorf("%w: center %v", ErrNonFinite, center)
	}
	p := &Polygon{centroid: center, vertices: geom.RegularPolygonVertices(radius, sides)}
	if rotDeg != 0 {
		p.Rotate(geom.DegToRad(rotDeg))
	}
	return p, nil
}

func fromRing(ring []geom.Vec2, centroid geom.Vec2) *Polygon {
	rel := make([]geom.Vec2, len(ring))
	for i, v := range ring {
		rel[i] = v.Sub(centroid)
	}
	return &Polygon{centroid: centroid, vertices: rel}
}

func (p *Polygon) Kind() Kind          { return KindPolygon }
func (p *Polygon) Position() geom.Vec2 { return p.centroid }
func (p *Polygon) MoveTo(c geom.Vec2)  { p.centroid = c }
func (p *Polygon) Offset(d geom.Vec2)  { p.centroid = p.centroid.Add(d) }
func (p *Polygon) Area() float32       { return geom.PolygonArea(p.vertices) }
func (p *Polygon) Len() int            { return len(p.vertices) }

// Vertices returns a copy of the centroid-relative vertices.
func (p *Polygon) Vertices() []geom.Vec2 {
	out := make([]geom.Vec2, len(p.vertices))
	copy(out, p.vertices)
	return out
}

// WorldVertices returns the vertices translated to world space. It is recomputed from the
// current centroid and rotation on every call.
func (p *Polygon) WorldVertices() []geom.Vec2 {
	return p.AppendWorldVertices(make([]geom.Vec2, 0, len(p.vertices)))
}

// AppendWorldVertices appends the world-space vertices to dst and returns the result.
func (p *Polygon) AppendWorldVertices(dst []geom.Vec2) []geom.Vec2 {
	for _, v := range p.vertices {
		dst = append(dst, v.Add(p.centroid))
	}
	return dst
}

// Normals returns the outward edge normals, one per edge i -> i+1, not normalized.
func (p *Polygon) Normals() []geom.Vec2 {
	n := len(p.vertices)
	out := make([]geom.Vec2, n)
	for i := range n {
		out[i] = p.vertices[(i+1)%n].Sub(p.vertices[i]).Perp()
	}
	return out
}

// Rotate turns the polygon counter-clockwise about its centroid. Repeated calls compose,
// so rounding error accumulates over long runs.
func (p *Polygon) Rotate(rad float32) {
	if rad == 0 {
		return
	}
	for i, v := range p.vertices {
		p.vertices[i] = v.Rotate(rad)
	}
}

func (p *Polygon) Bounds() Box {
	lo := geom.V(math32.MaxFloat32, math32.MaxFloat32)
	hi := geom.V(-math32.MaxFloat32, -math32.MaxFloat32)
	for _, v := range p.vertices {
		w := v.Add(p.centroid)
		lo = geom.V(math32.Min(lo.X, w.X), math32.Min(lo.Y, w.Y))
		hi = geom.V(math32.Max(hi.X, w.X), math32.Max(hi.Y, w.Y))
	}
	return Box{Min: lo, Max: hi}
}

func (p *Polygon) String() string {
	return fmt.Sprintf("polygon n=%d at %v", len(p.vertices), p.centroid)
}

func positive(f float32) bool {
	return f > 0 && !math32.IsInf(f, 0)
}
