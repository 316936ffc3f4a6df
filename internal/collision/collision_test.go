package collision

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"physics-sandbox/internal/geom"
	"physics-sandbox/internal/shape"
)

func TestCircleCircle(t *testing.T) {
	tests := []struct {
		name      string
		b         geom.Vec2
		wantHit   bool
		wantDepth float32
		wantNorm  geom.Vec2
	}{
		{name: "far apart", b: geom.V(3, 0)},
		{name: "exactly touching", b: geom.V(2, 0)},
		{name: "one unit apart", b: geom.V(1, 0), wantHit: true, wantDepth: 1, wantNorm: geom.V(1, 0)},
		{name: "diagonal", b: geom.V(0.6, 0.8), wantHit: true, wantDepth: 1, wantNorm: geom.V(0.6, 0.8)},
		{name: "concentric", b: geom.V(0, 0), wantHit: true, wantDepth: 2, wantNorm: geom.UnitX},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustCircle(t, geom.Zero, 1)
			b := mustCircle(t, tt.b, 1)
			r, ok := Collide(a, b)
			if ok != tt.wantHit {
				t.Fatalf("collided: got %v want %v", ok, tt.wantHit)
			}
			if !ok {
				return
			}
			if !approxEqual(r.Depth, tt.wantDepth) {
				t.Fatalf("depth: got %v want %v", r.Depth, tt.wantDepth)
			}
			if !approxVec(r.Normal, tt.wantNorm) {
				t.Fatalf("normal: got %v want %v", r.Normal, tt.wantNorm)
			}
		})
	}
}

func TestAxisAlignedRectangles(t *testing.T) {
	a := mustRect(t, geom.Zero, 2, 2, 0)
	b := mustRect(t, geom.V(1, 0), 2, 2, 0)

	r, ok := Collide(a, b)
	if !ok {
		t.Fatal("expected overlapping rectangles to collide")
	}
	if !approxVec(r.Normal, geom.V(1, 0)) {
		t.Fatalf("normal: got %v want (1, 0)", r.Normal)
	}
	if !approxEqual(r.Depth, 1) {
		t.Fatalf("depth: got %v want 1", r.Depth)
	}

	// Touching edges are not a collision.
	c := mustRect(t, geom.V(2, 0), 2, 2, 0)
	if _, ok := Collide(a, c); ok {
		t.Fatal("rectangles sharing an edge must not collide")
	}
}

func TestRotatedPolygonPicksShallowestAxis(t *testing.T) {
	diamond := mustRect(t, geom.Zero, 2, 2, 45)
	box := mustRect(t, geom.V(2.2, 0), 2, 2, 0)

	r, ok := Collide(diamond, box)
	if !ok {
		t.Fatal("expected diamond and box to collide")
	}
	wantDepth := float32(math.Sqrt2) - 1.2
	if !approxEqual(r.Depth, wantDepth) {
		t.Fatalf("depth: got %v want %v", r.Depth, wantDepth)
	}
	if !approxVec(r.Normal, geom.V(1, 0)) {
		t.Fatalf("normal: got %v want (1, 0)", r.Normal)
	}
}

func TestLongEdgeDoesNotHideShallowAxis(t *testing.T) {
	// The tall box's vertical edges are 2.5 times longer than its horizontal ones, so its x
	// axis carries the larger unnormalized overlap even though x is the shallow direction.
	tall := mustRect(t, geom.Zero, 4, 10, 0)
	small := mustRect(t, geom.V(2.3, 5.1), 1, 1, 0)

	tests := []struct {
		name     string
		a, b     shape.Shape
		wantNorm geom.Vec2
	}{
		{name: "tall first", a: tall, b: small, wantNorm: geom.V(1, 0)},
		{name: "small first", a: small, b: tall, wantNorm: geom.V(-1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := Collide(tt.a, tt.b)
			if !ok {
				t.Fatal("expected the boxes to collide")
			}
			if !approxEqual(r.Depth, 0.2) {
				t.Fatalf("depth: got %v want 0.2", r.Depth)
			}
			if !approxVec(r.Normal, tt.wantNorm) {
				t.Fatalf("normal: got %v want %v", r.Normal, tt.wantNorm)
			}
		})
	}
}

func TestCirclePolygonEdge(t *testing.T) {
	box := mustRect(t, geom.Zero, 2, 2, 0)
	c := mustCircle(t, geom.V(0, 1.5), 1)

	r, ok := Collide(c, box)
	if !ok {
		t.Fatal("expected circle resting into the top edge to collide")
	}
	if !approxVec(r.Normal, geom.V(0, -1)) {
		t.Fatalf("normal: got %v want (0, -1)", r.Normal)
	}
	if !approxEqual(r.Depth, 0.5) {
		t.Fatalf("depth: got %v want 0.5", r.Depth)
	}

	r, ok = Collide(box, c)
	if !ok {
		t.Fatal("expected polygon against circle to collide")
	}
	if !approxVec(r.Normal, geom.V(0, 1)) {
		t.Fatalf("reversed normal: got %v want (0, 1)", r.Normal)
	}
}

func TestCircleNearCornerUsesVertexAxis(t *testing.T) {
	box := mustRect(t, geom.Zero, 2, 2, 0)

	// Inside the box's x and y slabs but outside the rounded corner region.
	c := mustCircle(t, geom.V(1.4, 1.4), 0.5)
	var tr Trace
	if _, ok := CollideTrace(c, box, &tr); ok {
		t.Fatal("circle beyond the corner must not collide")
	}
	last := tr.Axes[len(tr.Axes)-1]
	if !last.Gap {
		t.Fatal("the separating axis should be the last one recorded")
	}
	want := geom.V(-1, -1).Normalize()
	if !approxVec(last.Axis, want) {
		t.Fatalf("separating axis: got %v want %v", last.Axis, want)
	}

	// Move it in until it reaches the corner.
	c.MoveTo(geom.V(1.3, 1.3))
	r, ok := Collide(c, box)
	if !ok {
		t.Fatal("circle overlapping the corner must collide")
	}
	wantDepth := 0.5 - float32(0.3*math.Sqrt2)
	if !approxEqual(r.Depth, wantDepth) {
		t.Fatalf("depth: got %v want %v", r.Depth, wantDepth)
	}
	if !approxVec(r.Normal, want) {
		t.Fatalf("normal: got %v want %v", r.Normal, want)
	}
}

func TestCircleCenterOnVertex(t *testing.T) {
	box := mustRect(t, geom.Zero, 2, 2, 0)
	c := mustCircle(t, geom.V(1, 1), 0.5)

	r, ok := Collide(c, box)
	if !ok {
		t.Fatal("circle centred on a corner must collide")
	}
	if !r.Normal.IsFinite() || !approxEqual(r.Normal.Len(), 1) {
		t.Fatalf("normal must be a finite unit vector, got %v", r.Normal)
	}
	if !approxEqual(r.Depth, 0.5) {
		t.Fatalf("depth: got %v want 0.5", r.Depth)
	}
}

func TestSymmetry(t *testing.T) {
	tests := []struct {
		name string
		a, b func(t *testing.T) shape.Shape
	}{
		{
			name: "circle circle",
			a:    func(t *testing.T) shape.Shape { return mustCircle(t, geom.V(0.2, -0.1), 1) },
			b:    func(t *testing.T) shape.Shape { return mustCircle(t, geom.V(1.1, 0.7), 0.8) },
		},
		{
			name: "circle rotated box",
			a:    func(t *testing.T) shape.Shape { return mustCircle(t, geom.V(1.3, 0.4), 0.7) },
			b:    func(t *testing.T) shape.Shape { return mustRect(t, geom.Zero, 2, 1, 20) },
		},
		{
			name: "triangle hexagon",
			a:    func(t *testing.T) shape.Shape { return mustRegular(t, geom.Zero, 1, 3, 0) },
			b:    func(t *testing.T) shape.Shape { return mustRegular(t, geom.V(0.9, 0.7), 0.8, 6, 7) },
		},
		{
			name: "box rotated box",
			a:    func(t *testing.T) shape.Shape { return mustRect(t, geom.V(-0.3, 0.1), 3, 1, 0) },
			b:    func(t *testing.T) shape.Shape { return mustRect(t, geom.V(1.2, 0.9), 1, 2, 33) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := tt.a(t), tt.b(t)
			ab, ok1 := Collide(a, b)
			ba, ok2 := Collide(b, a)
			if !ok1 || !ok2 {
				t.Fatalf("expected both orders to collide: a->b %v, b->a %v", ok1, ok2)
			}
			if !approxEqual(ab.Depth, ba.Depth) {
				t.Fatalf("depth mismatch: a->b %v b->a %v", ab.Depth, ba.Depth)
			}
			if !approxVec(ab.Normal, ba.Normal.Neg()) {
				t.Fatalf("normal mismatch: a->b %v b->a %v", ab.Normal, ba.Normal)
			}
			if !approxEqual(ab.Normal.Len(), 1) {
				t.Fatalf("normal is not unit length: %v", ab.Normal)
			}
			dir := b.Position().Sub(a.Position())
			if dir.Dot(ab.Normal) < 0 {
				t.Fatalf("normal %v does not point from a to b (%v)", ab.Normal, dir)
			}
		})
	}
}

func TestSymmetryOverRandomPairs(t *testing.T) {
	// Axes within 0.01 degrees of each other share a bucket, and which one is kept depends
	// on argument order, so depths may differ by that much rotation of the extents.
	const depthTol = 1e-2
	rng := rand.New(rand.NewPCG(1, 2))
	hits := 0
	for i := range 5000 {
		a := randomShape(t, rng, geom.Zero)
		b := randomShape(t, rng, geom.V(rng.Float32()*6-3, rng.Float32()*6-3))
		ab, ok1 := Collide(a, b)
		ba, ok2 := Collide(b, a)
		if ok1 != ok2 {
			// Only a pair touching to within the tolerance may disagree.
			if max(ab.Depth, ba.Depth) > depthTol {
				t.Fatalf("pair %d (%v, %v): a->b %v %+v, b->a %v %+v", i, a, b, ok1, ab, ok2, ba)
			}
			continue
		}
		if !ok1 {
			continue
		}
		hits++
		if d := ab.Depth - ba.Depth; d > depthTol || d < -depthTol {
			t.Fatalf("pair %d (%v, %v): depth a->b %v b->a %v", i, a, b, ab.Depth, ba.Depth)
		}
		if !approxEqual(ab.Normal.Len(), 1) || !approxEqual(ba.Normal.Len(), 1) {
			t.Fatalf("pair %d: normals not unit length: %v %v", i, ab.Normal, ba.Normal)
		}
		if b.Position().Sub(a.Position()).Dot(ab.Normal) < -1e-4 {
			t.Fatalf("pair %d: normal %v does not point from a to b", i, ab.Normal)
		}
	}
	if hits < 500 {
		t.Fatalf("only %d of the random pairs collided", hits)
	}
}

func randomShape(t *testing.T, rng *rand.Rand, c geom.Vec2) shape.Shape {
	t.Helper()
	between := func(lo, hi float32) float32 { return lo + rng.Float32()*(hi-lo) }
	switch rng.IntN(3) {
	case 0:
		return mustCircle(t, c, between(0.2, 2))
	case 1:
		return mustRect(t, c, between(0.2, 5), between(0.2, 5), between(0, 360))
	default:
		return mustRegular(t, c, between(0.3, 2), 3+rng.IntN(6), between(0, 360))
	}
}

func TestDisjointStaysDisjoint(t *testing.T) {
	a := mustRegular(t, geom.Zero, 1, 5, 0)
	b := mustCircle(t, geom.V(5, 5), 1)
	before := a.WorldVertices()
	for range 10 {
		if _, ok := Collide(a, b); ok {
			t.Fatal("disjoint shapes collided")
		}
	}
	after := a.WorldVertices()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("vertex %d mutated: %v -> %v", i, before[i], after[i])
		}
	}
	if b.Position() != geom.V(5, 5) {
		t.Fatalf("circle moved: %v", b.Position())
	}
}

func TestTraceRecordsAxes(t *testing.T) {
	a := mustRect(t, geom.Zero, 2, 2, 0)
	b := mustRect(t, geom.V(1, 0.5), 2, 2, 0)

	var tr Trace
	r, ok := CollideTrace(a, b, &tr)
	if !ok || !tr.Collided {
		t.Fatal("expected a collision in the trace")
	}
	// Both boxes share the same two axis directions.
	if len(tr.Axes) != 2 {
		t.Fatalf("axis count: got %d want 2", len(tr.Axes))
	}
	for i, ax := range tr.Axes {
		if ax.Gap {
			t.Fatalf("axis %d reported a gap on a colliding pair", i)
		}
		if !approxEqual(ax.Axis.Len(), 1) {
			t.Fatalf("axis %d is not unit length: %v", i, ax.Axis)
		}
	}
	if tr.Result != r {
		t.Fatalf("trace result: got %+v want %+v", tr.Result, r)
	}

	diamond := mustRect(t, geom.V(10, 0), 2, 2, 45)
	if _, ok := CollideTrace(a, diamond, &tr); ok {
		t.Fatal("distant diamond collided")
	}
	if tr.Collided {
		t.Fatal("trace was not reset between calls")
	}
	if n := len(tr.Axes); n == 0 || !tr.Axes[n-1].Gap {
		t.Fatalf("expected the last recorded axis to separate, got %+v", tr.Axes)
	}
}

func TestBucketDeduplicatesParallelAxes(t *testing.T) {
	if bucket(geom.V(0, 2)) != bucket(geom.V(0, -5)) {
		t.Fatal("opposite vertical axes must share a bucket")
	}
	if bucket(geom.V(1, 0)) != bucket(geom.V(-3, 0)) {
		t.Fatal("opposite horizontal axes must share a bucket")
	}
	if bucket(geom.V(1, 1)) == bucket(geom.V(1, 0)) {
		t.Fatal("45 and 0 degree axes must not share a bucket")
	}

	var set axisSet
	hex := mustRegular(t, geom.Zero, 1, 6, 0)
	set.addEdges(hex, hex.WorldVertices(), false)
	if len(set.axes) != 3 {
		t.Fatalf("hexagon axes: got %d want 3", len(set.axes))
	}
}

func TestProjectPanicsOnDegenerateRing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a single point ring")
		}
	}()
	project([]geom.Vec2{geom.V(1, 1)}, geom.UnitX)
}

func TestCollideIsSafeForConcurrentPairs(t *testing.T) {
	shapes := []shape.Shape{
		mustCircle(t, geom.Zero, 1),
		mustRect(t, geom.V(1, 0), 2, 2, 15),
		mustRegular(t, geom.V(0, 1), 1, 5, 0),
		mustCircle(t, geom.V(-1, 0.5), 0.7),
	}
	want := make(map[[2]int]Response)
	for i := range shapes {
		for j := i + 1; j < len(shapes); j++ {
			if r, ok := Collide(shapes[i], shapes[j]); ok {
				want[[2]int{i, j}] = r
			}
		}
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	got := make(map[[2]int]Response)
	for i := range shapes {
		for j := i + 1; j < len(shapes); j++ {
			wg.Add(1)
			go func(i, j int) {
				defer wg.Done()
				if r, ok := Collide(shapes[i], shapes[j]); ok {
					mu.Lock()
					got[[2]int{i, j}] = r
					mu.Unlock()
				}
			}(i, j)
		}
	}
	wg.Wait()

	if len(got) != len(want) {
		t.Fatalf("pair count mismatch: got %d want %d", len(got), len(want))
	}
	for k, w := range want {
		if got[k] != w {
			t.Fatalf("pair %v: got %+v want %+v", k, got[k], w)
		}
	}
}

func mustCircle(t *testing.T, c geom.Vec2, r float32) *shape.Circle {
	t.Helper()
	s, err := shape.NewCircle(c, r)
	if err != nil {
		t.Fatalf("NewCircle: %v", err)
	}
	return s
}

func mustRect(t *testing.T, c geom.Vec2, w, h, rot float32) *shape.Polygon {
	t.Helper()
	s, err := shape.NewRect(c, w, h, rot)
	if err != nil {
		t.Fatalf("NewRect: %v", err)
	}
	return s
}

func mustRegular(t *testing.T, c geom.Vec2, r float32, sides int, rot float32) *shape.Polygon {
	t.Helper()
	s, err := shape.NewRegularPolygon(c, r, sides, rot)
	if err != nil {
		t.Fatalf("NewRegularPolygon: %v", err)
	}
	return s
}

func approxVec(a, b geom.Vec2) bool {
	return approxEqual(a.X, b.X) && approxEqual(a.Y, b.Y)
}

func approxEqual(a, b float32) bool {
	const eps = 1e-4
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
