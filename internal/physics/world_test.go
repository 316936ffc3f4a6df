package physics

import (
	"testing"

	"github.com/chewxy/math32"

	"physics-sandbox/internal/geom"
	"physics-sandbox/internal/shape"
)

func TestWorldStepRecordsContacts(t *testing.T) {
	w := NewWorld(Options{}, nil)
	ball := mustBody(t, mustCircle(t, geom.Zero, 1), Dynamic)
	ball.SetLinearVelocity(geom.V(1, 0))
	wall := mustBody(t, mustRect(t, geom.V(2.5, 0), 2, 2), Static)

	if i := w.Add(ball); i != 0 {
		t.Fatalf("first index: got %d want 0", i)
	}
	if i := w.Add(wall); i != 1 {
		t.Fatalf("second index: got %d want 1", i)
	}

	w.Step(1)
	contacts := w.Contacts()
	if len(contacts) != 1 {
		t.Fatalf("contacts: got %d want 1", len(contacts))
	}
	c := contacts[0]
	if c.A != 0 || c.B != 1 || !approxVec(c.Normal, geom.UnitX) || !approxEqual(c.Depth, 0.5) {
		t.Fatalf("contact: got %+v", c)
	}
	if p := ball.Position(); !approxVec(p, geom.V(0.5, 0)) {
		t.Fatalf("ball: got %v want (0.5, 0)", p)
	}
	if p := wall.Position(); p != geom.V(2.5, 0) {
		t.Fatalf("wall moved to %v", p)
	}
}

func TestWorldRemove(t *testing.T) {
	w := NewWorld(Options{}, nil)
	a := mustBody(t, mustCircle(t, geom.Zero, 1), Dynamic)
	b := mustBody(t, mustCircle(t, geom.V(1, 0), 1), Dynamic)
	c := mustBody(t, mustCircle(t, geom.V(10, 0), 1), Dynamic)
	w.Add(a)
	w.Add(b)
	w.Add(c)
	w.Step(0)
	if len(w.Contacts()) == 0 {
		t.Fatal("expected a contact before removal")
	}

	if !w.Remove(b) {
		t.Fatal("Remove(b) reported false")
	}
	if w.Remove(b) {
		t.Fatal("removed b twice")
	}
	if w.Len() != 2 || w.Bodies()[0] != a || w.Bodies()[1] != c {
		t.Fatalf("order not kept: %v", w.Bodies())
	}
	if w.Contacts() != nil {
		t.Fatal("contacts should be dropped after a removal")
	}
}

func TestWorldOptions(t *testing.T) {
	w := NewWorld(Options{ResolveMode: ResolveAccumulated}, nil)
	w.SetGravity(geom.V(0, -9.8))
	if o := w.Options(); o.ResolveMode != ResolveAccumulated || o.Gravity != geom.V(0, -9.8) {
		t.Fatalf("options: got %+v", o)
	}
	w.SetOptions(Options{Trace: true})
	if o := w.Options(); !o.Trace || o.Gravity != geom.Zero {
		t.Fatalf("options after SetOptions: got %+v", o)
	}
}

func TestSnapshot(t *testing.T) {
	w := NewWorld(Options{}, nil)
	ball := mustBody(t, mustCircle(t, geom.V(1, 2), 1), Dynamic)
	ball.SetLinearVelocity(geom.V(3, 0))
	box := mustBody(t, mustRect(t, geom.V(-4, 0), 2, 4), Kinematic)
	box.SetRotationVelocity(0.5)
	w.Add(ball)
	w.Add(box)

	states := w.Snapshot()
	if len(states) != 2 {
		t.Fatalf("states: got %d want 2", len(states))
	}

	s := states[0]
	if s.Kind != shape.KindCircle || s.Class != Dynamic || s.Position != geom.V(1, 2) {
		t.Fatalf("ball state: got %+v", s)
	}
	if s.Radius != 1 || s.Vertices != nil || s.LinearVelocity != geom.V(3, 0) {
		t.Fatalf("ball state: got %+v", s)
	}
	if !approxEqual(s.Mass, math32.Pi) || !approxEqual(s.Area, math32.Pi) || s.Density != 1 || s.Restitution != 0.5 {
		t.Fatalf("ball properties: got %+v", s)
	}

	s = states[1]
	if s.Kind != shape.KindPolygon || s.Class != Kinematic || s.RotationVelocity != 0.5 {
		t.Fatalf("box state: got %+v", s)
	}
	if s.Radius != 0 || len(s.Vertices) != 4 || !approxEqual(s.Mass, 8) {
		t.Fatalf("box state: got %+v", s)
	}
	if s.Bounds.Min != geom.V(-5, -2) || s.Bounds.Max != geom.V(-3, 2) {
		t.Fatalf("box bounds: got %+v", s.Bounds)
	}

	// States are copies: editing one leaves the body alone.
	states[1].Vertices[0] = geom.V(100, 100)
	if v := box.Vertices()[0]; v == geom.V(100, 100) {
		t.Fatal("snapshot shares vertex storage with the body")
	}
}
