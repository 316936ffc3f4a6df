package physics

import (
	"fmt"
	"strings"

	"physics-sandbox/internal/collision"
	"physics-sandbox/internal/geom"
)

// ResolveMode selects how positional corrections of one step are applied.
type ResolveMode int

const (
	// ResolveSequential corrects each colliding pair as soon as it is found, in pair
	// enumeration order. A body touching two others sees the second test run against its
	// already corrected position, so the result depends on body order.
	ResolveSequential ResolveMode = iota
	// ResolveAccumulated detects every pair against the integrated positions first, sums
	// the corrections per body, and applies them once. The result does not depend on order.
	ResolveAccumulated
)

func (m ResolveMode) String() string {
	if m == ResolveAccumulated {
		return "accumulated"
	}
	return "sequential"
}

// ParseResolveMode maps "sequential" or "accumulated" (any case) to a mode.
func ParseResolveMode(s string) (ResolveMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sequential", "":
		return ResolveSequential, nil
	case "accumulated":
		return ResolveAccumulated, nil
	}
	return 0, fmt.Errorf("unknown resolve mode %q", s)
}

func (m *ResolveMode) UnmarshalText(text []byte) error {
	v, err := ParseResolveMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m ResolveMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Options configure a single Step. The zero value is the sequential resolver with no
// gravity and no tracing.
type Options struct {
	ResolveMode ResolveMode
	// Gravity is added to the velocity of dynamic bodies before they are moved.
	Gravity geom.Vec2
	// Trace keeps the separating-axis tests of every contact for the debug overlay.
	Trace bool
}

// Contact is one colliding pair found during a step. A and B index the bodies slice
// passed to Step, with A < B, and Normal points from A to B.
type Contact struct {
	A, B int
	collision.Response
	Axes []collision.AxisTest
}

// Step advances every non-static body by dt, then tests all body pairs and pushes
// overlapping ones apart along the contact normal:
//
//	dynamic vs dynamic: each moves half the depth
//	dynamic vs static or kinematic: the dynamic body moves the full depth
//	anything else: detected and reported, but nothing moves
//
// Velocities are left untouched by resolution.
func Step(bodies []*Body, dt float32, opts Options) []Contact {
	for _, b := range bodies {
		b.integrate(dt, opts.Gravity)
	}
	if opts.ResolveMode == ResolveAccumulated {
		return resolveAccumulated(bodies, opts.Trace)
	}
	return resolveSequential(bodies, opts.Trace)
}

func resolveSequential(bodies []*Body, trace bool) []Contact {
	var contacts []Contact
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			c, ok := detect(bodies, i, j, trace)
			if !ok {
				continue
			}
			da, db := correction(bodies[i], bodies[j], c.Response)
			bodies[i].Offset(da)
			bodies[j].Offset(db)
			contacts = append(contacts, c)
		}
	}
	return contacts
}

func resolveAccumulated(bodies []*Body, trace bool) []Contact {
	var contacts []Contact
	sum := make([]geom.Vec2, len(bodies))
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			c, ok := detect(bodies, i, j, trace)
			if !ok {
				continue
			}
			da, db := correction(bodies[i], bodies[j], c.Response)
			sum[i] = sum[i].Add(da)
			sum[j] = sum[j].Add(db)
			contacts = append(contacts, c)
		}
	}
	for i, d := range sum {
		if d != geom.Zero {
			bodies[i].Offset(d)
		}
	}
	return contacts
}

func detect(bodies []*Body, i, j int, trace bool) (Contact, bool) {
	a, b := bodies[i].sh, bodies[j].sh
	if !trace {
		r, ok := collision.Collide(a, b)
		return Contact{A: i, B: j, Response: r}, ok
	}
	var tr collision.Trace
	r, ok := collision.CollideTrace(a, b, &tr)
	return Contact{A: i, B: j, Response: r, Axes: tr.Axes}, ok
}

// correction returns how far a and b have to move to stop overlapping.
func correction(a, b *Body, r collision.Response) (da, db geom.Vec2) {
	push := r.Normal.Scale(r.Depth)
	switch ma, mb := a.cls.movable(), b.cls.movable(); {
	case ma && mb:
		half := push.Scale(0.5)
		return half.Neg(), half
	case ma:
		return push.Neg(), geom.Zero
	case mb:
		return geom.Zero, push
	}
	return geom.Zero, geom.Zero
}
