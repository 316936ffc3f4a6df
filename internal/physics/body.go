package physics

import (
	"fmt"

	"physics-sandbox/internal/geom"
	"physics-sandbox/internal/shape"
)

// PhysicalProperties are fixed when a body is built. Mass is always Area * Density.
type PhysicalProperties struct {
	Density     float32
	Mass        float32
	Restitution float32
	Area        float32
}

// Body is a 2D rigid body: one shape plus its class, velocities and physical properties.
// Bodies are owned by the calling loop and mutated in place by Step.
type Body struct {
	sh    shape.Shape
	cls   Class
	vel   geom.Vec2
	spin  float32 // rad/s, only applied to polygons
	props PhysicalProperties
}

// BodyDef describes a body declaratively, as read from a scene file. Shape is built by the
// caller since it is not a plain value.
type BodyDef struct {
	Shape            shape.Shape `yaml:"-"`
	Class            Class       `yaml:"class"`
	Density          float32     `yaml:"density"`
	Restitution      float32     `yaml:"restitution"`
	LinearVelocity   geom.Vec2   `yaml:"velocity"`
	RotationVelocity float32     `yaml:"rotation_velocity"`
}

// New validates the shape's area and density against limits and returns a body at rest.
// Restitution is clamped to [0, 1]. No body is returned on error.
func New(s shape.Shape, class Class, density, restitution float32, limits Limits) (*Body, error) {
	if s == nil {
		return nil, ErrNoShape
	}
	area := s.Area()
	restitution, err := limits.Validate(area, density, restitution)
	if err != nil {
		return nil, fmt.Errorf("%s body: %w", s.Kind(), err)
	}
	return &Body{
		sh:  s,
		cls: class,
		props: PhysicalProperties{
			Density:     density,
			Mass:        area * density,
			Restitution: restitution,
			Area:        area,
		},
	}, nil
}

// Build creates a body from def, then applies its initial velocities.
func (l Limits) Build(def BodyDef) (*Body, error) {
	b, err := New(def.Shape, def.Class, def.Density, def.Restitution, l)
	if err != nil {
		return nil, err
	}
	b.SetLinearVelocity(def.LinearVelocity)
	b.SetRotationVelocity(def.RotationVelocity)
	return b, nil
}

func (b *Body) Shape() shape.Shape             { return b.sh }
func (b *Body) Kind() shape.Kind               { return b.sh.Kind() }
func (b *Body) Class() Class                   { return b.cls }
func (b *Body) Position() geom.Vec2            { return b.sh.Position() }
func (b *Body) LinearVelocity() geom.Vec2      { return b.vel }
func (b *Body) RotationVelocity() float32      { return b.spin }
func (b *Body) Properties() PhysicalProperties { return b.props }
func (b *Body) Mass() float32                  { return b.props.Mass }
func (b *Body) Density() float32               { return b.props.Density }
func (b *Body) Restitution() float32           { return b.props.Restitution }
func (b *Body) Area() float32                  { return b.props.Area }
func (b *Body) Bounds() shape.Box              { return b.sh.Bounds() }
func (b *Body) MoveTo(p geom.Vec2)             { b.sh.MoveTo(p) }
func (b *Body) Offset(d geom.Vec2)             { b.sh.Offset(d) }
func (b *Body) String() string                 { return fmt.Sprintf("%s %v", b.cls, b.sh) }

// Radius is the circle radius, or 0 for polygons.
func (b *Body) Radius() float32 {
	if c, ok := b.sh.(*shape.Circle); ok {
		return c.Radius()
	}
	return 0
}

// Vertices returns the polygon's world vertices, or nil for circles.
func (b *Body) Vertices() []geom.Vec2 {
	if p, ok := b.sh.(*shape.Polygon); ok {
		return p.WorldVertices()
	}
	return nil
}

// Rotate turns a polygon about its centroid. Circles have no orientation.
func (b *Body) Rotate(rad float32) {
	if p, ok := b.sh.(*shape.Polygon); ok && rad != 0 {
		p.Rotate(rad)
	}
}

// SetLinearVelocity is ignored for static bodies.
func (b *Body) SetLinearVelocity(v geom.Vec2) {
	if b.cls == Static {
		return
	}
	b.vel = v
}

// SetRotationVelocity is ignored for static bodies.
func (b *Body) SetRotationVelocity(rad float32) {
	if b.cls == Static {
		return
	}
	b.spin = rad
}

// SetClass changes the body's class. Becoming static drops any velocity.
func (b *Body) SetClass(c Class) {
	b.cls = c
	if c == Static {
		b.vel = geom.Zero
		b.spin = 0
	}
}

// integrate advances position by velocity and, for polygons, orientation by spin.
func (b *Body) integrate(dt float32, gravity geom.Vec2) {
	if !b.cls.integrated() {
		return
	}
	if b.cls == Dynamic {
		b.vel = b.vel.Add(gravity.Scale(dt))
	}
	b.sh.Offset(b.vel.Scale(dt))
	b.Rotate(b.spin * dt)
}
