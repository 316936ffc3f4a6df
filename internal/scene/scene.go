// Package scene reads sandbox scene files: YAML documents listing the bodies to spawn.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"physics-sandbox/internal/geom"
	"physics-sandbox/internal/physics"
	"physics-sandbox/internal/shape"
)

// DefaultDensity is used for entries that leave density out (water, in g/cm³).
const DefaultDensity = 1

var ErrUnknownShape = errors.New("unknown shape")

// File is one scene document.
type File struct {
	Name    string    `yaml:"name,omitempty"`
	DT      float32   `yaml:"dt,omitempty"`
	Gravity geom.Vec2 `yaml:"gravity,omitempty"`
	Bodies  []Entry   `yaml:"bodies"`
}

// Entry is one body in a scene file. Which geometry fields matter depends on Shape:
//
//	circle:  radius
//	rect:    width, height, rotation
//	regular: radius, sides, rotation
//	polygon: points (relative to position), rotation
//
// Rotation is in degrees and ignored for circles.
type Entry struct {
	Shape    string      `yaml:"shape"`
	Position geom.Vec2   `yaml:"position,omitempty"`
	Radius   float32     `yaml:"radius,omitempty"`
	Width    float32     `yaml:"width,omitempty"`
	Height   float32     `yaml:"height,omitempty"`
	Rotation float32     `yaml:"rotation,omitempty"`
	Sides    int         `yaml:"sides,omitempty"`
	Points   []geom.Vec2 `yaml:"points,omitempty"`

	physics.BodyDef `yaml:",inline"`
}

// UnmarshalYAML fills in defaults for keys the entry leaves out.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	type plain Entry
	p := plain{BodyDef: physics.BodyDef{Density: DefaultDensity}}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*e = Entry(p)
	return nil
}

// Load reads and parses the scene file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a scene document. Unknown top-level keys are an error.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Marshal encodes f back to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// Build turns every entry into a body validated against limits. Entries that fail are
// skipped; the returned error joins one error per failed entry, naming its index.
func Build(f *File, limits physics.Limits) ([]*physics.Body, error) {
	bodies := make([]*physics.Body, 0, len(f.Bodies))
	var errs []error
	for i, e := range f.Bodies {
		b, err := e.Build(limits)
		if err != nil {
			errs = append(errs, fmt.Errorf("body %d (%s): %w", i, e.Shape, err))
			continue
		}
		bodies = append(bodies, b)
	}
	return bodies, errors.Join(errs...)
}

// Build creates the entry's body.
func (e Entry) Build(limits physics.Limits) (*physics.Body, error) {
	s, err := e.NewShape()
	if err != nil {
		return nil, err
	}
	def := e.BodyDef
	def.Shape = s
	return limits.Build(def)
}

// NewShape creates the entry's shape in world space.
func (e Entry) NewShape() (shape.Shape, error) {
	switch strings.ToLower(e.Shape) {
	case "circle":
		return shape.NewCircle(e.Position, e.Radius)
	case "rect", "box":
		return shape.NewRect(e.Position, e.Width, e.Height, e.Rotation)
	case "regular":
		return shape.NewRegularPolygon(e.Position, e.Radius, e.Sides, e.Rotation)
	case "polygon":
		points := make([]geom.Vec2, len(e.Points))
		for i, p := range e.Points {
			points[i] = p.Add(e.Position)
		}
		p, err := shape.NewPolygon(points)
		if err != nil {
			return nil, err
		}
		p.Rotate(geom.DegToRad(e.Rotation))
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShape, e.Shape)
}

// FromBodies describes the current state of bodies as a scene file. Polygons are written
// as point lists, so a rotated box reloads as an equivalent polygon.
func FromBodies(name string, bodies []*physics.Body) *File {
	f := &File{Name: name, Bodies: make([]Entry, 0, len(bodies))}
	for _, b := range bodies {
		e := Entry{Position: b.Position()}
		if b.Kind() == shape.KindCircle {
			e.Shape = "circle"
			e.Radius = b.Radius()
		} else {
			e.Shape = "polygon"
			for _, v := range b.Vertices() {
				e.Points = append(e.Points, v.Sub(e.Position))
			}
		}
		e.Class = b.Class()
		e.Density = b.Density()
		e.Restitution = b.Restitution()
		e.LinearVelocity = b.LinearVelocity()
		e.RotationVelocity = b.RotationVelocity()
		f.Bodies = append(f.Bodies, e)
	}
	return f
}
