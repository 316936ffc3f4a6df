// Package shape holds the collision geometry of a body: circles and convex polygons,
// each owning its world-space reference point.
package shape

import (
	"errors"
	"fmt"

	"physics-sandbox/internal/geom"
)

// Kind tags the concrete variant behind a Shape.
type Kind int

const (
	KindCircle Kind = iota
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Shape is implemented by *Circle and *Polygon only. Callers switch on Kind (or a type
// switch) to reach the variant-specific queries.
type Shape interface {
	Kind() Kind
	// Position is the world reference point: circle center or polygon centroid.
	Position() geom.Vec2
	MoveTo(p geom.Vec2)
	Offset(d geom.Vec2)
	Area() float32
	Bounds() Box
}

// Box is an axis-aligned bounding box, used by the render and debug layers.
type Box struct {
	Min, Max geom.Vec2
}

var (
	ErrBadRadius     = errors.New("circle radius must be positive and finite")
	ErrTooFewPoints  = errors.New("polygon needs at least 3 vertices")
	ErrNotConvex     = errors.New("polygon is not convex")
	ErrBadDimensions = errors.New("dimensions must be positive and finite")
	ErrNonFinite     = errors.New("coordinates must be finite")
)
