package shape

import (
	"fmt"

	"github.com/chewxy/math32"

	"physics-sandbox/internal/geom"
)

// Circle is a disc of fixed radius around a movable center.
type Circle struct {
	center geom.Vec2
	radius float32
}

// NewCircle returns a circle centered on center.
func NewCircle(center geom.Vec2, radius float32) (*Circle, error) {
	if !(radius > 0) || math32.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w (%g requested)", ErrBadRadius, radius)
	}
	if !center.IsFinite() {
		return nil, fmt.Errorf("%w: center %v", ErrNonFinite, center)
	}
	return &Circle{center: center, radius: radius}, nil
}

func (c *Circle) Kind() Kind          { return KindCircle }
func (c *Circle) Position() geom.Vec2 { return c.center }
func (c *Circle) Radius() float32     { return c.radius }
func (c *Circle) MoveTo(p geom.Vec2)  { c.center = p }
func (c *Circle) Offset(d geom.Vec2)  { c.center = c.center.Add(d) }
func (c *Circle) Area() float32       { return math32.Pi * c.radius * c.radius }

func (c *Circle) String() string {
	return fmt.Sprintf("circle r=%g at %v", c.radius, c.center)
}

func (c *Circle) Bounds() Box {
	r := geom.V(c.radius, c.radius)
	return Box{Min: c.center.Sub(r), Max: c.center.Add(r)}
}
