package physics

import (
	"fmt"
	"strings"
)

// Class decides whether the integrator moves a body and whether the resolver may push it.
type Class int

const (
	// Dynamic bodies are integrated every step and pushed out of overlaps.
	Dynamic Class = iota
	// Static bodies never move on their own and are never pushed.
	Static
	// Kinematic bodies follow their velocity but, like Static ones, are never pushed.
	Kinematic
)

func (c Class) String() string {
	switch c {
	case Dynamic:
		return "dynamic"
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// ParseClass maps a name ("dynamic", "static" or "kinematic", any case) to a Class.
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dynamic", "":
		return Dynamic, nil
	case "static", "fixed":
		return Static, nil
	case "kinematic":
		return Kinematic, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownClass, s)
}

// UnmarshalText lets scene files and JSON configs spell the class by name.
func (c *Class) UnmarshalText(text []byte) error {
	v, err := ParseClass(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// integrated reports whether the integrator advances bodies of this class.
func (c Class) integrated() bool { return c != Static }

// movable reports whether the resolver may apply positional corrections.
func (c Class) movable() bool { return c == Dynamic }
