package physics

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"physics-sandbox/internal/geom"
)

var (
	ErrAreaTooSmall    = errors.New("area too small")
	ErrAreaTooLarge    = errors.New("area too large")
	ErrDensityTooSmall = errors.New("density too small")
	ErrDensityTooLarge = errors.New("density too large")
	ErrNoShape         = errors.New("body has no shape")
	ErrUnknownClass    = errors.New("unknown body class")
)

// Limits bounds what a body may be built with. Areas are in m², densities in g/cm³.
type Limits struct {
	MinBodySize float32 `json:"min_body_size"`
	MaxBodySize float32 `json:"max_body_size"`
	MinDensity  float32 `json:"min_density"`
	MaxDensity  float32 `json:"max_density"`
}

// DefaultLimits returns 1 cm² to 64x64 m of area, and a density range from light wood
// to platinum.
func DefaultLimits() Limits {
	return Limits{
		MinBodySize: 0.01 * 0.01,
		MaxBodySize: 64 * 64,
		MinDensity:  0.2,
		MaxDensity:  21.4,
	}
}

// Validate checks area and density against l and returns restitution clamped to [0, 1].
// Area and density outside their range are rejected; restitution is never rejected.
// NaN area or density fails the lower bound check.
func (l Limits) Validate(area, density, restitution float32) (float32, error) {
	if !(area >= l.MinBodySize) {
		return 0, fmt.Errorf("%w: min area is %g (%g requested)", ErrAreaTooSmall, l.MinBodySize, area)
	}
	if area > l.MaxBodySize {
		return 0, fmt.Errorf("%w: max area is %g (%g requested)", ErrAreaTooLarge, l.MaxBodySize, area)
	}
	if !(density >= l.MinDensity) {
		return 0, fmt.Errorf("%w: min density is %g (%g requested)", ErrDensityTooSmall, l.MinDensity, density)
	}
	if density > l.MaxDensity {
		return 0, fmt.Errorf("%w: max density is %g (%g requested)", ErrDensityTooLarge, l.MaxDensity, density)
	}
	if math32.IsNaN(restitution) {
		return 0, nil
	}
	return geom.Clamp(restitution, 0, 1), nil
}
