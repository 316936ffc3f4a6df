package scene

import (
	"math/rand/v2"
	"time"

	"physics-sandbox/internal/geom"
	"physics-sandbox/internal/physics"
)

// GenerateOptions controls procedural scene generation.
// Bodies are scattered over a Width x Height area centered on the origin.
// Seed controls randomness; Seed == 0 uses a time-based seed.
type GenerateOptions struct {
	Count    int
	Width    float32
	Height   float32
	MinSize  float32
	MaxSize  float32
	MaxSpeed float32

	Seed int64
	// Floor adds a static ground slab along the bottom edge.
	Floor bool
}

// DefaultGenerateOptions returns a sane default configuration.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Count:    24,
		Width:    40,
		Height:   24,
		MinSize:  0.5,
		MaxSize:  2,
		MaxSpeed: 4,
		Seed:     0,
		Floor:    true,
	}
}

// Generate builds a random scene of circles, boxes and regular polygons. The same
// options and non-zero seed always give the same scene.
func Generate(opts GenerateOptions) *File {
	def := DefaultGenerateOptions()
	if opts.Count < 0 {
		opts.Count = 0
	}
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.MinSize <= 0 {
		opts.MinSize = def.MinSize
	}
	if opts.MaxSize < opts.MinSize {
		opts.MaxSize = opts.MinSize
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), 0x5eed))
	between := func(lo, hi float32) float32 { return lo + rng.Float32()*(hi-lo) }

	f := &File{Name: "generated", Bodies: make([]Entry, 0, opts.Count+1)}
	halfW, halfH := opts.Width*0.5, opts.Height*0.5
	if opts.Floor {
		floor := Entry{
			Shape:    "rect",
			Position: geom.V(0, -halfH),
			Width:    opts.Width,
			Height:   1,
		}
		floor.Class = physics.Static
		floor.Density = DefaultDensity
		f.Bodies = append(f.Bodies, floor)
	}

	for range opts.Count {
		size := between(opts.MinSize, opts.MaxSize)
		e := Entry{
			Position: geom.V(between(-halfW, halfW), between(-halfH+size, halfH)),
			Rotation: between(0, 360),
		}
		switch rng.IntN(3) {
		case 0:
			e.Shape = "circle"
			e.Radius = size * 0.5
		case 1:
			e.Shape = "rect"
			e.Width = size
			e.Height = between(opts.MinSize, opts.MaxSize)
		default:
			e.Shape = "regular"
			e.Radius = size * 0.5
			e.Sides = 3 + rng.IntN(6)
		}
		e.Density = between(0.5, 5)
		e.Restitution = rng.Float32()
		e.LinearVelocity = geom.V(between(-opts.MaxSpeed, opts.MaxSpeed), between(-opts.MaxSpeed, opts.MaxSpeed))
		e.RotationVelocity = between(-1, 1)
		f.Bodies = append(f.Bodies, e)
	}
	return f
}
