package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-sandbox/internal/collision"
	"physics-sandbox/internal/physics"
	"physics-sandbox/internal/render"
	"physics-sandbox/internal/sandbox"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
	// axisHalfLength is how far each traced SAT axis is drawn either side of its origin.
	axisHalfLength = 3
)

var (
	normalColor  = rl.NewColor(250, 80, 200, 255)
	overlapColor = rl.NewColor(80, 220, 120, 160)
	gapColor     = rl.NewColor(230, 60, 60, 220)
)

// Overlays is an explicit set of debug switches passed in by the caller.
type Overlays struct {
	FPS      bool
	MemAlloc bool
	Stats    bool
	Contacts bool // contact normals scaled by depth
	Axes     bool // every separating axis tested; needs traced contacts
}

// Debug draws diagnostic overlays. Nothing is drawn unless enabled.
type Debug struct {
	Overlays
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug with the given overlays enabled.
func New(o Overlays) *Debug {
	return &Debug{Overlays: o}
}

// DrawWorld renders contact diagnostics in world space. Call between View.Begin and View.End.
func (d *Debug) DrawWorld(bodies []physics.BodyState, contacts []physics.Contact) {
	for _, c := range contacts {
		if d.Axes {
			for _, ax := range c.Axes {
				drawAxis(ax)
			}
		}
		if d.Contacts && c.A < len(bodies) {
			from := bodies[c.A].Position
			to := from.Add(c.Normal.Scale(c.Depth))
			render.Line(from, to, normalColor)
			rl.DrawCircleV(render.Point(to), 0.08, normalColor)
		}
	}
}

func drawAxis(ax collision.AxisTest) {
	c := overlapColor
	if ax.Gap {
		c = gapColor
	}
	half := ax.Axis.Scale(axisHalfLength)
	render.Line(ax.Origin.Sub(half), ax.Origin.Add(half), c)
}

// Draw renders the screen-space overlays at the top-right. Text is only recomputed every
// updateInterval frames to limit allocations.
func (d *Debug) Draw(s sandbox.Stats) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if d.FPS && d.lastFpsText == "" || d.MemAlloc && d.lastMemText == "" {
		update = true
	}

	y := int32(padding)
	if d.FPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, y, rl.Green)
		y += lineHeight
	}
	if d.MemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		drawRight(d.lastMemText, y, rl.Green)
		y += lineHeight
	}
	if d.Stats {
		text := fmt.Sprintf("bodies %d  contacts %d  %s", s.Bodies, s.Contacts, s.Mode)
		if s.Paused {
			text += "  [paused]"
		}
		drawRight(text, y, rl.LightGray)
	}
}

// Toggle flips one overlay by name and reports whether the name was known.
func (d *Debug) Toggle(name string) bool {
	var p *bool
	switch name {
	case "fps":
		p = &d.FPS
	case "mem":
		p = &d.MemAlloc
	case "stats":
		p = &d.Stats
	case "contacts":
		p = &d.Contacts
	case "axes":
		p = &d.Axes
	default:
		return false
	}
	*p = !*p
	return true
}

func drawRight(text string, y int32, c rl.Color) {
	if text == "" {
		return
	}
	x := int32(rl.GetScreenWidth()) - rl.MeasureText(text, fontSize) - padding
	rl.DrawText(text, x, y, fontSize, c)
}
