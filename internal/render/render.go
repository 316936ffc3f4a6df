// Package render draws the sandbox world with raylib. World space is y-up in meters;
// the camera flips it onto the y-down screen.
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-sandbox/internal/geom"
	"physics-sandbox/internal/physics"
	"physics-sandbox/internal/shape"
)

const (
	gridExtent     = 100
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 40
	gridMajorAlpha = 90
	axisLineAlpha  = 200

	defaultZoom = 20 // pixels per meter
	minZoom     = 2
	maxZoom     = 400
	zoomStep    = 1.1
	lineWidth   = 0.05 // meters
)

var (
	// Reused every frame to avoid per-frame color allocations.
	dynamicColor   = rl.NewColor(90, 170, 250, 255)
	staticColor    = rl.NewColor(150, 150, 150, 255)
	kinematicColor = rl.NewColor(250, 170, 60, 255)
	selectedColor  = rl.NewColor(250, 230, 80, 255)
	gridMinor      = rl.NewColor(128, 128, 128, gridMinorAlpha)
	gridMajor      = rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX          = rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY          = rl.NewColor(80, 220, 80, axisLineAlpha)
)

// View holds the 2D camera. Update runs pan and zoom; Begin/End bracket world-space drawing.
type View struct {
	Camera      rl.Camera2D
	GridVisible bool
}

// New returns a view centered on the world origin.
func New() *View {
	v := &View{GridVisible: true}
	v.Camera.Zoom = defaultZoom
	v.Camera.Target = rl.NewVector2(0, 0)
	v.Camera.Offset = rl.NewVector2(float32(rl.GetScreenWidth())/2, float32(rl.GetScreenHeight())/2)
	return v
}

// Update pans with the right mouse button and zooms toward the cursor with the wheel.
func (v *View) Update() {
	v.Camera.Offset = rl.NewVector2(float32(rl.GetScreenWidth())/2, float32(rl.GetScreenHeight())/2)
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		v.Camera.Target.X -= d.X / v.Camera.Zoom
		v.Camera.Target.Y -= d.Y / v.Camera.Zoom
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		before := rl.GetScreenToWorld2D(mouse, v.Camera)
		if wheel > 0 {
			v.Camera.Zoom *= zoomStep
		} else {
			v.Camera.Zoom /= zoomStep
		}
		v.Camera.Zoom = geom.Clamp(v.Camera.Zoom, minZoom, maxZoom)
		after := rl.GetScreenToWorld2D(mouse, v.Camera)
		v.Camera.Target.X += before.X - after.X
		v.Camera.Target.Y += before.Y - after.Y
	}
}

// Begin starts world-space drawing.
func (v *View) Begin() { rl.BeginMode2D(v.Camera) }

// End finishes world-space drawing.
func (v *View) End() { rl.EndMode2D() }

// ScreenToWorld converts a screen position (e.g. the mouse) to world meters.
func (v *View) ScreenToWorld(p rl.Vector2) geom.Vec2 {
	w := rl.GetScreenToWorld2D(p, v.Camera)
	return geom.V(w.X, -w.Y)
}

// Point converts a world position to the camera's y-down space. Use between Begin and End.
func Point(p geom.Vec2) rl.Vector2 { return rl.NewVector2(p.X, -p.Y) }

// Line draws a world-space segment with the default line width.
func Line(a, b geom.Vec2, c rl.Color) { rl.DrawLineEx(Point(a), Point(b), lineWidth, c) }

// Draw renders the grid and every body. selected is the index of the controlled body, or -1.
func (v *View) Draw(bodies []physics.BodyState, selected int) {
	v.Begin()
	if v.GridVisible {
		drawGrid()
	}
	for i, b := range bodies {
		c := classColor(b.Class)
		if i == selected {
			c = selectedColor
		}
		drawBody(b, c)
	}
	v.End()
}

func classColor(c physics.Class) rl.Color {
	switch c {
	case physics.Static:
		return staticColor
	case physics.Kinematic:
		return kinematicColor
	default:
		return dynamicColor
	}
}

func drawBody(b physics.BodyState, c rl.Color) {
	fill := rl.Fade(c, 0.25)
	switch b.Kind {
	case shape.KindCircle:
		rl.DrawCircleV(Point(b.Position), b.Radius, fill)
		rl.DrawRing(Point(b.Position), b.Radius-lineWidth, b.Radius, 0, 360, 36, c)
	case shape.KindPolygon:
		n := len(b.Vertices)
		for i := range n {
			// raylib wants on-screen counter-clockwise order, which the world ring already has.
			rl.DrawTriangle(Point(b.Position), Point(b.Vertices[i]), Point(b.Vertices[(i+1)%n]), fill)
		}
		for i := range n {
			Line(b.Vertices[i], b.Vertices[(i+1)%n], c)
		}
		if n > 0 {
			Line(b.Position, b.Vertices[0], c)
		}
	}
}

// drawGrid draws a grid on the world plane with major/minor lines and the two axes.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawGrid() {
	var start, end rl.Vector2
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := gridMajor
		if x%gridMajorStep != 0 {
			c = gridMinor
		}
		start.X, start.Y = float32(x), -gridExtent
		end.X, end.Y = float32(x), gridExtent
		rl.DrawLineV(start, end, c)
	}
	for y := -gridExtent; y <= gridExtent; y += gridMinorStep {
		c := gridMajor
		if y%gridMajorStep != 0 {
			c = gridMinor
		}
		start.X, start.Y = -gridExtent, float32(y)
		end.X, end.Y = gridExtent, float32(y)
		rl.DrawLineV(start, end, c)
	}
	rl.DrawLineEx(rl.NewVector2(-gridExtent, 0), rl.NewVector2(gridExtent, 0), lineWidth, axisX)
	rl.DrawLineEx(rl.NewVector2(0, -gridExtent), rl.NewVector2(0, gridExtent), lineWidth, axisY)
}
