// Package sandbox ties the simulation to its collaborators: it owns the world, steps it
// at a fixed rate, and exposes the operations the window and the console drive.
package sandbox

import (
	"errors"
	"log/slog"
	"time"

	"physics-sandbox/internal/engineconfig"
	"physics-sandbox/internal/geom"
	"physics-sandbox/internal/physics"
	"physics-sandbox/internal/scene"
)

// maxFrame caps the time fed to the accumulator so a long pause does not trigger a burst
// of catch-up steps.
const maxFrame = 250 * time.Millisecond

// App is the running sandbox. It is driven from one goroutine (the window loop or the
// headless runner).
type App struct {
	World *physics.World
	Prefs engineconfig.Prefs

	log      *slog.Logger
	scene    *scene.File
	paused   bool
	accum    time.Duration
	steps    uint64
	selected int
}

// Stats is a summary for the overlay and the headless runner.
type Stats struct {
	Bodies   int
	Contacts int
	Steps    uint64
	Paused   bool
	Mode     physics.ResolveMode
}

// New returns an App with an empty world.
func New(prefs engineconfig.Prefs, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &App{
		World:    physics.NewWorld(prefs.PhysicsOptions(), log),
		Prefs:    prefs,
		log:      log,
		selected: -1,
	}
}

// Load replaces the world with the bodies of f. Entries that fail validation are skipped
// and reported in the returned error; the valid ones are still loaded. A scene's dt and
// gravity, when set, override the prefs.
func (a *App) Load(f *scene.File) error {
	if f.DT > 0 {
		a.Prefs.DT = f.DT
	}
	if f.Gravity != geom.Zero {
		a.Prefs.Gravity = [2]float32{f.Gravity.X, f.Gravity.Y}
	}
	bodies, err := scene.Build(f, a.Prefs.Limits)
	a.World = physics.NewWorld(a.Prefs.PhysicsOptions(), a.log)
	for _, b := range bodies {
		a.World.Add(b)
	}
	a.scene = f
	a.accum = 0
	a.steps = 0
	a.selected = -1
	a.log.Info("scene loaded", "name", f.Name, "bodies", len(bodies), "rejected", len(f.Bodies)-len(bodies))
	return err
}

// Reset reloads the last scene.
func (a *App) Reset() error {
	if a.scene == nil {
		return errors.New("no scene loaded")
	}
	return a.Load(a.scene)
}

// FixedStep is the simulation step as a duration.
func (a *App) FixedStep() time.Duration {
	return time.Duration(float64(a.Prefs.DT) * float64(time.Second))
}

// Advance feeds frame time into the accumulator and runs as many fixed steps as fit.
// It returns the number of steps run; none while paused.
func (a *App) Advance(frame time.Duration) int {
	if a.paused {
		return 0
	}
	step := a.FixedStep()
	if step <= 0 {
		return 0
	}
	a.accum += min(frame, maxFrame)
	n := 0
	for a.accum >= step {
		a.StepOnce()
		a.accum -= step
		n++
	}
	return n
}

// StepOnce advances the world by exactly one fixed step, paused or not.
func (a *App) StepOnce() {
	a.World.Step(a.Prefs.DT)
	a.steps++
}

func (a *App) Paused() bool { return a.paused }

// TogglePause flips the paused state and returns the new one.
func (a *App) TogglePause() bool {
	a.paused = !a.paused
	return a.paused
}

// SetResolveMode switches the resolver for the following steps.
func (a *App) SetResolveMode(m physics.ResolveMode) {
	a.Prefs.ResolveMode = m
	a.World.SetOptions(a.Prefs.PhysicsOptions())
}

// SetGravity changes the gravity for the following steps.
func (a *App) SetGravity(g geom.Vec2) {
	a.Prefs.Gravity = [2]float32{g.X, g.Y}
	a.World.SetGravity(g)
}

// SetTrace turns SAT axis recording on or off.
func (a *App) SetTrace(on bool) {
	a.Prefs.ShowAxes = on
	a.World.SetOptions(a.Prefs.PhysicsOptions())
}

// Spawn validates e and adds it to the world.
func (a *App) Spawn(e scene.Entry) (*physics.Body, error) {
	b, err := e.Build(a.Prefs.Limits)
	if err != nil {
		return nil, err
	}
	i := a.World.Add(b)
	a.log.Info("spawned", "index", i, "body", b.String())
	return b, nil
}

// Remove deletes the body at index i.
func (a *App) Remove(i int) bool {
	bodies := a.World.Bodies()
	if i < 0 || i >= len(bodies) {
		return false
	}
	a.World.Remove(bodies[i])
	switch {
	case a.selected == i:
		a.selected = -1
	case a.selected > i:
		a.selected--
	}
	return true
}

// Select puts the body at index i under player control; -1 clears the selection.
func (a *App) Select(i int) bool {
	if i < -1 || i >= a.World.Len() {
		return false
	}
	a.selected = i
	return true
}

// SelectedIndex is the index of the controlled body, or -1.
func (a *App) SelectedIndex() int { return a.selected }

// Selected returns the controlled body, or nil.
func (a *App) Selected() *physics.Body {
	if a.selected < 0 || a.selected >= a.World.Len() {
		return nil
	}
	return a.World.Bodies()[a.selected]
}

// Drive sets the velocity of the controlled body. It reports whether a body was driven.
func (a *App) Drive(v geom.Vec2) bool {
	b := a.Selected()
	if b == nil {
		return false
	}
	b.SetLinearVelocity(v)
	return true
}

// Pick returns the index of the first body whose bounds contain p, or -1.
func (a *App) Pick(p geom.Vec2) int {
	for i, b := range a.World.Bodies() {
		box := b.Bounds()
		if p.X >= box.Min.X && p.X <= box.Max.X && p.Y >= box.Min.Y && p.Y <= box.Max.Y {
			return i
		}
	}
	return -1
}

// Scene describes the current world as a scene file.
func (a *App) Scene() *scene.File {
	f := scene.FromBodies("saved", a.World.Bodies())
	f.DT = a.Prefs.DT
	f.Gravity = geom.V(a.Prefs.Gravity[0], a.Prefs.Gravity[1])
	return f
}

// Stats summarizes the world for the overlay and the headless runner.
func (a *App) Stats() Stats {
	return Stats{
		Bodies:   a.World.Len(),
		Contacts: len(a.World.Contacts()),
		Steps:    a.steps,
		Paused:   a.paused,
		Mode:     a.Prefs.ResolveMode,
	}
}
