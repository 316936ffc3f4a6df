package physics

import (
	"log/slog"
	"slices"

	"github.com/jinzhu/copier"

	"physics-sandbox/internal/geom"
	"physics-sandbox/internal/shape"
)

// World holds the bodies of a running sandbox and the contacts found by the last step.
// Body order is preserved so callers can keep parallel per-body data (colors, labels).
type World struct {
	bodies   []*Body
	contacts []Contact
	opts     Options
	log      *slog.Logger
}

// BodyState is a read-only copy of a body for the render and debug layers.
type BodyState struct {
	Kind             shape.Kind
	Class            Class
	Position         geom.Vec2
	Radius           float32
	Vertices         []geom.Vec2
	Bounds           shape.Box
	LinearVelocity   geom.Vec2
	RotationVelocity float32
	Mass             float32
	Density          float32
	Restitution      float32
	Area             float32
}

// NewWorld returns an empty world. A nil logger discards everything.
func NewWorld(opts Options, log *slog.Logger) *World {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &World{opts: opts, log: log}
}

// Options returns the options used by Step.
func (w *World) Options() Options { return w.opts }

// SetOptions replaces the options used by Step, e.g. to toggle tracing from the debug overlay.
func (w *World) SetOptions(o Options) { w.opts = o }

// SetGravity sets the acceleration applied to dynamic bodies (e.g. (0, -9.8)).
func (w *World) SetGravity(g geom.Vec2) { w.opts.Gravity = g }

// Add appends a body and returns its index.
func (w *World) Add(b *Body) int {
	w.bodies = append(w.bodies, b)
	w.log.Debug("body added", "index", len(w.bodies)-1, "body", b.String())
	return len(w.bodies) - 1
}

// Remove deletes b from the world, keeping the order of the rest. It reports whether b
// was found. Contacts from the last step are dropped since their indices are stale.
func (w *World) Remove(b *Body) bool {
	i := slices.Index(w.bodies, b)
	if i < 0 {
		return false
	}
	w.bodies = slices.Delete(w.bodies, i, i+1)
	w.contacts = nil
	w.log.Debug("body removed", "index", i)
	return true
}

// Bodies returns the world's bodies. The slice is owned by the world; do not append to it.
func (w *World) Bodies() []*Body { return w.bodies }

func (w *World) Len() int { return len(w.bodies) }

// Step advances the world by dt seconds and records the contacts found.
func (w *World) Step(dt float32) {
	w.contacts = Step(w.bodies, dt, w.opts)
	if len(w.contacts) > 0 {
		w.log.Debug("step", "dt", dt, "bodies", len(w.bodies), "contacts", len(w.contacts))
	}
}

// Contacts returns the contacts of the last Step.
func (w *World) Contacts() []Contact { return w.contacts }

// Snapshot copies the state of every body.
func (w *World) Snapshot() []BodyState {
	out := make([]BodyState, len(w.bodies))
	for i, b := range w.bodies {
		if err := copier.Copy(&out[i], b); err != nil {
			w.log.Error("snapshot", "index", i, "err", err)
		}
	}
	return out
}
