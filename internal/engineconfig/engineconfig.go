package engineconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"physics-sandbox/internal/env"
	"physics-sandbox/internal/geom"
	"physics-sandbox/internal/physics"
)

// ConfigPath is the default prefs file, relative to the process working directory.
const ConfigPath = "config/sandbox.json"

// Prefs holds sandbox preferences: simulation settings and debug overlays. Persisted
// across runs.
type Prefs struct {
	DT          float32             `json:"dt"`
	ResolveMode physics.ResolveMode `json:"resolve_mode"`
	Gravity     [2]float32          `json:"gravity"`
	Limits      physics.Limits      `json:"limits"`
	// Scene is loaded at startup when set; otherwise a random scene is generated.
	Scene string `json:"scene,omitempty"`

	ShowFPS      bool `json:"show_fps"`
	ShowMemAlloc bool `json:"show_memalloc"`
	ShowAxes     bool `json:"show_axes"`
	ShowContacts bool `json:"show_contacts"`
	GridVisible  bool `json:"grid_visible"`
}

// Default returns default preferences: 60 Hz steps, no gravity, FPS and grid on.
func Default() Prefs {
	return Prefs{
		DT:           1.0 / 60,
		ResolveMode:  physics.ResolveSequential,
		Limits:       physics.DefaultLimits(),
		ShowFPS:      true,
		ShowContacts: true,
		GridVisible:  true,
	}
}

// Load reads preferences from path. Keys missing from the file keep their default. A
// missing file returns Default() and no error; an unreadable one returns Default() and
// the error.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return p, p.Validate()
}

// Save writes preferences to path, creating its directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides p from SANDBOX_* environment variables:
//
//	SANDBOX_DT        step length in seconds
//	SANDBOX_RESOLVE   sequential | accumulated
//	SANDBOX_GRAVITY   "x,y"
//	SANDBOX_SCENE     scene file path
//	SANDBOX_AXES      show SAT axes (bool)
func (p *Prefs) ApplyEnv() error {
	var errs []error
	dt, err := env.Float32("SANDBOX_DT", p.DT)
	errs = append(errs, err)
	p.DT = dt

	if v := env.String("SANDBOX_RESOLVE", ""); v != "" {
		m, err := physics.ParseResolveMode(v)
		errs = append(errs, err)
		if err == nil {
			p.ResolveMode = m
		}
	}
	if v := env.String("SANDBOX_GRAVITY", ""); v != "" {
		g, err := parsePair(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SANDBOX_GRAVITY: %w", err))
		} else {
			p.Gravity = g
		}
	}
	p.Scene = env.String("SANDBOX_SCENE", p.Scene)

	axes, err := env.Bool("SANDBOX_AXES", p.ShowAxes)
	errs = append(errs, err)
	p.ShowAxes = axes

	return errors.Join(errs...)
}

// Validate rejects settings the simulation cannot run with.
func (p Prefs) Validate() error {
	var errs []error
	if !(p.DT > 0) {
		errs = append(errs, fmt.Errorf("dt must be positive, got %g", p.DT))
	}
	l := p.Limits
	if !(l.MinBodySize > 0 && l.MinBodySize <= l.MaxBodySize) {
		errs = append(errs, fmt.Errorf("body size range [%g, %g] is invalid", l.MinBodySize, l.MaxBodySize))
	}
	if !(l.MinDensity > 0 && l.MinDensity <= l.MaxDensity) {
		errs = append(errs, fmt.Errorf("density range [%g, %g] is invalid", l.MinDensity, l.MaxDensity))
	}
	return errors.Join(errs...)
}

// PhysicsOptions returns the step options the prefs describe. SAT axes are only traced
// when they are going to be drawn.
func (p Prefs) PhysicsOptions() physics.Options {
	return physics.Options{
		ResolveMode: p.ResolveMode,
		Gravity:     geom.V(p.Gravity[0], p.Gravity[1]),
		Trace:       p.ShowAxes,
	}
}

func parsePair(s string) ([2]float32, error) {
	x, y, ok := strings.Cut(s, ",")
	if !ok {
		return [2]float32{}, fmt.Errorf("want \"x,y\", got %q", s)
	}
	fx, err := strconv.ParseFloat(strings.TrimSpace(x), 32)
	if err != nil {
		return [2]float32{}, err
	}
	fy, err := strconv.ParseFloat(strings.TrimSpace(y), 32)
	if err != nil {
		return [2]float32{}, err
	}
	return [2]float32{float32(fx), float32(fy)}, nil
}
