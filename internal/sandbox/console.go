package sandbox

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"physics-sandbox/internal/commands"
	"physics-sandbox/internal/geom"
	"physics-sandbox/internal/physics"
	"physics-sandbox/internal/scene"
)

// vecValue is a flag.Value for "x,y" pairs.
type vecValue struct{ v *geom.Vec2 }

func (f vecValue) String() string {
	if f.v == nil {
		return "0,0"
	}
	return strconv.FormatFloat(float64(f.v.X), 'g', -1, 32) + "," + strconv.FormatFloat(float64(f.v.Y), 'g', -1, 32)
}

func (f vecValue) Set(s string) error {
	v, err := ParseVec(s)
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

// ParseVec parses "x,y".
func ParseVec(s string) (geom.Vec2, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Zero, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 32)
	if err != nil {
		return geom.Zero, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 32)
	if err != nil {
		return geom.Zero, err
	}
	return geom.V(float32(x), float32(y)), nil
}

// Commands returns the console commands bound to a. Command output goes to out.
func (a *App) Commands(out io.Writer) *commands.Registry {
	r := commands.NewRegistry()

	r.Register("help", "list commands", nil, func() error {
		r.Usage(out)
		return nil
	})

	var e scene.Entry
	spawn := flag.NewFlagSet("spawn", flag.ContinueOnError)
	spawn.SetOutput(out)
	spawn.Var(vecValue{&e.Position}, "at", "position x,y")
	spawn.Var(vecValue{&e.LinearVelocity}, "v", "velocity x,y")
	radius := spawn.Float64("r", 0.5, "radius (circle, regular)")
	width := spawn.Float64("w", 1, "width (rect)")
	height := spawn.Float64("h", 1, "height (rect)")
	sides := spawn.Int("sides", 5, "number of sides (regular)")
	rot := spawn.Float64("rot", 0, "rotation in degrees")
	spin := spawn.Float64("spin", 0, "rotation velocity in rad/s")
	density := spawn.Float64("density", scene.DefaultDensity, "density in g/cm³")
	restitution := spawn.Float64("restitution", 0.5, "restitution [0, 1]")
	class := physics.Dynamic
	spawn.TextVar(&class, "class", physics.Dynamic, "dynamic | static | kinematic")
	r.Register("spawn", "spawn [flags] circle|rect|regular: add a body", spawn, func() error {
		if spawn.NArg() != 1 {
			return errors.New("usage: spawn [flags] circle|rect|regular")
		}
		e.Shape = spawn.Arg(0)
		e.Radius = float32(*radius)
		e.Width, e.Height = float32(*width), float32(*height)
		e.Sides = *sides
		e.Rotation = float32(*rot)
		e.Class = class
		e.Density = float32(*density)
		e.Restitution = float32(*restitution)
		e.RotationVelocity = float32(*spin)
		b, err := a.Spawn(e)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "spawned %v\n", b)
		return nil
	})

	remove := flag.NewFlagSet("remove", flag.ContinueOnError)
	r.Register("remove", "remove <index>: delete a body", remove, func() error {
		i, err := indexArg(remove)
		if err != nil {
			return err
		}
		if !a.Remove(i) {
			return fmt.Errorf("no body %d", i)
		}
		return nil
	})

	sel := flag.NewFlagSet("select", flag.ContinueOnError)
	r.Register("select", "select <index>: control a body with the arrow keys (-1 for none)", sel, func() error {
		i, err := indexArg(sel)
		if err != nil {
			return err
		}
		if !a.Select(i) {
			return fmt.Errorf("no body %d", i)
		}
		return nil
	})

	r.Register("pause", "toggle pause", nil, func() error {
		if a.TogglePause() {
			fmt.Fprintln(out, "paused")
		} else {
			fmt.Fprintln(out, "running")
		}
		return nil
	})

	step := flag.NewFlagSet("step", flag.ContinueOnError)
	r.Register("step", "step [n]: advance n fixed steps (default 1)", step, func() error {
		n := 1
		if step.NArg() > 0 {
			v, err := strconv.Atoi(step.Arg(0))
			if err != nil || v < 1 {
				return fmt.Errorf("bad step count %q", step.Arg(0))
			}
			n = v
		}
		for range n {
			a.StepOnce()
		}
		return nil
	})

	mode := flag.NewFlagSet("mode", flag.ContinueOnError)
	r.Register("mode", "mode sequential|accumulated: pick the resolver", mode, func() error {
		if mode.NArg() != 1 {
			fmt.Fprintln(out, a.Prefs.ResolveMode)
			return nil
		}
		m, err := physics.ParseResolveMode(mode.Arg(0))
		if err != nil {
			return err
		}
		a.SetResolveMode(m)
		return nil
	})

	gravity := flag.NewFlagSet("gravity", flag.ContinueOnError)
	r.Register("gravity", "gravity x,y: set gravity", gravity, func() error {
		if gravity.NArg() != 1 {
			return errors.New("usage: gravity x,y")
		}
		g, err := ParseVec(gravity.Arg(0))
		if err != nil {
			return err
		}
		a.SetGravity(g)
		return nil
	})

	trace := flag.NewFlagSet("trace", flag.ContinueOnError)
	r.Register("trace", "trace on|off: record and draw SAT axes", trace, func() error {
		if trace.NArg() != 1 {
			return errors.New("usage: trace on|off")
		}
		switch trace.Arg(0) {
		case "on":
			a.SetTrace(true)
		case "off":
			a.SetTrace(false)
		default:
			return fmt.Errorf("usage: trace on|off, got %q", trace.Arg(0))
		}
		return nil
	})

	r.Register("reset", "reload the current scene", nil, a.Reset)

	save := flag.NewFlagSet("save", flag.ContinueOnError)
	r.Register("save", "save <path>: write the world as a scene file", save, func() error {
		if save.NArg() != 1 {
			return errors.New("usage: save <path>")
		}
		data, err := scene.Marshal(a.Scene())
		if err != nil {
			return err
		}
		return os.WriteFile(save.Arg(0), data, 0644)
	})

	load := flag.NewFlagSet("load", flag.ContinueOnError)
	r.Register("load", "load <path>: replace the world with a scene file", load, func() error {
		if load.NArg() != 1 {
			return errors.New("usage: load <path>")
		}
		f, err := scene.Load(load.Arg(0))
		if err != nil {
			return err
		}
		return a.Load(f)
	})

	r.Register("stats", "print body and contact counts", nil, func() error {
		s := a.Stats()
		fmt.Fprintf(out, "bodies=%d contacts=%d steps=%d mode=%s paused=%v\n", s.Bodies, s.Contacts, s.Steps, s.Mode, s.Paused)
		return nil
	})

	return r
}

func indexArg(fs *flag.FlagSet) (int, error) {
	if fs.NArg() != 1 {
		return 0, fmt.Errorf("usage: %s <index>", fs.Name())
	}
	i, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return 0, fmt.Errorf("bad index %q", fs.Arg(0))
	}
	return i, nil
}
