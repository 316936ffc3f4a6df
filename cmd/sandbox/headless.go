package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"physics-sandbox/internal/commands"
	"physics-sandbox/internal/engineconfig"
	"physics-sandbox/internal/physics"
	"physics-sandbox/internal/sandbox"
	"physics-sandbox/internal/scene"
)

func registerHeadless(reg *commands.Registry, prefs engineconfig.Prefs, log *slog.Logger) {
	fs := flag.NewFlagSet("headless", flag.ContinueOnError)
	steps := fs.Int("steps", 600, "number of fixed steps to run")
	path := fs.String("scene", prefs.Scene, "scene file; empty generates one")
	seed := fs.Int64("seed", 1, "generator seed, 0 for time-based")
	count := fs.Int("count", scene.DefaultGenerateOptions().Count, "bodies to generate")
	mode := prefs.ResolveMode
	fs.TextVar(&mode, "mode", prefs.ResolveMode, "sequential | accumulated")
	reg.Register("headless", "step a scene without a window and print statistics", fs, func() error {
		if *steps <= 0 {
			return fmt.Errorf("steps must be positive, got %d", *steps)
		}
		p := prefs
		p.ResolveMode = mode
		app := sandbox.New(p, log)
		gen := scene.DefaultGenerateOptions()
		gen.Seed = *seed
		gen.Count = *count
		if err := loadScene(app, *path, gen, log); err != nil {
			return err
		}

		contacts := 0
		start := time.Now()
		for range *steps {
			app.StepOnce()
			contacts += len(app.World.Contacts())
		}
		elapsed := time.Since(start)

		s := app.Stats()
		fmt.Printf("bodies=%d steps=%d mode=%s contacts=%d (%.2f/step)\n",
			s.Bodies, s.Steps, s.Mode, contacts, float64(contacts)/float64(*steps))
		fmt.Printf("elapsed=%s per-step=%s simulated=%s\n",
			elapsed.Round(time.Microsecond), (elapsed / time.Duration(*steps)).Round(time.Nanosecond),
			time.Duration(*steps)*app.FixedStep())
		return nil
	})
}

func registerCheck(reg *commands.Registry, limits physics.Limits) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	reg.Register("check", "check <scene.yaml>...: validate scene files", fs, func() error {
		if fs.NArg() == 0 {
			return errors.New("usage: check <scene.yaml>...")
		}
		var errs []error
		for _, path := range fs.Args() {
			f, err := scene.Load(path)
			if err == nil {
				var bodies []*physics.Body
				bodies, err = scene.Build(f, limits)
				if err == nil {
					fmt.Printf("%s: ok, %d bodies\n", path, len(bodies))
					continue
				}
			}
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
		return errors.Join(errs...)
	})
}

func registerGenerate(reg *commands.Registry) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	opts := scene.DefaultGenerateOptions()
	seed := fs.Int64("seed", 0, "generator seed, 0 for time-based")
	count := fs.Int("count", opts.Count, "number of bodies, not counting the floor")
	floor := fs.Bool("floor", opts.Floor, "add a static floor")
	out := fs.String("o", "", "output file; empty writes to stdout")
	reg.Register("generate", "write a random scene as YAML", fs, func() error {
		o := opts
		o.Seed, o.Count, o.Floor = *seed, *count, *floor
		data, err := scene.Marshal(scene.Generate(o))
		if err != nil {
			return err
		}
		if *out == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		return os.WriteFile(*out, data, 0o644)
	})
}
