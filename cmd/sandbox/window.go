package main

import (
	"errors"
	"flag"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-sandbox/internal/commands"
	"physics-sandbox/internal/debug"
	"physics-sandbox/internal/engineconfig"
	"physics-sandbox/internal/geom"
	"physics-sandbox/internal/graphics"
	"physics-sandbox/internal/logger"
	"physics-sandbox/internal/render"
	"physics-sandbox/internal/sandbox"
	"physics-sandbox/internal/scene"
	"physics-sandbox/internal/terminal"
)

// driveSpeed is the velocity, in m/s, the arrow keys give the selected body.
const driveSpeed = 6

func registerRun(reg *commands.Registry, prefs engineconfig.Prefs, lines *logger.Logger, log *slog.Logger) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	path := fs.String("scene", prefs.Scene, "scene file; empty generates one")
	seed := fs.Int64("seed", 0, "generator seed, 0 for time-based")
	reg.Register("run", "open the sandbox window", fs, func() error {
		app := sandbox.New(prefs, log)
		gen := scene.DefaultGenerateOptions()
		gen.Seed = *seed
		if err := loadScene(app, *path, gen, log); err != nil {
			return err
		}
		runWindow(app, lines, log)
		return nil
	})
}

func runWindow(app *sandbox.App, lines *logger.Logger, log *slog.Logger) {
	var (
		view *render.View
		dbg  = debug.New(debug.Overlays{
			FPS:      app.Prefs.ShowFPS,
			MemAlloc: app.Prefs.ShowMemAlloc,
			Stats:    true,
			Contacts: app.Prefs.ShowContacts,
			Axes:     app.Prefs.ShowAxes,
		})
		console = app.Commands(lines)
		term    = terminal.New(lines, console)
	)

	overlay := flag.NewFlagSet("overlay", flag.ContinueOnError)
	overlay.SetOutput(lines)
	console.Register("overlay", "overlay fps|mem|stats|contacts|axes: toggle a debug overlay", overlay, func() error {
		name := overlay.Arg(0)
		if overlay.NArg() != 1 || !dbg.Toggle(name) {
			return errors.New("usage: overlay fps|mem|stats|contacts|axes")
		}
		if name == "axes" {
			app.SetTrace(dbg.Axes)
		}
		return nil
	})
	console.Register("grid", "toggle the grid", nil, func() error {
		view.GridVisible = !view.GridVisible
		return nil
	})
	console.Register("prefs", "save the current settings as defaults", nil, func() error {
		p := app.Prefs
		p.ShowFPS, p.ShowMemAlloc, p.ShowContacts, p.ShowAxes = dbg.FPS, dbg.MemAlloc, dbg.Contacts, dbg.Axes
		p.GridVisible = view.GridVisible
		return engineconfig.Save(engineconfig.ConfigPath, p)
	})

	update := func(frame float32) {
		if view == nil {
			// The screen size is only known once the window is open.
			view = render.New()
			view.GridVisible = app.Prefs.GridVisible
		}
		term.Update()
		if !term.IsOpen() {
			view.Update()
			handleInput(app, view)
		}
		app.Advance(time.Duration(frame * float32(time.Second)))
	}
	draw := func() {
		bodies := app.World.Snapshot()
		view.Draw(bodies, app.SelectedIndex())
		view.Begin()
		dbg.DrawWorld(bodies, app.World.Contacts())
		view.End()
		dbg.Draw(app.Stats())
		term.Draw()
	}

	log.Info("window open", "bodies", app.World.Len())
	graphics.Run(graphics.Window{Title: "Physics Sandbox", Width: 1280, Height: 800, TargetFPS: 60}, update, draw)
}

// handleInput applies the keyboard and mouse controls that are live while the console is
// closed: click to select, arrows to drive, space to pause, N to single-step.
func handleInput(app *sandbox.App, view *render.View) {
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		app.Select(app.Pick(view.ScreenToWorld(rl.GetMousePosition())))
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		app.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyN) && app.Paused() {
		app.StepOnce()
	}

	var dir geom.Vec2
	if rl.IsKeyDown(rl.KeyLeft) {
		dir.X--
	}
	if rl.IsKeyDown(rl.KeyRight) {
		dir.X++
	}
	if rl.IsKeyDown(rl.KeyUp) {
		dir.Y++
	}
	if rl.IsKeyDown(rl.KeyDown) {
		dir.Y--
	}
	if dir != geom.Zero {
		app.Drive(dir.Normalize().Scale(driveSpeed))
	}
}
