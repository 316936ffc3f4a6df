// Command sandbox runs the 2D rigid-body sandbox. With no arguments it opens the window;
// the other subcommands run without one.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"physics-sandbox/internal/commands"
	"physics-sandbox/internal/engineconfig"
	"physics-sandbox/internal/env"
	"physics-sandbox/internal/logger"
	"physics-sandbox/internal/sandbox"
	"physics-sandbox/internal/scene"
)

func main() {
	if err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "env:", err)
	}
	lines := logger.New(logger.LogFilePath)
	log := logger.FromEnv(lines)

	prefs, err := engineconfig.Load(engineconfig.ConfigPath)
	if err != nil {
		log.Warn("prefs", "path", engineconfig.ConfigPath, "err", err)
	}
	if err := prefs.ApplyEnv(); err != nil {
		log.Warn("prefs from environment", "err", err)
	}
	if err := prefs.Validate(); err != nil {
		log.Error("invalid prefs, using defaults", "err", err)
		prefs = engineconfig.Default()
	}

	reg := commands.NewRegistry()
	registerRun(reg, prefs, lines, log)
	registerHeadless(reg, prefs, log)
	registerCheck(reg, prefs.Limits)
	registerGenerate(reg)

	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"run"}
	}
	if err := reg.Execute(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, commands.ErrUnknownCommand) {
			fmt.Fprintln(os.Stderr, "usage: sandbox <command> [flags]")
			reg.Usage(os.Stderr)
		}
		os.Exit(1)
	}
}

// loadScene opens the scene named by path, or generates one when path is empty.
func loadScene(app *sandbox.App, path string, gen scene.GenerateOptions, log *slog.Logger) error {
	var f *scene.File
	if path == "" {
		f = scene.Generate(gen)
	} else {
		var err error
		if f, err = scene.Load(path); err != nil {
			return err
		}
	}
	if err := app.Load(f); err != nil {
		// Invalid entries are skipped; the rest of the scene still runs.
		log.Warn("scene entries rejected", "scene", f.Name, "err", err)
	}
	return nil
}
