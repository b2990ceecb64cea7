package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"lightlab/core"
	"lightlab/input"
	"lightlab/lighting"
	"lightlab/panel"
	"lightlab/renderer"
	"lightlab/scene"
	"lightlab/textures"
)

type config struct {
	window     core.WindowConfig
	assets     string
	workers    int
	shadowSize int
}

func main() {
	defaults := core.DefaultWindowConfig()
	width := flag.Int("width", defaults.Width, "window width in screen coordinates")
	height := flag.Int("height", defaults.Height, "window height in screen coordinates")
	fullscreen := flag.Bool("fullscreen", false, "open fullscreen on the primary monitor")
	vsync := flag.Bool("vsync", defaults.VSync, "wait for vertical sync on swap")
	assets := flag.String("assets", "assets/textures", "directory holding the texture files")
	workers := flag.Int("workers", runtime.NumCPU(), "texture decode workers")
	shadowSize := flag.Int("shadow-size", 512, "point shadow cube face resolution (0 disables shadows)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	flag.Parse()

	level, err := parseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config{
		window:     defaults,
		assets:     *assets,
		workers:    *workers,
		shadowSize: *shadowSize,
	}
	cfg.window.Width = *width
	cfg.window.Height = *height
	cfg.window.Fullscreen = *fullscreen
	cfg.window.VSync = *vsync

	if err := run(cfg); err != nil {
		core.Logger().Error("light lab failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	window, err := core.NewWindow(cfg.window)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	defer window.Destroy()

	opts := renderer.DefaultOptions()
	opts.ShadowMapSize = cfg.shadowSize
	engine, err := renderer.NewRenderEngine(window, opts)
	if err != nil {
		return fmt.Errorf("render engine: %w", err)
	}
	defer engine.Destroy()

	loader := textures.NewLoader(cfg.workers)

	aspect := float32(window.Width) / float32(max(window.Height, 1))
	rig := lighting.BuildRig(cfg.assets, aspect, loader)
	engine.SetScene(rig.Scene)
	window.OnResize(engine.Resize)

	params := lighting.DefaultParams()
	updater := lighting.NewUpdater(params, rig)
	controls := panel.New(params, params.BulbTable(), params.HemiTable())

	im := input.NewManager(window)
	orbit := input.NewOrbitController(scene.NewOrbitCamera(rig.Camera, 1, 20))

	printControls()

	hud := &panel.Overlay{}
	sched := core.NewScheduler(window, func(now time.Time) {
		updater.Update(engine, now)
		if err := engine.Render(); err != nil {
			core.Logger().Error("render failed", "err", err)
			window.SetShouldClose(true)
			return
		}

		hud.Clear()
		hud.AddLine("%s", engine.Stats.Line())
		for _, line := range controls.Lines() {
			hud.AddLine("%s", line)
		}
		engine.DrawText(hud.Lines(), 10, 10)
		engine.Present()
		im.EndFrame()
	})
	sched.BeforeFrame(func() {
		if n := loader.Poll(); n > 0 {
			core.Logger().Debug("textures applied", "count", n)
		}
	})
	sched.BeforeFrame(func() {
		im.Update()
		if im.IsKeyPressed(core.KeyEscape) {
			window.SetShouldClose(true)
		}
		controls.HandleInput(im)
		orbit.Update(im)
	})
	sched.Run()

	if n := loader.Failed(); n > 0 {
		core.Logger().Warn("some textures never loaded", "failed", n)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid -log-level %q: %w", s, err)
	}
	return level, nil
}

var controlHelp = [][2]string{
	{"Left drag", "orbit camera"},
	{"Scroll", "zoom"},
	{"Up/Down", "select control"},
	{"Left/Right", "change value (Shift = coarse)"},
	{"Enter/Space", "toggle"},
	{"H", "show/hide controls"},
	{"Escape", "quit"},
}

func printControls() {
	var help panel.Overlay
	help.AddLine("Light Lab")
	for _, c := range controlHelp {
		help.AddLine("  %-14s %s", c[0], c[1])
	}
	fmt.Print(help.GetText())
}
