// mechyard - fly through a textured 3D yard in your terminal.
//
// Controls:
//
//	Mouse       - Look around
//	Scroll      - Movement speed (or field of view, see config)
//	W/A/S/D     - Move forward/left/back/right
//	Q/E         - Move up/down
//	P           - Toggle perspective/orthographic projection
//	X           - Toggle wireframe mode
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/mechyard/pkg/camera"
	"github.com/taigrr/mechyard/pkg/config"
	"github.com/taigrr/mechyard/pkg/frame"
	"github.com/taigrr/mechyard/pkg/input"
	"github.com/taigrr/mechyard/pkg/render"
	"github.com/taigrr/mechyard/pkg/scene"
)

var (
	configPath  = flag.String("config", "", "Path to a TOML tuning file (reloaded on change)")
	textureDir  = flag.String("textures", "", "Directory with pavement.jpg, steel.jpg, hedge.jpg and plastic.jpg")
	modelPath   = flag.String("model", "", "Optional GLB model placed in the yard")
	targetFPS   = flag.Int("fps", 60, "Target FPS")
	bgColor     = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	logPath     = flag.String("log", "", "Write diagnostics to this file")
	debug       = flag.Bool("debug", false, "Log at debug level")
	snapshotOut = flag.String("snapshot", "", "Render one frame to this PNG file and exit")
	dumpConfig  = flag.Bool("dump-config", false, "Print the default tuning file and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mechyard - Terminal 3D yard walkthrough\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mechyard [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse       - Look around\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Movement speed (or zoom)\n")
		fmt.Fprintf(os.Stderr, "  W/A/S/D     - Move\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Move up/down\n")
		fmt.Fprintf(os.Stderr, "  P           - Toggle orthographic projection\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if *dumpConfig {
		if err := config.Defaults().Encode(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger opens the diagnostics log. Without a path everything is
// discarded: the alternate screen owns the terminal.
func newLogger(path string, debug bool) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}

func parseColor(s string) render.Color {
	var r, g, b uint8 = 30, 30, 40
	fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b)
	return render.RGB(r, g, b)
}

// world is everything loaded before the first frame.
type world struct {
	cfg   config.Config
	scene *scene.Scene
}

func loadWorld(logger *slog.Logger) (*world, error) {
	cfg := config.Defaults()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return nil, err
		}
	}

	textures := scene.ProceduralTextures()
	if *textureDir != "" {
		var err error
		if textures, err = scene.LoadTextures(*textureDir); err != nil {
			return nil, err
		}
		logger.Info("textures loaded", "dir", *textureDir)
	}

	sc := scene.Yard(textures, scene.WithLight(cfg.PointLight()))

	if *modelPath != "" {
		prop, err := scene.LoadProp(*modelPath, scene.PropBase, scene.PropHeight, textures.Plastic)
		if err != nil {
			return nil, err
		}
		sc.Add(prop)
		logger.Info("model loaded", "path", *modelPath,
			"vertices", prop.Mesh.VertexCount(), "triangles", prop.Mesh.TriangleCount())
	}

	return &world{cfg: cfg, scene: sc}, nil
}

func newDriver(w *world, target frame.Target, logger *slog.Logger, start time.Time, width, height int) *frame.Driver {
	cam := camera.New(w.cfg.StartPosition(), w.cfg.CameraOptions()...)

	proj := frame.NewProjection()
	w.cfg.ApplyProjection(proj)
	proj.SetViewport(width, height)

	options := []frame.Option{
		frame.WithProjection(proj),
		frame.WithStart(start),
		frame.WithMouseScale(w.cfg.Mouse.Scale),
		frame.WithLogger(logger),
	}
	if w.cfg.Mouse.Smoothing {
		options = append(options, frame.WithSmoother(
			input.NewCursorSmoother(*targetFPS, w.cfg.Mouse.Frequency, w.cfg.Mouse.Damping)))
	}
	return frame.NewDriver(cam, w.scene, target, options...)
}

// applyConfig retunes the running driver without moving the camera.
func applyConfig(d *frame.Driver, cfg config.Config) {
	d.Camera().Retune(cfg.TuningOptions()...)
	d.Scene().SetLight(cfg.PointLight())
	cfg.ApplyProjection(d.Projection())
	d.SetMouseScale(cfg.Mouse.Scale)
}

// snapshot renders a single frame from the starting pose into a PNG file.
func snapshot(w *world, path string, bg render.Color, logger *slog.Logger) error {
	fb := render.NewFramebuffer(w.cfg.Window.Width, w.cfg.Window.Height)
	target := frame.NewRasterTarget(fb, func(fb *render.Framebuffer) error {
		return fb.SavePNG(path)
	})
	target.Background = bg

	now := time.Now()
	d := newDriver(w, target, logger, now, fb.Width, fb.Height)
	stats, err := d.Step(now, frame.Input{})
	if err != nil {
		return err
	}
	logger.Info("snapshot written", "path", path, "drawn", stats.Drawn, "objects", stats.Objects)
	return nil
}

func run() error {
	logger, closeLog, err := newLogger(*logPath, *debug)
	if err != nil {
		return err
	}
	defer closeLog()

	w, err := loadWorld(logger)
	if err != nil {
		return err
	}
	bg := parseColor(*bgColor)

	if *snapshotOut != "" {
		return snapshot(w, *snapshotOut, bg, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	var updates <-chan config.Config
	if *configPath != "" {
		if updates, err = config.Watch(ctx, *configPath, logger); err != nil {
			logger.Warn("config hot reload disabled", "error", err)
		}
	}

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1004h") // Focus in/out reports

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1004l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)

	target := frame.NewRasterTarget(fb, func(fb *render.Framebuffer) error {
		termRenderer.Render(fb)
		return termRenderer.Flush()
	})
	target.Background = bg

	start := time.Now()
	driver := newDriver(w, target, logger, start, fbWidth, fbHeight)
	hud := NewHUD(os.Stdout, w.scene.TriangleCount(), start)
	ctrl := newControls(input.DefaultHoldWindow)

	// Events are queued and folded in between frames so all state is
	// mutated on this goroutine.
	events := make(chan uv.Event, 256)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	logger.Info("started", "cells", fmt.Sprintf("%dx%d", width, height),
		"framebuffer", fmt.Sprintf("%dx%d", fbWidth, fbHeight), "objects", len(w.scene.Objects))

	targetDuration := time.Second / time.Duration(max(*targetFPS, 1))

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopped", "reason", context.Cause(ctx))
			return nil
		case cfg, ok := <-updates:
			if ok {
				applyConfig(driver, cfg)
			} else {
				updates = nil
			}
		default:
		}

		now := time.Now()
		drainEvents(events, ctrl, now)

		if cols, rows, ok := ctrl.takeResize(); ok {
			width, height = cols, rows
			term.Erase()
			term.Resize(width, height)
			termRenderer = render.NewTerminalRenderer(term, width, height)
			fbWidth, fbHeight = termRenderer.FramebufferSize()
			target.SetFramebuffer(render.NewFramebuffer(fbWidth, fbHeight))
			driver.Projection().SetViewport(fbWidth, fbHeight)
			logger.Debug("resized", "cells", fmt.Sprintf("%dx%d", width, height))
		}
		if ctrl.takeHUDToggle(now) {
			hud.Toggle()
		}

		stats, err := driver.Step(now, ctrl.sample(now))
		if err != nil {
			return err
		}
		if stats.Quit {
			logger.Info("quit requested")
			return nil
		}

		hud.UpdateFPS(now)
		hud.Render(width, height, driver.Camera(), stats)

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// drainEvents applies every queued event without blocking.
func drainEvents(events <-chan uv.Event, ctrl *controls, now time.Time) {
	for {
		select {
		case ev := <-events:
			ctrl.handle(ev, now)
		default:
			return
		}
	}
}
