// Package frame steps the yard one frame at a time. Each step applies the
// frame's input to the camera, builds the view and projection matrices and
// issues the scene's draws, in order, against a Target.
package frame

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/taigrr/mechyard/pkg/camera"
	"github.com/taigrr/mechyard/pkg/input"
	"github.com/taigrr/mechyard/pkg/math3d"
	"github.com/taigrr/mechyard/pkg/render"
	"github.com/taigrr/mechyard/pkg/scene"
)

// Input is one frame's worth of device state.
type Input struct {
	Held []camera.Direction // Movement keys down this frame

	// Last known cursor position in terminal cells. Valid once any mouse
	// event has been seen.
	CursorX, CursorY float64
	CursorValid      bool

	Scroll float64 // Wheel units since the last frame, up positive

	ProjectionKey bool // Projection toggle key is down
	WireframeKey  bool // Wireframe toggle key is down

	FocusChanged bool // Terminal focus was lost or regained
	Quit         bool
}

// Uniforms are the per-frame values shared by every draw.
type Uniforms struct {
	View       math3d.Mat4
	Projection math3d.Mat4
	Eye        math3d.Vec3
	Light      render.PointLight
	Mode       ProjectionMode
	Wireframe  bool
}

// Target receives the draws of a frame.
type Target interface {
	Begin(u Uniforms)
	// Draw renders obj and reports whether it was drawn rather than culled.
	Draw(obj scene.Object) bool
	// Present hands the finished frame to the display. It is the only call
	// that may block.
	Present() error
}

// Stats summarizes a step.
type Stats struct {
	Delta     float64
	Objects   int
	Drawn     int
	Mode      ProjectionMode
	Wireframe bool
	Quit      bool
}

// Driver owns the camera, the projection toggle and the input state between
// frames. It is not safe for concurrent use.
type Driver struct {
	camera     *camera.Camera
	scene      *scene.Scene
	target     Target
	projection *Projection
	clock      *Clock
	logger     *slog.Logger

	mouse      input.MouseTracker
	smoother   *input.CursorSmoother
	mouseScale float64

	projectionKey input.EdgeTrigger
	wireframeKey  input.EdgeTrigger
	wireframe     bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithProjection replaces the default projection.
func WithProjection(p *Projection) Option {
	return func(d *Driver) {
		d.projection = p
	}
}

// WithStart sets the time the first frame's delta is measured from.
func WithStart(start time.Time) Option {
	return func(d *Driver) {
		d.clock = NewClock(start)
	}
}

// WithMouseScale sets how many mouse offset units one terminal cell is worth.
func WithMouseScale(scale float64) Option {
	return func(d *Driver) {
		d.mouseScale = scale
	}
}

// WithSmoother eases cursor samples before deltas are taken.
func WithSmoother(s *input.CursorSmoother) Option {
	return func(d *Driver) {
		d.smoother = s
	}
}

// WithLogger sets the logger for mode changes.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// NewDriver creates a driver drawing sc from cam into target. The clock starts
// now unless WithStart is given.
func NewDriver(cam *camera.Camera, sc *scene.Scene, target Target, options ...Option) *Driver {
	d := &Driver{
		camera:     cam,
		scene:      sc,
		target:     target,
		mouseScale: 1,
	}
	for _, option := range options {
		option(d)
	}

	if d.projection == nil {
		d.projection = NewProjection()
	}
	if d.clock == nil {
		d.clock = NewClock(time.Now())
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	return d
}

// Step runs one frame at now. A quit request ends the step before anything
// is drawn.
func (d *Driver) Step(now time.Time, in Input) (Stats, error) {
	dt := d.clock.Tick(now)
	stats := Stats{Delta: dt, Objects: len(d.scene.Objects)}

	if in.Quit {
		stats.Quit = true
		stats.Mode, stats.Wireframe = d.projection.Mode, d.wireframe
		return stats, nil
	}

	d.applyInput(dt, in)

	u := Uniforms{
		Projection: d.projection.Matrix(d.camera.Zoom()),
		View:       d.camera.ViewMatrix(),
		Eye:        d.camera.Position(),
		Light:      d.scene.Light,
		Mode:       d.projection.Mode,
		Wireframe:  d.wireframe,
	}
	stats.Mode, stats.Wireframe = u.Mode, u.Wireframe

	d.target.Begin(u)
	for _, obj := range d.scene.Objects {
		if d.target.Draw(obj) {
			stats.Drawn++
		}
	}

	if err := d.target.Present(); err != nil {
		return stats, fmt.Errorf("present frame: %w", err)
	}
	return stats, nil
}

func (d *Driver) applyInput(dt float64, in Input) {
	if in.FocusChanged {
		d.ResetCursor()
	}

	for _, dir := range in.Held {
		d.camera.ProcessMovement(dir, dt)
	}

	if in.CursorValid {
		x, y := in.CursorX*d.mouseScale, in.CursorY*d.mouseScale
		if d.smoother != nil {
			x, y = d.smoother.Update(x, y)
		}
		// Screen Y grows downward while pitch grows looking up.
		if dx, dy, ok := d.mouse.Sample(x, y); ok && (dx != 0 || dy != 0) {
			d.camera.ProcessMouseMovement(dx, -dy, true)
		}
	}

	if in.Scroll != 0 {
		d.camera.ProcessScroll(in.Scroll)
	}

	if d.projectionKey.Update(in.ProjectionKey) {
		d.projection.Toggle()
		d.logger.Debug("projection toggled", "mode", d.projection.Mode)
	}
	if d.wireframeKey.Update(in.WireframeKey) {
		d.wireframe = !d.wireframe
		d.logger.Debug("wireframe toggled", "enabled", d.wireframe)
	}
}

// ResetCursor forgets the cursor reference so the next sample does not turn
// the camera.
func (d *Driver) ResetCursor() {
	d.mouse.Reset()
	if d.smoother != nil {
		d.smoother.Reset()
	}
}

// SetMouseScale changes the cell-to-offset scale. The cursor reference is
// dropped since old and new samples are not comparable.
func (d *Driver) SetMouseScale(scale float64) {
	if scale == d.mouseScale {
		return
	}
	d.mouseScale = scale
	d.ResetCursor()
}

// Camera returns the driven camera.
func (d *Driver) Camera() *camera.Camera { return d.camera }

// Projection returns the projection state.
func (d *Driver) Projection() *Projection { return d.projection }

// Scene returns the drawn scene.
func (d *Driver) Scene() *scene.Scene { return d.scene }

// Wireframe reports whether wireframe mode is on.
func (d *Driver) Wireframe() bool { return d.wireframe }
