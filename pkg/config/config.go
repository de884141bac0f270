// Package config loads the yard's tuning file. Every field has a default, so
// a file only needs the keys it changes:
//
//	[camera]
//	speed = 4.0
//	scroll = "zoom"
//
//	[mouse]
//	smoothing = false
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/taigrr/mechyard/pkg/camera"
	"github.com/taigrr/mechyard/pkg/frame"
	"github.com/taigrr/mechyard/pkg/math3d"
	"github.com/taigrr/mechyard/pkg/render"
)

// ErrInvalid is returned when a loaded value is out of range.
var ErrInvalid = errors.New("invalid config")

// Config is the full set of tunables.
type Config struct {
	Window     Window     `toml:"window"`
	Camera     Camera     `toml:"camera"`
	Mouse      Mouse      `toml:"mouse"`
	Light      Light      `toml:"light"`
	Projection Projection `toml:"projection"`
}

// Window is the logical window size the orthographic volume is derived from.
type Window struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Camera holds the starting pose and the camera limits. Start values outside
// their ranges are clamped, not rejected.
type Camera struct {
	Position    [3]float64 `toml:"position"`
	Yaw         float64    `toml:"yaw"`
	Pitch       float64    `toml:"pitch"`
	Speed       float64    `toml:"speed"`
	SpeedMin    float64    `toml:"speed_min"`
	SpeedMax    float64    `toml:"speed_max"`
	SpeedStep   float64    `toml:"speed_step"`
	Sensitivity float64    `toml:"sensitivity"`
	Zoom        float64    `toml:"zoom"`
	ZoomMin     float64    `toml:"zoom_min"`
	ZoomMax     float64    `toml:"zoom_max"`
	ZoomStep    float64    `toml:"zoom_step"`
	PitchLimit  float64    `toml:"pitch_limit"`
	Scroll      string     `toml:"scroll"` // "speed" or "zoom"
}

// Mouse controls how terminal cursor cells become look offsets.
type Mouse struct {
	Scale     float64 `toml:"scale"` // Offset units per cell
	Smoothing bool    `toml:"smoothing"`
	Frequency float64 `toml:"frequency"` // Spring angular frequency
	Damping   float64 `toml:"damping"`   // Spring damping ratio
}

// Light is the point light. Terms are RGB intensities in 0-1.
type Light struct {
	Position [3]float64 `toml:"position"`
	Ambient  [3]float64 `toml:"ambient"`
	Diffuse  [3]float64 `toml:"diffuse"`
	Specular [3]float64 `toml:"specular"`
}

// Projection holds the clip planes and the orthographic scale.
type Projection struct {
	Near       float64 `toml:"near"`
	Far        float64 `toml:"far"`
	OrthoScale float64 `toml:"ortho_scale"`
	OrthoNear  float64 `toml:"ortho_near"`
	OrthoFar   float64 `toml:"ortho_far"`
}

// Defaults returns the stock tuning.
func Defaults() Config {
	return Config{
		Window: Window{Width: 800, Height: 600},
		Camera: Camera{
			Position:    [3]float64{0, 4, 20},
			Yaw:         -90,
			Speed:       2.5,
			SpeedMin:    0.5,
			SpeedMax:    7.5,
			SpeedStep:   0.5,
			Sensitivity: 0.1,
			Zoom:        45,
			ZoomMin:     1,
			ZoomMax:     45,
			ZoomStep:    1,
			PitchLimit:  89,
			Scroll:      "speed",
		},
		Mouse: Mouse{
			Scale:     10,
			Smoothing: true,
			Frequency: 12,
			Damping:   1,
		},
		Light: Light{
			Position: [3]float64{-15, 20, 15},
			Ambient:  [3]float64{0.1, 0.1, 0.1},
			Diffuse:  [3]float64{0.7, 0.7, 0.7},
			Specular: [3]float64{0.8, 0.8, 0.8},
		},
		Projection: Projection{
			Near:       0.1,
			Far:        100,
			OrthoScale: 50,
			OrthoNear:  -20,
			OrthoFar:   20,
		},
	}
}

// Load reads path over the defaults and validates the result. Unknown keys
// are an error so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Defaults()

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := Decode(f, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode reads TOML from r into cfg, keeping fields the input does not set.
func Decode(r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(c)
}

// Validate reports every out-of-range value, each wrapped in ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)

	cam := c.Camera
	check(cam.SpeedMin > 0 && cam.SpeedMin <= cam.SpeedMax, "speed range [%g, %g]", cam.SpeedMin, cam.SpeedMax)
	check(cam.SpeedStep > 0, "speed step %g", cam.SpeedStep)
	check(cam.Sensitivity > 0, "sensitivity %g", cam.Sensitivity)
	check(cam.ZoomMin > 0 && cam.ZoomMin <= cam.ZoomMax && cam.ZoomMax < 180, "zoom range [%g, %g]", cam.ZoomMin, cam.ZoomMax)
	check(cam.ZoomStep > 0, "zoom step %g", cam.ZoomStep)
	check(cam.PitchLimit > 0 && cam.PitchLimit < 90, "pitch limit %g", cam.PitchLimit)
	_, scrollErr := c.scrollTarget()
	check(scrollErr == nil, "scroll target %q", cam.Scroll)

	check(c.Mouse.Scale > 0, "mouse scale %g", c.Mouse.Scale)
	if c.Mouse.Smoothing {
		check(c.Mouse.Frequency > 0 && c.Mouse.Damping > 0, "smoothing spring %g/%g", c.Mouse.Frequency, c.Mouse.Damping)
	}

	p := c.Projection
	check(p.Near > 0 && p.Far > p.Near, "clip planes %g..%g", p.Near, p.Far)
	check(p.OrthoFar > p.OrthoNear, "ortho clip planes %g..%g", p.OrthoNear, p.OrthoFar)
	check(p.OrthoScale > 0, "ortho scale %g", p.OrthoScale)

	return errors.Join(errs...)
}

func (c Config) scrollTarget() (camera.ScrollTarget, error) {
	switch c.Camera.Scroll {
	case "", "speed":
		return camera.ScrollSpeed, nil
	case "zoom":
		return camera.ScrollZoom, nil
	}
	return 0, fmt.Errorf("unknown scroll target %q", c.Camera.Scroll)
}

// StartPosition returns the configured camera position.
func (c Config) StartPosition() math3d.Vec3 {
	return vec(c.Camera.Position)
}

// CameraOptions returns the full camera setup, starting pose included.
func (c Config) CameraOptions() []camera.Option {
	return append([]camera.Option{
		camera.WithYaw(c.Camera.Yaw),
		camera.WithPitch(c.Camera.Pitch),
		camera.WithSpeed(c.Camera.Speed),
		camera.WithZoom(c.Camera.Zoom),
	}, c.TuningOptions()...)
}

// TuningOptions returns the camera limits without the starting pose, for
// retuning a live camera.
func (c Config) TuningOptions() []camera.Option {
	scroll, _ := c.scrollTarget()
	return []camera.Option{
		camera.WithSpeedRange(camera.Range{Min: c.Camera.SpeedMin, Max: c.Camera.SpeedMax, Step: c.Camera.SpeedStep}),
		camera.WithZoomRange(camera.Range{Min: c.Camera.ZoomMin, Max: c.Camera.ZoomMax, Step: c.Camera.ZoomStep}),
		camera.WithSensitivity(c.Camera.Sensitivity),
		camera.WithPitchLimit(c.Camera.PitchLimit),
		camera.WithScrollTarget(scroll),
	}
}

// PointLight returns the configured light.
func (c Config) PointLight() render.PointLight {
	return render.PointLight{
		Position: vec(c.Light.Position),
		Ambient:  vec(c.Light.Ambient),
		Diffuse:  vec(c.Light.Diffuse),
		Specular: vec(c.Light.Specular),
	}
}

// ApplyProjection copies the window size and clip planes into p, keeping its
// mode and viewport.
func (c Config) ApplyProjection(p *frame.Projection) {
	p.WindowWidth = float64(c.Window.Width)
	p.WindowHeight = float64(c.Window.Height)
	p.Near, p.Far = c.Projection.Near, c.Projection.Far
	p.OrthoNear, p.OrthoFar = c.Projection.OrthoNear, c.Projection.OrthoFar
	p.OrthoScale = c.Projection.OrthoScale
}

func vec(v [3]float64) math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}
