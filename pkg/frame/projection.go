package frame

import "github.com/taigrr/mechyard/pkg/math3d"

// ProjectionMode is the state of the projection toggle.
type ProjectionMode int

const (
	Perspective ProjectionMode = iota
	Orthographic
)

func (m ProjectionMode) String() string {
	if m == Orthographic {
		return "ortho"
	}
	return "perspective"
}

// Projection builds the projection matrix for the current mode.
//
// Window is the logical window size the orthographic volume is derived from:
// its half height is WindowHeight/OrthoScale. Viewport is the size of the
// framebuffer being drawn, which sets the aspect ratio of both modes so the
// image is never stretched. With a viewport shaped like the window the
// orthographic half width is exactly WindowWidth/OrthoScale.
type Projection struct {
	Mode ProjectionMode

	WindowWidth, WindowHeight     float64
	ViewportWidth, ViewportHeight float64

	Near, Far           float64 // Perspective clip planes
	OrthoNear, OrthoFar float64 // Orthographic clip planes
	OrthoScale          float64
}

// NewProjection returns a perspective projection for an 800x600 window with
// clip planes 0.1..100, and an orthographic volume of scale 50 spanning
// depth -20..20.
func NewProjection() *Projection {
	return &Projection{
		Mode:           Perspective,
		WindowWidth:    800,
		WindowHeight:   600,
		ViewportWidth:  800,
		ViewportHeight: 600,
		Near:           0.1,
		Far:            100,
		OrthoNear:      -20,
		OrthoFar:       20,
		OrthoScale:     50,
	}
}

// Toggle flips between perspective and orthographic.
func (p *Projection) Toggle() {
	if p.Mode == Perspective {
		p.Mode = Orthographic
	} else {
		p.Mode = Perspective
	}
}

// SetViewport records the framebuffer size. Non-positive sizes are ignored.
func (p *Projection) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.ViewportWidth, p.ViewportHeight = float64(width), float64(height)
}

// Aspect returns the viewport aspect ratio.
func (p *Projection) Aspect() float64 {
	if p.ViewportHeight <= 0 {
		return 1
	}
	return p.ViewportWidth / p.ViewportHeight
}

// Matrix returns the projection for the current mode. zoom is the vertical
// field of view in degrees and only affects perspective.
func (p *Projection) Matrix(zoom float64) math3d.Mat4 {
	if p.Mode == Orthographic {
		halfH := p.WindowHeight / p.OrthoScale
		halfW := p.WindowWidth / p.OrthoScale
		if p.ViewportHeight > 0 {
			halfW = halfH * p.ViewportWidth / p.ViewportHeight
		}
		return math3d.Orthographic(-halfW, halfW, -halfH, halfH, p.OrthoNear, p.OrthoFar)
	}
	return math3d.Perspective(math3d.Radians(zoom), p.Aspect(), p.Near, p.Far)
}
