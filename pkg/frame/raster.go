package frame

import (
	"github.com/taigrr/mechyard/pkg/render"
	"github.com/taigrr/mechyard/pkg/scene"
)

// PresentFunc shows a finished framebuffer.
type PresentFunc func(fb *render.Framebuffer) error

// RasterTarget draws frames with the software rasterizer.
type RasterTarget struct {
	rasterizer *render.Rasterizer
	fb         *render.Framebuffer
	present    PresentFunc
	uniforms   Uniforms

	Background     render.Color
	WireframeColor render.Color
	Guides         bool // Grid, axes and light marker in wireframe mode
}

// NewRasterTarget creates a target drawing into fb. present may be nil when
// the caller reads the framebuffer itself.
func NewRasterTarget(fb *render.Framebuffer, present PresentFunc) *RasterTarget {
	return &RasterTarget{
		rasterizer:     render.NewRasterizer(fb),
		fb:             fb,
		present:        present,
		Background:     render.RGB(30, 30, 40),
		WireframeColor: render.ColorGreen,
		Guides:         true,
	}
}

// SetFramebuffer switches to a new framebuffer, e.g. after a resize.
func (t *RasterTarget) SetFramebuffer(fb *render.Framebuffer) {
	t.fb = fb
	t.rasterizer.SetFramebuffer(fb)
}

// Framebuffer returns the framebuffer being drawn.
func (t *RasterTarget) Framebuffer() *render.Framebuffer { return t.fb }

// Culling returns the frustum culling counters of the current frame.
func (t *RasterTarget) Culling() render.CullingStats { return t.rasterizer.CullingStats }

// Begin clears the frame and loads the camera.
func (t *RasterTarget) Begin(u Uniforms) {
	t.uniforms = u
	t.fb.Clear(t.Background)
	t.rasterizer.ClearDepth()
	t.rasterizer.ResetCullingStats()
	t.rasterizer.SetCamera(u.View, u.Projection, u.Eye)

	if u.Wireframe && t.Guides {
		t.rasterizer.DrawGrid(20, 1, 0, render.ColorGrid)
		t.rasterizer.DrawAxes(2)
		t.rasterizer.DrawPoint(u.Light.Position, 1, render.ColorLight)
	}
}

// Draw renders one object: as edges in wireframe mode, unlit when emissive,
// Phong lit otherwise. Objects whose bounds fall outside the view are skipped
// and Draw returns false.
func (t *RasterTarget) Draw(obj scene.Object) bool {
	if !t.rasterizer.Visible(obj.Bounds()) {
		return false
	}

	switch {
	case t.uniforms.Wireframe:
		t.rasterizer.DrawMeshWireframe(obj.Mesh, obj.Transform, t.WireframeColor)
	case obj.Emissive:
		t.rasterizer.DrawMeshUnlit(obj.Mesh, obj.Transform, obj.Material())
	default:
		t.rasterizer.DrawMesh(obj.Mesh, obj.Transform, obj.Material(), t.uniforms.Light)
	}
	return true
}

// Present passes the framebuffer on.
func (t *RasterTarget) Present() error {
	if t.present == nil {
		return nil
	}
	return t.present(t.fb)
}
