package render

import (
	"math"

	"github.com/taigrr/mechyard/pkg/math3d"
)

// Rasterizer handles software triangle rasterization.
type Rasterizer struct {
	fb           *Framebuffer
	zbuffer      []float64 // Depth buffer (1D array, row-major)
	viewProj     math3d.Mat4
	eye          math3d.Vec3
	frustum      Frustum
	CullingStats CullingStats // Statistics for the current frame
}

// CullingStats tracks frustum culling results.
type CullingStats struct {
	MeshesTested int // Total meshes tested for culling
	MeshesCulled int // Meshes culled (not rendered)
	MeshesDrawn  int // Meshes that passed culling
}

// NewRasterizer creates a rasterizer drawing into fb with an identity
// view-projection.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{fb: fb}
	r.SetCamera(math3d.Identity(), math3d.Identity(), math3d.Zero3())
	r.Resize()
	return r
}

// SetFramebuffer points the rasterizer at a new framebuffer, for example after
// the terminal was resized.
func (r *Rasterizer) SetFramebuffer(fb *Framebuffer) {
	r.fb = fb
	r.Resize()
}

// Resize resizes the rasterizer's buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
	r.ClearDepth()
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ClearDepth clears the Z-buffer (call before each frame).
func (r *Rasterizer) ClearDepth() {
	// Use copy-doubling for faster clearing
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// SetCamera sets the view and projection used by subsequent draws and
// re-extracts the culling frustum. eye is the camera position in world space.
func (r *Rasterizer) SetCamera(view, projection math3d.Mat4, eye math3d.Vec3) {
	r.viewProj = projection.Mul(view)
	r.frustum = NewFrustum(r.viewProj)
	r.eye = eye
}

// ResetCullingStats resets the culling statistics (call once per frame).
func (r *Rasterizer) ResetCullingStats() {
	r.CullingStats = CullingStats{}
}

// Visible reports whether a world-space box can reach the screen under the
// current camera and counts the result in CullingStats.
func (r *Rasterizer) Visible(bounds AABB) bool {
	r.CullingStats.MeshesTested++
	if !r.frustum.Intersects(bounds) {
		r.CullingStats.MeshesCulled++
		return false
	}
	r.CullingStats.MeshesDrawn++
	return true
}

// getDepth returns the depth at (x, y).
func (r *Rasterizer) getDepth(x, y int) float64 {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.Width()+x]
}

// setDepth sets the depth at (x, y).
func (r *Rasterizer) setDepth(x, y int, z float64) {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return
	}
	r.zbuffer[y*r.Width()+x] = z
}

// clipVertex is a corner in clip space with the attributes interpolated
// across the triangle. Lighting is evaluated per vertex before clipping.
type clipVertex struct {
	pos      math3d.Vec4
	uv       math3d.Vec2
	diffuse  math3d.Vec3
	specular math3d.Vec3
}

func (a clipVertex) lerp(b clipVertex, t float64) clipVertex {
	return clipVertex{
		pos:      a.pos.Lerp(b.pos, t),
		uv:       a.uv.Lerp(b.uv, t),
		diffuse:  a.diffuse.Lerp(b.diffuse, t),
		specular: a.specular.Lerp(b.specular, t),
	}
}

// nearDistance is positive in front of the near plane (z >= -w).
func nearDistance(p math3d.Vec4) float64 {
	return p.Z + p.W
}

// clipNear clips a convex polygon against the near plane, appending the
// result to out[:0]. A triangle comes back with 0, 3 or 4 corners, all with
// w > 0.
func clipNear(in, out []clipVertex) []clipVertex {
	out = out[:0]
	for i := range in {
		a := in[i]
		b := in[(i+1)%len(in)]
		da, db := nearDistance(a.pos), nearDistance(b.pos)

		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, a.lerp(b, da/(da-db)))
		}
	}
	return out
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	X, Y     float64 // Screen coordinates
	Z        float64 // NDC depth (for Z-buffer)
	W        float64 // W coordinate (for perspective-correct interpolation)
	UV       math3d.Vec2
	Diffuse  math3d.Vec3
	Specular math3d.Vec3
}

func (r *Rasterizer) toScreen(c clipVertex) screenVertex {
	invW := 1 / c.pos.W
	return screenVertex{
		X:        (c.pos.X*invW + 1) * 0.5 * float64(r.Width()),
		Y:        (1 - c.pos.Y*invW) * 0.5 * float64(r.Height()), // Y flipped
		Z:        c.pos.Z * invW,
		W:        c.pos.W,
		UV:       c.uv,
		Diffuse:  c.diffuse,
		Specular: c.specular,
	}
}

// shadeVertex moves a world-space vertex to clip space and evaluates its
// lighting. A nil light leaves the surface at full, unlit intensity.
func (r *Rasterizer) shadeVertex(world, normal math3d.Vec3, uv math3d.Vec2, mat *Material, light *PointLight) clipVertex {
	c := clipVertex{
		pos:     r.viewProj.MulVec4(math3d.Point(world)),
		uv:      uv,
		diffuse: unlit,
	}
	if light != nil {
		c.diffuse, c.specular = light.Shade(world, normal, r.eye, mat.Shininess)
	}
	return c
}

// drawClipped clips against the near plane and fans the result into
// triangles.
func (r *Rasterizer) drawClipped(tri [3]clipVertex, mat *Material) {
	var buf [4]clipVertex
	poly := clipNear(tri[:], buf[:0])
	if len(poly) < 3 {
		return
	}

	var sv [4]screenVertex
	for i, c := range poly {
		sv[i] = r.toScreen(c)
	}
	for i := 1; i+1 < len(poly); i++ {
		r.rasterize(sv[0], sv[i], sv[i+1], mat)
	}
}

// rasterize fills a screen-space triangle with perspective-correct UVs and
// lighting.
func (r *Rasterizer) rasterize(a, b, c screenVertex, mat *Material) {
	// Backface culling (using screen-space winding)
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if cross == 0 {
		return // Degenerate
	}
	if cross < 0 && !mat.TwoSided {
		return // Back-facing
	}

	// Find bounding box
	minX := int(math.Max(0, math.Floor(min3(a.X, b.X, c.X))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max3(a.X, b.X, c.X))))
	minY := int(math.Max(0, math.Floor(min3(a.Y, b.Y, c.Y))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max3(a.Y, b.Y, c.Y))))

	invW := [3]float64{1 / a.W, 1 / b.W, 1 / c.W}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5

			bc := barycentric(a.X, a.Y, b.X, b.Y, c.X, c.Y, px, py)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			// NDC depth is affine in screen space
			z := bc.X*a.Z + bc.Y*b.Z + bc.Z*c.Z
			if z > 1 || z >= r.getDepth(x, y) {
				continue
			}

			// Interpolate attribute/W and 1/W, then divide
			w0, w1, w2 := bc.X*invW[0], bc.Y*invW[1], bc.Z*invW[2]
			oneOverW := w0 + w1 + w2
			if oneOverW == 0 {
				continue
			}
			norm := 1 / oneOverW

			u := (w0*a.UV.X + w1*b.UV.X + w2*c.UV.X) * norm
			v := (w0*a.UV.Y + w1*b.UV.Y + w2*c.UV.Y) * norm
			diffuse := a.Diffuse.Scale(w0).Add(b.Diffuse.Scale(w1)).Add(c.Diffuse.Scale(w2)).Scale(norm)
			specular := a.Specular.Scale(w0).Add(b.Specular.Scale(w1)).Add(c.Specular.Scale(w2)).Scale(norm)

			color := combine(mat.diffuseAt(u, v), mat.specularAt(u, v), diffuse, specular)

			r.setDepth(x, y, z)
			r.fb.SetPixel(x, y, color)
		}
	}
}

// barycentric calculates barycentric coordinates for point (px, py) in triangle.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	v0x, v0y := x2-x0, y2-y0
	v1x, v1y := x1-x0, y1-y0
	v2x, v2y := px-x0, py-y0

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	invDenom := 1.0 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return math3d.V3(1-u-v, v, u)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

// MeshRenderer is the mesh view the rasterizer needs. It keeps render free of
// a models import.
type MeshRenderer interface {
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) [3]int
}

// DrawMesh renders a mesh lit by a point light. Culling is the caller's
// choice, see Visible.
func (r *Rasterizer) DrawMesh(mesh MeshRenderer, transform math3d.Mat4, mat Material, light PointLight) {
	r.drawMesh(mesh, transform, &mat, &light)
}

// DrawMeshUnlit renders a mesh at full material intensity, for light sources
// and other emissive objects.
func (r *Rasterizer) DrawMeshUnlit(mesh MeshRenderer, transform math3d.Mat4, mat Material) {
	r.drawMesh(mesh, transform, &mat, nil)
}

func (r *Rasterizer) drawMesh(mesh MeshRenderer, transform math3d.Mat4, mat *Material, light *PointLight) {
	normalMatrix := transform.NormalMatrix()

	for i := range mesh.TriangleCount() {
		face := mesh.GetFace(i)

		var cv [3]clipVertex
		for k, idx := range face {
			p, n, uv := mesh.GetVertex(idx)
			world := transform.MulVec3(p)
			cv[k] = r.shadeVertex(world, normalMatrix.MulVec3Dir(n), uv, mat, light)
		}
		r.drawClipped(cv, mat)
	}
}

// DrawMeshWireframe draws every triangle edge of a mesh with no depth test
// and no backface culling.
func (r *Rasterizer) DrawMeshWireframe(mesh MeshRenderer, transform math3d.Mat4, color Color) {
	for i := range mesh.TriangleCount() {
		face := mesh.GetFace(i)

		p0, _, _ := mesh.GetVertex(face[0])
		p1, _, _ := mesh.GetVertex(face[1])
		p2, _, _ := mesh.GetVertex(face[2])

		v0 := transform.MulVec3(p0)
		v1 := transform.MulVec3(p1)
		v2 := transform.MulVec3(p2)

		r.drawLine3D(v0, v1, color)
		r.drawLine3D(v1, v2, color)
		r.drawLine3D(v2, v0, color)
	}
}

// drawLine3D projects a world-space segment, trimmed to the near plane.
func (r *Rasterizer) drawLine3D(a, b math3d.Vec3, color Color) {
	clipA := r.viewProj.MulVec4(math3d.Point(a))
	clipB := r.viewProj.MulVec4(math3d.Point(b))

	da, db := nearDistance(clipA), nearDistance(clipB)
	switch {
	case da < 0 && db < 0:
		return
	case da < 0:
		clipA = clipA.Lerp(clipB, da/(da-db))
	case db < 0:
		clipB = clipB.Lerp(clipA, db/(db-da))
	}

	x0, y0 := r.project(clipA)
	x1, y1 := r.project(clipB)
	r.fb.DrawLine(x0, y0, x1, y1, color)
}

// project maps a clip-space point with w > 0 to pixel coordinates.
func (r *Rasterizer) project(p math3d.Vec4) (int, int) {
	x := (p.X/p.W + 1) * 0.5 * float64(r.Width())
	y := (1 - p.Y/p.W) * 0.5 * float64(r.Height())
	return int(math.Floor(x)), int(math.Floor(y))
}
