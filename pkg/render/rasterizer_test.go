package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/mechyard/pkg/math3d"
)

// createTestRasterizer creates a rasterizer with a camera at (0, 0, 10)
// looking at the origin through a 60 degree perspective.
func createTestRasterizer(width, height int) (*Rasterizer, *Framebuffer) {
	fb := NewFramebuffer(width, height)
	r := NewRasterizer(fb)
	eye := math3d.V3(0, 0, 10)
	r.SetCamera(
		math3d.LookAt(eye, math3d.Zero3(), math3d.Up()),
		math3d.Perspective(math3d.Radians(60), float64(width)/float64(height), 0.1, 100),
		eye,
	)
	return r, fb
}

// tilted turns a mesh away from every axis.
func tilted() math3d.Mat4 {
	return math3d.LookAt(math3d.Zero3(), math3d.V3(0.6, 0.3, -1), math3d.Up())
}

func drawn(fb *Framebuffer, x, y int) bool {
	return fb.GetPixel(x, y).A != 0
}

func TestBarycentric(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		want   math3d.Vec3
	}{
		{"vertex 0", 0, 0, math3d.V3(1, 0, 0)},
		{"vertex 1", 1, 0, math3d.V3(0, 1, 0)},
		{"vertex 2", 0, 1, math3d.V3(0, 0, 1)},
		{"centroid", 1.0 / 3, 1.0 / 3, math3d.V3(1.0/3, 1.0/3, 1.0/3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Triangle: (0,0), (1,0), (0,1)
			bc := barycentric(0, 0, 1, 0, 0, 1, tc.px, tc.py)
			assert.InDelta(t, tc.want.X, bc.X, 0.001)
			assert.InDelta(t, tc.want.Y, bc.Y, 0.001)
			assert.InDelta(t, tc.want.Z, bc.Z, 0.001)
		})
	}

	t.Run("outside triangle", func(t *testing.T) {
		bc := barycentric(0, 0, 1, 0, 0, 1, -1, -1)
		assert.False(t, bc.X >= 0 && bc.Y >= 0 && bc.Z >= 0)
	})
}

func TestClipNear(t *testing.T) {
	at := func(z, w float64) clipVertex {
		return clipVertex{pos: math3d.Vec4{Z: z, W: w}}
	}

	tests := []struct {
		name string
		in   []clipVertex
		want int
	}{
		{"all in front", []clipVertex{at(0, 1), at(0.5, 2), at(-0.5, 1)}, 3},
		{"one behind", []clipVertex{at(0, 1), at(-3, 1), at(0, 2)}, 4},
		{"two behind", []clipVertex{at(0, 1), at(-3, 1), at(-4, 2)}, 3},
		{"all behind", []clipVertex{at(-2, 1), at(-3, 1), at(-4, 2)}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := clipNear(tc.in, nil)
			require.Len(t, out, tc.want)
			for i, v := range out {
				assert.GreaterOrEqual(t, nearDistance(v.pos), -1e-12, "vertex %d", i)
			}
		})
	}
}

func TestDrawMeshCoversCenter(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)

	r.DrawMeshUnlit(frontTriangle(0), math3d.Identity(), Material{Color: ColorWhite})

	assert.Equal(t, ColorWhite, fb.GetPixel(20, 20))
	assert.Less(t, r.getDepth(20, 20), math.MaxFloat64)
	assert.False(t, drawn(fb, 0, 0), "corner pixel should be untouched")
}

func TestBackFacesSkippedUnlessTwoSided(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	white := Material{Color: ColorWhite}

	back := frontTriangle(0)
	back.faces[0] = [3]int{0, 2, 1}

	r.DrawMeshUnlit(back, math3d.Identity(), white)
	assert.False(t, drawn(fb, 20, 20))

	white.TwoSided = true
	r.DrawMeshUnlit(back, math3d.Identity(), white)
	assert.True(t, drawn(fb, 20, 20))
}

func TestDepthTestKeepsNearest(t *testing.T) {
	red := Material{Color: RGB(255, 0, 0)}
	green := Material{Color: RGB(0, 255, 0)}

	for _, order := range []string{"far first", "near first"} {
		t.Run(order, func(t *testing.T) {
			r, fb := createTestRasterizer(40, 40)
			far, near := frontTriangle(-2), frontTriangle(0)
			if order == "far first" {
				r.DrawMeshUnlit(far, math3d.Identity(), red)
				r.DrawMeshUnlit(near, math3d.Identity(), green)
			} else {
				r.DrawMeshUnlit(near, math3d.Identity(), green)
				r.DrawMeshUnlit(far, math3d.Identity(), red)
			}
			assert.Equal(t, RGB(0, 255, 0), fb.GetPixel(20, 20))
		})
	}
}

func TestNearPlaneClippingKeepsGroundBelowHorizon(t *testing.T) {
	const w, h = 40, 40
	r, fb := createTestRasterizer(w, h)

	// A ground triangle under the eye that runs from behind the camera to
	// well in front of it, wound clockwise seen from above.
	ground := new(testMesh).addTriangle(
		math3d.V3(-5, -1, 20), math3d.V3(0, -1, -10), math3d.V3(5, -1, 20), math3d.Up())
	r.DrawMeshUnlit(ground, math3d.Identity(), Material{Color: ColorWhite})

	assert.True(t, drawn(fb, w/2, h-1), "ground directly below the camera should be visible")
	for y := range h / 2 {
		for x := range w {
			require.False(t, drawn(fb, x, y), "pixel (%d, %d) above the horizon was drawn", x, y)
		}
	}
}

func TestTexturedQuadIsPerspectiveCorrect(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)

	red, blue := RGB(255, 0, 0), RGB(0, 0, 255)
	tex := NewTexture(2, 1)
	tex.Wrap = WrapClamp
	tex.SetPixel(0, 0, red)
	tex.SetPixel(1, 0, blue)

	quad := new(testMesh).addQuad(
		[4]math3d.Vec3{{X: -2, Y: -2}, {X: -2, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: -2}},
		math3d.V3(0, 0, 1),
		quadUVs,
	)
	r.DrawMeshUnlit(quad, math3d.Identity(), Material{Diffuse: tex})

	// World x = -1 and x = 1 land on pixels 16 and 23.
	assert.Equal(t, red, fb.GetPixel(16, 20))
	assert.Equal(t, blue, fb.GetPixel(23, 20))
}

func TestPhongLighting(t *testing.T) {
	gray := RGB(100, 100, 100)
	light := PointLight{
		Position: math3d.V3(0, 0, 10),
		Ambient:  math3d.V3(0.1, 0.1, 0.1),
		Diffuse:  math3d.V3(0.7, 0.7, 0.7),
		Specular: math3d.V3(0.8, 0.8, 0.8),
	}

	r, fb := createTestRasterizer(40, 40)
	r.DrawMesh(frontTriangle(0), math3d.Identity(), Material{Color: gray, Shininess: 1}, light)
	plain := fb.GetPixel(20, 20)

	// Ambient plus nearly head-on diffuse: about 0.79 of the base color.
	assert.InDelta(t, 79, float64(plain.R), 4)

	shiny := NewTexture(1, 1)
	shiny.SetPixel(0, 0, ColorWhite)

	r, fb = createTestRasterizer(40, 40)
	r.DrawMesh(frontTriangle(0), math3d.Identity(), Material{Color: gray, Specular: shiny, Shininess: 1}, light)
	lit := fb.GetPixel(20, 20)

	assert.Greater(t, lit.R, plain.R, "specular map should brighten the surface")
}

func TestUnlitIgnoresLight(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	lamp := RGB(200, 100, 50)

	r.DrawMeshUnlit(newUnitCube(), math3d.Translate(math3d.V3(0, 0, -1)), Material{Color: lamp})
	assert.Equal(t, lamp, fb.GetPixel(20, 20))
}

func TestVisible(t *testing.T) {
	r, _ := createTestRasterizer(40, 40)
	unit := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))

	assert.False(t, r.Visible(unit.Transform(math3d.Translate(math3d.V3(0, 0, 50)))), "box behind the camera")
	assert.True(t, r.Visible(unit))
	assert.Equal(t, CullingStats{MeshesTested: 2, MeshesCulled: 1, MeshesDrawn: 1}, r.CullingStats)

	r.ResetCullingStats()
	assert.Zero(t, r.CullingStats)
}

func TestVisibleFollowsCamera(t *testing.T) {
	r, _ := createTestRasterizer(40, 30)
	behind := NewAABB(math3d.V3(-1, -1, 19), math3d.V3(1, 1, 21))
	require.False(t, r.Visible(behind))

	eye := math3d.V3(0, 0, 30)
	r.SetCamera(
		math3d.LookAt(eye, math3d.Zero3(), math3d.Up()),
		math3d.Perspective(math3d.Radians(60), 4.0/3, 0.1, 100),
		eye,
	)
	assert.True(t, r.Visible(behind), "SetCamera should rebuild the frustum")
}

func TestClosedMeshSameWithOrWithoutBackFaces(t *testing.T) {
	transform := math3d.Translate(math3d.V3(0.5, -0.3, 0)).Mul(tilted())
	mat := Material{Color: RGB(180, 160, 140), Shininess: 32}

	culled, fbCulled := createTestRasterizer(40, 40)
	culled.DrawMesh(newUnitCube(), transform, mat, testLight())

	both, fbBoth := createTestRasterizer(40, 40)
	mat.TwoSided = true
	both.DrawMesh(newUnitCube(), transform, mat, testLight())

	// Back faces lose the depth test everywhere except, at most, a few pixel
	// centers that land exactly on a silhouette edge.
	diff := 0
	for i := range fbCulled.Pixels {
		if fbCulled.Pixels[i] != fbBoth.Pixels[i] {
			diff++
		}
	}
	assert.LessOrEqual(t, diff, 3)
	assert.Equal(t, fbCulled.GetPixel(20, 20), fbBoth.GetPixel(20, 20))
}

func TestOrthographicProjection(t *testing.T) {
	fb := NewFramebuffer(40, 40)
	r := NewRasterizer(fb)
	eye := math3d.V3(0, 0, 10)
	r.SetCamera(
		math3d.LookAt(eye, math3d.Zero3(), math3d.Up()),
		math3d.Orthographic(-2, 2, -2, 2, -20, 20),
		eye,
	)

	half := new(testMesh).addQuad(
		[4]math3d.Vec3{{X: 0, Y: -2}, {X: 0, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: -2}},
		math3d.V3(0, 0, 1),
		[4]math3d.Vec2{},
	)
	r.DrawMeshUnlit(half, math3d.Identity(), Material{Color: ColorWhite})

	assert.True(t, drawn(fb, 30, 20), "right half should be covered")
	assert.False(t, drawn(fb, 10, 20), "left half should be empty")
}

func TestDrawMeshWireframe(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)

	r.DrawMeshWireframe(newUnitCube(), math3d.Identity(), ColorGreen)

	count := 0
	for _, p := range fb.Pixels {
		if p == ColorGreen {
			count++
		}
	}
	assert.Positive(t, count)
	assert.Equal(t, math.MaxFloat64, r.getDepth(20, 20), "wireframe should not write depth")
}

func TestGuidesClipAtNearPlane(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)

	// The grid passes under and behind the eye; only the part in front
	// may reach the framebuffer.
	r.DrawGrid(40, 5, -1, ColorGrid)
	r.DrawAxes(3)
	r.DrawPoint(math3d.V3(0, 2, 0), 1, ColorLight)

	assert.Contains(t, fb.Pixels, ColorGrid)
	assert.Contains(t, fb.Pixels, ColorLight)
}

func TestCombineSaturates(t *testing.T) {
	got := combine(RGB(200, 10, 0), ColorWhite, math3d.V3(2, 1, 1), math3d.V3(0, 0, 0.5))
	assert.Equal(t, Color{R: 255, G: 10, B: 128, A: 255}, got)
}

func TestPointLightShade(t *testing.T) {
	light := testLight()
	light.Position = math3d.V3(0, 10, 0)

	// Light straight above, eye straight above: full diffuse and highlight.
	diffuse, specular := light.Shade(math3d.Zero3(), math3d.Up(), math3d.V3(0, 5, 0), 64)
	assert.InDelta(t, 0.8, diffuse.X, 1e-9)
	assert.InDelta(t, 0.8, specular.X, 1e-9)

	// Light below the surface: ambient only, no highlight.
	light.Position = math3d.V3(0, -10, 0)
	diffuse, specular = light.Shade(math3d.Zero3(), math3d.Up(), math3d.V3(0, 5, 0), 64)
	assert.InDelta(t, 0.1, diffuse.X, 1e-9)
	assert.Zero(t, specular.X)
}

func TestMin3Max3(t *testing.T) {
	for _, abc := range [][3]float64{{1, 2, 3}, {3, 1, 2}, {2, 3, 1}} {
		assert.Equal(t, 1.0, min3(abc[0], abc[1], abc[2]))
		assert.Equal(t, 3.0, max3(abc[0], abc[1], abc[2]))
	}
}

func TestRasterizerClearDepth(t *testing.T) {
	r, _ := createTestRasterizer(10, 10)

	r.setDepth(5, 5, 1.0)
	require.Equal(t, 1.0, r.getDepth(5, 5))

	r.ClearDepth()
	assert.Equal(t, math.MaxFloat64, r.getDepth(5, 5))
}

func TestRasterizerDepthBoundsCheck(t *testing.T) {
	r, _ := createTestRasterizer(10, 10)

	assert.Equal(t, math.MaxFloat64, r.getDepth(-1, 0))
	assert.Equal(t, math.MaxFloat64, r.getDepth(100, 0))

	assert.NotPanics(t, func() {
		r.setDepth(-1, 0, 1.0)
		r.setDepth(100, 0, 1.0)
	})
}

func TestSetFramebufferResizesDepth(t *testing.T) {
	r, _ := createTestRasterizer(10, 10)
	r.SetFramebuffer(NewFramebuffer(30, 20))

	require.Equal(t, 30, r.Width())
	require.Equal(t, 20, r.Height())
	assert.Equal(t, math.MaxFloat64, r.getDepth(29, 19), "new depth buffer should start cleared")
}

func BenchmarkDrawMesh(b *testing.B) {
	r, fb := createTestRasterizer(160, 96)
	cube := newUnitCube()
	mat := Material{Color: RGB(200, 200, 200), Shininess: 64}
	light := testLight()
	transform := tilted().Mul(math3d.ScaleUniform(2))

	for b.Loop() {
		fb.Clear(ColorBlack)
		r.ClearDepth()
		r.DrawMesh(cube, transform, mat, light)
	}
}
