package math3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func assertVec(t *testing.T, want, got Vec3, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, eps, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, eps, msgAndArgs...)
}

func TestVec3(t *testing.T) {
	a, b := V3(1, 2, 2), V3(0, 1, 0)

	assert.Equal(t, 3.0, a.Len())
	assert.Equal(t, V3(1, 3, 2), a.Add(b))
	assert.Equal(t, V3(1, 1, 2), a.Sub(b))
	assert.Equal(t, V3(-2, 0, 1), a.Cross(b))
	assert.Zero(t, a.Cross(b).Dot(a), "cross product is perpendicular")
	assertVec(t, V3(1.0/3, 2.0/3, 2.0/3), a.Normalize())
	assert.Equal(t, Zero3(), Zero3().Normalize(), "zero vector stays zero")
	assertVec(t, V3(1, -2, 2), a.Reflect(Up()))
	assert.Equal(t, V3(0, 1, 0), a.Min(b))
	assert.Equal(t, V3(1, 2, 2), a.Max(b))
	assert.Equal(t, V3(0.5, 1.5, 1), a.Lerp(b, 0.5))
}

func TestVec4LerpKeepsW(t *testing.T) {
	mid := Point(V3(0, 0, -2)).Lerp(Vec4{0, 0, 4, 3}, 0.5)
	assert.Equal(t, Vec4{0, 0, 1, 2}, mid)
	assert.Equal(t, V3(0, 0, 0.5), mid.Divide())
}

func TestTransforms(t *testing.T) {
	p := V3(1, 1, 1)

	assert.Equal(t, p, Identity().MulVec3(p))
	assert.Equal(t, V3(4, 0, 2), Translate(V3(3, -1, 1)).MulVec3(p))
	assert.Equal(t, V3(2, 3, 4), Scale(V3(2, 3, 4)).MulVec3(p))
	assert.Equal(t, p, Translate(V3(3, -1, 1)).MulVec3Dir(p), "directions ignore translation")

	// Mul applies the right-hand matrix first.
	m := Translate(V3(3, -1, 4)).Mul(ScaleUniform(2))
	assert.Equal(t, V3(5, 1, 6), m.MulVec3(p))
	assert.Equal(t, V3(8, 0, 10), ScaleUniform(2).Mul(Translate(V3(3, -1, 4))).MulVec3(p))
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	eye := V3(0, 4, 20)
	view := LookAt(eye, eye.Add(V3(0, 0, -1)), Up())

	assertVec(t, Zero3(), view.MulVec3(eye), "eye in view space")
	assertVec(t, V3(0, 0, -5), view.MulVec3(eye.Add(V3(0, 0, -5))), "point ahead")

	// Looking down +X puts world +Z on the right.
	view = LookAt(Zero3(), V3(10, 0, 0), Up())
	assertVec(t, V3(1, 0, 0), view.MulVec3(V3(0, 0, 1)))
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective(Radians(45), 4.0/3.0, 0.1, 100)

	tests := []struct {
		name string
		z    float64
		ndc  float64
	}{
		{"near plane", -0.1, -1},
		{"far plane", -100, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clip := proj.MulVec4(Point(V3(0, 0, tc.z)))
			assert.InDelta(t, tc.ndc, clip.Divide().Z, 1e-6)
		})
	}

	// The vertical edge of the view at depth 1 lands on y = 1.
	edge := proj.MulVec3(V3(0, math.Tan(Radians(22.5)), -1))
	assert.InDelta(t, 1, edge.Y, 1e-9)
}

func TestOrthographicBounds(t *testing.T) {
	proj := Orthographic(-16, 16, -12, 12, -20, 20)

	assertVec(t, V3(1, 1, 0), proj.MulVec3(V3(16, 12, 0)))

	// Closer points get smaller depth so the z-buffer keeps them.
	nearer := proj.MulVec3(V3(0, 0, -1)).Z
	farther := proj.MulVec3(V3(0, 0, -10)).Z
	assert.Less(t, nearer, farther)
}

func TestNormalMatrixKeepsNormalsPerpendicular(t *testing.T) {
	m := Translate(V3(5, 0, 0)).Mul(Scale(V3(4, 1, 1)))
	// Surface spanned by (1,1,0) and (0,0,1) has normal (1,-1,0).
	tangent := m.MulVec3Dir(V3(1, 1, 0))
	normal := m.NormalMatrix().MulVec3Dir(V3(1, -1, 0))

	assert.InDelta(t, 0, tangent.Dot(normal), eps)
	assert.Positive(t, normal.X, "orientation is kept")
	assert.Equal(t, Identity(), Scale(V3(1, 0, 1)).NormalMatrix(), "singular block")
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, want float64
	}{
		{-5, 0.5},
		{3, 3},
		{9, 7.5},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Clamp(tc.v, 0.5, 7.5))
	}
	assert.InDelta(t, math.Pi, Radians(180), eps)
}
