package math3d

import "math"

// Mat4 is a 4x4 matrix stored column by column: row r of column c is
// m[c*4+r], so a transform keeps its translation in m[12], m[13] and m[14].
// Vectors are columns multiplied on the right, as in OpenGL.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Scale(V3(1, 1, 1))
}

// Translate moves points by v.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scale stretches each axis by the matching component of v.
func Scale(v Vec3) Mat4 {
	return Mat4{0: v.X, 5: v.Y, 10: v.Z, 15: 1}
}

// ScaleUniform stretches all axes by s.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// LookAt is the view matrix of an eye at eye facing target, with up as the
// rough vertical. In view space the eye sits at the origin looking down -Z.
func LookAt(eye, target, up Vec3) Mat4 {
	back := eye.Sub(target).Normalize()
	right := up.Cross(back).Normalize()
	upright := back.Cross(right)

	var m Mat4
	for r, axis := range [3]Vec3{right, upright, back} {
		m[r], m[4+r], m[8+r] = axis.X, axis.Y, axis.Z
		m[12+r] = -axis.Dot(eye)
	}
	m[15] = 1
	return m
}

// Perspective maps the view frustum with vertical field of view fovy
// (radians) and width/height aspect onto the [-1, 1] cube. Depth -near maps
// to -1 and -far to 1.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	focal := 1 / math.Tan(fovy/2)
	depth := near - far
	return Mat4{
		0:  focal / aspect,
		5:  focal,
		10: (far + near) / depth,
		11: -1,
		14: 2 * far * near / depth,
	}
}

// Orthographic maps the box [left, right] x [bottom, top] x [-near, -far]
// onto the [-1, 1] cube without foreshortening.
func Orthographic(left, right, bottom, top, near, far float64) Mat4 {
	w, h, d := right-left, top-bottom, far-near
	return Mat4{
		0:  2 / w,
		5:  2 / h,
		10: -2 / d,
		12: -(right + left) / w,
		13: -(top + bottom) / h,
		14: -(far + near) / d,
		15: 1,
	}
}

// column returns column c as a Vec4.
func (m Mat4) column(c int) Vec4 {
	return Vec4{m[c*4], m[c*4+1], m[c*4+2], m[c*4+3]}
}

// Mul returns a*b: b is applied first.
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for c := range 4 {
		col := a.MulVec4(b.column(c))
		m[c*4], m[c*4+1], m[c*4+2], m[c*4+3] = col.X, col.Y, col.Z, col.W
	}
	return m
}

// MulVec4 transforms a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulVec3 transforms a point. Projective results are divided by w unless w
// is zero.
func (m Mat4) MulVec3(p Vec3) Vec3 {
	h := m.MulVec4(Point(p))
	if h.W == 0 || h.W == 1 {
		return Vec3{h.X, h.Y, h.Z}
	}
	return h.Divide()
}

// MulVec3Dir transforms a direction: translation does not apply.
func (m Mat4) MulVec3Dir(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[4]*d.Y + m[8]*d.Z,
		m[1]*d.X + m[5]*d.Y + m[9]*d.Z,
		m[2]*d.X + m[6]*d.Y + m[10]*d.Z,
	}
}

// NormalMatrix is the inverse transpose of the upper 3x3 block, which keeps
// normals perpendicular to their surface under non-uniform scale. A singular
// block yields the identity.
func (m Mat4) NormalMatrix() Mat4 {
	x, y, z := V3(m[0], m[1], m[2]), V3(m[4], m[5], m[6]), V3(m[8], m[9], m[10])
	det := x.Dot(y.Cross(z))
	if det == 0 {
		return Identity()
	}

	// Each column of the inverse transpose is the cross product of the
	// other two columns over the determinant.
	cx, cy, cz := y.Cross(z).Scale(1/det), z.Cross(x).Scale(1/det), x.Cross(y).Scale(1/det)
	return Mat4{
		cx.X, cx.Y, cx.Z, 0,
		cy.X, cy.Y, cy.Z, 0,
		cz.X, cz.Y, cz.Z, 0,
		0, 0, 0, 1,
	}
}
