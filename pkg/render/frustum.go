package render

import (
	"github.com/taigrr/mechyard/pkg/math3d"
)

// AABB is an axis-aligned box in world space. Objects are culled by their box
// before any of their triangles are shaded.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates a box from its minimum and maximum corners.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Transform returns the box enclosing all eight corners after m.
func (b AABB) Transform(m math3d.Mat4) AABB {
	var out AABB
	for i := range 8 {
		corner := b.Min
		if i&1 != 0 {
			corner.X = b.Max.X
		}
		if i&2 != 0 {
			corner.Y = b.Max.Y
		}
		if i&4 != 0 {
			corner.Z = b.Max.Z
		}

		p := m.MulVec3(corner)
		if i == 0 {
			out = AABB{Min: p, Max: p}
			continue
		}
		out.Min, out.Max = out.Min.Min(p), out.Max.Max(p)
	}
	return out
}

// plane is the half-space normal·p + d >= 0.
type plane struct {
	normal math3d.Vec3
	d      float64
}

func newPlane(normal math3d.Vec3, d float64) plane {
	l := normal.Len()
	if l == 0 {
		return plane{normal: normal, d: d}
	}
	return plane{normal: normal.Scale(1 / l), d: d / l}
}

func (p plane) distance(point math3d.Vec3) float64 {
	return p.normal.Dot(point) + p.d
}

// Frustum is the six clip planes of a view-projection matrix, normals
// pointing inward, in the order left, right, bottom, top, near, far.
type Frustum [6]plane

// NewFrustum extracts the clip planes of a view-projection matrix. Each
// plane is the w row plus or minus the x, y or z row (Gribb and Hartmann).
func NewFrustum(viewProj math3d.Mat4) Frustum {
	row := func(r int) (math3d.Vec3, float64) {
		return math3d.V3(viewProj[r], viewProj[4+r], viewProj[8+r]), viewProj[12+r]
	}

	wn, wd := row(3)
	var f Frustum
	for axis := range 3 {
		n, d := row(axis)
		f[2*axis] = newPlane(wn.Add(n), wd+d)
		f[2*axis+1] = newPlane(wn.Sub(n), wd-d)
	}
	return f
}

// Intersects reports whether any part of box lies inside every plane. The
// test is conservative: a box near a frustum corner may pass while off
// screen, but a visible box is never rejected.
func (f Frustum) Intersects(box AABB) bool {
	for _, p := range f {
		// The corner furthest along the normal is the last to leave.
		far := box.Min
		if p.normal.X >= 0 {
			far.X = box.Max.X
		}
		if p.normal.Y >= 0 {
			far.Y = box.Max.Y
		}
		if p.normal.Z >= 0 {
			far.Z = box.Max.Z
		}
		if p.distance(far) < 0 {
			return false
		}
	}
	return true
}
