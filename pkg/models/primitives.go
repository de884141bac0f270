package models

import "github.com/taigrr/mechyard/pkg/math3d"

// AddQuad appends the quad a-b-c-d (corners in order around its edge) as two
// triangles facing along normal. Winding is fixed up to the rasterizer's
// clockwise front-face convention whatever order the corners arrive in.
// uvs maps to the corners in the same order.
func (m *Mesh) AddQuad(a, b, c, d, normal math3d.Vec3, uvs [4]math3d.Vec2) {
	base := len(m.Vertices)
	for i, p := range [4]math3d.Vec3{a, b, c, d} {
		m.Vertices = append(m.Vertices, MeshVertex{Position: p, Normal: normal, UV: uvs[i]})
	}

	// Counter-clockwise seen from the normal side: flip to clockwise.
	if b.Sub(a).Cross(c.Sub(a)).Dot(normal) > 0 {
		m.Faces = append(m.Faces,
			Face{V: [3]int{base, base + 2, base + 1}, Material: -1},
			Face{V: [3]int{base, base + 3, base + 2}, Material: -1},
		)
		return
	}
	m.Faces = append(m.Faces,
		Face{V: [3]int{base, base + 1, base + 2}, Material: -1},
		Face{V: [3]int{base, base + 2, base + 3}, Material: -1},
	)
}

// tileUVs returns corner UVs spanning [0,u]x[0,v].
func tileUVs(u, v float64) [4]math3d.Vec2 {
	return [4]math3d.Vec2{
		math3d.V2(0, 0),
		math3d.V2(u, 0),
		math3d.V2(u, v),
		math3d.V2(0, v),
	}
}

// NewPlane creates a horizontal square of the given half extent at height y,
// facing up. The texture repeats tile times across each side.
func NewPlane(name string, halfExtent, y, tile float64) *Mesh {
	m := NewMesh(name)
	h := halfExtent
	m.AddQuad(
		math3d.V3(-h, y, h),
		math3d.V3(h, y, h),
		math3d.V3(h, y, -h),
		math3d.V3(-h, y, -h),
		math3d.Up(),
		tileUVs(tile, tile),
	)
	m.CalculateBounds()
	return m
}

// NewBox creates an axis-aligned box spanning min to max with outward
// normals. Each face maps the full texture scaled by tile.
func NewBox(name string, min, max math3d.Vec3, tile float64) *Mesh {
	m := NewMesh(name)
	x0, y0, z0 := min.X, min.Y, min.Z
	x1, y1, z1 := max.X, max.Y, max.Z
	uv := tileUVs(tile, tile)

	// +Z, -Z
	m.AddQuad(math3d.V3(x0, y0, z1), math3d.V3(x1, y0, z1), math3d.V3(x1, y1, z1), math3d.V3(x0, y1, z1), math3d.V3(0, 0, 1), uv)
	m.AddQuad(math3d.V3(x1, y0, z0), math3d.V3(x0, y0, z0), math3d.V3(x0, y1, z0), math3d.V3(x1, y1, z0), math3d.V3(0, 0, -1), uv)
	// +X, -X
	m.AddQuad(math3d.V3(x1, y0, z1), math3d.V3(x1, y0, z0), math3d.V3(x1, y1, z0), math3d.V3(x1, y1, z1), math3d.V3(1, 0, 0), uv)
	m.AddQuad(math3d.V3(x0, y0, z0), math3d.V3(x0, y0, z1), math3d.V3(x0, y1, z1), math3d.V3(x0, y1, z0), math3d.V3(-1, 0, 0), uv)
	// +Y, -Y
	m.AddQuad(math3d.V3(x0, y1, z1), math3d.V3(x1, y1, z1), math3d.V3(x1, y1, z0), math3d.V3(x0, y1, z0), math3d.V3(0, 1, 0), uv)
	m.AddQuad(math3d.V3(x0, y0, z0), math3d.V3(x1, y0, z0), math3d.V3(x1, y0, z1), math3d.V3(x0, y0, z1), math3d.V3(0, -1, 0), uv)

	m.CalculateBounds()
	return m
}

// NewPrism extrudes a convex quadrilateral footprint (X/Z taken from the
// corners, Y ignored) from y0 up to y1. Side normals point away from the
// footprint centroid.
func NewPrism(name string, footprint [4]math3d.Vec3, y0, y1 float64) *Mesh {
	m := NewMesh(name)

	var centroid math3d.Vec3
	for _, p := range footprint {
		centroid = centroid.Add(math3d.V3(p.X, 0, p.Z))
	}
	centroid = centroid.Scale(0.25)

	height := y1 - y0
	for i := range footprint {
		a := footprint[i]
		b := footprint[(i+1)%len(footprint)]
		edge := math3d.V3(b.X-a.X, 0, b.Z-a.Z)

		normal := edge.Cross(math3d.Up()).Normalize()
		mid := math3d.V3((a.X+b.X)/2, 0, (a.Z+b.Z)/2)
		if normal.Dot(mid.Sub(centroid)) < 0 {
			normal = normal.Negate()
		}

		m.AddQuad(
			math3d.V3(a.X, y0, a.Z),
			math3d.V3(b.X, y0, b.Z),
			math3d.V3(b.X, y1, b.Z),
			math3d.V3(a.X, y1, a.Z),
			normal,
			tileUVs(1, height/edge.Len()),
		)
	}

	corner := func(i int, y float64) math3d.Vec3 {
		return math3d.V3(footprint[i].X, y, footprint[i].Z)
	}
	m.AddQuad(corner(0, y1), corner(1, y1), corner(2, y1), corner(3, y1), math3d.Up(), tileUVs(1, 1))
	m.AddQuad(corner(0, y0), corner(1, y0), corner(2, y0), corner(3, y0), math3d.Up().Negate(), tileUVs(1, 1))

	m.CalculateBounds()
	return m
}
