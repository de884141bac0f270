package render

import "github.com/taigrr/mechyard/pkg/math3d"

// testMesh is a minimal MeshRenderer for driving the rasterizer.
type testMesh struct {
	vertices []meshVertex
	faces    [][3]int
}

type meshVertex struct {
	pos    math3d.Vec3
	normal math3d.Vec3
	uv     math3d.Vec2
}

func (m *testMesh) TriangleCount() int { return len(m.faces) }

func (m *testMesh) GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	v := m.vertices[i]
	return v.pos, v.normal, v.uv
}

func (m *testMesh) GetFace(i int) [3]int { return m.faces[i] }

// addQuad appends corners listed clockwise seen from the front as two
// triangles.
func (m *testMesh) addQuad(corners [4]math3d.Vec3, normal math3d.Vec3, uvs [4]math3d.Vec2) *testMesh {
	base := len(m.vertices)
	for i, c := range corners {
		m.vertices = append(m.vertices, meshVertex{pos: c, normal: normal, uv: uvs[i]})
	}
	m.faces = append(m.faces, [3]int{base, base + 1, base + 2}, [3]int{base, base + 2, base + 3})
	return m
}

func (m *testMesh) addTriangle(a, b, c, normal math3d.Vec3) *testMesh {
	base := len(m.vertices)
	for _, p := range []math3d.Vec3{a, b, c} {
		m.vertices = append(m.vertices, meshVertex{pos: p, normal: normal})
	}
	m.faces = append(m.faces, [3]int{base, base + 1, base + 2})
	return m
}

// frontTriangle is wound clockwise as seen from +Z.
func frontTriangle(z float64) *testMesh {
	return new(testMesh).addTriangle(
		math3d.V3(-1, -1, z), math3d.V3(0, 1, z), math3d.V3(1, -1, z), math3d.V3(0, 0, 1))
}

var quadUVs = [4]math3d.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}

// newUnitCube builds a cube spanning [-1,1] with one vertex per face corner,
// wound clockwise as seen from outside.
func newUnitCube() *testMesh {
	m := new(testMesh)
	faces := []struct {
		normal  math3d.Vec3
		corners [4]math3d.Vec3
	}{
		{math3d.V3(0, 0, 1), [4]math3d.Vec3{{X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: 1}}},
		{math3d.V3(0, 0, -1), [4]math3d.Vec3{{X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: -1}}},
		{math3d.V3(1, 0, 0), [4]math3d.Vec3{{X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: -1, Z: -1}}},
		{math3d.V3(-1, 0, 0), [4]math3d.Vec3{{X: -1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: 1}, {X: -1, Y: -1, Z: 1}}},
		{math3d.V3(0, 1, 0), [4]math3d.Vec3{{X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}}},
		{math3d.V3(0, -1, 0), [4]math3d.Vec3{{X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: -1}}},
	}
	for _, f := range faces {
		m.addQuad(f.corners, f.normal, quadUVs)
	}
	return m
}

func testLight() PointLight {
	return PointLight{
		Position: math3d.V3(-15, 20, 15),
		Ambient:  math3d.V3(0.1, 0.1, 0.1),
		Diffuse:  math3d.V3(0.7, 0.7, 0.7),
		Specular: math3d.V3(0.8, 0.8, 0.8),
	}
}
