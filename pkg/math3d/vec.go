// Package math3d provides the vector and matrix types used by the camera and
// the rasterizer. Matrices are column-major with OpenGL conventions.
package math3d

import "math"

// Vec2 is a texture coordinate.
type Vec2 struct {
	X, Y float64
}

// V2 creates a Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Lerp moves from a toward b by t.
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{lerp(a.X, b.X, t), lerp(a.Y, b.Y, t)}
}

// Vec3 is a point or direction in world, view or device space.
type Vec3 struct {
	X, Y, Z float64
}

// V3 creates a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Zero3 is the origin.
func Zero3() Vec3 {
	return Vec3{}
}

// Up is the world vertical, +Y.
func Up() Vec3 {
	return Vec3{Y: 1}
}

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return a.Add(b.Negate())
}

func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

func (a Vec3) Negate() Vec3 {
	return a.Scale(-1)
}

func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross is the right-handed cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Len() float64 {
	return math.Sqrt(a.Dot(a))
}

// Normalize returns a unit vector, or the zero vector unchanged.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

// Lerp moves from a toward b by t.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{lerp(a.X, b.X, t), lerp(a.Y, b.Y, t), lerp(a.Z, b.Z, t)}
}

// Reflect mirrors a about the plane with unit normal n.
func (a Vec3) Reflect(n Vec3) Vec3 {
	return a.Sub(n.Scale(2 * a.Dot(n)))
}

// Min is the per-axis minimum, used to grow bounding boxes.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

// Max is the per-axis maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// Vec4 is a homogeneous clip-space position.
type Vec4 struct {
	X, Y, Z, W float64
}

// Point lifts a position to homogeneous coordinates with w = 1.
func Point(p Vec3) Vec4 {
	return Vec4{p.X, p.Y, p.Z, 1}
}

// Lerp moves from a toward b by t. Clip-space positions interpolate linearly,
// w included, which is what near-plane clipping relies on.
func (a Vec4) Lerp(b Vec4, t float64) Vec4 {
	return Vec4{lerp(a.X, b.X, t), lerp(a.Y, b.Y, t), lerp(a.Z, b.Z, t), lerp(a.W, b.W, t)}
}

// Divide performs the perspective divide, returning device coordinates.
// w must be non-zero.
func (a Vec4) Divide() Vec3 {
	return Vec3{a.X / a.W, a.Y / a.W, a.Z / a.W}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
