package render

import (
	"math"

	"github.com/taigrr/mechyard/pkg/math3d"
)

// PointLight is a positional light. Each term is an RGB intensity in 0-1.
type PointLight struct {
	Position math3d.Vec3
	Ambient  math3d.Vec3
	Diffuse  math3d.Vec3
	Specular math3d.Vec3
}

// Material describes how a surface is colored and how it reflects light.
type Material struct {
	Diffuse   *Texture // Base color map; Color is used when nil
	Specular  *Texture // Specular map; no highlight when nil
	Color     Color
	Shininess float64
	TwoSided  bool // Back faces are drawn too
}

func (m *Material) diffuseAt(u, v float64) Color {
	if m.Diffuse == nil {
		return m.Color
	}
	return m.Diffuse.Sample(u, v)
}

func (m *Material) specularAt(u, v float64) Color {
	if m.Specular == nil {
		return Color{}
	}
	return m.Specular.Sample(u, v)
}

// Shade evaluates the Phong terms at world position p with normal n, seen
// from eye. diffuse holds ambient plus diffuse intensity and multiplies the
// diffuse map; specular multiplies the specular map.
func (l PointLight) Shade(p, n, eye math3d.Vec3, shininess float64) (diffuse, specular math3d.Vec3) {
	n = n.Normalize()
	toLight := l.Position.Sub(p).Normalize()

	lambert := math.Max(n.Dot(toLight), 0)
	diffuse = l.Ambient.Add(l.Diffuse.Scale(lambert))

	toEye := eye.Sub(p).Normalize()
	reflected := toLight.Negate().Reflect(n)
	highlight := math.Pow(math.Max(toEye.Dot(reflected), 0), shininess)
	specular = l.Specular.Scale(highlight)

	return diffuse, specular
}

// unlit is the lighting for emissive surfaces: the diffuse map at full
// intensity, no highlight.
var unlit = math3d.V3(1, 1, 1)

// combine computes base*diffuse + spec*specular per channel, rounded and
// saturating at 255.
// Alpha is always opaque.
func combine(base, spec Color, diffuse, specular math3d.Vec3) Color {
	channel := func(b, s uint8, d, sp float64) uint8 {
		v := float64(b)*d + float64(s)*sp + 0.5
		if v >= 255 {
			return 255
		}
		if v <= 0 {
			return 0
		}
		return uint8(v)
	}
	return Color{
		R: channel(base.R, spec.R, diffuse.X, specular.X),
		G: channel(base.G, spec.G, diffuse.Y, specular.Y),
		B: channel(base.B, spec.B, diffuse.Z, specular.Z),
		A: 255,
	}
}
