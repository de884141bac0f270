// Package scene describes what is drawn each frame: an ordered list of
// textured objects and the point light that shades them. The list is plain
// data so the draw order can be checked without a terminal.
package scene

import (
	"github.com/taigrr/mechyard/pkg/math3d"
	"github.com/taigrr/mechyard/pkg/models"
	"github.com/taigrr/mechyard/pkg/render"
)

// Object is one draw: a mesh with its textures, shininess and model transform.
type Object struct {
	Name      string
	Mesh      *models.Mesh
	Diffuse   *render.Texture
	Specular  *render.Texture
	Shininess float64
	Emissive  bool // Drawn unlit, e.g. the lamp marking the light
	TwoSided  bool // Back faces are drawn, e.g. single-sheet models
	Transform math3d.Mat4
}

// Material returns the rasterizer material for the object.
func (o Object) Material() render.Material {
	return render.Material{
		Diffuse:   o.Diffuse,
		Specular:  o.Specular,
		Color:     render.ColorWhite,
		Shininess: o.Shininess,
		TwoSided:  o.TwoSided,
	}
}

// Bounds returns the object's world-space bounding box.
func (o Object) Bounds() render.AABB {
	min, max := o.Mesh.GetBounds()
	return render.NewAABB(min, max).Transform(o.Transform)
}

// Scene is an ordered list of objects lit by a single point light.
type Scene struct {
	Objects []Object
	Light   render.PointLight
}

// Add appends an object after the existing ones.
func (s *Scene) Add(obj Object) {
	if obj.Transform == (math3d.Mat4{}) {
		obj.Transform = math3d.Identity()
	}
	s.Objects = append(s.Objects, obj)
}

// Names lists object names in draw order.
func (s *Scene) Names() []string {
	names := make([]string, len(s.Objects))
	for i, obj := range s.Objects {
		names[i] = obj.Name
	}
	return names
}

// TriangleCount returns the total number of triangles in the scene.
func (s *Scene) TriangleCount() int {
	n := 0
	for _, obj := range s.Objects {
		n += obj.Mesh.TriangleCount()
	}
	return n
}
