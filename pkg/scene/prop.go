package scene

import (
	"fmt"

	"github.com/taigrr/mechyard/pkg/math3d"
	"github.com/taigrr/mechyard/pkg/models"
	"github.com/taigrr/mechyard/pkg/render"
)

// PropBase and PropHeight place an extra model in the open corner behind the
// left hedge.
var (
	PropBase   = math3d.V3(-6, 0, -4)
	PropHeight = 3.0
)

// LoadProp loads a GLB model and fits it height units tall standing on base.
// The first embedded texture is used for both maps. Without one the model is
// painted in the base color of its most used material, or with fallback when
// it has no materials.
func LoadProp(path string, base math3d.Vec3, height float64, fallback *render.Texture) (Object, error) {
	mesh, img, err := models.LoadGLB(path)
	if err != nil {
		return Object{}, fmt.Errorf("load model: %w", err)
	}
	if mesh.TriangleCount() == 0 {
		return Object{}, fmt.Errorf("load model %s: no triangles", path)
	}
	mesh.Fit(height, base)

	tex := fallback
	mat := mesh.PrimaryMaterial()
	switch {
	case img != nil:
		tex = render.TextureFromImage(img)
		tex.Filter = render.FilterBilinear
	case mat != nil:
		tex = solidTexture(mat.BaseColor)
	}

	return Object{
		Name:      mesh.Name,
		Mesh:      mesh,
		Diffuse:   tex,
		Specular:  tex,
		Shininess: PropShininess,
		TwoSided:  mat != nil && mat.TwoSided,
		Transform: math3d.Identity(),
	}, nil
}

// solidTexture is a one-pixel texture of an RGBA color in 0-1.
func solidTexture(c [4]float64) *render.Texture {
	channel := func(v float64) uint8 {
		return uint8(math3d.Clamp(v, 0, 1)*255 + 0.5)
	}
	tex := render.NewTexture(1, 1)
	tex.SetPixel(0, 0, render.RGB(channel(c[0]), channel(c[1]), channel(c[2])))
	return tex
}
