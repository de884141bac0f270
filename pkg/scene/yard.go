package scene

import (
	"github.com/taigrr/mechyard/pkg/math3d"
	"github.com/taigrr/mechyard/pkg/models"
	"github.com/taigrr/mechyard/pkg/render"
)

// Shininess of the yard props and of the robot.
const (
	PropShininess  = 1.0
	RobotShininess = 64.0
)

// LampScale is the size of the cube drawn at the light position.
const LampScale = 1.2

// DefaultLight is the yard light: up and to the left of the robot.
func DefaultLight() render.PointLight {
	return render.PointLight{
		Position: math3d.V3(-15, 20, 15),
		Ambient:  math3d.V3(0.1, 0.1, 0.1),
		Diffuse:  math3d.V3(0.7, 0.7, 0.7),
		Specular: math3d.V3(0.8, 0.8, 0.8),
	}
}

// Option configures Yard.
type Option func(*yardConfig)

type yardConfig struct {
	light render.PointLight
}

// WithLight replaces the default light. The lamp follows its position.
func WithLight(light render.PointLight) Option {
	return func(c *yardConfig) {
		c.light = light
	}
}

// Yard builds the fixed scene: ground, hedges and trailer, then the robot from
// the feet up, then the lamp.
func Yard(textures TextureSet, options ...Option) *Scene {
	cfg := yardConfig{light: DefaultLight()}
	for _, option := range options {
		option(&cfg)
	}

	s := &Scene{Light: cfg.light}

	prop := func(name string, mesh *models.Mesh, tex *render.Texture) {
		s.Add(Object{Name: name, Mesh: mesh, Diffuse: tex, Specular: tex, Shininess: PropShininess})
	}
	robot := func(name string, min, max math3d.Vec3) {
		s.Add(Object{
			Name:      name,
			Mesh:      models.NewBox(name, min, max, 1),
			Diffuse:   textures.Steel,
			Specular:  textures.Steel,
			Shininess: RobotShininess,
		})
	}

	prop("plane", models.NewPlane("plane", 10, 0, 1), textures.Pavement)
	prop("front hedge", models.NewBox("front hedge", math3d.V3(-4.5, 0, 3.5), math3d.V3(2.5, 1, 4), 1), textures.Hedge)
	prop("left hedge", models.NewBox("left hedge", math3d.V3(-4.5, 0, -4), math3d.V3(-4, 1, 2), 1), textures.Hedge)
	prop("trailer", models.NewPrism("trailer", [4]math3d.Vec3{
		{X: 5.5, Z: -2},
		{X: 4.5, Z: -6.5},
		{X: 6.75, Z: -7},
		{X: 7.75, Z: -2.5},
	}, 0, 3), textures.Plastic)

	robot("left foot", math3d.V3(1.75, 0, -1.45), math3d.V3(2.5, 1.5, 1.75))
	robot("right foot", math3d.V3(-2.5, 0, -1.45), math3d.V3(-1.75, 1.5, 1.75))
	robot("left leg", math3d.V3(1, 0.75, -1.15), math3d.V3(2.5, 5.1, 0.9))
	robot("right leg", math3d.V3(-2.5, 0.75, -1.15), math3d.V3(-1, 5.1, 0.9))
	robot("torso", math3d.V3(-1.75, 4.8, -1.25), math3d.V3(1.75, 9.5, 1))
	robot("left arm", math3d.V3(-3, 5, -0.7), math3d.V3(-1.75, 9.8, 1.9))
	robot("right arm", math3d.V3(1.75, 5, -0.7), math3d.V3(3, 9.8, 1.9))
	robot("head", math3d.V3(-0.7, 9.5, -0.7), math3d.V3(0.7, 10.5, 0.8))

	s.Add(Object{
		Name:      "lamp",
		Mesh:      models.NewBox("lamp", math3d.V3(-0.5, -0.5, -0.5), math3d.V3(0.5, 0.5, 0.5), 1),
		Emissive:  true,
		Transform: math3d.Translate(cfg.light.Position).Mul(math3d.ScaleUniform(LampScale)),
	})

	return s
}

// SetLight moves the light and every emissive object marking it.
func (s *Scene) SetLight(light render.PointLight) {
	s.Light = light
	for i := range s.Objects {
		if s.Objects[i].Emissive {
			s.Objects[i].Transform = math3d.Translate(light.Position).Mul(math3d.ScaleUniform(LampScale))
		}
	}
}
