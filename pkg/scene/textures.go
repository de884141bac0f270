package scene

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"path/filepath"

	"github.com/taigrr/mechyard/pkg/render"
)

// ErrTexture is returned when a texture in the texture directory is missing
// or cannot be decoded.
var ErrTexture = errors.New("texture unavailable")

// TextureSet holds the four surface textures of the yard.
type TextureSet struct {
	Pavement *render.Texture // Ground plane
	Steel    *render.Texture // Robot
	Hedge    *render.Texture // Hedges
	Plastic  *render.Texture // Trailer
}

// TextureFiles maps each texture to its file name in a texture directory.
var TextureFiles = struct {
	Pavement, Steel, Hedge, Plastic string
}{
	Pavement: "pavement.jpg",
	Steel:    "steel.jpg",
	Hedge:    "hedge.jpg",
	Plastic:  "plastic.jpg",
}

// LoadTextures loads the texture set from dir. Every file must exist and
// decode; the first failure is returned wrapped in ErrTexture.
func LoadTextures(dir string) (TextureSet, error) {
	var set TextureSet
	targets := []struct {
		file string
		dst  **render.Texture
	}{
		{TextureFiles.Pavement, &set.Pavement},
		{TextureFiles.Steel, &set.Steel},
		{TextureFiles.Hedge, &set.Hedge},
		{TextureFiles.Plastic, &set.Plastic},
	}

	for _, t := range targets {
		tex, err := render.LoadTexture(filepath.Join(dir, t.file))
		if err != nil {
			return TextureSet{}, fmt.Errorf("%w: %s: %w", ErrTexture, t.file, err)
		}
		tex.Filter = render.FilterBilinear
		*t.dst = tex
	}
	return set, nil
}

const proceduralSize = 64

// ProceduralTextures synthesizes a texture set so the yard renders without
// image files. The output is deterministic.
func ProceduralTextures() TextureSet {
	rng := rand.New(rand.NewPCG(0x5eed, 0x7a5d))
	return TextureSet{
		Pavement: pavement(rng),
		Steel:    steel(rng),
		Hedge:    hedge(rng),
		Plastic:  plastic(rng),
	}
}

// jitter scales a base color by a random factor in [1-amount, 1+amount].
func jitter(rng *rand.Rand, c render.Color, amount float64) render.Color {
	f := 1 + (rng.Float64()*2-1)*amount
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, math.Max(0, float64(v)*f)))
	}
	return render.RGB(scale(c.R), scale(c.G), scale(c.B))
}

// pavement is square slabs with dark joints and speckle.
func pavement(rng *rand.Rand) *render.Texture {
	const slab = 16
	tex := render.NewTexture(proceduralSize, proceduralSize)
	base := render.RGB(150, 146, 138)
	joint := render.RGB(80, 78, 74)
	for y := range proceduralSize {
		for x := range proceduralSize {
			c := base
			if x%slab == 0 || y%slab == 0 {
				c = joint
			}
			tex.SetPixel(x, y, jitter(rng, c, 0.12))
		}
	}
	return tex
}

// steel is horizontally brushed metal.
func steel(rng *rand.Rand) *render.Texture {
	tex := render.NewTexture(proceduralSize, proceduralSize)
	for y := range proceduralSize {
		row := jitter(rng, render.RGB(168, 172, 180), 0.08)
		for x := range proceduralSize {
			tex.SetPixel(x, y, jitter(rng, row, 0.03))
		}
	}
	tex.Filter = render.FilterBilinear
	return tex
}

// hedge is dense leaf noise.
func hedge(rng *rand.Rand) *render.Texture {
	tex := render.NewTexture(proceduralSize, proceduralSize)
	leaf := render.RGB(46, 112, 38)
	for y := range proceduralSize {
		for x := range proceduralSize {
			tex.SetPixel(x, y, jitter(rng, leaf, 0.35))
		}
	}
	return tex
}

// plastic is a flat light gray with faint mottling.
func plastic(rng *rand.Rand) *render.Texture {
	tex := render.NewCheckerTexture(proceduralSize, proceduralSize, 8,
		render.RGB(196, 196, 200), render.RGB(188, 188, 192))
	for y := range proceduralSize {
		for x := range proceduralSize {
			tex.SetPixel(x, y, jitter(rng, tex.GetPixel(x, y), 0.02))
		}
	}
	tex.Filter = render.FilterBilinear
	return tex
}
