package render

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"math"
	"os"
)

// WrapMode picks what happens to UVs outside [0,1].
type WrapMode int

const (
	WrapRepeat WrapMode = iota
	WrapClamp
)

// FilterMode picks how texels are combined when sampling.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterBilinear
)

// Texture is an RGBA image stored top row first. UV (0,0) is the bottom-left
// corner, matching the mesh UVs.
type Texture struct {
	Width, Height int
	Pixels        []Color
	Wrap          WrapMode
	Filter        FilterMode
}

// NewTexture returns a transparent width×height texture that repeats and
// samples the nearest texel.
func NewTexture(width, height int) *Texture {
	return &Texture{Width: width, Height: height, Pixels: make([]Color, width*height)}
}

// LoadTexture decodes a PNG or JPEG file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage copies img into a new texture.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	tex := NewTexture(b.Dx(), b.Dy())
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			tex.Pixels[i] = Color{R: c.R, G: c.G, B: c.B, A: c.A}
			i++
		}
	}
	return tex
}

// NewCheckerTexture fills a texture with squares of side cell alternating
// between a and b, starting with a in the top-left corner.
func NewCheckerTexture(width, height, cell int, a, b Color) *Texture {
	tex := NewTexture(width, height)
	for i := range tex.Pixels {
		x, y := i%width, i/width
		if (x/cell+y/cell)%2 == 0 {
			tex.Pixels[i] = a
		} else {
			tex.Pixels[i] = b
		}
	}
	return tex
}

func (t *Texture) inside(x, y int) bool {
	return x >= 0 && x < t.Width && y >= 0 && y < t.Height
}

// SetPixel writes the texel at column x, row y. Out-of-range writes are
// dropped.
func (t *Texture) SetPixel(x, y int, c Color) {
	if t.inside(x, y) {
		t.Pixels[y*t.Width+x] = c
	}
}

// GetPixel reads the texel at column x, row y, or transparent black outside
// the image.
func (t *Texture) GetPixel(x, y int) Color {
	if !t.inside(x, y) {
		return Color{}
	}
	return t.Pixels[y*t.Width+x]
}

// Sample looks up the texture at (u, v).
func (t *Texture) Sample(u, v float64) Color {
	if t.Width == 0 || t.Height == 0 {
		return Color{}
	}
	u, v = t.wrap(u), t.wrap(v)
	// Rows run top to bottom, v runs bottom to top.
	fx, fy := u*float64(t.Width), (1-v)*float64(t.Height)

	if t.Filter == FilterBilinear {
		return t.bilinear(fx-0.5, fy-0.5)
	}
	x := min(int(fx), t.Width-1)
	y := min(int(fy), t.Height-1)
	return t.Pixels[y*t.Width+x]
}

func (t *Texture) wrap(c float64) float64 {
	if t.Wrap == WrapClamp {
		return math.Max(0, math.Min(1, c))
	}
	return c - math.Floor(c)
}

// texel fetches a texel, folding out-of-range indices back in by the wrap
// mode.
func (t *Texture) texel(x, y int) Color {
	if t.Wrap == WrapClamp {
		x = max(0, min(x, t.Width-1))
		y = max(0, min(y, t.Height-1))
	} else {
		x = ((x % t.Width) + t.Width) % t.Width
		y = ((y % t.Height) + t.Height) % t.Height
	}
	return t.Pixels[y*t.Width+x]
}

func (t *Texture) bilinear(fx, fy float64) Color {
	x0, y0 := math.Floor(fx), math.Floor(fy)
	tx, ty := fx-x0, fy-y0
	x, y := int(x0), int(y0)

	top := mix(t.texel(x, y), t.texel(x+1, y), tx)
	bottom := mix(t.texel(x, y+1), t.texel(x+1, y+1), tx)
	return mix(top, bottom, ty)
}

// mix blends two colors channel by channel, rounding to the nearest level.
func mix(a, b Color, s float64) Color {
	ch := func(p, q uint8) uint8 {
		return uint8(float64(p) + (float64(q)-float64(p))*s + 0.5)
	}
	return Color{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: ch(a.A, b.A)}
}
