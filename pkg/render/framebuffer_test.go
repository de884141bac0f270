package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramebufferDrawLineEndpoints(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.DrawLine(1, 2, 8, 6, ColorWhite)

	assert.Equal(t, ColorWhite, fb.GetPixel(1, 2))
	assert.Equal(t, ColorWhite, fb.GetPixel(8, 6))

	// Off-screen segments are clipped per pixel.
	require.NotPanics(t, func() { fb.DrawLine(-50, -50, 60, 60, ColorGreen) })
	assert.Equal(t, ColorGreen, fb.GetPixel(5, 5))
}

func TestFramebufferSavePNG(t *testing.T) {
	fb := NewFramebuffer(4, 6)
	fb.Clear(ColorSky)
	fb.SetPixel(3, 5, ColorBlack)

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, fb.SavePNG(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())

	r, g, b, _ := img.At(3, 5).RGBA()
	assert.Zero(t, r|g|b, "corner pixel should be black")
}

func TestSavePNGBadPath(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	assert.Error(t, fb.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")))
}
