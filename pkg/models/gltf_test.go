package models

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triangleDoc builds a single painted triangle in the XY plane with the
// given indices.
func triangleDoc(indices []uint16) (*gltf.Document, int) {
	doc := gltf.NewDocument()
	positions := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	uvs := modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {0, 1}})
	idx := modeler.WriteIndices(doc, indices)

	doc.Materials = []*gltf.Material{{
		Name: "paint",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{0.8, 0.2, 0.1, 1},
		},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "triangle",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: positions, gltf.TEXCOORD_0: uvs},
			Material:   gltf.Index(0),
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "triangle", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc, positions
}

func saveGLB(t *testing.T, doc *gltf.Document) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, _, err := LoadGLB("/nonexistent/path.glb")
	assert.Error(t, err)
}

func TestGLTFLoaderDefaults(t *testing.T) {
	loader := NewGLTFLoader()
	assert.True(t, loader.CalculateNormals)
	assert.True(t, loader.SmoothNormals)
}

func TestLoadGLB(t *testing.T) {
	doc, _ := triangleDoc([]uint16{0, 1, 2})
	mesh, img, err := LoadGLB(saveGLB(t, doc))
	require.NoError(t, err)
	assert.Nil(t, img, "no texture was embedded")

	require.Equal(t, 3, mesh.VertexCount())
	require.Equal(t, 1, mesh.TriangleCount())

	// Counter-clockwise glTF winding is reversed.
	assert.Equal(t, [3]int{0, 2, 1}, mesh.GetFace(0))

	// V is flipped to a bottom-left origin.
	_, _, uv := mesh.GetVertex(2)
	assert.Zero(t, uv.Y)

	// Normals are generated when the file has none.
	_, n, _ := mesh.GetVertex(0)
	assert.InDelta(t, 1, n.Len(), 0.01)

	mat := mesh.PrimaryMaterial()
	require.NotNil(t, mat)
	assert.Equal(t, "paint", mat.Name)
	assert.Equal(t, [4]float64{0.8, 0.2, 0.1, 1}, mat.BaseColor)
	assert.False(t, mat.HasTexture)
	assert.False(t, mat.TwoSided)
}

func TestLoadGLBEmbeddedImage(t *testing.T) {
	doc, _ := triangleDoc([]uint16{0, 1, 2})

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 200, B: 30, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	_, err := modeler.WriteImage(doc, "paint", "image/png", &buf)
	require.NoError(t, err)

	_, img, err := LoadGLB(saveGLB(t, doc))
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, 2, img.Bounds().Dx())

	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, [3]uint32{10, 200, 30}, [3]uint32{r >> 8, g >> 8, b >> 8})
}

func TestLoadGLBRejectsAccessorPastBuffer(t *testing.T) {
	doc, positions := triangleDoc([]uint16{0, 1, 2})
	doc.Accessors[positions].Count = 1000

	var mesh *Mesh
	var err error
	require.NotPanics(t, func() { mesh, _, err = LoadGLB(saveGLB(t, doc)) })
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Nil(t, mesh)
}

func TestLoadGLBRejectsIndexPastVertices(t *testing.T) {
	doc, _ := triangleDoc([]uint16{0, 1, 9})

	var err error
	require.NotPanics(t, func() { _, _, err = LoadGLB(saveGLB(t, doc)) })
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLoadGLBRejectsMissingAccessor(t *testing.T) {
	doc, _ := triangleDoc([]uint16{0, 1, 2})
	doc.Meshes[0].Primitives[0].Attributes[gltf.NORMAL] = len(doc.Accessors) + 4

	var err error
	require.NotPanics(t, func() { _, _, err = LoadGLB(saveGLB(t, doc)) })
	assert.ErrorIs(t, err, ErrMalformed)
}
