package models

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/mechyard/pkg/math3d"
)

// ErrMalformed is returned for glTF files whose accessors, buffer views or
// indices point outside the data they describe.
var ErrMalformed = errors.New("malformed gltf")

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Generate normals when the file has none.
	CalculateNormals bool
	SmoothNormals    bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		SmoothNormals:    true,
	}
}

// LoadGLB loads a glTF or GLB file with the default options. The image is
// the first texture the file embeds or references, or nil when it has none.
func LoadGLB(path string) (*Mesh, image.Image, error) {
	return NewGLTFLoader().Load(path)
}

// Load reads every triangle primitive in the file into one mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, image.Image, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	mesh.Materials = readMaterials(doc)

	for _, m := range doc.Meshes {
		if err := readMesh(doc, m, mesh); err != nil {
			return nil, nil, fmt.Errorf("mesh %q: %w", m.Name, err)
		}
	}

	hasNormals := false
	for _, v := range mesh.Vertices {
		if v.Normal.Len() > 0.001 {
			hasNormals = true
			break
		}
	}
	if l.CalculateNormals && !hasNormals {
		if l.SmoothNormals {
			mesh.CalculateSmoothNormals()
		} else {
			mesh.CalculateNormals()
		}
	}
	mesh.CalculateBounds()

	return mesh, firstImage(doc, filepath.Dir(path)), nil
}

func readMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		acr, err := accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("positions: %w", err)
		}
		positions, err := modeler.ReadPosition(doc, acr, nil)
		if err != nil {
			return fmt.Errorf("%w: positions: %w", ErrMalformed, err)
		}

		var normals [][3]float32
		if i, ok := prim.Attributes[gltf.NORMAL]; ok {
			if acr, err = accessor(doc, i); err != nil {
				return fmt.Errorf("normals: %w", err)
			}
			if normals, err = modeler.ReadNormal(doc, acr, nil); err != nil {
				return fmt.Errorf("%w: normals: %w", ErrMalformed, err)
			}
		}

		var uvs [][2]float32
		if i, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if acr, err = accessor(doc, i); err != nil {
				return fmt.Errorf("uvs: %w", err)
			}
			if uvs, err = modeler.ReadTextureCoord(doc, acr, nil); err != nil {
				return fmt.Errorf("%w: uvs: %w", ErrMalformed, err)
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			if acr, err = accessor(doc, *prim.Indices); err != nil {
				return fmt.Errorf("indices: %w", err)
			}
			if indices, err = modeler.ReadIndices(doc, acr, nil); err != nil {
				return fmt.Errorf("%w: indices: %w", ErrMalformed, err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}
		for _, idx := range indices {
			if int(idx) >= len(positions) {
				return fmt.Errorf("%w: index %d with %d vertices", ErrMalformed, idx, len(positions))
			}
		}

		material := -1
		if prim.Material != nil && *prim.Material >= 0 && *prim.Material < len(mesh.Materials) {
			material = *prim.Material
		}

		base := len(mesh.Vertices)
		for i, p := range positions {
			v := MeshVertex{Position: math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))}
			if i < len(normals) {
				n := normals[i]
				v.Normal = math3d.V3(float64(n[0]), float64(n[1]), float64(n[2]))
			}
			if i < len(uvs) {
				// glTF puts v=0 at the top of the image.
				v.UV = math3d.V2(float64(uvs[i][0]), 1-float64(uvs[i][1]))
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		// glTF fronts are counter-clockwise; ours are clockwise.
		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Faces = append(mesh.Faces, Face{
				V:        [3]int{base + int(indices[i]), base + int(indices[i+2]), base + int(indices[i+1])},
				Material: material,
			})
		}
	}
	return nil
}

// accessor returns accessor i after checking that the bytes it describes
// lie inside its buffer view and the view inside its buffer.
func accessor(doc *gltf.Document, i int) (*gltf.Accessor, error) {
	if i < 0 || i >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d out of range", ErrMalformed, i)
	}
	acr := doc.Accessors[i]
	if acr.Sparse != nil {
		return nil, fmt.Errorf("accessor %d: sparse accessors are not supported", i)
	}
	if acr.Count < 0 || acr.ByteOffset < 0 {
		return nil, fmt.Errorf("%w: accessor %d has negative count or offset", ErrMalformed, i)
	}
	if acr.BufferView == nil {
		return acr, nil
	}

	view, err := bufferView(doc, *acr.BufferView)
	if err != nil {
		return nil, fmt.Errorf("accessor %d: %w", i, err)
	}

	size := acr.ComponentType.ByteSize() * acr.Type.Components()
	if size == 0 {
		return nil, fmt.Errorf("%w: accessor %d has unknown element type", ErrMalformed, i)
	}
	if acr.Count == 0 {
		return acr, nil
	}
	stride := view.ByteStride
	if stride == 0 {
		stride = size
	}
	if end := acr.ByteOffset + (acr.Count-1)*stride + size; end > view.ByteLength {
		return nil, fmt.Errorf("%w: accessor %d needs %d bytes, view %d holds %d",
			ErrMalformed, i, end, *acr.BufferView, view.ByteLength)
	}
	return acr, nil
}

func bufferView(doc *gltf.Document, i int) (*gltf.BufferView, error) {
	if i < 0 || i >= len(doc.BufferViews) {
		return nil, fmt.Errorf("%w: buffer view %d out of range", ErrMalformed, i)
	}
	view := doc.BufferViews[i]
	if view.Buffer < 0 || view.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("%w: buffer view %d names buffer %d", ErrMalformed, i, view.Buffer)
	}
	if view.ByteOffset < 0 || view.ByteLength < 0 ||
		view.ByteOffset+view.ByteLength > len(doc.Buffers[view.Buffer].Data) {
		return nil, fmt.Errorf("%w: buffer view %d overruns its buffer", ErrMalformed, i)
	}
	return view, nil
}

// readMaterials converts the document's materials, keeping their indices.
func readMaterials(doc *gltf.Document) []Material {
	materials := make([]Material, len(doc.Materials))
	for i, m := range doc.Materials {
		mat := Material{
			Name:      m.Name,
			BaseColor: [4]float64{1, 1, 1, 1},
			Metallic:  1,
			Roughness: 1,
			TwoSided:  m.DoubleSided,
		}
		if pbr := m.PBRMetallicRoughness; pbr != nil {
			mat.BaseColor = pbr.BaseColorFactorOrDefault()
			mat.Metallic = pbr.MetallicFactorOrDefault()
			mat.Roughness = pbr.RoughnessFactorOrDefault()
			mat.HasTexture = pbr.BaseColorTexture != nil
		}
		materials[i] = mat
	}
	return materials
}

// firstImage decodes the first image in document order that can be read,
// from an embedded buffer view or a file next to the model.
func firstImage(doc *gltf.Document, dir string) image.Image {
	for _, img := range doc.Images {
		var data []byte
		switch {
		case img.BufferView != nil:
			view, err := bufferView(doc, *img.BufferView)
			if err != nil {
				continue
			}
			if data, err = modeler.ReadBufferView(doc, view); err != nil {
				continue
			}
		case img.IsEmbeddedResource():
			var err error
			if data, err = img.MarshalData(); err != nil {
				continue
			}
		case img.URI != "":
			var err error
			if data, err = os.ReadFile(filepath.Join(dir, img.URI)); err != nil {
				continue
			}
		default:
			continue
		}

		if decoded, _, err := image.Decode(bytes.NewReader(data)); err == nil {
			return decoded
		}
	}
	return nil
}
