package models

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/polyspin/pkg/math3d"
)

// MaxFaces caps how many triangles a loaded model may contain.
const MaxFaces = 256

// LoadRadius is the radius loaded models are normalized to. It leaves
// headroom inside [-1, 1] so the model never clips under rotation.
const LoadRadius = 0.9

var (
	ErrNoTriangles  = errors.New("no triangles")
	ErrTooManyFaces = errors.New("too many faces")
)

// LoadGLTF loads a GLTF or GLB file as a solid: one face per triangle,
// glyphs from DefaultGlyphs, normalized to LoadRadius.
func LoadGLTF(path string) (*Solid, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s := &Solid{
		Name: name,
		Tumble: Tumble{
			Order: []Axis{AxisX, AxisY, AxisZ},
			Rates: [3]float64{0.02, 0.035, 0.015},
		},
	}

	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, s); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if len(s.Faces) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTriangles)
	}
	return s.Normalize(LoadRadius), nil
}

// processMesh appends the triangles of a GLTF mesh to s.
func processMesh(doc *gltf.Document, m *gltf.Mesh, s *Solid) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readPositions(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			if len(s.Faces) >= MaxFaces {
				return fmt.Errorf("%w: more than %d", ErrTooManyFaces, MaxFaces)
			}
			tri := make([]math3d.Vec3, 3)
			for j := range 3 {
				idx := indices[i+j]
				if idx < 0 || idx >= len(positions) {
					return fmt.Errorf("index %d out of range (%d positions)", idx, len(positions))
				}
				tri[j] = positions[idx]
			}
			s.Faces = append(s.Faces, Face{
				Vertices: tri,
				Glyph:    DefaultGlyphs[len(s.Faces)%len(DefaultGlyphs)],
			})
		}
	}
	return nil
}

// ExportGLB writes the solid to a binary GLTF file. Each convex face is
// fan-triangulated around its first vertex.
func ExportGLB(s *Solid, path string) error {
	doc := gltf.NewDocument()

	var positions [][3]float32
	var indices []uint16
	for _, f := range s.Faces {
		base := len(positions)
		if base+len(f.Vertices) > math.MaxUint16 {
			return fmt.Errorf("%w: too many vertices for 16-bit indices", ErrTooManyFaces)
		}
		for _, v := range f.Vertices {
			positions = append(positions, [3]float32{float32(v.X), float32(v.Y), float32(v.Z)})
		}
		for i := 1; i+1 < len(f.Vertices); i++ {
			indices = append(indices, uint16(base), uint16(base+i), uint16(base+i+1))
		}
	}
	if len(indices) == 0 {
		return fmt.Errorf("export %s: %w", s.Name, ErrNoTriangles)
	}

	posAcc := modeler.WritePosition(doc, positions)
	idxAcc := modeler.WriteIndices(doc, indices)

	doc.Meshes = []*gltf.Mesh{{
		Name: s.Name,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idxAcc),
			Attributes: map[string]int{gltf.POSITION: posAcc},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: s.Name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

// accessorAt returns accessor idx after checking that its buffer view and
// buffer exist and that its data fits inside them. elemSize is the byte size
// of one element.
func accessorAt(doc *gltf.Document, idx, elemSize int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range (%d accessors)", idx, len(doc.Accessors))
	}
	acc := doc.Accessors[idx]
	if acc.BufferView == nil {
		return nil, fmt.Errorf("accessor %d has no buffer view", idx)
	}

	bvIdx := *acc.BufferView
	if bvIdx < 0 || bvIdx >= len(doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range (%d views)", bvIdx, len(doc.BufferViews))
	}
	view := doc.BufferViews[bvIdx]
	if view.Buffer < 0 || view.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range (%d buffers)", view.Buffer, len(doc.Buffers))
	}
	buf := doc.Buffers[view.Buffer]
	if buf.Data == nil {
		// GLB chunks and data URIs are both decoded into Data by gltf.Open.
		if buf.URI != "" {
			return nil, fmt.Errorf("external buffer %q not loaded", buf.URI)
		}
		return nil, fmt.Errorf("buffer %d has no data", view.Buffer)
	}
	if view.ByteOffset < 0 || view.ByteLength < 0 || view.ByteOffset+view.ByteLength > len(buf.Data) {
		return nil, fmt.Errorf("buffer view %d overruns buffer %d", bvIdx, view.Buffer)
	}

	if acc.Count > 0 {
		stride := view.ByteStride
		if stride == 0 {
			stride = elemSize
		}
		if acc.ByteOffset < 0 || stride < elemSize ||
			acc.ByteOffset+(acc.Count-1)*stride+elemSize > view.ByteLength {
			return nil, fmt.Errorf("accessor %d overruns buffer view %d", idx, bvIdx)
		}
	}
	return acc, nil
}

// readPositions reads a VEC3 float accessor.
func readPositions(doc *gltf.Document, idx int) ([]math3d.Vec3, error) {
	if idx >= 0 && idx < len(doc.Accessors) {
		acc := doc.Accessors[idx]
		if acc.Type != gltf.AccessorVec3 || acc.ComponentType != gltf.ComponentFloat {
			return nil, fmt.Errorf("positions must be VEC3 float, got %v %v", acc.Type, acc.ComponentType)
		}
	}
	acc, err := accessorAt(doc, idx, 12)
	if err != nil {
		return nil, err
	}

	floats, err := modeler.ReadPosition(doc, acc, nil)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		out[i] = math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
	}
	return out, nil
}

// readIndices reads a SCALAR unsigned byte, short or int accessor.
func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	size := 0
	if idx >= 0 && idx < len(doc.Accessors) {
		acc := doc.Accessors[idx]
		if acc.Type == gltf.AccessorScalar {
			switch acc.ComponentType {
			case gltf.ComponentUbyte:
				size = 1
			case gltf.ComponentUshort:
				size = 2
			case gltf.ComponentUint:
				size = 4
			}
		}
		if size == 0 {
			return nil, fmt.Errorf("indices must be unsigned SCALAR, got %v %v", acc.Type, acc.ComponentType)
		}
	}
	acc, err := accessorAt(doc, idx, size)
	if err != nil {
		return nil, err
	}

	raw, err := modeler.ReadIndices(doc, acc, nil)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(raw))
	for i, v := range raw {
		out[i] = int(v)
	}
	return out, nil
}
