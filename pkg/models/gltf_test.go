package models

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/polyspin/pkg/math3d"
)

func TestLoadGLTFInvalidPath(t *testing.T) {
	_, err := LoadGLTF("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestExportLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		solid     *Solid
		triangles int
	}{
		{Cube(), 12},
		{Tetrahedron(), 4},
		{Dorito(), 8},
		{Pyramid(), 6},
	}

	for _, tc := range tests {
		t.Run(tc.solid.Name, func(t *testing.T) {
			path := filepath.Join(dir, tc.solid.Name+".glb")
			if err := ExportGLB(tc.solid, path); err != nil {
				t.Fatalf("ExportGLB: %v", err)
			}

			loaded, err := LoadGLTF(path)
			if err != nil {
				t.Fatalf("LoadGLTF: %v", err)
			}
			if loaded.Name != tc.solid.Name {
				t.Errorf("name = %q, want %q", loaded.Name, tc.solid.Name)
			}
			if loaded.FaceCount() != tc.triangles {
				t.Errorf("faces = %d, want %d", loaded.FaceCount(), tc.triangles)
			}
			if r := loaded.Radius(); math.Abs(r-LoadRadius) > 1e-5 {
				t.Errorf("radius = %v, want %v", r, LoadRadius)
			}
			for i := range loaded.FaceCount() {
				if n := len(loaded.FaceVertices(i)); n != 3 {
					t.Fatalf("face %d has %d vertices", i, n)
				}
			}
		})
	}
}

func TestExportEmptySolid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.glb")
	err := ExportGLB(&Solid{Name: "empty"}, path)
	if !errors.Is(err, ErrNoTriangles) {
		t.Errorf("err = %v, want ErrNoTriangles", err)
	}
}

func TestLoadRejectsLargeModels(t *testing.T) {
	big := &Solid{Name: "big"}
	for i := range MaxFaces + 1 {
		x := float64(i)
		big.Faces = append(big.Faces, Face{
			Vertices: []math3d.Vec3{math3d.V3(x, 0, 0), math3d.V3(x+1, 0, 0), math3d.V3(x, 1, 0)},
			Glyph:    '#',
		})
	}

	path := filepath.Join(t.TempDir(), "big.glb")
	if err := ExportGLB(big, path); err != nil {
		t.Fatalf("ExportGLB: %v", err)
	}
	if _, err := LoadGLTF(path); !errors.Is(err, ErrTooManyFaces) {
		t.Errorf("err = %v, want ErrTooManyFaces", err)
	}
}

// triangleBuffer is one triangle's positions as little-endian float32s.
func triangleBuffer() []byte {
	verts := []float32{0, 1, 0, -1, -1, 0, 1, -1, 0}
	b := make([]byte, 0, len(verts)*4)
	for _, f := range verts {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	return b
}

// writeTriangleGLTF writes a one-triangle .gltf with an embedded buffer.
// accessor is the JSON of the single POSITION accessor.
func writeTriangleGLTF(t *testing.T, accessor string, viewLength int) string {
	t.Helper()
	data := triangleBuffer()
	doc := fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": %d, "uri": "data:application/octet-stream;base64,%s"}],
  "bufferViews": [{"buffer": 0, "byteLength": %d}],
  "accessors": [%s],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}]
}`, len(data), base64.StdEncoding.EncodeToString(data), viewLength, accessor)

	path := filepath.Join(t.TempDir(), "tri.gltf")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGLTFAccessors(t *testing.T) {
	tests := []struct {
		name       string
		accessor   string
		viewLength int
		wantErr    bool
	}{
		{"valid", `{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"}`, 36, false},
		{"missing buffer view", `{"bufferView": 7, "componentType": 5126, "count": 3, "type": "VEC3"}`, 36, true},
		{"no buffer view", `{"componentType": 5126, "count": 3, "type": "VEC3"}`, 36, true},
		{"unsigned short positions", `{"bufferView": 0, "componentType": 5123, "count": 3, "type": "VEC3"}`, 36, true},
		{"scalar positions", `{"bufferView": 0, "componentType": 5126, "count": 9, "type": "SCALAR"}`, 36, true},
		{"count overruns view", `{"bufferView": 0, "componentType": 5126, "count": 4, "type": "VEC3"}`, 36, true},
		{"view overruns buffer", `{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"}`, 48, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTriangleGLTF(t, tc.accessor, tc.viewLength)
			s, err := LoadGLTF(path)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error, loaded %d faces", s.FaceCount())
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadGLTF: %v", err)
			}
			if s.FaceCount() != 1 {
				t.Errorf("faces = %d, want 1", s.FaceCount())
			}
		})
	}
}
