package models

import (
	"errors"
	"fmt"
	"sort"

	"github.com/taigrr/polyspin/pkg/math3d"
)

// ErrUnknownSolid is returned by Lookup for names not in the catalog.
var ErrUnknownSolid = errors.New("unknown solid")

var catalog = map[string]func() *Solid{
	"cube":        Cube,
	"tetrahedron": Tetrahedron,
	"dorito":      Dorito,
	"pyramid":     Pyramid,
}

// Names returns the built-in solid names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup builds the named built-in solid.
func Lookup(name string) (*Solid, error) {
	build, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownSolid, name, Names())
	}
	return build(), nil
}

// build turns an index list into faces, assigning DefaultGlyphs in order.
func build(name string, verts []math3d.Vec3, faces [][]int, tumble Tumble) *Solid {
	s := &Solid{Name: name, Tumble: tumble}
	for i, idx := range faces {
		f := Face{
			Vertices: make([]math3d.Vec3, len(idx)),
			Glyph:    DefaultGlyphs[i%len(DefaultGlyphs)],
		}
		for j, vi := range idx {
			f.Vertices[j] = verts[vi]
		}
		s.Faces = append(s.Faces, f)
	}
	return s
}

// Cube returns an axis-aligned cube of side 1 centered on the origin.
func Cube() *Solid {
	h := 0.5
	v := []math3d.Vec3{
		{X: -h, Y: -h, Z: -h}, // 0: left-bottom-back
		{X: h, Y: -h, Z: -h},  // 1: right-bottom-back
		{X: h, Y: h, Z: -h},   // 2: right-top-back
		{X: -h, Y: h, Z: -h},  // 3: left-top-back
		{X: -h, Y: -h, Z: h},  // 4: left-bottom-front
		{X: h, Y: -h, Z: h},   // 5: right-bottom-front
		{X: h, Y: h, Z: h},    // 6: right-top-front
		{X: -h, Y: h, Z: h},   // 7: left-top-front
	}
	faces := [][]int{
		{0, 1, 2, 3}, // Back
		{5, 4, 7, 6}, // Front
		{4, 0, 3, 7}, // Left
		{1, 5, 6, 2}, // Right
		{3, 2, 6, 7}, // Top
		{4, 5, 1, 0}, // Bottom
	}
	return build("cube", v, faces, Tumble{
		Order: []Axis{AxisX, AxisY},
		Rates: [3]float64{0.04, 0.03, 0},
	})
}

// Tetrahedron returns a regular tetrahedron inscribed in the side-1 cube.
func Tetrahedron() *Solid {
	s := 0.5
	v := []math3d.Vec3{
		{X: s, Y: s, Z: s},
		{X: s, Y: -s, Z: -s},
		{X: -s, Y: s, Z: -s},
		{X: -s, Y: -s, Z: s},
	}
	faces := [][]int{
		{0, 1, 2},
		{0, 3, 1},
		{0, 2, 3},
		{1, 3, 2},
	}
	return build("tetrahedron", v, faces, Tumble{
		Order: []Axis{AxisY, AxisZ},
		Rates: [3]float64{0, 0.035, 0.025},
	})
}

// Dorito returns a thin triangular prism.
func Dorito() *Solid {
	d := 0.12
	v := []math3d.Vec3{
		{X: 0, Y: 0.8, Z: d},
		{X: -0.7, Y: -0.45, Z: d},
		{X: 0.7, Y: -0.45, Z: d},
		{X: 0, Y: 0.8, Z: -d},
		{X: -0.7, Y: -0.45, Z: -d},
		{X: 0.7, Y: -0.45, Z: -d},
	}
	faces := [][]int{
		{0, 1, 2},    // Front
		{3, 5, 4},    // Back
		{0, 3, 4, 1}, // Left edge
		{1, 4, 5, 2}, // Bottom edge
		{2, 5, 3, 0}, // Right edge
	}
	return build("dorito", v, faces, Tumble{
		Order: []Axis{AxisZ, AxisX},
		Rates: [3]float64{0.045, 0, 0.03},
	})
}

// Pyramid returns a square-based pyramid.
func Pyramid() *Solid {
	h := 0.5
	base := -0.4
	v := []math3d.Vec3{
		{X: -h, Y: base, Z: -h},
		{X: h, Y: base, Z: -h},
		{X: h, Y: base, Z: h},
		{X: -h, Y: base, Z: h},
		{X: 0, Y: 0.6, Z: 0}, // Apex
	}
	faces := [][]int{
		{0, 1, 2, 3}, // Base
		{0, 4, 1},
		{1, 4, 2},
		{2, 4, 3},
		{3, 4, 0},
	}
	return build("pyramid", v, faces, Tumble{
		Order: []Axis{AxisX, AxisY, AxisZ},
		Rates: [3]float64{0.02, 0.035, 0.015},
	})
}
