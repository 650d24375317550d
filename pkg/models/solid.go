// Package models provides the polyhedra rendered by polyspin.
package models

import (
	"math"

	"github.com/taigrr/polyspin/pkg/math3d"
)

// DefaultGlyphs are assigned to faces in order when none are given.
var DefaultGlyphs = []rune("#@%&$*+=")

// Face is a planar convex polygon with the glyph used to draw it.
type Face struct {
	Vertices []math3d.Vec3 // Closed, consistently wound; last connects to first
	Glyph    rune
}

// Clone creates a deep copy of the face.
func (f Face) Clone() Face {
	verts := make([]math3d.Vec3, len(f.Vertices))
	copy(verts, f.Vertices)
	return Face{Vertices: verts, Glyph: f.Glyph}
}

// Solid is a named set of faces plus the tumbling animation it uses.
type Solid struct {
	Name   string
	Faces  []Face
	Tumble Tumble
}

// FaceCount returns the number of faces.
// Implements render.FaceSource.
func (s *Solid) FaceCount() int {
	return len(s.Faces)
}

// FaceVertices returns the vertices of face i.
// Implements render.FaceSource.
func (s *Solid) FaceVertices(i int) []math3d.Vec3 {
	return s.Faces[i].Vertices
}

// FaceGlyph returns the glyph of face i.
// Implements render.FaceSource.
func (s *Solid) FaceGlyph(i int) rune {
	return s.Faces[i].Glyph
}

// Clone creates a deep copy of the solid.
func (s *Solid) Clone() *Solid {
	clone := &Solid{
		Name:   s.Name,
		Faces:  make([]Face, len(s.Faces)),
		Tumble: s.Tumble.Clone(),
	}
	for i, f := range s.Faces {
		clone.Faces[i] = f.Clone()
	}
	return clone
}

// Transform returns a copy of the solid with every vertex multiplied by m.
// The receiver is not modified.
func (s *Solid) Transform(m math3d.Mat3) *Solid {
	out := s.Clone()
	for i := range out.Faces {
		for j, v := range out.Faces[i].Vertices {
			out.Faces[i].Vertices[j] = m.MulVec3(v)
		}
	}
	return out
}

// WithGlyphs returns a copy whose faces take glyphs from g cyclically.
// An empty g keeps the existing glyphs.
func (s *Solid) WithGlyphs(g []rune) *Solid {
	out := s.Clone()
	if len(g) == 0 {
		return out
	}
	for i := range out.Faces {
		out.Faces[i].Glyph = g[i%len(g)]
	}
	return out
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (s *Solid) Bounds() (min, max math3d.Vec3) {
	first := true
	for _, f := range s.Faces {
		for _, v := range f.Vertices {
			if first {
				min, max = v, v
				first = false
				continue
			}
			min = min.Min(v)
			max = max.Max(v)
		}
	}
	return min, max
}

// Radius returns the largest distance of any vertex from the origin.
func (s *Solid) Radius() float64 {
	var r float64
	for _, f := range s.Faces {
		for _, v := range f.Vertices {
			r = math.Max(r, v.Len())
		}
	}
	return r
}

// Normalize returns a copy centered on its bounding box center and scaled so
// the farthest vertex lies at distance radius from the origin.
func (s *Solid) Normalize(radius float64) *Solid {
	min, max := s.Bounds()
	center := min.Add(max).Scale(0.5)

	out := s.Clone()
	for i := range out.Faces {
		for j, v := range out.Faces[i].Vertices {
			out.Faces[i].Vertices[j] = v.Sub(center)
		}
	}

	r := out.Radius()
	if r == 0 {
		return out
	}
	k := radius / r
	for i := range out.Faces {
		for j, v := range out.Faces[i].Vertices {
			out.Faces[i].Vertices[j] = v.Scale(k)
		}
	}
	return out
}
