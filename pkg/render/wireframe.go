package render

import (
	"github.com/taigrr/polyspin/pkg/math3d"
)

// Wireframe draws face outlines into a framebuffer with no depth test, so
// hidden edges show through (x-ray).
type Wireframe struct {
	fb      *Framebuffer
	scratch []GridPoint
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(fb *Framebuffer) *Wireframe {
	return &Wireframe{fb: fb}
}

// DrawLine draws a line from p0 to p1 using Bresenham's algorithm. Only the
// glyph is written; stored depths are left as they are.
func (w *Wireframe) DrawLine(p0, p1 GridPoint, glyph rune) {
	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if w.fb.InBounds(x0, y0) {
			w.fb.Cells[y0*w.fb.Size+x0].Glyph = glyph
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawFace outlines one face, closing the loop from the last vertex back to
// the first.
func (w *Wireframe) DrawFace(verts []math3d.Vec3, glyph rune) {
	if len(verts) == 0 {
		return
	}
	w.scratch = w.scratch[:0]
	for _, v := range verts {
		w.scratch = append(w.scratch, ProjectVertex(v, w.fb.Size))
	}
	for i, p := range w.scratch {
		w.DrawLine(p, w.scratch[(i+1)%len(w.scratch)], glyph)
	}
}

// DrawSolid outlines every face of src after applying transform.
func (w *Wireframe) DrawSolid(src FaceSource, transform math3d.Mat3) {
	var verts []math3d.Vec3
	for i := range src.FaceCount() {
		verts = verts[:0]
		for _, v := range src.FaceVertices(i) {
			verts = append(verts, transform.MulVec3(v))
		}
		w.DrawFace(verts, src.FaceGlyph(i))
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
