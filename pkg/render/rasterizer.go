package render

import (
	"github.com/taigrr/polyspin/pkg/math3d"
)

// FaceSource is anything that can hand the rasterizer a list of faces.
// models.Solid implements it.
type FaceSource interface {
	FaceCount() int
	FaceVertices(i int) []math3d.Vec3
	FaceGlyph(i int) rune
}

// FillRule decides how cells lying exactly on a polygon edge are treated.
type FillRule int

const (
	// FillStrict paints a cell only when every edge function is strictly
	// positive or every one strictly negative. Cells on an edge stay
	// unpainted, which leaves a thin seam along face boundaries.
	FillStrict FillRule = iota

	// FillInclusive also paints cells on an edge (all >= 0 or all <= 0).
	// It closes the seam. Zero-area polygons paint nothing under this rule.
	FillInclusive
)

// Rasterizer paints faces into a framebuffer with a per-face depth test.
type Rasterizer struct {
	fb      *Framebuffer
	Rule    FillRule
	scratch []math3d.Vec3
	edges   []edge
}

// NewRasterizer creates a rasterizer drawing into fb with FillStrict.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	return &Rasterizer{fb: fb}
}

// edge holds one polygon edge in grid space: its start point and its
// direction vector.
type edge struct {
	X1, Y1 float64
	DX, DY float64
}

// edgeAt evaluates the implicit line of e at (x, y). The result is zero on
// the line and keeps one sign on each side of it.
func edgeAt(e edge, x, y float64) float64 {
	return e.DY*x - e.DX*y - (e.DY*e.X1 - e.DX*e.Y1)
}

// buildEdges fills dst with one edge per consecutive vertex pair, the last
// vertex wrapping to the first.
func buildEdges(dst []edge, pts []GridPoint) []edge {
	dst = dst[:0]
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		dst = append(dst, edge{
			X1: float64(p.X),
			Y1: float64(p.Y),
			DX: float64(q.X - p.X),
			DY: float64(q.Y - p.Y),
		})
	}
	return dst
}

// doubledArea returns twice the signed area of the polygon.
func doubledArea(pts []GridPoint) int {
	a := 0
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a
}

// inside classifies (x, y) against every edge. Accepting either sign makes
// the test independent of winding order.
func (r *Rasterizer) inside(edges []edge, x, y int) bool {
	fx, fy := float64(x), float64(y)
	pos, neg := 0, 0
	for _, e := range edges {
		switch f := edgeAt(e, fx, fy); {
		case f > 0:
			pos++
		case f < 0:
			neg++
		}
	}

	if r.Rule == FillInclusive {
		return pos == 0 || neg == 0
	}
	n := len(edges)
	return pos == n || neg == n
}

// RepresentativeDepth returns the mean Z of the vertices, the single depth
// used for the whole face. Larger values are nearer the viewer.
func RepresentativeDepth(verts []math3d.Vec3) float64 {
	if len(verts) == 0 {
		return EmptyDepth
	}
	var sum float64
	for _, v := range verts {
		sum += v.Z
	}
	return sum / float64(len(verts))
}

// PaintPolygon fills the convex polygon pts (grid coordinates) with glyph
// wherever it is strictly nearer than what the cell already holds. A depth
// equal to the stored one does not overwrite it.
func (r *Rasterizer) PaintPolygon(pts []GridPoint, depth float64, glyph rune) {
	if len(pts) < 3 || r.fb == nil {
		return
	}
	if r.Rule == FillInclusive && doubledArea(pts) == 0 {
		// Zero-area polygons would otherwise pass the >= / <= test everywhere.
		return
	}

	r.edges = buildEdges(r.edges, pts)

	// Cells outside the bounding box can never be strictly inside.
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, r.fb.Size-1), min(maxY, r.fb.Size-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !(depth > r.fb.At(x, y).Depth) {
				continue
			}
			if !r.inside(r.edges, x, y) {
				continue
			}
			r.fb.Set(x, y, Cell{Glyph: glyph, Depth: depth})
		}
	}
}

// DrawFace projects already transformed vertices and paints the face at its
// representative depth.
func (r *Rasterizer) DrawFace(verts []math3d.Vec3, glyph rune) {
	if len(verts) < 3 || r.fb == nil {
		return
	}
	pts := make([]GridPoint, len(verts))
	for i, v := range verts {
		pts[i] = ProjectVertex(v, r.fb.Size)
	}
	r.PaintPolygon(pts, RepresentativeDepth(verts), glyph)
}

// DrawSolid applies transform to copies of every face's vertices and paints
// the faces. The source is never modified. Where overlapping faces have
// different depths the result does not depend on face order.
func (r *Rasterizer) DrawSolid(src FaceSource, transform math3d.Mat3) {
	for i := range src.FaceCount() {
		verts := src.FaceVertices(i)
		r.scratch = r.scratch[:0]
		for _, v := range verts {
			r.scratch = append(r.scratch, transform.MulVec3(v))
		}
		r.DrawFace(r.scratch, src.FaceGlyph(i))
	}
}

// RenderFrame renders src transformed by m into a fresh GridSize framebuffer.
func RenderFrame(src FaceSource, m math3d.Mat3, rule FillRule) *Framebuffer {
	fb := NewFramebuffer(GridSize)
	r := NewRasterizer(fb)
	r.Rule = rule
	r.DrawSolid(src, m)
	return fb
}
