package render

import (
	"math"
	"testing"

	"github.com/taigrr/polyspin/pkg/math3d"
	"github.com/taigrr/polyspin/pkg/models"
)

// fullSquare covers the whole default grid, corner to corner.
var fullSquare = []GridPoint{{0, 0}, {0, 49}, {49, 49}, {49, 0}}

func onBorder(x, y, size int) bool {
	return x == 0 || y == 0 || x == size-1 || y == size-1
}

func sameCells(t *testing.T, a, b *Framebuffer) {
	t.Helper()
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatalf("cell %d differs: %v vs %v", i, a.Cells[i], b.Cells[i])
		}
	}
}

func TestProject(t *testing.T) {
	tests := []struct {
		name     string
		coord    float64
		expected int
	}{
		{"lower bound", -1, 0},
		{"upper bound", 1, GridSize - 1},
		{"center rounds half up", 0, 25},
		{"clamp high", 5, GridSize - 1},
		{"clamp low", -5, 0},
		{"positive infinity", math.Inf(1), GridSize - 1},
		{"negative infinity", math.Inf(-1), 0},
		{"nan", math.NaN(), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Project(tc.coord, GridSize); got != tc.expected {
				t.Errorf("Project(%v) = %d, want %d", tc.coord, got, tc.expected)
			}
		})
	}

	if got := Project(0.3, 1); got != 0 {
		t.Errorf("Project on a 1-cell grid = %d, want 0", got)
	}
}

func TestEdgeAt(t *testing.T) {
	e := edge{X1: 0, Y1: 0, DX: 10, DY: 0}
	if f := edgeAt(e, 5, 0); f != 0 {
		t.Errorf("point on edge: f = %v, want 0", f)
	}
	above, below := edgeAt(e, 5, 3), edgeAt(e, 5, -3)
	if above == 0 || below == 0 || (above > 0) == (below > 0) {
		t.Errorf("opposite sides should have opposite signs: %v, %v", above, below)
	}
}

func TestPaintFullSquare(t *testing.T) {
	fb := NewFramebuffer(GridSize)
	r := NewRasterizer(fb)
	r.PaintPolygon(fullSquare, 0.0, '#')

	for y := range GridSize {
		for x := range GridSize {
			c := fb.At(x, y)
			if onBorder(x, y, GridSize) {
				if c != EmptyCell() {
					t.Fatalf("border cell (%d,%d) painted: %v", x, y, c)
				}
				continue
			}
			if c.Glyph != '#' || c.Depth != 0 {
				t.Fatalf("interior cell (%d,%d) = %v, want '#' at depth 0", x, y, c)
			}
		}
	}
	if n := count(fb, '#'); n != 48*48 {
		t.Errorf("painted %d cells, want %d", n, 48*48)
	}
}

func TestInclusiveRuleClosesSeam(t *testing.T) {
	fb := NewFramebuffer(GridSize)
	r := NewRasterizer(fb)
	r.Rule = FillInclusive
	r.PaintPolygon(fullSquare, 0.0, '#')

	if n := count(fb, '#'); n != GridSize*GridSize {
		t.Errorf("inclusive fill painted %d cells, want %d", n, GridSize*GridSize)
	}
}

func TestDepthPrecedenceOrderIndependent(t *testing.T) {
	paint := func(order []rune) *Framebuffer {
		fb := NewFramebuffer(GridSize)
		r := NewRasterizer(fb)
		depths := map[rune]float64{'A': 1.0, 'B': 0.5}
		for _, g := range order {
			r.PaintPolygon(fullSquare, depths[g], g)
		}
		return fb
	}

	ab := paint([]rune("AB"))
	ba := paint([]rune("BA"))

	if n := count(ab, 'B'); n != 0 {
		t.Errorf("farther face B visible in %d cells", n)
	}
	if n := count(ab, 'A'); n != 48*48 {
		t.Errorf("nearer face A covers %d cells, want %d", n, 48*48)
	}
	sameCells(t, ab, ba)
}

func TestEqualDepthKeepsFirst(t *testing.T) {
	fb := NewFramebuffer(GridSize)
	r := NewRasterizer(fb)
	r.PaintPolygon(fullSquare, 0.25, 'A')
	r.PaintPolygon(fullSquare, 0.25, 'B')

	if n := count(fb, 'B'); n != 0 {
		t.Errorf("equal-depth face overwrote %d cells", n)
	}
}

func TestWindingAgnostic(t *testing.T) {
	ccw := []GridPoint{{5, 5}, {40, 10}, {20, 45}}
	cw := []GridPoint{{5, 5}, {20, 45}, {40, 10}}

	a := NewFramebuffer(GridSize)
	NewRasterizer(a).PaintPolygon(ccw, 0, '*')
	b := NewFramebuffer(GridSize)
	NewRasterizer(b).PaintPolygon(cw, 0, '*')

	if count(a, '*') == 0 {
		t.Fatal("triangle painted nothing")
	}
	sameCells(t, a, b)
}

func TestDegenerateFaces(t *testing.T) {
	tests := []struct {
		name string
		pts  []GridPoint
		rule FillRule
	}{
		{"single point", []GridPoint{{10, 10}, {10, 10}, {10, 10}}, FillStrict},
		{"single point inclusive", []GridPoint{{10, 10}, {10, 10}, {10, 10}}, FillInclusive},
		{"collinear", []GridPoint{{0, 0}, {10, 10}, {20, 20}}, FillStrict},
		{"collinear inclusive", []GridPoint{{0, 0}, {10, 10}, {20, 20}}, FillInclusive},
		{"two vertices", []GridPoint{{0, 0}, {30, 30}}, FillStrict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(GridSize)
			r := NewRasterizer(fb)
			r.Rule = tc.rule
			r.PaintPolygon(tc.pts, 0, '#')

			if n := count(fb, '#'); n > 1 {
				t.Errorf("degenerate face painted %d cells", n)
			}
			for i, c := range fb.Cells {
				if c.Glyph != '#' && c != EmptyCell() {
					t.Fatalf("cell %d mutated to %v", i, c)
				}
			}
		})
	}
}

func TestRepresentativeDepth(t *testing.T) {
	verts := []math3d.Vec3{math3d.V3(0, 0, 1), math3d.V3(1, 0, 0.5), math3d.V3(0, 1, -0.3)}
	if got := RepresentativeDepth(verts); math.Abs(got-0.4) > 1e-12 {
		t.Errorf("RepresentativeDepth = %v, want 0.4", got)
	}
	if got := RepresentativeDepth(nil); !math.IsInf(got, -1) {
		t.Errorf("RepresentativeDepth(nil) = %v, want -Inf", got)
	}
}

func TestDrawSolidUnrotatedCube(t *testing.T) {
	cube := models.Cube()
	fb := RenderFrame(cube, math3d.Identity3(), FillStrict)

	// Front face spans cells 12..37 on both axes; the four side faces are
	// edge-on and project to lines.
	front := cube.Faces[1].Glyph
	back := cube.Faces[0].Glyph
	if n := count(fb, front); n != 24*24 {
		t.Errorf("front face covers %d cells, want %d", n, 24*24)
	}
	if n := count(fb, back); n != 0 {
		t.Errorf("back face visible in %d cells", n)
	}
	if c := fb.At(25, 25); c.Depth != 0.5 {
		t.Errorf("center depth = %v, want 0.5", c.Depth)
	}
}

func TestDrawSolidRotatedCube(t *testing.T) {
	cube := models.Cube()
	before := cube.Clone()
	m := math3d.RotateX(0.5).Mul(math3d.RotateY(0.6))

	fb := RenderFrame(cube, m, FillStrict)

	glyphs := map[rune]bool{}
	for _, c := range fb.Cells {
		if c.Glyph != ' ' {
			glyphs[c.Glyph] = true
		}
	}
	if len(glyphs) < 2 {
		t.Errorf("rotated cube shows %d faces, want at least 2", len(glyphs))
	}
	for i := range cube.Faces {
		for j := range cube.Faces[i].Vertices {
			if cube.Faces[i].Vertices[j] != before.Faces[i].Vertices[j] {
				t.Fatal("DrawSolid modified its source")
			}
		}
	}
}

func TestDrawSolidFaceOrderIndependent(t *testing.T) {
	m := math3d.RotateY(0.7).Mul(math3d.RotateX(-0.4))
	cube := models.Cube()

	reversed := cube.Clone()
	for i, j := 0, len(reversed.Faces)-1; i < j; i, j = i+1, j-1 {
		reversed.Faces[i], reversed.Faces[j] = reversed.Faces[j], reversed.Faces[i]
	}

	sameCells(t, RenderFrame(cube, m, FillStrict), RenderFrame(reversed, m, FillStrict))
}

func TestOffscreenGeometryClamps(t *testing.T) {
	fb := NewFramebuffer(GridSize)
	r := NewRasterizer(fb)
	r.DrawFace([]math3d.Vec3{
		math3d.V3(-3, -3, 0),
		math3d.V3(3, -3, 0),
		math3d.V3(3, 3, 0),
		math3d.V3(-3, 3, 0),
	}, 'o')

	if n := count(fb, 'o'); n != 48*48 {
		t.Errorf("clamped square painted %d cells, want %d", n, 48*48)
	}
}

func BenchmarkRenderCube(b *testing.B) {
	cube := models.Cube()
	m := math3d.RotateX(0.5).Mul(math3d.RotateY(0.6))
	fb := NewFramebuffer(GridSize)
	r := NewRasterizer(fb)

	for b.Loop() {
		fb.Clear()
		r.DrawSolid(cube, m)
	}
}
