// Package render rasterizes polyhedron faces into a grid of glyphs.
package render

import (
	"math"
	"strings"
)

// GridSize is the side length of the default square framebuffer.
const GridSize = 50

// EmptyDepth marks a cell nothing has been painted into. Every real depth
// compares greater than it, so the first face covering a cell always wins.
var EmptyDepth = math.Inf(-1)

// Cell is one character position: the glyph shown and the depth of the face
// that painted it.
type Cell struct {
	Glyph rune
	Depth float64
}

// EmptyCell returns the cleared cell value.
func EmptyCell() Cell {
	return Cell{Glyph: ' ', Depth: EmptyDepth}
}

// Framebuffer is a square grid of cells.
// (0, 0) is the bottom-left cell; Y grows upward.
type Framebuffer struct {
	Size  int    // Cells per side
	Cells []Cell // Row-major cell data, row 0 is Y = 0
}

// NewFramebuffer creates a cleared size×size framebuffer.
func NewFramebuffer(size int) *Framebuffer {
	size = max(size, 0)
	fb := &Framebuffer{
		Size:  size,
		Cells: make([]Cell, size*size),
	}
	fb.Clear()
	return fb
}

// Clear resets every cell to a space at EmptyDepth.
func (fb *Framebuffer) Clear() {
	// Use copy-doubling for faster clearing
	n := len(fb.Cells)
	if n == 0 {
		return
	}
	fb.Cells[0] = EmptyCell()
	for i := 1; i < n; i *= 2 {
		copy(fb.Cells[i:], fb.Cells[:i])
	}
}

// InBounds reports whether (x, y) addresses a cell.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < fb.Size && y >= 0 && y < fb.Size
}

// At returns the cell at (x, y).
// Returns the empty cell if out of bounds.
func (fb *Framebuffer) At(x, y int) Cell {
	if !fb.InBounds(x, y) {
		return EmptyCell()
	}
	return fb.Cells[y*fb.Size+x]
}

// Set stores c at (x, y).
// Bounds checking is performed.
func (fb *Framebuffer) Set(x, y int, c Cell) {
	if !fb.InBounds(x, y) {
		return
	}
	fb.Cells[y*fb.Size+x] = c
}

// Serialize renders the grid as text, one newline-terminated line per row
// with the highest Y row first. doubleWidth writes every glyph twice to make
// up for terminal cells being about twice as tall as they are wide.
func (fb *Framebuffer) Serialize(doubleWidth bool) string {
	w := 1
	if doubleWidth {
		w = 2
	}

	var sb strings.Builder
	sb.Grow(fb.Size * (fb.Size*w + 1))
	for y := fb.Size - 1; y >= 0; y-- {
		for x := range fb.Size {
			g := fb.At(x, y).Glyph
			for range w {
				sb.WriteRune(g)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String returns the double-width serialization.
func (fb *Framebuffer) String() string {
	return fb.Serialize(true)
}
