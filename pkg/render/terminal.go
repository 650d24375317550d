package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

// CellWriter is the part of uv.Screen that Draw needs; *uv.Terminal
// satisfies it.
type CellWriter interface {
	SetCell(x, y int, c *uv.Cell)
}

// Draw writes the framebuffer to scr, centered in area. With doubleWidth each
// grid cell covers two terminal columns. Cells that fall outside area are
// skipped.
func (fb *Framebuffer) Draw(scr CellWriter, area uv.Rectangle, doubleWidth bool) {
	w := 1
	if doubleWidth {
		w = 2
	}

	offX := area.Min.X + (area.Dx()-fb.Size*w)/2
	offY := area.Min.Y + (area.Dy()-fb.Size)/2

	for row := range fb.Size {
		screenY := offY + row
		if screenY < area.Min.Y || screenY >= area.Max.Y {
			continue
		}
		// Top terminal row shows the highest Y.
		y := fb.Size - 1 - row

		for x := range fb.Size {
			g := fb.At(x, y).Glyph
			cell := &uv.Cell{
				Content: string(g),
				Width:   1,
				Style:   uv.Style{Fg: glyphFg(g)},
			}
			for k := range w {
				col := offX + x*w + k
				if col < area.Min.X || col >= area.Max.X {
					continue
				}
				scr.SetCell(col, screenY, cell)
			}
		}
	}
}

// glyphFg returns the terminal foreground for g; nil (default) for spaces.
func glyphFg(g rune) color.Color {
	if g == ' ' {
		return nil
	}
	return GlyphColor(g)
}

// PlainFrame returns the escape sequence that homes the cursor and clears
// the screen, followed by the serialized frame.
func PlainFrame(fb *Framebuffer, doubleWidth bool) string {
	return ansi.CursorHomePosition + ansi.EraseEntireScreen + fb.Serialize(doubleWidth)
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// Background is the backdrop used for image snapshots.
var Background = RGB(30, 30, 40)

// glyphPalette colors glyphs so neighboring faces are easy to tell apart.
var glyphPalette = []Color{
	RGB(255, 110, 110),
	RGB(120, 220, 120),
	RGB(110, 160, 255),
	RGB(255, 220, 100),
	RGB(230, 120, 230),
	RGB(100, 220, 220),
	RGB(255, 170, 90),
	RGB(200, 200, 200),
}

// GlyphColor returns the deterministic display color of glyph g.
func GlyphColor(g rune) Color {
	return glyphPalette[uint32(g)%uint32(len(glyphPalette))]
}
