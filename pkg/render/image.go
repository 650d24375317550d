package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrUnsupportedImage is returned by SaveImage for unknown file extensions.
var ErrUnsupportedImage = errors.New("unsupported image format")

// glyphFace draws glyphs into snapshots. Each grid cell is one glyph
// advance wide and one line tall.
var glyphFace = basicfont.Face7x13

// ToImage renders the framebuffer as an image, one font glyph per cell (two
// with doubleWidth), upscaled by an integer factor with nearest-neighbor
// sampling. scale < 1 is treated as 1.
func (fb *Framebuffer) ToImage(doubleWidth bool, scale int) *image.RGBA {
	w := 1
	if doubleWidth {
		w = 2
	}
	cw, ch := glyphFace.Advance, glyphFace.Height

	img := image.NewRGBA(image.Rect(0, 0, fb.Size*w*cw, fb.Size*ch))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Face: glyphFace}
	for row := range fb.Size {
		y := fb.Size - 1 - row
		for x := range fb.Size {
			g := fb.At(x, y).Glyph
			if g == ' ' {
				continue
			}
			d.Src = image.NewUniform(GlyphColor(g))
			for k := range w {
				d.Dot = fixed.P((x*w+k)*cw, row*ch+glyphFace.Ascent)
				d.DrawString(string(g))
			}
		}
	}

	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
	return scaled
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string, doubleWidth bool, scale int) error {
	return saveWith(path, fb.ToImage(doubleWidth, scale), png.Encode)
}

// SaveWebP saves the framebuffer as a lossless WebP file.
func (fb *Framebuffer) SaveWebP(path string, doubleWidth bool, scale int) error {
	return saveWith(path, fb.ToImage(doubleWidth, scale), func(w io.Writer, img image.Image) error {
		return nativewebp.Encode(w, img, nil)
	})
}

// SaveImage picks the encoder from the file extension (.png or .webp).
func (fb *Framebuffer) SaveImage(path string, doubleWidth bool, scale int) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return fb.SavePNG(path, doubleWidth, scale)
	case ".webp":
		return fb.SaveWebP(path, doubleWidth, scale)
	default:
		return fmt.Errorf("%w: %q (use .png or .webp)", ErrUnsupportedImage, ext)
	}
}

func saveWith(path string, img image.Image, encode func(io.Writer, image.Image) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
