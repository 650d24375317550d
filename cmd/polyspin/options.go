package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/taigrr/polyspin/pkg/math3d"
	"github.com/taigrr/polyspin/pkg/models"
	"github.com/taigrr/polyspin/pkg/render"
	"github.com/taigrr/polyspin/pkg/scene"
)

// errNoGlyphs is returned when --glyphs yields nothing printable.
var errNoGlyphs = errors.New("no glyphs given")

// options holds the flags shared by the rendering commands.
type options struct {
	solid       string
	model       string
	glyphs      string
	inclusive   bool
	singleWidth bool
	wireframe   bool

	// spin only
	fps    int
	plain  bool
	frames int
}

func defaultOptions() *options {
	return &options{solid: "cube", fps: 30}
}

func (o *options) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.solid, "solid", o.solid, fmt.Sprintf("Built-in solid %v", models.Names()))
	f.StringVar(&o.model, "model", "", "Load faces from a glTF file (.glb/.gltf) instead")
	f.StringVar(&o.glyphs, "glyphs", "", `Face glyphs in order; "-" reads one line from stdin`)
	f.BoolVar(&o.inclusive, "inclusive", false, "Fill cells on polygon edges too")
	f.BoolVar(&o.singleWidth, "single-width", false, "One column per cell instead of two")
	f.BoolVar(&o.wireframe, "wireframe", false, "Draw x-ray face outlines instead of filled faces")
	cmd.MarkFlagsMutuallyExclusive("solid", "model")
}

func (o *options) rule() render.FillRule {
	if o.inclusive {
		return render.FillInclusive
	}
	return render.FillStrict
}

func (o *options) doubleWidth() bool {
	return !o.singleWidth
}

// loadSolid builds the selected solid and applies any glyph override.
// stdin is read only for --glyphs -.
func (o *options) loadSolid(stdin io.Reader) (*models.Solid, error) {
	var (
		s   *models.Solid
		err error
	)
	if o.model != "" {
		s, err = models.LoadGLTF(o.model)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Loaded: %s (%d faces)\n", filepath.Base(o.model), s.FaceCount())
	} else {
		s, err = models.Lookup(o.solid)
		if err != nil {
			return nil, err
		}
	}

	switch o.glyphs {
	case "":
		return s, nil
	case "-":
		g, err := readGlyphs(stdin)
		if err != nil {
			return nil, err
		}
		return s.WithGlyphs(g), nil
	default:
		g := parseGlyphs(o.glyphs)
		if len(g) == 0 {
			return nil, errNoGlyphs
		}
		return s.WithGlyphs(g), nil
	}
}

// parseGlyphs keeps the non-space runes of s.
func parseGlyphs(s string) []rune {
	var g []rune
	for _, r := range s {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			continue
		}
		g = append(g, r)
	}
	return g
}

// readGlyphs reads one line from r and returns its glyphs.
func readGlyphs(r io.Reader) ([]rune, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read glyphs: %w", err)
		}
		return nil, errNoGlyphs
	}
	g := parseGlyphs(strings.TrimSpace(sc.Text()))
	if len(g) == 0 {
		return nil, errNoGlyphs
	}
	return g, nil
}

// renderStill advances a scene by steps and renders its current pose
// without further rotation.
func renderStill(o *options, stdin io.Reader, steps int) (*render.Framebuffer, error) {
	if steps < 0 {
		return nil, fmt.Errorf("steps must not be negative, got %d", steps)
	}
	s, err := o.loadSolid(stdin)
	if err != nil {
		return nil, err
	}
	sc := o.newScene(s)
	sc.Advance(steps)

	if o.wireframe {
		fb := render.NewFramebuffer(render.GridSize)
		render.NewWireframe(fb).DrawSolid(sc.Solid(), math3d.Identity3())
		return fb, nil
	}
	return render.RenderFrame(sc.Solid(), math3d.Identity3(), o.rule()), nil
}

func (o *options) newScene(s *models.Solid) *scene.Scene {
	sc := scene.New(s, o.fps, o.rule())
	sc.Wireframe = o.wireframe
	return sc
}

func exportSolid(o *options, stdin io.Reader, path string) error {
	s, err := o.loadSolid(stdin)
	if err != nil {
		return err
	}
	if err := models.ExportGLB(s, path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d faces)\n", path, s.FaceCount())
	return nil
}

func listSolids(w io.Writer) error {
	for _, name := range models.Names() {
		s, err := models.Lookup(name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-12s %d faces\n", name, s.FaceCount()); err != nil {
			return err
		}
	}
	return nil
}
