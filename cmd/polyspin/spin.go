package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"math/rand/v2"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/polyspin/pkg/models"
	"github.com/taigrr/polyspin/pkg/render"
	"github.com/taigrr/polyspin/pkg/scene"
)

// Impulse sizes in radians per frame.
const (
	keyImpulse    = 0.02
	randomImpulse = 0.15
)

// runPlain repaints the frame with clear-screen sequences on w.
func runPlain(ctx context.Context, w io.Writer, s *models.Solid, o *options) error {
	sc := o.newScene(s)
	ticker := time.NewTicker(time.Second / time.Duration(o.fps))
	defer ticker.Stop()

	for n := 0; o.frames == 0 || n < o.frames; n++ {
		fb := sc.Step()
		if _, err := io.WriteString(w, render.PlainFrame(fb, o.doubleWidth())); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

// keyAction is what a key press does to the scene.
type keyAction int

const (
	actionNone keyAction = iota
	actionQuit
	actionReset
	actionRandom
	actionPitchUp
	actionPitchDown
	actionYawLeft
	actionYawRight
	actionRollLeft
	actionRollRight
	actionWireframe
)

func keyActionFor(ev uv.KeyPressEvent) keyAction {
	switch {
	case ev.MatchString("escape", "ctrl+c"):
		return actionQuit
	case ev.MatchString("r"):
		return actionReset
	case ev.MatchString("space"):
		return actionRandom
	case ev.MatchString("w", "up"):
		return actionPitchUp
	case ev.MatchString("s", "down"):
		return actionPitchDown
	case ev.MatchString("a", "left"):
		return actionYawLeft
	case ev.MatchString("d", "right"):
		return actionYawRight
	case ev.MatchString("q"):
		return actionRollLeft
	case ev.MatchString("e"):
		return actionRollRight
	case ev.MatchString("x"):
		return actionWireframe
	}
	return actionNone
}

// apply changes the scene for a; it reports false when the viewer should quit.
func (a keyAction) apply(sc *scene.Scene) bool {
	switch a {
	case actionQuit:
		return false
	case actionReset:
		sc.Reset()
	case actionRandom:
		sc.Impulse(
			(rand.Float64()-0.5)*randomImpulse,
			(rand.Float64()-0.5)*randomImpulse,
			(rand.Float64()-0.5)*randomImpulse,
		)
	case actionPitchUp:
		sc.Impulse(-keyImpulse, 0, 0)
	case actionPitchDown:
		sc.Impulse(keyImpulse, 0, 0)
	case actionYawLeft:
		sc.Impulse(0, -keyImpulse, 0)
	case actionYawRight:
		sc.Impulse(0, keyImpulse, 0)
	case actionRollLeft:
		sc.Impulse(0, 0, -keyImpulse)
	case actionRollRight:
		sc.Impulse(0, 0, keyImpulse)
	case actionWireframe:
		sc.Wireframe = !sc.Wireframe
	}
	return true
}

// runInteractive shows the scene full-screen until Esc, Ctrl+C or ctx ends.
func runInteractive(ctx context.Context, s *models.Solid, o *options) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Only the frame loop touches the scene; the reader just forwards events.
	events := make(chan uv.Event, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	sc := o.newScene(s)
	ticker := time.NewTicker(time.Second / time.Duration(o.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

	drain:
		for {
			select {
			case ev := <-events:
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					width, height = ev.Width, ev.Height
					term.Erase()
					term.Resize(width, height)
				case uv.KeyPressEvent:
					if !keyActionFor(ev).apply(sc) {
						return nil
					}
				}
			default:
				break drain
			}
		}

		fb := sc.Step()
		fb.Draw(term, image.Rect(0, 0, width, height), o.doubleWidth())
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
	}
}
