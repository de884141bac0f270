package main

import (
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/mechyard/pkg/camera"
	"github.com/taigrr/mechyard/pkg/frame"
	"github.com/taigrr/mechyard/pkg/input"
)

// binding maps terminal key names to one tracked key.
type binding struct {
	name string
	keys []string
}

var moveBindings = []struct {
	binding
	dir camera.Direction
}{
	{binding{"w", []string{"w", "up"}}, camera.Forward},
	{binding{"s", []string{"s", "down"}}, camera.Backward},
	{binding{"a", []string{"a", "left"}}, camera.Left},
	{binding{"d", []string{"d", "right"}}, camera.Right},
	{binding{"q", []string{"q", "pgup"}}, camera.Up},
	{binding{"e", []string{"e", "pgdown"}}, camera.Down},
}

var (
	projectionBinding = binding{"p", []string{"p"}}
	wireframeBinding  = binding{"x", []string{"x"}}
	hudBinding        = binding{"?", []string{"?", "shift+/"}}
)

// controls folds terminal events into the per-frame input sample. Events are
// handled on the render loop's goroutine, between frames.
type controls struct {
	keyboard *input.Keyboard

	cursorX, cursorY float64
	cursorValid      bool
	scroll           float64
	focusChanged     bool
	quit             bool

	hud     input.EdgeTrigger
	resized bool
	width   int
	height  int
}

func newControls(hold time.Duration) *controls {
	return &controls{keyboard: input.NewKeyboard(hold)}
}

func (c *controls) bindings() []binding {
	all := make([]binding, 0, len(moveBindings)+3)
	for _, m := range moveBindings {
		all = append(all, m.binding)
	}
	return append(all, projectionBinding, wireframeBinding, hudBinding)
}

// handle applies one event.
func (c *controls) handle(ev uv.Event, now time.Time) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		c.resized = true
		c.width, c.height = ev.Width, ev.Height

	case uv.KeyPressEvent:
		if ev.MatchString("escape", "ctrl+c") {
			c.quit = true
			return
		}
		for _, b := range c.bindings() {
			if ev.MatchString(b.keys...) {
				c.keyboard.Press(b.name, now)
			}
		}

	case uv.KeyReleaseEvent:
		for _, b := range c.bindings() {
			if ev.MatchString(b.keys...) {
				c.keyboard.Release(b.name)
			}
		}

	case uv.MouseMotionEvent:
		c.setCursor(ev.X, ev.Y)
	case uv.MouseClickEvent:
		c.setCursor(ev.X, ev.Y)
	case uv.MouseReleaseEvent:
		c.setCursor(ev.X, ev.Y)

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			c.scroll++
		case uv.MouseWheelDown:
			c.scroll--
		}

	case uv.FocusEvent, uv.BlurEvent:
		c.focusChanged = true
		c.keyboard.Reset()
	}
}

func (c *controls) setCursor(x, y int) {
	c.cursorX, c.cursorY = float64(x), float64(y)
	c.cursorValid = true
}

// sample builds the frame input at now and clears the one-shot fields. The
// cursor position is kept: it is the last known absolute position.
func (c *controls) sample(now time.Time) frame.Input {
	in := frame.Input{
		CursorX:       c.cursorX,
		CursorY:       c.cursorY,
		CursorValid:   c.cursorValid,
		Scroll:        c.scroll,
		ProjectionKey: c.keyboard.Held(projectionBinding.name, now),
		WireframeKey:  c.keyboard.Held(wireframeBinding.name, now),
		FocusChanged:  c.focusChanged,
		Quit:          c.quit,
	}
	for _, m := range moveBindings {
		if c.keyboard.Held(m.name, now) {
			in.Held = append(in.Held, m.dir)
		}
	}

	c.scroll = 0
	c.focusChanged = false
	return in
}

// takeHUDToggle reports whether the HUD key went down since the last frame.
// Auto-repeats of a held key do not toggle again.
func (c *controls) takeHUDToggle(now time.Time) bool {
	return c.hud.Update(c.keyboard.Held(hudBinding.name, now))
}

// takeResize reports and clears a pending resize.
func (c *controls) takeResize() (width, height int, ok bool) {
	if !c.resized {
		return 0, 0, false
	}
	c.resized = false
	return c.width, c.height, true
}
