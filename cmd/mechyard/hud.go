package main

import (
	"fmt"
	"io"
	"time"

	"github.com/taigrr/mechyard/pkg/camera"
	"github.com/taigrr/mechyard/pkg/frame"
)

// HUD draws a two-line overlay with frame rate and camera state.
type HUD struct {
	out       io.Writer
	polyCount int
	visible   bool

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a hidden HUD writing escape sequences to out.
func NewHUD(out io.Writer, polyCount int, now time.Time) *HUD {
	return &HUD{
		out:       out,
		polyCount: polyCount,
		fpsTime:   now,
	}
}

// Toggle shows or hides the overlay.
func (h *HUD) Toggle() { h.visible = !h.visible }

// UpdateFPS counts a frame (call once per frame).
func (h *HUD) UpdateFPS(now time.Time) {
	h.fpsFrames++
	elapsed := now.Sub(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// FPS returns the last measured frame rate.
func (h *HUD) FPS() float64 { return h.fps }

// Render draws the overlay on the first and last terminal rows.
func (h *HUD) Render(width, height int, cam *camera.Camera, stats frame.Stats) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows so toggling off works.
	fmt.Fprint(h.out, moveTo(1, 1)+clearLine)
	fmt.Fprint(h.out, moveTo(height, 1)+clearLine)

	if !h.visible {
		return
	}

	fmt.Fprintf(h.out, "%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	mode := stats.Mode.String()
	if stats.Wireframe {
		mode += " wireframe"
	}
	title := fmt.Sprintf(" %s ", mode)
	titleCol := max((width-len(title))/2, 1)
	fmt.Fprintf(h.out, "%s%s%s%s%s%s", moveTo(1, titleCol), bold, bgBlack, fgWhite, title, reset)

	polys := fmt.Sprintf(" %d/%d objects %d polys ", stats.Drawn, stats.Objects, h.polyCount)
	fmt.Fprintf(h.out, "%s%s%s%s%s", moveTo(1, max(width-len(polys), 1)), bgBlack, fgCyan, polys, reset)

	pos := cam.Position()
	state := fmt.Sprintf(" pos %.1f,%.1f,%.1f  yaw %.0f  pitch %.0f  speed %.1f  fov %.0f ",
		pos.X, pos.Y, pos.Z, cam.Yaw(), cam.Pitch(), cam.MovementSpeed(), cam.Zoom())
	fmt.Fprintf(h.out, "%s%s%s%s%s", moveTo(height, 1), bgBlack, fgWhite, state, reset)

	hint := " P proj  X wire  ? hud "
	fmt.Fprintf(h.out, "%s%s%s%s%s%s", moveTo(height, max(width-len(hint), 1)), bgBlack, dim, fgYellow, hint, reset)
}
