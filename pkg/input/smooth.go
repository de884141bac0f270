package input

import "github.com/charmbracelet/harmonica"

// CursorSmoother eases coarse cursor samples toward their target with a
// critically damped spring. Terminal mice report whole cells, so raw deltas
// arrive as jumps; the spring spreads each jump over a few frames while the
// total distance travelled stays the same.
type CursorSmoother struct {
	spring harmonica.Spring
	x, vx  float64
	y, vy  float64
	seen   bool
}

// NewCursorSmoother creates a smoother stepped once per frame at fps.
func NewCursorSmoother(fps int, frequency, damping float64) *CursorSmoother {
	return &CursorSmoother{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

// Update advances one frame toward (targetX, targetY) and returns the
// smoothed position. The first call after Reset snaps to the target.
func (s *CursorSmoother) Update(targetX, targetY float64) (x, y float64) {
	if !s.seen {
		s.x, s.y = targetX, targetY
		s.vx, s.vy = 0, 0
		s.seen = true
		return s.x, s.y
	}

	s.x, s.vx = s.spring.Update(s.x, s.vx, targetX)
	s.y, s.vy = s.spring.Update(s.y, s.vy, targetY)
	return s.x, s.y
}

// Reset drops the spring state.
func (s *CursorSmoother) Reset() {
	s.seen = false
}
