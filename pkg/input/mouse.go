// Package input turns raw device samples into the signals the frame driver
// consumes: cursor deltas, edge-triggered toggles and held keys.
package input

// MouseTracker converts absolute cursor samples into deltas. The first sample
// after creation or Reset only sets the reference point, which keeps the
// camera from snapping when the cursor first appears or focus returns.
type MouseTracker struct {
	lastX, lastY float64
	seen         bool
}

// Sample records the cursor at (x, y) and returns the offset from the previous
// sample. ok is false for the reference sample.
func (m *MouseTracker) Sample(x, y float64) (dx, dy float64, ok bool) {
	if !m.seen {
		m.lastX, m.lastY = x, y
		m.seen = true
		return 0, 0, false
	}

	dx, dy = x-m.lastX, y-m.lastY
	m.lastX, m.lastY = x, y
	return dx, dy, true
}

// Reset forgets the reference point.
func (m *MouseTracker) Reset() {
	m.seen = false
}

// Seen reports whether a reference point is held.
func (m *MouseTracker) Seen() bool {
	return m.seen
}
