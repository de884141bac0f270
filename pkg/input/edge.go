package input

// EdgeTrigger fires once per released-to-pressed transition, no matter how
// many frames the key stays down.
type EdgeTrigger struct {
	down bool
}

// Update feeds the current key state and reports whether it just went down.
func (e *EdgeTrigger) Update(down bool) bool {
	fired := down && !e.down
	e.down = down
	return fired
}
