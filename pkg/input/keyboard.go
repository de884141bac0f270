package input

import "time"

// DefaultHoldWindow covers the usual auto-repeat delay so a key stays held
// between its first press and the first repeat.
const DefaultHoldWindow = 550 * time.Millisecond

// Keyboard tracks which keys are held from press, repeat and release events.
//
// Legacy terminals never report releases, so a key counts as held while its
// last press or repeat is younger than the hold window. Once any release is
// seen the terminal is trusted and keys stay held until released.
type Keyboard struct {
	hold         time.Duration
	lastSeen     map[string]time.Time
	releasesSeen bool
}

// NewKeyboard creates a tracker with the given hold window. A non-positive
// window selects DefaultHoldWindow.
func NewKeyboard(hold time.Duration) *Keyboard {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &Keyboard{
		hold:     hold,
		lastSeen: make(map[string]time.Time),
	}
}

// Press records a press or auto-repeat of key.
func (k *Keyboard) Press(key string, now time.Time) {
	k.lastSeen[key] = now
}

// Release records that key went up.
func (k *Keyboard) Release(key string) {
	k.releasesSeen = true
	delete(k.lastSeen, key)
}

// Held reports whether key is down at now.
func (k *Keyboard) Held(key string, now time.Time) bool {
	at, ok := k.lastSeen[key]
	if !ok {
		return false
	}
	if k.releasesSeen {
		return true
	}
	return now.Sub(at) <= k.hold
}

// Reset drops all held keys, e.g. when the terminal loses focus.
func (k *Keyboard) Reset() {
	clear(k.lastSeen)
}
