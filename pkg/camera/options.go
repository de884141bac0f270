package camera

// Option configures a Camera.
type Option func(*Camera)

// WithYaw sets the initial yaw in degrees. -90 faces down -Z.
func WithYaw(yaw float64) Option {
	return func(c *Camera) {
		c.yaw = yaw
	}
}

// WithPitch sets the initial pitch in degrees.
func WithPitch(pitch float64) Option {
	return func(c *Camera) {
		c.pitch = pitch
	}
}

// WithSpeed sets the initial movement speed.
func WithSpeed(speed float64) Option {
	return func(c *Camera) {
		c.speed = speed
	}
}

// WithSpeedRange sets the movement speed bounds and scroll step.
func WithSpeedRange(r Range) Option {
	return func(c *Camera) {
		c.speedRange = r
	}
}

// WithSensitivity sets the degrees turned per unit of mouse offset.
func WithSensitivity(sensitivity float64) Option {
	return func(c *Camera) {
		c.sensitivity = sensitivity
	}
}

// WithZoom sets the initial vertical field of view in degrees.
func WithZoom(zoom float64) Option {
	return func(c *Camera) {
		c.zoom = zoom
	}
}

// WithZoomRange sets the field of view bounds and scroll step.
func WithZoomRange(r Range) Option {
	return func(c *Camera) {
		c.zoomRange = r
	}
}

// WithPitchLimit sets the absolute pitch bound used when pitch is
// constrained. Values at or above 90 are pulled back to 89.
func WithPitchLimit(limit float64) Option {
	return func(c *Camera) {
		if limit >= 90 || limit <= 0 {
			limit = 89
		}
		c.pitchLimit = limit
	}
}

// WithScrollTarget selects whether scrolling adjusts speed or zoom.
func WithScrollTarget(target ScrollTarget) Option {
	return func(c *Camera) {
		c.scroll = target
	}
}
