// Package camera implements a first-person fly camera driven by keyboard
// movement, mouse look and scroll input.
//
// Angles are kept in degrees. The view basis (front, right, up) is derived from
// yaw and pitch against a fixed world-up vector and is rebuilt whenever either
// angle changes.
package camera

import (
	"math"

	"github.com/taigrr/mechyard/pkg/math3d"
)

// Direction is a discrete movement command.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

var directionNames = [...]string{"forward", "backward", "left", "right", "up", "down"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// Directions lists every movement command in declaration order.
func Directions() []Direction {
	return []Direction{Forward, Backward, Left, Right, Up, Down}
}

// ScrollTarget selects which scalar the scroll wheel adjusts.
type ScrollTarget int

const (
	ScrollSpeed ScrollTarget = iota // Scroll changes movement speed
	ScrollZoom                      // Scroll changes the field of view
)

func (s ScrollTarget) String() string {
	if s == ScrollZoom {
		return "zoom"
	}
	return "speed"
}

// Range is a closed interval with a fixed adjustment step.
type Range struct {
	Min, Max float64
	Step     float64
}

func (r Range) clamp(v float64) float64 {
	return math3d.Clamp(v, r.Min, r.Max)
}

// Camera holds the fly camera state.
type Camera struct {
	position math3d.Vec3
	yaw      float64
	pitch    float64

	front   math3d.Vec3
	right   math3d.Vec3
	up      math3d.Vec3
	worldUp math3d.Vec3

	speed       float64
	speedRange  Range
	sensitivity float64
	zoom        float64
	zoomRange   Range
	pitchLimit  float64
	scroll      ScrollTarget
}

// New creates a camera at position with the given options applied over the
// defaults (yaw -90, pitch 0, speed 2.5 in [0.5, 7.5], sensitivity 0.1,
// zoom 45 in [1, 45], pitch limit 89).
func New(position math3d.Vec3, options ...Option) *Camera {
	c := &Camera{
		position:    position,
		yaw:         -90,
		worldUp:     math3d.Up(),
		speed:       2.5,
		speedRange:  Range{Min: 0.5, Max: 7.5, Step: 0.5},
		sensitivity: 0.1,
		zoom:        45,
		zoomRange:   Range{Min: 1, Max: 45, Step: 1},
		pitchLimit:  89,
		scroll:      ScrollSpeed,
	}

	for _, option := range options {
		option(c)
	}

	c.speed = c.speedRange.clamp(c.speed)
	c.zoom = c.zoomRange.clamp(c.zoom)
	c.pitch = math3d.Clamp(c.pitch, -c.pitchLimit, c.pitchLimit)
	c.updateVectors()
	return c
}

// ProcessMovement moves the camera along the basis vector for dir by
// speed*deltaTime. Only the position changes.
func (c *Camera) ProcessMovement(dir Direction, deltaTime float64) {
	velocity := c.speed * deltaTime

	switch dir {
	case Forward:
		c.position = c.position.Add(c.front.Scale(velocity))
	case Backward:
		c.position = c.position.Sub(c.front.Scale(velocity))
	case Left:
		c.position = c.position.Sub(c.right.Scale(velocity))
	case Right:
		c.position = c.position.Add(c.right.Scale(velocity))
	case Up:
		c.position = c.position.Add(c.worldUp.Scale(velocity))
	case Down:
		c.position = c.position.Sub(c.worldUp.Scale(velocity))
	}
}

// ProcessMouseMovement turns the camera. yOffset must already be inverted so
// that positive values look up. With constrainPitch the pitch is held within
// the configured limit.
func (c *Camera) ProcessMouseMovement(xOffset, yOffset float64, constrainPitch bool) {
	c.yaw += xOffset * c.sensitivity
	c.pitch += yOffset * c.sensitivity

	if constrainPitch {
		c.pitch = math3d.Clamp(c.pitch, -c.pitchLimit, c.pitchLimit)
	}

	c.updateVectors()
}

// ProcessScroll adjusts the scroll target by one step per unit of yOffset,
// saturating at its bounds. Scrolling up speeds the camera up or narrows the
// field of view.
func (c *Camera) ProcessScroll(yOffset float64) {
	switch c.scroll {
	case ScrollZoom:
		c.zoom = c.zoomRange.clamp(c.zoom - c.zoomRange.Step*yOffset)
	default:
		c.speed = c.speedRange.clamp(c.speed + c.speedRange.Step*yOffset)
	}
}

// ViewMatrix returns the right-handed look-at transform for the current state.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.position, c.position.Add(c.front), c.up)
}

// Zoom returns the vertical field of view in degrees.
func (c *Camera) Zoom() float64 { return c.zoom }

// Position returns the camera position in world space.
func (c *Camera) Position() math3d.Vec3 { return c.position }

// Yaw returns the yaw angle in degrees.
func (c *Camera) Yaw() float64 { return c.yaw }

// Pitch returns the pitch angle in degrees.
func (c *Camera) Pitch() float64 { return c.pitch }

// Front returns the unit look direction.
func (c *Camera) Front() math3d.Vec3 { return c.front }

// Right returns the unit right vector.
func (c *Camera) Right() math3d.Vec3 { return c.right }

// Up returns the unit camera up vector.
func (c *Camera) Up() math3d.Vec3 { return c.up }

// MovementSpeed returns the current movement speed in units per second.
func (c *Camera) MovementSpeed() float64 { return c.speed }

// ScrollTarget reports what scrolling adjusts.
func (c *Camera) ScrollTarget() ScrollTarget { return c.scroll }

// Retune applies new tuning to a live camera without moving or turning it.
// Speed and zoom are re-clamped into the new ranges.
func (c *Camera) Retune(options ...Option) {
	position, yaw, pitch := c.position, c.yaw, c.pitch
	speed, zoom := c.speed, c.zoom

	for _, option := range options {
		option(c)
	}

	c.position, c.yaw = position, yaw
	c.pitch = math3d.Clamp(pitch, -c.pitchLimit, c.pitchLimit)
	c.speed = c.speedRange.clamp(speed)
	c.zoom = c.zoomRange.clamp(zoom)
	c.updateVectors()
}

func (c *Camera) updateVectors() {
	yaw := math3d.Radians(c.yaw)
	pitch := math3d.Radians(c.pitch)

	c.front = math3d.V3(
		math.Cos(yaw)*math.Cos(pitch),
		math.Sin(pitch),
		math.Sin(yaw)*math.Cos(pitch),
	).Normalize()

	// Re-derive right and up so the basis stays orthonormal.
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
