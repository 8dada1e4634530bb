// Package anim interpolates segment values over time. It sits outside the
// geometry engine: callers feed each frame's values to engine.Compute.
package anim

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	FPS = 60

	// Spring parameters of the drill-down in the journey screen, in the
	// origami tension/friction scale used by mobile animation toolkits
	DefaultTension  = 40.0
	DefaultFriction = 7.0

	restDisplacement = 0.001
	restSpeed        = 0.001

	// maxFrames stops a spring that would otherwise never settle (10s)
	maxFrames = FPS * 10
)

// Spring moves a single value toward a target with damped oscillation
type Spring struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
	frames int
}

// NewSpring converts origami tension/friction into the stiffness k and
// damping c of a unit-mass spring, then into harmonica's angular frequency
// and damping ratio: w = sqrt(k), zeta = c / (2*sqrt(k)).
func NewSpring(fps int, tension, friction float64) *Spring {
	stiffness := StiffnessFromTension(tension)
	angular := math.Sqrt(stiffness)
	damping := DampingFromFriction(friction) / (2 * angular)
	return &Spring{spring: harmonica.NewSpring(harmonica.FPS(fps), angular, damping)}
}

// StiffnessFromTension maps origami tension onto spring stiffness
func StiffnessFromTension(tension float64) float64 {
	return (tension-30)*3.62 + 194
}

// DampingFromFriction maps origami friction onto spring damping
func DampingFromFriction(friction float64) float64 {
	return (friction-8)*3 + 25
}

// DefaultSpring returns the 60 fps spring used by the drill-down
func DefaultSpring() *Spring {
	return NewSpring(FPS, DefaultTension, DefaultFriction)
}

// Reset places the spring at rest on pos and aims it at target
func (s *Spring) Reset(pos, target float64) {
	s.pos = pos
	s.vel = 0
	s.target = target
	s.frames = 0
}

// Step advances one frame and returns the new position
func (s *Spring) Step() float64 {
	if s.Settled() {
		return s.pos
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	s.frames++
	if s.Settled() {
		s.pos = s.target
		s.vel = 0
	}
	return s.pos
}

// Position returns the current position
func (s *Spring) Position() float64 {
	return s.pos
}

// Settled reports whether the spring has come to rest on its target
func (s *Spring) Settled() bool {
	if s.frames >= maxFrames {
		return true
	}
	return math.Abs(s.pos-s.target) < restDisplacement && math.Abs(s.vel) < restSpeed
}
