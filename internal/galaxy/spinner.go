package galaxy

import (
	"slices"

	"github.com/Faultbox/founder-galaxy/pkg/math"
)

// Spinner integrates asteroid rotation per frame. The Field keeps the
// initial orientations; the Spinner owns the live copy.
type Spinner struct {
	orientation []math.Vec3
	velocity    []math.Vec3
}

// NewSpinner seeds a Spinner from asteroid initial conditions.
func NewSpinner(asteroids []AsteroidBody) *Spinner {
	s := &Spinner{
		orientation: make([]math.Vec3, len(asteroids)),
		velocity:    make([]math.Vec3, len(asteroids)),
	}
	for i, a := range asteroids {
		s.orientation[i] = a.Orientation
		s.velocity[i] = a.AngularVelocity
	}
	return s
}

// Len returns the number of tracked bodies.
func (s *Spinner) Len() int {
	return len(s.orientation)
}

// Advance rotates every body by its angular velocity over dt seconds.
func (s *Spinner) Advance(dt float64) {
	for i := range s.orientation {
		o := s.orientation[i].Add(s.velocity[i].Scale(dt))
		s.orientation[i] = math.Vec3{
			X: math.WrapAngle(o.X),
			Y: math.WrapAngle(o.Y),
			Z: math.WrapAngle(o.Z),
		}
	}
}

// Orientation returns the current orientation of body i. ok is false when
// i is out of range, as with an index held across a regenerate.
func (s *Spinner) Orientation(i int) (o math.Vec3, ok bool) {
	if i < 0 || i >= len(s.orientation) {
		return math.Vec3{}, false
	}
	return s.orientation[i], true
}

// Orientations returns a copy of all current orientations.
func (s *Spinner) Orientations() []math.Vec3 {
	return slices.Clone(s.orientation)
}
