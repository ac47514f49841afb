// Package camera provides the orbit camera and its auto-rotate state.
package camera

import (
	gomath "math"
	"time"

	"github.com/Faultbox/founder-galaxy/pkg/math"
)

// RotateMode is the auto-rotate sub-state.
type RotateMode int

const (
	// Interacting means the user touched the camera recently.
	Interacting RotateMode = iota
	// AutoRotating means the camera is spinning on its own.
	AutoRotating
)

func (m RotateMode) String() string {
	if m == AutoRotating {
		return "auto-rotating"
	}
	return "interacting"
}

// DefaultFocusDistance is how far from the origin FocusOn places the camera.
const DefaultFocusDistance = 30

const focusDuration = 1500 * time.Millisecond

// Options configures an OrbitCamera.
type Options struct {
	Distance        float64
	MinDistance     float64
	MaxDistance     float64
	MinPolar        float64
	MaxPolar        float64
	AutoRotate      bool
	AutoRotateSpeed float64 // 1.0 is one turn per minute
	ResumeDelay     time.Duration
	DragSensitivity float64
	ZoomSensitivity float64
	// Damping is the share of pending drag applied per Update. Zero
	// applies drags immediately.
	Damping float64
}

// DefaultOptions returns the stock camera settings.
func DefaultOptions() Options {
	return Options{
		Distance:        30,
		MinDistance:     15,
		MaxDistance:     50,
		MinPolar:        gomath.Pi / 6,
		MaxPolar:        5 * gomath.Pi / 6,
		AutoRotate:      true,
		AutoRotateSpeed: 0.5,
		ResumeDelay:     3 * time.Second,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		Damping:         0.05,
	}
}

type focusMove struct {
	from, to math.Vec3
	start    time.Time
}

// OrbitCamera orbits the Target on a sphere. Polar is measured from +Y,
// Azimuth around Y.
type OrbitCamera struct {
	Target   math.Vec3
	Distance float64
	Polar    float64
	Azimuth  float64

	opts            Options
	mode            RotateMode
	lastInteraction time.Time
	pendingAzimuth  float64
	pendingPolar    float64
	focus           *focusMove
}

// NewOrbitCamera returns a camera looking at the origin from the front.
func NewOrbitCamera(opts Options) *OrbitCamera {
	c := &OrbitCamera{
		Distance: opts.Distance,
		Polar:    gomath.Pi / 2,
		Azimuth:  gomath.Pi / 2,
		opts:     opts,
		mode:     Interacting,
	}
	if opts.AutoRotate {
		c.mode = AutoRotating
	}
	c.clamp()
	return c
}

// Mode returns the auto-rotate sub-state.
func (c *OrbitCamera) Mode() RotateMode {
	return c.mode
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	return c.Target.Add(math.Spherical(c.Distance, c.Azimuth, c.Polar))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Target, up)
}

// BeginInteraction stops auto-rotation and stamps the interaction clock.
func (c *OrbitCamera) BeginInteraction(now time.Time) {
	c.mode = Interacting
	c.lastInteraction = now
}

// HandleDrag rotates the camera by a pointer drag in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float64, now time.Time) {
	c.BeginInteraction(now)
	c.focus = nil
	c.pendingAzimuth -= deltaX * c.opts.DragSensitivity
	c.pendingPolar -= deltaY * c.opts.DragSensitivity
	if c.opts.Damping <= 0 {
		c.applyPending(1)
	}
}

// HandleZoom moves the camera in or out by a wheel delta.
func (c *OrbitCamera) HandleZoom(delta float64, now time.Time) {
	c.BeginInteraction(now)
	c.Distance -= delta * c.Distance * c.opts.ZoomSensitivity
	c.clamp()
}

// FocusOn starts a smooth move to the viewpoint for a selected target: on
// the line through the origin and target, DefaultFocusDistance away on the
// opposite side.
func (c *OrbitCamera) FocusOn(target math.Vec3, now time.Time) {
	c.BeginInteraction(now)
	c.focus = &focusMove{
		from:  c.Position(),
		to:    FocusPosition(target, DefaultFocusDistance),
		start: now,
	}
}

// FocusPosition returns the viewpoint for target at the given distance.
func FocusPosition(target math.Vec3, distance float64) math.Vec3 {
	return target.Normalize().Scale(-distance)
}

// Update advances the camera by one frame of dt seconds.
func (c *OrbitCamera) Update(now time.Time, dt float64) {
	if c.focus != nil {
		c.lastInteraction = now
		t := math.Clamp(float64(now.Sub(c.focus.start))/float64(focusDuration), 0, 1)
		k := math.EaseInOutCubic(t)
		from, to := c.focus.from, c.focus.to
		c.setPosition(math.Vec3{
			X: math.Lerp(from.X, to.X, k),
			Y: math.Lerp(from.Y, to.Y, k),
			Z: math.Lerp(from.Z, to.Z, k),
		})
		if t >= 1 {
			c.focus = nil
		}
		return
	}

	if c.opts.Damping > 0 {
		c.applyPending(c.opts.Damping)
	}

	if c.mode == Interacting && c.opts.AutoRotate && now.Sub(c.lastInteraction) > c.opts.ResumeDelay {
		c.mode = AutoRotating
	}
	if c.mode == AutoRotating {
		c.Azimuth = math.WrapAngle(c.Azimuth - c.autoRotateRate()*dt)
	}
}

// autoRotateRate returns radians per second.
func (c *OrbitCamera) autoRotateRate() float64 {
	return math.TwoPi / 60 * c.opts.AutoRotateSpeed
}

func (c *OrbitCamera) applyPending(share float64) {
	c.Azimuth = math.WrapAngle(c.Azimuth + c.pendingAzimuth*share)
	c.Polar += c.pendingPolar * share
	c.pendingAzimuth -= c.pendingAzimuth * share
	c.pendingPolar -= c.pendingPolar * share
	c.clamp()
}

// setPosition moves the camera to p, keeping the target.
func (c *OrbitCamera) setPosition(p math.Vec3) {
	offset := p.Sub(c.Target)
	d := offset.Length()
	if d == 0 {
		return
	}
	c.Distance = d
	c.Polar = gomath.Acos(math.Clamp(offset.Y/d, -1, 1))
	c.Azimuth = math.WrapAngle(gomath.Atan2(offset.Z, offset.X))
	c.clamp()
}

func (c *OrbitCamera) clamp() {
	if c.opts.MaxDistance > 0 {
		c.Distance = math.Clamp(c.Distance, c.opts.MinDistance, c.opts.MaxDistance)
	}
	if c.opts.MaxPolar > 0 {
		c.Polar = math.Clamp(c.Polar, c.opts.MinPolar, c.opts.MaxPolar)
	}
}

// PlanetScale shrinks a planet's base scale toward half as it recedes
// toward maxDistance from the camera.
func PlanetScale(base, distance, maxDistance float64) float64 {
	n := 1.0
	if maxDistance > 0 {
		n = gomath.Min(distance/maxDistance, 1)
	}
	return base * (0.5 + 0.5*(1-n))
}
