package camera

import (
	gomath "math"
	"testing"
	"time"

	"github.com/Faultbox/founder-galaxy/pkg/math"
)

func approx(a, b float64) bool {
	return gomath.Abs(a-b) < 1e-6
}

func immediate() Options {
	opts := DefaultOptions()
	opts.Damping = 0
	return opts
}

func TestAutoRotateResume(t *testing.T) {
	c := NewOrbitCamera(immediate())
	if c.Mode() != AutoRotating {
		t.Fatalf("initial mode = %v, want auto-rotating", c.Mode())
	}

	t0 := time.Unix(100, 0)
	c.HandleDrag(10, 0, t0)
	if c.Mode() != Interacting {
		t.Fatalf("mode after drag = %v", c.Mode())
	}

	tests := []struct {
		after time.Duration
		want  RotateMode
	}{
		{time.Second, Interacting},
		{3 * time.Second, Interacting},
		{3*time.Second + time.Millisecond, AutoRotating},
	}
	for _, tt := range tests {
		c.Update(t0.Add(tt.after), 0)
		if c.Mode() != tt.want {
			t.Errorf("after %v: mode = %v, want %v", tt.after, c.Mode(), tt.want)
		}
	}
}

func TestAutoRotateOnlyWhileIdle(t *testing.T) {
	c := NewOrbitCamera(immediate())
	t0 := time.Unix(100, 0)

	start := c.Azimuth
	c.Update(t0, 1)
	want := math.WrapAngle(start - gomath.Pi/60)
	if !approx(c.Azimuth, want) {
		t.Errorf("Azimuth = %v, want %v", c.Azimuth, want)
	}

	c.BeginInteraction(t0)
	held := c.Azimuth
	c.Update(t0.Add(time.Second), 1)
	if c.Azimuth != held {
		t.Error("camera rotated while interacting")
	}
}

func TestZoomLimits(t *testing.T) {
	c := NewOrbitCamera(immediate())
	now := time.Unix(1, 0)

	c.HandleZoom(100, now)
	if c.Distance != 15 {
		t.Errorf("zoom in: Distance = %v, want 15", c.Distance)
	}
	c.HandleZoom(-100, now)
	if c.Distance != 50 {
		t.Errorf("zoom out: Distance = %v, want 50", c.Distance)
	}
}

func TestPolarLimits(t *testing.T) {
	c := NewOrbitCamera(immediate())
	now := time.Unix(1, 0)

	c.HandleDrag(0, 10000, now)
	if !approx(c.Polar, gomath.Pi/6) {
		t.Errorf("Polar = %v, want pi/6", c.Polar)
	}
	c.HandleDrag(0, -10000, now)
	if !approx(c.Polar, 5*gomath.Pi/6) {
		t.Errorf("Polar = %v, want 5pi/6", c.Polar)
	}
}

func TestDamping(t *testing.T) {
	opts := DefaultOptions()
	opts.Damping = 0.5
	opts.AutoRotate = false
	c := NewOrbitCamera(opts)
	now := time.Unix(1, 0)

	start := c.Azimuth
	c.HandleDrag(-100, 0, now)
	if c.Azimuth != start {
		t.Fatal("damped drag applied immediately")
	}
	c.Update(now, 0)
	if !approx(c.Azimuth, start+0.25) {
		t.Errorf("after one update Azimuth = %v, want %v", c.Azimuth, start+0.25)
	}
	c.Update(now, 0)
	if !approx(c.Azimuth, start+0.375) {
		t.Errorf("after two updates Azimuth = %v, want %v", c.Azimuth, start+0.375)
	}
}

func TestFocusOn(t *testing.T) {
	c := NewOrbitCamera(immediate())
	t0 := time.Unix(100, 0)

	c.FocusOn(math.Vec3{X: 10}, t0)
	c.Update(t0.Add(750*time.Millisecond), 0.016)
	mid := c.Position()
	if approx(mid.X, -30) {
		t.Error("focus finished too early")
	}

	c.Update(t0.Add(2*time.Second), 0.016)
	p := c.Position()
	if !approx(p.X, -30) || !approx(p.Y, 0) || !approx(p.Z, 0) {
		t.Errorf("Position() = %+v, want (-30, 0, 0)", p)
	}
	if c.Mode() != Interacting {
		t.Error("focus should pause auto-rotation")
	}
}

func TestFocusPosition(t *testing.T) {
	got := FocusPosition(math.Vec3{X: 0, Y: 3, Z: 4}, 30)
	want := math.Vec3{X: 0, Y: -18, Z: -24}
	if !approx(got.X, want.X) || !approx(got.Y, want.Y) || !approx(got.Z, want.Z) {
		t.Errorf("FocusPosition() = %+v, want %+v", got, want)
	}
}

func TestPlanetScale(t *testing.T) {
	tests := []struct {
		base, distance, max, want float64
	}{
		{2, 0, 10, 2},
		{2, 5, 10, 1.5},
		{2, 10, 10, 1},
		{2, 20, 10, 1},
	}
	for _, tt := range tests {
		if got := PlanetScale(tt.base, tt.distance, tt.max); !approx(got, tt.want) {
			t.Errorf("PlanetScale(%v, %v, %v) = %v, want %v", tt.base, tt.distance, tt.max, got, tt.want)
		}
	}
}
