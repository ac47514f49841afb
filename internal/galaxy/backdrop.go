package galaxy

import (
	gomath "math"
	"math/rand/v2"

	"github.com/Faultbox/founder-galaxy/pkg/math"
)

const (
	shellPoints = 2000
	dustPoints  = 300
	gasPoints   = 150
)

// Backdrop is the far background drawn behind the galaxy: a parallax
// shell of faint stars plus thin dust and gas disks.
type Backdrop struct {
	Shell []math.Vec3 `json:"shell"`
	Dust  []math.Vec3 `json:"dust"`
	Gas   []math.Vec3 `json:"gas"`
}

// GenerateBackdrop builds the backdrop for a galaxy of the given radius.
// density scales every point count.
func GenerateBackdrop(rng *rand.Rand, radius, density float64) Backdrop {
	if density < 0 {
		density = 0
	}
	scaled := func(n int) int { return int(float64(n) * density) }

	b := Backdrop{
		Shell: make([]math.Vec3, scaled(shellPoints)),
		Dust:  make([]math.Vec3, scaled(dustPoints)),
		Gas:   make([]math.Vec3, scaled(gasPoints)),
	}
	for i := range b.Shell {
		b.Shell[i] = sphereSurface(rng, radius*1.5)
	}
	for i := range b.Dust {
		b.Dust[i] = flatDisk(rng, radius*(0.7+rng.Float64()*0.3), 0.1)
	}
	for i := range b.Gas {
		b.Gas[i] = flatDisk(rng, radius*(0.8+rng.Float64()*0.2), 0.05)
	}
	return b
}

func sphereSurface(rng *rand.Rand, r float64) math.Vec3 {
	theta := rng.Float64() * math.TwoPi
	phi := gomath.Acos(2*rng.Float64() - 1)
	return math.Spherical(r, theta, phi)
}

func flatDisk(rng *rand.Rand, r, flatten float64) math.Vec3 {
	p := sphereSurface(rng, r)
	p.Y *= flatten
	return p
}
