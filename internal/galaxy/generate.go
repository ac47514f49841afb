package galaxy

import (
	"fmt"
	gomath "math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/founder-galaxy/internal/registry"
	"github.com/Faultbox/founder-galaxy/pkg/math"
)

// rockPalette holds the asteroid surface colors.
var rockPalette = mustPalette(
	"#4a4a4a", "#3d3d3d", "#5a5248", "#6b5b3a", "#4a3d32",
	"#2d2d2d", "#3a3530", "#4f453b", "#5c5442", "#3f2f25",
	"#6a6a6a", "#5d5d5d", "#6f5f4f", "#7a6a5a", "#524238",
)

func mustPalette(hexes ...string) []Color {
	out := make([]Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(fmt.Sprintf("galaxy: bad palette color %q: %v", h, err))
		}
		out[i] = fromColorful(c)
	}
	return out
}

// NewRand returns the deterministic source used for a given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate places up to count stars in the spiral volume. Candidates that
// land inside a registry exclusion zone or the core become asteroids
// instead. At most 2*count candidates are drawn, so fewer stars than
// requested is possible and flagged in the report.
func Generate(rng *rand.Rand, count int, radius float64, reg *registry.Registry, params VolumeParams) (Population, error) {
	if count < 0 {
		return Population{}, fmt.Errorf("%w, got %d", ErrInvalidCount, count)
	}
	if radius <= 0 || gomath.IsNaN(radius) || gomath.IsInf(radius, 0) {
		return Population{}, fmt.Errorf("%w, got %v", ErrInvalidRadius, radius)
	}
	if err := params.Validate(); err != nil {
		return Population{}, err
	}

	maxAttempts := count * 2
	pop := Population{
		Stars:     make([]CelestialPoint, 0, count),
		Asteroids: []AsteroidBody{},
		Report:    Report{Requested: count, MaxAttempts: maxAttempts},
	}

	for pop.Report.Attempts < maxAttempts && len(pop.Stars) < count {
		pop.Report.Attempts++
		pos := spiralCandidate(rng, radius, params)

		if origin, excluded := classify(pos, reg, params.CoreRadius); excluded {
			pop.Asteroids = append(pop.Asteroids, newAsteroid(rng, pos, origin))
			if origin == OriginNearPOI {
				pop.Report.NearPOI++
			} else {
				pop.Report.CoreBelt++
			}
			continue
		}

		pop.Stars = append(pop.Stars, newStar(rng, pos))
	}

	pop.Report.Stars = len(pop.Stars)
	pop.Report.Asteroids = len(pop.Asteroids)
	pop.Report.Exhausted = len(pop.Stars) < count
	return pop, nil
}

// spiralCandidate draws one position on a logarithmic-ish spiral arm.
func spiralCandidate(rng *rand.Rand, radius float64, p VolumeParams) math.Vec3 {
	arm := rng.IntN(p.ArmCount)
	armOffset := float64(arm) * math.TwoPi / float64(p.ArmCount)

	distance := gomath.Pow(rng.Float64(), p.RadialBias) * radius * p.RadialExtent
	angle := armOffset + distance*p.Tightness

	x := distance * gomath.Cos(angle)
	z := distance * gomath.Sin(angle)

	fuzz := p.jitter(distance)
	x += (rng.Float64() - 0.5) * fuzz
	z += (rng.Float64() - 0.5) * fuzz
	y := (rng.Float64() - 0.5) * radius * p.Flatten

	return math.Vec3{X: x, Y: y, Z: z}
}

// classify reports whether pos is excluded and why. A registry zone wins
// over the core when both contain the point.
func classify(pos math.Vec3, reg *registry.Registry, coreRadius float64) (AsteroidOrigin, bool) {
	if reg.Excludes(pos) {
		return OriginNearPOI, true
	}
	if pos.Length() < coreRadius {
		return OriginCoreBelt, true
	}
	return 0, false
}

func newAsteroid(rng *rand.Rand, pos math.Vec3, origin AsteroidOrigin) AsteroidBody {
	return AsteroidBody{
		Position: pos,
		Scale:    0.03 + rng.Float64()*0.2,
		Color:    rockPalette[rng.IntN(len(rockPalette))],
		Geometry: GeometryVariant(rng.IntN(int(geometryVariants))),
		Orientation: math.Vec3{
			X: rng.Float64() * math.TwoPi,
			Y: rng.Float64() * math.TwoPi,
			Z: rng.Float64() * math.TwoPi,
		},
		AngularVelocity: math.Vec3{
			X: (rng.Float64() - 0.5) * 0.02,
			Y: (rng.Float64() - 0.5) * 0.015,
			Z: (rng.Float64() - 0.5) * 0.01,
		},
		Roughness: 0.8 + rng.Float64()*0.2,
		Metalness: rng.Float64() * 0.15,
		Origin:    origin,
	}
}

func newStar(rng *rand.Rand, pos math.Vec3) CelestialPoint {
	return CelestialPoint{
		Position: pos,
		Color:    starColor(rng),
		Size:     rng.Float64()*3 + 1,
	}
}

// starColor picks a blue-white (15%), warm (15%) or white (70%) star.
func starColor(rng *rand.Rand) Color {
	switch v := rng.Float64(); {
	case v < 0.15:
		return Color{0.635 + rng.Float64()*0.1, 0.784 + rng.Float64()*0.1, 1.0}
	case v < 0.3:
		return Color{1.0, 0.957 + rng.Float64()*0.04, 0.847 + rng.Float64()*0.1}
	default:
		return Color{0.941 + rng.Float64()*0.059, 0.965 + rng.Float64()*0.035, 1.0}
	}
}
