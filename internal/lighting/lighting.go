// Package lighting computes the mouse-following light and simple shading
// terms for planets.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/founder-galaxy/pkg/math"
)

const (
	pointerReach     = 15
	pointerDepth     = 8
	hoverIntensity   = 1.2
	idleIntensity    = 0.6
	pulseAmplitude   = 0.3
	pulseFrequency   = 3
	ambientIntensity = 0.15
)

// PointLight is a colored light at a world position.
type PointLight struct {
	Position  math.Vec3 `json:"position"`
	Intensity float64   `json:"intensity"`
}

// PointerLight returns the light that follows the pointer. It brightens
// while a planet is hovered and pulses with time t in seconds.
func PointerLight(pointer math.Vec2, hovering bool, t float64) PointLight {
	base := idleIntensity
	if hovering {
		base = hoverIntensity
	}
	return PointLight{
		Position: math.Vec3{
			X: pointer.X * pointerReach,
			Y: pointer.Y * pointerReach,
			Z: pointerDepth,
		},
		Intensity: base + pulseAmplitude*gomath.Sin(pulseFrequency*t),
	}
}

// SunDirection converts longitude/latitude in degrees to a unit vector
// pointing toward a directional key light. Longitude rotates around Y,
// latitude is elevation from the horizon.
func SunDirection(longitude, latitude float64) math.Vec3 {
	lonRad := longitude * gomath.Pi / 180
	latRad := latitude * gomath.Pi / 180
	return math.Vec3{
		X: gomath.Cos(latRad) * gomath.Sin(lonRad),
		Y: gomath.Sin(latRad),
		Z: gomath.Cos(latRad) * gomath.Cos(lonRad),
	}
}

// Lambert returns the diffuse term for a surface normal lit from toLight.
// Both vectors are normalized here.
func Lambert(normal, toLight math.Vec3) float64 {
	d := normal.Normalize().Dot(toLight.Normalize())
	if d < 0 {
		return 0
	}
	return d
}

// Shade returns the brightness in [0, 1] of a surface point lit by the
// ambient term, a key light and, when present, the pointer light.
func Shade(point, normal, key math.Vec3, pointer *PointLight) float64 {
	v := ambientIntensity + (1-ambientIntensity)*Lambert(normal, key)
	if pointer != nil {
		toLight := pointer.Position.Sub(point)
		falloff := 1 / (1 + 0.01*toLight.LengthSq())
		v += pointer.Intensity * Lambert(normal, toLight) * falloff
	}
	return math.Clamp(v, 0, 1)
}
