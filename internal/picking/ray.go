// Package picking provides ray casting against the planets of the registry.
package picking

import (
	gomath "math"

	"github.com/Faultbox/founder-galaxy/internal/registry"
	"github.com/Faultbox/founder-galaxy/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// FromNDC unprojects normalized device coordinates into a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func FromNDC(ndc math.Vec2, invViewProj math.Mat4) Ray {
	nearWorld := unproject(invViewProj, math.Vec4{ndc.X, ndc.Y, -1, 1})
	farWorld := unproject(invViewProj, math.Vec4{ndc.X, ndc.Y, 1, 1})
	return Ray{
		Origin:    nearWorld,
		Direction: farWorld.Sub(nearWorld).Normalize(),
	}
}

// ScreenToRay converts pixel coordinates to a world-space ray.
func ScreenToRay(screenX, screenY, viewportW, viewportH float64, invViewProj math.Mat4) Ray {
	return FromNDC(math.ScreenToNDC(screenX, screenY, viewportW, viewportH), invViewProj)
}

func unproject(m math.Mat4, p math.Vec4) math.Vec3 {
	w := m.MulVec4(p)
	if w[3] != 0 {
		w[0] /= w[3]
		w[1] /= w[3]
		w[2] /= w[3]
	}
	return math.Vec3{X: w[0], Y: w[1], Z: w[2]}
}

// IntersectSphere returns the distance to the first intersection with a
// sphere. If the ray starts inside the sphere, the exit distance is
// returned.
func (r Ray) IntersectSphere(center math.Vec3, radius float64) (t float64, hit bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.LengthSq() - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := gomath.Sqrt(disc)
	t0, t1 := -b-sq, -b+sq
	switch {
	case t0 >= 0:
		return t0, true
	case t1 >= 0:
		return t1, true
	default:
		return 0, false
	}
}

// Hit is a planet struck by a ray.
type Hit struct {
	POI      registry.PointOfInterest
	Distance float64
}

// PickPlanet returns the nearest planet hit by the ray. Each planet is a
// sphere of radius Scale around its position.
func PickPlanet(r Ray, reg *registry.Registry) (Hit, bool) {
	return PickPlanetFunc(r, reg, func(poi registry.PointOfInterest) float64 {
		return poi.Scale
	})
}

// PickPlanetFunc is PickPlanet with the sphere radius of each planet given
// by radius.
func PickPlanetFunc(r Ray, reg *registry.Registry, radius func(registry.PointOfInterest) float64) (Hit, bool) {
	var (
		best  Hit
		found bool
	)
	for _, poi := range reg.All() {
		t, ok := r.IntersectSphere(poi.Position, radius(poi))
		if !ok {
			continue
		}
		if !found || t < best.Distance {
			best = Hit{POI: poi, Distance: t}
			found = true
		}
	}
	return best, found
}
