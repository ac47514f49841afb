// Package galaxy generates the procedural star field: spiral-arm stars,
// asteroids in the exclusion zones, layered nebulae and the distant backdrop.
package galaxy

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/founder-galaxy/pkg/math"
)

// Color is a linear RGB triple in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// Scale multiplies every channel by f.
func (c Color) Scale(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f}
}

func fromColorful(c colorful.Color) Color {
	return Color{c.R, c.G, c.B}
}

// CelestialPoint is one renderable point: a star or a nebula particle.
type CelestialPoint struct {
	Position math.Vec3 `json:"position"`
	Color    Color     `json:"color"`
	Size     float64   `json:"size"`
}

// GeometryVariant selects the low-poly mesh an asteroid is drawn with.
type GeometryVariant int

const (
	Dodecahedron GeometryVariant = iota
	Icosahedron
	Octahedron
	Tetrahedron
	geometryVariants
)

var geometryNames = [...]string{"dodecahedron", "icosahedron", "octahedron", "tetrahedron"}

func (g GeometryVariant) String() string {
	if g < 0 || g >= geometryVariants {
		return fmt.Sprintf("geometry(%d)", int(g))
	}
	return geometryNames[g]
}

// MarshalText implements encoding.TextMarshaler.
func (g GeometryVariant) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// AsteroidOrigin records which exclusion rule turned a candidate into an
// asteroid.
type AsteroidOrigin int

const (
	// OriginNearPOI means the candidate fell inside a registry exclusion zone.
	OriginNearPOI AsteroidOrigin = iota
	// OriginCoreBelt means the candidate fell inside the central core.
	OriginCoreBelt
)

func (o AsteroidOrigin) String() string {
	switch o {
	case OriginNearPOI:
		return "near-poi"
	case OriginCoreBelt:
		return "core-belt"
	default:
		return fmt.Sprintf("origin(%d)", int(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o AsteroidOrigin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// AsteroidBody holds the initial conditions of one asteroid. Orientation is
// the value at generation time; a Spinner integrates it per frame.
type AsteroidBody struct {
	Position        math.Vec3       `json:"position"`
	Scale           float64         `json:"scale"`
	Color           Color           `json:"color"`
	Orientation     math.Vec3       `json:"orientation"`
	AngularVelocity math.Vec3       `json:"angularVelocity"`
	Roughness       float64         `json:"roughness"`
	Metalness       float64         `json:"metalness"`
	Geometry        GeometryVariant `json:"geometry"`
	Origin          AsteroidOrigin  `json:"origin"`
}

// Report describes how a generation run went. Exhausted is set when the
// attempt budget ran out before the requested star count was reached.
type Report struct {
	Requested   int  `json:"requested"`
	Attempts    int  `json:"attempts"`
	MaxAttempts int  `json:"maxAttempts"`
	Stars       int  `json:"stars"`
	Asteroids   int  `json:"asteroids"`
	NearPOI     int  `json:"nearPoi"`
	CoreBelt    int  `json:"coreBelt"`
	Exhausted   bool `json:"exhausted"`
}

// Population is the output of one star generation run.
type Population struct {
	Stars     []CelestialPoint `json:"stars"`
	Asteroids []AsteroidBody   `json:"asteroids"`
	Report    Report           `json:"report"`
}
