package galaxy

import (
	gomath "math"
	"math/rand/v2"

	"github.com/Faultbox/founder-galaxy/internal/registry"
	"github.com/Faultbox/founder-galaxy/pkg/math"
)

const (
	nebulaLayers         = 4
	nebulaBaseParticles  = 800
	nebulaLayerFalloff   = 150
	nebulaLayerSpread    = 15
	nebulaBaseOpacity    = 0.4
	nebulaOpacityFalloff = 0.08
	// nebulaResample bounds how often an excluded particle is redrawn
	// before it is dropped.
	nebulaResample = 8
)

// NebulaRegion is a named cloud center.
type NebulaRegion struct {
	Name         string    `json:"name"`
	Center       math.Vec3 `json:"center"`
	BaseColor    Color     `json:"baseColor"`
	ExtentRadius float64   `json:"extentRadius"`
}

// DefaultNebulaRegions returns the three stock clouds behind the core.
func DefaultNebulaRegions() []NebulaRegion {
	return []NebulaRegion{
		{Name: "purple", Center: math.Vec3{X: -40, Y: 0, Z: -80}, BaseColor: Color{0.4, 0.2, 0.6}, ExtentRadius: 40},
		{Name: "teal", Center: math.Vec3{X: 60, Y: -15, Z: -100}, BaseColor: Color{0.1, 0.4, 0.5}, ExtentRadius: 35},
		{Name: "deep-purple", Center: math.Vec3{X: 25, Y: 20, Z: -120}, BaseColor: Color{0.3, 0.15, 0.45}, ExtentRadius: 45},
	}
}

// NebulaLayer is one translucent shell of a cloud. Outer layers are larger,
// sparser and fainter.
type NebulaLayer struct {
	Index            int              `json:"index"`
	Opacity          float64          `json:"opacity"`
	RadiusMultiplier float64          `json:"radiusMultiplier"`
	Particles        []CelestialPoint `json:"particles"`
	Dropped          int              `json:"dropped,omitempty"`
}

// NebulaCluster is a region with its generated layers.
type NebulaCluster struct {
	Region NebulaRegion  `json:"region"`
	Layers []NebulaLayer `json:"layers"`
}

// GenerateNebulae fills each region with layered particles. density scales
// the per-layer particle count. Particles are kept out of registry exclusion
// zones and the core; a particle that keeps landing there is dropped.
func GenerateNebulae(rng *rand.Rand, regions []NebulaRegion, density float64, reg *registry.Registry, coreRadius float64) []NebulaCluster {
	if density < 0 {
		density = 0
	}
	clusters := make([]NebulaCluster, 0, len(regions))
	for _, region := range regions {
		cluster := NebulaCluster{Region: region, Layers: make([]NebulaLayer, 0, nebulaLayers)}
		for layer := 0; layer < nebulaLayers; layer++ {
			cluster.Layers = append(cluster.Layers, nebulaLayer(rng, region, layer, density, reg, coreRadius))
		}
		clusters = append(clusters, cluster)
	}
	return clusters
}

func nebulaLayer(rng *rand.Rand, region NebulaRegion, layer int, density float64, reg *registry.Registry, coreRadius float64) NebulaLayer {
	count := int(float64(nebulaBaseParticles-nebulaLayerFalloff*layer) * density)
	layerRadius := region.ExtentRadius + nebulaLayerSpread*float64(layer)

	out := NebulaLayer{
		Index:     layer,
		Opacity:   nebulaBaseOpacity - nebulaOpacityFalloff*float64(layer),
		Particles: make([]CelestialPoint, 0, count),
	}
	if region.ExtentRadius > 0 {
		out.RadiusMultiplier = layerRadius / region.ExtentRadius
	}

	for i := 0; i < count; i++ {
		var (
			offset math.Vec3
			r      float64
			ok     bool
		)
		for try := 0; try < nebulaResample; try++ {
			offset, r = nebulaOffset(rng, layerRadius)
			if _, excluded := classify(region.Center.Add(offset), reg, coreRadius); !excluded {
				ok = true
				break
			}
		}
		if !ok {
			out.Dropped++
			continue
		}

		variation := 0.7 + rng.Float64()*0.3
		falloff := 1.5
		if layerRadius > 0 {
			falloff -= r / layerRadius
		}
		size := (8 + rng.Float64()*15) * falloff * (1 + float64(layer)*0.5)

		out.Particles = append(out.Particles, CelestialPoint{
			Position: region.Center.Add(offset),
			Color:    region.BaseColor.Scale(variation),
			Size:     size,
		})
	}
	return out
}

// nebulaOffset samples a point in a flattened sphere, denser toward the
// middle. It returns the offset and the unflattened radius.
func nebulaOffset(rng *rand.Rand, layerRadius float64) (math.Vec3, float64) {
	theta := rng.Float64() * math.TwoPi
	phi := gomath.Acos(2*rng.Float64() - 1)
	r := gomath.Pow(rng.Float64(), 0.6) * layerRadius

	offset := math.Spherical(r, theta, phi)
	offset.Y *= 0.3
	return offset, r
}
