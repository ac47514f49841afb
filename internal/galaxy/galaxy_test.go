package galaxy

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Faultbox/founder-galaxy/internal/quality"
	"github.com/Faultbox/founder-galaxy/internal/registry"
	"github.com/Faultbox/founder-galaxy/pkg/math"
)

func mustRegistry(t *testing.T, pois ...registry.PointOfInterest) *registry.Registry {
	t.Helper()
	r, err := registry.New(pois...)
	if err != nil {
		t.Fatalf("registry.New: %v", err)
	}
	return r
}

func TestGenerateExactCountWithEmptyRegistry(t *testing.T) {
	for _, count := range []int{100, 1000, 5000} {
		pop, err := Generate(NewRand(42), count, 400, registry.Empty(), DefaultVolume())
		if err != nil {
			t.Fatalf("Generate(%d): %v", count, err)
		}
		if len(pop.Stars) != count {
			t.Errorf("count %d: got %d stars", count, len(pop.Stars))
		}
		if pop.Report.Exhausted {
			t.Errorf("count %d: report marked exhausted", count)
		}
		if pop.Report.NearPOI != 0 {
			t.Errorf("count %d: %d near-POI asteroids with empty registry", count, pop.Report.NearPOI)
		}
		if pop.Report.Attempts != count+len(pop.Asteroids) {
			t.Errorf("count %d: attempts %d != stars+asteroids %d", count, pop.Report.Attempts, count+len(pop.Asteroids))
		}
	}
}

func TestGenerateRespectsExclusion(t *testing.T) {
	reg := registry.Default()
	params := DefaultVolume()
	pop, err := Generate(NewRand(7), 8000, 400, reg, params)
	if err != nil {
		t.Fatal(err)
	}

	for i, s := range pop.Stars {
		if reg.Excludes(s.Position) {
			t.Fatalf("star %d at %+v inside an exclusion zone", i, s.Position)
		}
		if s.Position.Length() < params.CoreRadius {
			t.Fatalf("star %d at %+v inside the core", i, s.Position)
		}
		if s.Size < 1 || s.Size >= 4 {
			t.Fatalf("star %d size %v outside [1, 4)", i, s.Size)
		}
	}

	for i, a := range pop.Asteroids {
		if a.Scale < 0.03 || a.Scale >= 0.23 {
			t.Fatalf("asteroid %d scale %v outside [0.03, 0.23)", i, a.Scale)
		}
		if a.Roughness < 0.8 || a.Roughness > 1 {
			t.Fatalf("asteroid %d roughness %v", i, a.Roughness)
		}
		if a.Metalness < 0 || a.Metalness > 0.15 {
			t.Fatalf("asteroid %d metalness %v", i, a.Metalness)
		}
		switch a.Origin {
		case OriginNearPOI:
			if !reg.Excludes(a.Position) {
				t.Fatalf("asteroid %d marked near-poi but outside every zone", i)
			}
		case OriginCoreBelt:
			if reg.Excludes(a.Position) {
				t.Fatalf("asteroid %d marked core-belt but inside a zone", i)
			}
			if a.Position.Length() >= params.CoreRadius {
				t.Fatalf("asteroid %d marked core-belt outside the core", i)
			}
		}
	}

	if pop.Report.NearPOI+pop.Report.CoreBelt != len(pop.Asteroids) {
		t.Errorf("origin counts %d+%d != %d asteroids", pop.Report.NearPOI, pop.Report.CoreBelt, len(pop.Asteroids))
	}
}

func TestGenerateFounderAtOrigin(t *testing.T) {
	reg := mustRegistry(t, registry.PointOfInterest{
		ID:              "f1",
		Position:        math.Vec3{},
		ExclusionRadius: 10,
		Scale:           1,
	})

	pop, err := Generate(NewRand(2024), 5000, 400, reg, DefaultVolume())
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range pop.Stars {
		if s.Position.Length() < 10 {
			t.Fatalf("star at distance %v from f1", s.Position.Length())
		}
	}
	if len(pop.Asteroids) == 0 {
		t.Error("expected at least one asteroid")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	reg := registry.Default()
	a, err := Generate(NewRand(99), 2000, 400, reg, DefaultVolume())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(NewRand(99), 2000, 400, reg, DefaultVolume())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different populations")
	}

	c, err := Generate(NewRand(100), 2000, 400, reg, DefaultVolume())
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(a.Stars, c.Stars) {
		t.Error("different seeds produced identical stars")
	}
}

func TestGenerateZeroCount(t *testing.T) {
	pop, err := Generate(NewRand(1), 0, 400, registry.Default(), DefaultVolume())
	if err != nil {
		t.Fatal(err)
	}
	if pop.Stars == nil || pop.Asteroids == nil {
		t.Error("zero count should return empty, non-nil slices")
	}
	if len(pop.Stars) != 0 || len(pop.Asteroids) != 0 {
		t.Errorf("got %d stars, %d asteroids", len(pop.Stars), len(pop.Asteroids))
	}
	if pop.Report.Exhausted {
		t.Error("zero count should not be exhausted")
	}
}

func TestGenerateInvalidInput(t *testing.T) {
	noArms := DefaultVolume()
	noArms.ArmCount = 0

	tests := []struct {
		name   string
		count  int
		radius float64
		params VolumeParams
		want   error
	}{
		{"negative count", -1, 400, DefaultVolume(), ErrInvalidCount},
		{"zero radius", 10, 0, DefaultVolume(), ErrInvalidRadius},
		{"negative radius", 10, -5, DefaultVolume(), ErrInvalidRadius},
		{"no arms", 10, 400, noArms, ErrInvalidArms},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(NewRand(1), tt.count, tt.radius, registry.Empty(), tt.params)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGenerateExhausted(t *testing.T) {
	reg := mustRegistry(t, registry.PointOfInterest{
		ID:              "everything",
		ExclusionRadius: 1e6,
		Scale:           1,
	})

	pop, err := Generate(NewRand(3), 50, 400, reg, DefaultVolume())
	if err != nil {
		t.Fatal(err)
	}
	if len(pop.Stars) != 0 {
		t.Errorf("got %d stars, want 0", len(pop.Stars))
	}
	if len(pop.Asteroids) != 100 {
		t.Errorf("got %d asteroids, want 100", len(pop.Asteroids))
	}
	if !pop.Report.Exhausted || pop.Report.Attempts != 100 {
		t.Errorf("report = %+v, want exhausted after 100 attempts", pop.Report)
	}
}

func TestGenerateNebulaeAvoidsZones(t *testing.T) {
	regions := DefaultNebulaRegions()
	reg := mustRegistry(t, registry.PointOfInterest{
		ID:              "cloud",
		Position:        regions[0].Center,
		ExclusionRadius: 20,
		Scale:           1,
	})

	clusters := GenerateNebulae(NewRand(5), regions, 1, reg, 25)
	if len(clusters) != 3 {
		t.Fatalf("got %d clusters, want 3", len(clusters))
	}

	for _, c := range clusters {
		if len(c.Layers) != 4 {
			t.Fatalf("%s: %d layers, want 4", c.Region.Name, len(c.Layers))
		}
		for i, layer := range c.Layers {
			want := 800 - 150*i
			if got := len(layer.Particles) + layer.Dropped; got != want {
				t.Errorf("%s layer %d: %d particles, want %d", c.Region.Name, i, got, want)
			}
			if wantOpacity := 0.4 - 0.08*float64(i); layer.Opacity != wantOpacity {
				t.Errorf("%s layer %d: opacity %v, want %v", c.Region.Name, i, layer.Opacity, wantOpacity)
			}
			for _, p := range layer.Particles {
				if reg.Excludes(p.Position) || p.Position.Length() < 25 {
					t.Fatalf("%s layer %d: particle at %+v inside an exclusion zone", c.Region.Name, i, p.Position)
				}
			}
		}
	}
}

func TestGenerateNebulaeDensity(t *testing.T) {
	clusters := GenerateNebulae(NewRand(5), DefaultNebulaRegions()[:1], 0.5, registry.Empty(), 0)
	if got := len(clusters[0].Layers[0].Particles); got != 400 {
		t.Errorf("layer 0 at half density = %d particles, want 400", got)
	}
}

func TestGenerateBackdrop(t *testing.T) {
	b := GenerateBackdrop(NewRand(8), 400, 1)
	if len(b.Shell) != 2000 || len(b.Dust) != 300 || len(b.Gas) != 150 {
		t.Fatalf("counts = %d/%d/%d", len(b.Shell), len(b.Dust), len(b.Gas))
	}
	for _, p := range b.Shell {
		if d := p.Length(); d < 599.999 || d > 600.001 {
			t.Fatalf("shell point at distance %v, want 600", d)
		}
	}
	for _, p := range b.Gas {
		if p.Y < -400*0.05 || p.Y > 400*0.05 {
			t.Fatalf("gas point y = %v not flattened", p.Y)
		}
	}
}

func TestStarBudget(t *testing.T) {
	tests := []struct {
		stars int
		mode  Mode
		want  int
	}{
		{8000, ModeGalaxy, 8000},
		{8000, ModeConstellation, 2000},
		{2000, ModeConstellation, 1000},
		{4000, ModeConstellation, 2000},
	}
	for _, tt := range tests {
		p := quality.Profile{StarCount: tt.stars}
		if got := StarBudget(p, tt.mode); got != tt.want {
			t.Errorf("StarBudget(%d, %v) = %d, want %d", tt.stars, tt.mode, got, tt.want)
		}
	}
}

func TestEngineBuild(t *testing.T) {
	e, err := NewEngine(registry.Default(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	desktop, err := e.Build(11, quality.Preset(quality.TierDesktop), ModeGalaxy)
	if err != nil {
		t.Fatal(err)
	}
	if len(desktop.Stars) != 8000 {
		t.Errorf("desktop stars = %d, want 8000", len(desktop.Stars))
	}
	if len(desktop.Nebulae) != 3 {
		t.Errorf("desktop nebulae = %d, want 3", len(desktop.Nebulae))
	}
	if desktop.Backdrop == nil {
		t.Error("backdrop missing")
	}

	low, err := e.Build(11, quality.Preset(quality.TierLowEnd), ModeConstellation)
	if err != nil {
		t.Fatal(err)
	}
	if len(low.Stars) != 1000 {
		t.Errorf("low-end constellation stars = %d, want 1000", len(low.Stars))
	}
	if len(low.Nebulae) != 0 {
		t.Error("nebulae generated with atmospherics disabled")
	}

	if _, err := NewEngine(nil, Options{Radius: 0, Volume: DefaultVolume()}); !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("NewEngine with zero radius: %v", err)
	}
}

func TestSpinnerAdvance(t *testing.T) {
	bodies := []AsteroidBody{
		{Orientation: math.Vec3{X: 1, Y: 6.2, Z: 0}, AngularVelocity: math.Vec3{X: 0.5, Y: 0.2, Z: -0.1}},
	}
	s := NewSpinner(bodies)
	s.Advance(2)

	got, ok := s.Orientation(0)
	if !ok {
		t.Fatal("Orientation(0) out of range")
	}
	if !near(got.X, 2) {
		t.Errorf("X = %v, want 2", got.X)
	}
	if !near(got.Y, 6.6-math.TwoPi) {
		t.Errorf("Y = %v, want wrapped %v", got.Y, 6.6-math.TwoPi)
	}
	if !near(got.Z, math.TwoPi-0.2) {
		t.Errorf("Z = %v, want wrapped %v", got.Z, math.TwoPi-0.2)
	}
	if bodies[0].Orientation.X != 1 {
		t.Error("Advance mutated the initial conditions")
	}

	o := s.Orientations()
	o[0].X = 100
	if cur, _ := s.Orientation(0); cur.X == 100 {
		t.Error("Orientations() should return a copy")
	}
}

func TestSpinnerOrientationOutOfRange(t *testing.T) {
	s := NewSpinner([]AsteroidBody{{}, {}})
	for _, i := range []int{-1, 2, 10} {
		if _, ok := s.Orientation(i); ok {
			t.Errorf("Orientation(%d) reported ok on a 2-body spinner", i)
		}
	}
	if _, ok := s.Orientation(1); !ok {
		t.Error("Orientation(1) should be in range")
	}
}

func near(a, b float64) bool {
	d := a - b
	return d > -1e-9 && d < 1e-9
}
