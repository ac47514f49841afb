package scene

import (
	"testing"
	"time"

	"github.com/Faultbox/founder-galaxy/internal/camera"
	"github.com/Faultbox/founder-galaxy/internal/galaxy"
	"github.com/Faultbox/founder-galaxy/internal/interaction"
	"github.com/Faultbox/founder-galaxy/internal/quality"
	"github.com/Faultbox/founder-galaxy/internal/registry"
	"github.com/Faultbox/founder-galaxy/internal/texture"
)

func newSession(t *testing.T, device quality.Device) *Session {
	t.Helper()
	reg := registry.Default()
	engine, err := galaxy.NewEngine(reg, galaxy.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(
		engine,
		quality.NewController(device, quality.DefaultOptions()),
		interaction.New(reg, interaction.Options{HoverDebounce: interaction.DefaultHoverDebounce}),
		camera.NewOrbitCamera(camera.DefaultOptions()),
		texture.NewCache(),
		Options{Seed: 42},
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	return s
}

func desktop() quality.Device {
	return quality.Device{Cores: 8, MemoryGB: 16}
}

func TestSessionRegeneratesOnDegrade(t *testing.T) {
	s := newSession(t, desktop())
	first := s.Field()
	if len(first.Stars) != 8000 {
		t.Fatalf("initial stars = %d, want 8000", len(first.Stars))
	}

	s.Quality().Sample(12)
	if s.Field() != first {
		t.Fatal("field replaced before the next tick")
	}

	if err := s.Tick(time.Unix(10, 0), 0.016); err != nil {
		t.Fatal(err)
	}
	second := s.Field()
	if len(second.Stars) != 5600 {
		t.Errorf("stars after degrade = %d, want 5600", len(second.Stars))
	}
	if len(second.Nebulae) != 0 {
		t.Error("nebulae should be gone once atmospherics are off")
	}
	if len(first.Stars) != 8000 {
		t.Error("previous field was mutated")
	}
}

func TestSessionSetMode(t *testing.T) {
	s := newSession(t, desktop())
	if err := s.SetMode(galaxy.ModeConstellation); err != nil {
		t.Fatal(err)
	}
	f := s.Field()
	if f.Mode != galaxy.ModeConstellation || len(f.Stars) != 2000 {
		t.Errorf("constellation field: mode %v, %d stars", f.Mode, len(f.Stars))
	}
}

func TestSessionConstellationHidesPlanets(t *testing.T) {
	s := newSession(t, desktop())
	if !s.PlanetsVisible() {
		t.Fatal("planets should be visible in galaxy mode")
	}
	if err := s.Interaction().Click("founder-1"); err != nil {
		t.Fatal(err)
	}

	if err := s.SetMode(galaxy.ModeConstellation); err != nil {
		t.Fatal(err)
	}
	if s.PlanetsVisible() {
		t.Error("planets should be hidden in constellation mode")
	}
	if st := s.Interaction().State(); st.SelectedID != "" || st.IsHovering {
		t.Errorf("interaction state after switch = %+v", st)
	}
	if snap := s.Snapshot(time.Unix(1, 0)); snap.Planets {
		t.Error("snapshot reports planets in constellation mode")
	}

	if err := s.SetMode(galaxy.ModeGalaxy); err != nil {
		t.Fatal(err)
	}
	if !s.PlanetsVisible() {
		t.Error("planets should return with galaxy mode")
	}
}

func TestSessionRebuildKeepsLatestProfile(t *testing.T) {
	s := newSession(t, desktop())

	// Degrade while the mode switch is building, with a Sync racing it.
	done := make(chan error, 1)
	s.beforeBuild = func() {
		s.beforeBuild = nil
		s.Quality().Sample(10)
		go func() {
			_, err := s.Sync()
			done <- err
		}()
	}
	if err := s.SetMode(galaxy.ModeConstellation); err != nil {
		t.Fatal(err)
	}
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if _, err := s.Sync(); err != nil {
		t.Fatal(err)
	}

	want := s.Quality().Current()
	f := s.Field()
	if f.Profile != want {
		t.Errorf("field profile = %+v, controller = %+v", f.Profile, want)
	}
	if f.Profile.EnableAtmosphericEffects {
		t.Error("field still carries the pre-degrade profile")
	}
	if f.Mode != galaxy.ModeConstellation {
		t.Errorf("mode = %v, want constellation", f.Mode)
	}
}

func TestSessionDeterministicSeed(t *testing.T) {
	a := newSession(t, desktop()).Field()
	b := newSession(t, desktop()).Field()
	if a.Stars[0] != b.Stars[0] || a.Stars[len(a.Stars)-1] != b.Stars[len(b.Stars)-1] {
		t.Error("same seed produced different fields")
	}
}

func TestSessionSelectionFocusesCamera(t *testing.T) {
	s := newSession(t, desktop())
	if err := s.Interaction().Click("founder-6"); err != nil {
		t.Fatal(err)
	}
	var mode camera.RotateMode
	s.WithCamera(func(c *camera.OrbitCamera) { mode = c.Mode() })
	if mode != camera.Interacting {
		t.Error("selecting a planet should stop auto-rotation")
	}
}

func TestSessionSnapshot(t *testing.T) {
	s := newSession(t, desktop())
	now := time.Unix(20, 0)
	s.Tick(now, 0.5)

	snap := s.Snapshot(now)
	if snap.Field == nil {
		t.Fatal("snapshot has no field")
	}
	if len(snap.Orientations) != len(snap.Field.Asteroids) {
		t.Errorf("orientations = %d, asteroids = %d", len(snap.Orientations), len(snap.Field.Asteroids))
	}
	if !snap.Hints.Twinkle || !snap.Hints.Atmosphere || snap.Hints.TextureSize != 1024 {
		t.Errorf("desktop hints = %+v", snap.Hints)
	}
	if snap.Light == nil {
		t.Error("desktop snapshot should carry the pointer light")
	}

	low := newSession(t, quality.Device{Cores: 2})
	ls := low.Snapshot(now)
	if ls.Light != nil || ls.Hints.Twinkle {
		t.Errorf("low-end snapshot = %+v, light %v", ls.Hints, ls.Light)
	}
}

func TestSessionTexture(t *testing.T) {
	s := newSession(t, quality.Device{Cores: 2})
	poi, _ := s.Registry().Lookup("founder-2")
	img, err := s.Texture(poi)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 256 {
		t.Errorf("low-end texture width = %d, want 256", img.Bounds().Dx())
	}
}
