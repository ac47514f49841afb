// Package scene wires the generators, the quality controller, the
// interaction machine and the camera into one per-frame session.
package scene

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/founder-galaxy/internal/camera"
	"github.com/Faultbox/founder-galaxy/internal/galaxy"
	"github.com/Faultbox/founder-galaxy/internal/interaction"
	"github.com/Faultbox/founder-galaxy/internal/lighting"
	"github.com/Faultbox/founder-galaxy/internal/logger"
	"github.com/Faultbox/founder-galaxy/internal/quality"
	"github.com/Faultbox/founder-galaxy/internal/registry"
	"github.com/Faultbox/founder-galaxy/internal/texture"
	"github.com/Faultbox/founder-galaxy/pkg/math"
)

// ErrPlanetsHidden is returned for planet events while planets are hidden.
var ErrPlanetsHidden = errors.New("scene: planets are hidden in constellation mode")

// Hints are the renderer toggles derived from the active profile.
type Hints struct {
	Twinkle         bool `json:"twinkle"`
	DynamicLighting bool `json:"dynamicLighting"`
	Atmosphere      bool `json:"atmosphere"`
	Satellites      bool `json:"satellites"`
	TextureSize     int  `json:"textureSize"`
}

// HintsFor derives renderer toggles from a profile.
func HintsFor(p quality.Profile) Hints {
	return Hints{
		Twinkle:         p.ParticleQuality != quality.LevelLow,
		DynamicLighting: p.EnableDynamicLighting,
		Atmosphere:      p.EnableAtmosphericEffects,
		Satellites:      p.EnableSatellites,
		TextureSize:     texture.ForQuality(p.RenderQuality),
	}
}

// CameraView is the camera state a renderer needs.
type CameraView struct {
	Position math.Vec3         `json:"position"`
	Target   math.Vec3         `json:"target"`
	Mode     camera.RotateMode `json:"-"`
	Rotating bool              `json:"autoRotating"`
}

// Snapshot is a consistent view of the session for one frame.
type Snapshot struct {
	Field        *galaxy.Field        `json:"field"`
	Orientations []math.Vec3          `json:"orientations"`
	Interaction  interaction.State    `json:"interaction"`
	Camera       CameraView           `json:"camera"`
	Hints        Hints                `json:"hints"`
	Planets      bool                 `json:"planetsVisible"`
	Light        *lighting.PointLight `json:"light,omitempty"`
}

// Options configures a Session.
type Options struct {
	Seed uint64 // 0 derives a seed from the clock
	Mode galaxy.Mode
}

// Session owns the live Field and routes per-frame work.
type Session struct {
	// buildMu serializes rebuilds from profile read to swap.
	buildMu  sync.Mutex
	mu       sync.RWMutex
	engine   *galaxy.Engine
	quality  *quality.Controller
	machine  *interaction.Machine
	camera   *camera.OrbitCamera
	textures *texture.Cache

	field   *galaxy.Field
	spinner *galaxy.Spinner
	seed    uint64
	mode    galaxy.Mode
	started time.Time

	pendingMu sync.Mutex
	pending   *quality.Profile

	cancel []func()
	log    *zap.Logger

	beforeBuild func() // test hook
}

// New builds the first Field and subscribes to quality and interaction
// changes.
func New(engine *galaxy.Engine, qc *quality.Controller, machine *interaction.Machine, cam *camera.OrbitCamera, textures *texture.Cache, opts Options) (*Session, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s := &Session{
		engine:   engine,
		quality:  qc,
		machine:  machine,
		camera:   cam,
		textures: textures,
		seed:     seed,
		mode:     opts.Mode,
		log:      logger.Named("scene"),
	}
	if err := s.rebuildLocked(qc.Current(), opts.Mode); err != nil {
		return nil, err
	}

	s.cancel = append(s.cancel,
		qc.Subscribe(s.onProfile),
		machine.Subscribe(s.onInteraction),
	)
	return s, nil
}

// Close drops the session's subscriptions.
func (s *Session) Close() {
	for _, c := range s.cancel {
		c()
	}
	s.cancel = nil
}

// onProfile defers regeneration to the next Tick.
func (s *Session) onProfile(p quality.Profile) {
	s.pendingMu.Lock()
	s.pending = &p
	s.pendingMu.Unlock()
}

func (s *Session) takePending() (quality.Profile, bool) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	if s.pending == nil {
		return quality.Profile{}, false
	}
	p := *s.pending
	s.pending = nil
	return p, true
}

// onInteraction flies the camera to a newly selected planet.
func (s *Session) onInteraction(st interaction.State) {
	if st.SelectedID == "" {
		return
	}
	poi, ok := s.engine.Registry().Lookup(st.SelectedID)
	if !ok {
		return
	}
	s.mu.Lock()
	s.camera.FocusOn(poi.Position, time.Now())
	s.mu.Unlock()
}

// rebuild regenerates the Field with the controller's current profile.
// A profile published while the build runs stays pending for the next Sync.
func (s *Session) rebuild(mode galaxy.Mode) error {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()
	s.takePending()
	return s.rebuildLocked(s.quality.Current(), mode)
}

// rebuildLocked builds off the state lock and swaps the result in. The
// caller holds buildMu, or owns the session exclusively.
func (s *Session) rebuildLocked(p quality.Profile, mode galaxy.Mode) error {
	s.mu.RLock()
	seed := s.seed
	s.mu.RUnlock()

	if s.beforeBuild != nil {
		s.beforeBuild()
	}
	field, err := s.engine.Build(seed, p, mode)
	if err != nil {
		return fmt.Errorf("build field: %w", err)
	}
	spinner := galaxy.NewSpinner(field.Asteroids)

	s.mu.Lock()
	s.field = field
	s.spinner = spinner
	s.mode = mode
	s.mu.Unlock()

	s.log.Info("field regenerated",
		zap.Stringer("mode", mode),
		zap.Int("stars", len(field.Stars)),
		zap.Int("asteroids", len(field.Asteroids)),
		zap.Bool("exhausted", field.Report.Exhausted),
	)
	return nil
}

// Tick is the per-frame callback. It feeds the frame to the quality
// controller, applies any pending profile, spins asteroids and moves the
// camera.
func (s *Session) Tick(now time.Time, dt float64) error {
	s.quality.Frame(now)
	if _, err := s.Sync(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.started.IsZero() {
		s.started = now
	}
	s.spinner.Advance(dt)
	s.camera.Update(now, dt)
	s.mu.Unlock()
	return nil
}

// Sync applies a profile change published since the last call. It reports
// whether the Field was replaced.
func (s *Session) Sync() (bool, error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()
	if _, ok := s.takePending(); !ok {
		return false, nil
	}
	if err := s.rebuildLocked(s.quality.Current(), s.Mode()); err != nil {
		return false, err
	}
	return true, nil
}

// Regenerate rebuilds the Field now with the controller's current profile.
func (s *Session) Regenerate() error {
	return s.rebuild(s.Mode())
}

// SetMode switches between galaxy and constellation density. Planets are
// hidden in constellation mode, so entering it closes any selection.
func (s *Session) SetMode(mode galaxy.Mode) error {
	if mode == s.Mode() {
		return nil
	}
	if err := s.rebuild(mode); err != nil {
		return err
	}
	if mode == galaxy.ModeConstellation {
		s.machine.CloseSelection()
		s.machine.PointerOut()
	}
	return nil
}

// Reseed replaces the seed and regenerates.
func (s *Session) Reseed(seed uint64) error {
	s.mu.Lock()
	s.seed = seed
	s.mu.Unlock()
	return s.Regenerate()
}

// Mode returns the active view mode.
func (s *Session) Mode() galaxy.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// PlanetsVisible reports whether planets are drawn and pickable. They are
// hidden in constellation mode.
func (s *Session) PlanetsVisible() bool {
	return s.Mode() == galaxy.ModeGalaxy
}

// Field returns the active Field. It is never modified after publication.
func (s *Session) Field() *galaxy.Field {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.field
}

// Registry returns the points of interest the session was built with.
func (s *Session) Registry() *registry.Registry {
	return s.engine.Registry()
}

// Quality returns the session's controller.
func (s *Session) Quality() *quality.Controller {
	return s.quality
}

// Interaction returns the session's state machine.
func (s *Session) Interaction() *interaction.Machine {
	return s.machine
}

// Hints returns renderer toggles for the current profile.
func (s *Session) Hints() Hints {
	return HintsFor(s.quality.Current())
}

// WithCamera runs fn with exclusive access to the camera.
func (s *Session) WithCamera(fn func(*camera.OrbitCamera)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.camera)
}

// Texture returns the surface texture of a point of interest at the size
// the current profile asks for.
func (s *Session) Texture(poi registry.PointOfInterest) (*image.RGBA, error) {
	size := HintsFor(s.quality.Current()).TextureSize
	return s.textures.Get(texture.KeyFor(poi, size))
}

// Textures returns the shared texture cache.
func (s *Session) Textures() *texture.Cache {
	return s.textures
}

// Snapshot captures everything a renderer needs for one frame.
func (s *Session) Snapshot(now time.Time) Snapshot {
	profile := s.quality.Current()
	st := s.machine.State()

	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Field:        s.field,
		Orientations: s.spinner.Orientations(),
		Interaction:  st,
		Camera: CameraView{
			Position: s.camera.Position(),
			Target:   s.camera.Target,
			Mode:     s.camera.Mode(),
			Rotating: s.camera.Mode() == camera.AutoRotating,
		},
		Hints:   HintsFor(profile),
		Planets: s.mode == galaxy.ModeGalaxy,
	}
	if profile.EnableDynamicLighting {
		var t float64
		if !s.started.IsZero() {
			t = now.Sub(s.started).Seconds()
		}
		light := lighting.PointerLight(st.Pointer, st.IsHovering, t)
		snap.Light = &light
	}
	return snap
}
