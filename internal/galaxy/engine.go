package galaxy

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/founder-galaxy/internal/logger"
	"github.com/Faultbox/founder-galaxy/internal/quality"
	"github.com/Faultbox/founder-galaxy/internal/registry"
)

// constellationCap bounds the star count in constellation mode.
const constellationCap = 2000

// Mode selects how dense the field is drawn.
type Mode int

const (
	ModeGalaxy Mode = iota
	ModeConstellation
)

func (m Mode) String() string {
	if m == ModeConstellation {
		return "constellation"
	}
	return "galaxy"
}

// ParseMode resolves a mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "galaxy", "":
		return ModeGalaxy, nil
	case "constellation":
		return ModeConstellation, nil
	default:
		return ModeGalaxy, fmt.Errorf("unknown view mode %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// StarBudget returns how many stars to request for a profile and mode.
func StarBudget(p quality.Profile, mode Mode) int {
	if mode == ModeConstellation {
		return min(p.StarCount/2, constellationCap)
	}
	return p.StarCount
}

// ParticleDensity maps particle quality onto a nebula/backdrop density.
func ParticleDensity(l quality.Level) float64 {
	switch l {
	case quality.LevelHigh:
		return 1
	case quality.LevelMedium:
		return 0.6
	default:
		return 0.35
	}
}

// Field is everything generated for one seed, profile and mode. A Field is
// never modified after Build returns.
type Field struct {
	Seed      uint64           `json:"seed"`
	Mode      Mode             `json:"mode"`
	Radius    float64          `json:"radius"`
	Profile   quality.Profile  `json:"profile"`
	Stars     []CelestialPoint `json:"stars"`
	Asteroids []AsteroidBody   `json:"asteroids"`
	Nebulae   []NebulaCluster  `json:"nebulae,omitempty"`
	Backdrop  *Backdrop        `json:"backdrop,omitempty"`
	Report    Report           `json:"report"`
}

// Options configures an Engine.
type Options struct {
	Radius   float64
	Volume   VolumeParams
	Regions  []NebulaRegion
	Nebulae  bool
	Backdrop bool
}

// DefaultOptions returns the stock engine settings.
func DefaultOptions() Options {
	return Options{
		Radius:   400,
		Volume:   DefaultVolume(),
		Regions:  DefaultNebulaRegions(),
		Nebulae:  true,
		Backdrop: true,
	}
}

// Engine builds Fields against a fixed registry and volume.
type Engine struct {
	reg  *registry.Registry
	opts Options
	log  *zap.Logger
}

// NewEngine validates opts and returns an Engine. A nil registry behaves
// as an empty one.
func NewEngine(reg *registry.Registry, opts Options) (*Engine, error) {
	if opts.Radius <= 0 {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidRadius, opts.Radius)
	}
	if err := opts.Volume.Validate(); err != nil {
		return nil, err
	}
	return &Engine{reg: reg, opts: opts, log: logger.Named("galaxy")}, nil
}

// Registry returns the registry the engine excludes around.
func (e *Engine) Registry() *registry.Registry {
	return e.reg
}

// Radius returns the generation radius.
func (e *Engine) Radius() float64 {
	return e.opts.Radius
}

// Build generates a complete Field. The star stream, nebulae and backdrop
// draw from independent sources derived from seed, so toggling one never
// shifts the others.
func (e *Engine) Build(seed uint64, profile quality.Profile, mode Mode) (*Field, error) {
	start := time.Now()
	budget := StarBudget(profile, mode)

	pop, err := Generate(NewRand(seed), budget, e.opts.Radius, e.reg, e.opts.Volume)
	if err != nil {
		return nil, fmt.Errorf("generate stars: %w", err)
	}

	field := &Field{
		Seed:      seed,
		Mode:      mode,
		Radius:    e.opts.Radius,
		Profile:   profile,
		Stars:     pop.Stars,
		Asteroids: pop.Asteroids,
		Report:    pop.Report,
	}

	density := ParticleDensity(profile.ParticleQuality)
	if e.opts.Nebulae && profile.EnableAtmosphericEffects {
		field.Nebulae = GenerateNebulae(NewRand(seed+1), e.opts.Regions, density, e.reg, e.opts.Volume.CoreRadius)
	}
	if e.opts.Backdrop {
		b := GenerateBackdrop(NewRand(seed+2), e.opts.Radius, density)
		field.Backdrop = &b
	}

	if pop.Report.Exhausted {
		e.log.Warn("attempt budget exhausted before star count reached",
			zap.Int("requested", pop.Report.Requested),
			zap.Int("stars", pop.Report.Stars),
			zap.Int("attempts", pop.Report.Attempts),
		)
	}
	e.log.Debug("field built",
		zap.Uint64("seed", seed),
		zap.Stringer("mode", mode),
		zap.Int("stars", len(field.Stars)),
		zap.Int("asteroids", len(field.Asteroids)),
		zap.Int("nebulae", len(field.Nebulae)),
		zap.Duration("took", time.Since(start)),
	)
	return field, nil
}
