// Package quality classifies the host device and ratchets rendering fidelity
// down when the measured frame rate cannot keep up.
package quality

import (
	"fmt"
	"math"
	"strings"
)

// Level is a coarse fidelity tier for particles or rendering.
type Level int

const (
	LevelLow Level = iota
	LevelMedium
	LevelHigh
)

var levelNames = [...]string{"low", "medium", "high"}

func (l Level) String() string {
	if l < LevelLow || l > LevelHigh {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel resolves a level name.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelLow, fmt.Errorf("unknown quality level %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Tier is the device class chosen by the startup probe.
type Tier int

const (
	TierLowEnd Tier = iota
	TierMobile
	TierDesktop
)

var tierNames = [...]string{"low-end", "mobile", "desktop"}

func (t Tier) String() string {
	if t < TierLowEnd || t > TierDesktop {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// ParseTier resolves a tier name.
func ParseTier(s string) (Tier, error) {
	for i, name := range tierNames {
		if strings.EqualFold(s, name) {
			return Tier(i), nil
		}
	}
	return TierDesktop, fmt.Errorf("unknown device tier %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Profile is the full set of generation and rendering parameters. Fields are
// tuned together per tier, so consumers always replace a Profile wholesale.
type Profile struct {
	StarCount                int   `json:"starCount"`
	EnableDynamicLighting    bool  `json:"enableDynamicLighting"`
	EnableAtmosphericEffects bool  `json:"enableAtmosphericEffects"`
	EnableSatellites         bool  `json:"enableSatellites"`
	ParticleQuality          Level `json:"particleQuality"`
	RenderQuality            Level `json:"renderQuality"`
}

// Preset returns the fixed profile for a device tier.
func Preset(t Tier) Profile {
	switch t {
	case TierLowEnd:
		return Profile{
			StarCount:       2000,
			ParticleQuality: LevelLow,
			RenderQuality:   LevelLow,
		}
	case TierMobile:
		return Profile{
			StarCount:             4000,
			EnableDynamicLighting: true,
			ParticleQuality:       LevelMedium,
			RenderQuality:         LevelMedium,
		}
	default:
		return Profile{
			StarCount:                8000,
			EnableDynamicLighting:    true,
			EnableAtmosphericEffects: true,
			EnableSatellites:         true,
			ParticleQuality:          LevelHigh,
			RenderQuality:            LevelHigh,
		}
	}
}

// Degrade returns the profile one ratchet step down: the star count scaled by
// factor but never below floor, atmospherics off, particle quality one tier
// lower. RenderQuality is left alone.
func (p Profile) Degrade(factor float64, floor int) Profile {
	next := p
	// The epsilon keeps products like 3920*0.7 from flooring to 2743.
	stars := int(math.Floor(float64(p.StarCount)*factor + 1e-9))
	if stars < floor {
		stars = floor
	}
	next.StarCount = stars
	next.EnableAtmosphericEffects = false
	if p.ParticleQuality == LevelHigh {
		next.ParticleQuality = LevelMedium
	} else {
		next.ParticleQuality = LevelLow
	}
	return next
}
