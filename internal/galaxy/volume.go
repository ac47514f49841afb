package galaxy

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCount is returned for a negative star count.
	ErrInvalidCount = errors.New("galaxy: count must be >= 0")
	// ErrInvalidRadius is returned for a non-positive radius.
	ErrInvalidRadius = errors.New("galaxy: radius must be > 0")
	// ErrInvalidArms is returned for an arm count below one.
	ErrInvalidArms = errors.New("galaxy: arm count must be >= 1")
)

// VolumeParams shapes the spiral-arm distribution.
type VolumeParams struct {
	ArmCount     int     `json:"armCount"`
	Tightness    float64 `json:"tightness"`    // radians of twist per unit distance
	Flatten      float64 `json:"flatten"`      // vertical spread as a fraction of radius
	CoreRadius   float64 `json:"coreRadius"`   // central exclusion radius
	RadialBias   float64 `json:"radialBias"`   // exponent on U; < 1 pushes stars outward
	RadialExtent float64 `json:"radialExtent"` // fraction of radius the arms reach
	JitterBase   float64 `json:"jitterBase"`
	JitterScale  float64 `json:"jitterScale"`
}

// DefaultVolume returns the stock three-arm galaxy shape.
func DefaultVolume() VolumeParams {
	return VolumeParams{
		ArmCount:     3,
		Tightness:    0.8,
		Flatten:      0.1,
		CoreRadius:   25,
		RadialBias:   0.7,
		RadialExtent: 0.8,
		JitterBase:   40,
		JitterScale:  0.1,
	}
}

// Validate checks the parameters that would make generation meaningless.
func (p VolumeParams) Validate() error {
	if p.ArmCount < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidArms, p.ArmCount)
	}
	if p.CoreRadius < 0 {
		return fmt.Errorf("galaxy: core radius must be >= 0, got %v", p.CoreRadius)
	}
	return nil
}

// jitter returns the fuzz width applied at a given distance from the center.
func (p VolumeParams) jitter(distance float64) float64 {
	return p.JitterBase + distance*p.JitterScale
}
