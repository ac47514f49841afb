// Package config handles galaxy configuration loading and management.
package config

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// Config holds all settings.
type Config struct {
	Galaxy      GalaxyConfig      `yaml:"galaxy"`
	Quality     QualityConfig     `yaml:"quality"`
	Interaction InteractionConfig `yaml:"interaction"`
	Camera      CameraConfig      `yaml:"camera"`
	Registry    RegistryConfig    `yaml:"registry"`
	Server      ServerConfig      `yaml:"server"`
	Viewer      ViewerConfig      `yaml:"viewer"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// GalaxyConfig holds the generation volume settings.
type GalaxyConfig struct {
	Radius     float64 `yaml:"radius"`
	Seed       uint64  `yaml:"seed"` // 0 picks a seed from the clock
	ArmCount   int     `yaml:"arm_count"`
	Tightness  float64 `yaml:"tightness"`
	Flatten    float64 `yaml:"flatten"`
	CoreRadius float64 `yaml:"core_radius"`
	Nebulae    bool    `yaml:"nebulae"`
	Backdrop   bool    `yaml:"backdrop"`
}

// QualityConfig holds the adaptive quality controller settings.
type QualityConfig struct {
	Tier          string        `yaml:"tier"` // empty probes the host
	FPSThreshold  float64       `yaml:"fps_threshold"`
	Window        time.Duration `yaml:"window"`
	HistorySize   int           `yaml:"history_size"`
	DegradeFactor float64       `yaml:"degrade_factor"`
	StarFloor     int           `yaml:"star_floor"`
}

// InteractionConfig holds pointer handling settings.
type InteractionConfig struct {
	HoverDebounce time.Duration `yaml:"hover_debounce"`
}

// CameraConfig holds orbit camera settings.
type CameraConfig struct {
	Distance        float64       `yaml:"distance"`
	MinDistance     float64       `yaml:"min_distance"`
	MaxDistance     float64       `yaml:"max_distance"`
	AutoRotate      bool          `yaml:"auto_rotate"`
	AutoRotateSpeed float64       `yaml:"auto_rotate_speed"`
	ResumeDelay     time.Duration `yaml:"resume_delay"`
}

// RegistryConfig points at an optional YAML file of points of interest.
type RegistryConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr           string          `yaml:"addr"`
	AllowedOrigins []string        `yaml:"allowed_origins"`
	CORSDebug      bool            `yaml:"cors_debug"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// ViewerConfig holds terminal viewer settings.
type ViewerConfig struct {
	FPSLimit int    `yaml:"fps_limit"`
	Mode     string `yaml:"mode"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Galaxy: GalaxyConfig{
			Radius:     400,
			Seed:       0,
			ArmCount:   3,
			Tightness:  0.8,
			Flatten:    0.1,
			CoreRadius: 25,
			Nebulae:    true,
			Backdrop:   true,
		},
		Quality: QualityConfig{
			Tier:          "",
			FPSThreshold:  30,
			Window:        time.Second,
			HistorySize:   10,
			DegradeFactor: 0.7,
			StarFloor:     1000,
		},
		Interaction: InteractionConfig{
			HoverDebounce: 50 * time.Millisecond,
		},
		Camera: CameraConfig{
			Distance:        30,
			MinDistance:     15,
			MaxDistance:     50,
			AutoRotate:      true,
			AutoRotateSpeed: 0.5,
			ResumeDelay:     3 * time.Second,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:5173"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerSecond: 30,
				Burst:             60,
			},
		},
		Viewer: ViewerConfig{
			FPSLimit: 30,
			Mode:     "galaxy",
		},
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "console",
			LogFile: "",
		},
	}
}

var validTiers = map[string]bool{"": true, "low-end": true, "mobile": true, "desktop": true}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if c.Galaxy.Radius <= 0 {
		err = multierr.Append(err, fmt.Errorf("galaxy.radius must be > 0, got %v", c.Galaxy.Radius))
	}
	if c.Galaxy.ArmCount < 1 {
		err = multierr.Append(err, fmt.Errorf("galaxy.arm_count must be >= 1, got %d", c.Galaxy.ArmCount))
	}
	if c.Galaxy.CoreRadius < 0 {
		err = multierr.Append(err, fmt.Errorf("galaxy.core_radius must be >= 0, got %v", c.Galaxy.CoreRadius))
	}
	if !validTiers[c.Quality.Tier] {
		err = multierr.Append(err, fmt.Errorf("quality.tier %q is not one of low-end, mobile, desktop", c.Quality.Tier))
	}
	if c.Quality.FPSThreshold <= 0 {
		err = multierr.Append(err, fmt.Errorf("quality.fps_threshold must be > 0, got %v", c.Quality.FPSThreshold))
	}
	if c.Quality.Window <= 0 {
		err = multierr.Append(err, fmt.Errorf("quality.window must be > 0, got %v", c.Quality.Window))
	}
	if c.Quality.HistorySize < 1 {
		err = multierr.Append(err, fmt.Errorf("quality.history_size must be >= 1, got %d", c.Quality.HistorySize))
	}
	if c.Quality.DegradeFactor <= 0 || c.Quality.DegradeFactor >= 1 {
		err = multierr.Append(err, fmt.Errorf("quality.degrade_factor must be in (0, 1), got %v", c.Quality.DegradeFactor))
	}
	if c.Quality.StarFloor < 0 {
		err = multierr.Append(err, fmt.Errorf("quality.star_floor must be >= 0, got %d", c.Quality.StarFloor))
	}
	if c.Interaction.HoverDebounce < 0 {
		err = multierr.Append(err, fmt.Errorf("interaction.hover_debounce must be >= 0, got %v", c.Interaction.HoverDebounce))
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MaxDistance < c.Camera.MinDistance {
		err = multierr.Append(err, fmt.Errorf("camera distance limits invalid: min %v, max %v", c.Camera.MinDistance, c.Camera.MaxDistance))
	}
	if c.Camera.ResumeDelay < 0 {
		err = multierr.Append(err, fmt.Errorf("camera.resume_delay must be >= 0, got %v", c.Camera.ResumeDelay))
	}
	if c.Server.RateLimit.Enabled && (c.Server.RateLimit.RequestsPerSecond <= 0 || c.Server.RateLimit.Burst < 1) {
		err = multierr.Append(err, fmt.Errorf("server.rate_limit needs requests_per_second > 0 and burst >= 1"))
	}
	if c.Viewer.Mode != "galaxy" && c.Viewer.Mode != "constellation" {
		err = multierr.Append(err, fmt.Errorf("viewer.mode %q is not galaxy or constellation", c.Viewer.Mode))
	}
	return err
}
