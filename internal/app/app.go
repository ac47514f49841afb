// Package app assembles a scene session from configuration.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/founder-galaxy/internal/camera"
	"github.com/Faultbox/founder-galaxy/internal/config"
	"github.com/Faultbox/founder-galaxy/internal/galaxy"
	"github.com/Faultbox/founder-galaxy/internal/interaction"
	"github.com/Faultbox/founder-galaxy/internal/logger"
	"github.com/Faultbox/founder-galaxy/internal/quality"
	"github.com/Faultbox/founder-galaxy/internal/registry"
	"github.com/Faultbox/founder-galaxy/internal/scene"
	"github.com/Faultbox/founder-galaxy/internal/texture"
)

// App holds the wired components behind one session.
type App struct {
	Config   *config.Config
	Registry *registry.Registry
	Quality  *quality.Controller
	Engine   *galaxy.Engine
	Session  *scene.Session
}

// Registry loads the configured registry file, or the built-in entries
// when no path is set.
func Registry(cfg config.RegistryConfig) (*registry.Registry, error) {
	if cfg.Path == "" {
		return registry.Default(), nil
	}
	reg, err := registry.LoadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}
	return reg, nil
}

// QualityOptions maps config onto controller options.
func QualityOptions(cfg config.QualityConfig) (quality.Options, error) {
	opts := quality.Options{
		FPSThreshold:  cfg.FPSThreshold,
		Window:        cfg.Window,
		HistorySize:   cfg.HistorySize,
		DegradeFactor: cfg.DegradeFactor,
		StarFloor:     cfg.StarFloor,
	}
	if cfg.Tier != "" {
		t, err := quality.ParseTier(cfg.Tier)
		if err != nil {
			return quality.Options{}, err
		}
		opts.ForceTier = &t
	}
	return opts, nil
}

// EngineOptions maps config onto generation options.
func EngineOptions(cfg config.GalaxyConfig) galaxy.Options {
	opts := galaxy.DefaultOptions()
	opts.Radius = cfg.Radius
	opts.Volume.ArmCount = cfg.ArmCount
	opts.Volume.Tightness = cfg.Tightness
	opts.Volume.Flatten = cfg.Flatten
	opts.Volume.CoreRadius = cfg.CoreRadius
	opts.Nebulae = cfg.Nebulae
	opts.Backdrop = cfg.Backdrop
	return opts
}

// CameraOptions maps config onto orbit camera options.
func CameraOptions(cfg config.CameraConfig) camera.Options {
	opts := camera.DefaultOptions()
	opts.Distance = cfg.Distance
	opts.MinDistance = cfg.MinDistance
	opts.MaxDistance = cfg.MaxDistance
	opts.AutoRotate = cfg.AutoRotate
	opts.AutoRotateSpeed = cfg.AutoRotateSpeed
	opts.ResumeDelay = cfg.ResumeDelay
	return opts
}

// New wires every component and builds the first Field. device is the
// signal set used for tier classification.
func New(cfg *config.Config, device quality.Device) (*App, error) {
	reg, err := Registry(cfg.Registry)
	if err != nil {
		return nil, err
	}

	qopts, err := QualityOptions(cfg.Quality)
	if err != nil {
		return nil, err
	}
	qc := quality.NewController(device, qopts)

	engine, err := galaxy.NewEngine(reg, EngineOptions(cfg.Galaxy))
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	mode, err := galaxy.ParseMode(cfg.Viewer.Mode)
	if err != nil {
		return nil, err
	}

	machine := interaction.New(reg, interaction.Options{HoverDebounce: cfg.Interaction.HoverDebounce})
	cam := camera.NewOrbitCamera(CameraOptions(cfg.Camera))

	start := time.Now()
	session, err := scene.New(engine, qc, machine, cam, texture.NewCache(), scene.Options{
		Seed: cfg.Galaxy.Seed,
		Mode: mode,
	})
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	field := session.Field()
	logger.Named("app").Info("session ready",
		zap.Uint64("seed", field.Seed),
		zap.Stringer("tier", qc.Tier()),
		zap.Int("stars", len(field.Stars)),
		zap.Int("asteroids", len(field.Asteroids)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &App{
		Config:   cfg,
		Registry: reg,
		Quality:  qc,
		Engine:   engine,
		Session:  session,
	}, nil
}

// Close releases the session.
func (a *App) Close() {
	a.Session.Close()
}
