// Package main is a terminal renderer for the galaxy scene.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/founder-galaxy/internal/app"
	"github.com/Faultbox/founder-galaxy/internal/config"
	"github.com/Faultbox/founder-galaxy/internal/logger"
	"github.com/Faultbox/founder-galaxy/internal/quality"
	"github.com/Faultbox/founder-galaxy/internal/scene"
)

// Viewer owns the terminal screen and drives the session per frame.
type Viewer struct {
	screen      tcell.Screen
	session     *scene.Session
	width       int
	height      int
	maxDistance float64

	// pointer state in cells
	mouseX, mouseY int
	dragging       bool
	dragX, dragY   int
	pressedOn      string
	hoveredID      string

	frameInterval time.Duration
	lastFrame     time.Time
	lastFPS       float64
	log           *zap.Logger
}

func newViewer(session *scene.Session, fpsLimit int, maxDistance float64) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	if fpsLimit <= 0 {
		fpsLimit = 30
	}
	v := &Viewer{
		screen:        screen,
		session:       session,
		maxDistance:   maxDistance,
		frameInterval: time.Second / time.Duration(fpsLimit),
		lastFrame:     time.Now(),
		log:           logger.Named("viewer"),
	}
	v.width, v.height = screen.Size()
	return v, nil
}

func (v *Viewer) run() error {
	ticker := time.NewTicker(v.frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !v.handleEvent(ev) {
				return nil
			}

		case now := <-ticker.C:
			dt := now.Sub(v.lastFrame).Seconds()
			v.lastFrame = now
			if err := v.session.Tick(now, dt); err != nil {
				return fmt.Errorf("frame: %w", err)
			}
			if dt > 0 {
				v.lastFPS = 1 / dt
			}
			v.draw(now)
		}
	}
}

func (v *Viewer) close() {
	v.screen.Fini()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// The screen belongs to the viewer, so logs only go to the file.
	if err := logger.InitWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   logFile(cfg.Logging.LogFile),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	a, err := app.New(cfg, quality.ProbeHost())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	v, err := newViewer(a.Session, cfg.Viewer.FPSLimit, cfg.Camera.MaxDistance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Screen error: %v\n", err)
		os.Exit(1)
	}

	runErr := v.run()
	v.close()
	if runErr != nil {
		logger.Error("viewer stopped", zap.Error(runErr))
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

func logFile(path string) logger.FileConfig {
	if path == "" {
		return logger.FileConfig{}
	}
	return logger.DefaultFileConfig(path)
}
