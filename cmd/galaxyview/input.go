package main

import (
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/founder-galaxy/internal/camera"
	"github.com/Faultbox/founder-galaxy/internal/galaxy"
	"github.com/Faultbox/founder-galaxy/internal/interaction"
	"github.com/Faultbox/founder-galaxy/internal/picking"
)

// Approximate cell size in pixels, so drags feel like a mouse drag.
const (
	cellPixelsX = 8
	cellPixelsY = 16
)

// handleEvent processes one terminal event. It returns false to quit.
func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev, time.Now())
	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		v.session.Interaction().CloseSelection()
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'c':
			next := galaxy.ModeConstellation
			if v.session.Mode() == galaxy.ModeConstellation {
				next = galaxy.ModeGalaxy
			}
			if err := v.session.SetMode(next); err != nil {
				v.log.Error("mode switch failed", zap.Error(err))
			}
			v.hoveredID = ""
		case 'r':
			if err := v.session.Reseed(uint64(time.Now().UnixNano())); err != nil {
				v.log.Error("reseed failed", zap.Error(err))
			}
		case '+', '=':
			v.session.WithCamera(func(c *camera.OrbitCamera) { c.HandleZoom(1, time.Now()) })
		case '-':
			v.session.WithCamera(func(c *camera.OrbitCamera) { c.HandleZoom(-1, time.Now()) })
		}
	}
	return true
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse, now time.Time) {
	x, y := ev.Position()
	v.mouseX, v.mouseY = x, y
	machine := v.session.Interaction()
	machine.PointerMove(float64(x)+0.5, float64(y)+0.5, float64(v.width), float64(v.height))

	hoveredID := v.pick(x, y)
	v.updateHover(hoveredID, now)

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		v.session.WithCamera(func(c *camera.OrbitCamera) { c.HandleZoom(1, now) })
	case buttons&tcell.WheelDown != 0:
		v.session.WithCamera(func(c *camera.OrbitCamera) { c.HandleZoom(-1, now) })
	case buttons&tcell.Button1 != 0:
		if !v.dragging {
			v.dragging = true
			v.dragX, v.dragY = x, y
			v.pressedOn = hoveredID
			return
		}
		dx, dy := x-v.dragX, y-v.dragY
		if dx != 0 || dy != 0 {
			v.pressedOn = ""
			v.session.WithCamera(func(c *camera.OrbitCamera) {
				c.HandleDrag(float64(dx*cellPixelsX), float64(dy*cellPixelsY), now)
			})
			v.dragX, v.dragY = x, y
		}
	default:
		if v.dragging {
			v.dragging = false
			// A press and release on the same planet without dragging is a click.
			if v.pressedOn != "" && v.pressedOn == hoveredID {
				if err := machine.Click(hoveredID); err != nil {
					v.log.Warn("click rejected", zap.String("id", hoveredID), zap.Error(err))
				}
			}
			v.pressedOn = ""
		}
	}
}

// pick returns the id of the planet under cell (x, y), or "".
func (v *Viewer) pick(x, y int) string {
	if !v.session.PlanetsVisible() {
		return ""
	}
	f, ok := v.newFrame()
	if !ok {
		return ""
	}
	ray := picking.ScreenToRay(float64(x)+0.5, float64(y)+0.5, float64(f.w), float64(f.h), f.inverse)
	hit, ok := picking.PickPlanetFunc(ray, v.session.Registry(), f.planetRadius)
	if !ok {
		return ""
	}
	return hit.POI.ID
}

// updateHover raises over and out events when the planet under the
// pointer changes. A debounced over is retried on the next move.
func (v *Viewer) updateHover(id string, now time.Time) {
	if id == v.hoveredID {
		return
	}
	machine := v.session.Interaction()
	if id == "" {
		machine.PointerOut()
		v.hoveredID = ""
		return
	}
	accepted, err := machine.PointerOver(id, now)
	if err != nil {
		if errors.Is(err, interaction.ErrUnknownPOI) {
			v.log.Warn("picked unknown planet", zap.String("id", id))
		}
		return
	}
	if accepted {
		v.hoveredID = id
	}
}
