// Package interaction turns picking and pointer events into the single
// authoritative hover and selection state.
package interaction

import (
	"errors"

	"github.com/Faultbox/founder-galaxy/pkg/math"
)

// ErrUnknownPOI is returned when an event names an id missing from the
// registry.
var ErrUnknownPOI = errors.New("interaction: unknown point of interest")

// State is a snapshot of the interaction state. Ids are empty when nothing
// is hovered or selected.
type State struct {
	HoveredID  string    `json:"hoveredId,omitempty"`
	SelectedID string    `json:"selectedId,omitempty"`
	Pointer    math.Vec2 `json:"pointer"`
	IsHovering bool      `json:"isHovering"`
}

// HoverCardVisible reports whether a hover card should be drawn: something
// is hovered and it is not the current selection.
func (s State) HoverCardVisible() bool {
	return s.IsHovering && s.HoveredID != "" && s.HoveredID != s.SelectedID
}

// Idle reports whether nothing is hovered or selected.
func (s State) Idle() bool {
	return s.HoveredID == "" && s.SelectedID == ""
}
