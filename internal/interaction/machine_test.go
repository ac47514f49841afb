package interaction

import (
	"errors"
	"testing"
	"time"

	"github.com/Faultbox/founder-galaxy/internal/registry"
	"github.com/Faultbox/founder-galaxy/pkg/math"
)

func newMachine(t *testing.T) *Machine {
	t.Helper()
	reg, err := registry.New(
		registry.PointOfInterest{ID: "f1", Scale: 1, ExclusionRadius: 10},
		registry.PointOfInterest{ID: "f2", Scale: 1, ExclusionRadius: 10},
	)
	if err != nil {
		t.Fatal(err)
	}
	return New(reg, Options{HoverDebounce: DefaultHoverDebounce})
}

func TestPointerOverDebounce(t *testing.T) {
	m := newMachine(t)
	t0 := time.Unix(500, 0)

	if ok, err := m.PointerOver("f1", t0); !ok || err != nil {
		t.Fatalf("first hover = %v, %v", ok, err)
	}
	if ok, err := m.PointerOver("f2", t0.Add(20*time.Millisecond)); ok || err != nil {
		t.Fatalf("hover inside window = %v, %v, want dropped", ok, err)
	}
	if got := m.State().HoveredID; got != "f1" {
		t.Fatalf("HoveredID = %q, want f1", got)
	}

	if ok, _ := m.PointerOver("f2", t0.Add(80*time.Millisecond)); !ok {
		t.Fatal("hover after window should be accepted")
	}
	if got := m.State().HoveredID; got != "f2" {
		t.Errorf("HoveredID = %q, want f2", got)
	}
}

func TestDroppedHoverDoesNotExtendWindow(t *testing.T) {
	m := newMachine(t)
	t0 := time.Unix(500, 0)

	m.PointerOver("f1", t0)
	m.PointerOver("f2", t0.Add(40*time.Millisecond))
	if ok, _ := m.PointerOver("f2", t0.Add(60*time.Millisecond)); !ok {
		t.Error("window should be measured from the last accepted hover")
	}
}

func TestPointerOutIsImmediate(t *testing.T) {
	m := newMachine(t)
	t0 := time.Unix(500, 0)

	m.PointerOver("f1", t0)
	m.PointerOut()

	s := m.State()
	if s.HoveredID != "" || s.IsHovering {
		t.Errorf("state after out = %+v", s)
	}
}

func TestClickAndClose(t *testing.T) {
	m := newMachine(t)
	m.PointerOver("f2", time.Unix(1, 0))

	if err := m.Click("f1"); err != nil {
		t.Fatal(err)
	}
	if err := m.Click("f2"); err != nil {
		t.Fatal(err)
	}
	if got := m.State().SelectedID; got != "f2" {
		t.Errorf("SelectedID = %q, want f2", got)
	}
	if m.State().HoverCardVisible() {
		t.Error("hover card should be hidden for the selected planet")
	}

	m.CloseSelection()
	s := m.State()
	if s.SelectedID != "" {
		t.Errorf("SelectedID = %q after close", s.SelectedID)
	}
	if s.HoveredID != "f2" {
		t.Error("closing the selection should not touch hover")
	}
	if !s.HoverCardVisible() {
		t.Error("hover card should show once the selection is closed")
	}
}

func TestUnknownID(t *testing.T) {
	m := newMachine(t)
	before := m.State()

	if _, err := m.PointerOver("nope", time.Unix(1, 0)); !errors.Is(err, ErrUnknownPOI) {
		t.Errorf("PointerOver error = %v", err)
	}
	if err := m.Click("nope"); !errors.Is(err, ErrUnknownPOI) {
		t.Errorf("Click error = %v", err)
	}
	if m.State() != before {
		t.Error("state changed on unknown id")
	}
	// A rejected id must not consume the debounce window.
	if ok, _ := m.PointerOver("f1", time.Unix(1, 0)); !ok {
		t.Error("valid hover after unknown id was dropped")
	}
}

func TestPointerMove(t *testing.T) {
	m := newMachine(t)

	tests := []struct {
		x, y, w, h float64
		want       math.Vec2
	}{
		{0, 0, 800, 600, math.Vec2{X: -1, Y: 1}},
		{800, 600, 800, 600, math.Vec2{X: 1, Y: -1}},
		{400, 300, 800, 600, math.Vec2{X: 0, Y: 0}},
		{10, 10, 0, 0, math.Vec2{}},
	}
	for _, tt := range tests {
		got := m.PointerMove(tt.x, tt.y, tt.w, tt.h)
		if got != tt.want {
			t.Errorf("PointerMove(%v, %v) = %+v, want %+v", tt.x, tt.y, got, tt.want)
		}
		if m.State().Pointer != tt.want {
			t.Errorf("state pointer = %+v, want %+v", m.State().Pointer, tt.want)
		}
	}
}

func TestSubscribe(t *testing.T) {
	m := newMachine(t)

	var seen []State
	cancel := m.Subscribe(func(s State) { seen = append(seen, s) })

	m.Click("f1")
	m.PointerOut()
	cancel()
	m.CloseSelection()

	if len(seen) != 2 {
		t.Fatalf("notifications = %d, want 2", len(seen))
	}
	if seen[0].SelectedID != "f1" {
		t.Errorf("first snapshot = %+v", seen[0])
	}
}

func TestSelectedLookup(t *testing.T) {
	m := newMachine(t)
	if _, ok := m.Selected(); ok {
		t.Error("nothing should be selected initially")
	}
	m.Click("f2")
	poi, ok := m.Selected()
	if !ok || poi.ID != "f2" {
		t.Errorf("Selected() = %+v, %v", poi, ok)
	}
}
