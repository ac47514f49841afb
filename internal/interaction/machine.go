package interaction

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Faultbox/founder-galaxy/internal/logger"
	"github.com/Faultbox/founder-galaxy/internal/registry"
	"github.com/Faultbox/founder-galaxy/pkg/math"
)

// DefaultHoverDebounce is the minimum gap between accepted hover events.
const DefaultHoverDebounce = 50 * time.Millisecond

// Options configures a Machine.
type Options struct {
	HoverDebounce time.Duration
}

// Machine owns the interaction State. All mutation goes through its
// transition methods; subscribers receive a snapshot after each change.
type Machine struct {
	mu      sync.Mutex
	reg     *registry.Registry
	state   State
	hover   *rate.Limiter
	subs    map[int]func(State)
	nextSub int
	log     *zap.Logger
}

// New returns an idle Machine validating ids against reg. A zero debounce
// accepts every hover event.
func New(reg *registry.Registry, opts Options) *Machine {
	limit := rate.Inf
	if opts.HoverDebounce > 0 {
		limit = rate.Every(opts.HoverDebounce)
	}
	return &Machine{
		reg:   reg,
		hover: rate.NewLimiter(limit, 1),
		subs:  make(map[int]func(State)),
		log:   logger.Named("interaction"),
	}
}

// State returns the current snapshot.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn for state changes and returns its cancel func.
func (m *Machine) Subscribe(fn func(State)) (cancel func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Machine) checkID(id string) error {
	if !m.reg.Contains(id) {
		return fmt.Errorf("%w: %q", ErrUnknownPOI, id)
	}
	return nil
}

// update applies fn under the lock and notifies subscribers afterwards.
func (m *Machine) update(fn func(*State)) State {
	m.mu.Lock()
	fn(&m.state)
	snapshot := m.state
	subs := make([]func(State), 0, len(m.subs))
	for _, s := range m.subs {
		subs = append(subs, s)
	}
	m.mu.Unlock()

	for _, s := range subs {
		s(snapshot)
	}
	return snapshot
}

// PointerOver hovers id unless another hover was accepted within the
// debounce window, in which case the event is dropped and accepted is false.
func (m *Machine) PointerOver(id string, now time.Time) (accepted bool, err error) {
	if err := m.checkID(id); err != nil {
		return false, err
	}
	if !m.hover.AllowN(now, 1) {
		m.log.Debug("hover debounced", zap.String("id", id))
		return false, nil
	}
	m.update(func(s *State) {
		s.HoveredID = id
		s.IsHovering = true
	})
	return true, nil
}

// PointerOut clears the hover immediately.
func (m *Machine) PointerOut() {
	m.update(func(s *State) {
		s.HoveredID = ""
		s.IsHovering = false
	})
}

// Click selects id, replacing any previous selection.
func (m *Machine) Click(id string) error {
	if err := m.checkID(id); err != nil {
		return err
	}
	m.update(func(s *State) {
		s.SelectedID = id
	})
	m.log.Debug("selected", zap.String("id", id))
	return nil
}

// CloseSelection clears the selection. Hover is untouched.
func (m *Machine) CloseSelection() {
	m.update(func(s *State) {
		s.SelectedID = ""
	})
}

// PointerMove stores the pointer position converted from client pixels to
// normalized device coordinates.
func (m *Machine) PointerMove(clientX, clientY, width, height float64) math.Vec2 {
	ndc := math.ScreenToNDC(clientX, clientY, width, height)
	m.SetPointer(ndc)
	return ndc
}

// SetPointer stores a pointer position already in normalized device
// coordinates.
func (m *Machine) SetPointer(ndc math.Vec2) {
	m.update(func(s *State) {
		s.Pointer = ndc
	})
}

// Selected resolves the selected id to its point of interest.
func (m *Machine) Selected() (registry.PointOfInterest, bool) {
	id := m.State().SelectedID
	if id == "" {
		return registry.PointOfInterest{}, false
	}
	return m.reg.Lookup(id)
}

// Hovered resolves the hovered id to its point of interest.
func (m *Machine) Hovered() (registry.PointOfInterest, bool) {
	id := m.State().HoveredID
	if id == "" {
		return registry.PointOfInterest{}, false
	}
	return m.reg.Lookup(id)
}
