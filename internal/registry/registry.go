// Package registry holds the fixed set of points of interest rendered as planets.
package registry

import (
	"errors"
	"fmt"
	gomath "math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/multierr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Faultbox/founder-galaxy/pkg/math"
)

// DefaultExclusionRadius is the planet zone used when an entry does not set one.
const DefaultExclusionRadius = 10

var (
	// ErrDuplicateID is returned when two entries share an id.
	ErrDuplicateID = errors.New("duplicate point of interest id")
	// ErrUnknownCategory is returned for a category name that has no planet look.
	ErrUnknownCategory = errors.New("unknown category")
)

// Category selects a planet's visual treatment.
type Category int

const (
	CategoryMystery Category = iota
	CategoryEarth
	CategorySaturn
	CategoryWugaTech
)

var categoryNames = map[Category]string{
	CategoryMystery:  "mystery",
	CategoryEarth:    "earth",
	CategorySaturn:   "saturn",
	CategoryWugaTech: "wugatech",
}

var titleCaser = cases.Title(language.English)

// String returns the lowercase wire name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Label returns a display label for UI collaborators.
func (c Category) Label() string {
	if c == CategoryWugaTech {
		return "WugaTech"
	}
	return titleCaser.String(c.String())
}

// ParseCategory resolves a case-insensitive category name.
func ParseCategory(s string) (Category, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for c, name := range categoryNames {
		if name == want {
			return c, nil
		}
	}
	return CategoryMystery, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Categories lists every category in declaration order.
func Categories() []Category {
	return []Category{CategoryMystery, CategoryEarth, CategorySaturn, CategoryWugaTech}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Links holds the outbound links shown in the detail modal.
type Links struct {
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// PointOfInterest is a named entity anchored at a fixed position.
type PointOfInterest struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Company         string         `json:"company"`
	Description     string         `json:"description"`
	Position        math.Vec3      `json:"position"`
	ExclusionRadius float64        `json:"exclusionRadius"`
	Category        Category       `json:"category"`
	Accent          colorful.Color `json:"-"`
	Scale           float64        `json:"scale"`
	Links           Links          `json:"links"`
}

// AccentHex returns the accent color as #rrggbb.
func (p PointOfInterest) AccentHex() string {
	return p.Accent.Hex()
}

// Contains reports whether pos lies strictly inside the exclusion zone.
func (p PointOfInterest) Contains(pos math.Vec3) bool {
	return pos.DistanceSq(p.Position) < p.ExclusionRadius*p.ExclusionRadius
}

// Registry is an ordered, read-only set of points of interest.
type Registry struct {
	entries []PointOfInterest
	index   map[string]int
}

// New validates entries and builds a registry. Every problem is reported.
func New(entries ...PointOfInterest) (*Registry, error) {
	r := &Registry{
		entries: make([]PointOfInterest, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	var err error
	for i, e := range entries {
		if e.ID == "" {
			err = multierr.Append(err, fmt.Errorf("entry %d: empty id", i))
			continue
		}
		if _, dup := r.index[e.ID]; dup {
			err = multierr.Append(err, fmt.Errorf("entry %d: %w: %s", i, ErrDuplicateID, e.ID))
			continue
		}
		if e.ExclusionRadius < 0 || gomath.IsNaN(e.ExclusionRadius) || gomath.IsInf(e.ExclusionRadius, 0) {
			err = multierr.Append(err, fmt.Errorf("%s: exclusion radius must be finite and >= 0, got %v", e.ID, e.ExclusionRadius))
		}
		if !(e.Scale > 0) || gomath.IsInf(e.Scale, 0) {
			err = multierr.Append(err, fmt.Errorf("%s: scale must be finite and > 0, got %v", e.ID, e.Scale))
		}
		r.index[e.ID] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Empty returns a registry with no entries.
func Empty() *Registry {
	return &Registry{index: map[string]int{}}
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// All returns a copy of the entries in registration order.
func (r *Registry) All() []PointOfInterest {
	if r == nil {
		return nil
	}
	out := make([]PointOfInterest, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup returns the entry with the given id.
func (r *Registry) Lookup(id string) (PointOfInterest, bool) {
	if r == nil {
		return PointOfInterest{}, false
	}
	i, ok := r.index[id]
	if !ok {
		return PointOfInterest{}, false
	}
	return r.entries[i], true
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id string) bool {
	_, ok := r.Lookup(id)
	return ok
}

// Excludes reports whether pos falls inside any entry's exclusion zone.
func (r *Registry) Excludes(pos math.Vec3) bool {
	if r == nil {
		return false
	}
	for i := range r.entries {
		if r.entries[i].Contains(pos) {
			return true
		}
	}
	return false
}
