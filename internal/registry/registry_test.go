package registry

import (
	"errors"
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/multierr"

	"github.com/Faultbox/founder-galaxy/pkg/math"
)

func TestDefault(t *testing.T) {
	r := Default()

	if r.Len() != 6 {
		t.Fatalf("expected 6 founders, got %d", r.Len())
	}

	for _, p := range r.All() {
		if p.ExclusionRadius != DefaultExclusionRadius {
			t.Errorf("%s: exclusion radius %v, want %v", p.ID, p.ExclusionRadius, DefaultExclusionRadius)
		}
		// Founders sit on shells between 13 and 19 units from the origin.
		if d := p.Position.Length(); d < 12.9 || d > 19.1 {
			t.Errorf("%s: distance from origin %v out of range", p.ID, d)
		}
	}

	earth, ok := r.Lookup("founder-6")
	if !ok {
		t.Fatal("founder-6 missing")
	}
	if earth.Category != CategoryEarth {
		t.Errorf("founder-6 category = %v, want earth", earth.Category)
	}
	if earth.AccentHex() != "#4a90e2" {
		t.Errorf("founder-6 accent = %s, want #4a90e2", earth.AccentHex())
	}
}

func TestLookupAndContains(t *testing.T) {
	r := Default()

	if !r.Contains("founder-2") {
		t.Error("expected founder-2 to be registered")
	}
	if r.Contains("founder-99") {
		t.Error("founder-99 should not be registered")
	}
	if _, ok := r.Lookup(""); ok {
		t.Error("empty id should not resolve")
	}

	var nilReg *Registry
	if nilReg.Contains("founder-1") || nilReg.Len() != 0 {
		t.Error("nil registry should behave as empty")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	r := Default()
	all := r.All()
	all[0].ID = "mutated"

	if _, ok := r.Lookup("founder-1"); !ok {
		t.Error("mutating All() result must not affect the registry")
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New(
		PointOfInterest{ID: "a", Scale: 1},
		PointOfInterest{ID: "a", Scale: 1},
		PointOfInterest{ID: "", Scale: 1},
		PointOfInterest{ID: "b", Scale: 0, ExclusionRadius: -1},
	)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID in %v", err)
	}
	if got := len(multierr.Errors(err)); got != 4 {
		t.Errorf("expected 4 errors, got %d: %v", got, err)
	}
}

func TestNewRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name  string
		entry PointOfInterest
	}{
		{"nan radius", PointOfInterest{ID: "a", Scale: 1, ExclusionRadius: gomath.NaN()}},
		{"inf radius", PointOfInterest{ID: "a", Scale: 1, ExclusionRadius: gomath.Inf(1)}},
		{"nan scale", PointOfInterest{ID: "a", Scale: gomath.NaN()}},
		{"inf scale", PointOfInterest{ID: "a", Scale: gomath.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.entry); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestExcludes(t *testing.T) {
	r, err := New(PointOfInterest{ID: "f1", Position: math.Vec3{}, ExclusionRadius: 10, Scale: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name string
		pos  math.Vec3
		want bool
	}{
		{"origin", math.Vec3{}, true},
		{"inside", math.Vec3{X: 9.99}, true},
		{"on boundary", math.Vec3{X: 10}, false},
		{"outside", math.Vec3{X: 6, Y: 6, Z: 6}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Excludes(tt.pos); got != tt.want {
				t.Errorf("Excludes(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestCategoryText(t *testing.T) {
	for _, c := range Categories() {
		text, _ := c.MarshalText()
		var back Category
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s): %v", text, err)
		}
		if back != c {
			t.Errorf("category %v decoded as %v", c, back)
		}
	}

	if _, err := ParseCategory("jupiter"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
	if c, err := ParseCategory(" Saturn "); err != nil || c != CategorySaturn {
		t.Errorf("ParseCategory should be case-insensitive, got %v, %v", c, err)
	}
}

func TestCategoryLabel(t *testing.T) {
	tests := map[Category]string{
		CategoryMystery:  "Mystery",
		CategoryEarth:    "Earth",
		CategorySaturn:   "Saturn",
		CategoryWugaTech: "WugaTech",
	}
	for c, want := range tests {
		if got := c.Label(); got != want {
			t.Errorf("%v.Label() = %q, want %q", c, got, want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.yaml")
	doc := `
points:
  - id: alpha
    name: Alpha
    position: [1, 2, 3]
    category: saturn
    accent: "#ff8800"
    scale: 1.5
    links:
      website: https://alpha.example
  - id: beta
    position: [40, 0, 0]
    exclusion_radius: 4
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", r.Len())
	}

	alpha, _ := r.Lookup("alpha")
	if alpha.Category != CategorySaturn || alpha.AccentHex() != "#ff8800" || alpha.Scale != 1.5 {
		t.Errorf("unexpected alpha: %+v", alpha)
	}
	if alpha.ExclusionRadius != DefaultExclusionRadius {
		t.Errorf("alpha should default exclusion radius, got %v", alpha.ExclusionRadius)
	}
	if alpha.Links.Website != "https://alpha.example" {
		t.Errorf("alpha website = %q", alpha.Links.Website)
	}

	beta, _ := r.Lookup("beta")
	if beta.ExclusionRadius != 4 || beta.Scale != 1 || beta.Category != CategoryMystery {
		t.Errorf("unexpected beta: %+v", beta)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "points: [unclosed"},
		{"bad category", "points:\n  - id: a\n    category: jupiter\n"},
		{"bad accent", "points:\n  - id: a\n    accent: notacolor\n"},
		{"duplicate", "points:\n  - id: a\n  - id: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
