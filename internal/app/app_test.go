package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/founder-galaxy/internal/config"
	"github.com/Faultbox/founder-galaxy/internal/galaxy"
	"github.com/Faultbox/founder-galaxy/internal/quality"
)

func lowEndConfig() *config.Config {
	cfg := config.Default()
	cfg.Galaxy.Seed = 42
	cfg.Quality.Tier = "low-end"
	return cfg
}

func TestNewBuildsSession(t *testing.T) {
	a, err := New(lowEndConfig(), quality.Device{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if a.Quality.Tier() != quality.TierLowEnd {
		t.Errorf("expected forced low-end tier, got %v", a.Quality.Tier())
	}
	field := a.Session.Field()
	if field.Seed != 42 {
		t.Errorf("expected seed 42, got %d", field.Seed)
	}
	if len(field.Stars) == 0 {
		t.Error("expected stars in the first field")
	}
	if a.Registry.Len() != 6 {
		t.Errorf("expected 6 built-in entries, got %d", a.Registry.Len())
	}
}

func TestNewConstellationMode(t *testing.T) {
	cfg := lowEndConfig()
	cfg.Viewer.Mode = "constellation"

	a, err := New(cfg, quality.Device{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if a.Session.Mode() != galaxy.ModeConstellation {
		t.Errorf("expected constellation mode, got %v", a.Session.Mode())
	}
}

func TestQualityOptions(t *testing.T) {
	tests := []struct {
		tier    string
		want    *quality.Tier
		wantErr bool
	}{
		{tier: "", want: nil},
		{tier: "mobile", want: ptr(quality.TierMobile)},
		{tier: "desktop", want: ptr(quality.TierDesktop)},
		{tier: "console", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			cfg := config.Default().Quality
			cfg.Tier = tt.tier
			opts, err := QualityOptions(cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			switch {
			case tt.want == nil && opts.ForceTier != nil:
				t.Errorf("expected no forced tier, got %v", *opts.ForceTier)
			case tt.want != nil && (opts.ForceTier == nil || *opts.ForceTier != *tt.want):
				t.Errorf("expected forced tier %v, got %v", *tt.want, opts.ForceTier)
			}
			if opts.StarFloor != cfg.StarFloor {
				t.Errorf("expected star floor %d, got %d", cfg.StarFloor, opts.StarFloor)
			}
		})
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := config.Default().Galaxy
	cfg.Radius = 250
	cfg.ArmCount = 5
	cfg.Nebulae = false

	opts := EngineOptions(cfg)
	if opts.Radius != 250 {
		t.Errorf("expected radius 250, got %v", opts.Radius)
	}
	if opts.Volume.ArmCount != 5 {
		t.Errorf("expected 5 arms, got %d", opts.Volume.ArmCount)
	}
	if opts.Nebulae {
		t.Error("expected nebulae disabled")
	}
	if len(opts.Regions) == 0 {
		t.Error("expected default nebula regions to be kept")
	}
}

func TestRegistryFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "points.yaml")
	doc := `points:
  - id: solo
    name: Solo
    position: [10, 0, 0]
    category: earth
    accent: "#336699"
    scale: 2
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := Registry(config.RegistryConfig{Path: path})
	if err != nil {
		t.Fatalf("Registry failed: %v", err)
	}
	if reg.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", reg.Len())
	}

	if _, err := Registry(config.RegistryConfig{Path: filepath.Join(dir, "missing.yaml")}); err == nil {
		t.Error("expected error for a missing registry file")
	}
}

func ptr[T any](v T) *T { return &v }
