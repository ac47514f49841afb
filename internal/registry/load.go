package registry

import (
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/founder-galaxy/pkg/math"
)

// fileEntry is the YAML shape of one point of interest.
type fileEntry struct {
	ID              string     `yaml:"id"`
	Name            string     `yaml:"name"`
	Company         string     `yaml:"company"`
	Description     string     `yaml:"description"`
	Position        [3]float64 `yaml:"position"`
	ExclusionRadius *float64   `yaml:"exclusion_radius"`
	Category        string     `yaml:"category"`
	Accent          string     `yaml:"accent"`
	Scale           float64    `yaml:"scale"`
	Links           struct {
		Website  string `yaml:"website"`
		LinkedIn string `yaml:"linkedin"`
		Twitter  string `yaml:"twitter"`
	} `yaml:"links"`
}

type fileDoc struct {
	Points []fileEntry `yaml:"points"`
}

// LoadFile reads a registry from a YAML file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}
	return r, nil
}

// Parse decodes a YAML registry document.
func Parse(data []byte) (*Registry, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding registry: %w", err)
	}

	entries := make([]PointOfInterest, 0, len(doc.Points))
	for _, fe := range doc.Points {
		category, err := ParseCategory(fe.Category)
		if fe.Category == "" {
			category, err = CategoryMystery, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fe.ID, err)
		}

		accent := colorful.Color{R: 0.4, G: 0.4, B: 0.4}
		if fe.Accent != "" {
			accent, err = colorful.Hex(fe.Accent)
			if err != nil {
				return nil, fmt.Errorf("%s: accent %q: %w", fe.ID, fe.Accent, err)
			}
		}

		exclusion := float64(DefaultExclusionRadius)
		if fe.ExclusionRadius != nil {
			exclusion = *fe.ExclusionRadius
		}
		scale := fe.Scale
		if scale == 0 {
			scale = 1
		}

		entries = append(entries, PointOfInterest{
			ID:              fe.ID,
			Name:            fe.Name,
			Company:         fe.Company,
			Description:     fe.Description,
			Position:        math.Vec3{X: fe.Position[0], Y: fe.Position[1], Z: fe.Position[2]},
			ExclusionRadius: exclusion,
			Category:        category,
			Accent:          accent,
			Scale:           scale,
			Links: Links{
				Website:  fe.Links.Website,
				LinkedIn: fe.Links.LinkedIn,
				Twitter:  fe.Links.Twitter,
			},
		})
	}
	return New(entries...)
}
