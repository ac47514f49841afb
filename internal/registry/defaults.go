package registry

import (
	gomath "math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/founder-galaxy/pkg/math"
)

const mysteryBlurb = "Mysterious founder working on something amazing. Stay tuned for the big reveal!"

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in founder set.
func Default() *Registry {
	r, err := New(
		PointOfInterest{
			ID:              "founder-1",
			Name:            "???",
			Company:         "???",
			Description:     mysteryBlurb,
			Position:        math.Spherical(16, 0.8, gomath.Pi/3),
			ExclusionRadius: DefaultExclusionRadius,
			Category:        CategoryMystery,
			Accent:          mustHex("#666666"),
			Scale:           1.2,
		},
		PointOfInterest{
			ID:              "founder-2",
			Name:            "Nick Sabamehr",
			Company:         "ParentZ",
			Description:     "Building the future of family connections and parenting support through innovative technology solutions.",
			Position:        math.Spherical(13, gomath.Pi/2.2, gomath.Pi/2.1),
			ExclusionRadius: DefaultExclusionRadius,
			Category:        CategorySaturn,
			Accent:          mustHex("#daa520"),
			Scale:           1.4,
			Links: Links{
				Website:  "https://d1cgzledorbwj9.cloudfront.net/login",
				LinkedIn: "https://www.linkedin.com/in/sabamehrm/",
			},
		},
		PointOfInterest{
			ID:              "founder-3",
			Name:            "Wuga Tech",
			Company:         "Wuga Tech",
			Description:     "Revolutionary technology solutions with advanced transport systems and cutting-edge infrastructure.",
			Position:        math.Spherical(19, gomath.Pi*0.9, gomath.Pi/4.2),
			ExclusionRadius: DefaultExclusionRadius,
			Category:        CategoryWugaTech,
			Accent:          mustHex("#23a6ff"),
			Scale:           1.3,
		},
		PointOfInterest{
			ID:              "founder-4",
			Name:            "???",
			Company:         "???",
			Description:     mysteryBlurb,
			Position:        math.Spherical(15, 3*gomath.Pi/2.1, 2*gomath.Pi/2.8),
			ExclusionRadius: DefaultExclusionRadius,
			Category:        CategoryMystery,
			Accent:          mustHex("#666666"),
			Scale:           1.0,
		},
		PointOfInterest{
			ID:              "founder-5",
			Name:            "???",
			Company:         "???",
			Description:     mysteryBlurb,
			Position:        math.Spherical(17, gomath.Pi/3.8, 5*gomath.Pi/5.5),
			ExclusionRadius: DefaultExclusionRadius,
			Category:        CategoryMystery,
			Accent:          mustHex("#666666"),
			Scale:           0.8,
		},
		PointOfInterest{
			ID:              "founder-6",
			Name:            "Tomiwa Olajide",
			Company:         "MissionSync",
			Description:     "Building AI-powered solutions to revolutionize project management and team collaboration.",
			Position:        math.Spherical(14, gomath.Pi/6, gomath.Pi/1.8),
			ExclusionRadius: DefaultExclusionRadius,
			Category:        CategoryEarth,
			Accent:          mustHex("#4a90e2"),
			Scale:           1.2,
			Links: Links{
				Website:  "https://mission-sync.com/",
				LinkedIn: "https://www.linkedin.com/in/tomiwaolajide/",
			},
		},
	)
	if err != nil {
		panic("registry: built-in set is invalid: " + err.Error())
	}
	return r
}
