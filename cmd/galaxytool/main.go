// galaxytool is a CLI utility for inspecting generated galaxies, device
// tiers and planet textures.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/founder-galaxy/internal/app"
	"github.com/Faultbox/founder-galaxy/internal/config"
	"github.com/Faultbox/founder-galaxy/internal/galaxy"
	"github.com/Faultbox/founder-galaxy/internal/quality"
	"github.com/Faultbox/founder-galaxy/internal/registry"
	"github.com/Faultbox/founder-galaxy/internal/texture"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "probe":
		cmdProbe(args)
	case "degrade":
		cmdDegrade(args)
	case "texture", "tex":
		cmdTexture(args)
	case "registry", "ls":
		cmdRegistry(args)
	case "init":
		cmdInit(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`galaxytool - founder galaxy utility

Usage:
  galaxytool <command> [options]

Commands:
  generate [-seed N] [-tier T] [-mode M] [-json]   Generate a field and print statistics
  probe                                            Classify this host into a quality tier
  degrade [-tier T] [-steps N]                     Print the quality ratchet sequence
  texture <category> <out.png> [-size N] [-kind K] Render a planet texture to PNG
  registry                                         List points of interest
  init [path]                                      Write the default config file

Every command accepts -config <galaxy.yaml>.

Examples:
  galaxytool generate -seed 42 -tier mobile
  galaxytool generate -seed 42 -mode constellation -json > field.json
  galaxytool texture earth earth.png -size 1024
  galaxytool texture saturn ring.png -kind ring`)
}

func loadConfig(path string) *config.Config {
	cfg, err := config.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func loadRegistry(cfg *config.Config) *registry.Registry {
	reg, err := app.Registry(cfg.Registry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return reg
}

func parseTier(s string) quality.Tier {
	if s == "" {
		return quality.Classify(quality.ProbeHost())
	}
	t, err := quality.ParseTier(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return t
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	seed := fs.Uint64("seed", 0, "Generation seed (0 = config value, then clock)")
	tierName := fs.String("tier", "", "Quality tier (default: probe this host)")
	modeName := fs.String("mode", "", "Scene mode (galaxy, constellation)")
	asJSON := fs.Bool("json", false, "Print the whole field as JSON")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	reg := loadRegistry(cfg)

	if *seed == 0 {
		*seed = cfg.Galaxy.Seed
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	if *modeName == "" {
		*modeName = cfg.Viewer.Mode
	}
	mode, err := galaxy.ParseMode(*modeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	tier := parseTier(*tierName)

	engine, err := galaxy.NewEngine(reg, app.EngineOptions(cfg.Galaxy))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	field, err := engine.Build(*seed, quality.Preset(tier), mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(field); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	rep := field.Report
	fmt.Printf("Seed:      %d\n", field.Seed)
	fmt.Printf("Mode:      %s\n", field.Mode)
	fmt.Printf("Tier:      %s\n", tier)
	fmt.Printf("Radius:    %.0f\n", field.Radius)
	fmt.Printf("Elapsed:   %v\n", elapsed.Round(time.Microsecond))
	fmt.Println()
	fmt.Printf("Stars:     %d / %d requested\n", rep.Stars, rep.Requested)
	fmt.Printf("Attempts:  %d (max %d)\n", rep.Attempts, rep.MaxAttempts)
	if rep.Exhausted {
		fmt.Println("           attempt budget exhausted")
	}
	fmt.Printf("Asteroids: %d (%d near points of interest, %d core belt)\n", rep.Asteroids, rep.NearPOI, rep.CoreBelt)

	if len(field.Nebulae) > 0 {
		fmt.Println()
		fmt.Println("Nebulae:")
		for _, cl := range field.Nebulae {
			var particles, dropped int
			for _, l := range cl.Layers {
				particles += len(l.Particles)
				dropped += l.Dropped
			}
			fmt.Printf("  %-12s %d layers, %d particles, %d dropped\n", cl.Region.Name, len(cl.Layers), particles, dropped)
		}
	}
	if field.Backdrop != nil {
		fmt.Println()
		fmt.Printf("Backdrop:  %d shell, %d dust, %d gas\n", len(field.Backdrop.Shell), len(field.Backdrop.Dust), len(field.Backdrop.Gas))
	}
}

func cmdProbe(args []string) {
	fs := flag.NewFlagSet("probe", flag.ExitOnError)
	userAgent := fs.String("ua", "", "Classify this user agent instead of the host")
	asJSON := fs.Bool("json", false, "Print as JSON")
	fs.Parse(args)

	device := quality.ProbeHost()
	device.UserAgent = *userAgent
	tier := quality.Classify(device)
	profile := quality.Preset(tier)

	if *asJSON {
		out := struct {
			Device  quality.Device  `json:"device"`
			Tier    quality.Tier    `json:"tier"`
			Profile quality.Profile `json:"profile"`
		}{device, tier, profile}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Cores:     %d\n", device.Cores)
	if device.MemoryGB > 0 {
		fmt.Printf("Memory:    %.1f GB\n", device.MemoryGB)
	} else {
		fmt.Println("Memory:    unknown")
	}
	fmt.Printf("Tier:      %s\n", tier)
	fmt.Println()
	printProfile(profile)
}

func cmdDegrade(args []string) {
	fs := flag.NewFlagSet("degrade", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	tierName := fs.String("tier", "desktop", "Starting tier")
	steps := fs.Int("steps", 8, "Number of ratchet steps")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	p := quality.Preset(parseTier(*tierName))
	fmt.Printf("%-5s %-6s %-8s %-6s %s\n", "step", "stars", "particle", "atmos", "lighting")
	for i := 0; i <= *steps; i++ {
		fmt.Printf("%-5d %-6d %-8s %-6t %t\n", i, p.StarCount, p.ParticleQuality, p.EnableAtmosphericEffects, p.EnableDynamicLighting)
		p = p.Degrade(cfg.Quality.DegradeFactor, cfg.Quality.StarFloor)
	}
}

func printProfile(p quality.Profile) {
	fmt.Printf("Stars:       %d\n", p.StarCount)
	fmt.Printf("Particles:   %s\n", p.ParticleQuality)
	fmt.Printf("Render:      %s\n", p.RenderQuality)
	fmt.Printf("Lighting:    %t\n", p.EnableDynamicLighting)
	fmt.Printf("Atmosphere:  %t\n", p.EnableAtmosphericEffects)
	fmt.Printf("Satellites:  %t\n", p.EnableSatellites)
}

func cmdTexture(args []string) {
	fs := flag.NewFlagSet("texture", flag.ExitOnError)
	size := fs.Int("size", texture.MasterSize, "Texture width in pixels")
	kindName := fs.String("kind", "surface", "Texture kind (surface, ring, star)")
	name := fs.String("name", "", "Planet name (seeds the pattern)")
	accent := fs.String("accent", "#4a90e2", "Accent color")

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: galaxytool texture <category> <out.png> [-size N] [-kind K] [-name S] [-accent #rrggbb]")
		os.Exit(1)
	}
	category, out := args[0], args[1]
	fs.Parse(args[2:])

	cat, err := registry.ParseCategory(category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	kind, err := texture.ParseKind(*kindName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	c, err := colorful.Hex(*accent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: accent: %v\n", err)
		os.Exit(1)
	}

	img, err := texture.NewCache().Get(texture.Key{
		Kind:     kind,
		Category: cat,
		Name:     *name,
		Accent:   c,
		Size:     *size,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := texture.EncodePNG(f, img); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	b := img.Bounds()
	fmt.Printf("Wrote %s (%s %s, %dx%d)\n", out, cat.Label(), kind, b.Dx(), b.Dy())
}

func cmdRegistry(args []string) {
	fs := flag.NewFlagSet("registry", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	reg := loadRegistry(loadConfig(*configPath))
	fmt.Printf("%-12s %-10s %-18s %-8s %-6s %s\n", "ID", "CATEGORY", "POSITION", "ACCENT", "SCALE", "NAME")
	for _, poi := range reg.All() {
		pos := fmt.Sprintf("%.0f,%.0f,%.0f", poi.Position.X, poi.Position.Y, poi.Position.Z)
		fmt.Printf("%-12s %-10s %-18s %-8s %-6.1f %s\n", poi.ID, poi.Category.Label(), pos, poi.AccentHex(), poi.Scale, poi.Name)
	}
	fmt.Printf("\n%d points of interest\n", reg.Len())
}

func cmdInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("f", false, "Overwrite an existing file")
	fs.Parse(args)

	path := filepath.Join(config.ConfigDir(), "galaxy.yaml")
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if _, err := os.Stat(path); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "Error: %s exists (use -f to overwrite)\n", path)
		os.Exit(1)
	}
	cfg := config.Default()
	save := cfg.Save
	if fs.NArg() > 0 {
		save = func() error { return cfg.SaveTo(path) }
	}
	if err := save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
