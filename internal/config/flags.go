package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagSeed   = flag.Uint64("seed", 0, "Generation seed (0 = random)")
	flagRadius = flag.Float64("radius", 0, "Galaxy radius")
	flagTier   = flag.String("tier", "", "Force a quality tier (low-end, mobile, desktop)")
	flagAddr   = flag.String("addr", "", "HTTP listen address")
	flagMode   = flag.String("mode", "", "Scene mode (galaxy, constellation)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != 0 {
		cfg.Galaxy.Seed = *flagSeed
	}
	if *flagRadius > 0 {
		cfg.Galaxy.Radius = *flagRadius
	}
	if *flagTier != "" {
		cfg.Quality.Tier = *flagTier
	}
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
	if *flagMode != "" {
		cfg.Viewer.Mode = *flagMode
	}
}
