package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

// envPrefix namespaces every environment override.
const envPrefix = "GALAXY_"

// loadDotEnv loads a .env file into the process environment when present.
// Variables that are already set win over the file.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Load(path)
}

// applyEnv applies GALAXY_* environment overrides. Malformed values are
// reported together; well-formed ones are still applied.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var err error

	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			f, perr := strconv.ParseFloat(v, 64)
			if perr != nil {
				err = multierr.Append(err, fmt.Errorf("%s%s: %w", envPrefix, key, perr))
				return
			}
			*dst = f
		}
	}

	if v, ok := lookup(envPrefix + "SEED"); ok && v != "" {
		seed, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("%sSEED: %w", envPrefix, perr))
		} else {
			cfg.Galaxy.Seed = seed
		}
	}
	float("RADIUS", &cfg.Galaxy.Radius)
	float("FPS_THRESHOLD", &cfg.Quality.FPSThreshold)
	str("QUALITY_TIER", &cfg.Quality.Tier)
	str("REGISTRY", &cfg.Registry.Path)
	str("SERVER_ADDR", &cfg.Server.Addr)
	str("LOG_LEVEL", &cfg.Logging.Level)
	str("LOG_FORMAT", &cfg.Logging.Format)
	str("LOG_FILE", &cfg.Logging.LogFile)

	if v, ok := lookup(envPrefix + "ALLOWED_ORIGINS"); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Server.AllowedOrigins = origins
	}

	return err
}
