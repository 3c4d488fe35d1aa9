package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the search path.
const ConfigFile = "lander.yaml"

// Load loads the lander configuration.
// Search order: customPath -> ~/.moonlander/configs/lander.yaml -> ./configs/lander.yaml -> embedded default
//
// Files are decoded on top of DefaultLanderConfig, so a file only needs the
// keys it overrides.
func Load(customPath string) (LanderConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return LanderConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return LanderConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultLanderYAML)
	if err != nil {
		return DefaultLanderConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the default configuration.
func Parse(data []byte) (LanderConfig, error) {
	cfg := DefaultLanderConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LanderConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".moonlander", "configs", filename)
}

// Validate reports every field that would make the simulation ill-defined.
// The returned error joins one error per offending field.
func (c LanderConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %g", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %g", name, v))
		}
	}

	positive("world.width", float64(c.World.Width))
	positive("world.height", c.World.Height)
	nonNegative("world.terrain_seeds", float64(c.World.TerrainSeeds))
	nonNegative("world.terrain_amplitude", c.World.TerrainAmplitude)
	nonNegative("world.terrain_sigma", c.World.TerrainSigma)

	nonNegative("physics.gravity", c.Physics.Gravity)
	nonNegative("physics.thrust", c.Physics.Thrust)
	nonNegative("physics.rotation_speed", c.Physics.RotationSpeed)
	positive("physics.speedup", c.Physics.Speedup)

	nonNegative("fuel.capacity", c.Fuel.Capacity)
	nonNegative("fuel.main_burn_rate", c.Fuel.MainBurnRate)
	nonNegative("fuel.rotation_burn_rate", c.Fuel.RotationBurnRate)

	positive("landing.avatar_width", c.Landing.AvatarWidth)
	positive("landing.avatar_height", c.Landing.AvatarHeight)
	nonNegative("landing.max_speed", c.Landing.MaxSpeed)
	nonNegative("landing.max_angle", c.Landing.MaxAngle)
	nonNegative("landing.flatness", c.Landing.Flatness)

	nonNegative("scoring.site_tolerance", c.Scoring.SiteTolerance)
	nonNegative("collisions.radius", c.Collisions.Radius)

	positive("asteroids.min_delay", c.Asteroids.MinDelay)
	if c.Asteroids.InitialDelay < c.Asteroids.MinDelay {
		errs = append(errs, fmt.Errorf("asteroids.initial_delay (%g) must be >= asteroids.min_delay (%g)",
			c.Asteroids.InitialDelay, c.Asteroids.MinDelay))
	}
	positive("asteroids.size", c.Asteroids.Size)
	nonNegative("asteroids.speed_min", c.Asteroids.SpeedMin)
	if c.Asteroids.SpeedMax < c.Asteroids.SpeedMin {
		errs = append(errs, fmt.Errorf("asteroids.speed_max (%g) must be >= asteroids.speed_min (%g)",
			c.Asteroids.SpeedMax, c.Asteroids.SpeedMin))
	}
	nonNegative("asteroids.hit_fraction", c.Asteroids.HitFraction)
	nonNegative("asteroids.crater_radius", c.Asteroids.CraterRadius)
	nonNegative("asteroids.crater_scaling", c.Asteroids.CraterScaling)

	positive("match.time_limit", c.Match.TimeLimit)
	nonNegative("match.exit_delay", c.Match.ExitDelay)
	nonNegative("match.bot_timeout", c.Match.BotTimeout)

	return errors.Join(errs...)
}
