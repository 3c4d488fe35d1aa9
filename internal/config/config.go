// Package config provides YAML-based configuration loading, presets and
// validation for the lander simulation.
//
// A LanderConfig is built once (defaults, file, preset, flags) and then passed
// by value into every simulation component; nothing reads configuration from
// a global.
package config

// LanderConfig contains every tunable of the simulation core.
type LanderConfig struct {
	World      WorldConfig     `yaml:"world"`
	Physics    PhysicsConfig   `yaml:"physics"`
	Fuel       FuelConfig      `yaml:"fuel"`
	Landing    LandingConfig   `yaml:"landing"`
	Scoring    ScoringConfig   `yaml:"scoring"`
	Collisions CollisionConfig `yaml:"collisions"`
	Asteroids  AsteroidConfig  `yaml:"asteroids"`
	Match      MatchConfig     `yaml:"match"`
}

// WorldConfig defines the play area and terrain generation.
type WorldConfig struct {
	Width            int     `yaml:"width"`             // Periodic x-domain, in columns
	Height           float64 `yaml:"height"`            // Top of the play area
	TerrainSeeds     int     `yaml:"terrain_seeds"`     // Impulse points before smoothing
	TerrainAmplitude float64 `yaml:"terrain_amplitude"` // Max impulse magnitude
	TerrainSigma     float64 `yaml:"terrain_sigma"`     // Low-pass spatial scale
}

// PhysicsConfig defines lander dynamics.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`        // Downward acceleration (positive number)
	Thrust        float64 `yaml:"thrust"`         // Main engine acceleration
	RotationSpeed float64 `yaml:"rotation_speed"` // Degrees per second
	Speedup       float64 `yaml:"speedup"`        // Multiplier applied to every dt
	SpawnVX       float64 `yaml:"spawn_vx"`
	SpawnVY       float64 `yaml:"spawn_vy"`
	SpawnAltitude float64 `yaml:"spawn_altitude"` // Distance below the top of the play area
}

// FuelConfig defines tank size and burn rates (units per second).
type FuelConfig struct {
	Capacity         float64 `yaml:"capacity"`
	MainBurnRate     float64 `yaml:"main_burn_rate"`
	RotationBurnRate float64 `yaml:"rotation_burn_rate"`
}

// LandingConfig defines the lander footprint and touchdown limits.
type LandingConfig struct {
	AvatarWidth  float64 `yaml:"avatar_width"`
	AvatarHeight float64 `yaml:"avatar_height"`
	MaxSpeed     float64 `yaml:"max_speed"`
	MaxAngle     float64 `yaml:"max_angle"` // Degrees from upright
	Flatness     float64 `yaml:"flatness"`  // Footprint samples may sit this far below the lander floor
}

// ScoringConfig defines the landing score components.
type ScoringConfig struct {
	LandingBonus  float64 `yaml:"landing_bonus"`
	SiteBonus     float64 `yaml:"site_bonus"`     // Awarded in full for a site no wider than the footprint
	TimeBonus     float64 `yaml:"time_bonus"`     // Scaled by remaining time fraction
	FuelBonus     float64 `yaml:"fuel_bonus"`     // Scaled by remaining fuel fraction
	SiteTolerance float64 `yaml:"site_tolerance"` // Height tolerance when measuring site width
}

// CollisionConfig defines player-player and player-asteroid interaction.
type CollisionConfig struct {
	Radius    float64 `yaml:"radius"`
	Players   bool    `yaml:"players"`
	Asteroids bool    `yaml:"asteroids"`
}

// AsteroidConfig defines the asteroid hazard.
type AsteroidConfig struct {
	InitialDelay  float64 `yaml:"initial_delay"` // Seconds between spawns at match start
	MinDelay      float64 `yaml:"min_delay"`     // Seconds between spawns at the time limit
	Size          float64 `yaml:"size"`
	SpeedMin      float64 `yaml:"speed_min"`
	SpeedMax      float64 `yaml:"speed_max"`
	HeadingSpread float64 `yaml:"heading_spread"` // Degrees either side of straight down
	HitFraction   float64 `yaml:"hit_fraction"`   // Fraction of size around the tip that hits players
	CraterRadius  float64 `yaml:"crater_radius"`
	CraterScaling float64 `yaml:"crater_scaling"`
}

// MatchConfig defines match lifecycle and bot isolation.
type MatchConfig struct {
	TimeLimit  float64 `yaml:"time_limit"`  // Seconds
	ExitDelay  float64 `yaml:"exit_delay"`  // Seconds spent in the ending state
	SafeMode   bool    `yaml:"safe_mode"`   // Suppress bot faults instead of propagating
	BotTimeout float64 `yaml:"bot_timeout"` // Per-call budget in seconds, 0 disables
}

// Preset represents a named gameplay preset.
type Preset string

const (
	PresetCasual   Preset = "casual"
	PresetStandard Preset = "standard"
	PresetHardcore Preset = "hardcore"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) Preset {
	switch Preset(s) {
	case PresetCasual, PresetStandard, PresetHardcore:
		return Preset(s)
	default:
		return ""
	}
}

// ApplyPreset modifies the config based on a preset.
func ApplyPreset(cfg *LanderConfig, preset Preset) {
	switch preset {
	case PresetCasual:
		cfg.Landing.MaxSpeed *= 2
		cfg.Landing.MaxAngle *= 2
		cfg.Collisions.Asteroids = false
		cfg.Asteroids.CraterScaling = 1
	case PresetHardcore:
		cfg.Landing.MaxSpeed *= 0.6
		cfg.Asteroids.MinDelay /= 2
		cfg.Asteroids.InitialDelay /= 2
		cfg.Asteroids.CraterScaling = 2
		cfg.Fuel.Capacity *= 0.5
	}
}
