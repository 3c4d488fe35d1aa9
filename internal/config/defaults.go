package config

import (
	_ "embed"
)

//go:embed defaults/lander.yaml
var defaultLanderYAML []byte

// DefaultLanderConfig returns the default lander configuration.
func DefaultLanderConfig() LanderConfig {
	return LanderConfig{
		World: WorldConfig{
			Width:            1720,
			Height:           1080,
			TerrainSeeds:     100,
			TerrainAmplitude: 10000,
			TerrainSigma:     30,
		},
		Physics: PhysicsConfig{
			Gravity:       1.62,
			Thrust:        4.86,
			RotationSpeed: 15,
			Speedup:       1,
			SpawnVX:       40,
			SpawnVY:       0,
			SpawnAltitude: 100,
		},
		Fuel: FuelConfig{
			Capacity:         3000,
			MainBurnRate:     5,
			RotationBurnRate: 2,
		},
		Landing: LandingConfig{
			AvatarWidth:  25,
			AvatarHeight: 25,
			MaxSpeed:     5,
			MaxAngle:     5,
			Flatness:     1,
		},
		Scoring: ScoringConfig{
			LandingBonus:  100,
			SiteBonus:     100,
			TimeBonus:     100,
			FuelBonus:     100,
			SiteTolerance: 1,
		},
		Collisions: CollisionConfig{
			Radius:    25,
			Players:   true,
			Asteroids: true,
		},
		Asteroids: AsteroidConfig{
			InitialDelay:  5,
			MinDelay:      1,
			Size:          50,
			SpeedMin:      50,
			SpeedMax:      150,
			HeadingSpread: 45,
			HitFraction:   0.5,
			CraterRadius:  11,
			CraterScaling: 1,
		},
		Match: MatchConfig{
			TimeLimit:  300,
			ExitDelay:  1,
			SafeMode:   true,
			BotTimeout: 0,
		},
	}
}
