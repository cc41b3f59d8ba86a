package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
// Three platforms are stacked 150 units apart above the ground, each
// travelling between x=100 and x=400.
func DefaultPlatformerConfig() PlatformerConfig {
	layout := make([]PlatformSpawn, 0, 3)
	for i := 0; i < 3; i++ {
		layout = append(layout, PlatformSpawn{
			X:         100,
			Y:         600 - 100 - float64(i)*150,
			TravelMin: 100,
			TravelMax: 400,
		})
	}

	return PlatformerConfig{
		World: WorldConfig{
			Width:        800,
			Height:       600,
			GroundHeight: 20,
		},
		Physics: PhysicsConfig{
			GravityX: 0,
			GravityY: 200.81,
		},
		Player: PlayerConfig{
			Size:        30,
			Density:     1,
			Restitution: 0,
			JumpImpulse: 100000,
			MoveSpeed:   100,
			SpawnX:      400,
			SpawnY:      300,
		},
		Platforms: PlatformsConfig{
			Width:  100,
			Height: 20,
			Speed:  500,
			Layout: layout,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultPlatformerYAML
}
