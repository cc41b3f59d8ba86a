// Package config provides YAML-based game configuration loading and
// preset management for the platformer.
package config

// PlatformerConfig contains all configuration for the platformer.
type PlatformerConfig struct {
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Platforms PlatformsConfig `yaml:"platforms"`
	Script    ScriptConfig    `yaml:"script"`
}

// WorldConfig defines the simulated area. World units are pixels of the
// reference viewport; the renderer scales them to terminal cells.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// PhysicsConfig defines global physics parameters.
type PhysicsConfig struct {
	GravityX float64 `yaml:"gravity_x"`
	GravityY float64 `yaml:"gravity_y"` // Positive = down
}

// PlayerConfig defines the player actor.
type PlayerConfig struct {
	Size        float64 `yaml:"size"`
	Density     float64 `yaml:"density"`
	Restitution float64 `yaml:"restitution"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	MoveSpeed   float64 `yaml:"move_speed"`
	SpawnX      float64 `yaml:"spawn_x"`
	SpawnY      float64 `yaml:"spawn_y"`
}

// PlatformsConfig defines the shared platform shape and the platform layout.
type PlatformsConfig struct {
	Width  float64         `yaml:"width"`
	Height float64         `yaml:"height"`
	Speed  float64         `yaml:"speed"`
	Layout []PlatformSpawn `yaml:"layout"`
}

// PlatformSpawn places one platform and its travel bounds.
type PlatformSpawn struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	TravelMin float64 `yaml:"travel_min"`
	TravelMax float64 `yaml:"travel_max"`
}

// ScriptConfig points at the per-frame HUD script.
// An empty path selects the embedded default script.
type ScriptConfig struct {
	Path string `yaml:"path"`
}

// Preset represents a named speed preset.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)
