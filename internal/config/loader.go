package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// LoadPlatformer loads the platformer configuration.
// Search order: customPath -> ~/.platformer/configs/platformer.yaml -> ./configs/platformer.yaml -> embedded default
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	var cfg PlatformerConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("platformer.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/platformer.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultPlatformerYAML, &cfg); err != nil {
		return DefaultPlatformerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformer", "configs", filename)
}

// Validate checks that the configuration can build a world.
// Inverted travel bounds are accepted; see InvertedBounds.
func (c PlatformerConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size must be positive", ErrInvalidConfig)
	case c.World.GroundHeight <= 0:
		return fmt.Errorf("%w: ground_height must be positive", ErrInvalidConfig)
	case c.Player.Size <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalidConfig)
	case c.Player.Density <= 0:
		return fmt.Errorf("%w: player density must be positive", ErrInvalidConfig)
	case c.Player.MoveSpeed < 0:
		return fmt.Errorf("%w: move_speed must not be negative", ErrInvalidConfig)
	case c.Platforms.Width <= 0 || c.Platforms.Height <= 0:
		return fmt.Errorf("%w: platform size must be positive", ErrInvalidConfig)
	case c.Platforms.Speed < 0:
		return fmt.Errorf("%w: platform speed must not be negative", ErrInvalidConfig)
	case len(c.Platforms.Layout) == 0:
		return fmt.Errorf("%w: at least one platform is required", ErrInvalidConfig)
	}
	return nil
}

// InvertedBounds returns the layout indexes whose travel_min exceeds travel_max.
// Between the bounds both reversal checks hold, so such platforms flip twice
// and keep direction; past either bound they reverse as usual.
func (c PlatformerConfig) InvertedBounds() []int {
	var idx []int
	for i, p := range c.Platforms.Layout {
		if p.TravelMin > p.TravelMax {
			idx = append(idx, i)
		}
	}
	return idx
}

// ApplyPreset modifies the config based on a speed preset.
// Unknown or empty presets leave the config untouched.
func ApplyPreset(cfg *PlatformerConfig, preset Preset) {
	switch preset {
	case PresetEasy:
		cfg.Platforms.Speed *= 0.5
		cfg.Player.MoveSpeed *= 1.5
	case PresetHard:
		cfg.Platforms.Speed *= 1.5
	}
}

// ParsePreset converts a CLI string to a Preset.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case "", PresetNormal:
		return PresetNormal, nil
	case PresetEasy, PresetHard:
		return Preset(s), nil
	default:
		return "", fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, s)
	}
}
