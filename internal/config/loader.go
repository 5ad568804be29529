package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadHexpop loads HexPop configuration.
// Search order: customPath -> ~/.hexpop/configs/hexpop.yaml -> ./configs/hexpop.yaml -> embedded default
func LoadHexpop(customPath string) (HexpopConfig, error) {
	// Start from the defaults so partial files only override what they set.
	cfg := DefaultHexpopConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("hexpop.yaml"); userCfgPath != "" {
		if ok := tryLoad(userCfgPath, &cfg); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if ok := tryLoad(filepath.Join("configs", "hexpop.yaml"), &cfg); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	embedded := DefaultHexpopConfig()
	if err := yaml.Unmarshal(defaultHexpopYAML, &embedded); err != nil {
		return DefaultHexpopConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad parses path into a copy of *cfg and commits it only on success.
func tryLoad(path string, cfg *HexpopConfig) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	next := *cfg
	if err := yaml.Unmarshal(data, &next); err != nil {
		return false
	}
	*cfg = next
	return true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hexpop", "configs", filename)
}

// ApplyHexpopPreset modifies the config based on a difficulty preset.
func ApplyHexpopPreset(cfg *HexpopConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Rules.EscalationRounds = 7
		cfg.Launcher.ProjectileSpeed = 800
	case DifficultyHard:
		cfg.Rules.EscalationRounds = 3
		cfg.Launcher.ProjectileSpeed = 1200
	}
}
