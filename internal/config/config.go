// Package config provides YAML-based rule-set loading and difficulty
// management for HexPop.
package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/hexpop/internal/games/hexpop/core"
)

// ErrUnknownVariant is returned when a variant name is not configured.
var ErrUnknownVariant = errors.New("config: unknown variant")

// HexpopConfig contains all configuration for HexPop.
type HexpopConfig struct {
	Board      BoardConfig              `yaml:"board"`
	Launcher   LauncherConfig           `yaml:"launcher"`
	Animation  AnimationConfig          `yaml:"animation"`
	Rules      RulesConfig              `yaml:"rules"`
	Scoring    ScoringConfig            `yaml:"scoring"`
	Difficulty DifficultyConfig         `yaml:"difficulty"`
	Variants   map[string]VariantConfig `yaml:"variants"`
}

// BoardConfig defines grid geometry.
type BoardConfig struct {
	Columns         int     `yaml:"columns"`
	Rows            int     `yaml:"rows"`
	OriginX         float64 `yaml:"origin_x"`
	OriginY         float64 `yaml:"origin_y"`
	TileSize        float64 `yaml:"tile_size"`
	RowPitch        float64 `yaml:"row_pitch"`
	TypeCount       int     `yaml:"type_count"`
	CollisionRadius float64 `yaml:"collision_radius"`
}

// LauncherConfig defines projectile and aiming parameters.
type LauncherConfig struct {
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	MinAim          float64 `yaml:"min_aim"`
	MaxAim          float64 `yaml:"max_aim"`
	AimStep         float64 `yaml:"aim_step"` // Degrees per keyboard nudge
}

// AnimationConfig defines removal animation rates.
type AnimationConfig struct {
	PopFadeRate  float64 `yaml:"pop_fade_rate"`
	FallGravity  float64 `yaml:"fall_gravity"`
	FallFadeRate float64 `yaml:"fall_fade_rate"`
}

// RulesConfig defines matching and escalation rules.
type RulesConfig struct {
	PopThreshold     int `yaml:"pop_threshold"`
	EscalationRounds int `yaml:"escalation_rounds"`
	EscalationRows   int `yaml:"escalation_rows"`
}

// ScoringConfig defines points awarded.
type ScoringConfig struct {
	PointsPerPop  int `yaml:"points_per_pop"`
	PointsPerDrop int `yaml:"points_per_drop"`
}

// VariantConfig overrides board dimensions for a named rule set.
// Zero fields inherit from Board.
type VariantConfig struct {
	Title     string `yaml:"title"`
	Columns   int    `yaml:"columns"`
	Rows      int    `yaml:"rows"`
	TypeCount int    `yaml:"type_count"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier     float64 `yaml:"speed_multiplier"`     // Multiplier added to projectile speed at max difficulty
	EscalationReduction int     `yaml:"escalation_reduction"` // Rounds removed from the escalation interval at max difficulty
}

// VariantNames returns the configured variant names in sorted order.
func (c HexpopConfig) VariantNames() []string {
	names := make([]string, 0, len(c.Variants))
	for name := range c.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RuleSet builds the simulation config for a variant. An empty name uses
// the base board.
func (c HexpopConfig) RuleSet(variant string) (core.Config, error) {
	cfg := core.Config{
		Columns:          c.Board.Columns,
		Rows:             c.Board.Rows,
		OriginX:          c.Board.OriginX,
		OriginY:          c.Board.OriginY,
		TileSize:         c.Board.TileSize,
		RowPitch:         c.Board.RowPitch,
		TypeCount:        c.Board.TypeCount,
		CollisionRadius:  c.Board.CollisionRadius,
		ProjectileSpeed:  c.Launcher.ProjectileSpeed,
		MinAim:           c.Launcher.MinAim,
		MaxAim:           c.Launcher.MaxAim,
		PopFadeRate:      c.Animation.PopFadeRate,
		FallGravity:      c.Animation.FallGravity,
		FallFadeRate:     c.Animation.FallFadeRate,
		PopThreshold:     c.Rules.PopThreshold,
		EscalationRounds: c.Rules.EscalationRounds,
		EscalationRows:   c.Rules.EscalationRows,
		PointsPerPop:     c.Scoring.PointsPerPop,
		PointsPerDrop:    c.Scoring.PointsPerDrop,
	}

	if variant != "" {
		v, ok := c.Variants[variant]
		if !ok {
			return cfg, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
		}
		if v.Columns > 0 {
			cfg.Columns = v.Columns
		}
		if v.Rows > 0 {
			cfg.Rows = v.Rows
		}
		if v.TypeCount > 0 {
			cfg.TypeCount = v.TypeCount
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: variant %q: %w", variant, err)
	}
	return cfg, nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
