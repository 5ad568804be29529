package config

import (
	_ "embed"
)

//go:embed defaults/hexpop.yaml
var defaultHexpopYAML []byte

// DefaultHexpopConfig returns the default HexPop configuration.
func DefaultHexpopConfig() HexpopConfig {
	return HexpopConfig{
		Board: BoardConfig{
			Columns:         9,
			Rows:            16,
			OriginX:         4,
			OriginY:         4,
			TileSize:        40,
			RowPitch:        34,
			TypeCount:       7,
			CollisionRadius: 20,
		},
		Launcher: LauncherConfig{
			ProjectileSpeed: 1000,
			MinAim:          8,
			MaxAim:          172,
			AimStep:         4,
		},
		Animation: AnimationConfig{
			PopFadeRate:  8,
			FallGravity:  1200,
			FallFadeRate: 3,
		},
		Rules: RulesConfig{
			PopThreshold:     3,
			EscalationRounds: 5,
			EscalationRows:   2,
		},
		Scoring: ScoringConfig{
			PointsPerPop:  100,
			PointsPerDrop: 200,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:     0.5,
				EscalationReduction: 3,
			},
		},
		Variants: map[string]VariantConfig{
			"classic": {Title: "HexPop Classic", Columns: 9, Rows: 16},
			"mini":    {Title: "HexPop Mini", Columns: 4, Rows: 4, TypeCount: 3},
			"wide":    {Title: "HexPop Wide", Columns: 14, Rows: 10},
			"tall":    {Title: "HexPop Tall", Columns: 14, Rows: 15},
		},
	}
}
