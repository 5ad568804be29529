package core

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a Config cannot describe a playable game.
var ErrInvalidConfig = errors.New("hexpop: invalid config")

// Config holds every rule-set constant. Values are supplied at construction
// time so grid sizes and rates can vary without code changes.
type Config struct {
	Columns int
	Rows    int

	OriginX  float64 // Pixel position of the grid's top-left corner
	OriginY  float64
	TileSize float64 // Tile width and height in px
	RowPitch float64 // Vertical distance between row tops; smaller than TileSize for hex packing

	TypeCount       int
	CollisionRadius float64

	ProjectileSpeed float64 // px/s
	MinAim          float64 // degrees
	MaxAim          float64 // degrees

	PopFadeRate  float64 // alpha/s for popped tiles
	FallGravity  float64 // px/s^2 for dropped tiles
	FallFadeRate float64 // alpha/s for dropped tiles

	PopThreshold     int // Minimum matched cluster size that pops
	EscalationRounds int // Rounds without a pop before the ceiling drops; 0 disables
	EscalationRows   int // Rows injected per escalation

	PointsPerPop  int
	PointsPerDrop int
}

// DefaultConfig returns the classic 9x16 rule set.
func DefaultConfig() Config {
	return Config{
		Columns:          9,
		Rows:             16,
		OriginX:          4,
		OriginY:          4,
		TileSize:         40,
		RowPitch:         34,
		TypeCount:        7,
		CollisionRadius:  20,
		ProjectileSpeed:  1000,
		MinAim:           8,
		MaxAim:           172,
		PopFadeRate:      8,
		FallGravity:      1200,
		FallFadeRate:     3,
		PopThreshold:     3,
		EscalationRounds: 5,
		EscalationRows:   2,
		PointsPerPop:     100,
		PointsPerDrop:    200,
	}
}

// Validate rejects configurations that cannot be played.
func (c Config) Validate() error {
	switch {
	case c.Columns <= 0 || c.Rows <= 0:
		return fmt.Errorf("%w: grid must have positive rows and columns, got %dx%d", ErrInvalidConfig, c.Columns, c.Rows)
	case c.TileSize <= 0 || c.RowPitch <= 0:
		return fmt.Errorf("%w: tile size and row pitch must be positive", ErrInvalidConfig)
	case c.TypeCount <= 0:
		return fmt.Errorf("%w: type count must be positive, got %d", ErrInvalidConfig, c.TypeCount)
	case c.CollisionRadius <= 0:
		return fmt.Errorf("%w: collision radius must be positive", ErrInvalidConfig)
	case c.ProjectileSpeed <= 0:
		return fmt.Errorf("%w: projectile speed must be positive", ErrInvalidConfig)
	case c.MinAim <= 0 || c.MaxAim >= 180 || c.MinAim >= c.MaxAim:
		return fmt.Errorf("%w: aim bounds must satisfy 0 < min < max < 180, got [%g, %g]", ErrInvalidConfig, c.MinAim, c.MaxAim)
	case c.PopFadeRate <= 0 || c.FallFadeRate <= 0 || c.FallGravity < 0:
		return fmt.Errorf("%w: animation rates must be positive", ErrInvalidConfig)
	case c.PopThreshold < 1:
		return fmt.Errorf("%w: pop threshold must be at least 1", ErrInvalidConfig)
	case c.EscalationRounds < 0 || c.EscalationRows < 0:
		return fmt.Errorf("%w: escalation settings must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Geometry returns the pixel layout described by the config.
func (c Config) Geometry() Geometry {
	return Geometry{
		OriginX:  c.OriginX,
		OriginY:  c.OriginY,
		TileSize: c.TileSize,
		RowPitch: c.RowPitch,
		Rows:     c.Rows,
		Columns:  c.Columns,
	}
}
