package l3grid

import (
	"fmt"

	"github.com/banshee-data/semgrid/internal/config"
	"github.com/banshee-data/semgrid/internal/semmap/l1points"
)

// OccupancyConfig holds the parameters of the depth-derived occupancy
// estimator.
type OccupancyConfig struct {
	Cone          l1points.ReliableCone // Reliable observation cone (default: 0.5 < depth < 3.0, y < 1.0)
	HeightThresh  float64               // Step-0 points above this are occupied (default: -0.9)
	HistoryWeight float64               // Weight of every step after the first (default: 0.1)
	Epsilon       float64               // Added to pooled counts (default: 1e-5)
}

// DefaultOccupancyConfig returns the built-in estimator defaults.
func DefaultOccupancyConfig() *OccupancyConfig {
	return OccupancyConfigFromProjection(config.EmptyProjectionConfig())
}

// OccupancyConfigFromProjection builds an OccupancyConfig from a loaded
// ProjectionConfig.
func OccupancyConfigFromProjection(cfg *config.ProjectionConfig) *OccupancyConfig {
	return &OccupancyConfig{
		Cone: l1points.ReliableCone{
			Near:    cfg.GetNearDepth(),
			Far:     cfg.GetFarDepth(),
			Ceiling: cfg.GetCeilingHeight(),
		},
		HeightThresh:  cfg.GetOccupancyHeightThresh(),
		HistoryWeight: cfg.GetHistoryWeight(),
		Epsilon:       cfg.GetPoolEpsilon(),
	}
}

// Validate checks if the configuration is valid.
func (c *OccupancyConfig) Validate() error {
	if c.Cone.Near >= c.Cone.Far {
		return fmt.Errorf("cone near (%f) must be less than far (%f)", c.Cone.Near, c.Cone.Far)
	}
	if c.HistoryWeight < 0 {
		return fmt.Errorf("HistoryWeight must be non-negative, got %f", c.HistoryWeight)
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("Epsilon must be non-negative, got %f", c.Epsilon)
	}
	return nil
}

// WithHeightThresh sets the step-0 occupancy height threshold.
func (c *OccupancyConfig) WithHeightThresh(h float64) *OccupancyConfig {
	c.HeightThresh = h
	return c
}

// WithHistoryWeight sets the weight of history steps.
func (c *OccupancyConfig) WithHistoryWeight(w float64) *OccupancyConfig {
	c.HistoryWeight = w
	return c
}

// WithCone sets the reliable observation cone.
func (c *OccupancyConfig) WithCone(cone l1points.ReliableCone) *OccupancyConfig {
	c.Cone = cone
	return c
}

// WithEpsilon sets the pooling epsilon.
func (c *OccupancyConfig) WithEpsilon(eps float64) *OccupancyConfig {
	c.Epsilon = eps
	return c
}
