package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical projection defaults file.
const DefaultConfigPath = "config/projection.defaults.json"

// Ground-truth label reduction policies accepted by gt_reduction.
const (
	ReductionLastWriteWins = "last_write_wins"
	ReductionMajorityVote  = "majority_vote"
)

// ProjectionConfig represents the root configuration for grid projection.
// Every field is optional; the Get* methods supply defaults for fields the
// JSON omits, so partial configs are safe.
type ProjectionConfig struct {
	// Grid geometry
	GridDim  []int    `json:"grid_dim,omitempty"`  // [H, W]
	CropSize []int    `json:"crop_size,omitempty"` // [h, w]
	CellSize *float64 `json:"cell_size,omitempty"` // metres per cell

	// Depth-derived occupancy
	OccupancyHeightThresh *float64 `json:"occupancy_height_thresh,omitempty"`
	NearDepth             *float64 `json:"near_depth,omitempty"`
	FarDepth              *float64 `json:"far_depth,omitempty"`
	CeilingHeight         *float64 `json:"ceiling_height,omitempty"`
	HistoryWeight         *float64 `json:"history_weight,omitempty"`
	PoolEpsilon           *float64 `json:"pool_epsilon,omitempty"`

	// Point-cloud-derived occupancy band
	PCDLowerHeight *float64 `json:"pcd_lower_height,omitempty"`
	PCDUpperHeight *float64 `json:"pcd_upper_height,omitempty"`

	// Ground truth
	SliceBelow  *float64 `json:"slice_below,omitempty"`
	SliceAbove  *float64 `json:"slice_above,omitempty"`
	GTReduction *string  `json:"gt_reduction,omitempty"`

	// Explored mask
	ExploredThresh *float64 `json:"explored_thresh,omitempty"`
}

// EmptyProjectionConfig returns a ProjectionConfig with all fields unset.
func EmptyProjectionConfig() *ProjectionConfig {
	return &ProjectionConfig{}
}

// LoadProjectionConfig loads a ProjectionConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadProjectionConfig(path string) (*ProjectionConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyProjectionConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath.
// It searches the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *ProjectionConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,          // from internal/config/
		"../../../" + DefaultConfigPath,       // from internal/semmap/
		"../../../../" + DefaultConfigPath,    // from internal/semmap/l3grid/
		"../../../../../" + DefaultConfigPath, // even deeper
	}
	for _, path := range candidates {
		if cfg, err := LoadProjectionConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configured values are usable.
func (c *ProjectionConfig) Validate() error {
	if c.GridDim != nil {
		if len(c.GridDim) != 2 || c.GridDim[0] <= 0 || c.GridDim[1] <= 0 {
			return fmt.Errorf("grid_dim must be two positive integers, got %v", c.GridDim)
		}
	}
	if c.CropSize != nil {
		if len(c.CropSize) != 2 || c.CropSize[0] <= 0 || c.CropSize[1] <= 0 {
			return fmt.Errorf("crop_size must be two positive integers, got %v", c.CropSize)
		}
	}
	dim, crop := c.GetGridDim(), c.GetCropSize()
	if crop[0] > dim[0] || crop[1] > dim[1] {
		return fmt.Errorf("crop_size %v must not exceed grid_dim %v", crop, dim)
	}
	if c.CellSize != nil && *c.CellSize <= 0 {
		return fmt.Errorf("cell_size must be positive, got %f", *c.CellSize)
	}
	if c.GetNearDepth() >= c.GetFarDepth() {
		return fmt.Errorf("near_depth (%f) must be less than far_depth (%f)", c.GetNearDepth(), c.GetFarDepth())
	}
	if c.HistoryWeight != nil && *c.HistoryWeight < 0 {
		return fmt.Errorf("history_weight must be non-negative, got %f", *c.HistoryWeight)
	}
	if c.PoolEpsilon != nil && *c.PoolEpsilon < 0 {
		return fmt.Errorf("pool_epsilon must be non-negative, got %f", *c.PoolEpsilon)
	}
	if c.GetPCDLowerHeight() >= c.GetPCDUpperHeight() {
		return fmt.Errorf("pcd_lower_height (%f) must be less than pcd_upper_height (%f)",
			c.GetPCDLowerHeight(), c.GetPCDUpperHeight())
	}
	if c.SliceBelow != nil && *c.SliceBelow < 0 {
		return fmt.Errorf("slice_below must be non-negative, got %f", *c.SliceBelow)
	}
	if c.SliceAbove != nil && *c.SliceAbove < 0 {
		return fmt.Errorf("slice_above must be non-negative, got %f", *c.SliceAbove)
	}
	if c.GTReduction != nil {
		switch *c.GTReduction {
		case ReductionLastWriteWins, ReductionMajorityVote:
		default:
			return fmt.Errorf("gt_reduction must be %q or %q, got %q",
				ReductionLastWriteWins, ReductionMajorityVote, *c.GTReduction)
		}
	}
	if c.ExploredThresh != nil && (*c.ExploredThresh < 0 || *c.ExploredThresh > 1) {
		return fmt.Errorf("explored_thresh must be between 0 and 1, got %f", *c.ExploredThresh)
	}
	return nil
}

// GetGridDim returns grid_dim or the default [192, 192].
func (c *ProjectionConfig) GetGridDim() [2]int {
	if len(c.GridDim) != 2 {
		return [2]int{192, 192}
	}
	return [2]int{c.GridDim[0], c.GridDim[1]}
}

// GetCropSize returns crop_size or the default [64, 64].
func (c *ProjectionConfig) GetCropSize() [2]int {
	if len(c.CropSize) != 2 {
		return [2]int{64, 64}
	}
	return [2]int{c.CropSize[0], c.CropSize[1]}
}

// GetCellSize returns cell_size or the default.
func (c *ProjectionConfig) GetCellSize() float64 {
	if c.CellSize == nil {
		return 0.05
	}
	return *c.CellSize
}

// GetOccupancyHeightThresh returns occupancy_height_thresh or the default.
func (c *ProjectionConfig) GetOccupancyHeightThresh() float64 {
	if c.OccupancyHeightThresh == nil {
		return -0.9
	}
	return *c.OccupancyHeightThresh
}

// GetNearDepth returns near_depth or the default.
func (c *ProjectionConfig) GetNearDepth() float64 {
	if c.NearDepth == nil {
		return 0.5
	}
	return *c.NearDepth
}

// GetFarDepth returns far_depth or the default.
func (c *ProjectionConfig) GetFarDepth() float64 {
	if c.FarDepth == nil {
		return 3.0
	}
	return *c.FarDepth
}

// GetCeilingHeight returns ceiling_height or the default.
func (c *ProjectionConfig) GetCeilingHeight() float64 {
	if c.CeilingHeight == nil {
		return 1.0
	}
	return *c.CeilingHeight
}

// GetHistoryWeight returns history_weight or the default.
func (c *ProjectionConfig) GetHistoryWeight() float64 {
	if c.HistoryWeight == nil {
		return 0.1
	}
	return *c.HistoryWeight
}

// GetPoolEpsilon returns pool_epsilon or the default.
func (c *ProjectionConfig) GetPoolEpsilon() float64 {
	if c.PoolEpsilon == nil {
		return 1e-5
	}
	return *c.PoolEpsilon
}

// GetPCDLowerHeight returns pcd_lower_height or the default.
func (c *ProjectionConfig) GetPCDLowerHeight() float64 {
	if c.PCDLowerHeight == nil {
		return 0.1
	}
	return *c.PCDLowerHeight
}

// GetPCDUpperHeight returns pcd_upper_height or the default.
func (c *ProjectionConfig) GetPCDUpperHeight() float64 {
	if c.PCDUpperHeight == nil {
		return 1.5
	}
	return *c.PCDUpperHeight
}

// GetSliceBelow returns slice_below or the default.
func (c *ProjectionConfig) GetSliceBelow() float64 {
	if c.SliceBelow == nil {
		return 0.2
	}
	return *c.SliceBelow
}

// GetSliceAbove returns slice_above or the default.
func (c *ProjectionConfig) GetSliceAbove() float64 {
	if c.SliceAbove == nil {
		return 2.0
	}
	return *c.SliceAbove
}

// GetGTReduction returns gt_reduction or the default.
func (c *ProjectionConfig) GetGTReduction() string {
	if c.GTReduction == nil || *c.GTReduction == "" {
		return ReductionLastWriteWins
	}
	return *c.GTReduction
}

// GetExploredThresh returns explored_thresh or the default.
func (c *ProjectionConfig) GetExploredThresh() float64 {
	if c.ExploredThresh == nil {
		return 0.5
	}
	return *c.ExploredThresh
}
