package l5fusion

import (
	"fmt"

	"github.com/banshee-data/semgrid/internal/semmap"
	"github.com/banshee-data/semgrid/internal/semmap/l2coords"
	"github.com/banshee-data/semgrid/internal/semmap/l3grid"
)

// Accumulator is the contract an external semantic grid accumulator must
// satisfy. Implementations hold persistent per-episode fused-map state.
type Accumulator interface {
	// SpatialTransform moves an egocentric grid into the geocentric frame.
	SpatialTransform(ctx semmap.ExecContext, ego *l3grid.Grid, rel, abs semmap.Pose) (*l3grid.Grid, error)
	// UpdateBayes folds a geocentric observation into the episode state and
	// returns the updated geocentric grid.
	UpdateBayes(ctx semmap.ExecContext, geo *l3grid.Grid) (*l3grid.Grid, error)
	// RotateMap moves a geocentric grid back into the egocentric frame.
	RotateMap(ctx semmap.ExecContext, geo *l3grid.Grid, rel, abs semmap.Pose) (*l3grid.Grid, error)
}

// GridSpec describes the grids an accumulator is created for.
type GridSpec struct {
	Dim           l2coords.Dim
	CropSize      int
	CellSize      float64
	SpatialLabels int
	ObjectLabels  int
	EnsembleSize  int
}

// SpecForGrid derives the accumulator spec from a representative egocentric
// grid: one spatial and one object label per channel, single-member ensemble.
func SpecForGrid(g *l3grid.Grid, cropSize int, cellSize float64) GridSpec {
	return GridSpec{
		Dim:           l2coords.Dim{H: g.H, W: g.W},
		CropSize:      cropSize,
		CellSize:      cellSize,
		SpatialLabels: g.C,
		ObjectLabels:  g.C,
		EnsembleSize:  1,
	}
}

// Validate checks the spec before an accumulator is built from it.
func (s GridSpec) Validate() error {
	if err := s.Dim.Validate(); err != nil {
		return err
	}
	if !(s.CellSize > 0) {
		return fmt.Errorf("%w: %g", semmap.ErrInvalidCellSize, s.CellSize)
	}
	if s.SpatialLabels <= 0 {
		return fmt.Errorf("SpatialLabels must be positive, got %d", s.SpatialLabels)
	}
	if s.EnsembleSize <= 0 {
		return fmt.Errorf("EnsembleSize must be positive, got %d", s.EnsembleSize)
	}
	return nil
}

// Factory creates a fresh accumulator for one episode.
type Factory func(spec GridSpec) (Accumulator, error)
