package l3grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/semgrid/internal/semmap"
	"github.com/banshee-data/semgrid/internal/semmap/l1points"
	"github.com/banshee-data/semgrid/internal/semmap/l2coords"
)

// Occupancy channels.
const (
	Unknown  = 0
	Occupied = 1
	Free     = 2

	NumOccupancyClasses = 3
)

// EstimateFromDepth converts an ordered sequence of per-timestep camera-frame
// point sets into a (3, H, W) occupancy grid. steps[0] is the current
// observation; later entries are history.
//
// Each step is restricted to the reliable cone and labelled: step 0 by
// height (above HeightThresh is occupied, otherwise free), history steps all
// free. The labelled points are pooled into a normalized grid which is added
// with weight 1 for step 0 and HistoryWeight for later steps. A step with no
// surviving points adds the uniform prior at its weight. The sum is not
// renormalized.
func EstimateFromDepth(ctx semmap.ExecContext, steps []l1points.PointSet, dim l2coords.Dim, cellSize float64, cfg *OccupancyConfig) (*Grid, error) {
	if cfg == nil {
		cfg = DefaultOccupancyConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid occupancy config: %w", err)
	}
	for k, s := range steps {
		if err := ctx.Check(s.Device); err != nil {
			return nil, fmt.Errorf("step %d: %w", k, err)
		}
	}

	out, err := NewGrid(ctx, NumOccupancyClasses, dim.H, dim.W)
	if err != nil {
		return nil, err
	}

	for k, step := range steps {
		kept := cfg.Cone.Filter(step)

		labels := make([]int, kept.Len())
		for i, p := range kept.Points {
			switch {
			case k > 0:
				labels[i] = Free
			case p.Y > cfg.HeightThresh:
				labels[i] = Occupied
			default:
				labels[i] = Free
			}
		}

		x, z := kept.XZ()
		cells, err := l2coords.Discretize(x, z, dim, cellSize)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", k, err)
		}
		grid, err := PoolLabels(ctx, cells, labels, dim, PoolParams{Channels: NumOccupancyClasses, Epsilon: cfg.Epsilon})
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", k, err)
		}

		weight := 1.0
		if k > 0 {
			weight = cfg.HistoryWeight
		}
		floats.AddScaled(out.Data, weight, grid.Data)
		semmap.Tracef("depth occupancy step=%d points=%d kept=%d weight=%g", k, step.Len(), kept.Len(), weight)
	}
	return out, nil
}

// EstimateFromPointCloud converts an unordered point set into one normalized
// (3, H, W) occupancy grid. Points with lower < Y < upper are occupied, the
// rest free. Points with a NaN height match neither test and stay unknown.
func EstimateFromPointCloud(ctx semmap.ExecContext, pts l1points.PointSet, dim l2coords.Dim, cellSize, lower, upper, eps float64) (*Grid, error) {
	if err := ctx.Check(pts.Device); err != nil {
		return nil, err
	}

	labels := make([]int, pts.Len())
	for i, p := range pts.Points {
		switch {
		case math.IsNaN(p.Y):
			labels[i] = Unknown
		case p.Y > lower && p.Y < upper:
			labels[i] = Occupied
		default:
			labels[i] = Free
		}
	}

	x, z := pts.XZ()
	cells, err := l2coords.Discretize(x, z, dim, cellSize)
	if err != nil {
		return nil, err
	}
	grid, err := PoolLabels(ctx, cells, labels, dim, PoolParams{Channels: NumOccupancyClasses, Epsilon: eps})
	if err != nil {
		return nil, err
	}
	semmap.Tracef("point cloud occupancy points=%d band=(%g, %g)", pts.Len(), lower, upper)
	return grid, nil
}
