package l4truth

import (
	"errors"
	"fmt"

	"github.com/banshee-data/semgrid/internal/config"
	"github.com/banshee-data/semgrid/internal/semmap"
	"github.com/banshee-data/semgrid/internal/semmap/l1points"
	"github.com/banshee-data/semgrid/internal/semmap/l2coords"
	"github.com/banshee-data/semgrid/internal/semmap/l3grid"
)

// ErrPoseHeightMismatch is returned when poses and agent heights differ in length.
var ErrPoseHeightMismatch = errors.New("poses and heights must have the same length")

// Builder produces agent-aligned ground-truth label grids from a labelled
// scene cloud. The agent sits at the grid centre facing up.
type Builder struct {
	Dim      l2coords.Dim
	CropH    int
	CropW    int
	CellSize float64
	Slicer   *l1points.HeightSlicer
	Policy   ReductionPolicy
}

// NewBuilderFromProjection builds a Builder from a loaded ProjectionConfig.
func NewBuilderFromProjection(cfg *config.ProjectionConfig) (*Builder, error) {
	policy, err := ParseReductionPolicy(cfg.GetGTReduction())
	if err != nil {
		return nil, err
	}
	dim, crop := cfg.GetGridDim(), cfg.GetCropSize()
	return &Builder{
		Dim:      l2coords.Dim{H: dim[0], W: dim[1]},
		CropH:    crop[0],
		CropW:    crop[1],
		CellSize: cfg.GetCellSize(),
		Slicer:   l1points.NewHeightSlicer(cfg.GetSliceBelow(), cfg.GetSliceAbove()),
		Policy:   policy,
	}, nil
}

// Build returns one (1, CropH, CropW) label grid per timestep. poses are
// absolute agent poses and heights the agent heights at each timestep.
func (b *Builder) Build(ctx semmap.ExecContext, scene *l1points.LabeledScene, poses []semmap.Pose, heights []float64) ([]*l3grid.LabelGrid, error) {
	if len(poses) != len(heights) {
		return nil, fmt.Errorf("%w: poses=%d heights=%d", ErrPoseHeightMismatch, len(poses), len(heights))
	}
	out := make([]*l3grid.LabelGrid, len(poses))
	for k := range poses {
		full, err := b.BuildStep(ctx, scene, poses[k], heights[k])
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", k, err)
		}
		crop, err := l3grid.Crop(ctx, full, b.CropH, b.CropW)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", k, err)
		}
		out[k] = crop
	}
	return out, nil
}

// BuildStep returns the full (1, H, W) label grid for one timestep:
// height-slice around the agent, move the slice into the agent frame,
// discretize, reduce labels per cell, then flip rows so the grid matches
// the egocentric observation chirality.
func (b *Builder) BuildStep(ctx semmap.ExecContext, scene *l1points.LabeledScene, pose semmap.Pose, height float64) (*l3grid.LabelGrid, error) {
	if b.Dim.H != b.Dim.W {
		return nil, fmt.Errorf("%w: %dx%d", l3grid.ErrNonSquareGrid, b.Dim.H, b.Dim.W)
	}
	slicer := b.Slicer
	if slicer == nil {
		slicer = l1points.DefaultHeightSlicer()
	}
	x, y, labels, err := slicer.Slice(ctx, scene, height)
	if err != nil {
		return nil, err
	}

	xr, yr, err := l2coords.TransformPlanar(x, y, pose)
	if err != nil {
		return nil, err
	}
	cells, err := l2coords.Discretize(xr, yr, b.Dim, b.CellSize)
	if err != nil {
		return nil, err
	}

	grid, err := l3grid.NewLabelGrid(ctx, 1, b.Dim.H, b.Dim.W)
	if err != nil {
		return nil, err
	}
	red := newReducer(b.Policy, len(grid.Data))
	for i, c := range cells {
		red.write(grid.Index(0, c.Z, c.X), int64(labels[i]))
	}
	red.result(grid.Data)

	flipRows(grid)
	semmap.Diagf("ground truth pose=(%.3f, %.3f, %.3f) height=%.3f points=%d sliced=%d policy=%s",
		pose.X, pose.Z, pose.Yaw, height, scene.Len(), len(cells), b.Policy)
	return grid, nil
}

// flipRows reverses the row order of every channel in place.
func flipRows(g *l3grid.LabelGrid) {
	for c := 0; c < g.C; c++ {
		for top, bottom := 0, g.H-1; top < bottom; top, bottom = top+1, bottom-1 {
			a := g.Data[g.Index(c, top, 0) : g.Index(c, top, 0)+g.W]
			z := g.Data[g.Index(c, bottom, 0) : g.Index(c, bottom, 0)+g.W]
			for i := range a {
				a[i], z[i] = z[i], a[i]
			}
		}
	}
}
