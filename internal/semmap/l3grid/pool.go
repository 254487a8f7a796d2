package l3grid

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/semgrid/internal/semmap"
	"github.com/banshee-data/semgrid/internal/semmap/l2coords"
)

// DefaultPoolEpsilon is added to every pooled count.
const DefaultPoolEpsilon = 1e-5

// ErrNonSquareGrid is returned when pooling into a grid whose x and z
// extents differ. Cells are written at (row=z_bin, col=x_bin) while x bins
// are bounded by H and z bins by W, so only square grids are addressable.
var ErrNonSquareGrid = errors.New("pooling requires a square grid")

// ErrLabelOutOfRange is returned for a label outside [0, channels).
var ErrLabelOutOfRange = errors.New("label out of range")

// PoolParams configures PoolLabels.
type PoolParams struct {
	Channels int
	Epsilon  float64
}

// PoolLabels turns labelled cells into a per-cell class distribution.
//
// Every channel starts at the uniform prior 1/Channels. For each
// (cell, label) pair that received at least one point, that channel is
// overwritten with count+Epsilon. Each touched cell is then normalized so its
// channels sum to 1; channels of a touched cell that received no points keep
// the prior before normalization. With no cells the prior grid is returned.
func PoolLabels(ctx semmap.ExecContext, cells []l2coords.Cell, labels []int, dim l2coords.Dim, p PoolParams) (*Grid, error) {
	if len(cells) != len(labels) {
		return nil, fmt.Errorf("%w: cells=%d labels=%d", semmap.ErrLengthMismatch, len(cells), len(labels))
	}
	if err := dim.Validate(); err != nil {
		return nil, err
	}
	if dim.H != dim.W {
		return nil, fmt.Errorf("%w: %dx%d", ErrNonSquareGrid, dim.H, dim.W)
	}

	grid, err := NewGrid(ctx, p.Channels, dim.H, dim.W)
	if err != nil {
		return nil, err
	}
	grid.Fill(1.0 / float64(p.Channels))
	if len(cells) == 0 {
		return grid, nil
	}

	counts := make([]int, len(grid.Data))
	for i, c := range cells {
		lbl := labels[i]
		if lbl < 0 || lbl >= p.Channels {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrLabelOutOfRange, lbl, p.Channels)
		}
		if c.X < 0 || c.X >= dim.W || c.Z < 0 || c.Z >= dim.H {
			return nil, fmt.Errorf("%w: cell %+v outside %dx%d", semmap.ErrShapeMismatch, c, dim.H, dim.W)
		}
		counts[grid.Index(lbl, c.Z, c.X)]++
	}
	for i, n := range counts {
		if n > 0 {
			grid.Data[i] = float64(n) + p.Epsilon
		}
	}

	normalizeChannels(grid)
	return grid, nil
}

// normalizeChannels divides every cell by the sum over its channels.
func normalizeChannels(g *Grid) {
	sums := make([]float64, g.H*g.W)
	for c := 0; c < g.C; c++ {
		floats.Add(sums, g.Plane(c))
	}
	for c := 0; c < g.C; c++ {
		floats.Div(g.Plane(c), sums)
	}
}
