package l2coords

import (
	"fmt"
	"math"

	"github.com/banshee-data/semgrid/internal/semmap"
)

// Dim is a grid dimension. H bounds the x bins and W bounds the z bins.
type Dim struct {
	H, W int
}

// Validate checks that both extents are positive.
func (d Dim) Validate() error {
	if d.H <= 0 || d.W <= 0 {
		return fmt.Errorf("%w: %dx%d", semmap.ErrInvalidDim, d.H, d.W)
	}
	return nil
}

// Center returns the agent cell ((H-1)/2, (W-1)/2).
func (d Dim) Center() Cell {
	return Cell{X: (d.H - 1) / 2, Z: (d.W - 1) / 2}
}

// Cell is a discretized (x_bin, z_bin) pair. When written into a grid the
// z bin selects the row and the x bin the column.
type Cell struct {
	X, Z int
}

type discretizeOptions struct {
	hasCenter   bool
	centerX     float64
	centerZ     float64
	translation float64
}

// DiscretizeOption configures Discretize.
type DiscretizeOption func(*discretizeOptions)

// WithMapCenter discretizes relative to a world-frame map centre instead of
// the agent origin.
func WithMapCenter(x, z float64) DiscretizeOption {
	return func(o *discretizeOptions) {
		o.hasCenter = true
		o.centerX = x
		o.centerZ = z
	}
}

// WithTranslation adds t bins to the z axis before clamping. Positive values
// move the agent cell further down the grid.
func WithTranslation(t float64) DiscretizeOption {
	return func(o *discretizeOptions) {
		o.translation = t
	}
}

// Discretize maps each (x[i], z[i]) pair onto a grid cell:
//
//	bin = trunc(floor((c - center) / cellSize) + (dim-1)/2)
//
// clamped to [0, H-1] for x and [0, W-1] for z. Out-of-range coordinates
// saturate to the border cell; nothing is dropped.
func Discretize(x, z []float64, dim Dim, cellSize float64, opts ...DiscretizeOption) ([]Cell, error) {
	if len(x) != len(z) {
		return nil, fmt.Errorf("%w: x=%d z=%d", semmap.ErrLengthMismatch, len(x), len(z))
	}
	if err := dim.Validate(); err != nil {
		return nil, err
	}
	if !(cellSize > 0) {
		return nil, fmt.Errorf("%w: %g", semmap.ErrInvalidCellSize, cellSize)
	}

	var o discretizeOptions
	for _, opt := range opts {
		opt(&o)
	}

	offX := float64(dim.H-1) / 2.0
	offZ := float64(dim.W-1)/2.0 + o.translation

	cells := make([]Cell, len(x))
	for i := range x {
		cells[i] = Cell{
			X: bin(x[i]-o.centerX, cellSize, offX, dim.H),
			Z: bin(z[i]-o.centerZ, cellSize, offZ, dim.W),
		}
	}
	return cells, nil
}

// bin truncates toward zero after the offset, then clamps.
func bin(c, cellSize, offset float64, n int) int {
	v := math.Floor(c/cellSize) + offset
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= float64(n-1):
		return n - 1
	}
	return int(v)
}
