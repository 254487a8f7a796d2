package l1points

import (
	"github.com/banshee-data/semgrid/internal/semmap"
)

// Default slicing band offsets relative to the agent height (metres).
const (
	DefaultSliceBelow = 0.2
	DefaultSliceAbove = 2.0
)

// HeightSlicer keeps the scene points inside a vertical band around the
// agent height, discarding floor returns below the band and ceiling returns
// above it.
type HeightSlicer struct {
	// Below is subtracted from the agent height to form the floor bound.
	Below float64
	// Above is added to the agent height to form the ceiling bound.
	Above float64

	pointsProcessed    int64
	pointsInBand       int64
	pointsBelowFloor   int64
	pointsAboveCeiling int64
}

// NewHeightSlicer constructs a slicer with the given band offsets.
func NewHeightSlicer(below, above float64) *HeightSlicer {
	return &HeightSlicer{Below: below, Above: above}
}

// DefaultHeightSlicer returns a slicer with the band [h-0.2, h+2.0].
func DefaultHeightSlicer() *HeightSlicer {
	return NewHeightSlicer(DefaultSliceBelow, DefaultSliceAbove)
}

// Slice returns the planar coordinates and labels of every scene point whose
// vertical coordinate lies in [height-Below, height+Above]. Points exactly on
// a bound are kept. Labels are returned as float64 for downstream arithmetic.
// The scene is not modified.
func (f *HeightSlicer) Slice(ctx semmap.ExecContext, scene *LabeledScene, height float64) (x, y, labels []float64, err error) {
	if err := ctx.Check(scene.Device); err != nil {
		return nil, nil, nil, err
	}
	if err := scene.Validate(); err != nil {
		return nil, nil, nil, err
	}

	floor := height - f.Below
	ceiling := height + f.Above

	n := scene.Len()
	x = make([]float64, 0, n)
	y = make([]float64, 0, n)
	labels = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		f.pointsProcessed++
		z := scene.Z[i]
		if z < floor {
			f.pointsBelowFloor++
			continue
		}
		if z > ceiling {
			f.pointsAboveCeiling++
			continue
		}
		f.pointsInBand++
		x = append(x, scene.X[i])
		y = append(y, scene.Y[i])
		labels = append(labels, float64(scene.Labels[i]))
	}
	return x, y, labels, nil
}

// Stats returns current slicer statistics for monitoring and parameter tuning.
func (f *HeightSlicer) Stats() (processed, kept, belowFloor, aboveCeiling int64) {
	return f.pointsProcessed, f.pointsInBand, f.pointsBelowFloor, f.pointsAboveCeiling
}

// ResetStats clears accumulated statistics counters.
func (f *HeightSlicer) ResetStats() {
	f.pointsProcessed = 0
	f.pointsInBand = 0
	f.pointsBelowFloor = 0
	f.pointsAboveCeiling = 0
}
