package l3grid

import (
	"errors"
	"fmt"

	"github.com/banshee-data/semgrid/internal/semmap"
)

// ErrCropTooLarge is returned when the crop exceeds the grid.
var ErrCropTooLarge = errors.New("crop larger than grid")

// Crop extracts the (cropH, cropW) window centred on the grid, assuming the
// agent sits at the grid centre facing up. The window starts at
// (H/2 - cropH/2, W/2 - cropW/2), so cropping a 64x64 grid to 32x32 returns
// rows and columns [16, 48), and cropping to the full size is the identity.
func Crop[T Number](ctx semmap.ExecContext, g *Tensor[T], cropH, cropW int) (*Tensor[T], error) {
	if err := ctx.Check(g.Device); err != nil {
		return nil, err
	}
	if cropH <= 0 || cropW <= 0 {
		return nil, fmt.Errorf("%w: crop %dx%d", semmap.ErrInvalidDim, cropH, cropW)
	}
	if cropH > g.H || cropW > g.W {
		return nil, fmt.Errorf("%w: crop %dx%d, grid %dx%d", ErrCropTooLarge, cropH, cropW, g.H, g.W)
	}

	top := g.H/2 - cropH/2
	left := g.W/2 - cropW/2

	out, err := NewTensor[T](ctx, g.C, cropH, cropW)
	if err != nil {
		return nil, err
	}
	for c := 0; c < g.C; c++ {
		for r := 0; r < cropH; r++ {
			src := g.Index(c, top+r, left)
			copy(out.Data[out.Index(c, r, 0):out.Index(c, r, 0)+cropW], g.Data[src:src+cropW])
		}
	}
	return out, nil
}

// CropBatch applies Crop to every grid of a batch.
func CropBatch[T Number](ctx semmap.ExecContext, gs []*Tensor[T], cropH, cropW int) ([]*Tensor[T], error) {
	out := make([]*Tensor[T], len(gs))
	for i, g := range gs {
		c, err := Crop(ctx, g, cropH, cropW)
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}
