package l3grid

import (
	"fmt"

	"github.com/banshee-data/semgrid/internal/semmap"
)

// Number is the element type a Tensor can hold.
type Number interface {
	~float64 | ~int64
}

// Tensor is a dense (C, H, W) array stored channel-major. Batches of tensors
// are passed as slices, the slice index being the leading T or B axis.
type Tensor[T Number] struct {
	C, H, W int
	Data    []T
	Device  semmap.Device
}

// Grid holds per-cell class probabilities or weighted occupancy evidence.
type Grid = Tensor[float64]

// LabelGrid holds hard per-cell class ids.
type LabelGrid = Tensor[int64]

// NewTensor allocates a zeroed tensor on the context device.
func NewTensor[T Number](ctx semmap.ExecContext, c, h, w int) (*Tensor[T], error) {
	if c <= 0 || h <= 0 || w <= 0 {
		return nil, fmt.Errorf("%w: (%d, %d, %d)", semmap.ErrInvalidDim, c, h, w)
	}
	return &Tensor[T]{
		C:      c,
		H:      h,
		W:      w,
		Data:   make([]T, c*h*w),
		Device: ctx.Resolve(),
	}, nil
}

// NewGrid allocates a zeroed float grid.
func NewGrid(ctx semmap.ExecContext, c, h, w int) (*Grid, error) {
	return NewTensor[float64](ctx, c, h, w)
}

// NewLabelGrid allocates a zeroed label grid.
func NewLabelGrid(ctx semmap.ExecContext, c, h, w int) (*LabelGrid, error) {
	return NewTensor[int64](ctx, c, h, w)
}

// Index returns the flat offset of (c, row, col).
func (t *Tensor[T]) Index(c, row, col int) int {
	return (c*t.H+row)*t.W + col
}

// At returns the value at (c, row, col).
func (t *Tensor[T]) At(c, row, col int) T {
	return t.Data[t.Index(c, row, col)]
}

// Set stores v at (c, row, col).
func (t *Tensor[T]) Set(c, row, col int, v T) {
	t.Data[t.Index(c, row, col)] = v
}

// Plane returns channel c as a slice aliasing the tensor data.
func (t *Tensor[T]) Plane(c int) []T {
	n := t.H * t.W
	return t.Data[c*n : (c+1)*n]
}

// Fill sets every element to v.
func (t *Tensor[T]) Fill(v T) {
	for i := range t.Data {
		t.Data[i] = v
	}
}

// Clone returns a deep copy.
func (t *Tensor[T]) Clone() *Tensor[T] {
	out := *t
	out.Data = append([]T(nil), t.Data...)
	return &out
}

// SameShape reports whether o has the same (C, H, W) as t.
func (t *Tensor[T]) SameShape(o *Tensor[T]) bool {
	return t.C == o.C && t.H == o.H && t.W == o.W
}

// String formats the tensor shape and device.
func (t *Tensor[T]) String() string {
	return fmt.Sprintf("Tensor(%d, %d, %d)@%s", t.C, t.H, t.W, t.Device)
}
