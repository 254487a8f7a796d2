package l2coords

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/semgrid/internal/semmap"
)

func TestDiscretize_OriginIsCenter(t *testing.T) {
	for _, dim := range []Dim{{64, 64}, {65, 65}, {192, 192}, {31, 17}} {
		cells, err := Discretize([]float64{0}, []float64{0}, dim, 0.05)
		require.NoError(t, err)
		assert.Equal(t, dim.Center(), cells[0], "dim %v", dim)
		assert.Equal(t, Cell{X: (dim.H - 1) / 2, Z: (dim.W - 1) / 2}, cells[0])
	}
}

func TestDiscretize_Clamping(t *testing.T) {
	dim := Dim{H: 10, W: 20}
	x := []float64{-1e9, 1e9, math.Inf(1), math.Inf(-1), 0.3, -0.3}
	z := []float64{1e9, -1e9, math.Inf(-1), math.Inf(1), -0.3, 0.3}
	cells, err := Discretize(x, z, dim, 0.1)
	require.NoError(t, err)
	for i, c := range cells {
		if c.X < 0 || c.X > dim.H-1 || c.Z < 0 || c.Z > dim.W-1 {
			t.Errorf("cell %d = %+v out of bounds for %v", i, c, dim)
		}
	}
	assert.Equal(t, Cell{X: 0, Z: 19}, cells[0])
	assert.Equal(t, Cell{X: 9, Z: 0}, cells[1])
	assert.Equal(t, Cell{X: 9, Z: 0}, cells[2])
	assert.Equal(t, Cell{X: 0, Z: 19}, cells[3])
}

func TestDiscretize_FloorOnBoundaries(t *testing.T) {
	dim := Dim{H: 65, W: 65} // agent cell 32
	const cs = 0.5
	tests := []struct {
		c    float64
		want int
	}{
		{0.0, 32},
		{0.49, 32},
		{0.5, 33}, // exactly on a boundary goes to the upper cell
		{-0.01, 31},
		{-0.5, 31},
		{-0.51, 30},
	}
	for _, tt := range tests {
		cells, err := Discretize([]float64{tt.c}, []float64{tt.c}, dim, cs)
		require.NoError(t, err)
		assert.Equal(t, tt.want, cells[0].X, "x=%g", tt.c)
		assert.Equal(t, tt.want, cells[0].Z, "z=%g", tt.c)
	}
}

func TestDiscretize_EvenDimTruncates(t *testing.T) {
	// (64-1)/2 = 31.5 is truncated, so floor(c/cs)=+1 lands on 32.
	cells, err := Discretize([]float64{0.06}, []float64{-0.06}, Dim{64, 64}, 0.05)
	require.NoError(t, err)
	assert.Equal(t, Cell{X: 32, Z: 29}, cells[0])
}

func TestDiscretize_MapCenterAndTranslation(t *testing.T) {
	dim := Dim{H: 11, W: 11}

	cells, err := Discretize([]float64{12.0}, []float64{-3.0}, dim, 1.0, WithMapCenter(10.0, -5.0))
	require.NoError(t, err)
	assert.Equal(t, Cell{X: 7, Z: 7}, cells[0])

	cells, err = Discretize([]float64{0}, []float64{0}, dim, 1.0, WithTranslation(-3))
	require.NoError(t, err)
	assert.Equal(t, Cell{X: 5, Z: 2}, cells[0], "translation only moves the z axis")

	cells, err = Discretize([]float64{0}, []float64{0}, dim, 1.0, WithTranslation(100))
	require.NoError(t, err)
	assert.Equal(t, Cell{X: 5, Z: 10}, cells[0])
}

func TestDiscretize_Errors(t *testing.T) {
	_, err := Discretize([]float64{1, 2}, []float64{1}, Dim{4, 4}, 1)
	assert.True(t, errors.Is(err, semmap.ErrLengthMismatch), "got %v", err)

	_, err = Discretize(nil, nil, Dim{0, 4}, 1)
	assert.True(t, errors.Is(err, semmap.ErrInvalidDim), "got %v", err)

	_, err = Discretize(nil, nil, Dim{4, 4}, 0)
	assert.True(t, errors.Is(err, semmap.ErrInvalidCellSize), "got %v", err)

	cells, err := Discretize(nil, nil, Dim{4, 4}, 1)
	require.NoError(t, err)
	assert.Empty(t, cells)
}
