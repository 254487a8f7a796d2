// Package testutil provides shared test helpers for grid and point fixtures.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// ChannelSumTolerance absorbs the pooling epsilon in normalised grids.
const ChannelSumTolerance = 1e-4

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertChannelSums checks that every cell of a channel-major buffer sums
// to want over its channels, within ChannelSumTolerance.
func AssertChannelSums(t testing.TB, data []float64, channels int, want float64) {
	t.Helper()
	if channels <= 0 || len(data)%channels != 0 {
		t.Fatalf("buffer of %d values does not split into %d channels", len(data), channels)
		return
	}
	cells := len(data) / channels
	for i := 0; i < cells; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += data[c*cells+i]
		}
		if math.Abs(sum-want) > ChannelSumTolerance {
			t.Fatalf("cell %d channel sum = %f, want %f", i, sum, want)
			return
		}
	}
}

// WriteTempFile writes content to name inside a per-test directory and
// returns the full path.
func WriteTempFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
