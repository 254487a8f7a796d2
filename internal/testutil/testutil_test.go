package testutil

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

// recordingTB captures failures instead of stopping the test.
type recordingTB struct {
	testing.TB
	failures []string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Fatal(args ...any) { r.failures = append(r.failures, fmt.Sprint(args...)) }

func (r *recordingTB) Fatalf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func TestAssertNoError(t *testing.T) {
	rec := &recordingTB{TB: t}
	AssertNoError(rec, nil)
	if len(rec.failures) != 0 {
		t.Fatalf("nil error reported: %v", rec.failures)
	}
	AssertNoError(rec, errors.New("boom"))
	if len(rec.failures) != 1 {
		t.Fatalf("expected one failure, got %v", rec.failures)
	}
}

func TestAssertError(t *testing.T) {
	rec := &recordingTB{TB: t}
	AssertError(rec, errors.New("boom"))
	if len(rec.failures) != 0 {
		t.Fatalf("non-nil error reported: %v", rec.failures)
	}
	AssertError(rec, nil)
	if len(rec.failures) != 1 {
		t.Fatalf("expected one failure, got %v", rec.failures)
	}
}

func TestAssertChannelSums(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		channels int
		want     float64
		fail     bool
	}{
		{"normalised", []float64{0.25, 0.5, 0.75, 0.5}, 2, 1, false},
		{"within epsilon", []float64{0.5, 0.50001}, 2, 1, false},
		{"off", []float64{0.5, 0.6}, 2, 1, true},
		{"ragged", []float64{1, 2, 3}, 2, 1, true},
		{"no channels", []float64{1}, 0, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingTB{TB: t}
			AssertChannelSums(rec, tt.data, tt.channels, tt.want)
			if got := len(rec.failures) > 0; got != tt.fail {
				t.Errorf("failed = %v, want %v (%v)", got, tt.fail, rec.failures)
			}
		})
	}
}

func TestWriteTempFile(t *testing.T) {
	path := WriteTempFile(t, "scene.asc", "1 2 3 4\n")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "1 2 3 4\n" {
		t.Errorf("content = %q", data)
	}
}
