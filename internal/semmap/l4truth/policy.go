package l4truth

import (
	"fmt"

	"github.com/banshee-data/semgrid/internal/config"
)

// ReductionPolicy decides which label a cell keeps when several scene points
// land in it.
type ReductionPolicy int

const (
	// LastWriteWins keeps the label of the last point, in scene order.
	LastWriteWins ReductionPolicy = iota
	// MajorityVote keeps the most frequent label. Ties go to the smallest id.
	MajorityVote
)

// String returns the config name of the policy.
func (p ReductionPolicy) String() string {
	switch p {
	case LastWriteWins:
		return config.ReductionLastWriteWins
	case MajorityVote:
		return config.ReductionMajorityVote
	default:
		return fmt.Sprintf("ReductionPolicy(%d)", int(p))
	}
}

// ParseReductionPolicy converts a config name into a policy.
func ParseReductionPolicy(s string) (ReductionPolicy, error) {
	switch s {
	case "", config.ReductionLastWriteWins:
		return LastWriteWins, nil
	case config.ReductionMajorityVote:
		return MajorityVote, nil
	}
	return 0, fmt.Errorf("unknown reduction policy %q", s)
}

// reducer accumulates labels for one grid.
type reducer interface {
	write(idx int, label int64)
	result(dst []int64)
}

type lastWrite struct {
	labels []int64
}

func (r *lastWrite) write(idx int, label int64) { r.labels[idx] = label }

func (r *lastWrite) result(dst []int64) { copy(dst, r.labels) }

type majority struct {
	votes []map[int64]int
}

func (r *majority) write(idx int, label int64) {
	if r.votes[idx] == nil {
		r.votes[idx] = make(map[int64]int, 1)
	}
	r.votes[idx][label]++
}

func (r *majority) result(dst []int64) {
	for i, v := range r.votes {
		if v == nil {
			continue
		}
		best, bestN := int64(0), -1
		for lbl, n := range v {
			if n > bestN || (n == bestN && lbl < best) {
				best, bestN = lbl, n
			}
		}
		dst[i] = best
	}
}

func newReducer(p ReductionPolicy, cells int) reducer {
	if p == MajorityVote {
		return &majority{votes: make([]map[int64]int, cells)}
	}
	return &lastWrite{labels: make([]int64, cells)}
}
