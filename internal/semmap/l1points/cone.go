package l1points

import (
	"github.com/banshee-data/semgrid/internal/semmap"
)

// Reliable observation cone defaults (metres).
const (
	DefaultNearDepth     = 0.5
	DefaultFarDepth      = 3.0
	DefaultCeilingHeight = 1.0
)

// ReliableCone selects the part of a depth-derived point set whose
// projection onto the ground plane can be trusted: forward depth strictly
// between Near and Far, and vertical coordinate strictly below Ceiling.
type ReliableCone struct {
	Near    float64
	Far     float64
	Ceiling float64
}

// DefaultReliableCone returns the (0.5, 3.0) depth cone with a 1.0 ceiling.
func DefaultReliableCone() ReliableCone {
	return ReliableCone{Near: DefaultNearDepth, Far: DefaultFarDepth, Ceiling: DefaultCeilingHeight}
}

// Contains reports whether p lies inside the cone. Camera-frame Z points
// backwards, so the forward depth is -p.Z.
func (c ReliableCone) Contains(p semmap.Point) bool {
	depth := -p.Z
	return depth > c.Near && depth < c.Far && p.Y < c.Ceiling
}

// Filter returns a new point set holding only the points inside the cone.
func (c ReliableCone) Filter(s PointSet) PointSet {
	out := PointSet{Points: make([]semmap.Point, 0, len(s.Points)), Device: s.Device}
	for _, p := range s.Points {
		if c.Contains(p) {
			out.Points = append(out.Points, p)
		}
	}
	return out
}
