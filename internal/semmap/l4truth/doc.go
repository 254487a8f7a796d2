// Package l4truth owns Layer 4 (Ground Truth) of the semantic mapping model.
//
// Responsibilities: turning a labelled full-scene point cloud into
// agent-aligned semantic label grids, one per timestep of an episode.
// Key types: Builder, ReductionPolicy.
//
// Dependency rule: L4 may depend on L1-L3, but never on L5.
package l4truth
