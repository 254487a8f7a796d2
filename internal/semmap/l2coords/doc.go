// Package l2coords owns Layer 2 (Coordinates) of the semantic mapping model.
//
// Responsibilities: discretizing continuous planar coordinates into clamped
// grid cells, and rigid planar transforms from world to agent frame.
// Key types: Dim, Cell.
//
// Dependency rule: L2 may depend on L1, but never on L3+.
package l2coords
