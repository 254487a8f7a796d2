// Package l3grid owns Layer 3 (Grid) of the semantic mapping model.
//
// Responsibilities: dense grid tensors, the shared label pooling primitive,
// depth- and point-cloud-derived occupancy estimation, centred crops and
// explored masks.
// Key types: Tensor, Grid, LabelGrid, OccupancyConfig.
//
// Dependency rule: L3 may depend on L1-L2, but never on L4+.
package l3grid
